package main

import (
	"context"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/bmp"
	"golang.org/x/xerrors"

	"github.com/iommu/raytracing/pkg/config"
	"github.com/iommu/raytracing/pkg/scene"
)

// testLogger routes render logging to the test output
type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Logf(format, args...)
}

func parseFlags(t *testing.T, args ...string) (*flag.FlagSet, *options) {
	t.Helper()
	fs := flag.NewFlagSet("raytracing", flag.ContinueOnError)
	opts := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}
	return fs, opts
}

func TestResolveConfig_Defaults(t *testing.T) {
	fs, opts := parseFlags(t)
	cfg, err := resolveConfig(fs, opts)
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("Config without flags differs from defaults (-want +got):\n%s", diff)
	}
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	data := "scene: earth\nseed: 3\nworkers: 2\noverrides:\n  samples_per_pixel: 50\n  max_depth: 7\n"
	if err := ioutil.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	fs, opts := parseFlags(t, "-config", path, "-spp", "4", "-format", "bmp", "-serial")
	cfg, err := resolveConfig(fs, opts)
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}

	want := config.Default()
	want.Scene = "earth"
	want.Seed = 3
	want.Workers = 2
	want.Serial = true
	want.Output.Format = "bmp"
	want.Overrides.SamplesPerPixel = 4
	want.Overrides.MaxDepth = 7
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Resolved config mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveConfig_Invalid(t *testing.T) {
	fs, opts := parseFlags(t, "-format", "gif")
	if _, err := resolveConfig(fs, opts); err == nil {
		t.Error("Expected an error for an unsupported format")
	}

	fs, opts = parseFlags(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := resolveConfig(fs, opts); !xerrors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a missing config file error, got %v", err)
	}
}

func TestCreateScene(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = "quads"
	cfg.Overrides = config.OverridesConfig{ImageWidth: 32, SamplesPerPixel: 2, MaxDepth: 3}

	s, err := createScene(cfg, testLogger{t})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.CameraConfig.ImageWidth != 32 || s.SamplingConfig.SamplesPerPixel != 2 || s.SamplingConfig.MaxDepth != 3 {
		t.Errorf("Overrides not applied: width %d, sampling %+v", s.CameraConfig.ImageWidth, s.SamplingConfig)
	}

	cfg.Scene = "nonexistent"
	if _, err := createScene(cfg, testLogger{t}); !xerrors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = "cornell-box"
	cfg.Output.Format = "ppm"
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	want := filepath.Join("output", "cornell-box", "render_20240305_140709.ppm")
	if got := outputPath(cfg, now); got != want {
		t.Errorf("outputPath() = %q, want %q", got, want)
	}

	cfg.Output.Path = "custom/out.ppm"
	if got := outputPath(cfg, now); got != "custom/out.ppm" {
		t.Errorf("outputPath() = %q, want the configured path", got)
	}
}

func TestRun(t *testing.T) {
	for _, serial := range []bool{true, false} {
		name := "parallel"
		if serial {
			name = "serial"
		}
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene = "quads"
			cfg.Serial = serial
			cfg.Workers = 2
			cfg.TileSize = 4
			cfg.Output.Format = "bmp"
			cfg.Output.Path = filepath.Join(t.TempDir(), "quads.bmp")
			cfg.Overrides = config.OverridesConfig{ImageWidth: 12, SamplesPerPixel: 2, MaxDepth: 3}

			path, err := run(context.Background(), cfg, testLogger{t})
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := bmp.Decode(f)
			if err != nil {
				t.Fatalf("Output is not a valid BMP: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 12 {
				t.Errorf("Output size = %v, want 12x12", b)
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = "quads"
	cfg.Output.Path = filepath.Join(t.TempDir(), "never.png")
	cfg.Overrides = config.OverridesConfig{ImageWidth: 64, SamplesPerPixel: 1, MaxDepth: 2}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := run(ctx, cfg, testLogger{t})
	if !xerrors.Is(err, context.Canceled) {
		t.Errorf("run() error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(cfg.Output.Path); !os.IsNotExist(statErr) {
		t.Error("A cancelled render should not write an output file")
	}
}

func TestRegisterFlags_Usage(t *testing.T) {
	fs := flag.NewFlagSet("raytracing", flag.ContinueOnError)
	registerFlags(fs)

	var names []string
	fs.VisitAll(func(f *flag.Flag) { names = append(names, f.Name) })
	joined := strings.Join(names, ",")
	for _, name := range []string{"config", "scene", "out", "format", "width", "spp", "depth", "seed", "workers", "serial", "list", "help"} {
		if !strings.Contains(","+joined+",", ","+name+",") {
			t.Errorf("Flag -%s is not registered", name)
		}
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"github.com/iommu/raytracing/pkg/config"
	"github.com/iommu/raytracing/pkg/core"
	"github.com/iommu/raytracing/pkg/exporter"
	"github.com/iommu/raytracing/pkg/renderer"
	"github.com/iommu/raytracing/pkg/scene"
)

// options holds the command line flags
type options struct {
	configPath  string
	writeConfig string
	scene       string
	out         string
	format      string
	width       int
	spp         int
	depth       int
	seed        int64
	workers     int
	tileSize    int
	passes      int
	serial      bool
	list        bool
	help        bool
}

func registerFlags(fs *flag.FlagSet) *options {
	opts := &options{}
	defaults := config.Default()

	fs.StringVar(&opts.configPath, "config", "", "YAML render configuration file")
	fs.StringVar(&opts.writeConfig, "write-config", "", "Write the effective configuration to this file and exit")
	fs.StringVar(&opts.scene, "scene", defaults.Scene, "Scene to render (see -list)")
	fs.StringVar(&opts.out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.format, "format", defaults.Output.Format, "Output format: png, ppm or bmp")
	fs.IntVar(&opts.width, "width", 0, "Image width override (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel override (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth override (0 = scene default)")
	fs.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed for scene construction and sampling")
	fs.IntVar(&opts.workers, "workers", defaults.Workers, "Parallel workers (0 = CPU count)")
	fs.IntVar(&opts.tileSize, "tile", defaults.TileSize, "Tile size for parallel rendering")
	fs.IntVar(&opts.passes, "passes", defaults.Passes, "Progressive passes for parallel rendering")
	fs.BoolVar(&opts.serial, "serial", false, "Render on a single goroutine, row by row")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	return opts
}

// resolveConfig loads the config file, if any, then applies the flags the user set
func resolveConfig(fs *flag.FlagSet, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = opts.scene
		case "out":
			cfg.Output.Path = opts.out
		case "format":
			cfg.Output.Format = opts.format
		case "width":
			cfg.Overrides.ImageWidth = opts.width
		case "spp":
			cfg.Overrides.SamplesPerPixel = opts.spp
		case "depth":
			cfg.Overrides.MaxDepth = opts.depth
		case "seed":
			cfg.Seed = opts.seed
		case "workers":
			cfg.Workers = opts.workers
		case "tile":
			cfg.TileSize = opts.tileSize
		case "passes":
			cfg.Passes = opts.passes
		case "serial":
			cfg.Serial = opts.serial
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// createScene builds the configured scene and applies the overrides
func createScene(cfg *config.Config, logger core.Logger) (*scene.Scene, error) {
	s, err := scene.Create(cfg.Scene, core.NewSeededSampler(cfg.Seed), logger)
	if err != nil {
		return nil, err
	}
	s.ApplyOverrides(cfg.Overrides.ImageWidth, cfg.Overrides.SamplesPerPixel, cfg.Overrides.MaxDepth)
	return s, nil
}

// outputPath returns the configured output path or output/<scene>/render_<timestamp>.<format>
func outputPath(cfg *config.Config, now time.Time) string {
	if cfg.Output.Path != "" {
		return cfg.Output.Path
	}
	filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), cfg.Output.Format)
	return filepath.Join("output", cfg.Scene, filename)
}

// render draws the scene either serially or with the tile worker pool
func render(ctx context.Context, s *scene.Scene, cfg *config.Config, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	if cfg.Serial {
		rt := renderer.NewRaytracer(s)
		width, height := rt.ImageSize()
		img := rt.RenderPass(core.NewSeededSampler(cfg.Seed))

		spp := max(rt.GetSamplingConfig().SamplesPerPixel, 1)
		return img, renderer.RenderStats{
			TotalPixels:    width * height,
			TotalSamples:   width * height * spp,
			AverageSamples: float64(spp),
			MaxSamples:     spp,
			MinSamples:     spp,
			MaxSamplesUsed: spp,
		}, nil
	}

	progressiveConfig := renderer.DefaultProgressiveConfig()
	progressiveConfig.TileSize = cfg.TileSize
	progressiveConfig.MaxPasses = cfg.Passes
	progressiveConfig.NumWorkers = cfg.Workers
	progressiveConfig.Seed = cfg.Seed

	return renderer.NewProgressiveRaytracer(s, progressiveConfig, logger).Render(ctx)
}

// run renders the configured scene and writes the image, returning its path
func run(ctx context.Context, cfg *config.Config, logger core.Logger) (string, error) {
	s, err := createScene(cfg, logger)
	if err != nil {
		return "", err
	}

	width, height := s.GetCamera().ImageSize()
	glog.Infof("Rendering %s at %dx%d, %d samples per pixel, max depth %d",
		s.Name, width, height, s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)

	startTime := time.Now()
	img, stats, err := render(ctx, s, cfg, logger)
	if err != nil {
		return "", xerrors.Errorf("rendering %s: %w", s.Name, err)
	}
	glog.Infof("Render completed in %v: %s samples over %s pixels (%.1f per pixel)",
		time.Since(startTime), humanize.Comma(int64(stats.TotalSamples)),
		humanize.Comma(int64(stats.TotalPixels)), stats.AverageSamples)

	path := outputPath(cfg, time.Now())
	if err := exporter.WriteFile(path, cfg.Output.Format, img); err != nil {
		return "", err
	}
	if info, err := os.Stat(path); err == nil {
		glog.Infof("Render saved as %s (%s)", path, humanize.Bytes(uint64(info.Size())))
	}
	return path, nil
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Monte-Carlo path tracer")
	fmt.Println("Usage: raytracing [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.PrintDefaults()
	fmt.Println()
	printScenes()
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format> unless -out is given")
}

func printScenes() {
	fmt.Println("Available scenes:")
	for _, info := range scene.List() {
		fmt.Printf("  %-18s %s\n", info.Name, info.Description)
	}
}

func main() {
	// Log to stderr unless the user asks glog for files
	flag.Set("logtostderr", "true")
	opts := registerFlags(flag.CommandLine)
	flag.Parse()
	defer glog.Flush()

	if opts.help {
		printHelp(flag.CommandLine)
		return
	}
	if opts.list {
		printScenes()
		return
	}

	cfg, err := resolveConfig(flag.CommandLine, opts)
	if err != nil {
		glog.Exitf("Error: %v", err)
	}

	if opts.writeConfig != "" {
		if err := config.Save(cfg, opts.writeConfig); err != nil {
			glog.Exitf("Error: %v", err)
		}
		glog.Infof("Configuration written to %s", opts.writeConfig)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := run(ctx, cfg, renderer.NewDefaultLogger()); err != nil {
		if xerrors.Is(err, scene.ErrUnknownScene) {
			glog.Warningf("Use -list to see the available scenes")
		}
		glog.Exitf("Error: %v", err)
	}
}

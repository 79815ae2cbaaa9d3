// Package config loads and saves YAML render configurations.
package config

import (
	"io/ioutil"
	"strings"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// Config represents a render job
type Config struct {
	Scene     string          `yaml:"scene"`
	Seed      int64           `yaml:"seed"`
	Workers   int             `yaml:"workers"`   // 0 = use CPU count
	TileSize  int             `yaml:"tile_size"` // Edge length of parallel render tiles
	Passes    int             `yaml:"passes"`    // Progressive passes for the parallel renderer
	Serial    bool            `yaml:"serial"`    // Render on a single goroutine
	Output    OutputConfig    `yaml:"output"`
	Overrides OverridesConfig `yaml:"overrides"`
}

// OutputConfig controls where and how the image is written
type OutputConfig struct {
	Path   string `yaml:"path"`   // Empty = output/<scene>/render_<timestamp>.<format>
	Format string `yaml:"format"` // png, ppm or bmp
}

// OverridesConfig replaces scene defaults; zero values keep the scene's own setting
type OverridesConfig struct {
	ImageWidth      int `yaml:"image_width"`
	SamplesPerPixel int `yaml:"samples_per_pixel"`
	MaxDepth        int `yaml:"max_depth"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Scene:    "final-scene",
		Seed:     42,
		Workers:  0,
		TileSize: 64,
		Passes:   1,
		Output: OutputConfig{
			Format: "png",
		},
	}
}

// Load reads a configuration file on top of the defaults
func Load(filePath string) (*Config, error) {
	config := Default()

	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, xerrors.Errorf("reading config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, xerrors.Errorf("parsing config %s: %w", filePath, err)
	}

	return config, nil
}

// Save writes the configuration to a file
func Save(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return xerrors.Errorf("serializing config: %w", err)
	}

	if err := ioutil.WriteFile(filePath, data, 0644); err != nil {
		return xerrors.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch {
	case c.Scene == "":
		return xerrors.New("scene must be set")
	case c.Workers < 0:
		return xerrors.Errorf("workers must not be negative, got %d", c.Workers)
	case c.TileSize < 0:
		return xerrors.Errorf("tile_size must not be negative, got %d", c.TileSize)
	case c.Passes < 0:
		return xerrors.Errorf("passes must not be negative, got %d", c.Passes)
	case c.Overrides.ImageWidth < 0:
		return xerrors.Errorf("overrides.image_width must not be negative, got %d", c.Overrides.ImageWidth)
	case c.Overrides.SamplesPerPixel < 0:
		return xerrors.Errorf("overrides.samples_per_pixel must not be negative, got %d", c.Overrides.SamplesPerPixel)
	case c.Overrides.MaxDepth < 0:
		return xerrors.Errorf("overrides.max_depth must not be negative, got %d", c.Overrides.MaxDepth)
	}

	switch strings.ToLower(c.Output.Format) {
	case "png", "ppm", "bmp":
	default:
		return xerrors.Errorf("output.format must be png, ppm or bmp, got %q", c.Output.Format)
	}

	return nil
}

package renderer

import (
	"context"
	"image"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/xerrors"

	"github.com/iommu/raytracing/pkg/core"
)

// DefaultTileSize is the edge length of a square render tile in pixels
const DefaultTileSize = 64

// ProgressiveConfig contains configuration for parallel, multi-pass rendering
type ProgressiveConfig struct {
	TileSize           int   // Size of each tile
	InitialSamples     int   // Samples for the first pass
	MaxSamplesPerPixel int   // Total samples per pixel (0 = scene sampling config)
	MaxPasses          int   // Number of passes
	NumWorkers         int   // Number of parallel workers (0 = use CPU count)
	Seed               int64 // Base seed for the per-tile random streams
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:       DefaultTileSize,
		InitialSamples: 1,
		MaxPasses:      1,
		NumWorkers:     0,
		Seed:           42,
	}
}

// ProgressiveRaytracer renders a scene over a tile grid with a worker pool. Each pass
// raises every pixel to a higher sample count; the final pass reaches
// MaxSamplesPerPixel. Output depends only on the seed, never on the worker count.
type ProgressiveRaytracer struct {
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile
	pixelStats    [][]PixelStats // Shared pixel statistics (global image coordinates)
	raytracer     *Raytracer
	workerPool    *WorkerPool
	logger        core.Logger
}

// NewProgressiveRaytracer creates a progressive raytracer for the scene
func NewProgressiveRaytracer(scene Scene, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	raytracer := NewRaytracer(scene)
	width, height := raytracer.ImageSize()

	if config.MaxSamplesPerPixel <= 0 {
		config.MaxSamplesPerPixel = max(raytracer.GetSamplingConfig().SamplesPerPixel, 1)
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = 1
	}
	if config.InitialSamples <= 0 {
		config.InitialSamples = 1
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = nopLogger{}
	}

	return &ProgressiveRaytracer{
		width:      width,
		height:     height,
		config:     config,
		tiles:      NewTileGrid(width, height, config.TileSize, config.Seed),
		pixelStats: newPixelStatsGrid(width, height),
		raytracer:  raytracer,
		workerPool: NewWorkerPool(raytracer, config.NumWorkers),
		logger:     logger,
	}
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	if pr.config.MaxPasses == 1 || passNumber >= pr.config.MaxPasses {
		return pr.config.MaxSamplesPerPixel
	}

	if passNumber == 1 {
		return min(pr.config.InitialSamples, pr.config.MaxSamplesPerPixel)
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	return min(pr.config.InitialSamples+(passNumber-1)*samplesPerPass, pr.config.MaxSamplesPerPixel)
}

// RenderPass renders a single pass using the worker pool. tileCallback, if non-nil,
// receives each finished tile, one at a time.
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber int, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Printf("Pass %d: target %d samples per pixel (using %d workers)...\n",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	tasks := make([]TileTask, len(pr.tiles))
	for i, tile := range pr.tiles {
		tasks[i] = TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        i,
			PixelStats:    pr.pixelStats,
		}
	}

	completed := 0
	err := pr.workerPool.Run(ctx, tasks, func(result TileResult) {
		result.Tile.PassesCompleted++
		completed++
		if tileCallback == nil {
			return
		}
		tileCallback(TileCompletionResult{
			TileX:       result.Tile.Bounds.Min.X / pr.config.TileSize,
			TileY:       result.Tile.Bounds.Min.Y / pr.config.TileSize,
			TileImage:   pr.extractTileImage(result.Tile),
			PassNumber:  passNumber,
			TileNumber:  completed,
			TotalTiles:  len(pr.tiles),
			TotalPasses: pr.config.MaxPasses,
		})
	})
	if err != nil {
		return nil, RenderStats{}, xerrors.Errorf("render pass %d: %w", passNumber, err)
	}

	img, stats := pr.assembleCurrentImage(targetSamples)
	return img, stats, nil
}

// Render runs every pass and returns the final image
func (pr *ProgressiveRaytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	var (
		img   *image.RGBA
		stats RenderStats
	)
	for pass := 1; pass <= pr.config.MaxPasses; pass++ {
		startTime := time.Now()

		var err error
		img, stats, err = pr.RenderPass(ctx, pass, nil)
		if err != nil {
			return nil, RenderStats{}, err
		}

		pr.logger.Printf("Pass %d completed in %v (%s samples)\n",
			pass, time.Since(startTime), humanize.Comma(int64(stats.TotalSamples)))

		if stats.MinSamples >= pr.config.MaxSamplesPerPixel {
			break
		}
	}
	return img, stats, nil
}

// extractTileImage builds an image of one tile from the shared pixel stats
func (pr *ProgressiveRaytracer) extractTileImage(tile *Tile) *image.RGBA {
	bounds := tile.Bounds
	tileImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			stats := &pr.pixelStats[y][x]
			if stats.SampleCount > 0 {
				tileImage.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, ColorToRGBA(stats.GetColor()))
			}
		}
	}

	return tileImage
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	TileImage  *image.RGBA // Image data for just this tile
	PassNumber int         // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Tiles completed so far in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders all passes in the background and reports them on
// channels. The caller should drain the pass channel; the error channel carries at
// most one error. If options.TileUpdates is false the tile channel is closed
// immediately.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100)
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

		var tileCallback func(TileCompletionResult)
		if options.TileUpdates {
			tileCallback = func(result TileCompletionResult) {
				select {
				case tileChan <- result:
				default:
					// Slow consumers miss tile previews, never passes
				}
			}
		}

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			img, stats, err := pr.RenderPass(ctx, pass, tileCallback)
			if err != nil {
				errChan <- err
				return
			}

			isLast := pass == pr.config.MaxPasses || stats.MinSamples >= pr.config.MaxSamplesPerPixel
			select {
			case passChan <- PassResult{PassNumber: pass, Image: img, Stats: stats, IsLast: isLast}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
			if isLast {
				return
			}
		}
	}()

	return passChan, tileChan, errChan
}

// assembleCurrentImage creates an image from the shared pixel stats and computes
// render statistics in the same sweep
func (pr *ProgressiveRaytracer) assembleCurrentImage(targetSamples int) (*image.RGBA, RenderStats) {
	bounds := image.Rect(0, 0, pr.width, pr.height)
	img := image.NewRGBA(bounds)
	stats := initRenderStats(bounds, targetSamples)

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			img.SetRGBA(x, y, ColorToRGBA(pixel.GetColor()))
			stats.updateStats(pixel.SampleCount)
		}
	}

	stats.finalizeStats()
	return img, stats
}

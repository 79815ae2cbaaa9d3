package renderer

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile          *Tile
	PassNumber    int
	TargetSamples int
	TaskID        int            // Index of the tile in submission order
	PixelStats    [][]PixelStats // Shared pixel stats array to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Tile   *Tile
	Stats  RenderStats
}

// WorkerPool renders tiles in parallel on a fixed number of goroutines
type WorkerPool struct {
	raytracer  *Raytracer
	numWorkers int
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 uses the CPU count
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		raytracer:  raytracer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every task and blocks until all are done, a worker fails, or ctx is
// cancelled. The context is checked between tiles. onResult, if non-nil, is invoked
// for each finished tile, one call at a time.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask, onResult func(TileResult)) error {
	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan TileTask)

	g.Go(func() error {
		defer close(taskQueue)
		for _, task := range tasks {
			select {
			case taskQueue <- task:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var mu sync.Mutex
	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for task := range taskQueue {
				if err := ctx.Err(); err != nil {
					return err
				}

				// Each tile owns its sampler and its bounds never overlap another tile
				stats := wp.raytracer.RenderBounds(task.Tile.Bounds, task.PixelStats, task.Tile.Sampler, task.TargetSamples)

				if onResult != nil {
					mu.Lock()
					onResult(TileResult{TaskID: task.TaskID, Tile: task.Tile, Stats: stats})
					mu.Unlock()
				}
			}
			return nil
		})
	}

	return g.Wait()
}

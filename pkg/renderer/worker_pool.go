package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// PixelResult is a finished pixel sent from a worker to the collector
type PixelResult struct {
	X, Y   int
	Color  core.Vec3 // Tone-mapped color
	Worker int
}

// pixelTask is a single pixel queued for the pool strategy
type pixelTask struct {
	X, Y int
}

// WorkerPool runs the workers of one render and delivers their pixels on a
// single result channel
type WorkerPool struct {
	raytracer  *Raytracer
	numWorkers int
	strategy   Strategy

	results chan PixelResult
	errs    chan error
	stats   []WorkerStats
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewWorkerPool creates a worker pool for rt's configuration
func NewWorkerPool(rt *Raytracer) *WorkerPool {
	numWorkers := rt.config.NumWorkers()
	width := rt.config.Width

	return &WorkerPool{
		raytracer:  rt,
		numWorkers: numWorkers,
		strategy:   rt.config.Strategy,
		// Room for a full row per worker keeps workers from stalling on the collector
		results: make(chan PixelResult, numWorkers*width),
		errs:    make(chan error, numWorkers),
		stats:   make([]WorkerStats, numWorkers),
	}
}

// Start spawns all workers. The result channel is closed once every worker has returned.
func (wp *WorkerPool) Start(ctx context.Context) {
	ctx, wp.cancel = context.WithCancel(ctx)

	var tasks chan pixelTask
	if wp.strategy == StrategyPool {
		tasks = make(chan pixelTask, wp.numWorkers*4)
		go wp.feed(ctx, tasks)
	}

	for id := 0; id < wp.numWorkers; id++ {
		wp.stats[id].ID = id
		wp.wg.Add(1)
		go wp.runWorker(ctx, id, tasks)
	}

	go func() {
		wp.wg.Wait()
		wp.cancel()
		close(wp.results)
		close(wp.errs)
	}()
}

// Results returns the channel finished pixels arrive on
func (wp *WorkerPool) Results() <-chan PixelResult {
	return wp.results
}

// Err returns the first worker failure, if any. Only valid after Results is closed.
func (wp *WorkerPool) Err() error {
	return <-wp.errs
}

// Stats returns per-worker statistics. Only valid after Results is closed.
func (wp *WorkerPool) Stats() []WorkerStats {
	return wp.stats
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// feed queues every pixel in scanline order for the pool strategy
func (wp *WorkerPool) feed(ctx context.Context, tasks chan<- pixelTask) {
	defer close(tasks)
	cfg := wp.raytracer.config
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			select {
			case tasks <- pixelTask{X: x, Y: y}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// runWorker renders this worker's share of pixels. A panic is turned into an
// error and stops the other workers.
func (wp *WorkerPool) runWorker(ctx context.Context, id int, tasks <-chan pixelTask) {
	defer wp.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			wp.errs <- fmt.Errorf("%w: worker %d: %v", ErrWorkerFailed, id, r)
			wp.cancel()
		}
	}()

	sampler := core.NewPixelSampler(wp.raytracer.config.Seed)
	stats := &wp.stats[id]

	if tasks != nil {
		for task := range tasks {
			if ctx.Err() != nil {
				return
			}
			wp.renderPixel(id, task.X, task.Y, sampler, stats)
		}
		return
	}

	cfg := wp.raytracer.config
	for y := id; y < cfg.Height; y += wp.numWorkers {
		for x := 0; x < cfg.Width; x++ {
			if ctx.Err() != nil {
				return
			}
			wp.renderPixel(id, x, y, sampler, stats)
		}
	}
}

// renderPixel traces one pixel and hands it to the collector
func (wp *WorkerPool) renderPixel(id, x, y int, sampler *core.PixelSampler, stats *WorkerStats) {
	start := time.Now()
	sampler.Reset(x, y)
	color := wp.raytracer.SamplePixel(x, y, sampler)
	stats.addPixel(wp.raytracer.config.SamplesPerPixel, time.Since(start))

	wp.results <- PixelResult{X: x, Y: y, Color: color, Worker: id}
}

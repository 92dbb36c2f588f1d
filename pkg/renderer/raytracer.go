package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/geometry"
	"github.com/df07/go-sprite-raytracer/pkg/integrator"
	"github.com/df07/go-sprite-raytracer/pkg/log"
)

var logger = log.New("renderer")

// Raytracer renders a world through a camera. The world and camera are only
// read while rendering, so workers share them without locking.
type Raytracer struct {
	camera *Camera
	tracer *integrator.PathTracer
	config Config
}

// NewRaytracer creates a raytracer after validating config
func NewRaytracer(camera *Camera, world geometry.Shape, background integrator.Background, config Config) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if camera == nil || world == nil {
		return nil, fmt.Errorf("%w: camera and world are required", ErrInvalidConfig)
	}

	return &Raytracer{
		camera: camera,
		tracer: integrator.NewPathTracer(world, background, config.Emission),
		config: config,
	}, nil
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// SamplePixel averages SamplesPerPixel jittered camera rays through pixel (x, y),
// where y = 0 is the top row, and returns the tone-mapped color
func (rt *Raytracer) SamplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	width := float64(rt.config.Width)
	height := float64(rt.config.Height)
	row := float64(rt.config.Height - 1 - y) // camera t grows upwards

	colorAccum := core.Vec3{}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / width
		t := (row + jitter.Y) / height

		ray := rt.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.tracer.Radiance(ray, sampler, rt.config.MaxDepth))
	}

	return ToneMap(colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel)))
}

// Render computes every pixel once across the worker pool and collects the
// results into a framebuffer. Cancelling ctx stops the workers between pixels.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	total := rt.config.Width * rt.config.Height

	pool := NewWorkerPool(rt)
	logger.Infof("rendering %dx%d, %d spp, depth %d, %d workers (%s)",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth,
		pool.GetNumWorkers(), rt.config.Strategy)
	pool.Start(ctx)

	received := 0
	nextReport := total / 10
	for result := range pool.Results() {
		fb.Set(result.X, result.Y, result.Color)
		received++
		if nextReport > 0 && received >= nextReport && received < total {
			logger.Debugf("progress: %d%% (%d/%d pixels)", received*100/total, received, total)
			nextReport += total / 10
		}
	}

	stats := RenderStats{
		Strategy:     rt.config.Strategy,
		TotalPixels:  received,
		TotalSamples: received * rt.config.SamplesPerPixel,
		Duration:     time.Since(start),
		Workers:      pool.Stats(),
	}

	if err := pool.Err(); err != nil {
		return nil, stats, err
	}
	if received < total {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}
		return nil, stats, fmt.Errorf("%w: collected %d of %d pixels", ErrWorkerFailed, received, total)
	}

	logger.Infof("rendered %d pixels in %s", received, stats.Duration)
	return fb, stats, nil
}

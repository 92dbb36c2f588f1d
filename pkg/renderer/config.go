package renderer

import (
	"fmt"
	"runtime"

	"github.com/df07/go-sprite-raytracer/pkg/integrator"
)

// Strategy selects how pixels are distributed over workers
type Strategy string

const (
	// StrategyInterleaved gives row y to worker y % workers
	StrategyInterleaved Strategy = "interleaved"
	// StrategyPool feeds individual pixels to whichever worker is free
	StrategyPool Strategy = "pool"
)

// ParseStrategy converts a strategy name to a Strategy
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategyInterleaved, StrategyPool:
		return Strategy(name), nil
	case "":
		return StrategyInterleaved, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, name)
	}
}

// Config contains rendering configuration
type Config struct {
	Width           int      // Image width in pixels
	Height          int      // Image height in pixels
	SamplesPerPixel int      // Number of rays per pixel
	MaxDepth        int      // Maximum ray bounce depth
	Workers         int      // Number of workers, 0 = one per CPU
	Strategy        Strategy // Work distribution strategy
	Seed            uint64   // Sampling seed; equal seeds give identical images
	Emission        integrator.EmissionMode
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Workers:         0,
		Strategy:        StrategyInterleaved,
		Seed:            42,
		Emission:        integrator.EmissionAdded,
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	return nil
}

// NumWorkers returns the worker count to use, resolving 0 to the CPU count
func (c Config) NumWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

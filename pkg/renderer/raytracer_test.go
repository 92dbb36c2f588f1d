package renderer

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/geometry"
	"github.com/df07/go-sprite-raytracer/pkg/integrator"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

// createTestWorld builds a small scene with every material kind
func createTestWorld(t *testing.T) geometry.Shape {
	t.Helper()
	random := rand.New(rand.NewPCG(1, 1))

	box, err := geometry.NewBoxBVH(1, 1, 1, random)
	if err != nil {
		t.Fatalf("NewBoxBVH failed: %v", err)
	}

	objects := []geometry.Object{
		geometry.NewSprite(geometry.NewSphere(100), material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
			core.Translation(core.NewVec3(0, -100.5, -1))),
		geometry.NewSprite(geometry.NewSphere(0.5), material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3),
			core.Translation(core.NewVec3(1, 0, -1))),
		geometry.NewSprite(geometry.NewSphere(0.5), material.NewDielectric(1.5),
			core.Translation(core.NewVec3(-1, 0, -1))),
		geometry.NewSprite(geometry.NewConstantMedium(box, 1.5), material.NewIsotropic(core.NewVec3(0.2, 0.2, 0.2)),
			core.Translation(core.NewVec3(0, 0, -1.5)).Multiply(core.Rotation(0.4, core.NewVec3(0, 1, 0)))),
		geometry.NewSprite(geometry.NewRectangle(1, 1), material.NewDiffuseLight(core.NewVec3(4, 4, 4)),
			core.Translation(core.NewVec3(0, 2, -1)).Multiply(core.Rotation(math.Pi/2, core.NewVec3(1, 0, 0)))),
	}

	world, err := geometry.NewBVH(objects, random)
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}
	return world
}

func testCamera(cfg Config) *Camera {
	return NewCamera(CameraConfig{
		Eye:         core.NewVec3(0, 0.5, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        math.Pi / 2,
		AspectRatio: cfg.AspectRatio(),
		LensRadius:  0.05,
	})
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 24
	cfg.Height = 16
	cfg.SamplesPerPixel = 4
	cfg.MaxDepth = 8
	cfg.Seed = 7
	return cfg
}

func render(t *testing.T, world geometry.Shape, cfg Config) (*Framebuffer, RenderStats) {
	t.Helper()
	rt, err := NewRaytracer(testCamera(cfg), world, integrator.DefaultBackground(), cfg)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	fb, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return fb, stats
}

func TestRender_DeterministicAcrossScheduling(t *testing.T) {
	world := createTestWorld(t)
	reference, _ := render(t, world, testConfig())

	tests := []struct {
		name     string
		strategy Strategy
		workers  int
	}{
		{"Interleaved single worker", StrategyInterleaved, 1},
		{"Interleaved three workers", StrategyInterleaved, 3},
		{"Interleaved more workers than rows", StrategyInterleaved, 40},
		{"Pool single worker", StrategyPool, 1},
		{"Pool four workers", StrategyPool, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Strategy = tt.strategy
			cfg.Workers = tt.workers

			fb, _ := render(t, world, cfg)
			for i := range reference.Pixels {
				if fb.Pixels[i] != reference.Pixels[i] {
					t.Fatalf("Pixel %d differs: %v vs %v", i, fb.Pixels[i], reference.Pixels[i])
				}
			}
		})
	}
}

func TestRender_SeedChangesImage(t *testing.T) {
	world := createTestWorld(t)
	a, _ := render(t, world, testConfig())

	cfg := testConfig()
	cfg.Seed = 8
	b, _ := render(t, world, cfg)

	same := true
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected a different seed to change the image")
	}
}

func TestRender_Stats(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 3
	_, stats := render(t, createTestWorld(t), cfg)

	total := cfg.Width * cfg.Height
	if stats.TotalPixels != total {
		t.Errorf("Expected %d pixels, got %d", total, stats.TotalPixels)
	}
	if stats.TotalSamples != total*cfg.SamplesPerPixel {
		t.Errorf("Expected %d samples, got %d", total*cfg.SamplesPerPixel, stats.TotalSamples)
	}
	if len(stats.Workers) != 3 {
		t.Fatalf("Expected 3 worker entries, got %d", len(stats.Workers))
	}

	sum := 0
	for _, w := range stats.Workers {
		sum += w.Pixels
	}
	if sum != total {
		t.Errorf("Expected worker pixels to sum to %d, got %d", total, sum)
	}
	// Interleaved rows: 16 rows over 3 workers gives 6, 5, 5 rows
	if stats.Workers[0].Pixels != 6*cfg.Width {
		t.Errorf("Expected worker 0 to render 6 rows, got %d pixels", stats.Workers[0].Pixels)
	}
}

// countingShape counts hit tests and never reports a hit
type countingShape struct {
	calls atomic.Int64
}

func (c *countingShape) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	c.calls.Add(1)
	return nil, false
}

func TestWorkerPool_CoversEveryPixelOnce(t *testing.T) {
	for _, strategy := range []Strategy{StrategyInterleaved, StrategyPool} {
		t.Run(string(strategy), func(t *testing.T) {
			cfg := testConfig()
			cfg.Width, cfg.Height = 13, 7
			cfg.SamplesPerPixel = 1
			cfg.Workers = 4
			cfg.Strategy = strategy

			shape := &countingShape{}
			rt, err := NewRaytracer(testCamera(cfg), shape, integrator.DefaultBackground(), cfg)
			if err != nil {
				t.Fatalf("NewRaytracer failed: %v", err)
			}

			pool := NewWorkerPool(rt)
			pool.Start(context.Background())

			seen := make(map[[2]int]int)
			for result := range pool.Results() {
				seen[[2]int{result.X, result.Y}]++
			}
			if err := pool.Err(); err != nil {
				t.Fatalf("Unexpected worker error: %v", err)
			}

			if len(seen) != cfg.Width*cfg.Height {
				t.Errorf("Expected %d distinct pixels, got %d", cfg.Width*cfg.Height, len(seen))
			}
			for pixel, count := range seen {
				if count != 1 {
					t.Errorf("Pixel %v computed %d times", pixel, count)
				}
			}
			if got := shape.calls.Load(); got != int64(cfg.Width*cfg.Height) {
				t.Errorf("Expected one trace per pixel, got %d", got)
			}
		})
	}
}

// blockingShape cancels the render on its first hit test
type blockingShape struct {
	cancel context.CancelFunc
}

func (b *blockingShape) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	b.cancel()
	return nil, false
}

func TestRender_Cancellation(t *testing.T) {
	for _, strategy := range []Strategy{StrategyInterleaved, StrategyPool} {
		t.Run(string(strategy), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			cfg := testConfig()
			cfg.Width, cfg.Height = 64, 64
			cfg.Workers = 2
			cfg.Strategy = strategy

			rt, err := NewRaytracer(testCamera(cfg), &blockingShape{cancel: cancel}, integrator.DefaultBackground(), cfg)
			if err != nil {
				t.Fatalf("NewRaytracer failed: %v", err)
			}

			fb, stats, err := rt.Render(ctx)
			if !errors.Is(err, ErrInterrupted) || !errors.Is(err, context.Canceled) {
				t.Fatalf("Expected interrupted error, got %v", err)
			}
			if fb != nil {
				t.Error("Expected no framebuffer from a cancelled render")
			}
			if stats.TotalPixels >= cfg.Width*cfg.Height {
				t.Errorf("Expected render to stop early, got %d pixels", stats.TotalPixels)
			}
		})
	}
}

// panickingShape panics when tracing a ray that points into the upper half of the image
type panickingShape struct{}

func (panickingShape) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	if ray.Direction.Y > 0.2 {
		panic("corrupt scene node")
	}
	return nil, false
}

func TestRender_WorkerPanic(t *testing.T) {
	for _, strategy := range []Strategy{StrategyInterleaved, StrategyPool} {
		t.Run(string(strategy), func(t *testing.T) {
			cfg := testConfig()
			cfg.Workers = 3
			cfg.Strategy = strategy

			rt, err := NewRaytracer(testCamera(cfg), panickingShape{}, integrator.DefaultBackground(), cfg)
			if err != nil {
				t.Fatalf("NewRaytracer failed: %v", err)
			}

			_, _, err = rt.Render(context.Background())
			if !errors.Is(err, ErrWorkerFailed) {
				t.Fatalf("Expected ErrWorkerFailed, got %v", err)
			}
		})
	}
}

func TestNewRaytracer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Zero width", func(c *Config) { c.Width = 0 }},
		{"Negative height", func(c *Config) { c.Height = -1 }},
		{"Zero samples", func(c *Config) { c.SamplesPerPixel = 0 }},
		{"Negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"Negative workers", func(c *Config) { c.Workers = -2 }},
		{"Unknown strategy", func(c *Config) { c.Strategy = "tiles" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			if _, err := NewRaytracer(testCamera(testConfig()), &countingShape{}, integrator.DefaultBackground(), cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if _, err := NewRaytracer(nil, &countingShape{}, integrator.DefaultBackground(), testConfig()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig without a camera, got %v", err)
	}
}

func TestToneMap(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected core.Vec3
	}{
		{"Black", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0)},
		{"Quarter gray", core.NewVec3(0.25, 0.25, 0.25), core.NewVec3(127.995, 127.995, 127.995)},
		{"Overexposed", core.NewVec3(16, 2, 1), core.NewVec3(255, 255, 255)},
		{"Negative", core.NewVec3(-1, 0, 0), core.NewVec3(0, 0, 0)},
		{"NaN", core.NewVec3(math.NaN(), 0, 0), core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToneMap(tt.input)
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFramebuffer_Image(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Set(2, 0, core.NewVec3(255, 128.7, 0))

	img := fb.Image()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Unexpected image bounds %v", img.Bounds())
	}
	c := img.RGBAAt(2, 0)
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Errorf("Unexpected pixel %v", c)
	}
	if img.RGBAAt(0, 1).R != 0 {
		t.Errorf("Expected untouched pixels to stay black")
	}
}

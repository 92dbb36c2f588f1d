package integrator

import (
	"fmt"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/geometry"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

// EmissionMode controls whether light emitted by surfaces reaches the image
type EmissionMode int

const (
	// EmissionAdded adds each hit's emission: L = Le + attenuation * L(scattered)
	EmissionAdded EmissionMode = iota
	// EmissionIgnored drops emission, so lights only block rays and the sky is the only source
	EmissionIgnored
)

// String returns the mode's name as used in configuration
func (m EmissionMode) String() string {
	switch m {
	case EmissionIgnored:
		return "ignored"
	default:
		return "added"
	}
}

// ParseEmissionMode converts "added" or "ignored" to an EmissionMode
func ParseEmissionMode(name string) (EmissionMode, error) {
	switch name {
	case "", "added":
		return EmissionAdded, nil
	case "ignored":
		return EmissionIgnored, nil
	default:
		return EmissionAdded, fmt.Errorf("integrator: unknown emission mode %q", name)
	}
}

// Background is the vertical gradient returned for rays that leave the scene
type Background struct {
	Bottom core.Vec3 // color looking straight down
	Top    core.Vec3 // color looking straight up
}

// DefaultBackground is a white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// BlackBackground returns a background that contributes no light
func BlackBackground() Background {
	return Background{}
}

// Color blends from Bottom to Top by 0.5*(unit direction y + 1)
func (b Background) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

// PathTracer implements unidirectional path tracing with uniform material sampling
type PathTracer struct {
	World      geometry.Shape
	Background Background
	Emission   EmissionMode
}

// NewPathTracer creates a new path tracer over world
func NewPathTracer(world geometry.Shape, background Background, emission EmissionMode) *PathTracer {
	return &PathTracer{
		World:      world,
		Background: background,
		Emission:   emission,
	}
}

// Radiance estimates the light arriving along ray, following at most maxDepth bounces.
// The path is walked iteratively with a running throughput.
func (pt *PathTracer) Radiance(ray core.Ray, sampler core.Sampler, maxDepth int) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for depth := maxDepth; depth > 0; depth-- {
		hit, isHit := pt.World.Hit(ray, sampler)
		if !isHit {
			color = color.Add(throughput.MultiplyVec(pt.Background.Color(ray)))
			break
		}

		// Geometry without a material absorbs
		if hit.Material == nil {
			break
		}

		if pt.Emission == EmissionAdded {
			emitted := material.Emitted(hit.Material, hit.UV, hit.Point)
			color = color.Add(throughput.MultiplyVec(emitted))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			break
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		if throughput == (core.Vec3{}) {
			break
		}
		ray = scatter.Scattered
	}

	return color
}

// Radiance traces ray through world with the default sky and emission added
func Radiance(ray core.Ray, world geometry.Shape, sampler core.Sampler, maxDepth int) core.Vec3 {
	return NewPathTracer(world, DefaultBackground(), EmissionAdded).Radiance(ray, sampler, maxDepth)
}

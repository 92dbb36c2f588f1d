package geometry

import (
	"math"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

// mediumStep is how far past the entry point the exit search starts
const mediumStep = 1e-6

// ConstantMedium is a homogeneous participating medium (fog or smoke) filling
// a closed boundary. Wrap it in a sprite with an Isotropic material.
type ConstantMedium struct {
	Boundary Object
	Density  float64
}

// NewConstantMedium creates a medium of the given density inside boundary
func NewConstantMedium(boundary Object, density float64) *ConstantMedium {
	return &ConstantMedium{Boundary: boundary, Density: density}
}

// Hit samples a free-path distance inside the boundary. It returns a hit at the
// scatter point, or no hit when the ray passes through without scattering.
// The hit carries no material.
func (m *ConstantMedium) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	if m.Density <= 0 {
		return nil, false
	}

	first, ok := m.Boundary.Hit(ray, sampler)
	if !ok {
		return nil, false
	}

	speed := ray.Direction.Length()
	if speed == 0 {
		return nil, false
	}

	var entryT, chord float64
	var normal core.Vec3

	if first.Normal.Dot(ray.Direction) < 0 {
		// Entering: find where the ray leaves the boundary
		inside := core.NewRay(first.Point.Add(ray.Direction.Multiply(mediumStep)), ray.Direction)
		exit, ok := m.Boundary.Hit(inside, sampler)
		if !ok {
			return nil, false
		}
		entryT = first.T
		chord = (exit.T + mediumStep) * speed
		normal = first.Normal.Add(exit.Normal).Normalize()
		if normal.LengthSquared() == 0 {
			normal = ray.Direction.Negate().Normalize()
		}
	} else {
		// Origin already inside the medium
		chord = first.T * speed
		normal = first.Normal
	}

	distance := -math.Log(1-sampler.Get1D()) / m.Density
	if distance > chord {
		return nil, false
	}

	t := entryT + distance/speed
	return &material.HitRecord{
		T:      t,
		Point:  ray.At(t),
		Normal: normal,
	}, true
}

// BoundingBox returns the bounds of the boundary
func (m *ConstantMedium) BoundingBox() (core.AABB, bool) {
	return m.Boundary.BoundingBox()
}

package geometry

import (
	"math"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

// rectangleThickness is the half-depth of a rectangle's bounding slab
const rectangleThickness = 1e-4

// Rectangle is a width x height rectangle in the local z=0 plane, centred on the origin,
// facing +z.
type Rectangle struct {
	Width  float64
	Height float64
}

// NewRectangle creates a new rectangle
func NewRectangle(width, height float64) *Rectangle {
	return &Rectangle{Width: width, Height: height}
}

// Hit tests if a ray crosses the rectangle
func (r *Rectangle) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	t := -ray.Origin.Z / ray.Direction.Z
	if math.IsNaN(t) || math.IsInf(t, 0) || t < hitEpsilon {
		return nil, false
	}

	point := ray.At(t)
	halfWidth := r.Width / 2
	halfHeight := r.Height / 2
	if point.X < -halfWidth || point.X > halfWidth || point.Y < -halfHeight || point.Y > halfHeight {
		return nil, false
	}

	return &material.HitRecord{
		T:      t,
		Point:  point,
		Normal: core.NewVec3(0, 0, 1),
		UV:     core.NewVec2((point.X+halfWidth)/r.Width, (point.Y+halfHeight)/r.Height),
	}, true
}

// BoundingBox returns the rectangle's extent with a thin slab in z
func (r *Rectangle) BoundingBox() (core.AABB, bool) {
	halfWidth := math.Abs(r.Width / 2)
	halfHeight := math.Abs(r.Height / 2)
	return core.NewAABB(
		core.NewVec3(-halfWidth, -halfHeight, -rectangleThickness),
		core.NewVec3(halfWidth, halfHeight, rectangleThickness),
	), true
}

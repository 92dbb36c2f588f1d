package geometry

import (
	"math"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

// Sphere represents a sphere centred on the local origin.
// Place it in the world with a Sprite or Transformed.
type Sphere struct {
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	oc := ray.Origin

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if root <= hitEpsilon {
		root = (-b + sqrtD) / (2 * a)
		if root <= hitEpsilon {
			return nil, false
		}
	}

	point := ray.At(root)
	normal := point.Multiply(1.0 / s.Radius)

	return &material.HitRecord{
		T:      root,
		Point:  point,
		Normal: normal,
		UV:     sphereUV(normal),
	}, true
}

// sphereUV maps a point on the unit sphere to texture coordinates
func sphereUV(p core.Vec3) core.Vec2 {
	y := math.Max(-1, math.Min(1, p.Y))
	return core.NewVec2(
		0.5+math.Atan2(p.X, p.Z)/(2*math.Pi),
		1-math.Acos(y)/math.Pi,
	)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() (core.AABB, bool) {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)
	return core.NewAABB(radius.Negate(), radius), true
}

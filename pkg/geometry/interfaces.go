package geometry

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hits closer than hitEpsilon are ignored so scattered rays do not re-hit their origin.
type Shape interface {
	Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool)
}

// Bounded interface for objects with a finite extent. The bool is false when
// the object has no extent (e.g. under a degenerate transform).
type Bounded interface {
	BoundingBox() (core.AABB, bool)
}

// Object is anything that can be placed in a BVH
type Object interface {
	Shape
	Bounded
}

// hitEpsilon is the smallest accepted ray parameter for primitive intersections
const hitEpsilon = 1e-6

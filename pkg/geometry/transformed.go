package geometry

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

// Transformed places an object in the world through a transform.
// Rays are taken into the object's local space by the cached inverse, and hits
// are mapped back out. A non-invertible transform yields no hits and no bounds.
type Transformed struct {
	Inner     Object
	Transform core.Transform
}

// NewTransformed wraps inner with the placement matrix m
func NewTransformed(inner Object, m core.Mat4) *Transformed {
	return &Transformed{Inner: inner, Transform: core.NewTransform(m)}
}

// Hit intersects the inner object in local space. The ray parameter is the
// same in both spaces, so T is kept as is.
func (t *Transformed) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	local, ok := t.Transform.ToLocal(ray)
	if !ok {
		return nil, false
	}

	hit, ok := t.Inner.Hit(local, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = t.Transform.PointToWorld(hit.Point)
	hit.Normal = t.Transform.NormalToWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the box around the transformed corners of the inner bounds
func (t *Transformed) BoundingBox() (core.AABB, bool) {
	if !t.Transform.Invertible() {
		return core.AABB{}, false
	}
	inner, ok := t.Inner.BoundingBox()
	if !ok {
		return core.AABB{}, false
	}
	return inner.Transform(t.Transform.Matrix()), true
}

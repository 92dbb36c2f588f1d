package geometry

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

// List tests every object in turn and keeps the closest hit
type List struct {
	Objects []Object
}

// NewList creates a new object list
func NewList(objects ...Object) *List {
	return &List{Objects: objects}
}

// Hit returns the closest hit over all objects
func (l *List) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	for _, object := range l.Objects {
		hit, ok := object.Hit(ray, sampler)
		if !ok {
			continue
		}
		if closest == nil || hit.T < closest.T {
			closest = hit
		}
	}
	return closest, closest != nil
}

// BoundingBox returns the union of the bounded members
func (l *List) BoundingBox() (core.AABB, bool) {
	var box core.AABB
	found := false
	for _, object := range l.Objects {
		b, ok := object.BoundingBox()
		if !ok {
			continue
		}
		if !found {
			box = b
			found = true
		} else {
			box = box.Union(b)
		}
	}
	return box, found
}

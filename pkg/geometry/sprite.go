package geometry

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

// Sprite is a renderable instance: one geometry, one material, one placement.
// The same geometry can back many sprites.
type Sprite struct {
	Transformed
	Material material.Material
}

// NewSprite creates a sprite placing shape in the world with matrix m
func NewSprite(shape Object, mat material.Material, m core.Mat4) *Sprite {
	return &Sprite{
		Transformed: Transformed{Inner: shape, Transform: core.NewTransform(m)},
		Material:    mat,
	}
}

// Hit intersects the placed geometry and tags the hit with the sprite's material
func (s *Sprite) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	hit, ok := s.Transformed.Hit(ray, sampler)
	if !ok {
		return nil, false
	}
	hit.Material = s.Material
	return hit, true
}

package material

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// DiffuseLight is an emissive material that absorbs every incoming ray
type DiffuseLight struct {
	Emission Texture
}

// NewDiffuseLight creates a light emitting a solid color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a light whose emission comes from a texture
func NewTexturedDiffuseLight(emission Texture) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter never scatters; lights terminate the path
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emission texture sampled at the hit point
func (d *DiffuseLight) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return d.Emission.Evaluate(uv, point)
}

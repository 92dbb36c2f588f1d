package material

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: every direction is equally likely
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates an isotropic material with a solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// Scatter sends the ray from the scatter point towards a random point in the unit sphere
func (i *Isotropic) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, core.RandomInUnitSphere(sampler)),
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}

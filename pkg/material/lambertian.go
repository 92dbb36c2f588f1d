package material

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter bounces the ray towards normal + a random point in the unit sphere
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	normal := facingNormal(rayIn, hit.Normal)
	direction := normal.Add(core.RandomInUnitSphere(sampler))

	// Catch the random offset cancelling the normal
	if direction.LengthSquared() < 1e-16 {
		direction = normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: l.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}

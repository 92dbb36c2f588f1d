package material

import (
	"math"

	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter refracts the ray by Snell's law, or reflects it on total internal reflection
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)
	unitDirection := rayIn.Direction.Normalize()

	// Determine if we're entering or exiting the material
	normal := hit.Normal
	refractionRatio := 1.0 / d.RefractiveIndex
	if unitDirection.Dot(normal) > 0 {
		normal = normal.Negate()
		refractionRatio = d.RefractiveIndex
	}

	direction, ok := refract(unitDirection, normal, refractionRatio)
	if !ok {
		direction = unitDirection.Reflect(normal)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// refract bends unit vector v through a surface with unit normal n facing against v.
// It returns false on total internal reflection.
func refract(v, n core.Vec3, ratio float64) (core.Vec3, bool) {
	cosTheta := v.Dot(n)
	discriminant := 1.0 - ratio*ratio*(1.0-cosTheta*cosTheta)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return v.Subtract(n.Multiply(cosTheta)).Multiply(ratio).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

package material

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// DefaultGrazingEpsilon is how far below the surface plane (as a cosine) a
// fuzzed reflection may point before it is absorbed.
const DefaultGrazingEpsilon = 1e-6

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo         Texture // Metal color
	Fuzz           float64 // 0.0 = perfect mirror, 1.0 = very fuzzy
	GrazingEpsilon float64
}

// NewMetal creates a new metal material with a solid color
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return NewTexturedMetal(NewSolidColor(albedo), fuzz)
}

// NewTexturedMetal creates a new metal material with texture
func NewTexturedMetal(albedo Texture, fuzz float64) *Metal {
	// Clamp fuzz to valid range
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz, GrazingEpsilon: DefaultGrazingEpsilon}
}

// Scatter reflects the ray and perturbs it by the fuzz radius
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	normal := facingNormal(rayIn, hit.Normal)
	reflected := rayIn.Direction.Normalize().Reflect(normal)

	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	// Absorbed if the fuzzed direction dips into the surface
	if reflected.Normalize().Dot(normal) <= -m.GrazingEpsilon {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}

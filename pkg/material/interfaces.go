package material

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns the continuation ray and its attenuation, or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(uv core.Vec2, point core.Vec3) core.Vec3
}

// Emitted returns the light emitted by m at the given surface point,
// or black for materials that do not emit
func Emitted(m Material, uv core.Vec2, point core.Vec3) core.Vec3 {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emitted(uv, point)
	}
	return core.Vec3{}
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// It never owns the geometry that produced it.
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal at intersection
	UV       core.Vec2 // Surface parameterization for texture lookup
	Material Material  // Material of the hit object, nil until a sprite assigns one
}

// facingNormal returns the hit normal flipped, if needed, to face against the incoming ray
func facingNormal(rayIn core.Ray, normal core.Vec3) core.Vec3 {
	if rayIn.Direction.Dot(normal) > 0 {
		return normal.Negate()
	}
	return normal
}

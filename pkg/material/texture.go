package material

import (
	"math"

	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// DefaultCheckerFrequency is the number of checker periods per unit of UV
const DefaultCheckerFrequency = 10.0

// Checker alternates between two textures in UV space, so the pattern
// follows the surface under scaling transforms.
type Checker struct {
	Even      Texture
	Odd       Texture
	Frequency float64
}

// NewChecker creates a checker with the default frequency
func NewChecker(even, odd Texture) *Checker {
	return &Checker{Even: even, Odd: odd, Frequency: DefaultCheckerFrequency}
}

// Evaluate picks a sub-texture by the sign of sin(2πfu)·sin(2πfv)
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	frequency := c.Frequency
	if frequency == 0 {
		frequency = DefaultCheckerFrequency
	}
	sines := math.Sin(2*math.Pi*frequency*uv.X) * math.Sin(2*math.Pi*frequency*uv.Y)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}

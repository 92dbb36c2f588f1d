package renderer

import (
	"math"

	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Eye           core.Vec3 // Position of the camera
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in radians
	AspectRatio   float64   // Width / height
	FocusDistance float64   // Distance to the plane in perfect focus (0 = |LookAt - Eye|)
	LensRadius    float64   // 0 = pinhole camera
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Camera basis vectors
	lensRadius      float64
}

// NewCamera creates a camera with depth of field from config
func NewCamera(config CameraConfig) *Camera {
	aspectRatio := config.AspectRatio
	if aspectRatio <= 0 {
		aspectRatio = 1
	}
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Eye).Length()
	}

	viewportHeight := 2.0 * math.Tan(config.VFov/2)
	viewportWidth := aspectRatio * viewportHeight

	// Calculate camera coordinate system
	w := config.Eye.Subtract(config.LookAt).Normalize() // Points backward (away from target)
	u := config.Up.Cross(w).Normalize()                 // Points right
	v := w.Cross(u)                                     // Points up

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.Eye.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          config.Eye,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.LensRadius,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1 and
// (0, 0) is the bottom-left corner. The lens point is drawn from sampler.
// The returned direction is unit length.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(origin, target.Subtract(origin).Normalize())
}

// Forward returns the direction the camera is looking
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

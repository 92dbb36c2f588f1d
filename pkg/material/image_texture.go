package material

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// LookupFunc returns the raster color at UV coordinates.
// Decoding and storing the raster is left to the caller.
type LookupFunc func(u, v float64) core.Vec3

// ImageTexture provides color from an externally loaded 2D image
type ImageTexture struct {
	Lookup LookupFunc
}

// NewImageTexture creates a new image texture
func NewImageTexture(lookup LookupFunc) *ImageTexture {
	return &ImageTexture{Lookup: lookup}
}

// Evaluate samples the image at the hit's UV coordinates
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Lookup == nil {
		return core.Vec3{}
	}
	return t.Lookup(uv.X, uv.Y)
}

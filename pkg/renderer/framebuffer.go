package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// Framebuffer holds tone-mapped pixel values in [0, 255], row-major with row 0 at the top
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Set stores the color of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Image converts the framebuffer to an RGBA image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c.X),
				G: uint8(c.Y),
				B: uint8(c.Z),
				A: 255,
			})
		}
	}
	return img
}

// ToneMap converts an averaged linear color to output range: gamma 2 (square root),
// scaled to 255 and clamped. Non-finite components map to 0.
func ToneMap(c core.Vec3) core.Vec3 {
	mapped := c.Sqrt().Multiply(255.99)
	return core.NewVec3(clampChannel(mapped.X), clampChannel(mapped.Y), clampChannel(mapped.Z))
}

func clampChannel(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(255, v))
}

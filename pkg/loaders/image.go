package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/log"
)

var logger = log.New("loaders")

// ErrUnsupportedImage is returned for files whose extension has no decoder
var ErrUnsupportedImage = errors.New("loaders: unsupported image format")

// TGA has no magic number, so decoders are chosen by extension rather than sniffed
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
}

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 at the top, channels in [0, 1]
}

// LoadImage loads a PNG, JPEG, GIF, BMP or TGA image and converts it to a Vec3
// color array. Images whose longer side exceeds maxSize are downscaled to fit;
// maxSize <= 0 keeps the original resolution.
func LoadImage(filename string, maxSize int) (*ImageData, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w %q: %s", ErrUnsupportedImage, ext, filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaders: open image %s: %w", filename, err)
	}
	defer file.Close()

	img, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("loaders: decode image %s: %w", filename, err)
	}
	bounds := img.Bounds()
	logger.Debugf("decoded texture %s (%dx%d)", filename, bounds.Dx(), bounds.Dy())

	if maxSize > 0 && (bounds.Dx() > maxSize || bounds.Dy() > maxSize) {
		img = downscale(img, maxSize)
		logger.Infof("downscaled texture %s to %dx%d", filename, img.Bounds().Dx(), img.Bounds().Dy())
	}

	return NewImageData(img), nil
}

// downscale resamples img so that its longer side equals maxSize
func downscale(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	scale := float64(maxSize) / float64(max(bounds.Dx(), bounds.Dy()))
	width := max(1, int(math.Round(float64(bounds.Dx())*scale)))
	height := max(1, int(math.Round(float64(bounds.Dy())*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// NewImageData converts a decoded image to a Vec3 color array
func NewImageData(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Lookup returns the nearest pixel for texture coordinates (u, v). Coordinates
// wrap around and v = 0 is the bottom row. Usable as a material.LookupFunc.
func (d *ImageData) Lookup(u, v float64) core.Vec3 {
	if d == nil || d.Width == 0 || d.Height == 0 {
		return core.Vec3{}
	}

	u = u - math.Floor(u)
	v = 1 - (v - math.Floor(v))

	x := min(int(u*float64(d.Width)), d.Width-1)
	y := min(int(v*float64(d.Height)), d.Height-1)
	return d.Pixels[y*d.Width+x]
}

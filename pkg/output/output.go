package output

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"github.com/df07/go-sprite-raytracer/pkg/renderer"
)

var (
	ErrUnknownFormat = errors.New("output: unknown image format")
)

// Format is an output image encoding
type Format string

const (
	FormatPPM  Format = "ppm"  // Plain-text P3 pixmap
	FormatPNG  Format = "png"  // Lossless PNG
	FormatWebP Format = "webp" // Lossless WebP
)

// ParseFormat converts a format name such as "png" to a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(name, "."))); f {
	case FormatPPM, FormatPNG, FormatWebP:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	default:
		return "image/x-portable-pixmap"
	}
}

// Write encodes fb to w
func Write(w io.Writer, fb *renderer.Framebuffer, format Format) error {
	switch format {
	case FormatPPM:
		return writePPM(w, fb)
	case FormatPNG:
		if err := png.Encode(w, fb.Image()); err != nil {
			return fmt.Errorf("output: png encode: %w", err)
		}
		return nil
	case FormatWebP:
		if err := nativewebp.Encode(w, fb.Image(), nil); err != nil {
			return fmt.Errorf("output: webp encode: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Save writes fb to path, creating parent directories and choosing the format
// from the extension
func Save(path string, fb *renderer.Framebuffer) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("output: create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	if err := Write(f, fb, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writePPM writes a P3 pixmap: a header, then one "r g b" line per pixel from
// the top row down, each channel truncated to an integer
func writePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			fmt.Fprintf(bw, "%d %d %d\n", int(c.X), int(c.Y), int(c.Z))
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("output: ppm write: %w", err)
	}
	return nil
}

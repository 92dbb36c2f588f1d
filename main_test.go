package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sprite-raytracer/pkg/log"
	"github.com/df07/go-sprite-raytracer/pkg/scene"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"sprite-raytracer"}, args...))
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		args   []string
		header []byte
	}{
		{"PPM", "cornell.ppm", []string{"--strategy", "pool", "cornell"}, []byte("P3\n16 12\n255\n")},
		{"PNG", "book.png", []string{"--scene", "book-one"}, []byte("\x89PNG")},
		{"WebP", "smoke.webp", []string{"--emission", "ignored", "cornell-smoke"}, []byte("RIFF")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "renders", tt.file)
			args := append([]string{"render", "--width", "16", "--height", "12", "--spp", "1", "--depth", "2",
				"--workers", "2", "--out", out}, tt.args...)

			if _, err := run(t, args...); err != nil {
				t.Fatalf("render failed: %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("Expected output file: %v", err)
			}
			if !bytes.HasPrefix(data, tt.header) {
				t.Errorf("Unexpected file header %q", data[:min(len(data), 16)])
			}
		})
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Unknown scene", []string{"teapot"}, "unknown scene"},
		{"Bad strategy", []string{"--strategy", "tiles", "cornell"}, "unknown strategy"},
		{"Bad emission", []string{"--emission", "loud", "cornell"}, "unknown emission mode"},
		{"Bad size", []string{"--width", "0", "cornell"}, "width must be positive"},
		{"Bad extension", []string{"--out", "render.tiff", "cornell"}, "unknown image format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--width", "4", "--height", "4", "--spp", "1"}, tt.args...)
			_, err := run(t, args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	_, err := run(t, "render", "missing-scene")
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestScenesCommand(t *testing.T) {
	out, err := run(t, "scenes")
	if err != nil {
		t.Fatalf("scenes failed: %v", err)
	}

	for _, name := range scene.Names() {
		if !strings.Contains(out, name) {
			t.Errorf("Expected %q in scene list:\n%s", name, out)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Verbose", []string{"-v", "scenes"}, "cornell"},
		{"Very verbose", []string{"-vv", "scenes"}, "book-one"},
		{"Version", []string{"--version"}, "0.1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("%v failed: %v", tt.args, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected %q in output:\n%s", tt.want, out)
			}
		})
	}
	log.SetLevel(log.Notice)
}

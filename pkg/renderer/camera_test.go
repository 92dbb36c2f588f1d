package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sprite-raytracer/pkg/core"
)

func TestCameraForward(t *testing.T) {
	config := CameraConfig{
		Eye:         core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        math.Pi / 4,
		AspectRatio: 1.0,
	}
	camera := NewCamera(config)

	forward := camera.Forward()
	expected := core.NewVec3(0, 0, -1)
	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCameraGetRay_Pinhole(t *testing.T) {
	config := CameraConfig{
		Eye:         core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        math.Pi / 2, // viewport spans [-1,1] at distance 1
		AspectRatio: 2.0,
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"Center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"Bottom left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"Top right", 1, 1, core.NewVec3(2, 1, -1)},
		{"Top middle", 0.5, 1, core.NewVec3(0, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if ray.Origin != config.Eye {
				t.Errorf("Expected pinhole origin %v, got %v", config.Eye, ray.Origin)
			}
			expected := tt.expected.Normalize()
			if ray.Direction.Subtract(expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
			}
		})
	}
}

func TestCameraGetRay_DepthOfField(t *testing.T) {
	config := CameraConfig{
		Eye:           core.NewVec3(0, 0, 5),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          math.Pi / 4,
		AspectRatio:   1.0,
		FocusDistance: 5,
		LensRadius:    0.5,
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(3)

	// Every ray through the image centre converges on the focus point
	focus := core.NewVec3(0, 0, 0)
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		offset := ray.Origin.Subtract(config.Eye)
		if offset.Length() > config.LensRadius+1e-9 || math.Abs(offset.Z) > 1e-9 {
			t.Fatalf("Lens origin %v is off the lens disk", ray.Origin)
		}

		toFocus := focus.Subtract(ray.Origin).Normalize()
		if ray.Direction.Subtract(toFocus).Length() > 1e-9 {
			t.Fatalf("Expected ray towards focus point, got %v", ray.Direction)
		}
	}
}

func TestCamera_DefaultFocusDistance(t *testing.T) {
	// Zero focus distance focuses on the look-at point
	withDefault := NewCamera(CameraConfig{
		Eye: core.NewVec3(0, 0, 10), LookAt: core.Vec3{}, Up: core.NewVec3(0, 1, 0),
		VFov: math.Pi / 3, AspectRatio: 1,
	})
	explicit := NewCamera(CameraConfig{
		Eye: core.NewVec3(0, 0, 10), LookAt: core.Vec3{}, Up: core.NewVec3(0, 1, 0),
		VFov: math.Pi / 3, AspectRatio: 1, FocusDistance: 10,
	})

	sampler := core.NewSeededSampler(1)
	a := withDefault.GetRay(0.2, 0.7, sampler)
	b := explicit.GetRay(0.2, 0.7, sampler)
	if a.Direction.Subtract(b.Direction).Length() > 1e-9 {
		t.Errorf("Expected identical rays, got %v and %v", a.Direction, b.Direction)
	}
}

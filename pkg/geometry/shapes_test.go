package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

const tolerance = 1e-9

func TestSphere_Hit_Distance(t *testing.T) {
	sphere := NewSphere(1.5)
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectedT float64
	}{
		{"Along -z", core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1), 8.5},
		{"Along +x", core.NewVec3(-4, 0, 0), core.NewVec3(1, 0, 0), 2.5},
		{"Non-unit direction", core.NewVec3(0, 10, 0), core.NewVec3(0, -2, 0), 4.25},
		{"From inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(core.NewRay(tt.origin, tt.direction), sampler)
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if math.Abs(hit.Normal.Length()-1) > tolerance {
				t.Errorf("Expected unit normal, got %v", hit.Normal)
			}
			if hit.Material != nil {
				t.Errorf("Expected bare sphere to carry no material")
			}
		})
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(1)
	sampler := core.NewSeededSampler(1)

	misses := []core.Ray{
		core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0)),
		core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)), // sphere behind the ray
	}
	for _, ray := range misses {
		if hit, ok := sphere.Hit(ray, sampler); ok {
			t.Errorf("Expected miss for %v, got hit at t=%f", ray, hit.T)
		}
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec2
	}{
		{"North pole", core.NewVec3(0, 1, 0), core.NewVec2(0.5, 1)},
		{"South pole", core.NewVec3(0, -1, 0), core.NewVec2(0.5, 0)},
		{"Front", core.NewVec3(0, 0, 1), core.NewVec2(0.5, 0.5)},
		{"Right", core.NewVec3(1, 0, 0), core.NewVec2(0.75, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := sphereUV(tt.point)
			if math.Abs(uv.X-tt.expected.X) > tolerance || math.Abs(uv.Y-tt.expected.Y) > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, uv)
			}
		})
	}
}

func TestRectangle_Hit(t *testing.T) {
	rect := NewRectangle(2, 4)
	sampler := core.NewSeededSampler(1)

	hit, ok := rect.Hit(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), sampler)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-1) > tolerance {
		t.Errorf("Expected t=1, got %f", hit.T)
	}
	if hit.Point.Length() > tolerance {
		t.Errorf("Expected hit at origin, got %v", hit.Point)
	}
	if math.Abs(hit.UV.X-0.5) > tolerance || math.Abs(hit.UV.Y-0.5) > tolerance {
		t.Errorf("Expected UV (0.5,0.5), got %v", hit.UV)
	}
	if hit.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestRectangle_Miss(t *testing.T) {
	rect := NewRectangle(2, 4)
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"Parallel to plane", core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0))},
		{"Outside width", core.NewRay(core.NewVec3(1.5, 0, 1), core.NewVec3(0, 0, -1))},
		{"Outside height", core.NewRay(core.NewVec3(0, 2.5, 1), core.NewVec3(0, 0, -1))},
		{"Behind origin", core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))},
		{"Origin on plane", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := rect.Hit(tt.ray, sampler); ok {
				t.Error("Expected miss, but got hit")
			}
		})
	}
}

func TestTransformed_RoundTrip(t *testing.T) {
	// A unit sphere moved to (5,0,0) must be hit where a sphere at (5,0,0) would be
	m := core.Translation(core.NewVec3(5, 0, 0)).Multiply(core.Rotation(math.Pi/3, core.NewVec3(1, 1, 0)))
	placed := NewTransformed(NewSphere(1), m)
	sampler := core.NewSeededSampler(1)

	hit, ok := placed.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), sampler)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-4) > tolerance {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
	if hit.Point.Subtract(core.NewVec3(4, 0, 0)).Length() > tolerance {
		t.Errorf("Expected point (4,0,0), got %v", hit.Point)
	}
	if hit.Normal.Subtract(core.NewVec3(-1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Expected normal (-1,0,0), got %v", hit.Normal)
	}
}

func TestTransformed_ScaledNormal(t *testing.T) {
	// Squash a sphere into an ellipsoid; the normal must stay perpendicular to the surface
	placed := NewTransformed(NewSphere(1), core.Scaling(core.NewVec3(2, 1, 1)))
	sampler := core.NewSeededSampler(1)

	hit, ok := placed.Hit(core.NewRay(core.NewVec3(1, 5, 0), core.NewVec3(0, -1, 0)), sampler)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	// Ellipse x²/4 + y² = 1, gradient (x/2, 2y)
	expected := core.NewVec3(hit.Point.X/2, 2*hit.Point.Y, 0).Normalize()
	if hit.Normal.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expected, hit.Normal)
	}
}

func TestTransformed_Degenerate(t *testing.T) {
	placed := NewTransformed(NewSphere(1), core.Scaling(core.NewVec3(1, 0, 1)))
	sampler := core.NewSeededSampler(1)

	if _, ok := placed.Hit(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)), sampler); ok {
		t.Error("Expected degenerate transform to produce no hits")
	}
	if _, ok := placed.BoundingBox(); ok {
		t.Error("Expected degenerate transform to produce no bounds")
	}
}

func TestSprite_StampsMaterial(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sprite := NewSprite(NewSphere(1), mat, core.Translation(core.NewVec3(0, 0, -3)))
	sampler := core.NewSeededSampler(1)

	hit, ok := sprite.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), sampler)
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material != mat {
		t.Errorf("Expected sprite material on hit record")
	}
	if math.Abs(hit.T-2) > tolerance {
		t.Errorf("Expected t=2, got %f", hit.T)
	}

	box, ok := sprite.BoundingBox()
	if !ok {
		t.Fatal("Expected sprite bounds")
	}
	if box.Center().Subtract(core.NewVec3(0, 0, -3)).Length() > tolerance {
		t.Errorf("Expected bounds centred on (0,0,-3), got %v", box)
	}
}

func TestBox_Faces(t *testing.T) {
	box, err := NewBoxBVH(2, 4, 6, nil)
	if err != nil {
		t.Fatalf("NewBoxBVH failed: %v", err)
	}
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectedT float64
		normal    core.Vec3
	}{
		{"Front", core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1), 7, core.NewVec3(0, 0, 1)},
		{"Back", core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1), 7, core.NewVec3(0, 0, -1)},
		{"Left", core.NewVec3(-10, 0, 0), core.NewVec3(1, 0, 0), 9, core.NewVec3(-1, 0, 0)},
		{"Right", core.NewVec3(10, 0, 0), core.NewVec3(-1, 0, 0), 9, core.NewVec3(1, 0, 0)},
		{"Top", core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0), 8, core.NewVec3(0, 1, 0)},
		{"Bottom", core.NewVec3(0, -10, 0), core.NewVec3(0, 1, 0), 8, core.NewVec3(0, -1, 0)},
		{"From inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 2, core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := box.Hit(core.NewRay(tt.origin, tt.direction), sampler)
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.Normal.Subtract(tt.normal).Length() > 1e-9 {
				t.Errorf("Expected outward normal %v, got %v", tt.normal, hit.Normal)
			}
		})
	}

	bounds, _ := box.BoundingBox()
	if bounds.Max.Subtract(core.NewVec3(1, 2, 3)).Length() > 1e-3 {
		t.Errorf("Expected bounds max near (1,2,3), got %v", bounds.Max)
	}
}

func TestList_Closest(t *testing.T) {
	near := NewTransformed(NewSphere(1), core.Translation(core.NewVec3(0, 0, -5)))
	far := NewTransformed(NewSphere(1), core.Translation(core.NewVec3(0, 0, -10)))
	list := NewList(far, near)

	hit, ok := list.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), core.NewSeededSampler(1))
	if !ok {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-4) > tolerance {
		t.Errorf("Expected closest hit at t=4, got %f", hit.T)
	}

	if _, ok := NewList().BoundingBox(); ok {
		t.Error("Expected empty list to have no bounds")
	}
}

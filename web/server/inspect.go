package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/material"
	"github.com/df07/go-sprite-raytracer/pkg/renderer"
	"github.com/df07/go-sprite-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// describeTexture reports a texture's color when it is a solid color
func describeTexture(properties map[string]interface{}, key string, tex material.Texture) {
	switch t := tex.(type) {
	case *material.SolidColor:
		properties[key] = [3]float64{t.Color.X, t.Color.Y, t.Color.Z}
		properties["color"] = hexColor(t.Color)
	case *material.Checker:
		properties[key] = "checker"
		properties["frequency"] = t.Frequency
	case *material.ImageTexture:
		properties[key] = "image"
	}
}

// hexColor formats c as #rrggbb with each channel clamped to [0, 1]
func hexColor(c core.Vec3) string {
	channel := func(v float64) int {
		switch {
		case !(v > 0): // also catches NaN
			return 0
		case v > 1:
			return 255
		}
		return int(v * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		describeTexture(properties, "albedo", m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		describeTexture(properties, "albedo", m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		describeTexture(properties, "emission", m.Emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		describeTexture(properties, "albedo", m.Albedo)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of the pixel and returns the first hit, if any
func inspectPixel(sc *scene.Scene, width, height, pixelX, pixelY int) (core.Ray, *material.HitRecord, bool) {
	cameraConfig := sc.Camera
	cameraConfig.AspectRatio = float64(width) / float64(height)
	cameraConfig.LensRadius = 0 // No lens jitter for inspection
	camera := renderer.NewCamera(cameraConfig)

	s := (float64(pixelX) + 0.5) / float64(width)
	t := (float64(height-1-pixelY) + 0.5) / float64(height)
	sampler := core.NewSeededSampler(0)
	ray := camera.GetRay(s, t, sampler)

	hit, ok := sc.World.Hit(ray, sampler)
	return ray, hit, ok
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	name := values.Get("scene")
	if name == "" {
		name = defaultScene
	}

	sc, err := buildScene(values, name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	width, err := parseIntParam(values, "width", sc.Config.Width)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	height, err := parseIntParam(values, "height", sc.Config.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid x coordinate"))
		return
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid y coordinate"))
		return
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, fmt.Errorf("pixel coordinates out of bounds"))
		return
	}

	ray, hit, ok := inspectPixel(sc, width, height, pixelX, pixelY)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(hit.Material)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    ray.Direction.Dot(hit.Normal) < 0,
		Properties:   map[string]interface{}{"material": materialProps},
	})
}

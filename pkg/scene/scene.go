package scene

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-sprite-raytracer/pkg/geometry"
	"github.com/df07/go-sprite-raytracer/pkg/integrator"
	"github.com/df07/go-sprite-raytracer/pkg/log"
	"github.com/df07/go-sprite-raytracer/pkg/renderer"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Camera      renderer.CameraConfig // AspectRatio is filled in from the render size
	World       geometry.Shape        // Usually a BVH over every sprite
	Background  integrator.Background
	Config      renderer.Config // Recommended render settings
}

// Options control how a scene is built
type Options struct {
	Seed        uint64 // Drives random placement and BVH split axes
	TexturePath string // Image mapped onto the textures scene, empty uses a checker
	TextureSize int    // Longest texture side after loading, 0 keeps the original size
}

// NewRaytracer creates a raytracer for this scene. The camera aspect ratio
// follows config's image size.
func (s *Scene) NewRaytracer(config renderer.Config) (*renderer.Raytracer, error) {
	cameraConfig := s.Camera
	cameraConfig.AspectRatio = config.AspectRatio()
	return renderer.NewRaytracer(renderer.NewCamera(cameraConfig), s.World, s.Background, config)
}

// newRandom returns the generator for one scene. Each scene uses its own
// stream so that equal seeds give different layouts across scenes.
func newRandom(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// newWorld wraps objects in a BVH
func newWorld(objects []geometry.Object, random *rand.Rand) (geometry.Shape, error) {
	world, err := geometry.NewBVH(objects, random)
	if err != nil {
		return nil, err
	}
	logger.Debugf("built world BVH over %d objects", len(objects))
	return world, nil
}

func degrees(d float64) float64 {
	return d * math.Pi / 180
}

package scene

import (
	"math/rand/v2"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/geometry"
	"github.com/df07/go-sprite-raytracer/pkg/integrator"
	"github.com/df07/go-sprite-raytracer/pkg/material"
	"github.com/df07/go-sprite-raytracer/pkg/renderer"
)

const (
	cornellStream      = 2
	cornellSmokeStream = 3

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize = 555.0
)

var (
	yAxis = core.NewVec3(0, 1, 0)
	xAxis = core.NewVec3(1, 0, 0)
)

// cornellWalls returns the five walls and the ceiling light of the Cornell box.
// The open side faces -z, towards the camera.
func cornellWalls() []geometry.Object {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	wall := geometry.NewRectangle(boxSize, boxSize)
	half := boxSize / 2

	place := func(position core.Vec3, angle float64, axis core.Vec3) core.Mat4 {
		return core.Translation(position).Multiply(core.Rotation(degrees(angle), axis))
	}

	return []geometry.Object{
		// Right wall (green) at x = 555
		geometry.NewSprite(wall, green, place(core.NewVec3(boxSize, half, half), -90, yAxis)),
		// Left wall (red) at x = 0
		geometry.NewSprite(wall, red, place(core.NewVec3(0, half, half), 90, yAxis)),
		// Ceiling light, one unit below the ceiling
		geometry.NewSprite(geometry.NewRectangle(130, 105), light, place(core.NewVec3(half, boxSize-1, half), 90, xAxis)),
		// Floor
		geometry.NewSprite(wall, white, place(core.NewVec3(half, 0, half), -90, xAxis)),
		// Ceiling
		geometry.NewSprite(wall, white, place(core.NewVec3(half, boxSize, half), 90, xAxis)),
		// Back wall, one unit taller to close the seam with the ceiling
		geometry.NewSprite(geometry.NewRectangle(boxSize, boxSize+1), white, place(core.NewVec3(half, half, boxSize), 180, yAxis)),
	}
}

// cornellBoxes returns the front (short) and back (tall) box shapes and their placements
func cornellBoxes(random *rand.Rand) (front, back geometry.Object, frontPlace, backPlace core.Mat4, err error) {
	front, err = geometry.NewBoxBVH(165, 165, 165, random)
	if err != nil {
		return nil, nil, core.Mat4{}, core.Mat4{}, err
	}
	back, err = geometry.NewBoxBVH(165, 330, 165, random)
	if err != nil {
		return nil, nil, core.Mat4{}, core.Mat4{}, err
	}

	frontPlace = core.Translation(core.NewVec3(212.5, 82.5, 147.5)).Multiply(core.Rotation(degrees(-18), yAxis))
	backPlace = core.Translation(core.NewVec3(347.5, 165, 377.5)).Multiply(core.Rotation(degrees(15), yAxis))
	return front, back, frontPlace, backPlace, nil
}

// cornellScene assembles the shared camera, background and settings around objects
func cornellScene(objects []geometry.Object, random *rand.Rand, seed uint64) (*Scene, error) {
	world, err := newWorld(objects, random)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultConfig()
	config.Width = 400
	config.Height = 400 // Square aspect ratio for Cornell box
	config.SamplesPerPixel = 200
	config.MaxDepth = 50
	config.Seed = seed

	return &Scene{
		Camera: renderer.CameraConfig{
			Eye:    core.NewVec3(boxSize/2, boxSize/2, -800), // Outside the box looking in
			LookAt: core.NewVec3(boxSize/2, boxSize/2, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   degrees(40),
		},
		World:      world,
		Background: integrator.BlackBackground(),
		Config:     config,
	}, nil
}

// NewCornellScene creates the classic Cornell box with two rotated white boxes
func NewCornellScene(opts Options) (*Scene, error) {
	random := newRandom(opts.Seed, cornellStream)

	front, back, frontPlace, backPlace, err := cornellBoxes(random)
	if err != nil {
		return nil, err
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	objects := append(cornellWalls(),
		geometry.NewSprite(front, white, frontPlace),
		geometry.NewSprite(back, white, backPlace),
	)
	return cornellScene(objects, random, opts.Seed)
}

// NewCornellSmokeScene creates the Cornell box with both boxes filled with
// smoke instead: white in front, black at the back
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	random := newRandom(opts.Seed, cornellSmokeStream)

	front, back, frontPlace, backPlace, err := cornellBoxes(random)
	if err != nil {
		return nil, err
	}

	const density = 0.01
	objects := append(cornellWalls(),
		geometry.NewSprite(geometry.NewConstantMedium(front, density),
			material.NewIsotropic(core.NewVec3(1, 1, 1)), frontPlace),
		geometry.NewSprite(geometry.NewConstantMedium(back, density),
			material.NewIsotropic(core.NewVec3(0, 0, 0)), backPlace),
	)

	s, err := cornellScene(objects, random, opts.Seed)
	if err != nil {
		return nil, err
	}
	// Light bounces around inside the smoke much more
	s.Config.MaxDepth = 100
	return s, nil
}

package scene

import (
	"math"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/geometry"
	"github.com/df07/go-sprite-raytracer/pkg/integrator"
	"github.com/df07/go-sprite-raytracer/pkg/loaders"
	"github.com/df07/go-sprite-raytracer/pkg/material"
	"github.com/df07/go-sprite-raytracer/pkg/renderer"
)

const texturesStream = 4

// NewTexturesScene creates a scene demonstrating texture mapping: a checker
// ground, a center sphere carrying opts.TexturePath (or a fine checker when
// unset), a checker metal sphere, glass, and a checker-patterned light panel.
func NewTexturesScene(opts Options) (*Scene, error) {
	random := newRandom(opts.Seed, texturesStream)

	solid := func(r, g, b float64) material.Texture {
		return material.NewSolidColor(core.NewVec3(r, g, b))
	}

	// 40x40 ground with 10 periods per side gives 2 unit squares
	groundChecker := material.NewChecker(solid(0.2, 0.3, 0.1), solid(0.9, 0.9, 0.9))
	ground := geometry.NewSprite(
		geometry.NewRectangle(40, 40),
		material.NewTexturedLambertian(groundChecker),
		core.Rotation(-math.Pi/2, xAxis),
	)

	var centerTexture material.Texture
	if opts.TexturePath != "" {
		img, err := loaders.LoadImage(opts.TexturePath, opts.TextureSize)
		if err != nil {
			return nil, err
		}
		centerTexture = material.NewImageTexture(img.Lookup)
	} else {
		fine := material.NewChecker(solid(0.8, 0.2, 0.2), solid(0.9, 0.9, 0.9))
		fine.Frequency = 16
		centerTexture = fine
	}

	metalChecker := material.NewChecker(solid(0.8, 0.6, 0.2), solid(0.7, 0.7, 0.7))
	metalChecker.Frequency = 6

	lightChecker := material.NewChecker(solid(4, 4, 4), solid(0.5, 0.5, 2))
	lightChecker.Frequency = 2

	sphere := geometry.NewSphere(1)
	objects := []geometry.Object{
		ground,
		geometry.NewSprite(sphere, material.NewTexturedLambertian(centerTexture),
			core.Translation(core.NewVec3(0, 1, 0))),
		geometry.NewSprite(sphere, material.NewTexturedMetal(metalChecker, 0.1),
			core.Translation(core.NewVec3(4, 1, 0))),
		geometry.NewSprite(sphere, material.NewDielectric(1.5),
			core.Translation(core.NewVec3(-4, 1, 0))),
		geometry.NewSprite(geometry.NewRectangle(6, 2), material.NewTexturedDiffuseLight(lightChecker),
			core.Translation(core.NewVec3(0, 4, -3)).Multiply(core.Rotation(math.Pi/6, xAxis))),
	}

	world, err := newWorld(objects, random)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultConfig()
	config.Width = 800
	config.Height = 450
	config.SamplesPerPixel = 100
	config.MaxDepth = 20
	config.Seed = opts.Seed

	return &Scene{
		Camera: renderer.CameraConfig{
			Eye:    core.NewVec3(13, 2, 3),
			LookAt: core.NewVec3(0, 1, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   degrees(25),
		},
		World:      world,
		Background: integrator.DefaultBackground(),
		Config:     config,
	}, nil
}

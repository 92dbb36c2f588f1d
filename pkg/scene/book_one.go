package scene

import (
	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/geometry"
	"github.com/df07/go-sprite-raytracer/pkg/integrator"
	"github.com/df07/go-sprite-raytracer/pkg/material"
	"github.com/df07/go-sprite-raytracer/pkg/renderer"
)

const bookOneStream = 1

// NewBookOneScene creates the random spheres scene: a ground sphere, a field
// of small spheres with random materials, three large spheres, all lit by a
// sky-blue emissive sphere that encloses everything.
func NewBookOneScene(opts Options) (*Scene, error) {
	random := newRandom(opts.Seed, bookOneStream)

	sphere := func(radius float64, mat material.Material, center core.Vec3) geometry.Object {
		return geometry.NewSprite(geometry.NewSphere(radius), mat, core.Translation(center))
	}

	objects := []geometry.Object{
		// The ground is a very large sphere
		sphere(1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)), core.NewVec3(0, -1000, 0)),
		// Sky
		sphere(2000, material.NewDiffuseLight(core.NewVec3(0.5, 0.7, 1.0)), core.Vec3{}),
	}

	// One small sphere per grid cell, kept clear of the large metal sphere
	small := geometry.NewSphere(0.2)
	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			choice := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case choice < 0.3:
				albedo := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
				mat = material.NewLambertian(albedo.MultiplyVec(albedo))
			case choice < 0.6:
				albedo := core.NewVec3(
					0.5+0.5*random.Float64(),
					0.5+0.5*random.Float64(),
					0.5+0.5*random.Float64(),
				)
				mat = material.NewMetal(albedo, 0.5*random.Float64())
			default:
				mat = material.NewDielectric(1.5)
			}
			objects = append(objects, geometry.NewSprite(small, mat, core.Translation(center)))
		}
	}

	objects = append(objects,
		sphere(1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)), core.NewVec3(-4, 1, 0)),
		sphere(1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0), core.NewVec3(4, 1, 0)),
		sphere(1.0, material.NewDielectric(1.5), core.NewVec3(0, 1, 0)),
	)

	world, err := newWorld(objects, random)
	if err != nil {
		return nil, err
	}

	config := renderer.DefaultConfig()
	config.Width = 800
	config.Height = 400
	config.SamplesPerPixel = 100
	config.MaxDepth = 100
	config.Seed = opts.Seed

	return &Scene{
		Camera: renderer.CameraConfig{
			Eye:           core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          degrees(20),
			FocusDistance: 10,
			LensRadius:    0.05,
		},
		World:      world,
		Background: integrator.DefaultBackground(),
		Config:     config,
	}, nil
}

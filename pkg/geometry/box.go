package geometry

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-sprite-raytracer/pkg/core"
)

// NewBox returns the six faces of a width x height x depth box centred on the
// origin. Each face is a rectangle moved into place with its normal facing out.
func NewBox(width, height, depth float64) []Object {
	x := core.NewVec3(1, 0, 0)
	y := core.NewVec3(0, 1, 0)
	quarter := math.Pi / 2

	face := func(w, h float64, m core.Mat4) Object {
		return NewTransformed(NewRectangle(w, h), m)
	}

	return []Object{
		// front
		face(width, height, core.Translation(core.NewVec3(0, 0, depth/2))),
		// left
		face(depth, height, core.Translation(core.NewVec3(-width/2, 0, 0)).Multiply(core.Rotation(-quarter, y))),
		// back
		face(width, height, core.Translation(core.NewVec3(0, 0, -depth/2)).Multiply(core.Rotation(math.Pi, y))),
		// right
		face(depth, height, core.Translation(core.NewVec3(width/2, 0, 0)).Multiply(core.Rotation(quarter, y))),
		// top
		face(width, depth, core.Translation(core.NewVec3(0, height/2, 0)).Multiply(core.Rotation(-quarter, x))),
		// bottom
		face(width, depth, core.Translation(core.NewVec3(0, -height/2, 0)).Multiply(core.Rotation(quarter, x))),
	}
}

// NewBoxBVH builds a box and wraps its faces in their own BVH, ready to be placed by a sprite
func NewBoxBVH(width, height, depth float64, random *rand.Rand) (*BVH, error) {
	return NewBVH(NewBox(width, height, depth), random)
}

package geometry

import "errors"

var (
	ErrEmptyBVH = errors.New("geometry: cannot build a BVH over zero objects")
)

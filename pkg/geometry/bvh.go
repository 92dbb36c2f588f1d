package geometry

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/df07/go-sprite-raytracer/pkg/core"
	"github.com/df07/go-sprite-raytracer/pkg/log"
	"github.com/df07/go-sprite-raytracer/pkg/material"
)

var logger = log.New("geometry")

// BVH is a node of a Bounding Volume Hierarchy. Children are either further
// nodes or scene objects; Right is nil for a single-object leaf. Volume always
// bounds both children.
type BVH struct {
	Volume core.AABB
	Left   Object
	Right  Object
}

// NewBVH builds a hierarchy over objects, splitting each node along an axis
// chosen with random. Objects without bounds can never be hit and are left out.
// The input slice is not modified.
func NewBVH(objects []Object, random *rand.Rand) (*BVH, error) {
	entries := make([]bvhEntry, 0, len(objects))
	for _, object := range objects {
		box, ok := object.BoundingBox()
		if !ok {
			continue
		}
		entries = append(entries, bvhEntry{object: object, box: box})
	}

	if len(entries) == 0 {
		return nil, ErrEmptyBVH
	}
	if skipped := len(objects) - len(entries); skipped > 0 {
		logger.Debugf("BVH: skipped %d unbounded objects", skipped)
	}

	bvh := buildBVH(entries, random)
	stats := bvh.stats()
	logger.Debugf("BVH: %d objects, %d nodes, depth %d", stats.leaves, stats.totalNodes, stats.maxDepth)
	return bvh, nil
}

// bvhEntry pairs an object with its precomputed bounds
type bvhEntry struct {
	object Object
	box    core.AABB
}

// buildBVH recursively splits entries at the median along a random axis
func buildBVH(entries []bvhEntry, random *rand.Rand) *BVH {
	axis := randomAxis(random)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].box.Min.Axis(axis) < entries[j].box.Min.Axis(axis)
	})

	switch len(entries) {
	case 1:
		return &BVH{Volume: entries[0].box, Left: entries[0].object}
	case 2:
		return &BVH{
			Volume: entries[0].box.Union(entries[1].box),
			Left:   entries[0].object,
			Right:  entries[1].object,
		}
	}

	mid := len(entries) / 2
	left := buildBVH(entries[:mid], random)
	right := buildBVH(entries[mid:], random)
	return &BVH{
		Volume: left.Volume.Union(right.Volume),
		Left:   left,
		Right:  right,
	}
}

// randomAxis picks 0, 1 or 2, falling back to the global source when random is nil
func randomAxis(random *rand.Rand) int {
	if random == nil {
		return rand.IntN(3)
	}
	return random.IntN(3)
}

// Hit tests the node volume, then both children, and keeps the closer hit
func (b *BVH) Hit(ray core.Ray, sampler core.Sampler) (*material.HitRecord, bool) {
	if !b.Volume.Hit(ray, 0, math.Inf(1)) {
		return nil, false
	}

	var closest *material.HitRecord
	for _, child := range [2]Object{b.Left, b.Right} {
		if child == nil {
			continue
		}
		hit, ok := child.Hit(ray, sampler)
		if !ok || math.IsInf(hit.T, 1) {
			continue
		}
		if closest == nil || hit.T < closest.T {
			closest = hit
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the node volume
func (b *BVH) BoundingBox() (core.AABB, bool) {
	return b.Volume, true
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes int
	leaves     int
	maxDepth   int
}

// stats walks the tree and counts nodes, leaf objects and depth
func (b *BVH) stats() bvhStats {
	var s bvhStats
	b.collectStats(0, &s)
	return s
}

func (b *BVH) collectStats(depth int, s *bvhStats) {
	s.totalNodes++
	if depth > s.maxDepth {
		s.maxDepth = depth
	}
	for _, child := range [2]Object{b.Left, b.Right} {
		if child == nil {
			continue
		}
		if node, ok := child.(*BVH); ok {
			node.collectStats(depth+1, s)
		} else {
			s.leaves++
		}
	}
}

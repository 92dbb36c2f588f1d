package core

import (
	"math"
	"math/rand/v2"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewSeededSampler creates a sampler backed by a PCG generator with the given seed
func NewSeededSampler(seed uint64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// PixelSampler is a sampler whose stream depends only on a render seed and a
// pixel coordinate, so a pixel's samples do not depend on which worker
// computes it or in what order.
type PixelSampler struct {
	seed uint64
	pcg  *rand.PCG
	RandomSampler
}

// NewPixelSampler creates a pixel sampler for the given render seed
func NewPixelSampler(seed uint64) *PixelSampler {
	pcg := rand.NewPCG(seed, 0)
	return &PixelSampler{
		seed:          seed,
		pcg:           pcg,
		RandomSampler: RandomSampler{random: rand.New(pcg)},
	}
}

// Reset positions the sampler at the start of the stream for pixel (x, y)
func (p *PixelSampler) Reset(x, y int) {
	p.pcg.Seed(p.seed, mixPixel(x, y))
}

// mixPixel hashes a pixel coordinate into a well-distributed stream id (splitmix64 finalizer)
func mixPixel(x, y int) uint64 {
	z := uint64(uint32(x))<<32 | uint64(uint32(y))
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// RandomInUnitSphere returns a uniformly distributed point strictly inside the unit sphere
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := sampler.Get3D().Multiply(2).Subtract(NewVec3(1, 1, 1))
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomInUnitDisk returns a uniformly distributed point inside the unit disk in the xy plane
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

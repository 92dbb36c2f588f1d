package core

import "math"

// Mat4 is a row-major 4x4 matrix acting on column vectors (M * v)
type Mat4 [16]float64

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a matrix that moves points by offset
func Translation(offset Vec3) Mat4 {
	m := Identity()
	m[3] = offset.X
	m[7] = offset.Y
	m[11] = offset.Z
	return m
}

// Scaling returns a matrix that scales each axis independently
func Scaling(factors Vec3) Mat4 {
	m := Identity()
	m[0] = factors.X
	m[5] = factors.Y
	m[10] = factors.Z
	return m
}

// Rotation returns a right-handed rotation of radians around axis
// (Rodrigues' formula). The axis is normalized first.
func Rotation(radians float64, axis Vec3) Mat4 {
	a := axis.Normalize()
	x, y, z := a.X, a.Y, a.Z
	s := math.Sin(radians)
	c := math.Cos(radians)
	t := 1 - c

	return Mat4{
		x*x*t + c, x*y*t - z*s, x*z*t + y*s, 0,
		y*x*t + z*s, y*y*t + c, y*z*t - x*s, 0,
		z*x*t - y*s, z*y*t + x*s, z*z*t + c, 0,
		0, 0, 0, 1,
	}
}

// Multiply returns m * other, so other is applied first
func (m Mat4) Multiply(other Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// Transpose returns the transposed matrix
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[col*4+row] = m[row*4+col]
		}
	}
	return r
}

// cofactors returns the 2x2 sub-determinants shared by Determinant and Inverse
func (m Mat4) cofactors() [12]float64 {
	return [12]float64{
		m[0]*m[5] - m[1]*m[4],
		m[0]*m[6] - m[2]*m[4],
		m[0]*m[7] - m[3]*m[4],
		m[1]*m[6] - m[2]*m[5],
		m[1]*m[7] - m[3]*m[5],
		m[2]*m[7] - m[3]*m[6],
		m[8]*m[13] - m[9]*m[12],
		m[8]*m[14] - m[10]*m[12],
		m[8]*m[15] - m[11]*m[12],
		m[9]*m[14] - m[10]*m[13],
		m[9]*m[15] - m[11]*m[13],
		m[10]*m[15] - m[11]*m[14],
	}
}

// Determinant returns the determinant of the matrix
func (m Mat4) Determinant() float64 {
	b := m.cofactors()
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// Inverse returns the inverse matrix, or false if the matrix is singular
func (m Mat4) Inverse() (Mat4, bool) {
	b := m.cofactors()
	det := b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
	if det == 0 || math.IsNaN(det) {
		return Mat4{}, false
	}
	inv := 1.0 / det

	return Mat4{
		(m[5]*b[11] - m[6]*b[10] + m[7]*b[9]) * inv,
		(m[2]*b[10] - m[1]*b[11] - m[3]*b[9]) * inv,
		(m[13]*b[5] - m[14]*b[4] + m[15]*b[3]) * inv,
		(m[10]*b[4] - m[9]*b[5] - m[11]*b[3]) * inv,
		(m[6]*b[8] - m[4]*b[11] - m[7]*b[7]) * inv,
		(m[0]*b[11] - m[2]*b[8] + m[3]*b[7]) * inv,
		(m[14]*b[2] - m[12]*b[5] - m[15]*b[1]) * inv,
		(m[8]*b[5] - m[10]*b[2] + m[11]*b[1]) * inv,
		(m[4]*b[10] - m[5]*b[8] + m[7]*b[6]) * inv,
		(m[1]*b[8] - m[0]*b[10] - m[3]*b[6]) * inv,
		(m[12]*b[4] - m[13]*b[2] + m[15]*b[0]) * inv,
		(m[9]*b[2] - m[8]*b[4] - m[11]*b[0]) * inv,
		(m[5]*b[7] - m[4]*b[9] - m[6]*b[6]) * inv,
		(m[0]*b[9] - m[1]*b[7] + m[2]*b[6]) * inv,
		(m[13]*b[1] - m[12]*b[3] - m[14]*b[0]) * inv,
		(m[8]*b[3] - m[9]*b[1] + m[10]*b[0]) * inv,
	}, true
}

// TransformPoint applies the matrix to a position (w = 1)
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]
	z := m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]
	w := m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]
	if w != 1 && w != 0 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// TransformDirection applies the matrix to a direction (w = 0)
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		X: m[0]*d.X + m[1]*d.Y + m[2]*d.Z,
		Y: m[4]*d.X + m[5]*d.Y + m[6]*d.Z,
		Z: m[8]*d.X + m[9]*d.Y + m[10]*d.Z,
	}
}

// Transform is a placement matrix with its inverse and determinant computed
// once. Intersection tests against transformed objects run the inverse on
// every ray, so it is never recomputed per query.
type Transform struct {
	matrix      Mat4
	inverse     Mat4
	normal      Mat4 // transpose of the inverse, maps local normals to world space
	determinant float64
	invertible  bool
}

// NewTransform caches the inverse and determinant of m
func NewTransform(m Mat4) Transform {
	inverse, ok := m.Inverse()
	return Transform{
		matrix:      m,
		inverse:     inverse,
		normal:      inverse.Transpose(),
		determinant: m.Determinant(),
		invertible:  ok,
	}
}

// Matrix returns the forward matrix
func (t Transform) Matrix() Mat4 { return t.matrix }

// Determinant returns the cached determinant
func (t Transform) Determinant() float64 { return t.determinant }

// Inverse returns the cached inverse, or false for a degenerate transform
func (t Transform) Inverse() (Mat4, bool) {
	return t.inverse, t.invertible
}

// Invertible reports whether the transform has an inverse
func (t Transform) Invertible() bool { return t.invertible }

// ToLocal maps a world-space ray into the transform's local space.
// The ray parameter t is preserved by the mapping.
func (t Transform) ToLocal(ray Ray) (Ray, bool) {
	if !t.invertible {
		return Ray{}, false
	}
	return Ray{
		Origin:    t.inverse.TransformPoint(ray.Origin),
		Direction: t.inverse.TransformDirection(ray.Direction),
	}, true
}

// PointToWorld maps a local position to world space
func (t Transform) PointToWorld(p Vec3) Vec3 {
	return t.matrix.TransformPoint(p)
}

// NormalToWorld maps a local surface normal to a unit world-space normal
func (t Transform) NormalToWorld(n Vec3) Vec3 {
	return t.normal.TransformDirection(n).Normalize()
}

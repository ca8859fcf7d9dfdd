package math3d

import "math"

// Mat2 is a row-major 2x2 matrix: m[row*2+col].
type Mat2 [4]float64

// Identity2 returns the 2x2 identity matrix.
func Identity2() Mat2 {
	return Mat2{
		1, 0,
		0, 1,
	}
}

// Get returns the element at (row, col).
func (m Mat2) Get(row, col int) float64 {
	return m[row*2+col]
}

// Mul multiplies two matrices: a * b.
func (a Mat2) Mul(b Mat2) Mat2 {
	var m Mat2
	for row := range 2 {
		for col := range 2 {
			var sum float64
			for k := range 2 {
				sum += a[row*2+k] * b[k*2+col]
			}
			m[row*2+col] = sum
		}
	}
	return m
}

// MulVec2 transforms v as a column vector: M*v.
func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[1]*v.Y,
		m[2]*v.X + m[3]*v.Y,
	}
}

// Det returns the determinant.
func (m Mat2) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Inverse returns the inverse matrix and true, or the zero value and false
// when the matrix is singular (|det| <= epsilon).
func (m Mat2) Inverse() (Mat2, bool) {
	det := m.Det()
	if math.Abs(det) <= epsilon {
		return Mat2{}, false
	}
	invDet := 1.0 / det
	return Mat2{
		m[3] * invDet, -m[1] * invDet,
		-m[2] * invDet, m[0] * invDet,
	}, true
}

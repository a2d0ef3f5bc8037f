// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pix

import "math"

// RowMatrix is a 3x3 matrix stored in row-major order.
//
// It is the working representation for color-space conversion and for
// affine transformations over homogeneous 2D points.
type RowMatrix [9]float32

// ColMatrix is a 3x3 matrix stored as three columns.
type ColMatrix [3][3]float32

// OuterProduct returns the matrix a * bᵀ for column vectors a and b.
func OuterProduct(a, b [3]float32) RowMatrix {
	return RowMatrix{
		a[0] * b[0], a[0] * b[1], a[0] * b[2],
		a[1] * b[0], a[1] * b[1], a[1] * b[2],
		a[2] * b[0], a[2] * b[1], a[2] * b[2],
	}
}

// Diagonal returns the diagonal matrix with entries x, y, z.
func Diagonal(x, y, z float32) RowMatrix {
	return RowMatrix{
		x, 0, 0,
		0, y, 0,
		0, 0, z,
	}
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() RowMatrix {
	return Diagonal(1, 1, 1)
}

// Transpose returns the transposed matrix.
func (m RowMatrix) Transpose() RowMatrix {
	return RowMatrix{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Col converts to the column-major representation.
func (m RowMatrix) Col() ColMatrix {
	return ColMatrix{
		{m[0], m[3], m[6]},
		{m[1], m[4], m[7]},
		{m[2], m[5], m[8]},
	}
}

// Row converts to the row-major representation.
func (c ColMatrix) Row() RowMatrix {
	return RowMatrix{
		c[0][0], c[1][0], c[2][0],
		c[0][1], c[1][1], c[2][1],
		c[0][2], c[1][2], c[2][2],
	}
}

// Det returns the determinant.
func (c ColMatrix) Det() float32 {
	det2 := func(ma, mb, na, nb float32) float32 {
		return ma*nb - na*mb
	}
	x, y, z := c[0], c[1], c[2]
	return x[0]*det2(y[1], y[2], z[1], z[2]) -
		x[1]*det2(y[0], y[2], z[0], z[2]) +
		x[2]*det2(y[0], y[1], z[0], z[1])
}

// adj returns the adjugate in row-major form.
func (c ColMatrix) adj() RowMatrix {
	det := func(c1, c2, r1, r2 int) float32 {
		return c[c1][r1]*c[c2][r2] - c[c2][r1]*c[c1][r2]
	}
	return RowMatrix{
		det(1, 2, 1, 2), -det(1, 2, 0, 2), det(1, 2, 0, 1),
		-det(0, 2, 1, 2), det(0, 2, 0, 2), -det(0, 2, 0, 1),
		det(0, 1, 1, 2), -det(0, 1, 0, 2), det(0, 1, 0, 1),
	}
}

// Inv returns the inverse. The result contains NaN or Inf entries when
// the matrix is singular.
func (c ColMatrix) Inv() RowMatrix {
	adj := c.adj()
	det := c.Det()
	var out RowMatrix
	for i, v := range adj {
		out[i] = v / det
	}
	return out
}

// Inv returns the inverse. The result contains NaN or Inf entries when
// the matrix is singular.
func (m RowMatrix) Inv() RowMatrix {
	return m.Col().Inv()
}

// Det returns the determinant.
func (m RowMatrix) Det() float32 {
	return m.Col().Det()
}

// MulColumn returns m · col.
func (m RowMatrix) MulColumn(col [3]float32) [3]float32 {
	dot := func(r []float32) float32 {
		return r[0]*col[0] + r[1]*col[1] + r[2]*col[2]
	}
	return [3]float32{dot(m[0:3]), dot(m[3:6]), dot(m[6:9])}
}

// Mul returns m · other.
func (m RowMatrix) Mul(other ColMatrix) ColMatrix {
	return ColMatrix{
		m.MulColumn(other[0]),
		m.MulColumn(other[1]),
		m.MulColumn(other[2]),
	}
}

// MulPoint multiplies with a homogeneous 2D point. The result may be
// NaN or infinite when the matrix is not a valid point transform.
func (m RowMatrix) MulPoint(x, y float32) (float32, float32) {
	v := m.MulColumn([3]float32{x, y, 1})
	return v[0] / v[2], v[1] / v[2]
}

// Mat3x3Std140 lays the matrix out as a std140 mat3x3: an array of
// columns, each padded to 16 bytes.
func (m RowMatrix) Mat3x3Std140() [12]float32 {
	return [12]float32{
		m[0], m[3], m[6], 0,
		m[1], m[4], m[7], 0,
		m[2], m[5], m[8], 0,
	}
}

// IsFinite reports whether every entry is a finite number.
func (m RowMatrix) IsFinite() bool {
	for _, v := range m {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Affine is a validated affine (or projective) transformation over
// image coordinates, as consumed by [CommandBuffer.Affine].
type Affine struct {
	transform RowMatrix
}

// NewAffine wraps a transformation matrix. It returns false when the
// matrix contains non-finite entries.
func NewAffine(transform RowMatrix) (Affine, bool) {
	if !transform.IsFinite() {
		return Affine{}, false
	}
	return Affine{transform: transform}, true
}

// Transform returns the underlying matrix.
func (a Affine) Transform() RowMatrix {
	return a.transform
}

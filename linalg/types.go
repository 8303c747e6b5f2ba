// SPDX-License-Identifier: MIT

package linalg

import "math"

// Vec3 is a real 3-vector (fractional or Cartesian coordinates).
type Vec3 [3]float64

// Mat3 is a real 3×3 matrix in row-major order: m[i][j] is row i, column j.
type Mat3 [3][3]float64

// IVec3 is an integer 3-vector (lattice translation, Miller-like index).
type IVec3 [3]int

// IMat3 is an integer 3×3 matrix in row-major order.
type IMat3 [3][3]int

// Identity3 returns the real identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// IIdentity3 returns the integer identity matrix.
func IIdentity3() IMat3 {
	return IMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// ---------- Vec3 ----------

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns s·v.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v[0], s * v[1], s * v[2]}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Dot returns the Euclidean inner product.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the vector product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Round returns the nearest integer vector.
func (v Vec3) Round() IVec3 {
	return IVec3{int(math.Round(v[0])), int(math.Round(v[1])), int(math.Round(v[2]))}
}

// Wrap maps every component into [0, 1).
func (v Vec3) Wrap() Vec3 {
	var out Vec3
	for i := 0; i < 3; i++ {
		out[i] = v[i] - math.Floor(v[i])
		if out[i] >= 1 { // -1e-17 wraps to exactly 1.0
			out[i] = 0
		}
	}
	return out
}

// Centered maps every component into [-0.5, 0.5] by removing the nearest
// integer (the periodic difference vector).
func (v Vec3) Centered() Vec3 {
	return Vec3{
		v[0] - math.Round(v[0]),
		v[1] - math.Round(v[1]),
		v[2] - math.Round(v[2]),
	}
}

// MaxAbs returns the largest absolute component.
func (v Vec3) MaxAbs() float64 {
	return math.Max(math.Abs(v[0]), math.Max(math.Abs(v[1]), math.Abs(v[2])))
}

// ApproxEqual reports whether all components differ by at most eps.
func (v Vec3) ApproxEqual(w Vec3, eps float64) bool {
	return v.Sub(w).MaxAbs() <= eps
}

// ---------- IVec3 ----------

// Float converts to Vec3.
func (v IVec3) Float() Vec3 {
	return Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Add returns v + w.
func (v IVec3) Add(w IVec3) IVec3 {
	return IVec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v IVec3) Sub(w IVec3) IVec3 {
	return IVec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// IsZero reports whether v is the zero vector.
func (v IVec3) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// ---------- Mat3 ----------

// Mul returns m·n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

// MulVec returns m·v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Add returns m + n.
func (m Mat3) Add(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}
	return out
}

// Scale returns s·m.
func (m Mat3) Scale(s float64) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = s * m[i][j]
		}
	}
	return out
}

// T returns the transpose.
func (m Mat3) T() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Row returns row i.
func (m Mat3) Row(i int) Vec3 {
	return Vec3(m[i])
}

// Col returns column j.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[0][j], m[1][j], m[2][j]}
}

// Round returns the nearest integer matrix.
func (m Mat3) Round() IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = int(math.Round(m[i][j]))
		}
	}
	return out
}

// ApproxEqual reports whether all entries differ by at most eps.
func (m Mat3) ApproxEqual(n Mat3, eps float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-n[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// IsInteger reports whether every entry is within eps of an integer.
func (m Mat3) IsInteger(eps float64) bool {
	return m.ApproxEqual(m.Round().Float(), eps)
}

// ---------- IMat3 ----------

// Float converts to Mat3.
func (m IMat3) Float() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = float64(m[i][j])
		}
	}
	return out
}

// Mul returns m·n.
func (m IMat3) Mul(n IMat3) IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

// MulVec returns m·v.
func (m IMat3) MulVec(v IVec3) IVec3 {
	return IVec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// MulFVec returns m·v for a real vector.
func (m IMat3) MulFVec(v Vec3) Vec3 {
	return Vec3{
		float64(m[0][0])*v[0] + float64(m[0][1])*v[1] + float64(m[0][2])*v[2],
		float64(m[1][0])*v[0] + float64(m[1][1])*v[1] + float64(m[1][2])*v[2],
		float64(m[2][0])*v[0] + float64(m[2][1])*v[1] + float64(m[2][2])*v[2],
	}
}

// Add returns m + n.
func (m IMat3) Add(n IMat3) IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}
	return out
}

// Sub returns m - n.
func (m IMat3) Sub(n IMat3) IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] - n[i][j]
		}
	}
	return out
}

// Scale returns s·m.
func (m IMat3) Scale(s int) IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = s * m[i][j]
		}
	}
	return out
}

// Neg returns -m.
func (m IMat3) Neg() IMat3 {
	return m.Scale(-1)
}

// T returns the transpose.
func (m IMat3) T() IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Col returns column j.
func (m IMat3) Col(j int) IVec3 {
	return IVec3{m[0][j], m[1][j], m[2][j]}
}

// Det returns the exact integer determinant.
func (m IMat3) Det() int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Trace returns the sum of the diagonal.
func (m IMat3) Trace() int {
	return m[0][0] + m[1][1] + m[2][2]
}

// IsIdentity reports whether m is the identity.
func (m IMat3) IsIdentity() bool {
	return m == IIdentity3()
}

// Adjugate returns the classical adjoint, so that m·adj(m) = det(m)·I.
func (m IMat3) Adjugate() IMat3 {
	return IMat3{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		},
		{
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		},
		{
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}
}

// Inverse returns the integer inverse of a unimodular matrix.
// Errors: ErrNotUnimodular when |det| != 1.
func (m IMat3) Inverse() (IMat3, error) {
	det := m.Det()
	if det != 1 && det != -1 {
		return IMat3{}, linalgErrorf(opIntInverse, ErrNotUnimodular)
	}
	return m.Adjugate().Scale(det), nil
}

// MustInverse is Inverse for matrices known to be unimodular; it panics otherwise.
func (m IMat3) MustInverse() IMat3 {
	inv, err := m.Inverse()
	if err != nil {
		panic(err)
	}
	return inv
}

// Order returns the smallest n ≥ 1 with mⁿ = I, or 0 if none exists up to 6
// (crystallographic rotations have order 1, 2, 3, 4 or 6).
func (m IMat3) Order() int {
	p := m
	for n := 1; n <= 6; n++ {
		if p.IsIdentity() {
			return n
		}
		p = p.Mul(m)
	}
	return 0
}

// Less orders integer matrices lexicographically in row-major order.
func (m IMat3) Less(n IMat3) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m[i][j] != n[i][j] {
				return m[i][j] < n[i][j]
			}
		}
	}
	return false
}

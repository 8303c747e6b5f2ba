// SPDX-License-Identifier: MIT

package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// dense copies m into a gonum Dense.
func (m Mat3) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

// fromDense copies a 3×3 gonum matrix back into a Mat3.
func fromDense(d mat.Matrix) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = d.At(i, j)
		}
	}
	return out
}

// Det returns the determinant via gonum's LU factorization.
func (m Mat3) Det() float64 {
	return mat.Det(m.dense())
}

// Inverse returns m⁻¹.
//
// Errors:
//   - ErrSingular if gonum reports the matrix as exactly singular
//     (an infinite condition number).
//
// Notes:
//   - gonum also reports a mat.Condition error for ill-conditioned but
//     invertible input; such results are still returned since lattice bases
//     with extreme aspect ratios are legitimate.
func (m Mat3) Inverse() (Mat3, error) {
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		if c, ok := err.(mat.Condition); !ok || math.IsInf(float64(c), 1) {
			return Mat3{}, linalgErrorf(opInverse, ErrSingular)
		}
	}
	return fromDense(&inv), nil
}

// CholeskyUpper factorizes a symmetric positive-definite m as m = Uᵀ·U and
// returns the upper-triangular U. ok is false when m is not positive definite.
func (m Mat3) CholeskyUpper() (u Mat3, ok bool) {
	sym := mat.NewSymDense(3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[0][1], m[1][1], m[1][2],
		m[0][2], m[1][2], m[2][2],
	})
	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return Mat3{}, false
	}
	var tri mat.TriDense
	chol.UTo(&tri)
	return fromDense(&tri), true
}

// QR factorizes m = Q·R with orthogonal Q and upper-triangular R, then flips
// signs so that R has a non-negative diagonal (the factorization is unique
// for non-singular m under that normalization).
func (m Mat3) QR() (q, r Mat3) {
	var f mat.QR
	f.Factorize(m.dense())
	var qd, rd mat.Dense
	f.QTo(&qd)
	f.RTo(&rd)
	q, r = fromDense(&qd), fromDense(&rd)
	for k := 0; k < 3; k++ {
		if r[k][k] < 0 {
			for j := 0; j < 3; j++ {
				r[k][j] = -r[k][j]
			}
			for i := 0; i < 3; i++ {
				q[i][k] = -q[i][k]
			}
		}
	}
	return q, r
}

// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"
	"math"
)

// ErrNoSolution indicates that an integer or modular system is inconsistent.
var ErrNoSolution = errors.New("linalg: system has no solution")

// IntegerSystem is the solution set of A·x = b over the integers:
// X is one particular solution and Nullspace holds a basis (one vector per
// entry) of the solutions of A·x = 0.
type IntegerSystem struct {
	Rank      int
	X         []int
	Nullspace [][]int
}

// SolveInteger solves A·x = b over the integers through the diagonal form
// D = L·A·R: D·y = L·b, x = R·y.
//
// Returns ok=false when the system is inconsistent, or when A has full column
// rank (only the trivial nullspace), matching how the callers use it:
// they are interested in the non-trivial solution lattice.
func SolveInteger(a *IntDense, b []int) (IntegerSystem, bool) {
	n := a.Cols()
	snf := NewSNF(a)
	rank := snf.Rank()
	if rank == n {
		return IntegerSystem{}, false
	}

	lb := make([]int, a.Rows())
	for i := 0; i < a.Rows(); i++ {
		for k := 0; k < a.Rows(); k++ {
			lb[i] += snf.L.At(i, k) * b[k]
		}
	}
	y := make([]int, n)
	for i := 0; i < rank; i++ {
		d := snf.D.At(i, i)
		if lb[i]%d != 0 {
			return IntegerSystem{}, false
		}
		y[i] = lb[i] / d
	}
	for i := rank; i < a.Rows(); i++ {
		if lb[i] != 0 {
			return IntegerSystem{}, false
		}
	}

	x := make([]int, n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			x[i] += snf.R.At(i, k) * y[k]
		}
	}

	null := make([][]int, 0, n-rank)
	for j := rank; j < n; j++ {
		v := make([]int, n)
		for i := 0; i < n; i++ {
			v[i] = snf.R.At(i, j)
		}
		null = append(null, v)
	}
	return IntegerSystem{Rank: rank, X: x, Nullspace: null}, true
}

// Sylvester3 returns a basis of the integer matrices P with Aᵢ·P = P·Bᵢ for
// all i (equivalently P⁻¹·Aᵢ·P = Bᵢ when P is invertible).
//
// Implementation:
//   - Vectorize row-major: the (r, c) entry of Aᵢ·P − P·Bᵢ is
//     Σ_k Aᵢ[r][k]·P[k][c] − Σ_k P[r][k]·Bᵢ[k][c], a 9×9 integer block per i.
//   - Stack the blocks and take the integer nullspace.
//
// Errors:
//   - ErrDimensionMismatch when len(a) != len(b).
//   - ErrNoSolution when only P = 0 solves the system.
func Sylvester3(a, b []IMat3) ([]IMat3, error) {
	if len(a) != len(b) {
		return nil, linalgErrorf(opSylvester, ErrDimensionMismatch)
	}
	coeffs := NewIntDense(9*len(a), 9)
	for t := range a {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				row := 9*t + 3*r + c
				for k := 0; k < 3; k++ {
					// + A[r][k] · P[k][c]
					coeffs.Set(row, 3*k+c, coeffs.At(row, 3*k+c)+a[t][r][k])
					// − P[r][k] · B[k][c]
					coeffs.Set(row, 3*r+k, coeffs.At(row, 3*r+k)-b[t][k][c])
				}
			}
		}
	}
	sys, ok := SolveInteger(coeffs, make([]int, coeffs.Rows()))
	if !ok {
		return nil, linalgErrorf(opSylvester, ErrNoSolution)
	}
	basis := make([]IMat3, 0, len(sys.Nullspace))
	for _, v := range sys.Nullspace {
		var p IMat3
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				p[r][c] = v[3*r+c]
			}
		}
		basis = append(basis, p)
	}
	return basis, nil
}

// SolveMod1 solves A·x ≡ b (mod 1) for real x, with A an integer m×3 matrix.
//
// Implementation:
//   - D = L·A·R. Solve D·y = L·b (mod 1): rows with zero pivot must already
//     be integral within eps; other rows give y_i = (L·b)_i / D_ii.
//   - x = R·y reduced into (-1, 1), then verified against the original
//     system with tolerance eps.
//
// Errors:
//   - ErrDimensionMismatch when a has not 3 columns or len(b) != a.Rows().
//   - ErrNoSolution when no x satisfies the congruences within eps.
func SolveMod1(a *IntDense, b []float64, eps float64) (Vec3, error) {
	if a.Cols() != 3 || len(b) != a.Rows() {
		return Vec3{}, linalgErrorf(opSolveMod1, ErrDimensionMismatch)
	}
	snf := NewSNF(a)
	lb := make([]float64, a.Rows())
	for i := 0; i < a.Rows(); i++ {
		for k := 0; k < a.Rows(); k++ {
			lb[i] += float64(snf.L.At(i, k)) * b[k]
		}
	}

	var y Vec3
	for i := 0; i < 3; i++ {
		d := snf.Diag(i)
		if d == 0 {
			if i < len(lb) && math.Abs(lb[i]-math.Round(lb[i])) > eps {
				return Vec3{}, linalgErrorf(opSolveMod1, ErrNoSolution)
			}
			continue
		}
		y[i] = lb[i] / float64(d)
	}

	var x Vec3
	for i := 0; i < 3; i++ {
		for k := 0; k < 3; k++ {
			x[i] += float64(snf.R.At(i, k)) * y[k]
		}
		x[i] = math.Mod(x[i], 1)
	}

	for i := 0; i < a.Rows(); i++ {
		res := float64(a.At(i, 0))*x[0] + float64(a.At(i, 1))*x[1] + float64(a.At(i, 2))*x[2] - b[i]
		if math.Abs(res-math.Round(res)) > eps {
			return Vec3{}, linalgErrorf(opSolveMod1, ErrNoSolution)
		}
	}
	return x, nil
}

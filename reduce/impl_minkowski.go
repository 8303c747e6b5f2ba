// SPDX-License-Identifier: MIT

package reduce

import (
	"math"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// Minkowski returns a Minkowski-reduced lattice and P with reduced
// columns = A·P.
//
// Implementation (greedy, Nguyen & Stehlé Fig. 3):
//   - Sort the first k vectors by length, reduce the first k−1 recursively.
//   - Replace the k-th vector by its difference to the closest lattice
//     vector spanned by the first k−1 (rounded Gram-Schmidt coefficients
//     plus offsets in {−1,0,1}, sufficient in three dimensions).
//   - Repeat until the k-th vector is no shorter than the (k−1)-th.
//
// Errors:
//   - crystal.ErrSingularLattice, ErrNonReducibleLattice.
func Minkowski(l crystal.Lattice, opts ...Option) (crystal.Lattice, linalg.IMat3, error) {
	o := gatherOptions(opts...)
	cols, eps, err := prepare(opMinkowski, l, o)
	if err != nil {
		return crystal.Lattice{}, linalg.IMat3{}, err
	}

	m := minkowskiState{basis: cols, p: linalg.IIdentity3(), eps: eps, maxIterations: o.maxIterations}
	if !m.greedy(3) {
		return crystal.Lattice{}, linalg.IMat3{}, reduceErrorf(opMinkowski, ErrNonReducibleLattice)
	}
	basis, p := fixParity(cols.Mul(m.p.Float()), m.p)
	reduced := fromColumns(basis)
	if !IsMinkowskiReduced(reduced, opts...) {
		return crystal.Lattice{}, linalg.IMat3{}, reduceErrorf(opMinkowski, ErrNonReducibleLattice)
	}
	return reduced, p, nil
}

type minkowskiState struct {
	basis         linalg.Mat3 // columns
	p             linalg.IMat3
	eps           float64 // slack on squared lengths
	maxIterations int
}

func (m *minkowskiState) norm2(j int) float64 {
	c := m.basis.Col(j)
	return c.Dot(c)
}

func (m *minkowskiState) swap(i, j int) {
	for r := 0; r < 3; r++ {
		m.basis[r][i], m.basis[r][j] = m.basis[r][j], m.basis[r][i]
		m.p[r][i], m.p[r][j] = m.p[r][j], m.p[r][i]
	}
}

// greedy reduces the first rank columns; false when the cap is hit.
func (m *minkowskiState) greedy(rank int) bool {
	if rank == 1 {
		return true
	}
	seen := cycleChecker{}
	for iter := 0; ; iter++ {
		if iter >= m.maxIterations {
			return false
		}
		for i := 0; i < rank; i++ {
			for j := 0; j < rank-1-i; j++ {
				if m.norm2(j) > m.norm2(j+1)+m.eps {
					m.swap(j, j+1)
				}
			}
		}
		if !m.greedy(rank - 1) {
			return false
		}

		coeffs := m.closestVector(rank)
		last := rank - 1
		for i := 0; i < last; i++ {
			for r := 0; r < 3; r++ {
				m.basis[r][last] -= float64(coeffs[i]) * m.basis[r][i]
				m.p[r][last] -= coeffs[i] * m.p[r][i]
			}
		}

		if m.norm2(last)+m.eps > m.norm2(last-1) {
			return true
		}
		if !seen.insert(m.p) {
			return true
		}
	}
}

// closestVector returns integer coefficients c minimizing
// |Σ cᵢ·bᵢ − b_{rank−1}| over i < rank−1.
func (m *minkowskiState) closestVector(rank int) [2]int {
	n := rank - 1
	target := m.basis.Col(n)

	// Gram system G·y = g for the real projection.
	var y [2]float64
	b0 := m.basis.Col(0)
	if n == 1 {
		y[0] = b0.Dot(target) / b0.Dot(b0)
	} else {
		b1 := m.basis.Col(1)
		g00, g01, g11 := b0.Dot(b0), b0.Dot(b1), b1.Dot(b1)
		r0, r1 := b0.Dot(target), b1.Dot(target)
		det := g00*g11 - g01*g01
		y[0] = (g11*r0 - g01*r1) / det
		y[1] = (g00*r1 - g01*r0) / det
	}

	base := [2]int{int(math.Round(y[0])), int(math.Round(y[1]))}
	best := math.Inf(1)
	var arg [2]int
	for d0 := -1; d0 <= 1; d0++ {
		for d1 := -1; d1 <= 1; d1++ {
			if n == 1 && d1 != 0 {
				continue
			}
			c := [2]int{base[0] + d0, base[1] + d1}
			if n == 1 {
				c[1] = 0
			}
			v := target
			for i := 0; i < n; i++ {
				v = v.Sub(m.basis.Col(i).Scale(float64(c[i])))
			}
			if d := v.Dot(v); d < best {
				best, arg = d, c
			}
		}
	}
	return arg
}

// minkowskiChecks are the lattice vectors whose lengths bound |b| and |c|
// of a Minkowski-reduced basis in three dimensions.
var (
	minkowskiChecksB = []linalg.Vec3{{1, -1, 0}, {1, 1, 0}}
	minkowskiChecksC = []linalg.Vec3{
		{1, 0, 1}, {1, 0, -1}, {0, 1, 1}, {0, 1, -1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
	}
)

// IsMinkowskiReduced reports whether |a| ≤ |b| ≤ |c| and no short
// combination undercuts |b| or |c|.
func IsMinkowskiReduced(l crystal.Lattice, opts ...Option) bool {
	o := gatherOptions(opts...)
	cols, eps, err := prepare(opMinkowski, l, o)
	if err != nil {
		return false
	}
	n2 := func(v linalg.Vec3) float64 { w := cols.MulVec(v); return w.Dot(w) }
	na, nb, nc := n2(linalg.Vec3{1, 0, 0}), n2(linalg.Vec3{0, 1, 0}), n2(linalg.Vec3{0, 0, 1})
	if na > nb+eps || nb > nc+eps {
		return false
	}
	for _, v := range minkowskiChecksB {
		if n2(v)+eps < nb {
			return false
		}
	}
	for _, v := range minkowskiChecksC {
		if n2(v)+eps < nc {
			return false
		}
	}
	return true
}

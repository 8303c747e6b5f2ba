// SPDX-License-Identifier: MIT

package reduce

import (
	"sort"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// delaunayCandidates are b₁, b₂, b₃, b₄ = −(b₁+b₂+b₃), b₁+b₂, b₂+b₃, b₃+b₁
// in terms of the reduced basis.
var delaunayCandidates = [7]linalg.IVec3{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {-1, -1, -1}, {1, 1, 0}, {0, 1, 1}, {1, 0, 1},
}

// Delaunay returns the Delaunay-reduced lattice and P with reduced
// columns = A·P.
//
// Implementation:
//   - While some pair of the superbase has bᵢ·bⱼ > 0: add bᵢ to the other
//     basis vectors and negate bᵢ (Selling reduction).
//   - Pick the three shortest linearly independent Delaunay vectors, ties
//     broken by candidate order.
//   - Make det P positive.
//
// Errors:
//   - crystal.ErrSingularLattice, ErrNonReducibleLattice.
func Delaunay(l crystal.Lattice, opts ...Option) (crystal.Lattice, linalg.IMat3, error) {
	o := gatherOptions(opts...)
	cols, eps, err := prepare(opDelaunay, l, o)
	if err != nil {
		return crystal.Lattice{}, linalg.IMat3{}, err
	}

	basis := cols
	p := linalg.IIdentity3()
	seen := cycleChecker{}
	for iter := 0; ; iter++ {
		if iter >= o.maxIterations {
			return crystal.Lattice{}, linalg.IMat3{}, reduceErrorf(opDelaunay, ErrNonReducibleLattice)
		}
		t, updated := sellingStep(basis, eps)
		if !updated {
			break
		}
		basis = basis.Mul(t.Float())
		p = p.Mul(t)
		if !seen.insert(p) {
			break
		}
	}

	norms := make([]float64, len(delaunayCandidates))
	for i, v := range delaunayCandidates {
		norms[i] = basis.MulVec(v.Float()).Norm()
	}
	order := []int{0, 1, 2, 3, 4, 5, 6}
	sort.SliceStable(order, func(i, j int) bool { return norms[order[i]] < norms[order[j]] })

	shortest, ok := pickIndependent(order)
	if !ok {
		return crystal.Lattice{}, linalg.IMat3{}, reduceErrorf(opDelaunay, ErrNonReducibleLattice)
	}
	p = p.Mul(shortest)
	basis = cols.Mul(p.Float())
	basis, p = fixParity(basis, p)
	return fromColumns(basis), p, nil
}

// sellingStep returns the elementary transformation for the first superbase
// pair with a positive scalar product.
func sellingStep(basis linalg.Mat3, eps float64) (linalg.IMat3, bool) {
	super := [4]linalg.Vec3{basis.Col(0), basis.Col(1), basis.Col(2)}
	super[3] = super[0].Add(super[1]).Add(super[2]).Neg()
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 4; j++ {
			if super[i].Dot(super[j]) <= eps {
				continue
			}
			t := linalg.IIdentity3()
			for k := 0; k < 3; k++ {
				if k != i && k != j {
					t[i][k] = 1 // column k += column i
				}
			}
			t[i][i] = -1
			return t, true
		}
	}
	return linalg.IMat3{}, false
}

// pickIndependent takes the first three candidates in order with a
// non-zero determinant, as matrix columns.
func pickIndependent(order []int) (linalg.IMat3, bool) {
	for a := 0; a < len(order); a++ {
		for b := a + 1; b < len(order); b++ {
			for c := b + 1; c < len(order); c++ {
				var m linalg.IMat3
				for r := 0; r < 3; r++ {
					m[r][0] = delaunayCandidates[order[a]][r]
					m[r][1] = delaunayCandidates[order[b]][r]
					m[r][2] = delaunayCandidates[order[c]][r]
				}
				if d := m.Det(); d == 1 || d == -1 {
					return m, true
				}
			}
		}
	}
	return linalg.IMat3{}, false
}

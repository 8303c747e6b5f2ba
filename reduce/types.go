// SPDX-License-Identifier: MIT

package reduce

import (
	"math"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// Reducer is the common signature of Niggli, Delaunay and Minkowski.
type Reducer func(l crystal.Lattice, opts ...Option) (crystal.Lattice, linalg.IMat3, error)

// cycleChecker records visited transformation matrices so that a loop
// revisiting one stops instead of oscillating.
type cycleChecker map[linalg.IMat3]struct{}

// insert returns false when m was already visited.
func (c cycleChecker) insert(m linalg.IMat3) bool {
	if _, ok := c[m]; ok {
		return false
	}
	c[m] = struct{}{}
	return true
}

// prepare validates the lattice and returns its columns and absolute slack.
func prepare(op string, l crystal.Lattice, o options) (linalg.Mat3, float64, error) {
	vol := l.Volume()
	if !(vol > crystal.EPS) || math.IsInf(vol, 0) {
		return linalg.Mat3{}, 0, reduceErrorf(op, crystal.ErrSingularLattice)
	}
	return l.Columns(), o.eps * math.Pow(vol, 2.0/3.0), nil
}

// fromColumns builds a lattice from a column basis.
func fromColumns(cols linalg.Mat3) crystal.Lattice {
	return crystal.Lattice{Basis: cols.T()}
}

// fixParity flips P (and the basis) when det P < 0.
func fixParity(cols linalg.Mat3, p linalg.IMat3) (linalg.Mat3, linalg.IMat3) {
	if p.Det() < 0 {
		return cols.Scale(-1), p.Neg()
	}
	return cols, p
}

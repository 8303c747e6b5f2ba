// SPDX-License-Identifier: MIT

package crystal

import (
	"math"

	"github.com/katalvlaran/symfind/linalg"
)

// Cell is a lattice decorated with atoms: fractional Positions and parallel
// species labels Numbers. Equal labels mean the same species.
type Cell struct {
	Lattice   Lattice
	Positions []linalg.Vec3
	Numbers   []int
}

// NewCell validates and copies its inputs.
//
// Errors:
//   - ErrDegenerateInput: zero atoms, length mismatch, non-finite position.
//   - ErrSingularLattice (via NewLattice).
func NewCell(basis linalg.Mat3, positions []linalg.Vec3, numbers []int) (Cell, error) {
	lattice, err := NewLattice(basis)
	if err != nil {
		return Cell{}, err
	}
	c := Cell{
		Lattice:   lattice,
		Positions: append([]linalg.Vec3(nil), positions...),
		Numbers:   append([]int(nil), numbers...),
	}
	if err = c.Validate(); err != nil {
		return Cell{}, err
	}
	return c, nil
}

// Validate checks the structural invariants of c (not atom overlaps).
func (c Cell) Validate() error {
	if len(c.Positions) == 0 {
		return degeneratef(opNewCell, "cell has no atoms")
	}
	if len(c.Positions) != len(c.Numbers) {
		return degeneratef(opNewCell, "%d positions but %d species", len(c.Positions), len(c.Numbers))
	}
	for i, p := range c.Positions {
		for k := 0; k < 3; k++ {
			if math.IsNaN(p[k]) || math.IsInf(p[k], 0) {
				return degeneratef(opNewCell, "position %d is not finite", i)
			}
		}
	}
	if c.Lattice.Volume() <= EPS {
		return crystalErrorf(opNewCell, ErrSingularLattice)
	}
	return nil
}

// NumAtoms returns the number of atoms.
func (c Cell) NumAtoms() int { return len(c.Positions) }

// Clone returns a deep copy.
func (c Cell) Clone() Cell {
	return Cell{
		Lattice:   c.Lattice,
		Positions: append([]linalg.Vec3(nil), c.Positions...),
		Numbers:   append([]int(nil), c.Numbers...),
	}
}

// Rotate rigidly rotates the lattice; fractional positions are unchanged.
func (c Cell) Rotate(r linalg.Mat3) Cell {
	out := c.Clone()
	out.Lattice = c.Lattice.Rotate(r)
	return out
}

// CheckOverlaps fails with ErrDegenerateInput when two atoms (of any
// species) are closer than symprec under periodic boundary conditions.
// Merging them silently would change the composition of the structure.
//
// Complexity: O(N²·27).
func (c Cell) CheckOverlaps(symprec float64) error {
	for i := 0; i < len(c.Positions); i++ {
		for j := i + 1; j < len(c.Positions); j++ {
			d := c.Lattice.PeriodicDistance(c.Positions[j].Sub(c.Positions[i]))
			if d < symprec {
				return degeneratef(opCheckOverlaps, "atoms %d and %d are %.3g apart (symprec %g)", i, j, d, symprec)
			}
		}
	}
	return nil
}

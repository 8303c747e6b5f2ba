// SPDX-License-Identifier: MIT

// Package search: the whole symmetry-operation stage on one cell.

package search

import (
	"math"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/internal/logging"
)

// Search runs the whole symmetry-operation stage on c.
//
// Steps: validate c and symprec, reject atoms closer than symprec, find
// the primitive cell, search its symmetry, lift operations to c and label
// orbits.
//
// Errors:
//   - crystal.ErrDegenerateInput, ErrTooLargeTolerance,
//     ErrTooSmallTolerance, ErrPrimitiveCell,
//     reduce.ErrNonReducibleLattice.
func Search(c crystal.Cell, symprec float64, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := c.Validate(); err != nil {
		return nil, searchErrorf(opSearch, err)
	}
	if !(symprec > 0) || math.IsInf(symprec, 0) {
		return nil, searchErrorf(opSearch, crystal.ErrDegenerateInput)
	}
	if err := c.CheckOverlaps(symprec); err != nil {
		return nil, searchErrorf(opSearch, err)
	}

	prim, err := NewPrimitiveCell(c, symprec, opts...)
	if err != nil {
		return nil, err
	}
	sym, err := SearchPrimitive(prim.Cell, symprec, opts...)
	if err != nil {
		return nil, err
	}

	ops := OperationsInCell(prim, sym.Operations)
	orbits := crystal.OrbitsInCell(prim.Cell.NumAtoms(), sym.Permutations, prim.SiteMapping)
	o.logger.V(logging.DEBUG).Info("Symmetry search finished",
		"operations", len(ops), "primitiveAtoms", prim.Cell.NumAtoms(), "atoms", c.NumAtoms())

	return &Result{
		Primitive:      prim,
		Symmetry:       sym,
		Operations:     ops,
		Orbits:         orbits,
		Symprec:        symprec,
		AngleTolerance: o.angle,
	}, nil
}

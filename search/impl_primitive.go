// SPDX-License-Identifier: MIT

// Package search: primitive cell.
//
// Contract:
//   - Pure translations are found from the species with fewest atoms and
//     verified by full correspondence.
//   - The primitive lattice is built from the translation lattice (Hermite
//     normal form) and Minkowski reduced.
//   - The number of translations must divide the atom count, otherwise
//     ErrTooSmallTolerance; translations that form no lattice give
//     ErrPrimitiveCell.

package search

import (
	"math"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/internal/logging"
	"github.com/katalvlaran/symfind/linalg"
	"github.com/katalvlaran/symfind/reduce"
)

// NewPrimitiveCell finds the pure translations of c and returns the
// Minkowski-reduced primitive cell they define.
//
// Implementation:
//   - Minkowski-reduce c; candidate translations move the first pivot atom
//     onto every pivot atom; each is verified by a full correspondence with
//     radius 2·symprec and then averaged over all atoms.
//   - The translations generate a lattice whose basis is read off the
//     Hermite normal form of [n·I | n·t₁ … n·tₙ] for n translations.
//   - Atoms of one translation orbit collapse to one primitive atom at their
//     averaged position.
//
// Errors:
//   - ErrTooLargeTolerance, ErrTooSmallTolerance, ErrPrimitiveCell.
//   - reduce.ErrNonReducibleLattice.
func NewPrimitiveCell(c crystal.Cell, symprec float64, opts ...Option) (*PrimitiveCell, error) {
	o := gatherOptions(opts...)
	log := o.logger

	reducedLattice, toReduced, err := reduce.Minkowski(c.Lattice)
	if err != nil {
		return nil, searchErrorf(opPrimitiveCell, err)
	}
	reducer := crystal.MustUnimodular(toReduced, linalg.Vec3{})
	reduced := reducer.TransformCell(c)

	lengths := reducedLattice.Lengths()
	rough := 2 * symprec
	if rough > math.Min(lengths[0], math.Min(lengths[1], lengths[2]))/2 {
		log.V(logging.DEBUG).Info("Symprec is too large compared to the basis vectors", "symprec", symprec)
		return nil, searchErrorf(opPrimitiveCell, ErrTooLargeTolerance)
	}

	tree := newPeriodicTree(reduced)
	pivots := pivotSites(reduced.Numbers)
	src := pivots[0]
	var (
		translations []linalg.Vec3
		perms        []crystal.Permutation
	)
	moved := make([]linalg.Vec3, reduced.NumAtoms())
	for _, dst := range pivots {
		shift := reduced.Positions[dst].Sub(reduced.Positions[src])
		for i, x := range reduced.Positions {
			moved[i] = x.Add(shift)
		}
		perm, ok := tree.correspondence(reduced, moved, rough)
		if !ok {
			continue
		}
		t, worst := symmetrizeTranslation(reduced, perm, linalg.IIdentity3(), shift)
		if worst >= symprec {
			log.V(logging.TRACE).Info("Rejected translation", "translation", t, "distance", worst)
			continue
		}
		translations = append(translations, t)
		perms = append(perms, perm)
	}

	size := len(translations)
	if size == 0 || reduced.NumAtoms()%size != 0 {
		log.V(logging.DEBUG).Info("Failed to find translations consistently",
			"translations", size, "atoms", reduced.NumAtoms())
		return nil, searchErrorf(opPrimitiveCell, ErrTooSmallTolerance)
	}
	log.V(logging.DEBUG).Info("Found pure translations", "count", size)

	toPrimitive, ok := transformationFromTranslations(translations)
	if !ok {
		log.V(logging.DEBUG).Info("Pure translations do not form a lattice", "count", size)
		return nil, searchErrorf(opPrimitiveCell, ErrPrimitiveCell)
	}
	prim, siteMapping := primitiveFromTransformation(reduced, toPrimitive, translations, perms)

	_, toPrimReduced, err := reduce.Minkowski(prim.Lattice)
	if err != nil {
		return nil, searchErrorf(opPrimitiveCell, err)
	}
	primReducer := crystal.MustUnimodular(toPrimReduced, linalg.Vec3{})
	prim = primReducer.TransformCell(prim)
	for i := range prim.Positions {
		prim.Positions[i] = prim.Positions[i].Wrap()
	}

	// input ←P⁻¹─ reduced ←M─ primitive ─Q→ reduced primitive
	linear := primReducer.LinearInverse().Mul(toPrimitive).Mul(reducer.LinearInverse())
	inputTranslations := make([]linalg.Vec3, size)
	for k, t := range translations {
		inputTranslations[k] = toReduced.MulFVec(t)
	}
	return &PrimitiveCell{
		Cell:         prim,
		Linear:       linear,
		SiteMapping:  siteMapping,
		Translations: inputTranslations,
		Permutations: perms,
	}, nil
}

// transformationFromTranslations returns the integer M (det M = n) with
// lattice columns = primitive columns · M, where the primitive lattice is
// generated by the unit lattice and the n translations.
func transformationFromTranslations(translations []linalg.Vec3) (linalg.IMat3, bool) {
	n := len(translations)
	gen := linalg.NewIntDense(3, 3+n)
	for i := 0; i < 3; i++ {
		gen.Set(i, i, n)
	}
	for k, t := range translations {
		v := t.Scale(float64(n)).Round()
		for i := 0; i < 3; i++ {
			gen.Set(i, 3+k, v[i])
		}
	}
	hnf := linalg.NewHNF(gen)

	var basis linalg.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			basis[i][j] = float64(hnf.H.At(i, j)) / float64(n)
		}
	}
	inv, err := basis.Inverse()
	if err != nil || !inv.IsInteger(1e-6) {
		return linalg.IMat3{}, false
	}
	m := inv.Round()
	if m.Det() != n {
		return linalg.IMat3{}, false
	}
	return m, true
}

// primitiveFromTransformation collapses the translation orbits of c into
// the primitive cell with columns A·M⁻¹. Each primitive atom sits at the
// average of its orbit pulled back onto the representative.
func primitiveFromTransformation(c crystal.Cell, m linalg.IMat3, translations []linalg.Vec3, perms []crystal.Permutation) (crystal.Cell, []int) {
	lattice := crystal.MustTransformation(m, linalg.Vec3{}).InverseTransformLattice(c.Lattice)

	orbits := crystal.OrbitsFromPermutations(c.NumAtoms(), perms)
	inverse := make([]crystal.Permutation, len(perms))
	for k, p := range perms {
		inverse[k] = p.Inverse()
	}

	index := make(map[int]int)
	prim := crystal.Cell{Lattice: lattice}
	for i := 0; i < c.NumAtoms(); i++ {
		if orbits[i] != i {
			continue
		}
		var acc linalg.Vec3
		for k, t := range translations {
			d := c.Positions[inverse[k][i]].Add(t).Sub(c.Positions[i]).Centered()
			acc = acc.Add(d)
		}
		x := c.Positions[i].Add(acc.Scale(1 / float64(len(translations))))
		index[i] = len(prim.Positions)
		prim.Positions = append(prim.Positions, m.MulFVec(x).Wrap())
		prim.Numbers = append(prim.Numbers, c.Numbers[i])
	}

	mapping := make([]int, c.NumAtoms())
	for i := range mapping {
		mapping[i] = index[orbits[i]]
	}
	return prim, mapping
}

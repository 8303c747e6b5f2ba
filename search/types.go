// SPDX-License-Identifier: MIT

// Package search: result types shared by the stage functions.

package search

import (
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// PrimitiveCell is a Minkowski-reduced primitive cell of some input cell.
type PrimitiveCell struct {
	// Cell is the primitive cell; its atoms follow the order of the first
	// member of every translation orbit in the input.
	Cell crystal.Cell

	// Linear relates the bases: input columns = primitive columns · Linear.
	// det Linear equals the number of pure translations.
	Linear linalg.IMat3

	// SiteMapping sends input atom i to primitive atom SiteMapping[i].
	SiteMapping []int

	// Translations are the pure translations in input fractional
	// coordinates, the zero vector first.
	Translations []linalg.Vec3

	// Permutations[k] sends input atom i to the atom Translations[k] moves
	// it onto.
	Permutations []crystal.Permutation
}

// PrimitiveSymmetry is the symmetry of a primitive cell: one operation per
// rotation (coset representatives of the translation subgroup).
type PrimitiveSymmetry struct {
	Operations   crystal.Operations
	Permutations []crystal.Permutation
	BravaisGroup []linalg.IMat3
}

// Result is the output of Search.
type Result struct {
	Primitive *PrimitiveCell
	Symmetry  *PrimitiveSymmetry

	// Operations are expressed in the input basis, the identity first.
	Operations crystal.Operations

	// Orbits labels every input atom with the smallest atom index of its
	// orbit.
	Orbits []int

	Symprec        float64
	AngleTolerance crystal.AngleTolerance
}

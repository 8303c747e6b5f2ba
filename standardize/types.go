// SPDX-License-Identifier: MIT

package standardize

import (
	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// Standardized is a structure in the conventional cell of its Hall
// setting. All transformations start from the primitive cell passed to
// Standardize.
type Standardized struct {
	// PrimCell is the primitive standardized cell; its atom i is primitive
	// atom i.
	PrimCell crystal.Cell
	// PrimTransformation carries the primitive cell onto PrimCell.
	PrimTransformation crystal.UnimodularTransformation

	// Cell is the conventional standardized cell with the idealized
	// lattice.
	Cell crystal.Cell
	// Transformation carries the primitive cell onto Cell (det equals the
	// centering order).
	Transformation crystal.Transformation
	// SiteMapping[k] is the primitive atom of conventional atom k.
	SiteMapping []int

	// Rotation turns the transformed lattice, before idealization, onto the
	// idealized one in Cartesian coordinates.
	Rotation linalg.Mat3

	// Operations are the coset representatives of the setting in the
	// conventional basis.
	Operations crystal.Operations
	Centering  catalog.Centering

	// Wyckoffs[i] is the Wyckoff position of primitive atom i; Orbits[i]
	// the smallest primitive atom index of its orbit.
	Wyckoffs []catalog.WyckoffPosition
	Orbits   []int
}

// Multiplicity returns the number of conventional atoms per primitive atom.
func (s *Standardized) Multiplicity() int { return s.Centering.Order() }

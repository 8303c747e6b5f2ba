// SPDX-License-Identifier: MIT

package identify

import (
	"math"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// PointGroup is the arithmetic crystal class of a group of primitive
// rotations.
type PointGroup struct {
	ArithmeticNumber int
	GeometricClass   catalog.GeometricCrystalClass

	// Linear maps the input primitive basis onto the primitive basis of the
	// class representative: P⁻¹·R·P runs over the representative rotations.
	// det Linear = 1.
	Linear linalg.IMat3
}

// SpaceGroup is a matched Hall setting.
type SpaceGroup struct {
	Number           int
	HallNumber       int
	ArithmeticNumber int

	// Transformation carries the input primitive basis and origin onto the
	// primitive basis of the Hall setting: transformed operations coincide
	// with the setting's operations modulo lattice translations.
	Transformation crystal.UnimodularTransformation
}

// Epsilon converts symprec into the tolerance on fractional translations
// used when comparing operations in a lattice of the given volume.
func Epsilon(symprec float64, l crystal.Lattice) float64 {
	return symprec / math.Cbrt(l.Volume())
}

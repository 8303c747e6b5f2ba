// SPDX-License-Identifier: MIT

package dataset

import (
	"io"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// Dataset is the symmetry of one crystal structure.
//
// Transformations follow one convention: a target cell with basis columns
// A·P and origin p, where A is the input basis, has fractional coordinates
// P⁻¹·(x − p). P may be rational when the input is a supercell.
type Dataset struct {
	// Space-group type and setting.
	Number           int
	HallNumber       int
	HMSymbol         string
	HallSymbol       string
	ArithmeticNumber int
	PointGroup       string
	CrystalSystem    catalog.CrystalSystem
	LatticeSystem    catalog.LatticeSystem

	// Operations act on fractional coordinates of the input cell, the
	// identity first.
	Operations crystal.Operations

	// Per input atom: the smallest atom index of its orbit, its Wyckoff
	// letter and site-symmetry symbol.
	Orbits              []int
	Wyckoffs            []string
	SiteSymmetrySymbols []string

	// StdCell is the conventional standardized cell; its lattice is
	// idealized and rotated by StdRotation.
	StdCell        crystal.Cell
	StdLinear      linalg.Mat3
	StdOriginShift linalg.Vec3
	StdRotation    linalg.Mat3

	// PrimStdCell is the primitive standardized cell.
	PrimStdCell        crystal.Cell
	PrimStdLinear      linalg.Mat3
	PrimStdOriginShift linalg.Vec3

	// MappingStdPrim[i] is the PrimStdCell atom of input atom i.
	MappingStdPrim []int
	// StdMapping[k] is the PrimStdCell atom of StdCell atom k.
	StdMapping []int

	PearsonSymbol string

	// Tolerances and setting actually used.
	Symprec        float64
	AngleTolerance crystal.AngleTolerance
	Setting        catalog.Setting

	released bool
}

var _ io.Closer = (*Dataset)(nil)

// Release drops the contents of d. A second call does nothing.
func (d *Dataset) Release() {
	if d == nil || d.released {
		return
	}
	*d = Dataset{released: true}
}

// Close releases d; it never fails.
func (d *Dataset) Close() error {
	d.Release()
	return nil
}

// Released reports whether Release has been called.
func (d *Dataset) Released() bool { return d == nil || d.released }

// NumOperations returns the number of operations in the input cell.
func (d *Dataset) NumOperations() int {
	if d.Released() {
		return 0
	}
	return len(d.Operations)
}

// OrbitsOf returns the atoms in the orbit of atom i, ascending. It returns
// nil for a released dataset or an index out of range.
func (d *Dataset) OrbitsOf(i int) []int {
	if d.Released() || i < 0 || i >= len(d.Orbits) {
		return nil
	}
	var out []int
	for j, o := range d.Orbits {
		if o == d.Orbits[i] {
			out = append(out, j)
		}
	}
	return out
}

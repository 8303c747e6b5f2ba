// SPDX-License-Identifier: MIT

// Package catalog: lattice centering types P, A, B, C, I, R, F.
//
// Contract:
//   - Linear() maps the primitive basis onto the conventional one
//     (det = Order()); Inverse() is its real inverse.
//   - LatticePoints() lists Order() translations in [0, 1), origin first.

package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/symfind/linalg"
)

// Centering is the lattice centering of a conventional cell.
type Centering int

// Centerings, in the order of the Hall lattice symbols.
const (
	CenteringP Centering = iota // primitive
	CenteringA                  // A-face centered
	CenteringB                  // B-face centered
	CenteringC                  // C-face centered
	CenteringI                  // body centered
	CenteringR                  // rhombohedral, obverse setting
	CenteringF                  // all-face centered
)

var centeringLetters = [...]byte{'P', 'A', 'B', 'C', 'I', 'R', 'F'}

// CenteringFromLetter maps a Hall lattice letter to its centering.
func CenteringFromLetter(c byte) (Centering, bool) {
	for i, l := range centeringLetters {
		if l == c {
			return Centering(i), true
		}
	}
	return 0, false
}

// String returns the lattice letter.
func (c Centering) String() string {
	if c < 0 || int(c) >= len(centeringLetters) {
		return fmt.Sprintf("Centering(%d)", int(c))
	}
	return string(centeringLetters[c])
}

// UnmarshalYAML decodes a lattice letter.
func (c *Centering) UnmarshalYAML(node *yaml.Node) error {
	if len(node.Value) != 1 {
		return fmt.Errorf("%w: centering %q", ErrCorruptData, node.Value)
	}
	v, ok := CenteringFromLetter(node.Value[0])
	if !ok {
		return fmt.Errorf("%w: centering %q", ErrCorruptData, node.Value)
	}
	*c = v
	return nil
}

// Order returns the number of lattice points per conventional cell.
func (c Centering) Order() int {
	switch c {
	case CenteringA, CenteringB, CenteringC, CenteringI:
		return 2
	case CenteringR:
		return 3
	case CenteringF:
		return 4
	}
	return 1
}

// Linear returns the matrix from the primitive to the conventional basis:
// conventional columns = primitive columns · Linear (det = Order).
func (c Centering) Linear() linalg.IMat3 {
	switch c {
	case CenteringA:
		return linalg.IMat3{{1, 0, 0}, {0, 1, 1}, {0, -1, 1}}
	case CenteringB:
		return linalg.IMat3{{1, 0, -1}, {0, 1, 0}, {1, 0, 1}}
	case CenteringC:
		return linalg.IMat3{{1, -1, 0}, {1, 1, 0}, {0, 0, 1}}
	case CenteringR:
		return linalg.IMat3{{1, 0, 1}, {-1, 1, 1}, {0, -1, 1}}
	case CenteringI:
		return linalg.IMat3{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}
	case CenteringF:
		return linalg.IMat3{{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}}
	}
	return linalg.IIdentity3()
}

// Inverse returns Linear⁻¹ (rational).
func (c Centering) Inverse() linalg.Mat3 {
	inv, err := c.Linear().Float().Inverse()
	if err != nil {
		panic(err) // every centering matrix is non-singular
	}
	return inv
}

// LatticePoints returns the centering translations of the conventional
// cell, the origin first.
func (c Centering) LatticePoints() []linalg.Vec3 {
	switch c {
	case CenteringA:
		return []linalg.Vec3{{0, 0, 0}, {0, 0.5, 0.5}}
	case CenteringB:
		return []linalg.Vec3{{0, 0, 0}, {0.5, 0, 0.5}}
	case CenteringC:
		return []linalg.Vec3{{0, 0, 0}, {0.5, 0.5, 0}}
	case CenteringI:
		return []linalg.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}
	case CenteringR:
		return []linalg.Vec3{{0, 0, 0}, {2.0 / 3, 1.0 / 3, 1.0 / 3}, {1.0 / 3, 2.0 / 3, 2.0 / 3}}
	case CenteringF:
		return []linalg.Vec3{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}}
	}
	return []linalg.Vec3{{0, 0, 0}}
}

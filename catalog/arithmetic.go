// SPDX-License-Identifier: MIT

// Package catalog: the 73 arithmetic crystal classes in IUCr order.
// Each class names its geometric class, Bravais class and symbol, and the
// Hall number whose generators serve as point-group representative for
// arithmetic-class identification.
//
// Contract:
//   - ArithmeticClass(n) and RepresentativeOf(n) accept 1..73 and return
//     ErrUnknownArithmeticNumber otherwise.
//   - Representative rotations are returned in Traverse order, identity first.

package catalog

import (
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// NumArithmeticClasses is the number of arithmetic crystal classes.
const NumArithmeticClasses = 73

// ArithmeticClassEntry is one arithmetic crystal class: a geometric class
// combined with a Bravais class and, where needed, an orientation.
type ArithmeticClassEntry struct {
	Number         int
	Symbol         string
	GeometricClass GeometricCrystalClass
	BravaisClass   BravaisClass
	// RepresentativeHallNumber is a Hall setting whose point group realises
	// this class (b-unique cell choice 1, abc, hexagonal axes).
	RepresentativeHallNumber int
}

// LatticeSystem returns the lattice system of the Bravais class.
func (a ArithmeticClassEntry) LatticeSystem() LatticeSystem {
	return a.BravaisClass.LatticeSystem()
}

// Ordered as the IUCr dictionary lists arithmetic crystal classes.
var arithmeticClasses = [NumArithmeticClasses]ArithmeticClassEntry{
	{1, "1P", C1, AP, 1},
	{2, "-1P", Ci, AP, 2},
	{3, "2P", C2, MP, 3},
	{4, "2C", C2, MC, 9},
	{5, "mP", C1h, MP, 18},
	{6, "mC", C1h, MC, 30},
	{7, "2/mP", C2h, MP, 57},
	{8, "2/mC", C2h, MC, 63},
	{9, "222P", D2, OP, 108},
	{10, "222C", D2, OS, 119},
	{11, "222F", D2, OF, 122},
	{12, "222I", D2, OI, 123},
	{13, "mm2P", C2v, OP, 125},
	{14, "mm2C", C2v, OS, 173},
	{15, "2mmC", C2v, OS, 185},
	{16, "mm2F", C2v, OF, 209},
	{17, "mm2I", C2v, OI, 215},
	{18, "mmmP", D2h, OP, 227},
	{19, "mmmC", D2h, OS, 310},
	{20, "mmmF", D2h, OF, 334},
	{21, "mmmI", D2h, OI, 337},
	{22, "4P", C4, TP, 349},
	{23, "4I", C4, TI, 353},
	{24, "-4P", S4, TP, 355},
	{25, "-4I", S4, TI, 356},
	{26, "4/mP", C4h, TP, 357},
	{27, "4/mI", C4h, TI, 363},
	{28, "422P", D4, TP, 366},
	{29, "422I", D4, TI, 374},
	{30, "4mmP", C4v, TP, 376},
	{31, "4mmI", C4v, TI, 384},
	{32, "-42mP", D2d, TP, 388},
	{33, "-4m2P", D2d, TP, 392},
	{34, "-4m2I", D2d, TI, 396},
	{35, "-42mI", D2d, TI, 398},
	{36, "4/mmmP", D4h, TP, 400},
	{37, "4/mmmI", D4h, TI, 424},
	{38, "3P", C3, HP, 430},
	{39, "3R", C3, HR, 433},
	{40, "-3P", C3i, HP, 435},
	{41, "-3R", C3i, HR, 436},
	{42, "312P", D3, HP, 438},
	{43, "321P", D3, HP, 439},
	{44, "32R", D3, HR, 444},
	{45, "3m1P", C3v, HP, 446},
	{46, "31mP", C3v, HP, 447},
	{47, "3mR", C3v, HR, 450},
	{48, "-31mP", D3d, HP, 454},
	{49, "-3m1P", D3d, HP, 456},
	{50, "-3mR", D3d, HR, 458},
	{51, "6P", C6, HP, 462},
	{52, "-6P", C3h, HP, 468},
	{53, "6/mP", C6h, HP, 469},
	{54, "622P", D6, HP, 471},
	{55, "6mmP", C6v, HP, 477},
	{56, "-62mP", D3h, HP, 483},
	{57, "-6m2P", D3h, HP, 481},
	{58, "6/mmmP", D6h, HP, 485},
	{59, "23P", T, CP, 489},
	{60, "23F", T, CF, 490},
	{61, "23I", T, CI, 491},
	{62, "m-3P", Th, CP, 494},
	{63, "m-3F", Th, CF, 497},
	{64, "m-3I", Th, CI, 500},
	{65, "432P", O, CP, 503},
	{66, "432F", O, CF, 505},
	{67, "432I", O, CI, 507},
	{68, "-43mP", Td, CP, 511},
	{69, "-43mF", Td, CF, 512},
	{70, "-43mI", Td, CI, 513},
	{71, "m-3mP", Oh, CP, 517},
	{72, "m-3mF", Oh, CF, 523},
	{73, "m-3mI", Oh, CI, 529},
}

// ArithmeticClass returns the arithmetic crystal class with number n.
//
// Errors: ErrUnknownArithmeticNumber.
func ArithmeticClass(n int) (ArithmeticClassEntry, error) {
	if n < 1 || n > NumArithmeticClasses {
		return ArithmeticClassEntry{}, catalogErrorf(opArithmetic, ErrUnknownArithmeticNumber)
	}
	return arithmeticClasses[n-1], nil
}

// ArithmeticClasses returns all classes in numbering order.
func ArithmeticClasses() []ArithmeticClassEntry {
	return append([]ArithmeticClassEntry(nil), arithmeticClasses[:]...)
}

// ArithmeticClassesOf returns the classes sharing a geometric class.
func ArithmeticClassesOf(g GeometricCrystalClass) []ArithmeticClassEntry {
	var out []ArithmeticClassEntry
	for _, a := range arithmeticClasses {
		if a.GeometricClass == g {
			out = append(out, a)
		}
	}
	return out
}

// PointGroupRepresentative is a conventional realisation of an arithmetic
// crystal class: the rotation parts of its Hall generators and the
// centering of that setting.
type PointGroupRepresentative struct {
	Generators []linalg.IMat3
	Centering  Centering
}

// RepresentativeOf returns the point-group representative of arithmetic
// class n.
//
// Errors: ErrUnknownArithmeticNumber, ErrCorruptData.
func RepresentativeOf(n int) (PointGroupRepresentative, error) {
	a, err := ArithmeticClass(n)
	if err != nil {
		return PointGroupRepresentative{}, catalogErrorf(opRepresentive, err)
	}
	hs, err := FromHallNumber(a.RepresentativeHallNumber)
	if err != nil {
		return PointGroupRepresentative{}, catalogErrorf(opRepresentive, err)
	}
	return PointGroupRepresentative{
		Generators: hs.Generators.Rotations(),
		Centering:  hs.Centering,
	}, nil
}

// Rotations closes the generators into the full point group.
func (p PointGroupRepresentative) Rotations() []linalg.IMat3 {
	return crystal.TraverseRotations(p.Generators)
}

// PrimitiveGenerators expresses the generators in the primitive basis of
// the centering: Linear·g·Linear⁻¹.
func (p PointGroupRepresentative) PrimitiveGenerators() []linalg.IMat3 {
	lin := p.Centering.Linear().Float()
	inv := p.Centering.Inverse()
	out := make([]linalg.IMat3, len(p.Generators))
	for i, g := range p.Generators {
		out[i] = lin.Mul(g.Float()).Mul(inv).Round()
	}
	return out
}

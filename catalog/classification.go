// SPDX-License-Identifier: MIT

// Package catalog: closed enumerations of the crystallographic classes.
// This file defines the 32 geometric crystal classes (identified from a
// rotation-type histogram), crystal systems, crystal families, the 14
// Bravais classes and the lattice systems.
//
// Contract:
//   - All enums are dense ints starting at 0; String() never fails on a
//     valid value.
//   - GeometricCrystalClassFromCounts is exact: a histogram that matches no
//     class returns false, never a nearest guess.

package catalog

import "fmt"

// GeometricCrystalClass is one of the 32 crystallographic point groups
// (Schoenflies names; Table 3.2.3.2 of ITA).
type GeometricCrystalClass int

// Geometric crystal classes grouped by crystal system.
const (
	C1 GeometricCrystalClass = iota
	Ci
	C2
	C1h
	C2h
	D2
	C2v
	D2h
	C4
	S4
	C4h
	D4
	C4v
	D2d
	D4h
	C3
	C3i
	D3
	C3v
	D3d
	C6
	C3h
	C6h
	D6
	C6v
	D3h
	D6h
	T
	Th
	O
	Td
	Oh
	numGeometricClasses
)

// RotationTypeCounts is a histogram of rotation types in the order
// -6, -4, -3, -2, -1, 1, 2, 3, 4, 6.
type RotationTypeCounts [10]int

// RotationTypeIndex maps a rotation type to its slot in RotationTypeCounts
// (−1 for an invalid type).
func RotationTypeIndex(t int) int {
	switch t {
	case -6:
		return 0
	case -4:
		return 1
	case -3:
		return 2
	case -2:
		return 3
	case -1:
		return 4
	case 1:
		return 5
	case 2:
		return 6
	case 3:
		return 7
	case 4:
		return 8
	case 6:
		return 9
	}
	return -1
}

var geometricClassData = [numGeometricClasses]struct {
	schoenflies string
	hm          string
	counts      RotationTypeCounts
}{
	C1:  {"C1", "1", RotationTypeCounts{0, 0, 0, 0, 0, 1, 0, 0, 0, 0}},
	Ci:  {"Ci", "-1", RotationTypeCounts{0, 0, 0, 0, 1, 1, 0, 0, 0, 0}},
	C2:  {"C2", "2", RotationTypeCounts{0, 0, 0, 0, 0, 1, 1, 0, 0, 0}},
	C1h: {"Cs", "m", RotationTypeCounts{0, 0, 0, 1, 0, 1, 0, 0, 0, 0}},
	C2h: {"C2h", "2/m", RotationTypeCounts{0, 0, 0, 1, 1, 1, 1, 0, 0, 0}},
	D2:  {"D2", "222", RotationTypeCounts{0, 0, 0, 0, 0, 1, 3, 0, 0, 0}},
	C2v: {"C2v", "mm2", RotationTypeCounts{0, 0, 0, 2, 0, 1, 1, 0, 0, 0}},
	D2h: {"D2h", "mmm", RotationTypeCounts{0, 0, 0, 3, 1, 1, 3, 0, 0, 0}},
	C4:  {"C4", "4", RotationTypeCounts{0, 0, 0, 0, 0, 1, 1, 0, 2, 0}},
	S4:  {"S4", "-4", RotationTypeCounts{0, 2, 0, 0, 0, 1, 1, 0, 0, 0}},
	C4h: {"C4h", "4/m", RotationTypeCounts{0, 2, 0, 1, 1, 1, 1, 0, 2, 0}},
	D4:  {"D4", "422", RotationTypeCounts{0, 0, 0, 0, 0, 1, 5, 0, 2, 0}},
	C4v: {"C4v", "4mm", RotationTypeCounts{0, 0, 0, 4, 0, 1, 1, 0, 2, 0}},
	D2d: {"D2d", "-42m", RotationTypeCounts{0, 2, 0, 2, 0, 1, 3, 0, 0, 0}},
	D4h: {"D4h", "4/mmm", RotationTypeCounts{0, 2, 0, 5, 1, 1, 5, 0, 2, 0}},
	C3:  {"C3", "3", RotationTypeCounts{0, 0, 0, 0, 0, 1, 0, 2, 0, 0}},
	C3i: {"C3i", "-3", RotationTypeCounts{0, 0, 2, 0, 1, 1, 0, 2, 0, 0}},
	D3:  {"D3", "32", RotationTypeCounts{0, 0, 0, 0, 0, 1, 3, 2, 0, 0}},
	C3v: {"C3v", "3m", RotationTypeCounts{0, 0, 0, 3, 0, 1, 0, 2, 0, 0}},
	D3d: {"D3d", "-3m", RotationTypeCounts{0, 0, 2, 3, 1, 1, 3, 2, 0, 0}},
	C6:  {"C6", "6", RotationTypeCounts{0, 0, 0, 0, 0, 1, 1, 2, 0, 2}},
	C3h: {"C3h", "-6", RotationTypeCounts{2, 0, 0, 1, 0, 1, 0, 2, 0, 0}},
	C6h: {"C6h", "6/m", RotationTypeCounts{2, 0, 2, 1, 1, 1, 1, 2, 0, 2}},
	D6:  {"D6", "622", RotationTypeCounts{0, 0, 0, 0, 0, 1, 7, 2, 0, 2}},
	C6v: {"C6v", "6mm", RotationTypeCounts{0, 0, 0, 6, 0, 1, 1, 2, 0, 2}},
	D3h: {"D3h", "-6m2", RotationTypeCounts{2, 0, 0, 4, 0, 1, 3, 2, 0, 0}},
	D6h: {"D6h", "6/mmm", RotationTypeCounts{2, 0, 2, 7, 1, 1, 7, 2, 0, 2}},
	T:   {"T", "23", RotationTypeCounts{0, 0, 0, 0, 0, 1, 3, 8, 0, 0}},
	Th:  {"Th", "m-3", RotationTypeCounts{0, 0, 8, 3, 1, 1, 3, 8, 0, 0}},
	O:   {"O", "432", RotationTypeCounts{0, 0, 0, 0, 0, 1, 9, 8, 6, 0}},
	Td:  {"Td", "-43m", RotationTypeCounts{0, 6, 0, 6, 0, 1, 3, 8, 0, 0}},
	Oh:  {"Oh", "m-3m", RotationTypeCounts{0, 6, 8, 9, 1, 1, 9, 8, 6, 0}},
}

// GeometricCrystalClassFromCounts identifies the point group by its
// rotation-type histogram, which is unique among the 32 classes.
func GeometricCrystalClassFromCounts(counts RotationTypeCounts) (GeometricCrystalClass, bool) {
	for g := C1; g < numGeometricClasses; g++ {
		if geometricClassData[g].counts == counts {
			return g, true
		}
	}
	return 0, false
}

// String returns the Schoenflies symbol.
func (g GeometricCrystalClass) String() string {
	if g < 0 || g >= numGeometricClasses {
		return fmt.Sprintf("GeometricCrystalClass(%d)", int(g))
	}
	return geometricClassData[g].schoenflies
}

// Symbol returns the Hermann-Mauguin point-group symbol, e.g. "6/mmm".
func (g GeometricCrystalClass) Symbol() string { return geometricClassData[g].hm }

// Order returns the number of point-group operations.
func (g GeometricCrystalClass) Order() int {
	n := 0
	for _, c := range geometricClassData[g].counts {
		n += c
	}
	return n
}

// CrystalSystem returns the crystal system of g.
func (g GeometricCrystalClass) CrystalSystem() CrystalSystem {
	switch {
	case g <= Ci:
		return Triclinic
	case g <= C2h:
		return Monoclinic
	case g <= D2h:
		return Orthorhombic
	case g <= D4h:
		return Tetragonal
	case g <= D3d:
		return Trigonal
	case g <= D6h:
		return Hexagonal
	}
	return Cubic
}

// CrystalSystem is one of the seven crystal systems.
type CrystalSystem int

// Crystal systems.
const (
	Triclinic CrystalSystem = iota
	Monoclinic
	Orthorhombic
	Tetragonal
	Trigonal
	Hexagonal
	Cubic
)

var crystalSystemNames = [...]string{"triclinic", "monoclinic", "orthorhombic", "tetragonal", "trigonal", "hexagonal", "cubic"}

func (s CrystalSystem) String() string { return crystalSystemNames[s] }

// Family returns the crystal family (trigonal and hexagonal merge).
func (s CrystalSystem) Family() CrystalFamily {
	switch s {
	case Triclinic:
		return FamilyTriclinic
	case Monoclinic:
		return FamilyMonoclinic
	case Orthorhombic:
		return FamilyOrthorhombic
	case Tetragonal:
		return FamilyTetragonal
	case Trigonal, Hexagonal:
		return FamilyHexagonal
	}
	return FamilyCubic
}

// CrystalFamily is one of the six crystal families.
type CrystalFamily int

// Crystal families.
const (
	FamilyTriclinic CrystalFamily = iota
	FamilyMonoclinic
	FamilyOrthorhombic
	FamilyTetragonal
	FamilyHexagonal
	FamilyCubic
)

// Letter returns the Pearson family letter (a, m, o, t, h, c).
func (f CrystalFamily) Letter() byte { return "amothc"[f] }

// BravaisClass is one of the 14 Bravais lattice types.
type BravaisClass int

// Bravais classes.
const (
	AP BravaisClass = iota
	MP
	MC
	OP
	OS
	OF
	OI
	TP
	TI
	HR
	HP
	CP
	CF
	CI
)

var bravaisSymbols = [...]string{"aP", "mP", "mC", "oP", "oS", "oF", "oI", "tP", "tI", "hR", "hP", "cP", "cF", "cI"}

// String returns the Pearson-style symbol, e.g. "hP".
func (b BravaisClass) String() string { return bravaisSymbols[b] }

// LatticeSystem returns the lattice system of b.
func (b BravaisClass) LatticeSystem() LatticeSystem {
	switch b {
	case AP:
		return LatticeTriclinic
	case MP, MC:
		return LatticeMonoclinic
	case OP, OS, OF, OI:
		return LatticeOrthorhombic
	case TP, TI:
		return LatticeTetragonal
	case HR:
		return LatticeRhombohedral
	case HP:
		return LatticeHexagonal
	}
	return LatticeCubic
}

// LatticeSystem is one of the seven lattice systems.
type LatticeSystem int

// Lattice systems.
const (
	LatticeTriclinic LatticeSystem = iota
	LatticeMonoclinic
	LatticeOrthorhombic
	LatticeTetragonal
	LatticeRhombohedral
	LatticeHexagonal
	LatticeCubic
)

var latticeSystemNames = [...]string{"triclinic", "monoclinic", "orthorhombic", "tetragonal", "rhombohedral", "hexagonal", "cubic"}

func (l LatticeSystem) String() string { return latticeSystemNames[l] }

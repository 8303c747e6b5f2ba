// SPDX-License-Identifier: MIT

// Package catalog: oriented site-symmetry symbols.
// A site-symmetry group is written one position per symmetry direction of
// the lattice system (three for orthorhombic, tetragonal, hexagonal and
// cubic), "." marking a direction without symmetry.
//
// Contract:
//   - Symbols are built from rotations only; translations never matter.
//   - Each direction set contributes the highest axis found and a mirror
//     when one is perpendicular, in the notation of International Tables.

package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// symbolSystem selects the symmetry directions of oriented symbols.
type symbolSystem int

const (
	symbolTriclinic symbolSystem = iota
	symbolMonoclinic
	symbolOrthorhombic
	symbolTetragonal
	symbolHexagonal    // primitive trigonal and hexagonal groups
	symbolRhombohedral // R groups in hexagonal axes
	symbolRhombohedralAxes
	symbolCubic
)

// symmetryDirections lists, per position of the oriented symbol, the
// lattice directions it stands for (ITA Table 2.1.3.1).
var symmetryDirections = map[symbolSystem][][]linalg.IVec3{
	symbolOrthorhombic: {{{1, 0, 0}}, {{0, 1, 0}}, {{0, 0, 1}}},
	symbolTetragonal: {
		{{0, 0, 1}},
		{{1, 0, 0}, {0, 1, 0}},
		{{1, -1, 0}, {1, 1, 0}},
	},
	symbolHexagonal: {
		{{0, 0, 1}},
		{{1, 0, 0}, {0, 1, 0}, {-1, -1, 0}},
		{{1, -1, 0}, {1, 2, 0}, {-2, -1, 0}},
	},
	symbolRhombohedral: {
		{{0, 0, 1}},
		{{1, 0, 0}, {0, 1, 0}, {-1, -1, 0}},
	},
	symbolRhombohedralAxes: {
		{{1, 1, 1}},
		{{1, -1, 0}, {0, 1, -1}, {-1, 0, 1}},
	},
	symbolCubic: {
		{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}},
		{{1, -1, 0}, {1, 1, 0}, {0, 1, -1}, {0, 1, 1}, {-1, 0, 1}, {1, 0, 1}},
	},
}

func symbolSystemOf(e HallEntry) symbolSystem {
	a := arithmeticClasses[e.ArithmeticNumber-1]
	switch a.GeometricClass.CrystalSystem() {
	case Triclinic:
		return symbolTriclinic
	case Monoclinic:
		return symbolMonoclinic
	case Orthorhombic:
		return symbolOrthorhombic
	case Tetragonal:
		return symbolTetragonal
	case Trigonal:
		if a.BravaisClass == HR {
			if e.Choice == "R" {
				return symbolRhombohedralAxes
			}
			return symbolRhombohedral
		}
		return symbolHexagonal
	case Hexagonal:
		return symbolHexagonal
	}
	return symbolCubic
}

// siteSymmetrySymbol builds the oriented short symbol of a site-symmetry
// group given by its rotation parts, e.g. "-6m2", ".2/m." or "4/mm.m".
// Directions of one set that the site group maps onto each other share a
// symbol; inequivalent ones are listed by decreasing axial order.
func siteSymmetrySymbol(rots []linalg.IMat3, sys symbolSystem) string {
	switch len(rots) {
	case 1:
		return "1"
	case 2:
		for _, r := range rots {
			if crystal.RotationType(r) == -1 {
				return "-1"
			}
		}
	}
	if sys == symbolTriclinic || sys == symbolMonoclinic {
		return pointSymbol(rots)
	}

	dirs := symmetryDirections[sys]
	parts := make([][]string, len(dirs))
	total := 0
	for i, set := range dirs {
		parts[i] = directionSetSymbols(rots, set)
		total += len(parts[i])
	}

	var b strings.Builder
	for _, p := range parts {
		if len(p) == 0 {
			b.WriteByte('.')
			continue
		}
		for _, s := range p {
			if total > 1 && (s == "2/m" || (sys == symbolCubic && s == "4/m" && len(parts[1]) > 0)) {
				s = "m"
			}
			b.WriteString(s)
		}
	}
	return b.String()
}

// directionSetSymbols returns one symbol per orbit of set under rots,
// dropping trivial ones.
func directionSetSymbols(rots []linalg.IMat3, set []linalg.IVec3) []string {
	type axial struct {
		symbol string
		rank   int
	}
	seen := make([]bool, len(set))
	var found []axial
	for i, d := range set {
		if seen[i] {
			continue
		}
		for j := i; j < len(set); j++ {
			if seen[j] {
				continue
			}
			for _, r := range rots {
				if parallel(r.MulVec(d), set[j]) {
					seen[j] = true
					break
				}
			}
		}
		if s, rank := axialSymbol(rots, d); rank > 1 {
			found = append(found, axial{s, rank})
		}
	}
	sort.SliceStable(found, func(a, b int) bool { return found[a].rank > found[b].rank })
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.symbol
	}
	return out
}

// axialSymbol describes the operations whose axis (or mirror normal) is
// parallel to d, with the order of the axial group they generate.
func axialSymbol(rots []linalg.IMat3, d linalg.IVec3) (string, int) {
	fold, mirror := 1, false
	rotoinversion := 0
	for _, r := range rots {
		t := crystal.RotationType(r)
		if t == 1 || t == -1 {
			continue
		}
		proper := r
		if r.Det() < 0 {
			proper = r.Neg()
		}
		if !parallel(rotationAxis(proper), d) {
			continue
		}
		switch {
		case t > 0 && t > fold:
			fold = t
		case t == -2:
			mirror = true
		case t < -2 && -t > rotoinversion:
			rotoinversion = -t
		}
	}
	switch {
	case mirror && fold > 1 && fold != 3:
		return strconv.Itoa(fold) + "/m", 2 * fold
	case mirror && fold == 3:
		return "-6", 6
	case rotoinversion == 6:
		return "-6", 6
	case rotoinversion == 4:
		return "-4", 4
	case rotoinversion == 3:
		return "-3", 6
	case fold > 1:
		return strconv.Itoa(fold), fold
	case mirror:
		return "m", 2
	}
	return ".", 1
}

// pointSymbol names small point groups without orientation (triclinic and
// monoclinic settings).
func pointSymbol(rots []linalg.IMat3) string {
	var counts RotationTypeCounts
	for _, r := range rots {
		if i := RotationTypeIndex(crystal.RotationType(r)); i >= 0 {
			counts[i]++
		}
	}
	if g, ok := GeometricCrystalClassFromCounts(counts); ok {
		return g.Symbol()
	}
	return "1"
}

// rotationAxis returns an integer vector spanning ker(R − I) of a proper
// rotation R ≠ I.
func rotationAxis(r linalg.IMat3) linalg.IVec3 {
	m := r.Sub(linalg.IIdentity3())
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if v := cross(m[i], m[j]); !v.IsZero() {
				return v
			}
		}
	}
	return linalg.IVec3{}
}

func cross(a, b [3]int) linalg.IVec3 {
	return linalg.IVec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func parallel(a, b linalg.IVec3) bool {
	return !a.IsZero() && cross(a, b).IsZero()
}

// SPDX-License-Identifier: MIT

package identify

import (
	"fmt"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/internal/logging"
	"github.com/katalvlaran/symfind/linalg"
	"github.com/katalvlaran/symfind/reduce"
)

// NewPointGroup identifies the arithmetic crystal class of primRotations,
// a closed group of rotations in a primitive basis.
//
// Errors: ErrNoCatalogMatch.
func NewPointGroup(primRotations []linalg.IMat3, opts ...Option) (*PointGroup, error) {
	o := gatherOptions(opts...)
	types := make([]int, len(primRotations))
	for i, r := range primRotations {
		types[i] = crystal.RotationType(r)
	}
	g, err := geometricClass(types)
	if err != nil {
		return nil, identifyErrorf(opPointGroup, err)
	}
	o.logger.V(logging.DEBUG).Info("Geometric crystal class", "class", g, "order", len(primRotations))

	var pg *PointGroup
	switch g.CrystalSystem() {
	case catalog.Triclinic:
		n := 1
		if g == catalog.Ci {
			n = 2
		}
		pg = &PointGroup{ArithmeticNumber: n, GeometricClass: g, Linear: linalg.IIdentity3()}
	case catalog.Cubic:
		pg, err = matchCubic(primRotations, types, g)
	default:
		pg, err = matchPointGroup(primRotations, types, g)
	}
	if err != nil {
		return nil, identifyErrorf(opPointGroup, err)
	}
	o.logger.V(logging.DEBUG).Info("Arithmetic crystal class", "number", pg.ArithmeticNumber)
	return pg, nil
}

// PointGroupFromLattice is NewPointGroup after Minkowski-reducing l; the
// returned Linear refers to the basis of l.
//
// Errors: ErrNoCatalogMatch, reduce.ErrNonReducibleLattice.
func PointGroupFromLattice(l crystal.Lattice, primRotations []linalg.IMat3, opts ...Option) (*PointGroup, error) {
	_, q, err := reduce.Minkowski(l)
	if err != nil {
		return nil, identifyErrorf(opPointGroupFromLattice, err)
	}
	qInv := q.MustInverse()
	reduced := make([]linalg.IMat3, len(primRotations))
	for i, r := range primRotations {
		reduced[i] = qInv.Mul(r).Mul(q)
	}
	pg, err := NewPointGroup(reduced, opts...)
	if err != nil {
		return nil, err
	}
	pg.Linear = q.Mul(pg.Linear)
	return pg, nil
}

func geometricClass(types []int) (catalog.GeometricCrystalClass, error) {
	var counts catalog.RotationTypeCounts
	for _, t := range types {
		i := catalog.RotationTypeIndex(t)
		if i < 0 {
			return 0, fmt.Errorf("%w: non-crystallographic rotation", ErrNoCatalogMatch)
		}
		counts[i]++
	}
	g, ok := catalog.GeometricCrystalClassFromCounts(counts)
	if !ok {
		return 0, fmt.Errorf("%w: rotation types %v form no point group", ErrNoCatalogMatch, counts)
	}
	return g, nil
}

// matchPointGroup tries the arithmetic classes of g in catalog order and
// returns the first with a unimodular conjugating matrix. A basis that
// already holds the representative's generators keeps the identity.
func matchPointGroup(rots []linalg.IMat3, types []int, g catalog.GeometricCrystalClass) (*PointGroup, error) {
	for _, a := range catalog.ArithmeticClassesOf(g) {
		rep, err := catalog.RepresentativeOf(a.Number)
		if err != nil {
			return nil, err
		}
		gens := rep.PrimitiveGenerators()
		if containsAll(rots, gens) {
			return &PointGroup{ArithmeticNumber: a.Number, GeometricClass: g, Linear: linalg.IIdentity3()}, nil
		}
		var found linalg.IMat3
		ok := false
		eachTransformationBasis(rots, types, gens, func(basis []linalg.IMat3) bool {
			found, ok = firstUnimodular(basis)
			return ok
		})
		if ok {
			return &PointGroup{ArithmeticNumber: a.Number, GeometricClass: g, Linear: found}, nil
		}
	}
	return nil, fmt.Errorf("%w: no arithmetic class of %s", ErrNoCatalogMatch, g)
}

// containsAll reports whether every rotation of gens occurs in rots.
func containsAll(rots, gens []linalg.IMat3) bool {
	set := make(map[linalg.IMat3]struct{}, len(rots))
	for _, r := range rots {
		set[r] = struct{}{}
	}
	for _, g := range gens {
		if _, ok := set[g]; !ok {
			return false
		}
	}
	return true
}

// matchCubic conjugates rots onto the primitive cubic representative; the
// solution space is one-dimensional, and the determinant of its generator
// equals the centering order of the arithmetic class.
func matchCubic(rots []linalg.IMat3, types []int, g catalog.GeometricCrystalClass) (*PointGroup, error) {
	type candidate struct {
		number    int
		centering catalog.Centering
	}
	var (
		cands []candidate
		gens  []linalg.IMat3
	)
	for _, a := range catalog.ArithmeticClassesOf(g) {
		rep, err := catalog.RepresentativeOf(a.Number)
		if err != nil {
			return nil, err
		}
		cands = append(cands, candidate{a.Number, rep.Centering})
		if rep.Centering == catalog.CenteringP {
			gens = rep.PrimitiveGenerators()
		}
	}

	var (
		pg     *PointGroup
		failed bool
	)
	eachTransformationBasis(rots, types, gens, func(basis []linalg.IMat3) bool {
		if len(basis) != 1 {
			return false
		}
		conv := basis[0]
		det := conv.Det()
		switch {
		case det == 0:
			return false
		case det < 0:
			conv, det = conv.Neg(), -det
		}
		for _, c := range cands {
			if c.centering.Order() != det {
				continue
			}
			prim := conv.Float().Mul(c.centering.Inverse()).Round()
			if prim.Det() != 1 {
				failed = true
				return true
			}
			pg = &PointGroup{ArithmeticNumber: c.number, GeometricClass: g, Linear: prim}
			return true
		}
		return false
	})
	if pg == nil || failed {
		return nil, fmt.Errorf("%w: no arithmetic class of %s", ErrNoCatalogMatch, g)
	}
	return pg, nil
}

// eachTransformationBasis enumerates, for every assignment of input
// rotations to gens with matching rotation types, the integer basis of the
// matrices P with R·P = P·G. Assignments vary the last generator fastest.
// visit returns true to stop.
func eachTransformationBasis(rots []linalg.IMat3, types []int, gens []linalg.IMat3, visit func([]linalg.IMat3) bool) {
	cands := make([][]int, len(gens))
	for k, g := range gens {
		t := crystal.RotationType(g)
		for i := range rots {
			if types[i] == t {
				cands[k] = append(cands[k], i)
			}
		}
		if len(cands[k]) == 0 {
			return
		}
	}

	idx := make([]int, len(gens))
	pivot := make([]linalg.IMat3, len(gens))
	for {
		for k := range gens {
			pivot[k] = rots[cands[k][idx[k]]]
		}
		if basis, err := linalg.Sylvester3(pivot, gens); err == nil && visit(basis) {
			return
		}
		k := len(idx) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < len(cands[k]) {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return
		}
	}
}

// firstUnimodular returns the first integer combination of basis with
// determinant 1, trying coefficients in [−1, 1] before those touching ±2.
func firstUnimodular(basis []linalg.IMat3) (linalg.IMat3, bool) {
	var found linalg.IMat3
	ok := false
	eachUnimodular(basis, func(p linalg.IMat3) bool {
		found, ok = p, true
		return true
	})
	return found, ok
}

// eachUnimodular visits the determinant-1 combinations of basis in the
// order of firstUnimodular until visit returns true.
func eachUnimodular(basis []linalg.IMat3, visit func(linalg.IMat3) bool) {
	for _, bound := range []int{1, 2} {
		coeffs := make([]int, len(basis))
		for i := range coeffs {
			coeffs[i] = -bound
		}
		for {
			if bound == 1 || touches(coeffs, bound) {
				var p linalg.IMat3
				for i, c := range coeffs {
					p = p.Add(basis[i].Scale(c))
				}
				if p.Det() == 1 && visit(p) {
					return
				}
			}
			k := len(coeffs) - 1
			for ; k >= 0; k-- {
				coeffs[k]++
				if coeffs[k] <= bound {
					break
				}
				coeffs[k] = -bound
			}
			if k < 0 {
				break
			}
		}
	}
}

func touches(coeffs []int, bound int) bool {
	for _, c := range coeffs {
		if c == bound || c == -bound {
			return true
		}
	}
	return false
}

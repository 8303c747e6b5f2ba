// SPDX-License-Identifier: MIT

package identify

import (
	"fmt"
	"math"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/internal/logging"
	"github.com/katalvlaran/symfind/linalg"
	"github.com/katalvlaran/symfind/reduce"
)

// Conventional cell changes tried on top of the arithmetic-class matrix.
var (
	// identity, b2 → b1, b3 → b1
	monoclinicCorrections = []linalg.IMat3{
		linalg.IIdentity3(),
		{{0, 0, -1}, {0, 1, 0}, {1, 0, -1}},
		{{-1, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
	}
	// abc, ba-c, cab, -cba, bca, a-cb
	orthorhombicCorrections = []linalg.IMat3{
		linalg.IIdentity3(),
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
		{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	}
	// m-3 has two inequivalent orientations of its mirrors.
	cubicThCorrections = []linalg.IMat3{
		linalg.IIdentity3(),
		{{0, 0, 1}, {0, -1, 0}, {1, 0, 0}},
	}
)

// NewSpaceGroup matches primOps, the operations of a primitive cell (one
// per rotation), against the Hall settings selected by setting. epsilon
// bounds the mismatch of fractional translations; see Epsilon.
//
// Unforced settings scan one Hall setting per space-group type in number
// order and keep the first match. A forced setting tries the
// arithmetic-class route first and then every unimodular conjugation onto
// the setting's own generators, so non-standard axes and cell choices can
// be requested explicitly.
//
// Errors: ErrNoCatalogMatch, ErrSettingMismatch.
func NewSpaceGroup(primOps crystal.Operations, setting catalog.Setting, epsilon float64, opts ...Option) (*SpaceGroup, error) {
	o := gatherOptions(opts...)
	pg, err := NewPointGroup(primOps.Rotations(), opts...)
	if err != nil {
		return nil, identifyErrorf(opSpaceGroup, err)
	}
	halls, err := setting.HallNumbers()
	if err != nil {
		return nil, identifyErrorf(opSpaceGroup, err)
	}

	for _, h := range halls {
		entry, err := catalog.Entry(h)
		if err != nil {
			return nil, identifyErrorf(opSpaceGroup, err)
		}
		if entry.ArithmeticNumber != pg.ArithmeticNumber {
			continue
		}
		hs, err := catalog.FromHallNumber(h)
		if err != nil {
			return nil, identifyErrorf(opSpaceGroup, err)
		}
		dbGens := hs.PrimitiveGenerators()
		corrections, err := correctionMatrices(pg.ArithmeticNumber, pg.GeometricClass)
		if err != nil {
			return nil, identifyErrorf(opSpaceGroup, err)
		}
		for _, corr := range corrections {
			linear := pg.Linear.Mul(corr)
			if shift, ok := matchOriginShift(primOps, linear, dbGens, epsilon); ok {
				o.logger.V(logging.DEBUG).Info("Matched Hall setting", "hall", h, "number", entry.Number)
				return newSpaceGroup(entry, linear, shift), nil
			}
		}
	}

	forced, isForced := setting.HallNumber()
	if !isForced {
		return nil, identifyErrorf(opSpaceGroup, fmt.Errorf("%w: arithmetic class %d", ErrNoCatalogMatch, pg.ArithmeticNumber))
	}
	sg, err := matchForced(primOps, pg, forced, epsilon)
	if err != nil {
		return nil, identifyErrorf(opSpaceGroup, err)
	}
	o.logger.V(logging.DEBUG).Info("Matched forced Hall setting", "hall", forced, "number", sg.Number)
	return sg, nil
}

// SpaceGroupFromLattice is NewSpaceGroup after Minkowski-reducing l; the
// returned transformation starts from the basis of l.
//
// Errors: ErrNoCatalogMatch, ErrSettingMismatch,
// reduce.ErrNonReducibleLattice.
func SpaceGroupFromLattice(l crystal.Lattice, primOps crystal.Operations, setting catalog.Setting, epsilon float64, opts ...Option) (*SpaceGroup, error) {
	_, q, err := reduce.Minkowski(l)
	if err != nil {
		return nil, identifyErrorf(opSpaceGroupFromLattice, err)
	}
	toReduced := crystal.MustUnimodular(q, linalg.Vec3{})
	sg, err := NewSpaceGroup(toReduced.TransformOperations(primOps), setting, epsilon, opts...)
	if err != nil {
		return nil, err
	}
	sg.Transformation = toReduced.Compose(sg.Transformation)
	return sg, nil
}

func newSpaceGroup(e catalog.HallEntry, linear linalg.IMat3, shift linalg.Vec3) *SpaceGroup {
	return &SpaceGroup{
		Number:           e.Number,
		HallNumber:       e.HallNumber,
		ArithmeticNumber: e.ArithmeticNumber,
		Transformation:   crystal.MustUnimodular(linear, shift),
	}
}

// matchForced searches every unimodular P conjugating the rotations onto
// the forced setting's primitive generators.
func matchForced(primOps crystal.Operations, pg *PointGroup, hall int, epsilon float64) (*SpaceGroup, error) {
	entry, err := catalog.Entry(hall)
	if err != nil {
		return nil, err
	}
	arith, err := catalog.ArithmeticClass(entry.ArithmeticNumber)
	if err != nil {
		return nil, err
	}
	if arith.GeometricClass != pg.GeometricClass {
		return nil, fmt.Errorf("%w: Hall %d has point group %s, operations have %s",
			ErrSettingMismatch, hall, arith.GeometricClass.Symbol(), pg.GeometricClass.Symbol())
	}
	hs, err := catalog.FromHallNumber(hall)
	if err != nil {
		return nil, err
	}
	dbGens := hs.PrimitiveGenerators()
	rots := primOps.Rotations()
	types := make([]int, len(rots))
	for i, r := range rots {
		types[i] = crystal.RotationType(r)
	}

	var sg *SpaceGroup
	eachTransformationBasis(rots, types, dbGens.Rotations(), func(basis []linalg.IMat3) bool {
		eachUnimodular(basis, func(p linalg.IMat3) bool {
			if shift, ok := matchOriginShift(primOps, p, dbGens, epsilon); ok {
				sg = newSpaceGroup(entry, p, shift)
				return true
			}
			return false
		})
		return sg != nil
	})
	if sg == nil {
		return nil, fmt.Errorf("%w: Hall %d", ErrSettingMismatch, hall)
	}
	return sg, nil
}

// correctionMatrices expresses the conventional cell changes of the
// geometric class in the primitive basis of the class representative,
// keeping the unimodular ones.
func correctionMatrices(arithmetic int, g catalog.GeometricCrystalClass) ([]linalg.IMat3, error) {
	var convs []linalg.IMat3
	switch g {
	case catalog.C2, catalog.C1h, catalog.C2h:
		convs = monoclinicCorrections
	case catalog.D2, catalog.C2v, catalog.D2h:
		convs = orthorhombicCorrections
	case catalog.Th:
		convs = cubicThCorrections
	default:
		return []linalg.IMat3{linalg.IIdentity3()}, nil
	}
	rep, err := catalog.RepresentativeOf(arithmetic)
	if err != nil {
		return nil, err
	}
	lin := rep.Centering.Linear()
	inv := rep.Centering.Inverse()
	out := make([]linalg.IMat3, 0, len(convs))
	for _, c := range convs {
		corr := lin.Mul(c).Float().Mul(inv).Round()
		if corr.Det() == 1 {
			out = append(out, corr)
		}
	}
	return out, nil
}

// matchOriginShift looks for an origin shift c with (P, c)⁻¹·G·(P, c) equal
// to the generators dbGens. Writing s = P⁻¹c and (R, t) for the operation of
// G conjugated by (P, 0) that shares the rotation of (R, t_db), the
// condition is (R − I)·s ≡ t_db − t (mod 1).
func matchOriginShift(primOps crystal.Operations, linear linalg.IMat3, dbGens crystal.Operations, epsilon float64) (linalg.Vec3, bool) {
	conj := crystal.MustUnimodular(linear, linalg.Vec3{}).TransformOperations(primOps)
	byRotation := make(map[linalg.IMat3]linalg.Vec3, len(conj))
	for _, op := range conj {
		byRotation[op.Rotation] = op.Translation
	}

	a := linalg.NewIntDense(3*len(dbGens), 3)
	b := make([]float64, 3*len(dbGens))
	for k, g := range dbGens {
		t, ok := byRotation[g.Rotation]
		if !ok {
			// the correction need not normalize the point group (mm2 → 2mm)
			return linalg.Vec3{}, false
		}
		rm := g.Rotation.Sub(linalg.IIdentity3())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				a.Set(3*k+i, j, rm[i][j])
			}
			d := g.Translation[i] - t[i]
			b[3*k+i] = d - math.Round(d)
		}
	}
	s, err := linalg.SolveMod1(a, b, epsilon)
	if err != nil {
		return linalg.Vec3{}, false
	}
	return linear.MulFVec(s).Wrap(), true
}

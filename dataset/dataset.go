// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"math"
	"strconv"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/identify"
	"github.com/katalvlaran/symfind/internal/logging"
	"github.com/katalvlaran/symfind/search"
	"github.com/katalvlaran/symfind/standardize"
)

// New classifies the symmetry of cell.
//
// Steps:
//  1. search.Search: validation, primitive cell, operations, orbits.
//  2. identify.NewSpaceGroup on the primitive operations.
//  3. standardize.Standardize: standardized cells and Wyckoff positions.
//  4. Assembly of everything in the basis of cell.
//
// Errors: see the package documentation.
func New(cell crystal.Cell, opts ...Option) (*Dataset, error) {
	o := gatherOptions(opts...)
	log := o.logger.WithName("dataset")

	res, err := searchWithRetries(cell, o, log)
	if err != nil {
		return nil, datasetErrorf(opNew, err)
	}
	symprec := res.Symprec
	prim := res.Primitive

	sg, err := identify.NewSpaceGroup(res.Symmetry.Operations, o.setting,
		identify.Epsilon(symprec, prim.Cell.Lattice), identify.WithLogger(o.logger))
	if err != nil {
		return nil, datasetErrorf(opNew, err)
	}
	std, err := standardize.Standardize(prim.Cell, res.Symmetry.Operations, res.Symmetry.Permutations,
		sg, symprec, standardize.WithLogger(o.logger))
	if err != nil {
		return nil, datasetErrorf(opNew, err)
	}

	d, err := assemble(res, sg, std, o)
	if err != nil {
		return nil, datasetErrorf(opNew, err)
	}
	log.V(logging.DEBUG).Info("Dataset assembled",
		"number", d.Number, "hall", d.HallNumber, "symbol", d.HMSymbol,
		"operations", len(d.Operations), "pearson", d.PearsonSymbol, "symprec", d.Symprec)
	return d, nil
}

// With runs fn on a fresh dataset of cell and releases it on every exit
// path, panics included.
func With(cell crystal.Cell, fn func(*Dataset) error, opts ...Option) error {
	d, err := New(cell, opts...)
	if err != nil {
		return err
	}
	defer d.Release()
	return fn(d)
}

// searchWithRetries runs the symmetry search, rescaling symprec after
// tolerance errors while retries remain.
func searchWithRetries(cell crystal.Cell, o options, log logr.Logger) (*search.Result, error) {
	symprec := o.symprec
	for attempt := 0; ; attempt++ {
		res, err := search.Search(cell, symprec,
			search.WithAngleTolerance(o.angle), search.WithLogger(o.logger))
		if err == nil || attempt >= o.retries {
			return res, err
		}
		switch {
		case errors.Is(err, search.ErrTooLargeTolerance):
			symprec /= o.rescale
		case errors.Is(err, search.ErrTooSmallTolerance):
			symprec *= o.rescale
		default:
			return nil, err
		}
		log.V(logging.DEBUG).Info("Retrying symmetry search", "attempt", attempt+1, "symprec", symprec, "cause", err.Error())
	}
}

func assemble(res *search.Result, sg *identify.SpaceGroup, std *standardize.Standardized, o options) (*Dataset, error) {
	entry, err := catalog.Entry(sg.HallNumber)
	if err != nil {
		return nil, err
	}
	arith, err := catalog.ArithmeticClass(sg.ArithmeticNumber)
	if err != nil {
		return nil, err
	}
	prim := res.Primitive

	// Primitive coordinates are Linear times input coordinates.
	linearInv, err := prim.Linear.Float().Inverse()
	if err != nil {
		return nil, err
	}

	n := len(prim.SiteMapping)
	d := &Dataset{
		Number:           entry.Number,
		HallNumber:       entry.HallNumber,
		HMSymbol:         entry.HMSymbol,
		HallSymbol:       entry.HallSymbol,
		ArithmeticNumber: arith.Number,
		PointGroup:       arith.GeometricClass.Symbol(),
		CrystalSystem:    arith.GeometricClass.CrystalSystem(),
		LatticeSystem:    arith.LatticeSystem(),

		Operations:          res.Operations,
		Orbits:              res.Orbits,
		Wyckoffs:            make([]string, n),
		SiteSymmetrySymbols: make([]string, n),

		StdCell:        std.Cell,
		StdLinear:      linearInv.Mul(std.Transformation.Linear.Float()),
		StdOriginShift: linearInv.MulVec(std.Transformation.OriginShift),
		StdRotation:    std.Rotation,

		PrimStdCell:        std.PrimCell,
		PrimStdLinear:      linearInv.Mul(std.PrimTransformation.Linear.Float()),
		PrimStdOriginShift: linearInv.MulVec(std.PrimTransformation.OriginShift),

		MappingStdPrim: append([]int(nil), prim.SiteMapping...),
		StdMapping:     std.SiteMapping,

		PearsonSymbol: PearsonSymbol(arith.BravaisClass, len(std.Cell.Positions)),

		Symprec:        res.Symprec,
		AngleTolerance: resolvedAngle(res, prim.Cell.Lattice),
		Setting:        o.setting,
	}
	for i, p := range prim.SiteMapping {
		w := std.Wyckoffs[p]
		d.Wyckoffs[i] = w.Letter
		d.SiteSymmetrySymbols[i] = w.SiteSymmetry
	}
	return d, nil
}

// PearsonSymbol returns the crystal family and centering letters of b
// followed by the number of atoms in the conventional cell, e.g. "hP2" or
// "cF8". Base-centred lattices use S.
func PearsonSymbol(b catalog.BravaisClass, atoms int) string {
	prefix := b.String()
	if b == catalog.MC {
		prefix = "mS"
	}
	return prefix + strconv.Itoa(atoms)
}

// resolvedAngle reports the angle tolerance that was in effect. The auto
// policy bounds sin Δθ by symprec over the shortest basis vector.
func resolvedAngle(res *search.Result, l crystal.Lattice) crystal.AngleTolerance {
	if !res.AngleTolerance.IsAuto() {
		return res.AngleTolerance
	}
	lengths := l.Lengths()
	shortest := min(lengths[0], lengths[1], lengths[2])
	return crystal.Radian(math.Asin(math.Min(1, res.Symprec/shortest)))
}

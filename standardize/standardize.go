// SPDX-License-Identifier: MIT

package standardize

import (
	"fmt"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/identify"
	"github.com/katalvlaran/symfind/internal/logging"
	"github.com/katalvlaran/symfind/linalg"
	"github.com/katalvlaran/symfind/reduce"
)

// Standardize builds the standardized cells of prim.
//
// prim is a primitive cell, primOps its operations (one per rotation) and
// primPerms their atom permutations (operation k moves atom i onto
// primPerms[k][i]). sg is the space group matched on primOps.
//
// Steps:
//  1. Choose the transformation onto the primitive standard basis.
//  2. Symmetrize positions with the setting's exact operations.
//  3. For every origin shift normalizing the setting, expand to the
//     conventional cell and assign Wyckoff positions; keep the earliest
//     letters.
//  4. Symmetrize the conventional lattice and derive the primitive one.
//
// Errors: ErrStandardization, ErrWyckoffAssignment,
// reduce.ErrNonReducibleLattice.
func Standardize(prim crystal.Cell, primOps crystal.Operations, primPerms []crystal.Permutation, sg *identify.SpaceGroup, symprec float64, opts ...Option) (*Standardized, error) {
	o := gatherOptions(opts...)
	if len(primOps) != len(primPerms) {
		return nil, standardizeErrorf(opStandardize, fmt.Errorf("%w: %d operations, %d permutations",
			ErrStandardization, len(primOps), len(primPerms)))
	}
	hs, err := catalog.FromHallNumber(sg.HallNumber)
	if err != nil {
		return nil, standardizeErrorf(opStandardize, err)
	}

	primTrans, err := primitiveTransformation(prim.Lattice, sg)
	if err != nil {
		return nil, standardizeErrorf(opStandardize, err)
	}
	conv := hs.Traverse()
	centering := crystal.MustTransformation(hs.Centering.Linear(), linalg.Vec3{})
	primStdOps := centering.InverseTransformOperations(conv)

	perms, err := permutationsOf(primTrans.TransformOperations(primOps), primPerms, primStdOps)
	if err != nil {
		return nil, standardizeErrorf(opStandardize, err)
	}
	primStd := primTrans.TransformCell(prim)
	primStd.Positions = symmetrizePositions(primStd.Positions, primStdOps, perms)

	orbits := crystal.OrbitsFromPermutations(prim.NumAtoms(), primPerms)
	best, err := chooseOrigin(primStd, centering, sg.HallNumber, orbits, symprec)
	if err != nil {
		return nil, standardizeErrorf(opStandardize, err)
	}
	o.logger.V(logging.DEBUG).Info("Assigned Wyckoff positions", "hall", sg.HallNumber, "originShift", best.shift)

	// Shifting conventional coordinates by τ moves the origin by M·τ.
	total := primTrans.Linear.Mul(centering.Linear)
	primTrans = crystal.MustUnimodular(primTrans.Linear,
		primTrans.OriginShift.Add(total.MulFVec(best.shift)))

	if len(best.cell.Positions) != prim.NumAtoms()*centering.Size {
		return nil, standardizeErrorf(opStandardize, fmt.Errorf("%w: %d conventional atoms for %d primitive atoms",
			ErrStandardization, len(best.cell.Positions), prim.NumAtoms()))
	}

	lattice, rotation, err := SymmetrizeLattice(best.cell.Lattice, conv.Rotations())
	if err != nil {
		return nil, standardizeErrorf(opStandardize, err)
	}
	best.cell.Lattice = lattice
	best.prim.Lattice = centering.InverseTransformLattice(lattice)

	o.logger.V(logging.DEBUG).Info("Standardized cell",
		"hall", sg.HallNumber, "atoms", len(best.cell.Positions), "primitiveAtoms", prim.NumAtoms())
	return &Standardized{
		PrimCell:           best.prim,
		PrimTransformation: primTrans,
		Cell:               best.cell,
		Transformation:     crystal.MustTransformation(total, primTrans.OriginShift),
		SiteMapping:        best.mapping,
		Rotation:           rotation,
		Operations:         conv,
		Centering:          hs.Centering,
		Wyckoffs:           best.wyckoffs,
		Orbits:             orbits,
	}, nil
}

// primitiveTransformation returns the change of basis onto the primitive
// standard cell. Triclinic settings have no preferred axes, so the Niggli
// cell is used with the origin found by identification (the inversion
// centre of P -1).
func primitiveTransformation(l crystal.Lattice, sg *identify.SpaceGroup) (crystal.UnimodularTransformation, error) {
	if sg.Number > 2 {
		return sg.Transformation, nil
	}
	_, p, err := reduce.Niggli(l)
	if err != nil {
		return crystal.UnimodularTransformation{}, err
	}
	return crystal.NewUnimodularTransformation(p, sg.Transformation.OriginShift)
}

// permutationsOf pairs every operation of target with the permutation of
// the found operation sharing its rotation.
func permutationsOf(found crystal.Operations, perms []crystal.Permutation, target crystal.Operations) ([]crystal.Permutation, error) {
	byRotation := make(map[linalg.IMat3]crystal.Permutation, len(found))
	for k, op := range found {
		byRotation[op.Rotation] = perms[k]
	}
	out := make([]crystal.Permutation, len(target))
	for k, op := range target {
		p, ok := byRotation[op.Rotation]
		if !ok {
			return nil, fmt.Errorf("%w: rotation %v of the setting was not found", ErrStandardization, op.Rotation)
		}
		out[k] = p
	}
	return out, nil
}

// SPDX-License-Identifier: MIT

// Package search: space-group operations of a primitive cell.
//
// Contract:
//   - Rotations come from the Bravais group only; translations from
//     differences between the pivot atom and same-species atoms.
//   - Accepted operations are closed under multiplication; the closure is
//     authoritative, and its translations must compose consistently
//     within 2·symprec.

package search

import (
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/internal/logging"
	"github.com/katalvlaran/symfind/linalg"
)

// SearchPrimitive returns the operations of a Minkowski-reduced primitive
// cell, one per rotation, the identity first.
//
// Implementation:
//   - For every lattice rotation R, candidate translations move R·x of the
//     first pivot atom onto each pivot atom. A candidate needs a full
//     correspondence within 2·symprec and, after averaging the translation,
//     a worst displacement below symprec.
//   - Accepted operations are closed by breadth-first multiplication modulo
//     lattice translations; the closure is kept as the result and must have
//     consistent translations within 2·symprec.
//
// Errors:
//   - ErrTooLargeTolerance, ErrTooSmallTolerance.
func SearchPrimitive(prim crystal.Cell, symprec float64, opts ...Option) (*PrimitiveSymmetry, error) {
	o := gatherOptions(opts...)
	log := o.logger

	rough := 2 * symprec
	if rough > prim.Lattice.Vector(0).Norm()/2 {
		log.V(logging.DEBUG).Info("Symprec is too large compared to the basis vectors", "symprec", symprec)
		return nil, searchErrorf(opSearchPrimitive, ErrTooLargeTolerance)
	}

	bravais, err := BravaisGroup(prim.Lattice, symprec, o.angle)
	if err != nil {
		log.V(logging.DEBUG).Info("Lattice automorphisms do not form a group", "symprec", symprec, "angleTolerance", o.angle.String())
		return nil, searchErrorf(opSearchPrimitive, err)
	}
	log.V(logging.DEBUG).Info("Found Bravais group", "order", len(bravais))

	tree := newPeriodicTree(prim)
	pivots := pivotSites(prim.Numbers)
	src := pivots[0]

	type candidate struct {
		op   crystal.Operation
		perm crystal.Permutation
	}
	var accepted []candidate
	n := prim.NumAtoms()
	rotated := make([]linalg.Vec3, n)
	moved := make([]linalg.Vec3, n)
	for _, r := range bravais {
		for i, x := range prim.Positions {
			rotated[i] = r.MulFVec(x)
		}
		for _, dst := range pivots {
			shift := prim.Positions[dst].Sub(rotated[src])
			for i := range rotated {
				moved[i] = rotated[i].Add(shift)
			}
			perm, ok := tree.correspondence(prim, moved, rough)
			if !ok {
				continue
			}
			t, worst := symmetrizeTranslation(prim, perm, r, shift)
			if worst >= symprec {
				log.V(logging.TRACE).Info("Rejected operation", "rotation", r, "distance", worst)
				continue
			}
			accepted = append(accepted, candidate{crystal.Operation{Rotation: r, Translation: t}, perm})
		}
	}
	if len(accepted) == 0 {
		log.V(logging.DEBUG).Info("No symmetry operation found", "symprec", symprec)
		return nil, searchErrorf(opSearchPrimitive, ErrTooSmallTolerance)
	}

	// Close under multiplication, keyed by rotation.
	result := &PrimitiveSymmetry{BravaisGroup: bravais}
	seen := make(map[linalg.IMat3]struct{})
	queue := []candidate{{crystal.Identity(), crystal.IdentityPermutation(n)}}
	for head := 0; head < len(queue); head++ {
		lhs := queue[head]
		if _, ok := seen[lhs.op.Rotation]; ok {
			continue
		}
		seen[lhs.op.Rotation] = struct{}{}
		result.Operations = append(result.Operations, lhs.op)
		result.Permutations = append(result.Permutations, lhs.perm)
		for _, rhs := range accepted {
			op := lhs.op.Mul(rhs.op)
			op.Translation = op.Translation.Centered()
			queue = append(queue, candidate{op, lhs.perm.Mul(rhs.perm)})
		}
	}
	if len(result.Operations) != len(accepted) {
		log.V(logging.DEBUG).Info("Closure differs from accepted operations",
			"accepted", len(accepted), "closure", len(result.Operations))
	}

	if !consistentTranslations(result.Operations, prim.Lattice, rough) {
		log.V(logging.DEBUG).Info("Operations are not closed within tolerance", "symprec", symprec)
		return nil, searchErrorf(opSearchPrimitive, ErrTooLargeTolerance)
	}
	log.V(logging.DEBUG).Info("Found point group", "order", len(result.Operations))
	return result, nil
}

// consistentTranslations checks that the product of any two operations
// reproduces the translation stored for its rotation within eps
// (Cartesian, modulo lattice translations).
func consistentTranslations(ops crystal.Operations, l crystal.Lattice, eps float64) bool {
	byRotation := make(map[linalg.IMat3]linalg.Vec3, len(ops))
	for _, op := range ops {
		byRotation[op.Rotation] = op.Translation
	}
	for _, a := range ops {
		for _, b := range ops {
			ab := a.Mul(b)
			t, ok := byRotation[ab.Rotation]
			if !ok {
				return false
			}
			if l.Cartesian(t.Sub(ab.Translation).Centered()).Norm() > eps {
				return false
			}
		}
	}
	return true
}

// OperationsInCell lifts primitive operations to the input cell of prim:
// every conjugated operation combined with every pure translation,
// translations wrapped into [0, 1). Rotations that are not integral in the
// input basis (a supercell breaking the lattice symmetry) are dropped.
func OperationsInCell(prim *PrimitiveCell, ops crystal.Operations) crystal.Operations {
	conj := crystal.MustTransformation(prim.Linear, linalg.Vec3{}).TransformOperations(ops)
	out := make(crystal.Operations, 0, len(prim.Translations)*len(conj))
	for _, t := range prim.Translations {
		for _, op := range conj {
			out = append(out, crystal.Operation{Rotation: op.Rotation, Translation: op.Translation.Add(t).Wrap()})
		}
	}
	return out
}

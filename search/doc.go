// SPDX-License-Identifier: MIT

// Package search finds the symmetry operations of a crystal structure within
// a distance tolerance.
//
// What:
//
//   - NewPrimitiveCell: pure translations of the input cell and the
//     Minkowski-reduced primitive cell they define.
//   - BravaisGroup: the lattice automorphisms (at most 48 integer matrices)
//     of a Minkowski-reduced lattice, compared by lengths and angles.
//   - SearchPrimitive: operations (R, t) of a primitive cell, one per
//     rotation, closed under composition modulo lattice translations.
//   - Search: the whole stage. Validates the cell, rejects overlapping
//     atoms, runs the two searches above, lifts the operations back to the
//     input basis and labels atom orbits.
//
// Why:
//
//   - Searching the reduced primitive cell bounds candidate rotations to
//     coefficients in {−1, 0, 1} and candidate translations to one pivot
//     species, independent of the caller's choice of cell.
//   - Every candidate is accepted only after a full correspondence of all
//     atoms (same species, periodic distance under 2·symprec), followed by a
//     least-squares translation whose worst displacement must stay under
//     symprec.
//
// Errors:
//
//   - crystal.ErrDegenerateInput: empty or malformed cell, non-positive
//     symprec, atoms closer than symprec.
//   - ErrTooLargeTolerance: symprec is comparable to the shortest lattice
//     vector, or the accepted operations do not close into a group.
//   - ErrTooSmallTolerance: no translation or rotation survives.
//   - ErrPrimitiveCell: the pure translations do not define a sublattice.
//   - reduce.ErrNonReducibleLattice from the lattice reductions.
//
// Options:
//
//   - WithAngleTolerance(t): explicit angle tolerance; the default
//     crystal.AutoAngle compares sin²(Δθ)·|a||b| against symprec².
//   - WithLogger(l): logr.Logger receiving V(1) stage summaries and V(2)
//     candidate details; logr.Discard() by default.
//
// Complexity: O(|B|·k·N·log N) for |B| ≤ 48 lattice rotations, k pivot
// atoms and N atoms, with a gonum k-d tree answering nearest-image queries.
package search

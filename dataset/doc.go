// SPDX-License-Identifier: MIT

// Package dataset is the entry point of symfind: it classifies the symmetry
// of a crystal structure and returns everything known about it as one
// Dataset.
//
// What:
//
//   - New(cell, opts...): runs the whole engine (validation, primitive
//     cell, symmetry operations, space-group identification,
//     standardization, Wyckoff assignment) and assembles a Dataset.
//   - With(cell, fn, opts...): New plus guaranteed release after fn.
//   - Dataset: space-group type and Hall setting, operations in the input
//     basis, per-atom orbits, Wyckoff letters and site-symmetry symbols,
//     standardized and primitive standardized cells with the
//     transformations leading to them, Pearson symbol, and the tolerances
//     actually used.
//
// Ownership:
//
//   - The caller owns a Dataset. Release (or Close, for io.Closer users)
//     drops its contents; a released Dataset reads as its zero value.
//     Releasing twice is a no-op.
//
// Errors (aliases of the stage errors, so errors.Is works either way):
//
//   - ErrDegenerateInput: empty cell, malformed input, non-positive
//     symprec, atoms closer than symprec.
//   - ErrNonReducibleLattice: a lattice reduction did not converge.
//   - ErrTooSmallTolerance, ErrTooLargeTolerance: the symmetry search
//     failed; see WithRetries.
//   - ErrSettingMismatch: the forced Hall setting does not describe the
//     structure.
//   - ErrNoCatalogMatch: the operations correspond to no catalogued type.
//   - ErrPrimitiveCell, ErrStandardization, ErrWyckoffAssignment: internal
//     inconsistencies, usually a badly chosen tolerance.
//
// Options:
//
//   - WithSymprec(s): distance tolerance in the length unit of the basis
//     (default DefaultSymprec).
//   - WithAngleTolerance(t): explicit angle tolerance (default auto).
//   - WithSetting(s): catalog.SettingSpglib (default) or
//     catalog.SettingStandard.
//   - WithHallNumber(n): force one Hall setting.
//   - WithRetries(n), WithRescale(f): retry a failed search with symprec
//     divided (too large) or multiplied (too small) by f.
//   - WithLogger(l): logr.Logger passed to every stage.
//
// Concurrency: New keeps no state between calls and may run concurrently;
// the catalog it reads is immutable after its first load.
package dataset

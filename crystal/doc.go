// SPDX-License-Identifier: MIT

// Package crystal defines the data model shared by every stage of the
// symmetry engine: lattices, decorated cells, affine symmetry operations,
// atom permutations and changes of basis.
//
// What:
//
//   - Lattice holds three basis vectors as the ROWS of a 3×3 matrix.
//     Fractional coordinates x map to Cartesian coordinates as Σᵢ xᵢ·aᵢ.
//   - Cell pairs a Lattice with N fractional positions and N species labels.
//   - Operation is an affine map x ↦ R·x + t in the basis of the cell it
//     belongs to (R integer, t fractional).
//   - UnimodularTransformation and Transformation change basis and origin:
//     new basis columns are old columns times P, and coordinates map as
//     x' = P⁻¹·(x − p).
//
// Errors:
//
//   - ErrDegenerateInput: empty cell, mismatched lengths, non-finite values
//     or overlapping atoms.
//   - ErrSingularLattice: a basis with (numerically) zero volume.
//
// Cells and operations are plain values. Nothing in this package keeps
// state between calls, so every function is safe for concurrent use.
package crystal

// SPDX-License-Identifier: MIT

// Package standardize brings a classified crystal structure into the
// conventional cell of its Hall setting and labels its Wyckoff positions.
//
// What:
//
//   - Standardize: from a primitive cell, its operations and the matched
//     space group, builds the primitive standardized cell, the
//     conventional standardized cell, the rigid rotation of the idealized
//     lattice and the Wyckoff position of every primitive atom.
//   - SymmetrizeLattice: averages the metric tensor over a point group and
//     rebuilds the basis in the canonical orientation (a along x, b in the
//     xy-plane).
//
// How:
//
//   - Triclinic groups use the Niggli cell; other groups the
//     transformation found by identification.
//   - Positions are replaced by their average over the group images of
//     the corresponding atoms, so every atom sits exactly on its special
//     position.
//   - Wyckoff positions follow from the site-symmetry group of one
//     symmetrized member per orbit; the multiplicity of the matched
//     position must equal the orbit size in the conventional cell.
//   - Shifts of origin that map the group onto itself are tried in turn
//     and the one giving the earliest Wyckoff letters is kept, so
//     equivalent inputs yield the same description.
//
// Errors:
//
//   - ErrStandardization: an operation of the setting has no counterpart
//     among the found operations, the averaged metric is not positive
//     definite or the centering ratio is broken.
//   - ErrWyckoffAssignment: no Wyckoff position of the setting matches an
//     orbit.
//
// Options:
//
//   - WithLogger(l): logr.Logger receiving V(1) summaries.
package standardize

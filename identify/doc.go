// SPDX-License-Identifier: MIT

// Package identify classifies a symmetry-operation group against the
// catalog of arithmetic crystal classes and Hall settings.
//
// What:
//
//   - NewPointGroup: geometric crystal class from the rotation-type
//     histogram, then the arithmetic crystal class together with a
//     unimodular basis change P such that P⁻¹·R·P runs over the catalog
//     representative's rotations.
//   - NewSpaceGroup: the Hall setting whose primitive generators equal the
//     input operations after a basis change and an origin shift.
//   - PointGroupFromLattice, SpaceGroupFromLattice: the same after a
//     Minkowski reduction of the lattice, which keeps the integer searches
//     small.
//
// How:
//
//   - P solves the Sylvester system Rᵢ·P = P·Gᵢ for every representative
//     generator Gᵢ and every choice of input rotations Rᵢ of the same
//     rotation type; unimodular P is taken from integer combinations of the
//     solution basis with coefficients in [−1, 1], then [−2, 2].
//   - Monoclinic, orthorhombic and m-3 classes additionally try the
//     conventional cell changes that permute axes, so a group in a
//     non-standard orientation still meets its standard Hall setting.
//   - The origin shift s solves (R − I)·s ≡ t_db − t (mod 1) for all
//     generators at once.
//
// Errors:
//
//   - ErrNoCatalogMatch: the rotations form no crystallographic point
//     group, or no Hall setting of the selected convention matches.
//   - ErrSettingMismatch: a forced Hall setting does not describe the
//     operations.
//   - reduce.ErrNonReducibleLattice from the *FromLattice variants.
package identify

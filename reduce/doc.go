// SPDX-License-Identifier: MIT

// Package reduce implements lattice basis reduction: the choice of a short,
// nearly orthogonal basis for a lattice given by an arbitrary (possibly very
// skewed) basis.
//
// What:
//
//   - Niggli: the Křivý–Gruber eight-step algorithm. The result is the
//     unique Niggli cell, used to standardize triclinic structures.
//   - Delaunay: Selling reduction of the superbase b₁..b₄ (b₄ = −Σbᵢ) until
//     all pairwise scalar products are non-positive, then the three shortest
//     of the seven Delaunay vectors.
//   - Minkowski: greedy recursive reduction (Nguyen–Stehlé) solving a
//     closest-vector problem for the last vector at each rank. Used to bound
//     the candidate rotations of the symmetry search.
//
// Every reducer returns the reduced lattice together with the integer matrix
// P (det P = 1) such that the reduced basis columns equal A·P, where A holds
// the input basis vectors as columns.
//
// Errors:
//
//   - ErrNonReducibleLattice when the iteration cap is hit, or the result
//     fails the reduction predicate (numeric cycling).
//   - crystal.ErrSingularLattice for a basis with zero volume.
//
// Options:
//
//   - WithEpsilon(eps): comparison slack relative to vol^(2/3)
//     (DefaultEpsilon = 1e-8).
//   - WithMaxIterations(n): cap on restarts (DefaultMaxIterations).
//
// Complexity: Minkowski and Delaunay converge in a handful of sweeps for
// cells met in practice; Niggli needs one sweep per unit of skew, hence the
// generous cap.
package reduce

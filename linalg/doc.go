// SPDX-License-Identifier: MIT

// Package linalg provides the small fixed-size linear algebra used by the
// symmetry engine: 3-vectors and 3×3 matrices over float64 and int, and the
// integer normal forms (Hermite, Smith) that the search and classification
// stages solve their integer systems with.
//
// What:
//
//   - Vec3 / Mat3: real vectors and row-major matrices. Determinant and
//     inverse are delegated to gonum (gonum.org/v1/gonum/mat).
//   - IVec3 / IMat3: integer counterparts for rotation parts and lattice
//     transformations.
//   - IntDense: a row-major dynamic integer matrix for the stacked systems.
//   - HNF, SNF: column-style Hermite normal form and diagonal Smith form
//     with the unimodular companions (H = A·R, D = L·A·R).
//   - IntegerSystem, Sylvester3, SolveMod1: nullspaces, conjugating matrices
//     P with P⁻¹·Aᵢ·P = Bᵢ, and congruences A·x ≡ b (mod 1).
//
// Conventions:
//
//   - Matrices act on column vectors: y = M·x.
//   - Operations never mutate their receivers; every method returns a value.
//   - Integer kernels are exact; float kernels accept an explicit epsilon.
//
// Complexity:
//
//   - All 3×3 operations are O(1). HNF/SNF on an m×n matrix are polynomial in
//     m, n and the entry size; the engine only feeds them small systems.
package linalg

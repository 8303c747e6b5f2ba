// SPDX-License-Identifier: MIT

// Package search: lattice point group (Bravais group) search.
//
// Contract:
//   - The input lattice should be Minkowski reduced; candidate images of
//     each basis vector have coefficients in {-1, 0, 1}.
//   - Lengths agree within symprec; angles within the explicit angle
//     tolerance or, when automatic, within the symprec-derived bound.
//   - The result is a closed group of at most 48 rotations, identity first,
//     or ErrTooLargeTolerance.

package search

import (
	"math"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// maxPointGroupOrder is the order of m-3m, the largest lattice point group.
const maxPointGroupOrder = 48

// BravaisGroup returns the integer matrices R (columns in {−1,0,1}³) that
// map the Minkowski-reduced lattice l onto itself within tolerance, the
// identity first.
//
// Implementation:
//   - Candidates for column i are lattice vectors A·c with c ∈ {−1,0,1}³
//     whose length matches |aᵢ| within symprec.
//   - Pairs of columns must reproduce the angles of the basis, checked with
//     the explicit angle tolerance or, for auto, by
//     sin²(Δθ)·(|aᵢ|+|vᵢ|)(|aⱼ|+|vⱼ|)/4 < symprec².
//   - |det R| = 1; the result must be a group whose order divides 48.
//
// Errors:
//   - ErrTooLargeTolerance when the matches do not form a group.
func BravaisGroup(l crystal.Lattice, symprec float64, angle crystal.AngleTolerance) ([]linalg.IMat3, error) {
	cols := l.Columns()
	lengths := l.Lengths()

	var candidates [3][]linalg.IVec3
	for c0 := -1; c0 <= 1; c0++ {
		for c1 := -1; c1 <= 1; c1++ {
			for c2 := -1; c2 <= 1; c2++ {
				c := linalg.IVec3{c0, c1, c2}
				length := cols.MulVec(c.Float()).Norm()
				for i := 0; i < 3; i++ {
					if math.Abs(length-lengths[i]) < symprec {
						candidates[i] = append(candidates[i], c)
					}
				}
			}
		}
	}

	var rotations []linalg.IMat3
	for _, c0 := range candidates[0] {
		v0 := cols.MulVec(c0.Float())
		for _, c1 := range candidates[1] {
			v1 := cols.MulVec(c1.Float())
			if !sameAngle(cols, v0, v1, 0, 1, symprec, angle) {
				continue
			}
			for _, c2 := range candidates[2] {
				r := fromColumns(c0, c1, c2)
				if d := r.Det(); d != 1 && d != -1 {
					continue
				}
				v2 := cols.MulVec(c2.Float())
				if !sameAngle(cols, v1, v2, 1, 2, symprec, angle) || !sameAngle(cols, v2, v0, 2, 0, symprec, angle) {
					continue
				}
				rotations = append(rotations, r)
			}
		}
	}

	if len(rotations) == 0 || maxPointGroupOrder%len(rotations) != 0 {
		return nil, searchErrorf(opBravaisGroup, ErrTooLargeTolerance)
	}
	group := crystal.TraverseRotations(rotations)
	if len(group) != len(rotations) {
		return nil, searchErrorf(opBravaisGroup, ErrTooLargeTolerance)
	}
	return group, nil
}

// sameAngle compares the angle between basis columns i and j with the
// angle between b1 and b2.
func sameAngle(cols linalg.Mat3, b1, b2 linalg.Vec3, i, j int, symprec float64, angle crystal.AngleTolerance) bool {
	a1, a2 := cols.Col(i), cols.Col(j)
	before, after := vectorAngle(a1, a2), vectorAngle(b1, b2)
	cosDelta := math.Cos(before)*math.Cos(after) + math.Sin(before)*math.Sin(after)

	if tol, ok := angle.Value(); ok {
		return math.Abs(math.Acos(math.Min(1, cosDelta))) < tol
	}
	sin2 := 1 - cosDelta*cosDelta
	if sin2 < angleNoiseFloor {
		return true
	}
	avg2 := (a1.Norm() + b1.Norm()) * (a2.Norm() + b2.Norm()) / 4
	return sin2*avg2 < symprec*symprec
}

// angleNoiseFloor bounds the rounding of sin²Δθ for equal angles computed
// from different vectors; below it the angles compare equal whatever symprec.
const angleNoiseFloor = 1e-12

func vectorAngle(a, b linalg.Vec3) float64 {
	c := a.Dot(b) / (a.Norm() * b.Norm())
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

func fromColumns(c0, c1, c2 linalg.IVec3) linalg.IMat3 {
	var r linalg.IMat3
	for i := 0; i < 3; i++ {
		r[i] = [3]int{c0[i], c1[i], c2[i]}
	}
	return r
}

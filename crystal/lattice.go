// SPDX-License-Identifier: MIT

package crystal

import (
	"math"

	"github.com/katalvlaran/symfind/linalg"
)

// Lattice is a 3-D lattice given by its basis vectors as the rows of Basis.
type Lattice struct {
	Basis linalg.Mat3
}

// NewLattice validates a row basis.
//
// Errors:
//   - ErrDegenerateInput for NaN/Inf entries.
//   - ErrSingularLattice when |det| ≤ EPS.
func NewLattice(basis linalg.Mat3) (Lattice, error) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(basis[i][j]) || math.IsInf(basis[i][j], 0) {
				return Lattice{}, degeneratef(opNewLattice, "basis[%d][%d] is not finite", i, j)
			}
		}
	}
	l := Lattice{Basis: basis}
	if l.Volume() <= EPS {
		return Lattice{}, crystalErrorf(opNewLattice, ErrSingularLattice)
	}
	return l, nil
}

// Columns returns the basis vectors as columns (A = Basisᵀ), the form in
// which every change-of-basis formula of this module is written.
func (l Lattice) Columns() linalg.Mat3 { return l.Basis.T() }

// Vector returns the i-th basis vector.
func (l Lattice) Vector(i int) linalg.Vec3 { return l.Basis.Row(i) }

// Metric returns the metric tensor G = A·Aᵀ in row form (Gᵢⱼ = aᵢ·aⱼ).
func (l Lattice) Metric() linalg.Mat3 { return l.Basis.Mul(l.Basis.T()) }

// Lengths returns |a|, |b|, |c|.
func (l Lattice) Lengths() [3]float64 {
	return [3]float64{l.Vector(0).Norm(), l.Vector(1).Norm(), l.Vector(2).Norm()}
}

// Angles returns α, β, γ in degrees: the angles between b and c, c and a,
// a and b.
func (l Lattice) Angles() [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		u, v := l.Vector((i+1)%3), l.Vector((i+2)%3)
		out[i] = math.Acos(u.Dot(v)/(u.Norm()*v.Norm())) * 180 / math.Pi
	}
	return out
}

// Volume returns the unsigned cell volume.
func (l Lattice) Volume() float64 { return math.Abs(l.Basis.Det()) }

// Cartesian converts fractional coordinates to Cartesian ones.
func (l Lattice) Cartesian(x linalg.Vec3) linalg.Vec3 {
	return l.Columns().MulVec(x)
}

// Transform returns the lattice with basis columns A·P.
func (l Lattice) Transform(p linalg.IMat3) Lattice {
	return l.TransformReal(p.Float())
}

// TransformReal is Transform for a rational change of basis.
func (l Lattice) TransformReal(p linalg.Mat3) Lattice {
	return Lattice{Basis: p.T().Mul(l.Basis)}
}

// Rotate applies a Cartesian rotation to every basis vector.
func (l Lattice) Rotate(r linalg.Mat3) Lattice {
	return Lattice{Basis: l.Basis.Mul(r.T())}
}

// PeriodicDistance returns the shortest Cartesian length of d + n over
// integer n in the neighbourhood of the wrapped difference.
func (l Lattice) PeriodicDistance(d linalg.Vec3) float64 {
	base := d.Centered()
	cols := l.Columns()
	best := math.Inf(1)
	for n0 := -1; n0 <= 1; n0++ {
		for n1 := -1; n1 <= 1; n1++ {
			for n2 := -1; n2 <= 1; n2++ {
				v := base.Add(linalg.Vec3{float64(n0), float64(n1), float64(n2)})
				if dist := cols.MulVec(v).Norm(); dist < best {
					best = dist
				}
			}
		}
	}
	return best
}

// SPDX-License-Identifier: MIT

package standardize

import (
	"fmt"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// symmetrizePositions moves every atom to the average of the images that
// ops send onto it. ops[k] maps atom j close to atom perms[k][j].
// Results are wrapped into [0, 1).
func symmetrizePositions(positions []linalg.Vec3, ops crystal.Operations, perms []crystal.Permutation) []linalg.Vec3 {
	inverse := make([]crystal.Permutation, len(perms))
	for k, p := range perms {
		inverse[k] = p.Inverse()
	}
	out := make([]linalg.Vec3, len(positions))
	for i, x := range positions {
		var acc linalg.Vec3
		for k, op := range ops {
			y := op.Apply(positions[inverse[k][i]])
			acc = acc.Add(y.Sub(x).Centered())
		}
		out[i] = x.Add(acc.Scale(1 / float64(len(ops)))).Wrap()
	}
	return out
}

// SymmetrizeLattice averages the metric tensor of l over rots and returns
// the lattice with that metric in the canonical orientation: a along x, b
// in the xy-plane, right-handed. rotation turns l onto the result up to the
// deformation removed by the averaging.
//
// Implementation:
//   - G′ = Σ RᵀGR / |rots|; G′ = UᵀU (Cholesky); U is the new column basis.
//   - U·A⁻¹ is orthogonal for an already symmetric lattice; its QR factor
//     Q with positive diagonal R is the rotation.
//
// Errors: ErrStandardization when G′ is not positive definite.
func SymmetrizeLattice(l crystal.Lattice, rots []linalg.IMat3) (crystal.Lattice, linalg.Mat3, error) {
	g := l.Metric()
	var avg linalg.Mat3
	for _, r := range rots {
		rf := r.Float()
		avg = avg.Add(rf.T().Mul(g).Mul(rf))
	}
	avg = avg.Scale(1 / float64(len(rots)))

	u, ok := avg.CholeskyUpper()
	if !ok {
		return crystal.Lattice{}, linalg.Mat3{}, standardizeErrorf(opSymmetrizeLattice,
			fmt.Errorf("%w: averaged metric is not positive definite", ErrStandardization))
	}
	inv, err := l.Columns().Inverse()
	if err != nil {
		return crystal.Lattice{}, linalg.Mat3{}, standardizeErrorf(opSymmetrizeLattice, err)
	}
	q, _ := u.Mul(inv).QR()
	return crystal.Lattice{Basis: u.T()}, q, nil
}

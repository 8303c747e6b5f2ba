// SPDX-License-Identifier: MIT

package standardize

import (
	"fmt"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// candidate is one description of the structure in the setting.
type candidate struct {
	shift    linalg.Vec3 // conventional coordinates
	prim     crystal.Cell
	cell     crystal.Cell
	mapping  []int
	wyckoffs []catalog.WyckoffPosition
	ranks    []int
}

// chooseOrigin tries every origin shift of OriginShifts and returns the
// description with the lexicographically smallest Wyckoff letters, listed
// by primitive atom. Ties keep the earlier shift (zero first).
func chooseOrigin(primStd crystal.Cell, centering crystal.Transformation, hall int, orbits []int, symprec float64) (*candidate, error) {
	hs, err := catalog.FromHallNumber(hall)
	if err != nil {
		return nil, err
	}
	table, err := catalog.Wyckoffs(hall)
	if err != nil {
		return nil, err
	}
	rank := make(map[string]int, len(table))
	for i, w := range table {
		rank[w.Letter] = i
	}

	var (
		best     *candidate
		firstErr error
	)
	for _, shift := range OriginShifts(hs.Traverse()) {
		c := &candidate{shift: shift, prim: primStd.Clone()}
		delta := centering.Linear.MulFVec(shift)
		for i, x := range c.prim.Positions {
			c.prim.Positions[i] = x.Sub(delta).Wrap()
		}
		c.cell, c.mapping = centering.TransformCell(c.prim)
		c.wyckoffs, err = assignWyckoffs(c.cell, c.mapping, orbits, hall, symprec)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		c.ranks = make([]int, len(c.wyckoffs))
		for i, w := range c.wyckoffs {
			c.ranks[i] = rank[w.Letter]
		}
		if best == nil || lessRanks(c.ranks, best.ranks) {
			best = c
		}
	}
	if best == nil {
		return nil, firstErr
	}
	return best, nil
}

func lessRanks(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// assignWyckoffs labels every primitive atom with the Wyckoff position of
// its orbit. cell is conventional; mapping sends its atoms to primitive
// atoms; orbits labels primitive atoms by orbit.
func assignWyckoffs(cell crystal.Cell, mapping []int, orbits []int, hall int, symprec float64) ([]catalog.WyckoffPosition, error) {
	size := make(map[int]int)
	member := make(map[int]int)
	for k, p := range mapping {
		o := orbits[p]
		if _, ok := member[o]; !ok {
			member[o] = k
		}
		size[o]++
	}

	eps := fractionalTolerance(cell.Lattice, symprec)
	byOrbit := make(map[int]catalog.WyckoffPosition, len(member))
	for o, k := range member {
		w, err := catalog.WyckoffOf(hall, cell.Positions[k], eps)
		if err != nil {
			return nil, fmt.Errorf("%w: atom %d: %v", ErrWyckoffAssignment, o, err)
		}
		if w.Multiplicity != size[o] {
			return nil, fmt.Errorf("%w: atom %d lies on %s (multiplicity %d) but its orbit has %d atoms",
				ErrWyckoffAssignment, o, w.Letter, w.Multiplicity, size[o])
		}
		byOrbit[o] = w
	}

	out := make([]catalog.WyckoffPosition, len(orbits))
	for i, o := range orbits {
		out[i] = byOrbit[o]
	}
	return out, nil
}

// fractionalTolerance bounds the fractional distance below which an
// operation fixes a symmetrized position: half of symprec along the
// longest axis, since distinct atoms are at least symprec apart.
func fractionalTolerance(l crystal.Lattice, symprec float64) float64 {
	lengths := l.Lengths()
	longest := max(lengths[0], lengths[1], lengths[2])
	return symprec / (2 * longest)
}

// OriginShifts returns the shifts s, in the basis of ops, with
// (R − I)·s integral for every rotation R of ops: moving the origin by s
// maps the group onto itself. The zero shift comes first; directions
// without a constraint (polar axes) stay at zero.
//
// Implementation: Smith form D = L·A·R of the stacked R − I; solutions are
// s = R·y with yᵢ ∈ {0, 1/dᵢ, …, (dᵢ−1)/dᵢ}.
func OriginShifts(ops crystal.Operations) []linalg.Vec3 {
	a := linalg.NewIntDense(3*len(ops), 3)
	for k, op := range ops {
		rm := op.Rotation.Sub(linalg.IIdentity3())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				a.Set(3*k+i, j, rm[i][j])
			}
		}
	}
	snf := linalg.NewSNF(a)

	var steps [3]int
	for i := 0; i < 3; i++ {
		steps[i] = max(snf.Diag(i), 1)
	}
	var out []linalg.Vec3
	for y0 := 0; y0 < steps[0]; y0++ {
		for y1 := 0; y1 < steps[1]; y1++ {
			for y2 := 0; y2 < steps[2]; y2++ {
				y := linalg.Vec3{
					float64(y0) / float64(steps[0]),
					float64(y1) / float64(steps[1]),
					float64(y2) / float64(steps[2]),
				}
				var s linalg.Vec3
				for i := 0; i < 3; i++ {
					for k := 0; k < 3; k++ {
						s[i] += float64(snf.R.At(i, k)) * y[k]
					}
				}
				out = append(out, s.Wrap())
			}
		}
	}
	return out
}

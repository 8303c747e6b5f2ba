// SPDX-License-Identifier: MIT

// Package search: atom correspondence under an affine map.
// Moved positions are matched to their nearest atom through a KD tree over
// the 27 periodic images (gonum spatial/kdtree); the permutation then
// yields the symmetrized translation averaged over all atoms.
//
// Contract:
//   - A correspondence is a species-preserving bijection; two images landing
//     on one atom fail.
//   - Distances are Cartesian and periodic.

package search

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// site is one periodic image of an atom in Cartesian coordinates.
type site struct {
	x     linalg.Vec3
	index int
}

func (s site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return s.x[d] - c.(site).x[d]
}

func (s site) Dims() int { return 3 }

// Distance is the squared Euclidean distance.
func (s site) Distance(c kdtree.Comparable) float64 {
	d := s.x.Sub(c.(site).x)
	return d.Dot(d)
}

type sites []site

func (s sites) Index(i int) kdtree.Comparable { return s[i] }
func (s sites) Len() int                      { return len(s) }
func (s sites) Pivot(d kdtree.Dim) int         { return plane{sites: s, dim: d}.Pivot() }
func (s sites) Slice(start, end int) kdtree.Interface {
	return s[start:end]
}

// plane sorts sites along one dimension for median partitioning.
type plane struct {
	sites
	dim kdtree.Dim
}

func (p plane) Less(i, j int) bool { return p.sites[i].x[p.dim] < p.sites[j].x[p.dim] }
func (p plane) Swap(i, j int)      { p.sites[i], p.sites[j] = p.sites[j], p.sites[i] }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{sites: p.sites[start:end], dim: p.dim}
}

// periodicTree answers nearest-atom queries under periodic boundary
// conditions. The cell must be Minkowski reduced so that the 27 images of
// the wrapped positions contain every nearest neighbour within a radius
// below half the shortest lattice vector.
type periodicTree struct {
	numAtoms int
	lattice  crystal.Lattice
	tree     *kdtree.Tree
}

func newPeriodicTree(c crystal.Cell) *periodicTree {
	pts := make(sites, 0, 27*c.NumAtoms())
	for n0 := -1; n0 <= 1; n0++ {
		for n1 := -1; n1 <= 1; n1++ {
			for n2 := -1; n2 <= 1; n2++ {
				off := linalg.Vec3{float64(n0), float64(n1), float64(n2)}
				for i, x := range c.Positions {
					pts = append(pts, site{x: c.Lattice.Cartesian(x.Wrap().Add(off)), index: i})
				}
			}
		}
	}
	return &periodicTree{numAtoms: c.NumAtoms(), lattice: c.Lattice, tree: kdtree.New(pts, false)}
}

// nearest returns the atom closest to the fractional position x if it lies
// within radius.
func (t *periodicTree) nearest(x linalg.Vec3, radius float64) (int, float64, bool) {
	got, d2 := t.tree.Nearest(site{x: t.lattice.Cartesian(x.Wrap())})
	if got == nil || d2 > radius*radius {
		return 0, 0, false
	}
	return got.(site).index, math.Sqrt(d2), true
}

// correspondence finds the permutation with moved[i] ≈ positions[perm[i]],
// matching species. It fails when some moved atom has no partner within
// radius or two moved atoms share one.
//
// Complexity: O(N·log N).
func (t *periodicTree) correspondence(c crystal.Cell, moved []linalg.Vec3, radius float64) (crystal.Permutation, bool) {
	perm := make(crystal.Permutation, t.numAtoms)
	visited := make([]bool, t.numAtoms)
	for i, x := range moved {
		j, _, ok := t.nearest(x, radius)
		if !ok || visited[j] || c.Numbers[i] != c.Numbers[j] {
			return nil, false
		}
		perm[i] = j
		visited[j] = true
	}
	return perm, true
}

// pivotSites returns the atoms of the species with the fewest atoms; ties
// go to the smallest species label.
func pivotSites(numbers []int) []int {
	counts := make(map[int]int)
	for _, n := range numbers {
		counts[n]++
	}
	species := make([]int, 0, len(counts))
	for n := range counts {
		species = append(species, n)
	}
	sort.Ints(species)
	pivot := species[0]
	for _, n := range species[1:] {
		if counts[n] < counts[pivot] {
			pivot = n
		}
	}
	var out []int
	for i, n := range numbers {
		if n == pivot {
			out = append(out, i)
		}
	}
	return out
}

// symmetrizeTranslation returns the translation t minimizing
// Σ|R·xᵢ + t − x_perm(i)|² and the largest remaining Cartesian displacement.
// rough is subtracted first so that the per-atom remainders are small and
// their periodic wrapping is unambiguous.
func symmetrizeTranslation(c crystal.Cell, perm crystal.Permutation, r linalg.IMat3, rough linalg.Vec3) (linalg.Vec3, float64) {
	n := c.NumAtoms()
	var acc linalg.Vec3
	for i := 0; i < n; i++ {
		d := c.Positions[perm[i]].Sub(r.MulFVec(c.Positions[i])).Sub(rough)
		acc = acc.Add(d.Centered().Add(rough))
	}
	t := acc.Scale(1 / float64(n))

	worst := 0.0
	for i := 0; i < n; i++ {
		d := r.MulFVec(c.Positions[i]).Add(t).Sub(c.Positions[perm[i]]).Centered()
		if dist := c.Lattice.Cartesian(d).Norm(); dist > worst {
			worst = dist
		}
	}
	return t, worst
}

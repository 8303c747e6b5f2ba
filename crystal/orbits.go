// SPDX-License-Identifier: MIT

package crystal

// DisjointSet is a union-find forest over 0..n-1 with path halving and
// union by rank.
type DisjointSet struct {
	parent []int
	rank   []int
}

// NewDisjointSet returns n singleton sets.
func NewDisjointSet(n int) *DisjointSet {
	d := &DisjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

// Find returns the root of u's set.
func (d *DisjointSet) Find(u int) int {
	for d.parent[u] != u {
		d.parent[u] = d.parent[d.parent[u]]
		u = d.parent[u]
	}
	return u
}

// Union merges the sets of u and v.
func (d *DisjointSet) Union(u, v int) {
	ru, rv := d.Find(u), d.Find(v)
	if ru == rv {
		return
	}
	if d.rank[ru] < d.rank[rv] {
		d.parent[ru] = rv
		return
	}
	d.parent[rv] = ru
	if d.rank[ru] == d.rank[rv] {
		d.rank[ru]++
	}
}

// Labels maps every element to the smallest member of its set.
func (d *DisjointSet) Labels() []int {
	n := len(d.parent)
	minOf := make(map[int]int, n)
	for i := 0; i < n; i++ {
		r := d.Find(i)
		if _, ok := minOf[r]; !ok {
			minOf[r] = i // ascending i: first seen is the minimum
		}
	}
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		labels[i] = minOf[d.Find(i)]
	}
	return labels
}

// OrbitsFromPermutations partitions 0..n-1 into the orbits generated by
// perms and labels every atom with the smallest index of its orbit.
//
// Complexity: O(n·|perms|·α(n)).
func OrbitsFromPermutations(n int, perms []Permutation) []int {
	ds := NewDisjointSet(n)
	for _, p := range perms {
		for i := 0; i < n; i++ {
			ds.Union(i, p[i])
		}
	}
	return ds.Labels()
}

// OrbitsInCell lifts orbits of a primitive cell to a cell whose atom i sits
// on primitive atom siteMapping[i]. Every atom is labelled with the first
// atom of the cell lying in the same primitive orbit.
func OrbitsInCell(primAtoms int, primPerms []Permutation, siteMapping []int) []int {
	prim := OrbitsFromPermutations(primAtoms, primPerms)
	first := make(map[int]int, primAtoms)
	orbits := make([]int, len(siteMapping))
	for i, p := range siteMapping {
		key := prim[p]
		if _, ok := first[key]; !ok {
			first[key] = i
		}
		orbits[i] = first[key]
	}
	return orbits
}

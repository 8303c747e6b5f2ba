package search_test

import (
	"testing"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
	"github.com/katalvlaran/symfind/search"
)

// supercell repeats c n×n×n times.
func supercell(c crystal.Cell, n int) crystal.Cell {
	var pos []linalg.Vec3
	var num []int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				shift := linalg.Vec3{float64(i), float64(j), float64(k)}
				for a, x := range c.Positions {
					pos = append(pos, x.Add(shift).Scale(1/float64(n)))
					num = append(num, c.Numbers[a])
				}
			}
		}
	}
	out, err := crystal.NewCell(c.Lattice.Basis.Scale(float64(n)), pos, num)
	if err != nil {
		panic(err)
	}
	return out
}

func benchmarkSearch(b *testing.B, c crystal.Cell) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := search.Search(c, 1e-4); err != nil {
			b.Fatalf("Search failed: %v", err)
		}
	}
}

// BenchmarkSearch_HCP benchmarks the two-atom hexagonal cell.
func BenchmarkSearch_HCP(b *testing.B) { benchmarkSearch(b, hcp()) }

// BenchmarkSearch_RockSalt benchmarks the eight-atom conventional cell.
func BenchmarkSearch_RockSalt(b *testing.B) { benchmarkSearch(b, rockSalt()) }

// BenchmarkSearch_RockSaltSupercell benchmarks a 2×2×2 supercell (64 atoms).
func BenchmarkSearch_RockSaltSupercell(b *testing.B) { benchmarkSearch(b, supercell(rockSalt(), 2)) }

// BenchmarkBravaisGroup benchmarks the cubic lattice point group.
func BenchmarkBravaisGroup(b *testing.B) {
	l, err := crystal.NewLattice(cubic(4))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = search.BravaisGroup(l, 1e-4, crystal.AutoAngle); err != nil {
			b.Fatal(err)
		}
	}
}

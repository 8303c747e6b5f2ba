package identify_test

import (
	"testing"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/identify"
)

func benchmarkSpaceGroup(b *testing.B, hall int, setting catalog.Setting) {
	hs, err := catalog.FromHallNumber(hall)
	if err != nil {
		b.Fatal(err)
	}
	ops := hs.PrimitiveTraverse()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = identify.NewSpaceGroup(ops, setting, 1e-8); err != nil {
			b.Fatalf("NewSpaceGroup failed: %v", err)
		}
	}
}

// BenchmarkSpaceGroup_Hexagonal benchmarks P 6_3/m m c.
func BenchmarkSpaceGroup_Hexagonal(b *testing.B) { benchmarkSpaceGroup(b, 488, catalog.SettingSpglib) }

// BenchmarkSpaceGroup_Cubic benchmarks F d -3 m.
func BenchmarkSpaceGroup_Cubic(b *testing.B) { benchmarkSpaceGroup(b, 525, catalog.SettingSpglib) }

// BenchmarkSpaceGroup_Orthorhombic benchmarks a setting reached through a
// cell-change correction.
func BenchmarkSpaceGroup_Orthorhombic(b *testing.B) { benchmarkSpaceGroup(b, 300, catalog.SettingSpglib) }

// BenchmarkSpaceGroup_Forced benchmarks the exhaustive forced search on a
// non-standard monoclinic axis.
func BenchmarkSpaceGroup_Forced(b *testing.B) { benchmarkSpaceGroup(b, 4, catalog.SettingHallNumber(4)) }

// BenchmarkPointGroup_Cubic benchmarks the cubic fast path.
func BenchmarkPointGroup_Cubic(b *testing.B) {
	rep, err := catalog.RepresentativeOf(73)
	if err != nil {
		b.Fatal(err)
	}
	rots := crystal.TraverseRotations(rep.PrimitiveGenerators())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = identify.NewPointGroup(rots); err != nil {
			b.Fatal(err)
		}
	}
}

package standardize_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/identify"
	"github.com/katalvlaran/symfind/linalg"
	"github.com/katalvlaran/symfind/search"
	"github.com/katalvlaran/symfind/standardize"
)

const symprec = 1e-4

func hcp() crystal.Cell {
	a, c := 3.17, 5.14
	cell, err := crystal.NewCell(
		linalg.Mat3{{a, 0, 0}, {-a / 2, a * math.Sqrt(3) / 2, 0}, {0, 0, c}},
		[]linalg.Vec3{{1.0 / 3, 2.0 / 3, 0.25}, {2.0 / 3, 1.0 / 3, 0.75}},
		[]int{1, 1})
	if err != nil {
		panic(err)
	}
	return cell
}

func rockSalt() crystal.Cell {
	fcc := []linalg.Vec3{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}}
	var pos []linalg.Vec3
	var num []int
	for _, p := range fcc {
		pos = append(pos, p)
		num = append(num, 11)
	}
	for _, p := range fcc {
		pos = append(pos, p.Add(linalg.Vec3{0.5, 0, 0}).Wrap())
		num = append(num, 17)
	}
	cell, err := crystal.NewCell(linalg.Mat3{{5.64, 0, 0}, {0, 5.64, 0}, {0, 0, 5.64}}, pos, num)
	if err != nil {
		panic(err)
	}
	return cell
}

// run searches, identifies and standardizes c.
func run(t *testing.T, c crystal.Cell) (*identify.SpaceGroup, *standardize.Standardized) {
	t.Helper()
	res, err := search.Search(c, symprec)
	require.NoError(t, err)
	prim := res.Primitive.Cell
	sg, err := identify.NewSpaceGroup(res.Symmetry.Operations, catalog.SettingSpglib, identify.Epsilon(symprec, prim.Lattice))
	require.NoError(t, err)
	std, err := standardize.Standardize(prim, res.Symmetry.Operations, res.Symmetry.Permutations, sg, symprec)
	require.NoError(t, err)
	return sg, std
}

type StandardizeSuite struct {
	suite.Suite
}

func TestStandardizeSuite(t *testing.T) {
	suite.Run(t, new(StandardizeSuite))
}

func (s *StandardizeSuite) TestHCP() {
	sg, std := run(s.T(), hcp())
	s.Require().Equal(488, sg.HallNumber)

	s.Require().Len(std.Wyckoffs, 2)
	for _, w := range std.Wyckoffs {
		s.Equal("c", w.Letter)
		s.Equal("-6m2", w.SiteSymmetry)
		s.Equal(2, w.Multiplicity)
	}
	s.Equal([]int{0, 0}, std.Orbits)
	s.Equal(catalog.CenteringP, std.Centering)
	s.Len(std.Cell.Positions, 2)
	if diff := cmp.Diff([]int{0, 1}, std.SiteMapping); diff != "" {
		s.Failf("site mapping", "(-want +got):\n%s", diff)
	}

	lengths := std.Cell.Lattice.Lengths()
	s.InDelta(3.17, lengths[0], 1e-9)
	s.InDelta(3.17, lengths[1], 1e-9)
	s.InDelta(5.14, lengths[2], 1e-9)
	a := std.Cell.Lattice.Vector(0)
	s.InDelta(0, a[1], 1e-9)
	s.InDelta(0, a[2], 1e-9)

	for _, x := range std.Cell.Positions {
		w, err := catalog.WyckoffOf(488, x, 1e-6)
		s.Require().NoError(err)
		s.Equal("c", w.Letter)
	}
}

func (s *StandardizeSuite) TestRockSalt() {
	sg, std := run(s.T(), rockSalt())
	s.Require().Equal(225, sg.Number)

	s.Equal(catalog.CenteringF, std.Centering)
	s.Equal(4, std.Multiplicity())
	s.Len(std.PrimCell.Positions, 2)
	s.Len(std.Cell.Positions, 8)
	s.Equal(4, std.Transformation.Size)

	s.Require().Len(std.Wyckoffs, 2)
	s.Equal("a", std.Wyckoffs[0].Letter)
	s.Equal("b", std.Wyckoffs[1].Letter)
	s.Equal("m-3m", std.Wyckoffs[0].SiteSymmetry)
	s.Equal("m-3m", std.Wyckoffs[1].SiteSymmetry)

	lengths := std.Cell.Lattice.Lengths()
	for _, l := range lengths {
		s.InDelta(5.64, l, 1e-9)
	}
	for k, p := range std.SiteMapping {
		s.Equal(std.PrimCell.Numbers[p], std.Cell.Numbers[k])
	}
	s.InDelta(std.Cell.Lattice.Volume()/4, std.PrimCell.Lattice.Volume(), 1e-9)
}

// TestTransformationConsistency checks that the reported transformation
// reproduces the standardized positions from the primitive cell.
func (s *StandardizeSuite) TestTransformationConsistency() {
	for _, c := range []crystal.Cell{hcp(), rockSalt()} {
		res, err := search.Search(c, symprec)
		s.Require().NoError(err)
		prim := res.Primitive.Cell
		sg, err := identify.NewSpaceGroup(res.Symmetry.Operations, catalog.SettingSpglib, identify.Epsilon(symprec, prim.Lattice))
		s.Require().NoError(err)
		std, err := standardize.Standardize(prim, res.Symmetry.Operations, res.Symmetry.Permutations, sg, symprec)
		s.Require().NoError(err)

		for i, x := range prim.Positions {
			y := std.PrimTransformation.TransformPosition(x)
			d := y.Sub(std.PrimCell.Positions[i]).Centered()
			s.Less(d.MaxAbs(), 1e-6, "atom %d", i)
		}
	}
}

func (s *StandardizeSuite) TestMismatchedPermutations() {
	res, err := search.Search(hcp(), symprec)
	s.Require().NoError(err)
	prim := res.Primitive.Cell
	sg, err := identify.NewSpaceGroup(res.Symmetry.Operations, catalog.SettingSpglib, identify.Epsilon(symprec, prim.Lattice))
	s.Require().NoError(err)
	_, err = standardize.Standardize(prim, res.Symmetry.Operations, res.Symmetry.Permutations[:1], sg, symprec)
	s.Require().ErrorIs(err, standardize.ErrStandardization)
}

func TestSymmetrizeLattice(t *testing.T) {
	hs, err := catalog.FromHallNumber(517)
	require.NoError(t, err)
	rots := hs.Traverse().Rotations()

	exact := crystal.Lattice{Basis: linalg.Mat3{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}}}
	l, rotation, err := standardize.SymmetrizeLattice(exact, rots)
	require.NoError(t, err)
	assert.True(t, l.Basis.ApproxEqual(exact.Basis, 1e-12))
	assert.True(t, rotation.ApproxEqual(linalg.Identity3(), 1e-12))

	distorted := crystal.Lattice{Basis: linalg.Mat3{{4.001, 0, 0}, {0, 3.999, 0}, {0.001, 0, 4}}}
	l, _, err = standardize.SymmetrizeLattice(distorted, rots)
	require.NoError(t, err)
	lengths := l.Lengths()
	assert.InDelta(t, lengths[0], lengths[1], 1e-12)
	assert.InDelta(t, lengths[0], lengths[2], 1e-12)
	assert.InDelta(t, 0, l.Vector(0).Dot(l.Vector(1)), 1e-12)
	assert.InDelta(t, 0, l.Vector(1).Dot(l.Vector(2)), 1e-12)
	assert.InDelta(t, 4, lengths[0], 1e-3)
}

// TestSymmetrizeLattice_Rotated recovers a rigid rotation of a hexagonal
// lattice.
func TestSymmetrizeLattice_Rotated(t *testing.T) {
	hs, err := catalog.FromHallNumber(488)
	require.NoError(t, err)

	a, c := 3.17, 5.14
	hex := crystal.Lattice{Basis: linalg.Mat3{{a, 0, 0}, {-a / 2, a * math.Sqrt(3) / 2, 0}, {0, 0, c}}}
	theta := 0.3
	rz := linalg.Mat3{
		{math.Cos(theta), -math.Sin(theta), 0},
		{math.Sin(theta), math.Cos(theta), 0},
		{0, 0, 1},
	}
	rotated := hex.Rotate(rz)

	l, rotation, err := standardize.SymmetrizeLattice(rotated, hs.Traverse().Rotations())
	require.NoError(t, err)
	assert.True(t, l.Basis.ApproxEqual(hex.Basis, 1e-9))
	assert.True(t, rotation.ApproxEqual(rz.T(), 1e-9))
	assert.True(t, rotated.Rotate(rotation).Basis.ApproxEqual(hex.Basis, 1e-9))
}

func TestOriginShifts(t *testing.T) {
	tests := []struct {
		hall  int
		count int
		has   linalg.Vec3
	}{
		{hall: 1, count: 1},
		{hall: 2, count: 8, has: linalg.Vec3{0.5, 0.5, 0.5}},
		{hall: 488, count: 2, has: linalg.Vec3{0, 0, 0.5}},
	}
	for _, tc := range tests {
		hs, err := catalog.FromHallNumber(tc.hall)
		require.NoError(t, err)
		shifts := standardize.OriginShifts(hs.Traverse())
		require.Len(t, shifts, tc.count, "hall %d", tc.hall)
		assert.Equal(t, linalg.Vec3{}, shifts[0])

		found := false
		for _, s := range shifts {
			found = found || s.ApproxEqual(tc.has, 1e-12)
		}
		assert.True(t, found, "hall %d lacks %v", tc.hall, tc.has)
	}
}

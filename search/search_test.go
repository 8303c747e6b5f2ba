package search_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
	"github.com/katalvlaran/symfind/reduce"
	"github.com/katalvlaran/symfind/search"
)

func hexagonal(a, c float64) linalg.Mat3 {
	return linalg.Mat3{{a, 0, 0}, {-a / 2, a * math.Sqrt(3) / 2, 0}, {0, 0, c}}
}

func cubic(a float64) linalg.Mat3 {
	return linalg.Mat3{{a, 0, 0}, {0, a, 0}, {0, 0, a}}
}

func hcp() crystal.Cell {
	c, err := crystal.NewCell(hexagonal(3.17, 5.14),
		[]linalg.Vec3{{1.0 / 3, 2.0 / 3, 0.25}, {2.0 / 3, 1.0 / 3, 0.75}},
		[]int{1, 1})
	if err != nil {
		panic(err)
	}
	return c
}

func fccConventional() crystal.Cell {
	c, err := crystal.NewCell(cubic(4.05),
		[]linalg.Vec3{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
		[]int{13, 13, 13, 13})
	if err != nil {
		panic(err)
	}
	return c
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
	c, err := crystal.NewCell(cubic(5.64), pos, num)
	if err != nil {
		panic(err)
	}
	return c
}

type SearchSuite struct {
	suite.Suite
}

func TestSearchSuite(t *testing.T) {
	suite.Run(t, new(SearchSuite))
}

// requireSymmetric verifies that every operation maps the structure onto
// itself within eps.
func (s *SearchSuite) requireSymmetric(c crystal.Cell, ops crystal.Operations, eps float64) {
	for k, op := range ops {
		for i, x := range c.Positions {
			y := op.Apply(x)
			found := false
			for j, z := range c.Positions {
				if c.Numbers[i] == c.Numbers[j] && c.Lattice.PeriodicDistance(y.Sub(z)) < eps {
					found = true
					break
				}
			}
			require.True(s.T(), found, "operation %d (%s) moves atom %d off the structure", k, op, i)
		}
	}
}

// requireClosed verifies closure modulo lattice translations.
func (s *SearchSuite) requireClosed(ops crystal.Operations, eps float64) {
	for _, a := range ops {
		for _, b := range ops {
			ab := a.Mul(b)
			found := false
			for _, c := range ops {
				if ab.ApproxEqual(c, eps) {
					found = true
					break
				}
			}
			require.True(s.T(), found, "%s · %s not in group", a, b)
		}
	}
}

// TestBravaisGroup verifies the lattice point-group orders of the seven
// lattice systems.
func (s *SearchSuite) TestBravaisGroup() {
	cases := []struct {
		name  string
		basis linalg.Mat3
		angle crystal.AngleTolerance
		order int
	}{
		{"fcc", linalg.Mat3{{0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}}, crystal.Radian(1e-2), 48},
		{"bcc", linalg.Mat3{{-0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, -0.5}}, crystal.AutoAngle, 48},
		{"hexagonal", hexagonal(1, 1.6), crystal.AutoAngle, 24},
		{"tetragonal", linalg.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1.5}}, crystal.AutoAngle, 16},
		{"orthorhombic", linalg.Mat3{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}, crystal.AutoAngle, 8},
		{"monoclinic", linalg.Mat3{{1, 0, 0}, {0, 2, 0}, {0.3, 0, 3}}, crystal.AutoAngle, 4},
		{"triclinic", linalg.Mat3{{1, 0, 0}, {0.1, 1.3, 0}, {0.2, 0.3, 1.7}}, crystal.AutoAngle, 2},
	}
	for _, tc := range cases {
		l, err := crystal.NewLattice(tc.basis)
		require.NoError(s.T(), err, tc.name)
		reduced, _, err := reduce.Minkowski(l)
		require.NoError(s.T(), err, tc.name)

		group, err := search.BravaisGroup(reduced, 1e-4, tc.angle)
		require.NoError(s.T(), err, tc.name)
		s.Len(group, tc.order, tc.name)
		s.Equal(linalg.IIdentity3(), group[0], tc.name)
		for _, r := range group {
			s.Equal(1, r.Det()*r.Det(), tc.name)
		}
	}
}

// TestBravaisGroup_TightTolerance keeps exact lattices at full symmetry
// when symprec falls below the rounding of their metric.
func (s *SearchSuite) TestBravaisGroup_TightTolerance() {
	for _, tc := range []struct {
		name  string
		basis linalg.Mat3
		order int
	}{
		{"hexagonal", hexagonal(3.81, 6.24), 24},
		{"bcc", linalg.Mat3{{-1.6, 1.6, 1.6}, {1.6, -1.6, 1.6}, {1.6, 1.6, -1.6}}, 48},
		{"tetragonal", linalg.Mat3{{4.594, 0, 0}, {0, 4.594, 0}, {0, 0, 2.959}}, 16},
	} {
		l, err := crystal.NewLattice(tc.basis)
		s.Require().NoError(err, tc.name)
		reduced, _, err := reduce.Minkowski(l)
		s.Require().NoError(err, tc.name)
		for _, symprec := range []float64{1e-5, 1e-8, 1e-10} {
			group, err := search.BravaisGroup(reduced, symprec, crystal.AutoAngle)
			s.Require().NoError(err, "%s symprec %g", tc.name, symprec)
			s.Len(group, tc.order, "%s symprec %g", tc.name, symprec)
		}
	}
}

// TestSearch_HCP verifies the 24 operations of hexagonal close packing.
func (s *SearchSuite) TestSearch_HCP() {
	c := hcp()
	res, err := search.Search(c, 1e-4)
	require.NoError(s.T(), err)

	s.Len(res.Operations, 24)
	s.Equal(crystal.Identity(), res.Operations[0])
	s.Equal(1, res.Primitive.Linear.Det())
	s.Equal(2, res.Primitive.Cell.NumAtoms())
	if diff := cmp.Diff([]int{0, 0}, res.Orbits); diff != "" {
		s.T().Fatalf("orbits (-want +got):\n%s", diff)
	}
	s.Equal(1e-4, res.Symprec)
	s.True(res.AngleTolerance.IsAuto())
	s.requireSymmetric(c, res.Operations, 1e-4)
	s.requireClosed(res.Operations, 1e-6)
}

// TestSearch_FCCConventional verifies the primitive cell and lifted
// operations of a face-centred conventional cell.
func (s *SearchSuite) TestSearch_FCCConventional() {
	c := fccConventional()
	res, err := search.Search(c, 1e-4)
	require.NoError(s.T(), err)

	s.Equal(1, res.Primitive.Cell.NumAtoms())
	s.Equal(4, res.Primitive.Linear.Det())
	s.Len(res.Primitive.Translations, 4)
	s.Equal(linalg.Vec3{}, res.Primitive.Translations[0])
	s.Equal([]int{0, 0, 0, 0}, res.Primitive.SiteMapping)
	s.Len(res.Symmetry.Operations, 48)
	s.Len(res.Operations, 4*48)
	s.Equal([]int{0, 0, 0, 0}, res.Orbits)
	s.InDelta(c.Lattice.Volume()/4, res.Primitive.Cell.Lattice.Volume(), 1e-9)
	s.requireSymmetric(c, res.Operations, 1e-4)
}

// TestSearch_RockSalt verifies two orbits of a binary face-centred cell.
func (s *SearchSuite) TestSearch_RockSalt() {
	c := rockSalt()
	res, err := search.Search(c, 1e-4)
	require.NoError(s.T(), err)

	s.Equal(2, res.Primitive.Cell.NumAtoms())
	s.Len(res.Operations, 192)
	if diff := cmp.Diff([]int{0, 0, 0, 0, 4, 4, 4, 4}, res.Orbits); diff != "" {
		s.T().Fatalf("orbits (-want +got):\n%s", diff)
	}
	for _, p := range res.Symmetry.Permutations {
		s.True(p.IsValid())
	}
	s.requireSymmetric(c, res.Operations, 1e-4)
}

// TestSearch_Distorted verifies that a displacement below symprec keeps the
// full group and one above it lowers the order to a subgroup.
func (s *SearchSuite) TestSearch_Distorted() {
	c := hcp()
	c.Positions[0][2] += 1e-3

	res, err := search.Search(c, 1e-2)
	require.NoError(s.T(), err)
	s.Len(res.Operations, 24)

	res, err = search.Search(c, 1e-5)
	require.NoError(s.T(), err)
	s.Less(len(res.Operations), 24)
	s.Zero(24 % len(res.Operations))
	s.requireSymmetric(c, res.Operations, 1e-5)
}

// TestSearch_Errors verifies the typed failures.
func (s *SearchSuite) TestSearch_Errors() {
	overlap, err := crystal.NewCell(cubic(3), []linalg.Vec3{{0, 0, 0}, {0, 0, 1e-6}}, []int{1, 2})
	require.NoError(s.T(), err)
	_, err = search.Search(overlap, 1e-4)
	s.ErrorIs(err, crystal.ErrDegenerateInput)

	_, err = search.Search(hcp(), 0)
	s.ErrorIs(err, crystal.ErrDegenerateInput)

	simple, err := crystal.NewCell(cubic(1), []linalg.Vec3{{0, 0, 0}}, []int{1})
	require.NoError(s.T(), err)
	_, err = search.Search(simple, 0.3)
	s.ErrorIs(err, search.ErrTooLargeTolerance)
}

// TestOperationsInCell verifies that lifted operations combine every pure
// translation with every conjugated rotation.
func TestOperationsInCell(t *testing.T) {
	prim, err := search.NewPrimitiveCell(fccConventional(), 1e-4)
	require.NoError(t, err)
	ops := search.OperationsInCell(prim, crystal.Operations{crystal.Identity()})
	require.Len(t, ops, 4)
	for k, op := range ops {
		assert.Equal(t, linalg.IIdentity3(), op.Rotation)
		assert.True(t, op.Translation.ApproxEqual(prim.Translations[k].Wrap(), 1e-9))
	}
}

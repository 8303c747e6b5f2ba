package crystal_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

func hexagonalBasis(a, c float64) linalg.Mat3 {
	return linalg.Mat3{
		{a, 0, 0},
		{-a / 2, a * math.Sqrt(3) / 2, 0},
		{0, 0, c},
	}
}

// TestNewCell_Validation verifies the degenerate-input checks.
func TestNewCell_Validation(t *testing.T) {
	basis := linalg.Identity3()

	_, err := crystal.NewCell(basis, nil, nil)
	require.ErrorIs(t, err, crystal.ErrDegenerateInput)

	_, err = crystal.NewCell(basis, []linalg.Vec3{{0, 0, 0}}, []int{1, 2})
	require.ErrorIs(t, err, crystal.ErrDegenerateInput)

	_, err = crystal.NewCell(basis, []linalg.Vec3{{math.NaN(), 0, 0}}, []int{1})
	require.ErrorIs(t, err, crystal.ErrDegenerateInput)

	_, err = crystal.NewCell(linalg.Mat3{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}}, []linalg.Vec3{{}}, []int{1})
	require.ErrorIs(t, err, crystal.ErrSingularLattice)

	c, err := crystal.NewCell(basis, []linalg.Vec3{{0.5, 0.5, 0.5}}, []int{7})
	require.NoError(t, err)
	assert.Equal(t, 1, c.NumAtoms())
}

// TestCell_CheckOverlaps verifies the periodic closest-pair check.
func TestCell_CheckOverlaps(t *testing.T) {
	c, err := crystal.NewCell(linalg.Identity3().Scale(4),
		[]linalg.Vec3{{0, 0, 0}, {0.99999, 0, 0}}, []int{1, 2})
	require.NoError(t, err)
	require.ErrorIs(t, c.CheckOverlaps(1e-3), crystal.ErrDegenerateInput)
	require.NoError(t, c.CheckOverlaps(1e-5))
}

// TestLattice_Metric verifies the metric tensor and volume of a hexagonal lattice.
func TestLattice_Metric(t *testing.T) {
	l, err := crystal.NewLattice(hexagonalBasis(2, 3))
	require.NoError(t, err)
	g := l.Metric()
	assert.InDelta(t, 4, g[0][0], 1e-12)
	assert.InDelta(t, -2, g[0][1], 1e-12)
	assert.InDelta(t, 9, g[2][2], 1e-12)
	assert.InDelta(t, 2*2*math.Sqrt(3)/2*3, l.Volume(), 1e-12)

	angles := l.Angles()
	assert.InDelta(t, 90, angles[0], 1e-9)
	assert.InDelta(t, 90, angles[1], 1e-9)
	assert.InDelta(t, 120, angles[2], 1e-9)
}

// TestOperation_Group verifies composition and inversion on a 6_3 screw.
func TestOperation_Group(t *testing.T) {
	screw := crystal.Operation{
		Rotation:    linalg.IMat3{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		Translation: linalg.Vec3{0, 0, 0.5},
	}
	p := crystal.Identity()
	for i := 0; i < 6; i++ {
		p = p.Mul(screw)
	}
	assert.True(t, p.ApproxEqual(crystal.Identity(), 1e-12), "(6_3)^6 is a lattice translation")
	assert.True(t, screw.Mul(screw.Inverse()).ApproxEqual(crystal.Identity(), 1e-12))
	assert.Equal(t, "x-y,x,z+1/2", screw.String())
	assert.Equal(t, 6, crystal.RotationType(screw.Rotation))
	assert.Equal(t, -1, crystal.RotationType(linalg.IIdentity3().Neg()))
}

// TestTraverseRotations verifies the group generated by a 4-fold and inversion.
func TestTraverseRotations(t *testing.T) {
	r4 := linalg.IMat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	group := crystal.TraverseRotations([]linalg.IMat3{r4, linalg.IIdentity3().Neg()})
	assert.Len(t, group, 8)
	assert.Equal(t, linalg.IIdentity3(), group[0])
}

// TestPermutation verifies inverse and composition order.
func TestPermutation(t *testing.T) {
	p := crystal.Permutation{1, 2, 0}
	q := crystal.Permutation{0, 2, 1}
	assert.True(t, p.IsValid())
	assert.False(t, crystal.Permutation{0, 0}.IsValid())
	if diff := cmp.Diff(crystal.IdentityPermutation(3), p.Mul(p.Inverse())); diff != "" {
		t.Fatalf("p·p⁻¹ mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, crystal.Permutation{1, 0, 2}, p.Mul(q))
}

// TestOrbitsFromPermutations verifies orbit ids are the smallest member.
func TestOrbitsFromPermutations(t *testing.T) {
	perms := []crystal.Permutation{
		{2, 1, 0, 3, 5, 4},
		{0, 3, 2, 1, 4, 5},
	}
	got := crystal.OrbitsFromPermutations(6, perms)
	assert.Equal(t, []int{0, 1, 0, 1, 4, 4}, got)
}

// TestUnimodularTransformation verifies that conjugated operations act on
// transformed positions consistently.
func TestUnimodularTransformation(t *testing.T) {
	p := linalg.IMat3{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}}
	u, err := crystal.NewUnimodularTransformation(p, linalg.Vec3{0.1, 0.2, 0.3})
	require.NoError(t, err)

	op := crystal.Operation{Rotation: linalg.IMat3{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}}, Translation: linalg.Vec3{0, 0, 1.0 / 3}}
	x := linalg.Vec3{0.3, 0.7, 0.11}
	want := u.TransformPosition(op.Apply(x))
	got := u.TransformOperation(op).Apply(u.TransformPosition(x))
	assert.True(t, want.ApproxEqual(got, 1e-12))

	inv := u.Inverse()
	assert.True(t, inv.TransformPosition(u.TransformPosition(x)).ApproxEqual(x, 1e-12))
	assert.True(t, u.Compose(inv).Linear.IsIdentity())

	_, err = crystal.NewUnimodularTransformation(linalg.IIdentity3().Scale(2), linalg.Vec3{})
	require.ErrorIs(t, err, crystal.ErrNotUnimodular)
}

// TestTransformation_Supercell verifies the atom count and site mapping of
// a supercell built through the Smith form.
func TestTransformation_Supercell(t *testing.T) {
	c, err := crystal.NewCell(linalg.Identity3(), []linalg.Vec3{{0, 0, 0}, {0.5, 0.5, 0.5}}, []int{1, 2})
	require.NoError(t, err)
	tr, err := crystal.NewTransformation(linalg.IMat3{{2, 0, 0}, {0, 1, 1}, {0, -1, 1}}, linalg.Vec3{})
	require.NoError(t, err)
	require.Equal(t, 4, tr.Size)

	sc, mapping := tr.TransformCell(c)
	assert.Equal(t, 8, sc.NumAtoms())
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1}, mapping)
	assert.InDelta(t, 4*c.Lattice.Volume(), sc.Lattice.Volume(), 1e-12)
	require.NoError(t, sc.CheckOverlaps(1e-3))

	_, err = crystal.NewTransformation(linalg.IIdentity3().Neg(), linalg.Vec3{})
	require.ErrorIs(t, err, crystal.ErrNonPositiveDeterminant)
}

// TestTransformation_DropsIncompatible verifies that operations not
// preserving the sublattice are dropped.
func TestTransformation_DropsIncompatible(t *testing.T) {
	tr := crystal.MustTransformation(linalg.IMat3{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}, linalg.Vec3{})
	swap := crystal.Operation{Rotation: linalg.IMat3{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}}}
	got := tr.TransformOperations(crystal.Operations{crystal.Identity(), swap})
	require.Len(t, got, 1)
	assert.True(t, got[0].Rotation.IsIdentity())
}

// TestAngleTolerance verifies the auto sentinel and explicit values.
func TestAngleTolerance(t *testing.T) {
	assert.True(t, crystal.AutoAngle.IsAuto())
	_, ok := crystal.AutoAngle.Value()
	assert.False(t, ok)

	d := crystal.Degree(5)
	v, ok := d.Value()
	require.True(t, ok)
	assert.InDelta(t, 5*math.Pi/180, v, 1e-15)
	assert.Panics(t, func() { crystal.Radian(-1) })
}

package catalog_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// TestEntries_Table verifies the size and a few well-known rows of the table.
func TestEntries_Table(t *testing.T) {
	all, err := catalog.Entries()
	require.NoError(t, err)
	require.Len(t, all, catalog.NumHallSettings)

	e := catalog.MustEntry(488)
	assert.Equal(t, 194, e.Number)
	assert.Equal(t, "P 6_3/m m c", e.HMSymbol)
	assert.Equal(t, "-P 6c 2c", e.HallSymbol)
	assert.Equal(t, catalog.CenteringP, e.Centering)

	_, err = catalog.Entry(0)
	require.ErrorIs(t, err, catalog.ErrUnknownHallNumber)
	_, err = catalog.Entry(531)
	require.ErrorIs(t, err, catalog.ErrUnknownHallNumber)

	hs, err := catalog.HallNumbersOf(227)
	require.NoError(t, err)
	assert.Equal(t, []int{525, 526}, hs)
	_, err = catalog.HallNumbersOf(231)
	require.ErrorIs(t, err, catalog.ErrUnknownNumber)
}

// TestEntries_Contiguous verifies that every space-group type owns a
// contiguous, non-empty run of Hall numbers.
func TestEntries_Contiguous(t *testing.T) {
	total := 0
	for sg := 1; sg <= catalog.NumSpaceGroups; sg++ {
		hs, err := catalog.HallNumbersOf(sg)
		require.NoError(t, err)
		require.NotEmpty(t, hs, "space group %d", sg)
		for _, h := range hs {
			assert.Equal(t, sg, catalog.MustEntry(h).Number)
		}
		total += len(hs)
	}
	assert.Equal(t, catalog.NumHallSettings, total)
}

type HallSymbolSuite struct {
	suite.Suite
}

func TestHallSymbolSuite(t *testing.T) {
	suite.Run(t, new(HallSymbolSuite))
}

// TestSmall verifies centering, generator and operation counts of a few
// hand-checked symbols.
func (s *HallSymbolSuite) TestSmall() {
	cases := []struct {
		symbol       string
		centering    catalog.Centering
		translations int
		generators   int
		operations   int
	}{
		{"P 2 2ab -1ab", catalog.CenteringP, 0, 3, 8},
		{"P 31 2 (0 0 4)", catalog.CenteringP, 0, 2, 6},
		{"P 65", catalog.CenteringP, 0, 1, 6},
		{"P 61 2 (0 0 5)", catalog.CenteringP, 0, 2, 12},
		{"-P 6c 2c", catalog.CenteringP, 0, 3, 24},
		{"F 4d 2 3", catalog.CenteringF, 3, 3, 24},
	}
	for _, c := range cases {
		hs, err := catalog.ParseHallSymbol(c.symbol)
		s.Require().NoError(err, c.symbol)
		s.Equal(c.centering, hs.Centering, c.symbol)
		s.Len(hs.CenteringTranslations, c.translations, c.symbol)
		s.Len(hs.Generators, c.generators, c.symbol)
		s.Len(hs.Traverse(), c.operations, c.symbol)
	}
}

// TestGenerators verifies origin shifts on "P 61 2 (0 0 5)".
func (s *HallSymbolSuite) TestGenerators() {
	hs, err := catalog.ParseHallSymbol("P 61 2 (0 0 5)")
	s.Require().NoError(err)
	s.Require().Len(hs.Generators, 2)

	s.Equal(linalg.IMat3{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}}, hs.Generators[0].Rotation)
	s.InDelta(1.0/6, hs.Generators[0].Translation[2], 1e-12)
	s.Equal(linalg.IMat3{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}}, hs.Generators[1].Rotation)
	s.InDelta(5.0/6, hs.Generators[1].Translation[2], 1e-12)
}

// TestMalformed verifies parse failures.
func (s *HallSymbolSuite) TestMalformed() {
	for _, bad := range []string{"", "P", "Q 2", "P 5", "P 2q", "P 2 (0 0)", "P 2 2 2 2"} {
		_, err := catalog.ParseHallSymbol(bad)
		s.ErrorIs(err, catalog.ErrHallSymbol, bad)
	}
}

// TestAllSettings verifies that every Hall symbol parses into a group whose
// rotation histogram names the geometric class of its arithmetic class and
// whose coset representatives are closed modulo centering.
func (s *HallSymbolSuite) TestAllSettings() {
	for h := 1; h <= catalog.NumHallSettings; h++ {
		e := catalog.MustEntry(h)
		hs, err := catalog.FromHallNumber(h)
		s.Require().NoError(err, "hall %d", h)
		s.Equal(e.Centering, hs.Centering, "hall %d", h)

		ops := hs.Traverse()
		s.Require().True(ops[0].Rotation.IsIdentity(), "hall %d", h)

		var counts catalog.RotationTypeCounts
		byRot := make(map[linalg.IMat3]linalg.Vec3, len(ops))
		for _, op := range ops {
			counts[catalog.RotationTypeIndex(crystal.RotationType(op.Rotation))]++
			byRot[op.Rotation] = op.Translation
		}
		a, err := catalog.ArithmeticClass(e.ArithmeticNumber)
		s.Require().NoError(err)
		g, ok := catalog.GeometricCrystalClassFromCounts(counts)
		s.Require().True(ok, "hall %d", h)
		s.Equal(a.GeometricClass, g, "hall %d", h)

		for _, p := range ops {
			for _, q := range ops {
				pq := p.Mul(q)
				t, ok := byRot[pq.Rotation]
				s.Require().True(ok, "hall %d: product rotation missing", h)
				s.True(isLatticePoint(pq.Translation.Sub(t), hs.Centering), "hall %d", h)
			}
		}

		prim := hs.PrimitiveTraverse()
		s.Len(prim, len(ops), "hall %d", h)
	}
}

func isLatticePoint(v linalg.Vec3, c catalog.Centering) bool {
	for _, p := range c.LatticePoints() {
		if v.Sub(p).Centered().MaxAbs() < 1e-8 {
			return true
		}
	}
	return false
}

// TestClassification verifies the enumeration data.
func TestClassification(t *testing.T) {
	assert.Equal(t, 48, catalog.Oh.Order())
	assert.Equal(t, "6/mmm", catalog.D6h.Symbol())
	assert.Equal(t, catalog.Hexagonal, catalog.D3h.CrystalSystem())
	assert.Equal(t, catalog.Trigonal, catalog.D3d.CrystalSystem())
	assert.Equal(t, catalog.FamilyHexagonal, catalog.Trigonal.Family())
	assert.Equal(t, byte('h'), catalog.Trigonal.Family().Letter())
	assert.Equal(t, "oS", catalog.OS.String())
	assert.Equal(t, catalog.LatticeRhombohedral, catalog.HR.LatticeSystem())

	for _, c := range []catalog.Centering{
		catalog.CenteringP, catalog.CenteringA, catalog.CenteringB, catalog.CenteringC,
		catalog.CenteringI, catalog.CenteringR, catalog.CenteringF,
	} {
		assert.Equal(t, c.Order(), c.Linear().Det(), c.String())
		assert.Len(t, c.LatticePoints(), c.Order(), c.String())
		// every lattice point is an integer vector of the primitive basis
		for _, p := range c.LatticePoints() {
			prim := c.Linear().MulFVec(p)
			assert.InDelta(t, 0, prim.Sub(prim.Round().Float()).MaxAbs(), 1e-12, c.String())
		}
		assert.True(t, c.Inverse().Mul(c.Linear().Float()).ApproxEqual(linalg.Identity3(), 1e-12), c.String())
	}
}

// TestArithmeticClasses verifies that every representative generates a
// point group of the class's order.
func TestArithmeticClasses(t *testing.T) {
	all := catalog.ArithmeticClasses()
	require.Len(t, all, catalog.NumArithmeticClasses)
	for _, a := range all {
		rep, err := catalog.RepresentativeOf(a.Number)
		require.NoError(t, err, a.Symbol)
		assert.Len(t, rep.Rotations(), a.GeometricClass.Order(), a.Symbol)
		assert.Equal(t, a.Number, catalog.MustEntry(a.RepresentativeHallNumber).ArithmeticNumber, a.Symbol)
		for _, g := range rep.PrimitiveGenerators() {
			assert.Contains(t, []int{1, -1}, g.Det(), a.Symbol)
		}
	}
	_, err := catalog.ArithmeticClass(74)
	require.ErrorIs(t, err, catalog.ErrUnknownArithmeticNumber)
	assert.Len(t, catalog.ArithmeticClassesOf(catalog.D3d), 3)
}

// TestSetting verifies the two precedence rules and forced Hall numbers.
func TestSetting(t *testing.T) {
	h, err := catalog.SettingSpglib.HallNumberOf(194)
	require.NoError(t, err)
	assert.Equal(t, 488, h)

	h, err = catalog.SettingSpglib.HallNumberOf(227)
	require.NoError(t, err)
	assert.Equal(t, 525, h)
	h, err = catalog.SettingStandard.HallNumberOf(227)
	require.NoError(t, err)
	assert.Equal(t, 526, h)
	h, err = catalog.SettingStandard.HallNumberOf(68)
	require.NoError(t, err)
	assert.Equal(t, 323, h)

	spglib, err := catalog.SettingSpglib.HallNumbers()
	require.NoError(t, err)
	assert.Len(t, spglib, catalog.NumSpaceGroups)

	forced := catalog.SettingHallNumber(489)
	n, ok := forced.HallNumber()
	assert.True(t, ok)
	assert.Equal(t, 489, n)
	_, err = forced.HallNumberOf(194)
	require.ErrorIs(t, err, catalog.ErrUnknownNumber)

	assert.Panics(t, func() { catalog.SettingHallNumber(0) })

	s, err := catalog.ParseSetting("standard")
	require.NoError(t, err)
	assert.Equal(t, catalog.SettingStandard, s)
	s, err = catalog.ParseSetting("hall:488")
	require.NoError(t, err)
	assert.Equal(t, "hall:488", s.String())
	_, err = catalog.ParseSetting("bogus")
	require.ErrorIs(t, err, catalog.ErrUnknownSetting)
}

// TestWyckoffs_P63mmc verifies the derived table of P 6_3/m m c.
func TestWyckoffs_P63mmc(t *testing.T) {
	ws, err := catalog.Wyckoffs(488)
	require.NoError(t, err)

	var mult []int
	for _, w := range ws {
		mult = append(mult, w.Multiplicity)
	}
	if diff := cmp.Diff([]int{2, 2, 2, 2, 4, 4, 6, 6, 12, 12, 12, 24}, mult); diff != "" {
		t.Fatalf("multiplicities (-want +got):\n%s", diff)
	}

	assert.Equal(t, "a", ws[0].Letter)
	assert.Equal(t, "-3m.", ws[0].SiteSymmetry)
	assert.Equal(t, "c", ws[2].Letter)
	assert.Equal(t, "-6m2", ws[2].SiteSymmetry)
	assert.Equal(t, 0, ws[2].Dimension())
	assert.Equal(t, "1/3,2/3,1/4", ws[2].Coordinates())
	assert.Equal(t, "1", ws[11].SiteSymmetry)
	assert.Equal(t, 3, ws[11].Dimension())

	w, err := catalog.WyckoffOf(488, linalg.Vec3{2.0 / 3, 1.0 / 3, 0.75}, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, "c", w.Letter)

	w, err = catalog.WyckoffOf(488, linalg.Vec3{0, 0, 0.1}, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 4, w.Multiplicity)
	assert.Equal(t, 1, w.Dimension())
}

// TestWyckoffs_Triclinic verifies the eight inversion centres of P -1 in
// International Tables order.
func TestWyckoffs_Triclinic(t *testing.T) {
	ws, err := catalog.Wyckoffs(2)
	require.NoError(t, err)
	require.Len(t, ws, 9)

	want := []string{"0,0,0", "0,0,1/2", "0,1/2,0", "1/2,0,0", "1/2,1/2,0", "1/2,0,1/2", "0,1/2,1/2", "1/2,1/2,1/2"}
	for i, w := range ws[:8] {
		assert.Equal(t, string(rune('a'+i)), w.Letter)
		assert.Equal(t, 1, w.Multiplicity)
		assert.Equal(t, "-1", w.SiteSymmetry)
		assert.Equal(t, want[i], w.Coordinates())
	}
	assert.Equal(t, "i", ws[8].Letter)
	assert.Equal(t, 2, ws[8].Multiplicity)

	w, err := catalog.WyckoffOf(2, linalg.Vec3{0.5, 0, 0}, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, "d", w.Letter)
}

type wyckoffRow struct {
	letter string
	mult   int
	site   string
	coords string
}

func wyckoffRows(ws []catalog.WyckoffPosition) []wyckoffRow {
	rows := make([]wyckoffRow, len(ws))
	for i, w := range ws {
		rows[i] = wyckoffRow{w.Letter, w.Multiplicity, w.SiteSymmetry, w.Coordinates()}
	}
	return rows
}

// TestWyckoffs_Tables pins whole tables where one direction set splits
// into inequivalent orbits.
func TestWyckoffs_Tables(t *testing.T) {
	tests := []struct {
		name string
		hall int
		want []wyckoffRow
	}{
		{name: "Pm-3m", hall: 517, want: []wyckoffRow{
			{"a", 1, "m-3m", "0,0,0"},
			{"b", 1, "m-3m", "1/2,1/2,1/2"},
			{"c", 3, "4/mm.m", "0,1/2,1/2"},
			{"d", 3, "4/mm.m", "1/2,0,0"},
			{"e", 6, "4m.m", "x,0,0"},
			{"f", 6, "4m.m", "x,1/2,1/2"},
			{"g", 8, ".3m", "x,x,x"},
			{"h", 12, "mm2..", "x,1/2,0"},
			{"i", 12, "m.m2", "0,y,y"},
			{"j", 12, "m.m2", "1/2,y,y"},
			{"k", 24, "m..", "0,y,z"},
			{"l", 24, "m..", "1/2,y,z"},
			{"m", 24, "..m", "x,x,z"},
			{"n", 48, "1", "x,y,z"},
		}},
		{name: "Fm-3m", hall: 523, want: []wyckoffRow{
			{"a", 4, "m-3m", "0,0,0"},
			{"b", 4, "m-3m", "1/2,1/2,1/2"},
			{"c", 8, "-43m", "1/4,1/4,1/4"},
			{"d", 24, "m.mm", "0,1/4,1/4"},
			{"e", 24, "4m.m", "x,0,0"},
			{"f", 32, ".3m", "x,x,x"},
			{"g", 48, "mm2..", "x,1/4,1/4"},
			{"h", 48, "m.m2", "0,y,y"},
			{"i", 48, "m.m2", "1/2,y,y"},
			{"j", 96, "m..", "0,y,z"},
			{"k", 96, "..m", "x,x,z"},
			{"l", 192, "1", "x,y,z"},
		}},
		{name: "P4_2/mnm", hall: 419, want: []wyckoffRow{
			{"a", 2, "m.mm", "0,0,0"},
			{"b", 2, "m.mm", "0,0,1/2"},
			{"c", 4, "2/m..", "0,1/2,0"},
			{"d", 4, "-4..", "0,1/2,1/4"},
			{"e", 4, "2.mm", "0,0,z"},
			{"f", 4, "m.2m", "x,x,0"},
			{"g", 4, "m.2m", "x,-x,0"},
			{"h", 8, "2..", "0,1/2,z"},
			{"i", 8, "m..", "x,y,0"},
			{"j", 8, "..m", "x,x,z"},
			{"k", 16, "1", "x,y,z"},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ws, err := catalog.Wyckoffs(tc.hall)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, wyckoffRows(ws), cmp.AllowUnexported(wyckoffRow{})); diff != "" {
				t.Fatalf("table (-want +got):\n%s", diff)
			}
		})
	}
}

// TestWyckoffOf_Tabulated locates points of common structures.
func TestWyckoffOf_Tabulated(t *testing.T) {
	tests := []struct {
		name   string
		hall   int
		x      linalg.Vec3
		letter string
		site   string
	}{
		{name: "perovskite O", hall: 517, x: linalg.Vec3{0, 0.5, 0.5}, letter: "c", site: "4/mm.m"},
		{name: "perovskite O rotated", hall: 517, x: linalg.Vec3{0.5, 0.5, 0}, letter: "c", site: "4/mm.m"},
		{name: "Pm-3m edge", hall: 517, x: linalg.Vec3{0.5, 0, 0}, letter: "d", site: "4/mm.m"},
		{name: "Pm-3m x,1/2,0", hall: 517, x: linalg.Vec3{0.2, 0.5, 0}, letter: "h", site: "mm2.."},
		{name: "rutile Ti", hall: 419, x: linalg.Vec3{0.5, 0.5, 0.5}, letter: "a", site: "m.mm"},
		{name: "rutile O", hall: 419, x: linalg.Vec3{0.3, 0.3, 0}, letter: "f", site: "m.2m"},
		{name: "rutile O image", hall: 419, x: linalg.Vec3{0.2, 0.8, 0.5}, letter: "f", site: "m.2m"},
		{name: "diamond", hall: 526, x: linalg.Vec3{0.125, 0.125, 0.125}, letter: "a", site: "-43m"},
		{name: "diamond origin 1", hall: 525, x: linalg.Vec3{0, 0, 0}, letter: "a", site: "-43m"},
		{name: "garnet", hall: 530, x: linalg.Vec3{0.125, 0, 0.25}, letter: "c", site: "2.22"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := catalog.WyckoffOf(tc.hall, tc.x, 1e-6)
			require.NoError(t, err)
			assert.Equal(t, tc.letter, w.Letter)
			assert.Equal(t, tc.site, w.SiteSymmetry)
		})
	}
}

// siteOrders maps point-group symbols (dots removed) to their orders.
var siteOrders = map[string]int{
	"1": 1, "-1": 2, "2": 2, "m": 2, "2/m": 4, "222": 4, "mm2": 4, "m2m": 4, "2mm": 4, "mmm": 8,
	"4": 4, "-4": 4, "4/m": 8, "422": 8, "4mm": 8, "-42m": 8, "-4m2": 8, "4/mmm": 16,
	"3": 3, "-3": 6, "32": 6, "3m": 6, "-3m": 12,
	"6": 6, "-6": 6, "6/m": 12, "622": 12, "6mm": 12, "-6m2": 12, "-62m": 12, "6/mmm": 24,
	"23": 12, "m-3": 24, "432": 24, "-43m": 24, "m-3m": 48,
}

var genericParameters = [3]float64{0.1134, 0.2719, 0.3863}

// TestWyckoffs_TabulatedConsistent loads every tabulated setting and checks
// that its symbols agree with the derived site-symmetry groups.
func TestWyckoffs_TabulatedConsistent(t *testing.T) {
	halls, err := catalog.TabulatedHallNumbers()
	require.NoError(t, err)
	require.NotEmpty(t, halls)
	assert.Contains(t, halls, 488)
	assert.Contains(t, halls, 526)

	for _, h := range halls {
		ws, err := catalog.Wyckoffs(h)
		require.NoError(t, err, "hall %d", h)
		hs, err := catalog.FromHallNumber(h)
		require.NoError(t, err)
		order := len(hs.Operations())
		for i, w := range ws {
			if i < 26 {
				assert.Equal(t, string(rune('a'+i)), w.Letter, "hall %d", h)
			}
			got, ok := siteOrders[strings.ReplaceAll(w.SiteSymmetry, ".", "")]
			require.True(t, ok, "hall %d %s: symbol %q", h, w.Letter, w.SiteSymmetry)
			assert.Equal(t, w.SiteSymmetryOrder, got, "hall %d %s", h, w.Letter)
			assert.Equal(t, order, w.Multiplicity*w.SiteSymmetryOrder, "hall %d %s", h, w.Letter)

			x := w.Origin
			for k, d := range w.Directions {
				x = x.Add(d.Float().Scale(genericParameters[k]))
			}
			back, err := catalog.WyckoffOf(h, x.Wrap(), 1e-9)
			require.NoError(t, err, "hall %d %s", h, w.Letter)
			assert.Equal(t, w.Letter, back.Letter, "hall %d", h)
		}
	}
}

func TestParseWyckoffCoordinates(t *testing.T) {
	tests := []struct {
		in     string
		linear linalg.IMat3
		origin linalg.Vec3
	}{
		{"-y, x, z+1/2", linalg.IMat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}, linalg.Vec3{0, 0, 0.5}},
		{"x,x-y+1/4,z+1/4", linalg.IMat3{{1, 0, 0}, {1, -1, 0}, {0, 0, 1}}, linalg.Vec3{0, 0.25, 0.25}},
		{"-x+2z,y,z", linalg.IMat3{{-1, 0, 2}, {0, 1, 0}, {0, 0, 1}}, linalg.Vec3{}},
		{"1/4,1/4,1/4", linalg.IMat3{}, linalg.Vec3{0.25, 0.25, 0.25}},
		{"x,2x,1/4", linalg.IMat3{{1, 0, 0}, {2, 0, 0}, {0, 0, 0}}, linalg.Vec3{0, 0, 0.25}},
		{"1/8,y,-y+1/4", linalg.IMat3{{0, 0, 0}, {0, 1, 0}, {0, -1, 0}}, linalg.Vec3{0.125, 0, 0.25}},
	}
	for _, tc := range tests {
		linear, origin, err := catalog.ParseWyckoffCoordinates(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.linear, linear, tc.in)
		for i := range origin {
			assert.InDelta(t, tc.origin[i], origin[i], 1e-12, tc.in)
		}
	}

	for _, bad := range []string{"x,y", "x,,z", "x+,y,z", "x,y,1/0", "x,+y,z", "x,y,w", "x,y,--z"} {
		_, _, err := catalog.ParseWyckoffCoordinates(bad)
		assert.ErrorIs(t, err, catalog.ErrWyckoffCoordinates, bad)
	}
}

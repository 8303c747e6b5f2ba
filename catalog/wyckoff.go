// SPDX-License-Identifier: MIT

// Package catalog: Wyckoff positions of a Hall setting.
//
// Contract:
//   - The orbit structure is derived from the operations on a 24³ grid,
//     which resolves every special position of the 230 types.
//   - Tabulated settings take letters, symbols and coordinates from
//     data/wyckoff.yaml after an exact match with the derived classes.
//   - Tables are cached per Hall number and safe for concurrent use.
//
// Complexity: O(24³·|G|) on first use per Hall number, O(|G|) per lookup.

package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// wyckoffGrid is the number of grid steps per cell edge used to enumerate
// special positions. Every special position of the 530 settings has
// coordinates in multiples of 1/24, and every Wyckoff position has generic
// points on the grid.
const wyckoffGrid = 24

// WyckoffPosition is one Wyckoff position of a Hall setting. The position is
// the set of points Origin + Σ λᵢ·Directions[i] (plus its images under the
// group), whose site-symmetry group is conjugate to that of Origin's
// generic neighbours.
type WyckoffPosition struct {
	Letter string
	// Multiplicity counts the points per conventional cell.
	Multiplicity      int
	SiteSymmetryOrder int
	// SiteSymmetry is the oriented site-symmetry symbol, e.g. "-6m2".
	SiteSymmetry string
	Origin       linalg.Vec3
	Directions   []linalg.IVec3

	coords string // tabulated shorthand, if any
}

// Dimension returns the number of free parameters.
func (w WyckoffPosition) Dimension() int { return len(w.Directions) }

// Coordinates renders the representative as "x,2x,1/4". Tabulated
// positions keep their International Tables shorthand.
func (w WyckoffPosition) Coordinates() string {
	if w.coords != "" {
		return w.coords
	}
	params := [3]string{"x", "y", "z"}
	parts := make([]string, 3)
	for i := 0; i < 3; i++ {
		var sb strings.Builder
		for k, d := range w.Directions {
			switch c := d[i]; {
			case c == 0:
				continue
			case c == 1:
				if sb.Len() > 0 {
					sb.WriteByte('+')
				}
			case c == -1:
				sb.WriteByte('-')
			case c > 0:
				if sb.Len() > 0 {
					sb.WriteByte('+')
				}
				sb.WriteString(strconv.Itoa(c))
			default:
				sb.WriteString(strconv.Itoa(c))
			}
			sb.WriteString(params[k])
		}
		if o := w.Origin[i]; math.Abs(o) > crystal.EPS || sb.Len() == 0 {
			if sb.Len() > 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(gridFraction(o))
		}
		parts[i] = sb.String()
	}
	return strings.Join(parts, ",")
}

// wyckoffTable is the derived table of one Hall setting.
type wyckoffTable struct {
	positions []WyckoffPosition
	byKey     map[string]int
	ops       []gridOp
	system    symbolSystem
}

// gridOp is a conventional operation with its translation in grid units.
type gridOp struct {
	rot linalg.IMat3
	t   linalg.IVec3
}

var wyckoffCache sync.Map // Hall number → *wyckoffTable

// Wyckoffs returns the Wyckoff positions of a Hall setting in letter
// order. The positions are derived from the group's operations on first use
// and cached; concurrent callers are safe.
//
// Letters, site-symmetry symbols and coordinates of tabulated settings (see
// TabulatedHallNumbers) are those of International Tables. Other settings
// letter their positions from "a" by ascending multiplicity, then
// dimension, then the lexicographically smallest grid point.
//
// Errors: ErrUnknownHallNumber, ErrCorruptData.
func Wyckoffs(hallNumber int) ([]WyckoffPosition, error) {
	t, err := wyckoffTableOf(hallNumber)
	if err != nil {
		return nil, catalogErrorf(opWyckoffs, err)
	}
	return append([]WyckoffPosition(nil), t.positions...), nil
}

// WyckoffOf identifies the Wyckoff position of the conventional fractional
// point x. Operations fixing x within eps (fractional, per component) form
// its site-symmetry group; x is projected onto the group's fixed subspace
// before lookup, so the most special compatible position wins.
//
// Errors: ErrUnknownHallNumber, ErrCorruptData, ErrNoWyckoff.
func WyckoffOf(hallNumber int, x linalg.Vec3, eps float64) (WyckoffPosition, error) {
	t, err := wyckoffTableOf(hallNumber)
	if err != nil {
		return WyckoffPosition{}, catalogErrorf(opWyckoffs, err)
	}

	var (
		rots  []linalg.IMat3
		proj  linalg.Vec3
		count int
	)
	for _, g := range t.ops {
		tr := g.t.Float().Scale(1.0 / wyckoffGrid)
		y := g.rot.MulFVec(x).Add(tr)
		d := y.Sub(x)
		n := d.Round()
		if d.Sub(n.Float()).MaxAbs() > eps {
			continue
		}
		rots = append(rots, g.rot)
		proj = proj.Add(y.Sub(n.Float()))
		count++
	}
	proj = proj.Scale(1 / float64(count))

	sortRotations(rots)
	sub := fixedSubspace(rots)
	q, ok := sub.quotient(proj)
	if !ok {
		return WyckoffPosition{}, catalogErrorf(opWyckoffs, ErrNoWyckoff)
	}
	idx, ok := t.byKey[rotationsKey(rots)+sub.quotientKey(q)]
	if !ok {
		return WyckoffPosition{}, catalogErrorf(opWyckoffs, ErrNoWyckoff)
	}
	return t.positions[idx], nil
}

func wyckoffTableOf(hallNumber int) (*wyckoffTable, error) {
	if v, ok := wyckoffCache.Load(hallNumber); ok {
		return v.(*wyckoffTable), nil
	}
	t, err := deriveWyckoffs(hallNumber)
	if err != nil {
		return nil, err
	}
	v, _ := wyckoffCache.LoadOrStore(hallNumber, t)
	return v.(*wyckoffTable), nil
}

// deriveWyckoffs enumerates the Wyckoff positions of one setting.
//
// Implementation:
//   - Every point x of the 24³ grid gets its site-symmetry group S and the
//     fixed subspace E of S, keyed by the rotations of S and E modulo the
//     lattice.
//   - Points are merged when the group maps one onto the other and when
//     they share a key (generic points of the same subspace).
//   - Each merged class is a Wyckoff position; multiplicity is |G|/|S|.
//
// Complexity: O(24³·|G|) per Hall number.
func deriveWyckoffs(hallNumber int) (*wyckoffTable, error) {
	entry, err := Entry(hallNumber)
	if err != nil {
		return nil, err
	}
	hs, err := ParseHallSymbol(entry.HallSymbol)
	if err != nil {
		return nil, ErrCorruptData
	}
	ops := hs.Operations()
	t := &wyckoffTable{byKey: make(map[string]int), system: symbolSystemOf(entry)}
	for _, op := range ops {
		var tg linalg.IVec3
		for i, v := range op.Translation {
			tg[i] = int(math.Round(v * wyckoffGrid))
		}
		t.ops = append(t.ops, gridOp{rot: op.Rotation, t: tg})
	}

	const n = wyckoffGrid
	total := n * n * n
	ds := crystal.NewDisjointSet(total)
	orders := make([]int, total)
	keyFirst := make(map[string]int)
	subspaces := make(map[string]subspace)

	for i := 0; i < total; i++ {
		x := gridPoint(i)
		var rots []linalg.IMat3
		for _, g := range t.ops {
			y := g.rot.MulVec(x).Add(g.t)
			ds.Union(i, gridIndex(y))
			if gridEqual(x, y) {
				rots = append(rots, g.rot)
			}
		}
		orders[i] = len(rots)
		sortRotations(rots)
		rk := rotationsKey(rots)
		sub, ok := subspaces[rk]
		if !ok {
			sub = fixedSubspace(rots)
			subspaces[rk] = sub
		}
		key := rk + sub.quotientKey(sub.gridQuotient(x))
		if j, ok := keyFirst[key]; ok {
			ds.Union(i, j)
		} else {
			keyFirst[key] = i
		}
	}

	labels := ds.Labels()
	classOf := make(map[int]int)
	var reps []int
	for i, l := range labels {
		if _, ok := classOf[l]; !ok {
			classOf[l] = len(reps)
			reps = append(reps, l)
		}
		if orders[i] != orders[l] {
			return nil, ErrCorruptData
		}
	}

	positions := make([]WyckoffPosition, len(reps))
	for c, r := range reps {
		x := gridPoint(r)
		var rots []linalg.IMat3
		for _, g := range t.ops {
			if gridEqual(x, g.rot.MulVec(x).Add(g.t)) {
				rots = append(rots, g.rot)
			}
		}
		sortRotations(rots)
		sub := fixedSubspace(rots)
		origin, dirs := sub.parametrize(sub.gridQuotient(x))
		positions[c] = WyckoffPosition{
			Multiplicity:      len(t.ops) / len(rots),
			SiteSymmetryOrder: len(rots),
			SiteSymmetry:      siteSymmetrySymbol(rots, t.system),
			Origin:            origin,
			Directions:        dirs,
		}
	}

	records, err := tabulatedWyckoffs(hallNumber)
	if err != nil {
		return nil, err
	}
	var order []int // class indices in letter order
	if records != nil {
		classAt := func(g linalg.IVec3) int { return classOf[labels[gridIndex(g)]] }
		if order, err = applyRecords(records, positions, classAt); err != nil {
			return nil, fmt.Errorf("%w: Hall number %d: %v", ErrCorruptData, hallNumber, err)
		}
	} else {
		order = derivedOrder(positions, reps)
	}

	rank := make([]int, len(reps))
	t.positions = make([]WyckoffPosition, len(reps))
	for newIdx, old := range order {
		rank[old] = newIdx
		t.positions[newIdx] = positions[old]
	}
	for key, i := range keyFirst {
		t.byKey[key] = rank[classOf[labels[i]]]
	}
	return t, nil
}

// derivedOrder sorts classes by multiplicity, dimension and smallest grid
// point, and letters them in that order.
func derivedOrder(positions []WyckoffPosition, reps []int) []int {
	order := make([]int, len(reps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := positions[order[a]], positions[order[b]]
		if pa.Multiplicity != pb.Multiplicity {
			return pa.Multiplicity < pb.Multiplicity
		}
		if pa.Dimension() != pb.Dimension() {
			return pa.Dimension() < pb.Dimension()
		}
		return reps[order[a]] < reps[order[b]]
	})
	for i, c := range order {
		positions[c].Letter = wyckoffLetter(i)
	}
	return order
}

// recordParameters are grid values of (x, y, z) at which a tabulated
// position is sampled. At least one of them is a generic point of every
// tabulated position; the sample with the smallest site symmetry wins.
var recordParameters = []linalg.IVec3{
	{1, 2, 5}, {5, 7, 11}, {7, 11, 13}, {2, 9, 4},
	{11, 3, 17}, {13, 19, 2}, {17, 5, 23}, {19, 23, 7},
}

// applyRecords matches every tabulated position to one derived class and
// copies its letter, site-symmetry symbol and representative. classAt maps
// a grid point to its class. The returned order follows the records.
func applyRecords(records []wyckoffRecord, positions []WyckoffPosition, classAt func(linalg.IVec3) int) ([]int, error) {
	if len(records) != len(positions) {
		return nil, fmt.Errorf("%d tabulated positions, %d derived", len(records), len(positions))
	}
	used := make(map[int]string, len(records))
	order := make([]int, 0, len(records))
	for _, r := range records {
		linear, origin, err := ParseWyckoffCoordinates(r.Coordinates)
		if err != nil {
			return nil, err
		}
		var og linalg.IVec3
		for i, v := range origin {
			og[i] = int(math.Round(v * wyckoffGrid))
			if math.Abs(v*wyckoffGrid-float64(og[i])) > crystal.EPS {
				return nil, fmt.Errorf("%s: origin %v is off the grid", r.Letter, origin)
			}
		}

		best := -1
		for _, p := range recordParameters {
			c := classAt(linear.MulVec(p).Add(og))
			if best < 0 || positions[c].SiteSymmetryOrder < positions[best].SiteSymmetryOrder {
				best = c
			}
		}
		var dirs []linalg.IVec3
		for j := 0; j < 3; j++ {
			if d := linear.Col(j); !d.IsZero() {
				dirs = append(dirs, d)
			}
		}

		w := &positions[best]
		switch {
		case used[best] != "":
			return nil, fmt.Errorf("%s and %s describe one position", used[best], r.Letter)
		case w.Multiplicity != r.Multiplicity:
			return nil, fmt.Errorf("%s: multiplicity %d, derived %d", r.Letter, r.Multiplicity, w.Multiplicity)
		case w.Dimension() != len(dirs):
			return nil, fmt.Errorf("%s: %d parameters, derived %d", r.Letter, len(dirs), w.Dimension())
		}
		used[best] = r.Letter
		w.Letter = r.Letter
		w.SiteSymmetry = r.SiteSymmetry
		w.Origin = origin.Wrap()
		w.Directions = dirs
		w.coords = r.Coordinates
		order = append(order, best)
	}
	return order, nil
}

// wyckoffLetter returns "a".."z", then "A" (Pmmm has 27 positions).
func wyckoffLetter(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return "A"
}

func gridPoint(i int) linalg.IVec3 {
	const n = wyckoffGrid
	return linalg.IVec3{i / (n * n), (i / n) % n, i % n}
}

func gridIndex(v linalg.IVec3) int {
	const n = wyckoffGrid
	return gridMod(v[0])*n*n + gridMod(v[1])*n + gridMod(v[2])
}

func gridMod(a int) int {
	a %= wyckoffGrid
	if a < 0 {
		a += wyckoffGrid
	}
	return a
}

func gridEqual(x, y linalg.IVec3) bool {
	return gridMod(x[0]-y[0]) == 0 && gridMod(x[1]-y[1]) == 0 && gridMod(x[2]-y[2]) == 0
}

func gridFraction(v float64) string {
	n := int(math.Round(v * wyckoffGrid))
	d := wyckoffGrid
	for _, p := range []int{2, 2, 2, 3} {
		if n%p == 0 && d%p == 0 {
			n /= p
			d /= p
		}
	}
	if d == 1 {
		return strconv.Itoa(n)
	}
	return strconv.Itoa(n) + "/" + strconv.Itoa(d)
}

func sortRotations(rots []linalg.IMat3) {
	sort.Slice(rots, func(i, j int) bool { return rots[i].Less(rots[j]) })
}

func rotationsKey(rots []linalg.IMat3) string {
	b := make([]byte, 0, 9*len(rots)+1)
	for _, r := range rots {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				b = append(b, byte(r[i][j]+8))
			}
		}
	}
	return string(append(b, '|'))
}

// subspace is the fixed subspace of a site-symmetry group. In the
// coordinates L·x (L unimodular) the first dim components are free and the
// rest, taken modulo 1, identify the subspace modulo the lattice.
type subspace struct {
	dim int
	l   linalg.IMat3
}

// fixedSubspace intersects the kernels of R − I over rots.
func fixedSubspace(rots []linalg.IMat3) subspace {
	m := linalg.NewIntDense(3*len(rots), 3)
	for k, r := range rots {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				v := r[i][j]
				if i == j {
					v--
				}
				m.Set(3*k+i, j, v)
			}
		}
	}
	snf := linalg.NewSNF(m)
	dim := 3 - snf.Rank()
	if dim == 0 {
		return subspace{dim: 0, l: linalg.IIdentity3()}
	}
	dirs := linalg.NewIntDense(3, dim)
	for c := 0; c < dim; c++ {
		for i := 0; i < 3; i++ {
			dirs.Set(i, c, snf.R.At(i, 3-dim+c))
		}
	}
	return subspace{dim: dim, l: linalg.NewSNF(dirs).L.IMat3()}
}

// gridQuotient returns L·x (grid units) with the free components zeroed.
func (s subspace) gridQuotient(x linalg.IVec3) linalg.IVec3 {
	q := s.l.MulVec(x)
	for i := 0; i < s.dim; i++ {
		q[i] = 0
	}
	for i := s.dim; i < 3; i++ {
		q[i] = gridMod(q[i])
	}
	return q
}

// quotient is gridQuotient for a real point; ok is false off the grid.
func (s subspace) quotient(x linalg.Vec3) (linalg.IVec3, bool) {
	y := s.l.MulFVec(x).Scale(wyckoffGrid)
	var q linalg.IVec3
	for i := s.dim; i < 3; i++ {
		r := math.Round(y[i])
		if math.Abs(y[i]-r) > 1e-3 {
			return q, false
		}
		q[i] = gridMod(int(r))
	}
	return q, true
}

func (s subspace) quotientKey(q linalg.IVec3) string {
	b := []byte{byte('0' + s.dim)}
	for i := s.dim; i < 3; i++ {
		b = append(b, byte(q[i]))
	}
	return string(b)
}

// parametrize returns the origin (L⁻¹ applied to the quotient) and the free
// directions (the first dim columns of L⁻¹).
func (s subspace) parametrize(q linalg.IVec3) (linalg.Vec3, []linalg.IVec3) {
	inv := s.l.MustInverse()
	origin := inv.MulFVec(q.Float().Scale(1.0 / wyckoffGrid)).Wrap()
	dirs := make([]linalg.IVec3, s.dim)
	for c := 0; c < s.dim; c++ {
		dirs[c] = inv.Col(c)
	}
	return origin, dirs
}

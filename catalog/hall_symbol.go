// SPDX-License-Identifier: MIT

// Package catalog: Hall-symbol parser and group generation.
//
// Contract:
//   - ParseHallSymbol accepts the explicit-origin notation of International
//     Tables B, Table A1.4.2: lattice token, up to four rotation tokens with
//     default axes and translation letters, optional origin shift in
//     twelfths. Malformed input is ErrHallSymbol.
//   - Traverse enumerates coset representatives modulo the conventional
//     lattice in a fixed order, identity first; translations are purified
//     into [0, 1) with denominators dividing 12.
//   - Operations and PrimitiveTraverse are derived from Traverse only.
//
// Complexity: O(|G|·|generators|) per traversal.

package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// maxDenominator bounds the denominators of every translation a Hall
// symbol can produce.
const maxDenominator = 12

// HallSymbol is a parsed Hall symbol (ITB A1.4.2.3):
//
//	<Hall symbol>    := <L> <N>+ <V>?
//	<L>              := "-"? [PABCIRF]
//	<N>              := "-"? ("1"|"2"|"3"|"4"|"6") <A>? <T>*
//	<A>              := [xyz] | "'" | "\"" | "^" | "=" | "*"
//	<T>              := [abcnuvwd] | [1-6]
//	<V>              := "(" int int int ")"   (twelfths)
type HallSymbol struct {
	Symbol    string
	Centering Centering
	// CenteringTranslations are the non-zero lattice points of Centering.
	CenteringTranslations []linalg.Vec3
	// Generators excludes pure translations.
	Generators crystal.Operations
}

type hallMatrix struct {
	rotation    linalg.IMat3
	translation linalg.Vec3
}

// ParseHallSymbol parses symbol into its centering and generators.
//
// Errors: ErrHallSymbol.
func ParseHallSymbol(symbol string) (*HallSymbol, error) {
	tokens := strings.Fields(symbol)
	if len(tokens) < 2 {
		return nil, hallSymbolErrorf(symbol, "need a lattice symbol and at least one rotation")
	}
	inversion, centering, err := parseLatticeToken(symbol, tokens[0])
	if err != nil {
		return nil, err
	}

	var (
		ns        []hallMatrix
		shift     linalg.Vec3
		prevNFold byte
		prevAxis  string
	)
	for i := 1; i < len(tokens); i++ {
		if strings.HasPrefix(tokens[i], "(") {
			if shift, err = parseOriginShift(symbol, tokens[i:]); err != nil {
				return nil, err
			}
			break
		}
		m, nfold, axis, err := parseRotationToken(symbol, tokens[i], len(ns), prevNFold, prevAxis)
		if err != nil {
			return nil, err
		}
		ns = append(ns, m)
		prevNFold, prevAxis = nfold, axis
	}
	if len(ns) == 0 {
		return nil, hallSymbolErrorf(symbol, "no rotation symbols")
	}

	// Origin shift by (I, v): (R, t) -> (R, t + v - Rv).
	hs := &HallSymbol{Symbol: symbol, Centering: centering}
	if inversion {
		hs.Generators = append(hs.Generators, crystal.Operation{
			Rotation:    linalg.IIdentity3().Neg(),
			Translation: shift.Scale(2).Wrap(),
		})
	}
	for _, m := range ns {
		t := m.translation.Add(shift).Sub(m.rotation.MulFVec(shift)).Wrap()
		hs.Generators = append(hs.Generators, crystal.Operation{Rotation: m.rotation, Translation: t})
	}
	for _, p := range centering.LatticePoints() {
		if p.MaxAbs() > crystal.EPS {
			hs.CenteringTranslations = append(hs.CenteringTranslations, p)
		}
	}
	return hs, nil
}

// FromHallNumber parses the Hall symbol of a catalog entry.
//
// Errors: ErrUnknownHallNumber, ErrCorruptData.
func FromHallNumber(hallNumber int) (*HallSymbol, error) {
	e, err := Entry(hallNumber)
	if err != nil {
		return nil, catalogErrorf(opFromHall, err)
	}
	hs, err := ParseHallSymbol(e.HallSymbol)
	if err != nil {
		return nil, catalogErrorf(opFromHall, ErrCorruptData)
	}
	return hs, nil
}

// Traverse returns the coset representatives of the group modulo the
// conventional lattice, identity first. Translations lie in [0, 1) with
// denominators dividing 12. The order is fixed for a given symbol.
func (h *HallSymbol) Traverse() crystal.Operations {
	seen := make(map[linalg.IMat3]struct{})
	queue := crystal.Operations{crystal.Identity()}
	var out crystal.Operations
	for len(queue) > 0 {
		lhs := queue[0]
		queue = queue[1:]
		if _, ok := seen[lhs.Rotation]; ok {
			continue
		}
		seen[lhs.Rotation] = struct{}{}
		out = append(out, lhs)
		for _, g := range h.Generators {
			next := lhs.Mul(g)
			if _, ok := seen[next.Rotation]; ok {
				continue
			}
			queue = append(queue, crystal.Operation{
				Rotation:    next.Rotation,
				Translation: purifyTranslation(next.Translation),
			})
		}
	}
	return out
}

// PrimitiveTraverse returns the operations of Traverse expressed in the
// primitive basis of Centering; centering translations fold into the
// primitive lattice.
func (h *HallSymbol) PrimitiveTraverse() crystal.Operations {
	return h.primitiveTransformation().InverseTransformOperations(h.Traverse())
}

// PrimitiveGenerators returns Generators in the primitive basis.
func (h *HallSymbol) PrimitiveGenerators() crystal.Operations {
	return h.primitiveTransformation().InverseTransformOperations(h.Generators)
}

// Operations returns every operation of the conventional cell, i.e. the
// products of Traverse with all lattice points of Centering.
func (h *HallSymbol) Operations() crystal.Operations {
	coset := h.Traverse()
	points := h.Centering.LatticePoints()
	out := make(crystal.Operations, 0, len(coset)*len(points))
	for _, p := range points {
		for _, op := range coset {
			out = append(out, crystal.Operation{
				Rotation:    op.Rotation,
				Translation: op.Translation.Add(p).Wrap(),
			})
		}
	}
	return out
}

func (h *HallSymbol) primitiveTransformation() crystal.Transformation {
	return crystal.MustTransformation(h.Centering.Linear(), linalg.Vec3{})
}

func purifyTranslation(t linalg.Vec3) linalg.Vec3 {
	var out linalg.Vec3
	for i, v := range t {
		n := int(math.Round(v*maxDenominator)) % maxDenominator
		if n < 0 {
			n += maxDenominator
		}
		out[i] = float64(n) / maxDenominator
	}
	return out
}

func parseLatticeToken(symbol, token string) (bool, Centering, error) {
	inversion := false
	if token[0] == '-' {
		inversion = true
		token = token[1:]
	}
	if len(token) != 1 {
		return false, 0, hallSymbolErrorf(symbol, "bad lattice symbol %q", token)
	}
	c, ok := CenteringFromLetter(token[0])
	if !ok {
		return false, 0, hallSymbolErrorf(symbol, "bad lattice symbol %q", token)
	}
	return inversion, c, nil
}

func parseOriginShift(symbol string, tokens []string) (linalg.Vec3, error) {
	var fields []string
	for _, t := range tokens {
		t = strings.TrimSuffix(strings.TrimPrefix(t, "("), ")")
		if t != "" {
			fields = append(fields, t)
		}
	}
	if len(fields) != 3 {
		return linalg.Vec3{}, hallSymbolErrorf(symbol, "origin shift needs three components")
	}
	var v linalg.Vec3
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return linalg.Vec3{}, hallSymbolErrorf(symbol, "origin shift component %q", f)
		}
		v[i] = float64(n) / maxDenominator
	}
	return v, nil
}

// parseRotationToken parses one <N> symbol. The default axis depends on
// its position and on the preceding symbol (ITB A1.4.2.3.1).
func parseRotationToken(symbol, token string, count int, prevNFold byte, prevAxis string) (hallMatrix, byte, string, error) {
	pos := 0
	improper := false
	if token[pos] == '-' {
		improper = true
		pos++
	}
	if pos >= len(token) || !strings.ContainsRune("12346", rune(token[pos])) {
		return hallMatrix{}, 0, "", hallSymbolErrorf(symbol, "bad rotation %q", token)
	}
	nfold := token[pos]
	pos++

	axis := ""
	if pos < len(token) {
		switch token[pos] {
		case '\'', '^':
			axis = "p"
			pos++
		case '"', '=':
			axis = "pp"
			pos++
		}
	}
	if pos < len(token) && strings.ContainsRune("xyz*", rune(token[pos])) {
		axis += string(token[pos])
		pos++
	}
	if (axis == "p" || axis == "pp") && (prevAxis == "x" || prevAxis == "y" || prevAxis == "z") {
		axis += prevAxis
	}
	if nfold == '1' {
		axis += "z"
	}
	if axis == "" || axis == "p" || axis == "pp" {
		switch {
		case count == 0:
			axis += "z"
		case count == 1 && (prevNFold == '2' || prevNFold == '4'):
			axis += "x"
		case count == 1 && (prevNFold == '3' || prevNFold == '6'):
			axis += "pz"
		case count == 2 && nfold == '3':
			axis += "*"
		default:
			return hallMatrix{}, 0, "", hallSymbolErrorf(symbol, "no default axis for %q", token)
		}
	}

	rot, ok := hallRotation(string(nfold) + axis)
	if !ok {
		return hallMatrix{}, 0, "", hallSymbolErrorf(symbol, "unknown rotation %c%s", nfold, axis)
	}
	if improper {
		rot = rot.Neg()
	}

	var t linalg.Vec3
	for ; pos < len(token); pos++ {
		c := token[pos]
		switch {
		case c >= '1' && c <= '6':
			// screw components are always along z
			t = linalg.Vec3{0, 0, float64(c-'0') / float64(nfold-'0')}
		case strings.IndexByte("abcnuvwd", c) >= 0:
			t = t.Add(translationSymbols[c])
		default:
			return hallMatrix{}, 0, "", hallSymbolErrorf(symbol, "bad translation %q in %q", c, token)
		}
	}
	return hallMatrix{rotation: rot, translation: t}, nfold, axis, nil
}

var translationSymbols = map[byte]linalg.Vec3{
	'a': {0.5, 0, 0},
	'b': {0, 0.5, 0},
	'c': {0, 0, 0.5},
	'n': {0.5, 0.5, 0.5},
	'u': {0.25, 0, 0},
	'v': {0, 0.25, 0},
	'w': {0, 0, 0.25},
	'd': {0.25, 0.25, 0.25},
}

func hallRotation(key string) (linalg.IMat3, bool) {
	switch key {
	case "1x", "1y", "1z":
		return linalg.IIdentity3(), true
	case "2x":
		return linalg.IMat3{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}}, true
	case "2y":
		return linalg.IMat3{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}}, true
	case "2z":
		return linalg.IMat3{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}}, true
	case "3x":
		return linalg.IMat3{{1, 0, 0}, {0, 0, -1}, {0, 1, -1}}, true
	case "3y":
		return linalg.IMat3{{-1, 0, 1}, {0, 1, 0}, {-1, 0, 0}}, true
	case "3z":
		return linalg.IMat3{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}}, true
	case "4x":
		return linalg.IMat3{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}}, true
	case "4y":
		return linalg.IMat3{{0, 0, 1}, {0, 1, 0}, {-1, 0, 0}}, true
	case "4z":
		return linalg.IMat3{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}, true
	case "6x":
		return linalg.IMat3{{1, 0, 0}, {0, 1, -1}, {0, 1, 0}}, true
	case "6y":
		return linalg.IMat3{{0, 0, 1}, {0, 1, 0}, {-1, 0, 1}}, true
	case "6z":
		return linalg.IMat3{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}}, true
	case "2px":
		return linalg.IMat3{{-1, 0, 0}, {0, 0, -1}, {0, -1, 0}}, true
	case "2ppx":
		return linalg.IMat3{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}}, true
	case "2py":
		return linalg.IMat3{{0, 0, -1}, {0, -1, 0}, {-1, 0, 0}}, true
	case "2ppy":
		return linalg.IMat3{{0, 0, 1}, {0, -1, 0}, {1, 0, 0}}, true
	case "2pz":
		return linalg.IMat3{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}}, true
	case "2ppz":
		return linalg.IMat3{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}}, true
	case "3*":
		return linalg.IMat3{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}, true
	}
	return linalg.IMat3{}, false
}

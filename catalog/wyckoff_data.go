// SPDX-License-Identifier: MIT

// Package catalog: tabulated Wyckoff positions (International Tables, Vol. A).
//
// Contract:
//   - data/wyckoff.yaml lists, per Hall number, every Wyckoff position of
//     the setting in letter order: letter, multiplicity, oriented
//     site-symmetry symbol and the coordinate shorthand of one
//     representative ("x,2x,1/4").
//   - A tabulated setting must describe exactly the positions derived from
//     its operations; any disagreement is ErrCorruptData.
//   - Settings absent from the table keep the derived letters and symbols.
//
// Complexity: decoding is O(total positions), once per process.

package catalog

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/symfind/linalg"
)

//go:embed data/wyckoff.yaml
var wyckoffYAML []byte

type wyckoffRecord struct {
	Letter       string `yaml:"letter"`
	Multiplicity int    `yaml:"mult"`
	SiteSymmetry string `yaml:"site"`
	Coordinates  string `yaml:"coords"`
}

type wyckoffSetting struct {
	HallNumber int             `yaml:"hall"`
	Positions  []wyckoffRecord `yaml:"positions"`
}

type wyckoffFile struct {
	Settings []wyckoffSetting `yaml:"settings"`
}

var (
	wyckoffOnce    sync.Once
	wyckoffRecords map[int][]wyckoffRecord
	wyckoffLoadErr error
)

// tabulatedWyckoffs returns the tabulated positions of a Hall setting, or
// nil when the setting is not tabulated.
func tabulatedWyckoffs(hallNumber int) ([]wyckoffRecord, error) {
	wyckoffOnce.Do(func() {
		var f wyckoffFile
		if err := yaml.Unmarshal(wyckoffYAML, &f); err != nil {
			wyckoffLoadErr = fmt.Errorf("%w: wyckoff table: %v", ErrCorruptData, err)
			return
		}
		wyckoffRecords = make(map[int][]wyckoffRecord, len(f.Settings))
		for _, s := range f.Settings {
			if s.HallNumber < 1 || s.HallNumber > NumHallSettings || len(s.Positions) == 0 {
				wyckoffLoadErr = fmt.Errorf("%w: wyckoff table: Hall number %d", ErrCorruptData, s.HallNumber)
				return
			}
			if _, dup := wyckoffRecords[s.HallNumber]; dup {
				wyckoffLoadErr = fmt.Errorf("%w: wyckoff table: Hall number %d listed twice", ErrCorruptData, s.HallNumber)
				return
			}
			wyckoffRecords[s.HallNumber] = s.Positions
		}
	})
	if wyckoffLoadErr != nil {
		return nil, wyckoffLoadErr
	}
	return wyckoffRecords[hallNumber], nil
}

// TabulatedHallNumbers returns the Hall numbers whose Wyckoff letters and
// site-symmetry symbols come from International Tables, ascending.
//
// Errors: ErrCorruptData.
func TabulatedHallNumbers() ([]int, error) {
	if _, err := tabulatedWyckoffs(0); err != nil {
		return nil, catalogErrorf(opWyckoffs, err)
	}
	out := make([]int, 0, len(wyckoffRecords))
	for h := 1; h <= NumHallSettings; h++ {
		if _, ok := wyckoffRecords[h]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// ParseWyckoffCoordinates parses the coordinate shorthand of a Wyckoff
// position into the affine map p ↦ linear·p + origin of its free
// parameters p = (x, y, z). Spaces are ignored.
//
//	<shorthand>   := <term> "," <term> "," <term>
//	<term>        := "-"? <factor> ([+-] <factor>)* ([+-] <translation>)?
//	<factor>      := <integer>? ("x" | "y" | "z")
//	<translation> := <integer> ("/" <integer>)?
//
// Errors: ErrWyckoffCoordinates.
func ParseWyckoffCoordinates(s string) (linalg.IMat3, linalg.Vec3, error) {
	var (
		linear linalg.IMat3
		origin linalg.Vec3
	)
	terms := strings.Split(strings.ReplaceAll(s, " ", ""), ",")
	if len(terms) != 3 {
		return linear, origin, coordinatesErrorf(s, "need three terms")
	}
	for i, term := range terms {
		if term == "" {
			return linear, origin, coordinatesErrorf(s, "empty term %d", i)
		}
		sign, start := 1, 0
		flush := func(end int) error {
			tok := term[start:end]
			if tok == "" {
				return coordinatesErrorf(s, "dangling sign in %q", term)
			}
			last := tok[len(tok)-1]
			switch {
			case last >= '0' && last <= '9':
				v, err := parseFraction(tok)
				if err != nil {
					return coordinatesErrorf(s, "translation %q", tok)
				}
				origin[i] += float64(sign) * v
			case last == 'x' || last == 'y' || last == 'z':
				coeff := 1
				if len(tok) > 1 {
					c, err := strconv.Atoi(tok[:len(tok)-1])
					if err != nil {
						return coordinatesErrorf(s, "coefficient %q", tok)
					}
					coeff = c
				}
				linear[i][last-'x'] += sign * coeff
			default:
				return coordinatesErrorf(s, "token %q", tok)
			}
			return nil
		}
		for k := 0; k < len(term); k++ {
			c := term[k]
			if c != '+' && c != '-' {
				continue
			}
			if k > start {
				if err := flush(k); err != nil {
					return linear, origin, err
				}
			} else if c == '+' || k > 0 {
				return linear, origin, coordinatesErrorf(s, "dangling sign in %q", term)
			}
			sign, start = 1, k+1
			if c == '-' {
				sign = -1
			}
		}
		if err := flush(len(term)); err != nil {
			return linear, origin, err
		}
	}
	return linear, origin, nil
}

func parseFraction(tok string) (float64, error) {
	num, den, ok := strings.Cut(tok, "/")
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, err
	}
	if !ok {
		return float64(n), nil
	}
	d, err := strconv.Atoi(den)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("bad denominator %q", den)
	}
	return float64(n) / float64(d), nil
}

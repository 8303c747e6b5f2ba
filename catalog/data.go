// SPDX-License-Identifier: MIT

// Package catalog: the embedded table of the 530 Hall settings.
//
// Contract:
//   - data/hall.yaml is decoded once under sync.Once; entries are dense,
//     numbered 1..530 and grouped by space-group number.
//   - A decode or consistency failure is ErrCorruptData on every call.
//   - Lookups never allocate beyond the returned copies.

package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// NumHallSettings is the number of Hall settings in the catalog.
const NumHallSettings = 530

// NumSpaceGroups is the number of space-group types.
const NumSpaceGroups = 230

//go:embed data/hall.yaml
var hallYAML []byte

// HallEntry is one Hall setting of a space-group type.
type HallEntry struct {
	HallNumber       int       `yaml:"hall"`
	Number           int       `yaml:"number"`
	ArithmeticNumber int       `yaml:"arithmetic"`
	Choice           string    `yaml:"choice"`
	HallSymbol       string    `yaml:"symbol"`
	HMSymbol         string    `yaml:"hm"`
	Centering        Centering `yaml:"centering"`
}

type hallFile struct {
	Entries []HallEntry `yaml:"entries"`
}

var (
	loadOnce  sync.Once
	entries   []HallEntry // index = Hall number − 1
	bySGRange [NumSpaceGroups + 1][2]int // [first, last] Hall numbers
	loadErr   error
)

// load decodes the embedded table and builds the space-group index.
func load() error {
	loadOnce.Do(func() {
		var f hallFile
		if err := yaml.Unmarshal(hallYAML, &f); err != nil {
			loadErr = fmt.Errorf("%s: %w: %v", opEntries, ErrCorruptData, err)
			return
		}
		if len(f.Entries) != NumHallSettings {
			loadErr = fmt.Errorf("%s: %w: %d entries", opEntries, ErrCorruptData, len(f.Entries))
			return
		}
		for i, e := range f.Entries {
			if e.HallNumber != i+1 || e.Number < 1 || e.Number > NumSpaceGroups {
				loadErr = fmt.Errorf("%s: %w: entry %d", opEntries, ErrCorruptData, i+1)
				return
			}
			if bySGRange[e.Number][0] == 0 {
				bySGRange[e.Number][0] = e.HallNumber
			}
			bySGRange[e.Number][1] = e.HallNumber
		}
		entries = f.Entries
	})
	return loadErr
}

// Entry returns the Hall setting with the given number.
//
// Errors: ErrUnknownHallNumber, ErrCorruptData.
func Entry(hallNumber int) (HallEntry, error) {
	if err := load(); err != nil {
		return HallEntry{}, err
	}
	if hallNumber < 1 || hallNumber > NumHallSettings {
		return HallEntry{}, catalogErrorf(opEntry, ErrUnknownHallNumber)
	}
	return entries[hallNumber-1], nil
}

// MustEntry is Entry for Hall numbers known to be valid.
func MustEntry(hallNumber int) HallEntry {
	e, err := Entry(hallNumber)
	if err != nil {
		panic(err)
	}
	return e
}

// Entries returns a copy of all 530 settings in Hall-number order.
func Entries() ([]HallEntry, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return append([]HallEntry(nil), entries...), nil
}

// HallNumbersOf returns every Hall number of space-group type number, in
// table order.
//
// Errors: ErrUnknownNumber.
func HallNumbersOf(number int) ([]int, error) {
	if err := load(); err != nil {
		return nil, err
	}
	if number < 1 || number > NumSpaceGroups {
		return nil, catalogErrorf(opHallNumbers, ErrUnknownNumber)
	}
	first, last := bySGRange[number][0], bySGRange[number][1]
	out := make([]int, 0, last-first+1)
	for h := first; h <= last; h++ {
		out = append(out, h)
	}
	return out, nil
}

// SPDX-License-Identifier: MIT

// Package catalog: setting selection (which Hall number describes a
// space-group type).
//
// Contract:
//   - SettingSpglib picks the first Hall number per type; SettingStandard
//     picks origin choice 2 where two origins exist; SettingHallNumber forces
//     one entry.
//   - ParseSetting accepts "spglib" (also ""), "standard" and "hall:<n>";
//     anything else is ErrUnknownSetting.

package catalog

import (
	"fmt"
)

type settingKind int

const (
	settingSpglib settingKind = iota
	settingStandard
	settingHallNumber
)

// Setting selects which Hall setting of a space-group type is reported
// when more than one could describe the same group.
//
// Setting is a closed variant: SettingSpglib, SettingStandard or
// SettingHallNumber(n).
type Setting struct {
	kind       settingKind
	hallNumber int
}

var (
	// SettingSpglib takes the smallest Hall number of each space-group
	// type: origin choice 1, hexagonal axes, unique axis b, cell choice 1.
	SettingSpglib = Setting{kind: settingSpglib}

	// SettingStandard follows the ITA standard setting: as SettingSpglib but
	// origin choice 2 wherever two origins are tabulated.
	SettingStandard = Setting{kind: settingStandard}
)

// originChoice2 lists the space-group types tabulated with two origins.
var originChoice2 = map[int]bool{
	48: true, 50: true, 59: true, 68: true, 70: true, 85: true, 86: true, 88: true,
	125: true, 126: true, 129: true, 130: true, 133: true, 134: true, 137: true,
	138: true, 141: true, 142: true, 201: true, 203: true, 222: true, 224: true,
	227: true, 228: true,
}

// SettingHallNumber forces a single Hall setting.
//
// Panics if hallNumber is outside 1..530.
func SettingHallNumber(hallNumber int) Setting {
	if hallNumber < 1 || hallNumber > NumHallSettings {
		panic(fmt.Sprintf("catalog: SettingHallNumber(%d): Hall number must be in 1..%d", hallNumber, NumHallSettings))
	}
	return Setting{kind: settingHallNumber, hallNumber: hallNumber}
}

// HallNumber reports the forced Hall number, if any.
func (s Setting) HallNumber() (int, bool) {
	return s.hallNumber, s.kind == settingHallNumber
}

// String names the setting.
func (s Setting) String() string {
	switch s.kind {
	case settingSpglib:
		return "spglib"
	case settingStandard:
		return "standard"
	}
	return fmt.Sprintf("hall:%d", s.hallNumber)
}

// ParseSetting accepts "spglib", "standard" or "hall:<n>".
func ParseSetting(v string) (Setting, error) {
	switch v {
	case "spglib", "":
		return SettingSpglib, nil
	case "standard":
		return SettingStandard, nil
	}
	var n int
	if _, err := fmt.Sscanf(v, "hall:%d", &n); err != nil || n < 1 || n > NumHallSettings {
		return Setting{}, fmt.Errorf("%w: %q", ErrUnknownSetting, v)
	}
	return SettingHallNumber(n), nil
}

// HallNumbers returns the Hall numbers to match against, one per
// space-group type (or the single forced entry), ascending.
//
// Errors: ErrCorruptData.
func (s Setting) HallNumbers() ([]int, error) {
	if s.kind == settingHallNumber {
		return []int{s.hallNumber}, nil
	}
	out := make([]int, 0, NumSpaceGroups)
	for sg := 1; sg <= NumSpaceGroups; sg++ {
		h, err := s.HallNumberOf(sg)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// HallNumberOf returns the Hall number this setting reports for space-group
// type number. A forced setting returns its Hall number only when it
// belongs to number.
//
// Errors: ErrUnknownNumber, ErrCorruptData.
func (s Setting) HallNumberOf(number int) (int, error) {
	hs, err := HallNumbersOf(number)
	if err != nil {
		return 0, err
	}
	switch s.kind {
	case settingSpglib:
		return hs[0], nil
	case settingStandard:
		if originChoice2[number] {
			for _, h := range hs {
				if entries[h-1].Choice == "2" {
					return h, nil
				}
			}
			return 0, catalogErrorf(opHallNumbers, ErrCorruptData)
		}
		return hs[0], nil
	}
	for _, h := range hs {
		if h == s.hallNumber {
			return h, nil
		}
	}
	return 0, catalogErrorf(opHallNumbers, ErrUnknownNumber)
}

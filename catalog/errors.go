// SPDX-License-Identifier: MIT

// Package catalog: sentinel error set.
// Every error returned by the package wraps one of these sentinels with an
// operation tag ("Entry: catalog: unknown Hall number"); callers match with
// errors.Is. ErrCorruptData signals a build defect in the embedded tables,
// never bad user input.

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownHallNumber indicates a Hall number outside 1..530.
	ErrUnknownHallNumber = errors.New("catalog: unknown Hall number")

	// ErrUnknownNumber indicates a space-group number outside 1..230.
	ErrUnknownNumber = errors.New("catalog: unknown space-group number")

	// ErrUnknownArithmeticNumber indicates an arithmetic class outside 1..73.
	ErrUnknownArithmeticNumber = errors.New("catalog: unknown arithmetic crystal class")

	// ErrHallSymbol indicates a malformed Hall symbol.
	ErrHallSymbol = errors.New("catalog: invalid Hall symbol")

	// ErrUnknownSetting indicates an unparsable setting name.
	ErrUnknownSetting = errors.New("catalog: unknown setting")

	// ErrNoWyckoff indicates a point whose site symmetry matches no Wyckoff
	// position of the setting.
	ErrNoWyckoff = errors.New("catalog: no matching Wyckoff position")

	// ErrWyckoffCoordinates indicates a malformed Wyckoff coordinate
	// shorthand.
	ErrWyckoffCoordinates = errors.New("catalog: invalid Wyckoff coordinates")

	// ErrCorruptData indicates that the embedded catalog failed to decode or
	// is inconsistent. It signals a build defect, not bad user input.
	ErrCorruptData = errors.New("catalog: corrupt embedded data")
)

// Operation tags for error wrapping.
const (
	opEntry        = "Entry"
	opEntries      = "Entries"
	opParse        = "ParseHallSymbol"
	opArithmetic   = "ArithmeticClass"
	opHallNumbers  = "HallNumbers"
	opWyckoffs     = "Wyckoffs"
	opFromHall     = "FromHallNumber"
	opRepresentive = "Representative"
	opCoordinates  = "ParseWyckoffCoordinates"
)

func catalogErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// hallSymbolErrorf reports a parse failure at a given token.
func hallSymbolErrorf(symbol, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %q: %s", opParse, ErrHallSymbol, symbol, fmt.Sprintf(format, args...))
}

func coordinatesErrorf(coords, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %q: %s", opCoordinates, ErrWyckoffCoordinates, coords, fmt.Sprintf(format, args...))
}

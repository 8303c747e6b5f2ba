// SPDX-License-Identifier: MIT

package crystal

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput reports a cell the engine cannot classify: zero
	// atoms, mismatched position/species lengths, NaN/Inf coordinates, or
	// two atoms closer than the distance tolerance.
	ErrDegenerateInput = errors.New("crystal: degenerate input")

	// ErrSingularLattice reports a basis whose volume vanishes.
	ErrSingularLattice = errors.New("crystal: singular lattice")

	// ErrNotUnimodular reports a basis change with det != 1 where a
	// unimodular one is required.
	ErrNotUnimodular = errors.New("crystal: transformation is not unimodular")

	// ErrNonPositiveDeterminant reports a basis change that would flip or
	// collapse the cell.
	ErrNonPositiveDeterminant = errors.New("crystal: transformation determinant must be positive")
)

// Operation tags for error wrapping.
const (
	opNewLattice        = "NewLattice"
	opNewCell           = "NewCell"
	opCheckOverlaps     = "CheckOverlaps"
	opNewUnimodular     = "NewUnimodularTransformation"
	opNewTransformation = "NewTransformation"
)

// degeneratef wraps ErrDegenerateInput with an operation tag and detail.
func degeneratef(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrDegenerateInput, fmt.Sprintf(format, args...))
}

// crystalErrorf wraps err with an operation tag, preserving it for errors.Is.
func crystalErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

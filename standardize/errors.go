// SPDX-License-Identifier: MIT

package standardize

import (
	"errors"
	"fmt"
)

var (
	// ErrStandardization indicates that the operations, the cell and the
	// matched setting are inconsistent with one another.
	ErrStandardization = errors.New("standardize: inconsistent standardization")

	// ErrWyckoffAssignment indicates an orbit that matches no Wyckoff
	// position of the setting.
	ErrWyckoffAssignment = errors.New("standardize: no Wyckoff position matches")
)

// Operation tags for error wrapping.
const (
	opStandardize       = "Standardize"
	opSymmetrizeLattice = "SymmetrizeLattice"
)

func standardizeErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

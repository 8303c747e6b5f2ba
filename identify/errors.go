// SPDX-License-Identifier: MIT

package identify

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCatalogMatch indicates operations that match no arithmetic crystal
	// class or no Hall setting. Usually the tolerance was chosen badly.
	ErrNoCatalogMatch = errors.New("identify: no catalog entry matches")

	// ErrSettingMismatch indicates that a forced Hall setting does not
	// describe the operations; retry unforced.
	ErrSettingMismatch = errors.New("identify: forced Hall setting does not match")
)

// Operation tags for error wrapping.
const (
	opPointGroup            = "NewPointGroup"
	opSpaceGroup            = "NewSpaceGroup"
	opPointGroupFromLattice = "PointGroupFromLattice"
	opSpaceGroupFromLattice = "SpaceGroupFromLattice"
)

func identifyErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

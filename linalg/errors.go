// SPDX-License-Identifier: MIT

package linalg

import (
	"errors"
	"fmt"
)

var (
	// ErrSingular is returned when a real matrix has no inverse.
	ErrSingular = errors.New("linalg: singular matrix")

	// ErrNotUnimodular signals that an integer matrix with |det| != 1 was
	// given where an integer inverse is required.
	ErrNotUnimodular = errors.New("linalg: matrix is not unimodular")

	// ErrDimensionMismatch indicates incompatible shapes in IntDense kernels.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")
)

// Operation tags for error wrapping.
const (
	opInverse    = "Inverse"
	opIntInverse = "IntInverse"
	opSylvester  = "Sylvester3"
	opSolveMod1  = "SolveMod1"
)

// linalgErrorf wraps err with an operation tag, preserving it for errors.Is.
func linalgErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// SPDX-License-Identifier: MIT

// Package search: sentinel error set.
// Errors are wrapped with an operation tag; callers match with errors.Is.
// Tolerance failures are split by direction so that callers can retry with
// a larger or smaller symprec.

package search

import (
	"errors"
	"fmt"
)

var (
	// ErrTooSmallTolerance indicates that no consistent translation or
	// rotation survived the tolerance; retry with a larger symprec.
	ErrTooSmallTolerance = errors.New("search: tolerance too small")

	// ErrTooLargeTolerance indicates that symprec is comparable to the
	// lattice, or that the accepted operations are inconsistent; retry with
	// a smaller symprec.
	ErrTooLargeTolerance = errors.New("search: tolerance too large")

	// ErrPrimitiveCell indicates that the found pure translations do not
	// generate a lattice containing the input one.
	ErrPrimitiveCell = errors.New("search: cannot build primitive cell")
)

// Operation tags for error wrapping.
const (
	opSearch          = "Search"
	opPrimitiveCell   = "NewPrimitiveCell"
	opSearchPrimitive = "SearchPrimitive"
	opBravaisGroup    = "BravaisGroup"
)

func searchErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

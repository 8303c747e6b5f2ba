// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/identify"
	"github.com/katalvlaran/symfind/reduce"
	"github.com/katalvlaran/symfind/search"
	"github.com/katalvlaran/symfind/standardize"
)

// Errors reported by New. They are the errors of the stages, re-exported.
var (
	ErrDegenerateInput     = crystal.ErrDegenerateInput
	ErrSingularLattice     = crystal.ErrSingularLattice
	ErrNonReducibleLattice = reduce.ErrNonReducibleLattice
	ErrTooSmallTolerance   = search.ErrTooSmallTolerance
	ErrTooLargeTolerance   = search.ErrTooLargeTolerance
	ErrPrimitiveCell       = search.ErrPrimitiveCell
	ErrSettingMismatch     = identify.ErrSettingMismatch
	ErrNoCatalogMatch      = identify.ErrNoCatalogMatch
	ErrStandardization     = standardize.ErrStandardization
	ErrWyckoffAssignment   = standardize.ErrWyckoffAssignment
)

const opNew = "New"

func datasetErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

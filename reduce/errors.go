// SPDX-License-Identifier: MIT

package reduce

import (
	"errors"
	"fmt"
)

// ErrNonReducibleLattice indicates that a reduction did not converge within
// the iteration cap, or produced a basis violating the reduction conditions.
var ErrNonReducibleLattice = errors.New("reduce: lattice could not be reduced")

// Operation tags for error wrapping.
const (
	opNiggli    = "Niggli"
	opDelaunay  = "Delaunay"
	opMinkowski = "Minkowski"
)

func reduceErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"
	"strings"
)

// IntDense is a row-major integer matrix with flat backing storage.
// Indexing is unchecked beyond Go's slice bounds: the kernels in this package
// only address cells they allocated.
type IntDense struct {
	r, c int   // number of rows and columns
	data []int // flat backing storage, length == r*c
}

// NewIntDense creates an r×c zero matrix. r or c may be zero.
func NewIntDense(rows, cols int) *IntDense {
	return &IntDense{r: rows, c: cols, data: make([]int, rows*cols)}
}

// IntIdentity creates the n×n identity.
func IntIdentity(n int) *IntDense {
	m := NewIntDense(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// IntDenseFromIMat3 copies a fixed 3×3 matrix.
func IntDenseFromIMat3(a IMat3) *IntDense {
	m := NewIntDense(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, a[i][j])
		}
	}
	return m
}

// Rows returns the number of rows.
func (m *IntDense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *IntDense) Cols() int { return m.c }

// At returns m[i][j].
func (m *IntDense) At(i, j int) int { return m.data[i*m.c+j] }

// Set assigns m[i][j] = v.
func (m *IntDense) Set(i, j, v int) { m.data[i*m.c+j] = v }

// Clone returns a deep copy.
func (m *IntDense) Clone() *IntDense {
	out := &IntDense{r: m.r, c: m.c, data: make([]int, len(m.data))}
	copy(out.data, m.data)
	return out
}

// SwapRows exchanges rows i and k in place.
func (m *IntDense) SwapRows(i, k int) {
	if i == k {
		return
	}
	for j := 0; j < m.c; j++ {
		m.data[i*m.c+j], m.data[k*m.c+j] = m.data[k*m.c+j], m.data[i*m.c+j]
	}
}

// SwapCols exchanges columns j and k in place.
func (m *IntDense) SwapCols(j, k int) {
	if j == k {
		return
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+j], m.data[i*m.c+k] = m.data[i*m.c+k], m.data[i*m.c+j]
	}
}

// Mul returns m·n.
// Errors: ErrDimensionMismatch when m.Cols() != n.Rows().
func (m *IntDense) Mul(n *IntDense) (*IntDense, error) {
	if m.c != n.r {
		return nil, ErrDimensionMismatch
	}
	out := NewIntDense(m.r, n.c)
	for i := 0; i < m.r; i++ {
		for k := 0; k < m.c; k++ {
			a := m.data[i*m.c+k]
			if a == 0 {
				continue
			}
			for j := 0; j < n.c; j++ {
				out.data[i*n.c+j] += a * n.data[k*n.c+j]
			}
		}
	}
	return out, nil
}

// IMat3 converts a 3×3 IntDense into a fixed-size matrix.
func (m *IntDense) IMat3() IMat3 {
	var out IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// Equal reports element-wise equality including shape.
func (m *IntDense) Equal(n *IntDense) bool {
	if m.r != n.r || m.c != n.c {
		return false
	}
	for i := range m.data {
		if m.data[i] != n.data[i] {
			return false
		}
	}
	return true
}

// String renders rows on separate lines.
func (m *IntDense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(fmt.Sprint(m.data[i*m.c : (i+1)*m.c]))
		if i+1 < m.r {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

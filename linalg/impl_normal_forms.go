// SPDX-License-Identifier: MIT

package linalg

// HNF is the column-style Hermite normal form of an m×n integer matrix A:
// H = A·R with R unimodular. H is lower triangular with a positive pivot in
// each processed row and the entries left of a pivot reduced modulo it.
type HNF struct {
	H *IntDense
	R *IntDense
}

// NewHNF computes the Hermite normal form of basis.
//
// Implementation:
//   - Stage 1: For each row s, repeatedly move the smallest non-zero |h[s][j]|
//     (j ≥ s) to column s and make it positive.
//   - Stage 2: Reduce every other column of row s with floor division by the
//     pivot. Repeat until row s is settled.
//
// Complexity: polynomial in the matrix size and entry magnitude; used on 3×k
// translation systems.
func NewHNF(basis *IntDense) HNF {
	m, n := basis.Rows(), basis.Cols()
	h := basis.Clone()
	r := IntIdentity(n)

	for s := 0; s < m && s < n; s++ {
		for {
			pivot := -1
			for j := s; j < n; j++ {
				if h.At(s, j) == 0 {
					continue
				}
				if pivot < 0 || abs(h.At(s, j)) < abs(h.At(s, pivot)) {
					pivot = j
				}
			}
			if pivot < 0 {
				break
			}
			h.SwapCols(s, pivot)
			r.SwapCols(s, pivot)

			if h.At(s, s) < 0 {
				negateCol(h, s)
				negateCol(r, s)
			}

			update := false
			for j := 0; j < n; j++ {
				if j == s {
					continue
				}
				k := floorDiv(h.At(s, j), h.At(s, s))
				if k == 0 {
					continue
				}
				if j > s {
					update = true
				}
				addCol(h, j, s, -k)
				addCol(r, j, s, -k)
			}
			if !update {
				break
			}
		}
	}
	return HNF{H: h, R: r}
}

// SNF is a diagonal (Smith-type) form D = L·A·R of an m×n integer matrix with
// unimodular L (m×m) and R (n×n). Diagonal entries are non-negative; the
// divisibility chain is not enforced since the solvers here only need D
// diagonal.
type SNF struct {
	D *IntDense
	L *IntDense
	R *IntDense
}

// NewSNF diagonalizes basis by alternating row and column eliminations
// around the smallest non-zero pivot.
func NewSNF(basis *IntDense) SNF {
	m, n := basis.Rows(), basis.Cols()
	d := basis.Clone()
	l := IntIdentity(m)
	r := IntIdentity(n)

	for s := 0; s < m && s < n; s++ {
		for {
			pi, pj := -1, -1
			for i := s; i < m; i++ {
				for j := s; j < n; j++ {
					v := d.At(i, j)
					if v == 0 {
						continue
					}
					if pi < 0 || abs(v) < abs(d.At(pi, pj)) {
						pi, pj = i, j
					}
				}
			}
			if pi < 0 {
				break
			}
			d.SwapRows(s, pi)
			l.SwapRows(s, pi)
			d.SwapCols(s, pj)
			r.SwapCols(s, pj)

			if d.At(s, s) < 0 {
				negateCol(d, s)
				negateCol(r, s)
			}

			update := false
			for i := s + 1; i < m; i++ {
				k := d.At(i, s) / d.At(s, s)
				if k == 0 {
					continue
				}
				update = true
				addRow(d, i, s, -k)
				addRow(l, i, s, -k)
			}
			for j := s + 1; j < n; j++ {
				k := d.At(s, j) / d.At(s, s)
				if k == 0 {
					continue
				}
				update = true
				addCol(d, j, s, -k)
				addCol(r, j, s, -k)
			}
			if !update {
				break
			}
		}
	}
	return SNF{D: d, L: l, R: r}
}

// Rank returns the number of non-zero diagonal entries.
func (s SNF) Rank() int {
	rank := 0
	for i := 0; i < s.D.Rows() && i < s.D.Cols(); i++ {
		if s.D.At(i, i) != 0 {
			rank++
		}
	}
	return rank
}

// Diag returns D[i][i] (0 beyond the diagonal length).
func (s SNF) Diag(i int) int {
	if i >= s.D.Rows() || i >= s.D.Cols() {
		return 0
	}
	return s.D.At(i, i)
}

// ---------- elementary helpers ----------

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// floorDiv is Euclidean-style floor division for a positive divisor.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func negateCol(m *IntDense, j int) {
	for i := 0; i < m.Rows(); i++ {
		m.Set(i, j, -m.At(i, j))
	}
}

// addCol performs col[dst] += k·col[src].
func addCol(m *IntDense, dst, src, k int) {
	for i := 0; i < m.Rows(); i++ {
		m.Set(i, dst, m.At(i, dst)+k*m.At(i, src))
	}
}

// addRow performs row[dst] += k·row[src].
func addRow(m *IntDense, dst, src, k int) {
	for j := 0; j < m.Cols(); j++ {
		m.Set(dst, j, m.At(dst, j)+k*m.At(src, j))
	}
}

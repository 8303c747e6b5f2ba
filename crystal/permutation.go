// SPDX-License-Identifier: MIT

package crystal

// Permutation maps atom index i to atom index p[i].
type Permutation []int

// IdentityPermutation returns the identity on n atoms.
func IdentityPermutation(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Apply returns p(i).
func (p Permutation) Apply(i int) int { return p[i] }

// Inverse returns p⁻¹.
func (p Permutation) Inverse() Permutation {
	inv := make(Permutation, len(p))
	for i, j := range p {
		inv[j] = i
	}
	return inv
}

// Mul returns p∘q, i.e. (p∘q)(i) = p(q(i)).
func (p Permutation) Mul(q Permutation) Permutation {
	out := make(Permutation, len(q))
	for i, j := range q {
		out[i] = p[j]
	}
	return out
}

// IsValid reports whether p is a bijection of 0..len(p)-1.
func (p Permutation) IsValid() bool {
	seen := make([]bool, len(p))
	for _, j := range p {
		if j < 0 || j >= len(p) || seen[j] {
			return false
		}
		seen[j] = true
	}
	return true
}

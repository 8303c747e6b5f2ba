// SPDX-License-Identifier: MIT

package reduce

import (
	"math"

	"github.com/katalvlaran/symfind/crystal"
	"github.com/katalvlaran/symfind/linalg"
)

// niggliParams are the Niggli quantities of a column basis:
// A = a·a, B = b·b, C = c·c, ξ = 2b·c, η = 2c·a, ζ = 2a·b.
type niggliParams struct {
	a, b, c         float64
	xi, eta, zeta   float64
	sxi, seta, szet int
}

func newNiggliParams(cols linalg.Mat3, eps float64) niggliParams {
	g := cols.T().Mul(cols)
	p := niggliParams{
		a: g[0][0], b: g[1][1], c: g[2][2],
		xi: 2 * g[1][2], eta: 2 * g[2][0], zeta: 2 * g[0][1],
	}
	p.sxi, p.seta, p.szet = sign(p.xi, eps), sign(p.eta, eps), sign(p.zeta, eps)
	return p
}

func sign(x, eps float64) int {
	switch {
	case x > eps:
		return 1
	case x < -eps:
		return -1
	}
	return 0
}

// Niggli returns the Niggli-reduced lattice and P with reduced columns = A·P.
//
// Implementation:
//   - Steps 1-8 of Křivý & Gruber (1976). Steps 2, 5, 6, 7 and 8 restart at
//     step 1 when they fire.
//   - Transformation matrices seen at step 1 are recorded; a repeat ends
//     the loop (floating-point oscillation between equivalent cells).
//   - The result must satisfy IsNiggliReduced.
//
// Errors:
//   - crystal.ErrSingularLattice, ErrNonReducibleLattice.
func Niggli(l crystal.Lattice, opts ...Option) (crystal.Lattice, linalg.IMat3, error) {
	o := gatherOptions(opts...)
	cols, eps, err := prepare(opNiggli, l, o)
	if err != nil {
		return crystal.Lattice{}, linalg.IMat3{}, err
	}

	basis := cols
	p := linalg.IIdentity3()
	seen := cycleChecker{}
	restarts := 0
	for step := 1; step <= 8; {
		np := newNiggliParams(basis, eps)
		fired := niggliStep(step, np, eps, &p)
		basis = cols.Mul(p.Float())

		if fired && (step == 2 || step >= 5) {
			step = 1
		} else {
			step++
		}
		if step == 1 {
			if !seen.insert(p) {
				break
			}
			restarts++
			if restarts > o.maxIterations {
				return crystal.Lattice{}, linalg.IMat3{}, reduceErrorf(opNiggli, ErrNonReducibleLattice)
			}
		}
	}

	basis, p = fixParity(basis, p)
	reduced := fromColumns(basis)
	if !IsNiggliReduced(reduced, opts...) {
		return crystal.Lattice{}, linalg.IMat3{}, reduceErrorf(opNiggli, ErrNonReducibleLattice)
	}
	return reduced, p, nil
}

// niggliStep applies step k when its condition holds and reports whether it
// fired.
func niggliStep(k int, np niggliParams, eps float64, p *linalg.IMat3) bool {
	var t linalg.IMat3
	switch k {
	case 1: // A > B, or A = B and |ξ| > |η|: swap a, b
		if !(np.a-np.b > eps || (math.Abs(np.a-np.b) < eps && math.Abs(np.xi) > math.Abs(np.eta))) {
			return false
		}
		t = linalg.IMat3{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}}
	case 2: // B > C, or B = C and |η| > |ζ|: swap b, c
		if !(np.b-np.c > eps || (math.Abs(np.b-np.c) < eps && math.Abs(np.eta) > math.Abs(np.zeta))) {
			return false
		}
		t = linalg.IMat3{{-1, 0, 0}, {0, 0, -1}, {0, -1, 0}}
	case 3: // type I: make ξ, η, ζ positive
		if np.sxi*np.seta*np.szet <= 0 {
			return false
		}
		t = linalg.IMat3{{flip(np.sxi), 0, 0}, {0, flip(np.seta), 0}, {0, 0, flip(np.szet)}}
	case 4: // type II: make ξ, η, ζ non-positive
		if np.sxi == -1 && np.seta == -1 && np.szet == -1 {
			return false
		}
		if np.sxi*np.seta*np.szet > 0 {
			return false
		}
		i, j, kk, zero := 1, 1, 1, -1
		if np.sxi == 1 {
			i = -1
		} else if np.sxi == 0 {
			zero = 0
		}
		if np.seta == 1 {
			j = -1
		} else if np.seta == 0 {
			zero = 1
		}
		if np.szet == 1 {
			kk = -1
		} else if np.szet == 0 {
			zero = 2
		}
		if i*j*kk == -1 {
			switch zero {
			case 0:
				i = -1
			case 1:
				j = -1
			case 2:
				kk = -1
			}
		}
		t = linalg.IMat3{{i, 0, 0}, {0, j, 0}, {0, 0, kk}}
	case 5: // |ξ| > B, or ξ = B and 2η < ζ, or ξ = −B and ζ < 0
		if !(math.Abs(np.xi)-np.b > eps ||
			(math.Abs(np.xi-np.b) < eps && np.zeta-2*np.eta > eps) ||
			(math.Abs(np.xi+np.b) < eps && -np.zeta > eps)) {
			return false
		}
		t = linalg.IMat3{{1, 0, 0}, {0, 1, -np.sxi}, {0, 0, 1}}
	case 6: // |η| > A, or η = A and 2ξ < ζ, or η = −A and ζ < 0
		if !(math.Abs(np.eta)-np.a > eps ||
			(math.Abs(np.eta-np.a) < eps && np.zeta-2*np.xi > eps) ||
			(math.Abs(np.eta+np.a) < eps && -np.zeta > eps)) {
			return false
		}
		t = linalg.IMat3{{1, 0, -np.seta}, {0, 1, 0}, {0, 0, 1}}
	case 7: // |ζ| > A, or ζ = A and 2ξ < η, or ζ = −A and η < 0
		if !(math.Abs(np.zeta)-np.a > eps ||
			(math.Abs(np.zeta-np.a) < eps && np.eta-2*np.xi > eps) ||
			(math.Abs(np.zeta+np.a) < eps && -np.eta > eps)) {
			return false
		}
		t = linalg.IMat3{{1, -np.szet, 0}, {0, 1, 0}, {0, 0, 1}}
	case 8: // ξ+η+ζ+A+B < 0, or = 0 and 2(A+η)+ζ > 0
		s := np.xi + np.eta + np.zeta + np.a + np.b
		if !(s < -eps || (math.Abs(s) < eps && 2*(np.a+np.eta)+np.zeta > eps)) {
			return false
		}
		t = linalg.IMat3{{1, 0, 1}, {0, 1, 1}, {0, 0, 1}}
	}
	*p = p.Mul(t)
	return true
}

func flip(s int) int {
	if s == -1 {
		return -1
	}
	return 1
}

// IsNiggliReduced reports whether l satisfies the Niggli conditions.
func IsNiggliReduced(l crystal.Lattice, opts ...Option) bool {
	o := gatherOptions(opts...)
	cols, eps, err := prepare(opNiggli, l, o)
	if err != nil {
		return false
	}
	p := newNiggliParams(cols, eps)

	// A ≤ B ≤ C, |ξ| ≤ B, |η| ≤ A, |ζ| ≤ A
	if p.b-p.a < -eps || p.c-p.b < -eps ||
		p.b-math.Abs(p.xi) < -eps || p.a-math.Abs(p.eta) < -eps || p.a-math.Abs(p.zeta) < -eps {
		return false
	}
	eq := func(x, y float64) bool { return math.Abs(x-y) < eps }

	if p.sxi*p.seta*p.szet > 0 {
		// type I
		if !(p.xi > eps && p.eta > eps && p.zeta > eps) {
			return false
		}
		switch {
		case eq(p.a, p.b) && p.eta-p.xi < -eps,
			eq(p.b, p.c) && p.zeta-p.eta < -eps,
			eq(p.b, math.Abs(p.xi)) && 2*p.eta-p.zeta < -eps,
			eq(p.a, math.Abs(p.eta)) && 2*p.xi-p.zeta < -eps,
			eq(p.a, math.Abs(p.zeta)) && 2*p.xi-p.eta < -eps:
			return false
		}
		return true
	}

	// type II
	if !(p.xi <= eps && p.eta <= eps && p.zeta <= eps) {
		return false
	}
	switch {
	case eq(p.a, p.b) && math.Abs(p.eta)-math.Abs(p.xi) < -eps,
		eq(p.b, p.c) && math.Abs(p.zeta)-math.Abs(p.eta) < -eps,
		eq(p.b, math.Abs(p.xi)) && math.Abs(p.zeta) >= eps,
		eq(p.a, math.Abs(p.eta)) && math.Abs(p.zeta) >= eps,
		eq(p.a, math.Abs(p.zeta)) && math.Abs(p.eta) >= eps,
		eq(p.xi+p.eta+p.zeta+p.a+p.b, 0) && 2*(p.a+p.eta)+p.zeta > eps:
		return false
	}
	return true
}

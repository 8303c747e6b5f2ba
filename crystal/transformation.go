// SPDX-License-Identifier: MIT

package crystal

import "github.com/katalvlaran/symfind/linalg"

// UnimodularTransformation is a change of basis and origin (P, p) with
// det P = 1, so that the cell volume and atom count are preserved.
//
// New basis columns are A·P; a fractional position x becomes P⁻¹·(x − p); an
// operation (R, t) becomes (P⁻¹RP, P⁻¹(Rp + t − p)).
type UnimodularTransformation struct {
	Linear      linalg.IMat3
	OriginShift linalg.Vec3
	linearInv   linalg.IMat3
}

// NewUnimodularTransformation validates det P = 1.
func NewUnimodularTransformation(linear linalg.IMat3, originShift linalg.Vec3) (UnimodularTransformation, error) {
	if linear.Det() != 1 {
		return UnimodularTransformation{}, crystalErrorf(opNewUnimodular, ErrNotUnimodular)
	}
	return UnimodularTransformation{
		Linear:      linear,
		OriginShift: originShift,
		linearInv:   linear.MustInverse(),
	}, nil
}

// MustUnimodular is NewUnimodularTransformation for matrices that are
// unimodular by construction; it panics otherwise.
func MustUnimodular(linear linalg.IMat3, originShift linalg.Vec3) UnimodularTransformation {
	t, err := NewUnimodularTransformation(linear, originShift)
	if err != nil {
		panic(err)
	}
	return t
}

// IdentityUnimodular returns (I, 0).
func IdentityUnimodular() UnimodularTransformation {
	return MustUnimodular(linalg.IIdentity3(), linalg.Vec3{})
}

// LinearInverse returns P⁻¹.
func (u UnimodularTransformation) LinearInverse() linalg.IMat3 { return u.linearInv }

// Compose returns the transformation equivalent to applying u first and
// then v: (P₁, p₁)(P₂, p₂) = (P₁P₂, p₁ + P₁p₂).
func (u UnimodularTransformation) Compose(v UnimodularTransformation) UnimodularTransformation {
	return MustUnimodular(u.Linear.Mul(v.Linear), u.OriginShift.Add(u.Linear.MulFVec(v.OriginShift)))
}

// Inverse returns (P⁻¹, −P⁻¹p).
func (u UnimodularTransformation) Inverse() UnimodularTransformation {
	return MustUnimodular(u.linearInv, u.linearInv.MulFVec(u.OriginShift).Neg())
}

// TransformLattice returns the lattice with columns A·P.
func (u UnimodularTransformation) TransformLattice(l Lattice) Lattice {
	return l.Transform(u.Linear)
}

// TransformOperation conjugates one operation into the new basis.
func (u UnimodularTransformation) TransformOperation(op Operation) Operation {
	rp := op.Rotation.MulFVec(u.OriginShift)
	return Operation{
		Rotation:    u.linearInv.Mul(op.Rotation).Mul(u.Linear),
		Translation: u.linearInv.MulFVec(rp.Add(op.Translation).Sub(u.OriginShift)),
	}
}

// TransformOperations conjugates every operation.
func (u UnimodularTransformation) TransformOperations(ops Operations) Operations {
	out := make(Operations, len(ops))
	for i, op := range ops {
		out[i] = u.TransformOperation(op)
	}
	return out
}

// TransformPosition returns P⁻¹·(x − p).
func (u UnimodularTransformation) TransformPosition(x linalg.Vec3) linalg.Vec3 {
	return u.linearInv.MulFVec(x.Sub(u.OriginShift))
}

// TransformCell re-expresses c in the new basis. Positions are not wrapped.
func (u UnimodularTransformation) TransformCell(c Cell) Cell {
	out := Cell{
		Lattice:   u.TransformLattice(c.Lattice),
		Positions: make([]linalg.Vec3, len(c.Positions)),
		Numbers:   append([]int(nil), c.Numbers...),
	}
	for i, x := range c.Positions {
		out.Positions[i] = u.TransformPosition(x)
	}
	return out
}

// Transformation is a change of basis and origin (P, p) with det P > 0. For
// det P > 1 the new cell is a supercell holding det P copies of every atom.
type Transformation struct {
	Linear      linalg.IMat3
	OriginShift linalg.Vec3
	Size        int
	linearInv   linalg.Mat3
}

// NewTransformation validates det P > 0.
func NewTransformation(linear linalg.IMat3, originShift linalg.Vec3) (Transformation, error) {
	det := linear.Det()
	if det <= 0 {
		return Transformation{}, crystalErrorf(opNewTransformation, ErrNonPositiveDeterminant)
	}
	inv, err := linear.Float().Inverse()
	if err != nil {
		return Transformation{}, crystalErrorf(opNewTransformation, err)
	}
	return Transformation{Linear: linear, OriginShift: originShift, Size: det, linearInv: inv}, nil
}

// MustTransformation panics where NewTransformation would fail.
func MustTransformation(linear linalg.IMat3, originShift linalg.Vec3) Transformation {
	t, err := NewTransformation(linear, originShift)
	if err != nil {
		panic(err)
	}
	return t
}

// LinearInverse returns the rational P⁻¹.
func (t Transformation) LinearInverse() linalg.Mat3 { return t.linearInv }

// TransformLattice returns the lattice with columns A·P.
func (t Transformation) TransformLattice(l Lattice) Lattice {
	return l.Transform(t.Linear)
}

// InverseTransformLattice returns the lattice with columns A·P⁻¹.
func (t Transformation) InverseTransformLattice(l Lattice) Lattice {
	return l.TransformReal(t.linearInv)
}

// TransformOperations computes (P, p)⁻¹(R, t)(P, p). Operations whose
// conjugated rotation is not integral (incompatible with the new lattice)
// are dropped.
func (t Transformation) TransformOperations(ops Operations) Operations {
	return conjugateOperations(ops, t.Linear.Float(), t.linearInv, t.OriginShift)
}

// InverseTransformOperations computes (P, p)(R, t)(P, p)⁻¹ with the same
// dropping rule.
func (t Transformation) InverseTransformOperations(ops Operations) Operations {
	shift := t.Linear.MulFVec(t.OriginShift).Neg()
	return conjugateOperations(ops, t.linearInv, t.Linear.Float(), shift)
}

// TransformCell re-expresses c in the (possibly larger) new cell. Every
// original atom i appears Size times; siteMapping[k] is the original index
// of new atom k. Positions are wrapped into [0, 1).
//
// Implementation:
//   - Smith form D = L·P·R. Integer vectors n, n′ give the same new-cell
//     position iff L·n ≡ L·n′ (mod D), so L⁻¹·f for f ∈ ∏[0, Dᵢᵢ) are the
//     distinct lattice points of the old cell inside the new one.
//   - New positions are P⁻¹·(x + n − p) mod 1.
func (t Transformation) TransformCell(c Cell) (Cell, []int) {
	snf := linalg.NewSNF(linalg.IntDenseFromIMat3(t.Linear))
	linv := snf.L.IMat3().MustInverse()
	var points []linalg.Vec3
	for f0 := 0; f0 < snf.Diag(0); f0++ {
		for f1 := 0; f1 < snf.Diag(1); f1++ {
			for f2 := 0; f2 < snf.Diag(2); f2++ {
				points = append(points, linv.MulVec(linalg.IVec3{f0, f1, f2}).Float())
			}
		}
	}

	out := Cell{
		Lattice:   t.TransformLattice(c.Lattice),
		Positions: make([]linalg.Vec3, 0, len(c.Positions)*len(points)),
		Numbers:   make([]int, 0, len(c.Positions)*len(points)),
	}
	mapping := make([]int, 0, len(c.Positions)*len(points))
	for i, x := range c.Positions {
		for _, n := range points {
			y := t.linearInv.MulVec(x.Add(n).Sub(t.OriginShift)).Wrap()
			out.Positions = append(out.Positions, y)
			out.Numbers = append(out.Numbers, c.Numbers[i])
			mapping = append(mapping, i)
		}
	}
	return out, mapping
}

func conjugateOperations(ops Operations, linear, linearInv linalg.Mat3, shift linalg.Vec3) Operations {
	out := make(Operations, 0, len(ops))
	for _, op := range ops {
		r := op.Rotation.Float()
		conj := linearInv.Mul(r).Mul(linear)
		if !conj.IsInteger(1e-6) {
			continue
		}
		nr := conj.Round()
		if linear.Mul(nr.Float()).Mul(linearInv).Round() != op.Rotation {
			continue
		}
		tr := linearInv.MulVec(r.MulVec(shift).Add(op.Translation).Sub(shift))
		out = append(out, Operation{Rotation: nr, Translation: tr})
	}
	return out
}

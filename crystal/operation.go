// SPDX-License-Identifier: MIT

package crystal

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/symfind/linalg"
)

// Operation is the affine map x ↦ Rotation·x + Translation in fractional
// coordinates of some cell.
type Operation struct {
	Rotation    linalg.IMat3
	Translation linalg.Vec3
}

// Operations is an ordered list of operations.
type Operations []Operation

// Identity returns the identity operation.
func Identity() Operation {
	return Operation{Rotation: linalg.IIdentity3()}
}

// Mul returns o∘p: (R₁,t₁)(R₂,t₂) = (R₁R₂, R₁t₂ + t₁).
func (o Operation) Mul(p Operation) Operation {
	return Operation{
		Rotation:    o.Rotation.Mul(p.Rotation),
		Translation: o.Rotation.MulFVec(p.Translation).Add(o.Translation),
	}
}

// Inverse returns (R⁻¹, −R⁻¹t). The rotation must be unimodular.
func (o Operation) Inverse() Operation {
	inv := o.Rotation.MustInverse()
	return Operation{Rotation: inv, Translation: inv.MulFVec(o.Translation).Neg()}
}

// Apply maps a fractional position.
func (o Operation) Apply(x linalg.Vec3) linalg.Vec3 {
	return o.Rotation.MulFVec(x).Add(o.Translation)
}

// Wrapped returns o with its translation reduced into [0, 1).
func (o Operation) Wrapped() Operation {
	return Operation{Rotation: o.Rotation, Translation: o.Translation.Wrap()}
}

// ApproxEqual reports equal rotations and translations equal modulo lattice
// translations within eps.
func (o Operation) ApproxEqual(p Operation, eps float64) bool {
	return o.Rotation == p.Rotation && o.Translation.Sub(p.Translation).Centered().MaxAbs() <= eps
}

// CartesianRotation returns A·R·A⁻¹ for lattice columns A.
func (o Operation) CartesianRotation(l Lattice) linalg.Mat3 {
	a := l.Columns()
	inv, err := a.Inverse()
	if err != nil {
		panic(err) // lattices are validated on construction
	}
	return a.Mul(o.Rotation.Float()).Mul(inv)
}

// String renders the operation in "x,y,z" notation with translations as
// fractions of denominators up to 12 where possible.
func (o Operation) String() string {
	axes := [3]string{"x", "y", "z"}
	parts := make([]string, 3)
	for i := 0; i < 3; i++ {
		var sb strings.Builder
		for j := 0; j < 3; j++ {
			switch c := o.Rotation[i][j]; {
			case c == 1:
				if sb.Len() > 0 {
					sb.WriteByte('+')
				}
				sb.WriteString(axes[j])
			case c == -1:
				sb.WriteByte('-')
				sb.WriteString(axes[j])
			case c > 0:
				if sb.Len() > 0 {
					sb.WriteByte('+')
				}
				sb.WriteString(strconv.Itoa(c) + axes[j])
			case c < 0:
				sb.WriteString(strconv.Itoa(c) + axes[j])
			}
		}
		if t := o.Translation[i]; math.Abs(t) > EPS {
			if t > 0 && sb.Len() > 0 {
				sb.WriteByte('+')
			}
			sb.WriteString(formatFraction(t))
		}
		if sb.Len() == 0 {
			sb.WriteByte('0')
		}
		parts[i] = sb.String()
	}
	return strings.Join(parts, ",")
}

// Rotations projects the operations onto their rotation parts.
func (ops Operations) Rotations() []linalg.IMat3 {
	out := make([]linalg.IMat3, len(ops))
	for i, op := range ops {
		out[i] = op.Rotation
	}
	return out
}

// Clone returns a copy of ops.
func (ops Operations) Clone() Operations {
	return append(Operations(nil), ops...)
}

// TraverseRotations closes generators under multiplication by breadth-first
// search from the identity. The identity is always first and the order is
// fixed for a given generator list.
func TraverseRotations(generators []linalg.IMat3) []linalg.IMat3 {
	seen := map[linalg.IMat3]struct{}{linalg.IIdentity3(): {}}
	group := []linalg.IMat3{linalg.IIdentity3()}
	for head := 0; head < len(group); head++ {
		for _, g := range generators {
			next := group[head].Mul(g)
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			group = append(group, next)
		}
	}
	return group
}

// RotationType classifies a crystallographic rotation by its determinant and
// trace: 1, 2, 3, 4, 6 for proper n-fold rotations and -1, -2, -3, -4, -6 for
// rotoinversions (-2 is a mirror). 0 means "not crystallographic".
func RotationType(r linalg.IMat3) int {
	tr := r.Trace()
	switch r.Det() {
	case 1:
		switch tr {
		case 3:
			return 1
		case -1:
			return 2
		case 0:
			return 3
		case 1:
			return 4
		case 2:
			return 6
		}
	case -1:
		switch tr {
		case -3:
			return -1
		case 1:
			return -2
		case 0:
			return -3
		case -1:
			return -4
		case -2:
			return -6
		}
	}
	return 0
}

// formatFraction renders t as n/d for d ≤ 12 when exact, else as a decimal.
func formatFraction(t float64) string {
	for d := 1; d <= 12; d++ {
		n := math.Round(t * float64(d))
		if math.Abs(n-t*float64(d)) < 1e-6 {
			if d == 1 {
				return strconv.Itoa(int(n))
			}
			return strconv.Itoa(int(n)) + "/" + strconv.Itoa(d)
		}
	}
	return formatFloat(t)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

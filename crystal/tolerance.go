// SPDX-License-Identifier: MIT

package crystal

import "math"

// EPS is the absolute slack used for comparisons that should be exact up to
// floating-point round-off (integer checks, mod-1 reductions).
const EPS = 1e-8

// AngleTolerance is either an explicit angle in radians or the "auto"
// sentinel. The zero value is auto: the angle check is then derived from the
// distance tolerance (see search).
type AngleTolerance struct {
	radian   float64
	explicit bool
}

// AutoAngle is the sentinel meaning "derive from symprec".
var AutoAngle = AngleTolerance{}

// Radian returns an explicit angle tolerance. Non-positive or non-finite
// values panic: they are programmer errors, not data errors.
func Radian(r float64) AngleTolerance {
	if !(r > 0) || math.IsInf(r, 0) {
		panic("crystal: angle tolerance must be a positive finite number")
	}
	return AngleTolerance{radian: r, explicit: true}
}

// Degree is Radian for an angle given in degrees.
func Degree(d float64) AngleTolerance {
	return Radian(d * math.Pi / 180)
}

// IsAuto reports whether t is the auto sentinel.
func (t AngleTolerance) IsAuto() bool { return !t.explicit }

// Value returns the explicit angle in radians; ok is false for auto.
func (t AngleTolerance) Value() (radian float64, ok bool) {
	return t.radian, t.explicit
}

// String renders "auto" or the angle in degrees.
func (t AngleTolerance) String() string {
	if !t.explicit {
		return "auto"
	}
	return formatFloat(t.radian*180/math.Pi) + "°"
}

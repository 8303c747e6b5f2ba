// SPDX-License-Identifier: MIT

package reduce

import "math"

// Defaults.
const (
	// DefaultEpsilon is the relative comparison slack; the absolute slack
	// on metric entries is DefaultEpsilon·vol^(2/3).
	DefaultEpsilon = 1e-8

	// DefaultMaxIterations caps restarts of a reduction loop.
	DefaultMaxIterations = 10000
)

const (
	panicEpsilonInvalid       = "reduce: WithEpsilon: eps must be finite and positive"
	panicMaxIterationsInvalid = "reduce: WithMaxIterations: n must be positive"
)

// Option configures a reducer.
type Option func(*options)

type options struct {
	eps           float64
	maxIterations int
}

// WithEpsilon sets the relative comparison slack. Panics on non-positive or
// non-finite values.
func WithEpsilon(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}
	return func(o *options) { o.eps = eps }
}

// WithMaxIterations sets the restart cap. Panics on n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(panicMaxIterationsInvalid)
	}
	return func(o *options) { o.maxIterations = n }
}

func gatherOptions(opts ...Option) options {
	o := options{eps: DefaultEpsilon, maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

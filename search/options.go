// SPDX-License-Identifier: MIT

// Package search: functional options.
// Defaults: automatic angle tolerance, discarded logger. Options never
// change the meaning of symprec.

package search

import (
	"github.com/go-logr/logr"

	"github.com/katalvlaran/symfind/crystal"
)

// Option configures a search.
type Option func(*options)

type options struct {
	angle  crystal.AngleTolerance
	logger logr.Logger
}

// WithAngleTolerance sets the angle tolerance of the lattice comparison.
// crystal.AutoAngle derives it from symprec.
func WithAngleTolerance(t crystal.AngleTolerance) Option {
	return func(o *options) { o.angle = t }
}

// WithLogger routes stage logs to l.
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{angle: crystal.AutoAngle, logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.WithName("search")
	return o
}

// SPDX-License-Identifier: MIT

package dataset

import (
	"github.com/go-logr/logr"

	"github.com/katalvlaran/symfind/catalog"
	"github.com/katalvlaran/symfind/crystal"
)

const (
	// DefaultSymprec is the distance tolerance used when none is given.
	DefaultSymprec = 1e-4

	// DefaultRescale is the factor applied to symprec between retries.
	DefaultRescale = 2.0
)

var (
	// DefaultAngleTolerance derives the angle tolerance from symprec.
	DefaultAngleTolerance = crystal.AutoAngle

	// DefaultSetting is the Hall-setting precedence used when none is given.
	DefaultSetting = catalog.SettingSpglib
)

// Option configures New.
type Option func(*options)

type options struct {
	symprec float64
	angle   crystal.AngleTolerance
	setting catalog.Setting
	retries int
	rescale float64
	logger  logr.Logger
}

// WithSymprec sets the distance tolerance. Non-positive values are
// reported by New as ErrDegenerateInput.
func WithSymprec(symprec float64) Option {
	return func(o *options) { o.symprec = symprec }
}

// WithAngleTolerance sets an explicit angle tolerance; crystal.AutoAngle
// restores the default.
func WithAngleTolerance(t crystal.AngleTolerance) Option {
	return func(o *options) { o.angle = t }
}

// WithSetting selects the Hall-setting precedence.
func WithSetting(s catalog.Setting) Option {
	return func(o *options) { o.setting = s }
}

// WithHallNumber forces identification against one Hall setting.
//
// Panics if n is outside 1..530.
func WithHallNumber(n int) Option {
	s := catalog.SettingHallNumber(n)
	return func(o *options) { o.setting = s }
}

// WithRetries allows n further symmetry searches after a tolerance error.
//
// Panics if n < 0.
func WithRetries(n int) Option {
	if n < 0 {
		panic("dataset: WithRetries: negative retry count")
	}
	return func(o *options) { o.retries = n }
}

// WithRescale sets the factor applied to symprec between retries.
//
// Panics unless f > 1.
func WithRescale(f float64) Option {
	if !(f > 1) {
		panic("dataset: WithRescale: factor must be greater than 1")
	}
	return func(o *options) { o.rescale = f }
}

// WithLogger routes the logs of every stage to l.
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{
		symprec: DefaultSymprec,
		angle:   DefaultAngleTolerance,
		setting: DefaultSetting,
		rescale: DefaultRescale,
		logger:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

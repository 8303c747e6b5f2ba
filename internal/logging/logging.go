// SPDX-License-Identifier: MIT

// Package logging holds the verbosity levels used with logr throughout the
// module and builds the zap-backed logger of the command-line tool.
package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logr.Logger.V.
const (
	// DEBUG reports stage results: counts, matched classes, chosen settings.
	DEBUG = 1

	// TRACE reports per-candidate decisions inside a stage.
	TRACE = 2
)

// NewLogger returns a zap logger wrapped as logr.Logger. verbosity is the
// highest V level that is emitted; 0 keeps only Info and Error records.
// development switches to the human-readable console encoder.
func NewLogger(verbosity int, development bool) (logr.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	if verbosity < 0 {
		verbosity = 0
	}
	// logr V(n) maps onto zap level -n.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	z, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(z), nil
}

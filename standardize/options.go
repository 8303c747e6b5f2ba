// SPDX-License-Identifier: MIT

package standardize

import "github.com/go-logr/logr"

// Option configures standardization.
type Option func(*options)

type options struct {
	logger logr.Logger
}

// WithLogger routes standardization logs to l.
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.WithName("standardize")
	return o
}

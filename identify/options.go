// SPDX-License-Identifier: MIT

package identify

import "github.com/go-logr/logr"

// Option configures identification.
type Option func(*options)

type options struct {
	logger logr.Logger
}

// WithLogger routes classification logs to l.
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.WithName("identify")
	return o
}

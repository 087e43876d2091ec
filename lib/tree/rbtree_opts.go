package tree

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xrbtree/xlog"
)

type rbTreeOptions struct {
	logger          xlog.XLogger
	statsName       string
	meterProvider   metric.MeterProvider
	isStatsEnabled  bool
	isRWLockEnabled bool
}

type RBTreeOpt func(*rbTreeOptions)

// WithRBTreeLogger sets the logger. Duplicate inserts and missing keys
// are logged at debug level under the "rbtree" component.
func WithRBTreeLogger(logger xlog.XLogger) RBTreeOpt {
	return func(opts *rbTreeOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithRBTreeStats enables the OpenTelemetry instruments.
// The global meter provider is used if provider is absent.
func WithRBTreeStats(name string, provider ...metric.MeterProvider) RBTreeOpt {
	return func(opts *rbTreeOptions) {
		opts.isStatsEnabled = true
		opts.statsName = name
		if len(provider) > 0 && provider[0] != nil {
			opts.meterProvider = provider[0]
		}
	}
}

// WithRBTreeRWLock guards the whole tree by a single RW lock.
func WithRBTreeRWLock() RBTreeOpt {
	return func(opts *rbTreeOptions) {
		opts.isRWLockEnabled = true
	}
}

package hashlife

import (
	"go.uber.org/zap"

	"mad-life/pkg/rule"
)

type options struct {
	rule      rule.Rule
	step      uint
	logger    *zap.Logger
	nodeLimit int
}

// Option configures a Universe created by New.
type Option func(*options)

// WithRule sets the initial rule. New validates it like SetRules.
func WithRule(r rule.Rule) Option {
	return func(o *options) {
		o.rule = r
	}
}

// WithStep sets the initial step exponent. New rejects values above MaxStep.
func WithStep(step uint) Option {
	return func(o *options) {
		o.step = step
	}
}

// WithLogger attaches a logger. Universe events are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNodeLimit enables garbage collection of the node store once it holds
// more than limit nodes. Collection runs between operations and keeps the
// current pattern, the rewind state and their memoised futures. If a
// collection cannot bring the store under half the limit, the limit doubles.
// A limit <= 0 disables collection, letting the store grow without bound.
func WithNodeLimit(limit int) Option {
	return func(o *options) {
		o.nodeLimit = limit
	}
}

func newOptions(opts ...Option) options {
	o := options{
		rule:   rule.Conway,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

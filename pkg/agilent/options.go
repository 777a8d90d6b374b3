package agilent

import (
	"runtime"

	"go.uber.org/zap"
)

// options collects reader behaviour that callers may tune. Defaults preserve
// the reference behaviour: silent, all cores, zero-fill missing tiles.
type options struct {
	logger            *zap.Logger
	workers           int
	failOnMissingTile bool
}

// Option configures a reader constructor.
type Option func(*options)

// WithLogger attaches a logger that receives checkpoint events (siblings
// verified, header parsed, geometry inferred, tile placed). The default is a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWorkers bounds the number of goroutines decoding mosaic tiles
// concurrently. One worker reproduces the reference sequential order.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithFailOnMissingTile makes mosaic assembly abort when a tile expected by
// the discovered grid is absent, instead of leaving that canvas region
// zero-filled. Zero-filling is the historical behaviour and may mask
// acquisition defects; flip this to surface them.
func WithFailOnMissingTile(fail bool) Option {
	return func(o *options) {
		o.failOnMissingTile = fail
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  zap.NewNop(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

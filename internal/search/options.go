package search

import (
	"context"
	"time"
)

// Options configures a search Run. Use functional options to override
// DefaultOptions().
type Options struct {
	Ctx context.Context

	// MaxPathLengthFactor bounds total path length as a multiple of the
	// sum of all segment lengths in the graph.
	MaxPathLengthFactor float64
	// MaxLoopLengthM stops a path once it has looped at an already-visited
	// intersection for more than this many meters without new progress.
	MaxLoopLengthM float64
	// MaxAfterFinishLengthM stops a path once it has continued past the end
	// segment for more than this many meters.
	MaxAfterFinishLengthM float64
	// VisitedLimit bounds how many times a path may re-enter the same
	// intersection without visiting new bus stops.
	VisitedLimit int
	// MaxExtraDistanceToConvertM trades off length against bus-stop count
	// when comparing two otherwise-incomparable candidate paths.
	MaxExtraDistanceToConvertM float64

	// SyncIterations is how many stack-popping iterations run
	// single-threaded before handing off to the worker pool.
	SyncIterations int
	// WorkerIterations bounds how many iterations each worker round
	// processes before rejoining the main loop.
	WorkerIterations int
	// Workers is the number of goroutines used per round. Defaults to 4.
	Workers int

	Deadline    time.Time
	UseDeadline bool
}

// Option configures a search Run. See DefaultOptions for defaults.
type Option func(*Options)

// DefaultOptions returns the bounds the original route engine ships with.
func DefaultOptions() Options {
	return Options{
		Ctx:                        context.Background(),
		MaxPathLengthFactor:        2.2,
		MaxLoopLengthM:             1000,
		MaxAfterFinishLengthM:      1000,
		VisitedLimit:               2,
		MaxExtraDistanceToConvertM: 1000,
		SyncIterations:             3000,
		WorkerIterations:           10000,
		Workers:                    4,
	}
}

// WithContext sets Ctx; a nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithDeadline enables a hard wall-clock deadline, checked sparsely.
func WithDeadline(d time.Time) Option {
	return func(o *Options) {
		o.Deadline = d
		o.UseDeadline = true
	}
}

// WithWorkers overrides the worker pool size.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

package assembler

import (
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// Event is emitted once per window transition
type Event struct {
	Span   media.Span
	Result transcriber.Result
	State  State
}

// Observer receives events in window order
type Observer func(ctx context.Context, e Event)

// Option configures an Assembler
type Option func(*implAssembler)

// WithConcurrency allows up to n recognition calls in flight. Output order is unaffected.
func WithConcurrency(n int) Option {
	return func(a *implAssembler) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithSkipOnError records failed windows and keeps going instead of halting
func WithSkipOnError(skip bool) Option {
	return func(a *implAssembler) {
		a.skipErrors = skip
	}
}

// WithObserver adds an event observer next to the built-in progress log
func WithObserver(o Observer) Option {
	return func(a *implAssembler) {
		if o != nil {
			a.observers = append(a.observers, o)
		}
	}
}

type implAssembler struct {
	logger      logger.Logger
	concurrency int
	skipErrors  bool
	observers   []Observer
}

// New creates an Assembler that halts on the first service error by default
func New(log logger.Logger, opts ...Option) Assembler {
	a := &implAssembler{
		logger:      log,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

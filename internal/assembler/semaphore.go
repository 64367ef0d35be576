package assembler

import (
	"context"
	"sync/atomic"
)

// slots bounds how many windows are in front of the recognizer at once
type slots struct {
	ch       chan struct{}
	inFlight atomic.Int32
}

func newSlots(capacity int) *slots {
	return &slots{ch: make(chan struct{}, capacity)}
}

// acquire blocks until a slot is free or ctx is done.
// It returns the number of windows in flight including the caller.
func (s *slots) acquire(ctx context.Context) (int, error) {
	select {
	case s.ch <- struct{}{}:
		return int(s.inFlight.Add(1)), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (s *slots) release() {
	s.inFlight.Add(-1)
	<-s.ch
}

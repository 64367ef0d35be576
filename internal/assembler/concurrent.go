package assembler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// flight tracks the windows dispatched by runConcurrent
type flight struct {
	mu      sync.Mutex
	spans   []media.Span
	results []transcriber.Result
	cancels []context.CancelFunc
	haltAt  int
}

// add registers a window and reports whether it is still worth transcribing
func (f *flight) add(span media.Span, cancel context.CancelFunc) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := len(f.spans)
	f.spans = append(f.spans, span)
	f.results = append(f.results, transcriber.Result{})
	f.cancels = append(f.cancels, cancel)
	return i, f.haltAt < 0 || i < f.haltAt
}

func (f *flight) halted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.haltAt >= 0
}

// store saves a result; the lowest failing index wins and every later window is cancelled
func (f *flight) store(i int, res transcriber.Result, halting bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.results[i] = res
	if !halting || res.Kind != transcriber.KindServiceError {
		return
	}
	if f.haltAt >= 0 && f.haltAt < i {
		return
	}
	f.haltAt = i
	for _, cancel := range f.cancels[i+1:] {
		cancel()
	}
}

// runConcurrent reads windows sequentially and transcribes up to a.concurrency at once.
// Results are folded in window order, so the Run matches a sequential run.
func (a *implAssembler) runConcurrent(parent context.Context, src WindowSource, client transcriber.Client) (*Run, error) {
	ctx, cancelAll := context.WithCancel(parent)
	defer cancelAll()

	sem := newSlots(a.concurrency)
	f := &flight{haltAt: -1}
	halting := !a.skipErrors

	var (
		wg      sync.WaitGroup
		readErr error
	)

	for !f.halted() {
		busy, err := sem.acquire(ctx)
		if err != nil {
			break
		}
		if f.halted() {
			sem.release()
			break
		}

		win, err := src.Next()
		if err != nil {
			sem.release()
			if !errors.Is(err, io.EOF) {
				readErr = fmt.Errorf("read window: %w", err)
			}
			break
		}

		wctx, cancel := context.WithCancel(ctx)
		i, live := f.add(win.Span, cancel)
		if !live {
			cancel()
			sem.release()
			break
		}

		a.logger.Debug(ctx, "Dispatching %s (%d/%d in flight)", win.Span, busy, a.concurrency)

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.release()
			f.store(i, client.Transcribe(wctx, win), halting)
		}()
	}

	wg.Wait()
	for _, cancel := range f.cancels {
		cancel()
	}

	if err := parent.Err(); err != nil {
		return nil, err
	}
	if readErr != nil {
		return nil, readErr
	}

	acc := a.newAccumulator()
	for i, span := range f.spans {
		if f.haltAt >= 0 && i > f.haltAt {
			break
		}
		if halted := acc.apply(parent, span, f.results[i]); halted {
			break
		}
	}
	return acc.finish(parent), nil
}

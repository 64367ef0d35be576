package assembler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// Run transcribes every window of src in order.
// A service error halts the run (unless skipping) but is not returned as an error;
// only read failures and cancellation are.
func (a *implAssembler) Run(ctx context.Context, src WindowSource, client transcriber.Client) (*Run, error) {
	if a.concurrency > 1 {
		return a.runConcurrent(ctx, src, client)
	}

	acc := a.newAccumulator()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		win, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read window: %w", err)
		}

		res := client.Transcribe(ctx, win)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if halted := acc.apply(ctx, win.Span, res); halted {
			break
		}
	}

	return acc.finish(ctx), nil
}

type accumulator struct {
	a          *implAssembler
	run        *Run
	transcript strings.Builder
}

func (a *implAssembler) newAccumulator() *accumulator {
	return &accumulator{a: a, run: &Run{State: StateRunning}}
}

// apply records one window outcome and reports whether the run halted
func (acc *accumulator) apply(ctx context.Context, span media.Span, res transcriber.Result) bool {
	acc.run.Chunks = append(acc.run.Chunks, Chunk{Span: span, Result: res})
	appendText(&acc.transcript, res)

	if res.Kind == transcriber.KindServiceError && !acc.a.skipErrors {
		acc.run.State = StateHalted
		acc.run.HaltReason = res.Message
	}

	acc.a.emit(ctx, Event{Span: span, Result: res, State: acc.run.State})
	return acc.run.State == StateHalted
}

func (acc *accumulator) finish(ctx context.Context) *Run {
	if acc.run.State == StateRunning {
		acc.run.State = StateCompleted
	}
	acc.run.Transcript = acc.transcript.String()

	if acc.run.Halted() {
		acc.a.logger.Warn(ctx, "Transcription halted after %d chunks: %s", len(acc.run.Chunks), acc.run.HaltReason)
	} else {
		acc.a.logger.Info(ctx, "Transcription completed: %d chunks", len(acc.run.Chunks))
	}
	return acc.run
}

func (a *implAssembler) emit(ctx context.Context, e Event) {
	switch e.Result.Kind {
	case transcriber.KindServiceError:
		a.logger.Warn(ctx, "%s: %s", e.Span, e.Result)
	default:
		a.logger.Info(ctx, "%s: %s", e.Span, e.Result)
	}
	for _, o := range a.observers {
		o(ctx, e)
	}
}

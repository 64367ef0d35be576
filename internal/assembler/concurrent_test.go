package assembler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

func TestConcurrentMatchesSequential(t *testing.T) {
	tests := []struct {
		name    string
		results map[int]transcriber.Result
		delays  map[int]time.Duration
	}{
		{
			name: "all text, reversed completion order",
			delays: map[int]time.Duration{
				0: 40 * time.Millisecond,
				1: 30 * time.Millisecond,
				2: 20 * time.Millisecond,
			},
		},
		{
			name: "empty windows",
			results: map[int]transcriber.Result{
				2: transcriber.Empty(),
				5: transcriber.Empty(),
			},
		},
		{
			name: "halt in the middle",
			results: map[int]transcriber.Result{
				3: transcriber.ServiceError("503"),
			},
			delays: map[int]time.Duration{0: 20 * time.Millisecond},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(logger.Nop()).Run(context.Background(),
				newPlanSource(t, 7*time.Minute, time.Minute),
				&scriptedClient{results: tt.results})
			if err != nil {
				t.Fatal(err)
			}

			par, err := New(logger.Nop(), WithConcurrency(3)).Run(context.Background(),
				newPlanSource(t, 7*time.Minute, time.Minute),
				&scriptedClient{results: tt.results, delays: tt.delays})
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(seq, par); diff != "" {
				t.Errorf("concurrent run differs (-sequential +concurrent):\n%s", diff)
			}
		})
	}
}

func TestConcurrentEarlierErrorWins(t *testing.T) {
	client := &scriptedClient{
		results: map[int]transcriber.Result{
			1: transcriber.ServiceError("slow failure"),
			3: transcriber.ServiceError("fast failure"),
		},
		delays: map[int]time.Duration{
			1: 50 * time.Millisecond,
			2: time.Second,
		},
	}

	run, err := New(logger.Nop(), WithConcurrency(4)).Run(context.Background(),
		newPlanSource(t, 10*time.Minute, time.Minute), client)
	if err != nil {
		t.Fatal(err)
	}

	if run.State != StateHalted || run.HaltReason != "slow failure" {
		t.Errorf("run = %s %q, want halted on slow failure", run.State, run.HaltReason)
	}
	if len(run.Chunks) != 2 || run.Transcript != "w0" {
		t.Errorf("chunks = %+v transcript = %q", run.Chunks, run.Transcript)
	}
	for _, i := range client.called() {
		if i > 4 {
			t.Errorf("window %d dispatched after the halt", i)
		}
	}
}

func TestConcurrentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &scriptedClient{
		delays: map[int]time.Duration{0: time.Second, 1: time.Second},
		onCall: func(i int) {
			if i == 1 {
				cancel()
			}
		},
	}

	run, err := New(logger.Nop(), WithConcurrency(2)).Run(ctx,
		newPlanSource(t, 10*time.Minute, time.Minute), client)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if run != nil {
		t.Errorf("cancelled run returned partial result")
	}
}

func TestConcurrentReadError(t *testing.T) {
	src := newPlanSource(t, 5*time.Minute, time.Minute)
	src.err, src.errAt = errDisk, 2

	_, err := New(logger.Nop(), WithConcurrency(2)).Run(context.Background(), src, &scriptedClient{})
	if !errors.Is(err, errDisk) {
		t.Errorf("Run() error = %v, want %v", err, errDisk)
	}
}

package assembler

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// planSource serves windows for the spans of media.Plan
type planSource struct {
	spans []media.Span
	pos   int
	err   error
	errAt int
}

func newPlanSource(t *testing.T, duration, window time.Duration) *planSource {
	t.Helper()
	spans, err := media.Plan(duration, window)
	if err != nil {
		t.Fatal(err)
	}
	return &planSource{spans: spans, errAt: -1}
}

func (s *planSource) Next() (media.Window, error) {
	if s.pos == s.errAt {
		return media.Window{}, s.err
	}
	if s.pos >= len(s.spans) {
		return media.Window{}, io.EOF
	}
	span := s.spans[s.pos]
	s.pos++
	return media.Window{Span: span, Format: media.CanonicalFormat}, nil
}

// scriptedClient answers per window index; unknown indices return Text("w<i>")
type scriptedClient struct {
	mu      sync.Mutex
	results map[int]transcriber.Result
	delays  map[int]time.Duration
	onCall  func(i int)
	calls   []int
}

func (c *scriptedClient) Transcribe(ctx context.Context, w media.Window) transcriber.Result {
	c.mu.Lock()
	c.calls = append(c.calls, w.Index)
	res, ok := c.results[w.Index]
	delay := c.delays[w.Index]
	onCall := c.onCall
	c.mu.Unlock()

	if onCall != nil {
		onCall(w.Index)
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return transcriber.ServiceError(ctx.Err().Error())
		}
	}
	if !ok {
		res = transcriber.Text("w" + string(rune('0'+w.Index)))
	}
	return res
}

func (c *scriptedClient) called() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := append([]int(nil), c.calls...)
	sort.Ints(out)
	return out
}

var errDisk = errors.New("disk read failed")

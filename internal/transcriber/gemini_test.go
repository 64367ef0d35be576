package transcriber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

func TestGeminiTranscribe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		// body is the generateContent response for status 200
		body map[string]any
		want Kind
		text string
	}{
		{
			name:   "speech",
			status: http.StatusOK,
			body:   candidate("Action item: update the roadmap.", "STOP"),
			want:   KindText,
			text:   "Action item: update the roadmap.",
		},
		{
			name:   "silence",
			status: http.StatusOK,
			body:   candidate("  ", "STOP"),
			want:   KindEmpty,
		},
		{
			name:   "stop without content",
			status: http.StatusOK,
			body:   map[string]any{"candidates": []any{map[string]any{"finishReason": "STOP"}}},
			want:   KindEmpty,
		},
		{
			name:   "safety block without content",
			status: http.StatusOK,
			body:   map[string]any{"candidates": []any{map[string]any{"finishReason": "SAFETY"}}},
			want:   KindServiceError,
		},
		{
			name:   "recitation with partial text",
			status: http.StatusOK,
			body:   candidate("partial", "RECITATION"),
			want:   KindServiceError,
		},
		{
			name:   "max tokens",
			status: http.StatusOK,
			body:   candidate("cut off mid", "MAX_TOKENS"),
			want:   KindServiceError,
		},
		{
			name:   "missing finish reason",
			status: http.StatusOK,
			body: map[string]any{"candidates": []any{map[string]any{
				"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": "hello"}}},
			}}},
			want: KindServiceError,
		},
		{
			name:   "prompt blocked",
			status: http.StatusOK,
			body:   map[string]any{"promptFeedback": map[string]any{"blockReason": "SAFETY"}},
			want:   KindServiceError,
		},
		{
			name:   "no candidates",
			status: http.StatusOK,
			body:   map[string]any{"candidates": []any{}},
			want:   KindServiceError,
		},
		{
			name:   "quota",
			status: http.StatusTooManyRequests,
			want:   KindServiceError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.Contains(r.URL.Path, ":generateContent") {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				if tt.status != http.StatusOK {
					json.NewEncoder(w).Encode(map[string]any{
						"error": map[string]any{"code": tt.status, "message": "quota", "status": "RESOURCE_EXHAUSTED"},
					})
					return
				}
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer srv.Close()

			c, err := NewGemini(context.Background(), []string{"test-key"}, srv.URL, "gemini-2.5-flash", "en", logger.Nop())
			if err != nil {
				t.Fatalf("NewGemini() error = %v", err)
			}

			got := c.Transcribe(context.Background(), testWindow(0))
			if got.Kind != tt.want {
				t.Fatalf("Transcribe() = %+v, want kind %s", got, tt.want)
			}
			if tt.want == KindText && got.Text != tt.text {
				t.Errorf("Text = %q, want %q", got.Text, tt.text)
			}
		})
	}
}

func TestGeminiTranscribeRotatesKeys(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("x-goog-api-key")
		mu.Lock()
		seen = append(seen, key)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if key == "k1" {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 429, "message": "Resource has been exhausted", "status": "RESOURCE_EXHAUSTED"},
			})
			return
		}
		json.NewEncoder(w).Encode(candidate("second key works", "STOP"))
	}))
	defer srv.Close()

	c, err := NewGemini(context.Background(), []string{"k1", "k2"}, srv.URL, "gemini-2.5-flash", "en", logger.Nop())
	if err != nil {
		t.Fatalf("NewGemini() error = %v", err)
	}

	for i := range 2 {
		got := c.Transcribe(context.Background(), testWindow(i))
		if got.Kind != KindText || got.Text != "second key works" {
			t.Fatalf("window %d: Transcribe() = %+v, want text from k2", i, got)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if strings.Join(seen, ",") != "k1,k2,k2" {
		t.Errorf("keys used = %v, want [k1 k2 k2]", seen)
	}
}

func TestNewGeminiRequiresKeys(t *testing.T) {
	if _, err := NewGemini(context.Background(), nil, "", "gemini-2.5-flash", "en", logger.Nop()); err == nil {
		t.Error("NewGemini() should fail without keys")
	}
}

func candidate(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			},
			"finishReason": finish,
		}},
	}
}

package transcriber

import (
	"fmt"
	"strings"
)

// Kind tags the outcome of transcribing one window
type Kind int

const (
	KindText Kind = iota
	KindEmpty
	KindServiceError
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEmpty:
		return "empty"
	case KindServiceError:
		return "service_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of one recognition call.
// Text is set for KindText, Message for KindServiceError.
type Result struct {
	Kind    Kind
	Text    string
	Message string
}

// Text is recognized speech
func Text(s string) Result {
	return Result{Kind: KindText, Text: s}
}

// Empty means the service heard no intelligible speech
func Empty() Result {
	return Result{Kind: KindEmpty}
}

// ServiceError means the call itself failed
func ServiceError(msg string) Result {
	return Result{Kind: KindServiceError, Message: msg}
}

// FromResponse classifies a raw recognizer response
func FromResponse(text string, err error) Result {
	if err != nil {
		return ServiceError(err.Error())
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Empty()
	}
	return Text(text)
}

// String is the chunk list rendering of the result
func (r Result) String() string {
	switch r.Kind {
	case KindText:
		return r.Text
	case KindEmpty:
		return "[Unintelligible segment]"
	default:
		return fmt.Sprintf("[API error: %s]", r.Message)
	}
}

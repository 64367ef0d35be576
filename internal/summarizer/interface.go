package summarizer

import "context"

// Request carries the transcript and the meeting details printed in the minutes header
type Request struct {
	Transcript string
	Date       string
	Attendees  string
	Topic      string
}

// Summarizer turns a transcript into markdown meeting minutes
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

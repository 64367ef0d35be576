package httpserver

import "context"

// Server serves the upload form, the minutes page and the PDF download
type Server interface {
	// Start listens until ctx is cancelled, then shuts down gracefully
	Start(ctx context.Context) error
}

package render

import (
	"errors"
	"fmt"
)

// ErrRender wraps failures of the HTML and PDF renderers
var ErrRender = errors.New("render failed")

const (
	// PDFFilename is the download name offered for the minutes
	PDFFilename = "meeting_minutes.pdf"
	// PDFContentType is the MIME type of the download
	PDFContentType = "application/pdf"
)

const documentTemplate = `<!DOCTYPE html><html><head>
  <meta charset="utf-8"><title>Meeting Minutes</title>
  <style>
    body { font-family: sans-serif; margin: 2em; }
    h1,h2,h3 { margin-bottom: .5em; }
    hr { border: none; border-top: 1px solid #ccc; margin: 1em 0; }
    ul,ol { margin-left: 1.5em; }
    strong { font-weight: bold; }
  </style>
</head><body>
%s
</body></html>
`

// Document wraps an HTML fragment into the printable minutes page
func Document(body string) string {
	return fmt.Sprintf(documentTemplate, body)
}

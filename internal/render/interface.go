package render

import "context"

// PDFRenderer turns a complete HTML document into PDF bytes
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

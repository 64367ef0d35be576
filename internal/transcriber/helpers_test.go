package transcriber

import (
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
)

func testWindow(index int) media.Window {
	start := time.Duration(index) * time.Minute
	return media.Window{
		Span:   media.Span{Index: index, Start: start, End: start + time.Minute},
		Format: media.CanonicalFormat,
		PCM:    make([]byte, 3200),
	}
}

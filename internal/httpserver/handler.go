package httpserver

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nguyentantai21042004/meeting-minutes/internal/media"
	"github.com/nguyentantai21042004/meeting-minutes/internal/pipeline"
	"github.com/nguyentantai21042004/meeting-minutes/internal/render"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
)

// pageData is what the index template renders; the form keeps the last inputs
type pageData struct {
	Date        string
	Attendees   string
	Topic       string
	Transcript  string
	Chunks      []string
	Halted      string
	SummaryHTML template.HTML
	Summary     string
	Error       string
}

func (s *implServer) handleIndex(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, pageData{Date: time.Now().Format(time.DateOnly)})
}

func (s *implServer) handleUpload(c *fiber.Ctx) error {
	ctx := c.UserContext()
	data := pageData{
		Date:      strings.TrimSpace(c.FormValue("date", time.Now().Format(time.DateOnly))),
		Attendees: strings.TrimSpace(c.FormValue("attendees")),
		Topic:     strings.TrimSpace(c.FormValue("topic")),
	}

	fh, err := c.FormFile("audio_file")
	if err != nil {
		data.Error = "Please choose an audio file to upload."
		return s.render(c, fiber.StatusBadRequest, data)
	}
	if _, err := media.ValidateFormat(fh.Filename); err != nil {
		s.logger.Warn(ctx, "Rejected upload: %v", err)
		data.Error = err.Error()
		return s.render(c, fiber.StatusBadRequest, data)
	}

	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "read upload")
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "read upload")
	}

	asset, err := media.NewAsset(fh.Filename, raw)
	if err != nil {
		data.Error = err.Error()
		return s.render(c, fiber.StatusBadRequest, data)
	}

	s.logger.Info(ctx, "Upload received: %s (%d bytes)", fh.Filename, len(raw))

	res, err := s.pipeline.Process(ctx, pipeline.Job{
		Asset:     asset,
		Date:      data.Date,
		Attendees: data.Attendees,
		Topic:     data.Topic,
	})
	if res != nil {
		data.Transcript = res.Run.Transcript
		data.Chunks = res.Run.Lines()
		data.Halted = res.Run.HaltReason
		data.Summary = res.SummaryHTML
		data.SummaryHTML = template.HTML(res.SummaryHTML)
	}
	if err != nil {
		s.logger.Error(ctx, "Processing %s failed: %v", fh.Filename, err)
		data.Error = err.Error()
		return s.render(c, statusFor(err), data)
	}

	return s.render(c, fiber.StatusOK, data)
}

func (s *implServer) handleDownload(c *fiber.Ctx) error {
	body := c.FormValue("summary_html")
	if strings.TrimSpace(body) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "summary_html is required")
	}

	pdf, err := s.pipeline.RenderPDF(c.UserContext(), body)
	if err != nil {
		s.logger.Error(c.UserContext(), "Render PDF: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Error generating PDF")
	}

	c.Attachment(render.PDFFilename)
	c.Set(fiber.HeaderContentType, render.PDFContentType)
	return c.Send(pdf)
}

func (s *implServer) render(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "render page")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// statusFor maps pipeline failures to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, media.ErrUnsupportedFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, media.ErrDecode):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, summarizer.ErrSummarization):
		return fiber.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

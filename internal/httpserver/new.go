package httpserver

import (
	"context"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/pipeline"
)

type implServer struct {
	addr       string
	jobTimeout time.Duration
	app        *fiber.App
	pipeline   pipeline.Pipeline
	logger     logger.Logger
	page       *template.Template
	baseCtx    context.Context
}

// New creates the HTTP front-end for p
func New(cfg config.ServerConfig, p pipeline.Pipeline, log logger.Logger) Server {
	s := &implServer{
		addr:       cfg.Addr,
		jobTimeout: cfg.JobTimeout,
		pipeline:   p,
		logger:     log,
		page:       template.Must(template.New("index").Parse(indexTemplate)),
		baseCtx:    context.Background(),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "meeting-minutes",
		BodyLimit:             cfg.MaxUploadMB << 20,
		DisableStartupMessage: true,
	})
	s.routes()
	return s
}

func (s *implServer) routes() {
	s.app.Use(s.jobContext)
	s.app.Get("/", s.handleIndex)
	s.app.Post("/", s.handleUpload)
	s.app.Post("/download", s.handleDownload)
}

package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 30 * time.Second

func (s *implServer) Start(ctx context.Context) error {
	s.baseCtx = ctx

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening on %s", s.addr)
		errCh <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		s.logger.Info(ctx, "Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "HTTP shutdown: %v", err)
		}
		return ctx.Err()
	}
}

// jobContext ties every request to the server lifetime so shutdown cancels
// running jobs. fasthttp does not report client disconnects, so a job is
// bounded by jobTimeout instead.
func (s *implServer) jobContext(c *fiber.Ctx) error {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if s.jobTimeout > 0 {
		ctx, cancel = context.WithTimeout(s.baseCtx, s.jobTimeout)
	} else {
		ctx, cancel = context.WithCancel(s.baseCtx)
	}
	defer cancel()
	c.SetUserContext(ctx)
	return c.Next()
}

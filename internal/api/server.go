// Package api serves isomorphism checks over HTTP.
//
// Routes:
//
//	GET  /healthz         build information
//	GET  /v1/algorithms   registered engines
//	POST /v1/check        {"graph1":G,"graph2":G,"algorithm":"canonical","witness":true}
//	POST /v1/canon        {"graph":G}
//
// Graphs use the same JSON document as the CLI. Failures are answered with
// {"code","message"}, where code is a pkg/errors code.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/isocheck/pkg/pipeline"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 16 << 20

// Server holds the handler dependencies.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
	maxBody int64
}

// New creates a server. A zero timeout uses pipeline.DefaultTimeout.
func New(runner *pipeline.Runner, logger *log.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = pipeline.DefaultTimeout
	}
	return &Server{runner: runner, logger: logger, timeout: timeout, maxBody: maxBodyBytes}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/algorithms", s.handleAlgorithms)
		r.Post("/check", s.handleCheck)
		r.Post("/canon", s.handleCanon)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: s.timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

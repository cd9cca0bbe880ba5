// Package server exposes passage generation, text analysis and exercise
// grading over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/clozeit/internal/analysis"
	"github.com/abhisek/clozeit/internal/config"
	"github.com/abhisek/clozeit/internal/passage"
)

// Options holds the server's collaborators. Generator and Analyzer may be
// nil when no LLM provider is configured; their routes then answer 503.
type Options struct {
	Config    config.ServerConfig
	Logger    *logrus.Logger
	Generator passage.Generator
	Analyzer  analysis.Analyzer
}

// Server represents the HTTP API server.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger
	generator  passage.Generator
	analyzer   analysis.Analyzer
}

// New creates a server instance.
func New(opts Options) *Server {
	s := &Server{
		logger:    opts.Logger,
		generator: opts.Generator,
		analyzer:  opts.Analyzer,
	}
	if s.logger == nil {
		s.logger = logrus.New()
	}

	c := cors.New(cors.Options{
		AllowedOrigins: opts.Config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.httpServer = &http.Server{
		Addr:              opts.Config.Addr(),
		Handler:           c.Handler(s.logRequests(s.routes())),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /api/generate-cloze", s.handleGenerateCloze)
	mux.HandleFunc("POST /api/analyze-text", s.handleAnalyzeText)
	mux.HandleFunc("POST /api/exercises", s.handleCreateExercise)
	mux.HandleFunc("POST /api/exercises/grade", s.handleGradeExercise)
	return mux
}

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Infof("HTTP server starting on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	s.logger.Info("Server shutdown complete")
	return nil
}

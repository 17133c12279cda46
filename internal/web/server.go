// Package web serves the upload-and-display form for the profit calculator.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Veraticus/the-profit-must-flow/internal/config"
	"github.com/Veraticus/the-profit-must-flow/internal/metrics"
	"github.com/Veraticus/the-profit-must-flow/internal/statement"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Route paths.
const (
	RouteIndex     = "/"
	RouteCalculate = "/api/calculate"
	RouteHealth    = "/healthz"
	RouteMetrics   = "/metrics"
)

// Server wires the gin engine to the ingestion and calculation pipeline.
// It holds no per-upload state.
type Server struct {
	engine  *gin.Engine
	cfg     config.ServerConfig
	parser  *statement.Parser
	metrics metrics.Recorder
}

// NewServer builds the router. A nil recorder disables metrics.
func NewServer(cfg config.ServerConfig, recorder metrics.Recorder) (*Server, error) {
	if recorder == nil {
		recorder = metrics.Noop{}
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		engine:  gin.New(),
		cfg:     cfg,
		parser:  statement.NewParser(),
		metrics: recorder,
	}

	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(gin.Recovery(), logRequests(), observeRequests(recorder))

	s.engine.GET(RouteIndex, s.handleIndex)
	s.engine.POST(RouteIndex, s.handleUpload)
	s.engine.POST(RouteCalculate, s.handleCalculate)
	s.engine.GET(RouteHealth, s.handleHealth)
	if cfg.MetricsEnabled {
		s.engine.GET(RouteMetrics, gin.WrapH(recorder.Handler()))
	}

	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Starting profit calculator", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down profit calculator")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

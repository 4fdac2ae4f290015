package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nexdevs/sentinel/internal/adapter/inbound/httpapi/middleware"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	AdminToken        string
	RateLimitPerMin   int
	TrustProxyHeaders bool
}

// Server wraps an HTTP server with graceful shutdown support.
type Server struct {
	cfg     ServerConfig
	handler *Handler
	logger  *slog.Logger
	srv     *http.Server
}

// NewServer creates a new Server with the given config and API handler.
func NewServer(cfg ServerConfig, handler *Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, handler: handler, logger: logger}
}

// SetupRoutes builds and returns an http.Handler with all middleware applied.
// Route layout:
//
//	GET  /health              - health check, unauthenticated
//	POST /api/v1/events       - record a security event
//	GET  /api/v1/stats        - monitor stats
//	POST /api/v1/analyze      - text heuristics bundle
func (s *Server) SetupRoutes() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /api/v1/events", s.handler.HandleRecordEvent)
	api.HandleFunc("GET /api/v1/stats", s.handler.HandleStats)
	api.HandleFunc("POST /api/v1/analyze", s.handler.HandleAnalyze)

	var protected http.Handler = api
	if s.cfg.AdminToken != "" {
		protected = middleware.BearerAuth(s.cfg.AdminToken)(protected)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler())
	mux.Handle("/api/", protected)

	// Middleware stack (outermost first): body buffering, request logging,
	// per-IP rate limit, response hardening headers.
	var h http.Handler = mux
	h = middleware.SecurityHeaders(h)
	limit := s.cfg.RateLimitPerMin
	if limit <= 0 {
		limit = 120
	}
	h = middleware.NewRateLimiter(limit, s.cfg.TrustProxyHeaders)(h)
	h = middleware.NewLoggingMiddleware(s.logger)(h)
	h = middleware.BodyReader(h)

	return h
}

// Start starts the HTTP server and blocks until ctx is cancelled, then
// performs a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.SetupRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "port", s.cfg.Port)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/sercha-insight/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx)
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *zap.Logger

	// Services
	authService    driving.AuthService
	routerService  driving.RouterService
	chatService    driving.ChatService
	datasetService driving.DatasetService

	// Infrastructure checked by /ready, keyed by component name
	checks map[string]Pinger

	authDisabled bool
	corsOrigins  []string
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string

	// AuthDisabled lets every request through as an anonymous caller (local use)
	AuthDisabled bool

	// CORSOrigins lists allowed browser origins; "*" allows any
	CORSOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        8080,
		Version:     "dev",
		CORSOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	routerService driving.RouterService,
	chatService driving.ChatService,
	datasetService driving.DatasetService,
	checks map[string]Pinger, // can be nil
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:         http.NewServeMux(),
		version:        cfg.Version,
		logger:         logger.With(zap.String("component", "http")),
		authService:    authService,
		routerService:  routerService,
		chatService:    chatService,
		datasetService: datasetService,
		checks:         checks,
		authDisabled:   cfg.AuthDisabled,
		corsOrigins:    cfg.CORSOrigins,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // completion calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService, s.authDisabled)
	authed := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(h)
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Routing and context
	s.router.Handle("GET /api/v1/domains", authed(s.handleListDomains))
	s.router.Handle("POST /api/v1/route", authed(s.handleRoute))
	s.router.Handle("POST /api/v1/context", authed(s.handleContext))

	// Chat
	s.router.Handle("POST /api/v1/chat", authed(s.handleChat))
	s.router.Handle("GET /api/v1/conversations/{id}", authed(s.handleGetConversation))
	s.router.Handle("DELETE /api/v1/conversations/{id}", authed(s.handleDeleteConversation))

	// Data browser
	s.router.Handle("GET /api/v1/datasets", authed(s.handleListDatasets))
	s.router.Handle("GET /api/v1/datasets/{name}", authed(s.handleBrowseDataset))
}

// Handler returns the routes wrapped in recovery, logging and CORS middleware
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = NewCORSMiddleware(s.corsOrigins).Handler(h)
	h = NewLoggingMiddleware(s.logger).Handler(h)
	h = NewRecoveryMiddleware(s.logger).Handler(h)
	return h
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

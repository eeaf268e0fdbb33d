// Package api exposes the pathway lookup service over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/nishad/drugrake/internal/service"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router   *mux.Router
	server   *http.Server
	pathways *service.PathwayService
	metrics  *metrics
	logger   *zap.Logger
}

// Config holds server configuration
type Config struct {
	Host       string
	Port       int
	EnableCORS bool
}

// NewServer creates a new API server over the given lookup service. The
// service's snapshot is owned by the caller and may be swapped at any time.
func NewServer(cfg *Config, pathways *service.PathwayService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:   mux.NewRouter(),
		pathways: pathways,
		metrics:  newMetrics(pathways),
		logger:   logger,
	}

	s.setupRoutes()

	if cfg.EnableCORS {
		s.router.Use(corsMiddleware)
	}
	s.router.Use(requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.metrics.middleware)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Lookup contract
	s.router.Handle("/pathways", jsonMiddleware(http.HandlerFunc(s.handlePathways))).Methods("POST", "OPTIONS")

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(jsonMiddleware)
	api.HandleFunc("/drugs/{id}/pathways", s.handleDrugPathways).Methods("GET", "OPTIONS")
	api.HandleFunc("/stats", s.handleStats).Methods("GET", "OPTIONS")
	api.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS")

	s.router.Handle("/metrics", s.metrics.handler()).Methods("GET")
	s.router.Handle("/", jsonMiddleware(http.HandlerFunc(s.handleRoot))).Methods("GET")
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting API server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

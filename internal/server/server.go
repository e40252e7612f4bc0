// Package server hosts the HTTP API: routing, middleware ordering and
// lifecycle. Handlers stay thin; domain behavior lives in the capability
// services they call.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"stash/internal/capabilities"
	"stash/internal/logging"
	"stash/internal/services"
)

const metricsPath = "/api/metrics"

// Version is the service version reported by the health endpoint.
var Version = "1.0.0"

// Server owns the HTTP listener and its handler chain.
type Server struct {
	bind         string
	logger       *slog.Logger
	capabilities *capabilities.Container

	listener net.Listener
	server   *http.Server
}

// New builds a server bound to the configured address.
func New(container *capabilities.Container, logger *slog.Logger) (*Server, error) {
	if container == nil {
		return nil, errors.New("capabilities are required")
	}
	bind := strings.TrimSpace(container.Config.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	srv := &Server{
		bind:         bind,
		logger:       logger,
		capabilities: container,
	}
	srv.server = &http.Server{
		Handler:           srv.buildHandler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start begins serving and returns once the listener is bound. The server
// shuts down when ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Stop() {
	if s.server != nil {
		start := time.Now()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
		s.log().Info("api server stopped", logging.Duration("drain", time.Since(start)))
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound listener address, useful when binding to port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

// buildHandler assembles the middleware chain: request ID tagging first,
// then metrics, then the routed handlers.
func (s *Server) buildHandler() http.Handler {
	handler := http.Handler(s.routes())
	handler = s.capabilities.Metrics.Middleware(metricsPath, handler)
	handler = requestID(handler)
	return handler
}

// requestID assigns every request a correlation identifier, honoring one
// supplied by the caller.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(services.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) log() *slog.Logger {
	return logging.NewComponentLogger(s.logger, "api-server")
}

package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hyperterse/dataexplorer/core/infrastructure/logging"
	"github.com/hyperterse/dataexplorer/core/infrastructure/transport/http/middleware"
)

// DefaultHost is the listen address used unless WithHost widens it. Every
// route runs queries with the forum's admin API key.
const DefaultHost = "127.0.0.1"

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	listener       net.Listener
	host           string
	port           string
	allowedOrigins []string
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithHost sets the interface to listen on, e.g. "0.0.0.0" for all of them.
func WithHost(host string) ServerOption {
	return func(s *Server) {
		if host != "" {
			s.host = host
		}
	}
}

// WithAllowedOrigins lists the browser origins allowed to call the API.
// Requests carrying any other Origin header are rejected.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// NewServer creates a new HTTP server with the middleware stack installed
func NewServer(port string, opts ...ServerOption) *Server {
	if port == "" {
		port = "8080"
	}

	s := &Server{
		router: chi.NewRouter(),
		host:   DefaultHost,
		port:   port,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	// Remote queries can be slow; the remote has its own limits
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(middleware.RejectForeignOrigins(s.allowedOrigins))
	// An empty AllowedOrigins list means "any origin" to cors, so the
	// handler is only installed for an explicit list.
	if len(s.allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Use(middleware.Metrics)
	r.Use(middleware.Tracing)

	return s
}

// Router returns the chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Addr returns the bound address once the server is listening, or the
// configured port otherwise
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.host, s.port)
}

// StartAsync binds the port and serves in the background
func (s *Server) StartAsync() error {
	log := logging.New("http")
	addr := net.JoinHostPort(s.host, s.port)
	log.Infof("Starting HTTP server on %s", addr)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Successf("HTTP server listening on http://%s", listener.Addr().String())
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop() error {
	log := logging.New("http")

	if s.server == nil {
		return nil
	}
	log.Infof("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Errorf("Error shutting down HTTP server: %v", err)
		if closeErr := s.server.Close(); closeErr != nil {
			log.Errorf("Error force closing HTTP server: %v", closeErr)
		}
		return err
	}

	log.Infof("HTTP server stopped")
	return nil
}

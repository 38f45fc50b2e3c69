package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	kvmcp "github.com/sanonone/kektorkv/internal/mcp"
	"github.com/sanonone/kektorkv/pkg/core"
)

// Options configures the HTTP surface.
type Options struct {
	Addr              string
	MaxBodyBytes      int64
	ReadHeaderTimeout time.Duration
	EnableMetrics     bool
	EnableMCP         bool
}

// Server holds the HTTP interface and the shared Store.
type Server struct {
	store        core.Store
	maxBodyBytes int64

	handler    http.Handler
	httpServer *http.Server
}

// NewServer wires the routes and middleware around store.
// The same store instance serves every request for the lifetime of the Server.
func NewServer(store core.Store, opts Options) (*Server, error) {
	if store == nil {
		return nil, errors.New("server: nil store")
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	s := &Server{
		store:        store,
		maxBodyBytes: opts.MaxBodyBytes,
	}

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if opts.EnableMetrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	if opts.EnableMCP {
		mux.Handle("/mcp", kvmcp.NewHTTPHandler(store))
	}

	// Chain middlewares: Recovery -> RequestID -> Logging -> Mux

	var handler http.Handler = mux
	handler = s.LoggingMiddleware(handler)
	handler = s.RequestIDMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	s.handler = handler
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
	}

	return s, nil
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and blocks until the server stops.
// It returns nil after a graceful Shutdown.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("HTTP server startup failed: %w", err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	slog.Info("HTTP server listening", "addr", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx expires.
// The store needs no teardown; its contents are dropped with the process.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Starting graceful shutdown of HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return nil
}

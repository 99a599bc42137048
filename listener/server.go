package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/0xalexb/pokedex/listener/middleware"
)

// ReadHeaderTimeout is the timeout for reading request headers.
const ReadHeaderTimeout = 10 * time.Second

// Server manages an HTTP server lifecycle.
type Server struct {
	name       string
	config     Config
	server     *http.Server
	listener   net.Listener
	onServeErr func()
}

// NewServer creates a Server named name serving handler wrapped in request
// ID, access logging, recovery, gzip and timeout middleware. Config defaults are
// applied before validation. The onServeErr callback, if non-nil, is called
// when the background Serve goroutine fails.
func NewServer(name string, handler http.Handler, cfg Config, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("listener %q: %w", name, err)
	}

	chain := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
	}

	if cfg.CompressMinSize > 0 {
		chain = append(chain, middleware.Compress(cfg.CompressMinSize))
	}

	wrapped := middleware.Chain(handler, append(chain, middleware.Timeout(cfg.HandlerTimeout))...)

	return &Server{
		name:   name,
		config: cfg,
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           wrapped,
			ReadHeaderTimeout: ReadHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		listener:   nil,
		onServeErr: onServeErr,
	}, nil
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.server.Addr
}

// Start begins listening on TCP and serves HTTP requests in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	listener, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		slog.Error("failed to listen", "name", s.name, "address", s.server.Addr, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = listener

	slog.Info("starting HTTP listener", "name", s.name, "address", listener.Addr().String())

	go func() {
		serveErr := s.server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("HTTP listener error", "name", s.name, "error", serveErr)

			if s.onServeErr != nil {
				s.onServeErr()
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("stopping HTTP listener", "name", s.name)

	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("shutdown failed", "name", s.name, "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}

// Package server hosts the dashboard HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"launchdash/internal/observability"
)

const defaultShutdownTimeout = 5 * time.Second

// OpHTTPRequest is the operation name recorded for every request.
const OpHTTPRequest = "http_request"

// Config defines the inputs for the server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Options carries the optional collaborators of a Server.
type Options struct {
	Logger  *zap.Logger
	Metrics observability.MetricsRecorder
	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
}

// Server serves the dashboard handler together with /healthz and /metrics.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	logger          *zap.Logger
	httpServer      *http.Server
}

// New builds a configured server around app.
func New(cfg Config, app http.Handler, opts Options) (*Server, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("http address is required")
	}
	if app == nil {
		return nil, errors.New("http handler is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.NoopRecorder{}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealth)
	if opts.MetricsHandler != nil {
		mux.Handle("/metrics", opts.MetricsHandler)
	}
	mux.Handle("/", app)

	return &Server{
		addr:            addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           withRequestLogging(mux, logger, metrics),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// ListenAndServe listens on the configured address and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	s.logger.Info("dashboard listening", zap.String("addr", ln.Addr().String()))
	go func() {
		serveErr <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		<-serveErr
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.logger.Info("dashboard stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

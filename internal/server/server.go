// ABOUTME: Server orchestrator that wires config into stores and the web UI
// ABOUTME: Manages the HTTP listener, health endpoints and graceful shutdown

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/afero"

	"github.com/2389/scribe/internal/auth"
	"github.com/2389/scribe/internal/config"
	"github.com/2389/scribe/internal/credentials"
	"github.com/2389/scribe/internal/documents"
	"github.com/2389/scribe/internal/session"
	"github.com/2389/scribe/internal/web"
)

const shutdownTimeout = 5 * time.Second

// Server owns the HTTP server and the stores behind it
type Server struct {
	config     *config.Config
	docs       *documents.Store
	users      *credentials.Store
	sessions   *session.Store
	httpServer *http.Server
	logger     *slog.Logger
}

// New builds a Server backed by the real filesystem
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	return NewWithFs(cfg, afero.NewOsFs(), logger)
}

// NewWithFs builds a Server whose documents and credentials live on fs.
// The document directory is created if it does not exist.
func NewWithFs(cfg *config.Config, fs afero.Fs, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	docs := documents.NewStore(fs, cfg.Storage.DataDir)
	if err := docs.EnsureDir(); err != nil {
		return nil, err
	}

	users := credentials.NewStore(fs, cfg.Storage.UsersFile)

	signer, err := auth.NewCookieSigner([]byte(cfg.Session.Secret))
	if err != nil {
		return nil, fmt.Errorf("creating cookie signer: %w", err)
	}

	sessions := session.NewStore(cfg.Session.TTL, cfg.Session.MaxSessions)

	s := &Server{
		config:   cfg,
		docs:     docs,
		users:    users,
		sessions: sessions,
		logger:   logger,
	}

	ui := web.New(web.Deps{
		Documents:   docs,
		Credentials: users,
		Sessions:    sessions,
		Signer:      signer,
		Logger:      logger,
	}, web.Config{
		CookieName: cfg.Session.CookieName,
		SessionTTL: cfg.Session.TTL,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/live", s.handleHealth)
	mux.HandleFunc("GET /health/ready", s.handleReady)
	mux.Handle("/", ui.Handler())

	s.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	logger.Info("server initialized",
		"data_dir", cfg.Storage.DataDir,
		"users_file", cfg.Storage.UsersFile,
		"session_ttl", cfg.Session.TTL,
	)

	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown, or an error if the server fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := s.startServer(ln)
	serverErr := s.waitForShutdownSignal(ctx, errCh)

	shutdownErr := s.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// startServer serves HTTP in a goroutine, returning the error channel
func (s *Server) startServer(ln net.Listener) chan error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	return errCh
}

// waitForShutdownSignal waits for context cancellation or server error.
func (s *Server) waitForShutdownSignal(ctx context.Context, errCh chan error) error {
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
		return nil
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	}
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// The run context is already canceled by the time it is called.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// appendCloseError appends an error with label if err is non-nil.
func appendCloseError(errs []error, label string, err error) []error {
	if err != nil {
		return append(errs, fmt.Errorf("%s: %w", label, err))
	}
	return errs
}

// Shutdown stops the HTTP server and the session sweeper
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	var errs []error
	errs = appendCloseError(errs, "HTTP shutdown", s.httpServer.Shutdown(ctx))

	s.sessions.Close()

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}
	return nil
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 OK while the document directory exists.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.docs.Ready(); err != nil {
		s.logger.Warn("document directory unavailable", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("document directory unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "ready (%d documents, %d sessions)", len(s.docs.List()), s.sessions.Len())
}

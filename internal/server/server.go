// Package server exposes the merge engine over an HTTP JSON API.
//
// The API mirrors the upload / merge / download flow of the web UI:
// clients upload pack archives into a session, request a merge with an
// explicit priority order and overrides, and download the resulting
// archive. Sessions live in isolated directories and are swept once
// they exceed the configured TTL.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/AsagiriBeta/PackMerger/internal/clock"
	"github.com/AsagiriBeta/PackMerger/internal/engine"
	"github.com/AsagiriBeta/PackMerger/internal/fsops"
	"github.com/AsagiriBeta/PackMerger/internal/hash"
)

// Server is the packmerger web service.
type Server struct {
	cfg      *Config
	logger   *log.Logger
	engine   *engine.Engine
	fs       fsops.FS
	hasher   hash.Hasher
	clk      clock.Clock
	sessions *SessionStore
	outputs  *SessionStore
}

// New creates a Server with the given configuration and dependencies.
func New(cfg *Config, fs fsops.FS, hasher hash.Hasher, clk clock.Clock) *Server {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "packmerger",
		ReportTimestamp: true,
	})

	return &Server{
		cfg:      cfg,
		logger:   logger,
		engine:   engine.New(),
		fs:       fs,
		hasher:   hasher,
		clk:      clk,
		sessions: NewSessionStore(fs, hasher, clk, cfg.Paths.Uploads, cfg.SessionTTL),
		outputs:  NewSessionStore(fs, hasher, clk, cfg.Paths.Outputs, cfg.SessionTTL),
	}
}

// routes builds the HTTP mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/merge", s.handleMerge)
	mux.HandleFunc("GET /api/download/{id}", s.handleDownload)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. Expired sessions are swept on startup and then once
// an hour.
func (s *Server) Run(ctx context.Context) error {
	if err := s.cfg.Paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure data directories: %w", err)
	}
	s.sweep()

	httpServer := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           http.MaxBytesHandler(s.routes(), s.cfg.MaxUploadBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case err := <-errCh:
			return fmt.Errorf("http server failed: %w", err)
		case <-ctx.Done():
			s.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down cleanly: %w", err)
			}
			return nil
		}
	}
}

// sweep removes expired sessions and outputs.
func (s *Server) sweep() {
	for name, store := range map[string]*SessionStore{"uploads": s.sessions, "outputs": s.outputs} {
		removed, err := store.Sweep()
		if err != nil {
			s.logger.Warn("sweep failed", "dir", name, "err", err)
			continue
		}
		if removed > 0 {
			s.logger.Info("swept expired entries", "dir", name, "removed", removed)
		}
	}
}

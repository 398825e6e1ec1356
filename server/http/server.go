// CLASSIFICATION: COMMUNITY
// Filename: server.go v0.3
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"staticd/internal/logging"
	"staticd/server/watch"
)

// Config holds server configuration.
type Config struct {
	Bind      string
	Port      int
	StaticDir string
	AccessLog string

	// RateLimit caps requests per second across all clients. Zero disables it.
	RateLimit rate.Limit
	RateBurst int

	AllowTraversal bool
	Watch          bool

	Logger logrus.FieldLogger
}

// Server wraps the HTTP server and router.
type Server struct {
	cfg    Config
	log    logrus.FieldLogger
	router *chi.Mux
	access io.Closer
}

// New returns an initialized server. StaticDir is resolved to an absolute
// path once and never changes afterwards.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	root, err := filepath.Abs(cfg.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("resolve static dir: %w", err)
	}
	cfg.StaticDir = root
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		cfg.Logger.WithField("dir", root).Warn("static dir is not a directory; requests will 404")
	}

	s := &Server{cfg: cfg, log: cfg.Logger}
	var access logrus.FieldLogger
	if cfg.AccessLog != "" {
		l, closer, err := logging.OpenAccessLog(cfg.AccessLog)
		if err != nil {
			return nil, err
		}
		access, s.access = l, closer
	}
	s.router = routes(cfg, access)
	return s, nil
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// StaticDir returns the absolute static root.
func (s *Server) StaticDir() string {
	return s.cfg.StaticDir
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Bind, fmt.Sprint(s.cfg.Port))
}

// Start begins serving until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. It returns
// http.ErrServerClosed after a graceful shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.Close()

	if s.cfg.Watch {
		w, err := watch.New(s.cfg.StaticDir, s.log)
		if err != nil {
			s.log.WithError(err).Warn("static watcher disabled")
		} else {
			defer w.Close()
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					s.log.WithError(err).Warn("static watcher stopped")
				}
			}()
		}
	}

	srv := &http.Server{Handler: s.router}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.WithFields(logrus.Fields{"addr": ln.Addr().String(), "static_dir": s.cfg.StaticDir}).Info("staticd listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	ctxTo, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxTo); err != nil {
		s.log.WithError(err).Warn("shutdown")
	}
	return <-errc
}

// Close releases the access log, if any.
func (s *Server) Close() error {
	if s.access == nil {
		return nil
	}
	err := s.access.Close()
	s.access = nil
	return err
}

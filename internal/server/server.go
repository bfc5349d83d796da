// Package server serves a built site locally.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const notFoundPage = "404.html"

// Server wires the static file handler, metrics and middleware together.
type Server struct {
	dir     string
	router  chi.Router
	metrics *Metrics
	logger  *slog.Logger
}

// New builds a server for the site in dir. Metrics are registered on a
// registry owned by the server.
func New(dir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		dir:     dir,
		metrics: NewMetrics(reg),
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.countRequests)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/*", s.serveSite)
	r.Head("/*", s.serveSite)
	s.router = r
	return s
}

// Metrics exposes the server metrics so builds can be recorded.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving site", "dir", s.dir, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(status)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status)
	})
}

func (s *Server) serveSite(w http.ResponseWriter, r *http.Request) {
	// Builds replace files in place, so nothing may be cached.
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	name := path.Clean("/" + r.URL.Path)
	full := filepath.Join(s.dir, filepath.FromSlash(name))

	info, err := os.Stat(full)
	switch {
	case err != nil:
		s.notFound(w, r)
		return
	case info.IsDir():
		if !strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
			return
		}
		// No directory listings: a directory is served only through its index.
		full = filepath.Join(full, "index.html")
		if _, err := os.Stat(full); err != nil {
			s.notFound(w, r)
			return
		}
	}
	http.ServeFile(w, r, full)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(filepath.Join(s.dir, notFoundPage))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(data)
}

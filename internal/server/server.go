// Package server exposes the content index over HTTP: tree, page, search
// and reload endpoints plus an SSE change feed for live-updating clients.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/journal"
	"github.com/MonaAghili/public-notes/internal/logfields"
	"github.com/MonaAghili/public-notes/internal/metrics"
	"github.com/MonaAghili/public-notes/internal/nav"
	"github.com/MonaAghili/public-notes/internal/note"
	"github.com/MonaAghili/public-notes/internal/search"
)

// ContentIndex is the query surface the server reads. Satisfied by
// *index.Index; the server never mutates except through Reload.
type ContentIndex interface {
	Tree() []*nav.Node
	Page(slug string) (*note.Record, error)
	Search(query string) ([]search.Result, error)
	Reload(ctx context.Context) error
	Len() int
	Revision() uint64
	LastSync() time.Time
}

// Server serves the query API for one content index.
type Server struct {
	addr           string
	index          ContentIndex
	journal        *journal.Journal
	hub            *Hub
	metricsHandler http.Handler
	httpSrv        *http.Server
	started        time.Time
}

// Option configures optional server collaborators.
type Option func(*Server)

// WithJournal enables the journal tail in the status endpoint.
func WithJournal(j *journal.Journal) Option {
	return func(s *Server) { s.journal = j }
}

// WithMetrics mounts the Prometheus exposition handler at /metrics.
func WithMetrics(reg *prom.Registry) Option {
	return func(s *Server) {
		s.metricsHandler = metrics.HTTPHandler(reg)
	}
}

// New creates a Server for the given index. The returned server's Hub is
// wired as the index change hook by the caller.
func New(addr string, ix ContentIndex, options ...Option) *Server {
	s := &Server{
		addr:  addr,
		index: ix,
		hub:   NewHub(),
	}
	for _, opt := range options {
		opt(s)
	}

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Hub returns the SSE hub so the index change hook can broadcast into it.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Get("/pages/*", s.handlePage)
		r.Get("/search", s.handleSearch)
		r.Post("/reload", s.handleReload)
		r.Get("/status", s.handleStatus)
	})
	r.Get("/events", s.hub.ServeHTTP)
	r.Get("/healthz", s.handleHealthz)
	if s.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}
	return r
}

// Start binds the listener and serves until ctx is cancelled. Binding
// happens before the first Serve call so port conflicts surface as a
// startup error rather than a dead server.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrap(err, errors.CategoryServer, errors.SeverityFatal, "binding listener failed").
			WithContext("addr", s.addr)
	}
	s.started = time.Now()
	slog.Info("server listening", logfields.Addr(listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if serveErr := s.httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			errCh <- serveErr
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err, ok := <-errCh:
		if ok && err != nil {
			return errors.Wrap(err, errors.CategoryServer, errors.SeverityFatal, "server failed")
		}
		return nil
	}
}

// Shutdown drains in-flight requests and closes the SSE hub.
func (s *Server) Shutdown() error {
	s.hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}

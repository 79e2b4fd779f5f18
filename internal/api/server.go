// Package api exposes sessions and frame artifacts over HTTP.
//
// The server stores uploaded session documents in a session.Store and
// renders individual frames on demand through the shared pipeline runner,
// so CLI and HTTP rendering produce identical artifacts and share the
// artifact cache.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/algoviz/algoviz/pkg/observability"
	"github.com/algoviz/algoviz/pkg/pipeline"
	"github.com/algoviz/algoviz/pkg/session"
)

// maxSessionBody caps uploaded session documents at 32 MiB.
const maxSessionBody = 32 << 20

// Server is the HTTP API server.
type Server struct {
	store  session.Store
	runner *pipeline.Runner
	addr   string
	logger *log.Logger
}

// Config holds configuration for the API server.
type Config struct {
	Addr   string
	Store  session.Store
	Runner *pipeline.Runner
	Logger *log.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  cfg.Store,
		runner: cfg.Runner,
		addr:   cfg.Addr,
		logger: logger,
	}
}

// Routes builds the chi router with all endpoints registered.
func (s *Server) Routes() chi.Router {
	r := chi.NewMux()
	r.Use(
		s.observe,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/", s.handleListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/frames/{index}", s.handleRenderFrame)
		})
	})

	return r
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// observe is the request logging middleware. It feeds the observability
// hooks so metrics backends can be attached without touching handlers.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Millisecond))
	})
}

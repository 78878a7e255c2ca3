// Package server exposes a countdown Builder over HTTP.
//
// Routes:
//
//	GET /countdown  rendered image, or a JSON error
//	GET /healthz    {"ok":true}
//	GET /           plain-text usage
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/countdown"
)

// Server routes countdown requests to a Builder.
type Server struct {
	builder *countdown.Builder
	logger  *slog.Logger
	router  *chi.Mux
}

// New creates a Server. A nil logger discards logs.
func New(b *countdown.Builder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{builder: b, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/countdown", s.handleCountdown)
	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleUsage)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	resp, err := s.builder.Build(r.Context(), r.URL.Query())
	if err != nil {
		s.logger.Error("countdown rendering failed",
			"request_id", middleware.GetReqID(r.Context()), "error", err)
		resp = countdown.Failed()
	}
	write(w, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", countdown.ContentTypeJSON)
	w.Write([]byte(`{"ok":true}`))
}

func (s *Server) handleUsage(w http.ResponseWriter, _ *http.Request) {
	cfg := s.builder.Config()
	lines := []string{
		"Countdown image service",
		"Usage:",
		"/countdown?target=2024-12-31T23:59:59Z&label=Sale%20ends%20in&accent=%23f472b6&bg=%230f172a&animated=1",
		"Cache-Control: " + cfg.CacheControl(),
		fmt.Sprintf("GIF allowed: %t", cfg.AllowAnimation),
		fmt.Sprintf("Bucket seconds: %d", cfg.BucketSeconds),
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(strings.Join(lines, "\n")))
}

func write(w http.ResponseWriter, resp *countdown.Response) {
	h := w.Header()
	for k, v := range resp.Header {
		h[k] = v
	}
	w.WriteHeader(resp.Status)
	w.Write(resp.Body)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

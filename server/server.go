// Package server exposes the knowledge base over HTTP. Routing is handled
// by chi; handlers translate between JSON payloads and the pipeline.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sitekb/sitekb"
	"github.com/sitekb/sitekb/pipeline"
)

// DefaultShutdownTimeout bounds how long a graceful shutdown waits for
// in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// KnowledgeBase is the pipeline surface the HTTP handlers consume.
// *pipeline.Pipeline satisfies it.
type KnowledgeBase interface {
	Crawl(ctx context.Context, baseURL string, maxPages, maxDepth int) (*sitekb.CrawlResult, error)
	Ingest(ctx context.Context, opts pipeline.IngestOptions) (*pipeline.IngestResult, error)
	Retrieve(ctx context.Context, query string, topK int) []sitekb.RetrievalResult
	Answer(ctx context.Context, question string, topK int, useLLM bool) *sitekb.Answer
	Stats(ctx context.Context) (*sitekb.CollectionStats, error)
}

var _ KnowledgeBase = (*pipeline.Pipeline)(nil)

// Server serves the knowledge base API.
type Server struct {
	server *http.Server
	kb     KnowledgeBase
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request failures and lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer returns a Server for kb listening on addr.
func NewServer(addr string, kb KnowledgeBase, opts ...Option) *Server {
	s := &Server{
		kb:     kb,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}
	return s
}

// routes assembles the router. All knowledge base endpoints live under /api.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/crawl/test", s.handleCrawlTest)
		r.Post("/ingest", s.handleIngest)
		r.Post("/crawl", s.handleCrawl)
		r.Post("/query", s.handleQuery)
		r.Post("/ask", s.handleAsk)
		r.Post("/retrieval/test", s.handleRetrievalTest)
		r.Get("/kb/stats", s.handleStats)
	})

	return r
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ListenAndServe runs the server until it fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON writes v as the JSON response body.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", "error", err)
	}
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Detail string `json:"detail"`
}

// respondError maps an application error to an HTTP status with a JSON
// detail body. Empty-input and validation failures are the client's fault;
// everything else is reported as a server error with a masked message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := sitekb.ErrorCode(err)

	status := http.StatusInternalServerError
	switch code {
	case sitekb.EEMPTY, sitekb.EINVALID:
		status = http.StatusBadRequest
	case sitekb.ENOTFOUND:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	s.respondJSON(w, status, errorResponse{Detail: sitekb.ErrorMessage(err)})
}

// decode parses the JSON request body into v. A failure is reported to the
// client and decode returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return false
	}
	return true
}

// Package api exposes classification, extraction and analysis over HTTP so a
// browser panel can push the live job page to jobfit.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/rsilvagit/jobfit/internal/analysis"
	"github.com/rsilvagit/jobfit/internal/extractor"
	"github.com/rsilvagit/jobfit/internal/session"
)

// maxDocumentBytes bounds pushed documents and uploaded resumes.
const maxDocumentBytes = 10 << 20

type Options struct {
	Extractor      *extractor.Extractor
	Publisher      session.Publisher
	Submitter      *analysis.Submitter
	SettleDelay    time.Duration
	AllowedOrigins []string
	Logger         *zap.Logger
	// Sleep replaces the session wait; nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

type Server struct {
	router    *chi.Mux
	extractor *extractor.Extractor
	publisher session.Publisher
	submitter *analysis.Submitter
	settle    time.Duration
	origins   []string
	sleep     func(ctx context.Context, d time.Duration) error
	logger    *zap.Logger
}

func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Extractor == nil {
		opts.Extractor = extractor.New(extractor.Options{Logger: opts.Logger})
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	s := &Server{
		router:    chi.NewRouter(),
		extractor: opts.Extractor,
		publisher: opts.Publisher,
		submitter: opts.Submitter,
		settle:    opts.SettleDelay,
		origins:   opts.AllowedOrigins,
		sleep:     opts.Sleep,
		logger:    opts.Logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Post("/classify", s.handleClassify)
	s.router.Post("/extract", s.handleExtract)
	s.router.Post("/analyze", s.handleAnalyze)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lexsift/lexsift/internal/cellar"
	"github.com/lexsift/lexsift/internal/celex"
	"github.com/lexsift/lexsift/internal/config"
	"github.com/lexsift/lexsift/internal/pipeline"
)

// Server is the HTTP API server for lexsift.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	cellar       *cellar.Client
	sparql       celex.Runner
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, cellarClient *cellar.Client, sparqlRunner celex.Runner, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		cellar:       cellarClient,
		sparql:       sparqlRunner,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.LexsiftAPIKey, s.log))

		r.Post("/api/extract", s.handleExtract)
		r.Post("/api/split", s.handleSplit)
		r.Get("/api/celex/guess", s.handleCelexGuess)

		r.Post("/api/documents", s.handleSubmitDocuments)
		r.Get("/api/documents/{jobID}/status", s.handleJobStatus)
		r.Get("/api/documents/{jobID}/rows", s.handleJobRows)

		r.Get("/api/stats/fetch", s.handleFetchStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

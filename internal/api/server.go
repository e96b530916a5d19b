package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/argtex/internal/config"
	"github.com/dgallion1/argtex/internal/document"
	"github.com/dgallion1/argtex/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for argtex.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
	format       document.Format
}

// NewServer creates and configures the HTTP server. cfg must have passed
// Validate.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	format, err := cfg.Output()
	if err != nil {
		format = document.FormatLaTeX
	}
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
		format:       format,
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
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/translate", s.handleTranslate)

		r.Post("/api/jobs", s.handleSubmitJobs)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/jobs/{jobID}/output", s.handleJobOutput)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// requestFormat resolves ?format=, falling back to the configured default.
func (s *Server) requestFormat(r *http.Request) (document.Format, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		v = r.FormValue("format")
	}
	if v == "" {
		return s.format, nil
	}
	return document.ParseFormat(v)
}

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openfunnel/intentd/internal/engine"
	"github.com/openfunnel/intentd/internal/store"
)

// Server is the intentd HTTP API server: capture entry points, read API, and
// health.
type Server struct {
	db      *store.DB
	engine  *engine.Engine
	sched   *engine.Scheduler
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server.
func New(db *store.DB, eng *engine.Engine, sched *engine.Scheduler, version string) *Server {
	s := &Server{
		db:      db,
		engine:  eng,
		sched:   sched,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/capture", func(r chi.Router) {
			r.Post("/website", s.handleCaptureWebsite)
			r.Post("/repository", s.handleCaptureRepository)
			r.Post("/documentation", s.handleCaptureDocumentation)
			r.Post("/community", s.handleCaptureCommunity)
			r.Post("/content", s.handleCaptureContent)
			r.Post("/competitive", s.handleCaptureCompetitive)
		})

		r.Route("/identities/{identityID}", func(r chi.Router) {
			r.Get("/signals", s.handleGetSignals)
			r.Get("/score", s.handleGetScore)
			r.Get("/competitive", s.handleGetCompetitive)
			r.Post("/competitive/analyze", s.handleAnalyzeCompetitive)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
		"pending": s.sched.Pending(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

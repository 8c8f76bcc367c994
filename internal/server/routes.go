package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openfunnel/intentd/internal/classify"
	"github.com/openfunnel/intentd/internal/intent"
)

// recordCapture persists the classified signals, queues the identity for the
// next scoring tick, and answers the caller synchronously. Scoring never
// happens on the capture path.
func (s *Server) recordCapture(w http.ResponseWriter, identityID string, signals []intent.Signal) {
	if identityID == "" {
		writeError(w, http.StatusBadRequest, "identity_id required")
		return
	}

	if len(signals) > 0 {
		if err := s.db.AppendSignals(signals, s.engine.Now()); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.sched.Enqueue(identityID)
	}

	if signals == nil {
		signals = []intent.Signal{}
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"identity_id": identityID,
		"signals":     signals,
	})
}

func (s *Server) handleCaptureWebsite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IdentityID string `json:"identity_id"`
		classify.WebsiteVisit
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	signals := classify.Website(req.IdentityID, req.WebsiteVisit, s.engine.Now())
	s.recordCapture(w, req.IdentityID, signals)
}

func (s *Server) handleCaptureRepository(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IdentityID string `json:"identity_id"`
		classify.RepositoryActivity
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	signals := classify.Repository(req.IdentityID, req.RepositoryActivity, s.engine.Now())
	s.recordCapture(w, req.IdentityID, signals)
}

func (s *Server) handleCaptureDocumentation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IdentityID string `json:"identity_id"`
		classify.DocumentationView
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	signals := classify.Documentation(req.IdentityID, req.DocumentationView, s.engine.Now())
	s.recordCapture(w, req.IdentityID, signals)
}

func (s *Server) handleCaptureCommunity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IdentityID string `json:"identity_id"`
		classify.CommunityActivity
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	signals := classify.Community(req.IdentityID, req.CommunityActivity, s.engine.Now())
	s.recordCapture(w, req.IdentityID, signals)
}

func (s *Server) handleCaptureContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IdentityID string `json:"identity_id"`
		classify.ContentEngagement
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	signals := classify.Content(req.IdentityID, req.ContentEngagement, s.engine.Now())
	s.recordCapture(w, req.IdentityID, signals)
}

func (s *Server) handleCaptureCompetitive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IdentityID string `json:"identity_id"`
		classify.CompetitiveActivity
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	signals := classify.Competitive(req.IdentityID, req.CompetitiveActivity, s.engine.Now())
	s.recordCapture(w, req.IdentityID, signals)
}

func (s *Server) handleGetSignals(w http.ResponseWriter, r *http.Request) {
	identityID := chi.URLParam(r, "identityID")

	signals, err := s.db.SignalsFor(identityID, s.engine.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if signals == nil {
		signals = []intent.Signal{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"identity_id": identityID,
		"signals":     signals,
	})
}

func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	identityID := chi.URLParam(r, "identityID")

	score, err := s.db.GetScore(identityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if score == nil {
		writeError(w, http.StatusNotFound, "no score for identity")
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (s *Server) handleGetCompetitive(w http.ResponseWriter, r *http.Request) {
	identityID := chi.URLParam(r, "identityID")

	intel, err := s.db.GetIntel(identityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if intel == nil {
		writeError(w, http.StatusNotFound, "no competitive intel for identity")
		return
	}
	writeJSON(w, http.StatusOK, intel)
}

func (s *Server) handleAnalyzeCompetitive(w http.ResponseWriter, r *http.Request) {
	identityID := chi.URLParam(r, "identityID")

	intel, err := s.engine.AnalyzeCompetitive(r.Context(), identityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if intel == nil {
		writeError(w, http.StatusNotFound, "no competitive signals for identity")
		return
	}
	writeJSON(w, http.StatusOK, intel)
}

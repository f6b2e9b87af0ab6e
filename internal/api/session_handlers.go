package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examace/examace/internal/logger"
)

type startSessionRequest struct {
	ExamID    string `json:"exam_id"`
	SectionID string `json:"section_id"`
	TestID    string `json:"test_id"`
	TopicID   string `json:"topic_id,omitempty"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	userID := userIDFromContext(r.Context())
	snap, err := s.SessionService.StartSession(r.Context(), userID, req.ExamID, req.SectionID, req.TestID, req.TopicID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, snap)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	snap, err := s.SessionService.GetSession(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, snap)
}

type answerRequest struct {
	Index  *int `json:"index,omitempty"`
	Option int  `json:"option"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	userID := userIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	// An explicit index jumps first, so answers can land on any question.
	if req.Index != nil {
		if _, err := s.SessionService.Navigate(r.Context(), userID, sessionID, "jump", *req.Index); err != nil {
			handleError(w, r, err)
			return
		}
	}

	snap, err := s.SessionService.SelectAnswer(r.Context(), userID, sessionID, req.Option)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, snap)
}

type navigateRequest struct {
	Op    string `json:"op"`
	Index int    `json:"index,omitempty"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decode(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	userID := userIDFromContext(r.Context())
	snap, err := s.SessionService.Navigate(r.Context(), userID, chi.URLParam(r, "id"), req.Op, req.Index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, snap)
}

func (s *Server) handleToggleFlag(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	snap, err := s.SessionService.ToggleFlag(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, snap)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if err := s.SessionService.Abandon(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]string{"status": "abandoned"})
}

func (s *Server) handleSubmitSession(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	log := logger.FromContext(r.Context())
	log.Info("submitting session: session_id=%s", sessionID)

	snap, analysis, err := s.SessionService.Submit(r.Context(), userID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]any{
		"result":   snap.Result,
		"analysis": analysis,
	})
}

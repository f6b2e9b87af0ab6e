package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
)

func (s *Server) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.AttemptFilter{
		UserID:    userIDFromContext(r.Context()),
		ExamID:    q.Get("exam"),
		SectionID: q.Get("section"),
		TopicID:   q.Get("topic"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if from, err := time.Parse(time.RFC3339, q.Get("from")); err == nil {
		filter.StartDate = &from
	}
	if to, err := time.Parse(time.RFC3339, q.Get("to")); err == nil {
		filter.EndDate = &to
	}

	attempts, total, err := s.AttemptService.ListAttempts(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]any{
		"attempts": attempts,
		"total":    total,
	})
}

func (s *Server) handleGetExamStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	examID := chi.URLParam(r, "examID")

	stats, err := s.StatsService.GetExamStats(r.Context(), userID, examID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, stats)
}

func (s *Server) handleListUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.ListUserStats(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, stats)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.StatsService.GetProfile(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, profile)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	examID := chi.URLParam(r, "examID")

	limit := 0
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	entries, err := s.StatsService.Leaderboard(r.Context(), examID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, entries)
}

func (s *Server) handleClearUserData(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	logger.FromContext(r.Context()).Info("clearing user data")

	if err := s.StatsService.ClearUserData(r.Context(), userID); err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, map[string]any{"cleared": true})
}

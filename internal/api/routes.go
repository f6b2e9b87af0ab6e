package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Post("/auth/otp/send", s.handleOTPSend)
	r.Post("/auth/otp/verify", s.handleOTPVerify)
	r.Post("/auth/pin/verify", s.handlePINVerify)

	r.Get("/exams", s.handleListExams)
	r.Get("/exams/{examID}", s.handleGetExam)
	r.Get("/exams/{examID}/tests/{sectionID}/{testID}/questions", s.handleTestQuestions)
	r.Get("/exams/{examID}/tests/{sectionID}/{testID}/duration", s.handleTestDuration)

	r.Get("/leaderboard/{examID}", s.handleLeaderboard)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Post("/auth/pin/set", s.handlePINSet)
		r.Post("/auth/logout", s.handleLogout)

		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Post("/sessions/{id}/answer", s.handleAnswer)
		r.Post("/sessions/{id}/navigate", s.handleNavigate)
		r.Post("/sessions/{id}/flag", s.handleToggleFlag)
		r.Post("/sessions/{id}/submit", s.handleSubmitSession)
		r.Delete("/sessions/{id}", s.handleAbandonSession)

		r.Get("/attempts", s.handleListAttempts)
		r.Get("/stats", s.handleListUserStats)
		r.Get("/stats/{examID}", s.handleGetExamStats)
		r.Get("/profile", s.handleGetProfile)
		r.Delete("/profile/data", s.handleClearUserData)
	})

	return r
}

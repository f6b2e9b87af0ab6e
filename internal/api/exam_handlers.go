package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examace/examace/internal/logger"
)

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	exams := s.ExamService.ListExams(r.Context())
	respond(w, r, http.StatusOK, exams)
}

func (s *Server) handleGetExam(w http.ResponseWriter, r *http.Request) {
	examID := chi.URLParam(r, "examID")

	exam, err := s.ExamService.GetExam(r.Context(), examID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, exam)
}

// handleTestQuestions serves the question list for one test. Unknown tests
// yield an empty list, not an error: the caller renders an empty paper.
func (s *Server) handleTestQuestions(w http.ResponseWriter, r *http.Request) {
	examID := chi.URLParam(r, "examID")
	sectionID := chi.URLParam(r, "sectionID")
	testID := chi.URLParam(r, "testID")
	topicID := r.URL.Query().Get("topic")

	log := logger.FromContext(r.Context())
	log.Debug("fetching questions: exam_id=%s, section_id=%s, test_id=%s", examID, sectionID, testID)

	questions := s.Catalog.QuestionsForTest(examID, sectionID, testID, topicID)
	respond(w, r, http.StatusOK, questions)
}

func (s *Server) handleTestDuration(w http.ResponseWriter, r *http.Request) {
	examID := chi.URLParam(r, "examID")
	sectionID := chi.URLParam(r, "sectionID")
	testID := chi.URLParam(r, "testID")
	topicID := r.URL.Query().Get("topic")

	duration := s.Catalog.TestDuration(examID, sectionID, testID, topicID)
	respond(w, r, http.StatusOK, map[string]int{"duration_minutes": duration})
}

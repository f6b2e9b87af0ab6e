package services

import (
	"context"

	"github.com/examace/examace/internal/catalog"
	"github.com/examace/examace/internal/errors"
	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
)

// ExamService exposes the generated exam catalog.
type ExamService interface {
	ListExams(ctx context.Context) []models.Exam
	GetExam(ctx context.Context, examID string) (*models.Exam, error)
}

type examService struct {
	catalog *catalog.Catalog
}

// NewExamService creates a new ExamService
func NewExamService(c *catalog.Catalog) ExamService {
	return &examService{catalog: c}
}

func (s *examService) ListExams(ctx context.Context) []models.Exam {
	logger.FromContext(ctx).Debug("listing exams")
	return s.catalog.Exams()
}

func (s *examService) GetExam(ctx context.Context, examID string) (*models.Exam, error) {
	logger.FromContext(ctx).Debug("getting exam: exam_id=%s", examID)

	exam := s.catalog.Exam(examID)
	if exam == nil {
		return nil, errors.NewNotFoundError("exam", examID)
	}
	return exam, nil
}

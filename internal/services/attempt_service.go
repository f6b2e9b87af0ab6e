package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/examace/examace/internal/errors"
	"github.com/examace/examace/internal/jobs"
	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
	"github.com/examace/examace/internal/repository"
)

// AttemptService handles the attempt history: recording submitted tests and
// answering history queries.
type AttemptService interface {
	Record(ctx context.Context, attempt models.Attempt) (*models.Attempt, error)
	GetAttempt(ctx context.Context, id, userID string) (*models.Attempt, error)
	ListAttempts(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, int, error)
}

type attemptService struct {
	attemptRepo repository.AttemptRepository
	jobQueue    jobs.JobQueue
}

// NewAttemptService creates a new AttemptService
func NewAttemptService(attemptRepo repository.AttemptRepository, jobQueue jobs.JobQueue) AttemptService {
	return &attemptService{attemptRepo: attemptRepo, jobQueue: jobQueue}
}

func (s *attemptService) Record(ctx context.Context, attempt models.Attempt) (*models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording attempt: user_id=%s, exam_id=%s, test_id=%s, score=%d",
		attempt.UserID, attempt.ExamID, attempt.TestID, attempt.Score)

	if attempt.UserID == "" {
		return nil, errors.NewValidationError("user_id", "is required")
	}
	if attempt.ExamID == "" {
		return nil, errors.NewValidationError("exam_id", "is required")
	}
	if attempt.Score < 0 || attempt.Score > 100 {
		return nil, errors.NewValidationError("score", "must be between 0 and 100")
	}
	if attempt.CorrectAnswers+attempt.WrongAnswers+attempt.SkippedAnswers != attempt.TotalQuestions {
		return nil, errors.NewValidationError("total_questions", "answer counts do not add up")
	}

	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.CompletedAt.IsZero() {
		attempt.CompletedAt = time.Now()
	}

	if err := s.attemptRepo.Insert(ctx, attempt); err != nil {
		log.Error("failed to insert attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// Rollups refresh in the background. A full queue only delays the
	// refresh until the next recorded attempt.
	if err := s.jobQueue.EnqueueStatsRefresh(attempt.UserID, attempt.ExamID); err != nil {
		log.Error("failed to enqueue stats refresh: %v", err)
	}
	if err := s.jobQueue.EnqueueRankRefresh(attempt.ExamID); err != nil {
		log.Error("failed to enqueue rank refresh: %v", err)
	}
	return &attempt, nil
}

func (s *attemptService) GetAttempt(ctx context.Context, id, userID string) (*models.Attempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting attempt: id=%s", id)

	attempt, err := s.attemptRepo.Get(ctx, id, userID)
	if err != nil {
		log.Error("failed to get attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if attempt == nil {
		return nil, errors.NewNotFoundError("attempt", id)
	}
	return attempt, nil
}

func (s *attemptService) ListAttempts(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing attempts: user_id=%s, exam_id=%s, limit=%d", filter.UserID, filter.ExamID, filter.Limit)

	attempts, err := s.attemptRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.attemptRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count attempts: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return attempts, total, nil
}

package services

import (
	"context"

	"github.com/examace/examace/internal/errors"
	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
	"github.com/examace/examace/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetExamStats(ctx context.Context, userID, examID string) (*models.ExamStats, error)
	ListUserStats(ctx context.Context, userID string) ([]models.ExamStats, error)
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	Leaderboard(ctx context.Context, examID string, limit int) ([]models.ExamStats, error)
	ClearUserData(ctx context.Context, userID string) error
}

type statsService struct {
	attemptRepo repository.AttemptRepository
	statsRepo   repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(attemptRepo repository.AttemptRepository, statsRepo repository.StatsRepository) StatsService {
	return &statsService{attemptRepo: attemptRepo, statsRepo: statsRepo}
}

func (s *statsService) GetExamStats(ctx context.Context, userID, examID string) (*models.ExamStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting exam stats: user_id=%s, exam_id=%s", userID, examID)

	stats, err := s.statsRepo.GetExamStats(ctx, userID, examID)
	if err != nil {
		log.Error("failed to get exam stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stats == nil {
		// No tests taken yet. Callers render the empty state rather than an
		// error page.
		return &models.ExamStats{UserID: userID, ExamID: examID}, nil
	}
	return stats, nil
}

func (s *statsService) ListUserStats(ctx context.Context, userID string) ([]models.ExamStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing user stats: user_id=%s", userID)

	stats, err := s.statsRepo.ListExamStatsByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list user stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile: user_id=%s", userID)

	profile, err := s.statsRepo.GetProfile(ctx, userID)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", userID)
	}
	return profile, nil
}

func (s *statsService) Leaderboard(ctx context.Context, examID string, limit int) ([]models.ExamStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching leaderboard: exam_id=%s, limit=%d", examID, limit)

	entries, err := s.statsRepo.Leaderboard(ctx, examID, limit)
	if err != nil {
		log.Error("failed to fetch leaderboard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}

// ClearUserData wipes the user's attempt history, rollups, and profile while
// keeping the account itself.
func (s *statsService) ClearUserData(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)
	log.Info("clearing user data: user_id=%s", userID)

	if err := s.attemptRepo.DeleteByUser(ctx, userID); err != nil {
		log.Error("failed to delete attempts: %v", err)
		return errors.NewInternalError(err)
	}
	if err := s.statsRepo.DeleteByUser(ctx, userID); err != nil {
		log.Error("failed to delete stats: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

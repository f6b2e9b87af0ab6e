package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/examace/examace/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) UpsertExamStats(ctx context.Context, stats models.ExamStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) GetExamStats(ctx context.Context, userID, examID string) (*models.ExamStats, error) {
	args := m.Called(ctx, userID, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamStats), args.Error(1)
}

func (m *MockStatsRepository) ListExamStatsByUser(ctx context.Context, userID string) ([]models.ExamStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExamStats), args.Error(1)
}

func (m *MockStatsRepository) ListExamStatsByExam(ctx context.Context, examID string) ([]models.ExamStats, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExamStats), args.Error(1)
}

func (m *MockStatsRepository) UpdateRanks(ctx context.Context, rollups []models.ExamStats) error {
	args := m.Called(ctx, rollups)
	return args.Error(0)
}

func (m *MockStatsRepository) Leaderboard(ctx context.Context, examID string, limit int) ([]models.ExamStats, error) {
	args := m.Called(ctx, examID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExamStats), args.Error(1)
}

func (m *MockStatsRepository) UpsertProfile(ctx context.Context, profile models.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockStatsRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockStatsRepository) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

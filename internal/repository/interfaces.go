package repository

import (
	"context"

	"github.com/examace/examace/internal/models"
)

// AttemptRepository handles attempt-history data access. Attempts are
// append-only: there is no update path.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) error
	Get(ctx context.Context, id, userID string) (*models.Attempt, error)
	List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error)
	Count(ctx context.Context, filter models.AttemptFilter) (int, error)
	// HistoryAsc returns the full history for one (user, exam) pair ordered
	// by completion time ascending, as the aggregator consumes it.
	HistoryAsc(ctx context.Context, userID, examID string) ([]models.Attempt, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// StatsRepository handles rollup and profile data access.
type StatsRepository interface {
	UpsertExamStats(ctx context.Context, stats models.ExamStats) error
	GetExamStats(ctx context.Context, userID, examID string) (*models.ExamStats, error)
	ListExamStatsByUser(ctx context.Context, userID string) ([]models.ExamStats, error)
	ListExamStatsByExam(ctx context.Context, examID string) ([]models.ExamStats, error)
	UpdateRanks(ctx context.Context, rollups []models.ExamStats) error
	Leaderboard(ctx context.Context, examID string, limit int) ([]models.ExamStats, error)
	UpsertProfile(ctx context.Context, profile models.UserProfile) error
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// UserRepository handles account data access.
type UserRepository interface {
	UpsertByPhone(ctx context.Context, id, phone string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	SetPIN(ctx context.Context, id, pin string) error
	Delete(ctx context.Context, id string) error
}

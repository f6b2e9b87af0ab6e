package jobs

import (
	"github.com/examace/examace/internal/repository"
	"github.com/examace/examace/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool        *worker.Pool
	attemptRepo repository.AttemptRepository
	statsRepo   repository.StatsRepository
	userRepo    repository.UserRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	pool *worker.Pool,
	attemptRepo repository.AttemptRepository,
	statsRepo repository.StatsRepository,
	userRepo repository.UserRepository,
) JobQueue {
	return &WorkerQueue{
		pool:        pool,
		attemptRepo: attemptRepo,
		statsRepo:   statsRepo,
		userRepo:    userRepo,
	}
}

func (q *WorkerQueue) EnqueueStatsRefresh(userID, examID string) error {
	return q.pool.Submit(&worker.RefreshStatsJob{
		AttemptRepo: q.attemptRepo,
		StatsRepo:   q.statsRepo,
		UserRepo:    q.userRepo,
		UserID:      userID,
		ExamID:      examID,
	})
}

func (q *WorkerQueue) EnqueueRankRefresh(examID string) error {
	return q.pool.Submit(&worker.RefreshRanksJob{
		StatsRepo: q.statsRepo,
		ExamID:    examID,
	})
}

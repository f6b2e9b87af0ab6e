package worker

import (
	"context"
	"math/rand"
	"time"

	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
	"github.com/examace/examace/internal/repository"
	"github.com/examace/examace/internal/stats"
)

// RefreshStatsJob rebuilds the rollup and profile for one user from their
// full attempt history. It runs after every recorded attempt and is safe to
// run redundantly: the computation is a pure function of the history.
type RefreshStatsJob struct {
	AttemptRepo repository.AttemptRepository
	StatsRepo   repository.StatsRepository
	UserRepo    repository.UserRepository
	UserID      string
	ExamID      string
}

func (j *RefreshStatsJob) Name() string { return "refresh_stats" }

func (j *RefreshStatsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": j.UserID,
		"exam_id": j.ExamID,
	})
	log.Info("refreshing stats")

	history, err := j.AttemptRepo.HistoryAsc(ctx, j.UserID, j.ExamID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		log.Debug("no attempts, nothing to refresh")
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rollup := stats.ComputeRollup(j.UserID, j.ExamID, history, time.Now(), rng)
	if err := j.StatsRepo.UpsertExamStats(ctx, *rollup); err != nil {
		return err
	}

	return j.refreshProfile(ctx)
}

func (j *RefreshStatsJob) refreshProfile(ctx context.Context) error {
	user, err := j.UserRepo.Get(ctx, j.UserID)
	if err != nil {
		return err
	}
	phone := ""
	if user != nil {
		phone = user.Phone
	}

	attempts, err := j.AttemptRepo.List(ctx, models.AttemptFilter{UserID: j.UserID, Limit: -1})
	if err != nil {
		return err
	}
	rollups, err := j.StatsRepo.ListExamStatsByUser(ctx, j.UserID)
	if err != nil {
		return err
	}

	profile := stats.ComputeProfile(j.UserID, phone, attempts, rollups)
	if profile == nil {
		return nil
	}
	return j.StatsRepo.UpsertProfile(ctx, *profile)
}

// RefreshRanksJob recomputes the 1-based rank order for every rollup of one
// exam. Enqueued after a stats refresh since a changed best score can move
// other users down.
type RefreshRanksJob struct {
	StatsRepo repository.StatsRepository
	ExamID    string
}

func (j *RefreshRanksJob) Name() string { return "refresh_ranks" }

func (j *RefreshRanksJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("exam_id", j.ExamID)
	log.Info("refreshing ranks")

	rollups, err := j.StatsRepo.ListExamStatsByExam(ctx, j.ExamID)
	if err != nil {
		return err
	}
	if len(rollups) == 0 {
		return nil
	}

	stats.RankRollups(rollups)
	return j.StatsRepo.UpdateRanks(ctx, rollups)
}

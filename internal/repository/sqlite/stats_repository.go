package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
	"github.com/examace/examace/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

const examStatsColumns = `user_id, exam_id, total_tests, average_score, best_score, worst_score, total_time_taken, total_questions, total_correct, last_test_date, streak, rank, percentile`

func (r *statsRepository) UpsertExamStats(ctx context.Context, s models.ExamStats) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("upserting exam stats: user_id=%s, exam_id=%s, total_tests=%d", s.UserID, s.ExamID, s.TotalTests)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO exam_stats (`+examStatsColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, exam_id) DO UPDATE SET
    total_tests = excluded.total_tests,
    average_score = excluded.average_score,
    best_score = excluded.best_score,
    worst_score = excluded.worst_score,
    total_time_taken = excluded.total_time_taken,
    total_questions = excluded.total_questions,
    total_correct = excluded.total_correct,
    last_test_date = excluded.last_test_date,
    streak = excluded.streak,
    rank = excluded.rank,
    percentile = excluded.percentile
`, s.UserID, s.ExamID, s.TotalTests, s.AverageScore, s.BestScore, s.WorstScore, s.TotalTimeTaken, s.TotalQuestions, s.TotalCorrect, s.LastTestDate, s.Streak, s.Rank, s.Percentile)
	if err != nil {
		log.Error("failed to upsert exam stats: %v", err)
	}
	return err
}

func (r *statsRepository) GetExamStats(ctx context.Context, userID, examID string) (*models.ExamStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting exam stats: user_id=%s, exam_id=%s", userID, examID)

	var s models.ExamStats
	err := r.db.QueryRowContext(ctx, `
SELECT `+examStatsColumns+`
FROM exam_stats
WHERE user_id = ? AND exam_id = ?
`, userID, examID).Scan(&s.UserID, &s.ExamID, &s.TotalTests, &s.AverageScore, &s.BestScore, &s.WorstScore, &s.TotalTimeTaken, &s.TotalQuestions, &s.TotalCorrect, &s.LastTestDate, &s.Streak, &s.Rank, &s.Percentile)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("exam stats not found: user_id=%s, exam_id=%s", userID, examID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get exam stats: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) ListExamStatsByUser(ctx context.Context, userID string) ([]models.ExamStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("listing exam stats: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+examStatsColumns+`
FROM exam_stats
WHERE user_id = ?
ORDER BY last_test_date DESC
`, userID)
	if err != nil {
		log.Error("failed to query exam stats: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanExamStats(rows, log)
}

func (r *statsRepository) ListExamStatsByExam(ctx context.Context, examID string) ([]models.ExamStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("listing exam stats by exam: exam_id=%s", examID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+examStatsColumns+`
FROM exam_stats
WHERE exam_id = ?
ORDER BY best_score DESC, average_score DESC, total_tests DESC
`, examID)
	if err != nil {
		log.Error("failed to query exam stats by exam: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanExamStats(rows, log)
}

func (r *statsRepository) UpdateRanks(ctx context.Context, rollups []models.ExamStats) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("updating ranks: count=%d", len(rollups))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, s := range rollups {
			if _, err := tx.ExecContext(ctx, `
UPDATE exam_stats SET rank = ? WHERE user_id = ? AND exam_id = ?
`, s.Rank, s.UserID, s.ExamID); err != nil {
				log.Error("failed to update rank: %v", err)
				return err
			}
		}
		return nil
	})
}

func (r *statsRepository) Leaderboard(ctx context.Context, examID string, limit int) ([]models.ExamStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching leaderboard: exam_id=%s, limit=%d", examID, limit)

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+examStatsColumns+`
FROM exam_stats
WHERE exam_id = ? AND rank > 0
ORDER BY rank ASC
LIMIT ?
`, examID, limit)
	if err != nil {
		log.Error("failed to query leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanExamStats(rows, log)
}

func (r *statsRepository) UpsertProfile(ctx context.Context, p models.UserProfile) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("upserting profile: user_id=%s, total_tests=%d", p.UserID, p.TotalTests)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_profiles (user_id, phone, total_tests, overall_average, best_exam, joined_date, last_active_date)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    phone = excluded.phone,
    total_tests = excluded.total_tests,
    overall_average = excluded.overall_average,
    best_exam = excluded.best_exam,
    joined_date = excluded.joined_date,
    last_active_date = excluded.last_active_date
`, p.UserID, p.Phone, p.TotalTests, p.OverallAverage, p.BestExam, p.JoinedDate, p.LastActiveDate)
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
	}
	return err
}

func (r *statsRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting profile: user_id=%s", userID)

	var p models.UserProfile
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, phone, total_tests, overall_average, best_exam, joined_date, last_active_date
FROM user_profiles
WHERE user_id = ?
`, userID).Scan(&p.UserID, &p.Phone, &p.TotalTests, &p.OverallAverage, &p.BestExam, &p.JoinedDate, &p.LastActiveDate)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: user_id=%s", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *statsRepository) DeleteByUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("deleting stats: user_id=%s", userID)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM exam_stats WHERE user_id = ?`, userID); err != nil {
			log.Error("failed to delete exam stats: %v", err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = ?`, userID); err != nil {
			log.Error("failed to delete profile: %v", err)
			return err
		}
		return nil
	})
}

func scanExamStats(rows *sql.Rows, log *logger.Logger) ([]models.ExamStats, error) {
	var stats []models.ExamStats
	for rows.Next() {
		var s models.ExamStats
		if err := rows.Scan(&s.UserID, &s.ExamID, &s.TotalTests, &s.AverageScore, &s.BestScore, &s.WorstScore, &s.TotalTimeTaken, &s.TotalQuestions, &s.TotalCorrect, &s.LastTestDate, &s.Streak, &s.Rank, &s.Percentile); err != nil {
			log.Error("failed to scan exam stats row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

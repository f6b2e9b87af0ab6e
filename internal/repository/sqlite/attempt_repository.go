package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
	"github.com/examace/examace/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: id=%s, user_id=%s, exam_id=%s, score=%d", a.ID, a.UserID, a.ExamID, a.Score)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO attempts (id, user_id, exam_id, section_id, test_id, topic_id, score, total_questions, correct_answers, wrong_answers, skipped_answers, time_taken, total_time, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, a.ID, a.UserID, a.ExamID, a.SectionID, a.TestID, nullString(a.TopicID), a.Score, a.TotalQuestions, a.CorrectAnswers, a.WrongAnswers, a.SkippedAnswers, a.TimeTaken, a.TotalTime, a.CompletedAt)
		if err != nil {
			log.Error("failed to insert attempt: %v", err)
			return err
		}
		for i, ans := range a.Answers {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO attempt_answers (attempt_id, position, question_id, selected_option, is_correct)
VALUES (?, ?, ?, ?, ?)
`, a.ID, i, ans.QuestionID, ans.SelectedOption, ans.IsCorrect); err != nil {
				log.Error("failed to insert attempt answer: %v", err)
				return err
			}
		}
		return nil
	})
}

func (r *attemptRepository) Get(ctx context.Context, id, userID string) (*models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("getting attempt: id=%s", id)

	var a models.Attempt
	var topicID sql.NullString
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, exam_id, section_id, test_id, topic_id, score, total_questions, correct_answers, wrong_answers, skipped_answers, time_taken, total_time, completed_at
FROM attempts
WHERE id = ? AND user_id = ?
`, id, userID).Scan(&a.ID, &a.UserID, &a.ExamID, &a.SectionID, &a.TestID, &topicID, &a.Score, &a.TotalQuestions, &a.CorrectAnswers, &a.WrongAnswers, &a.SkippedAnswers, &a.TimeTaken, &a.TotalTime, &a.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("attempt not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get attempt: %v", err)
		return nil, err
	}
	if topicID.Valid {
		a.TopicID = topicID.String
	}
	if err := r.loadAnswers(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) loadAnswers(ctx context.Context, a *models.Attempt) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	rows, err := r.db.QueryContext(ctx, `
SELECT question_id, selected_option, is_correct
FROM attempt_answers
WHERE attempt_id = ?
ORDER BY position
`, a.ID)
	if err != nil {
		log.Error("failed to query attempt answers: %v", err)
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rec models.AnswerRecord
		if err := rows.Scan(&rec.QuestionID, &rec.SelectedOption, &rec.IsCorrect); err != nil {
			log.Error("failed to scan attempt answer row: %v", err)
			return err
		}
		a.Answers = append(a.Answers, rec)
	}
	return rows.Err()
}

func (r *attemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: user_id=%s, exam_id=%s, section_id=%s, topic_id=%s",
		filter.UserID, filter.ExamID, filter.SectionID, filter.TopicID)

	query := sqlBuilder.Select(
		"id", "user_id", "exam_id", "section_id", "test_id", "topic_id",
		"score", "total_questions", "correct_answers", "wrong_answers",
		"skipped_answers", "time_taken", "total_time", "completed_at",
	).From("attempts")

	query = applyAttemptFilter(query, filter)
	query = query.OrderBy("completed_at DESC")

	// Limit < 0 means unbounded, for full-history consumers.
	limit := filter.Limit
	if limit == 0 {
		limit = 200
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build attempts query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanAttempts(rows, log)
}

func (r *attemptRepository) Count(ctx context.Context, filter models.AttemptFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	query := sqlBuilder.Select("COUNT(*)").From("attempts")
	query = applyAttemptFilter(query, filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build attempts count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count attempts: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *attemptRepository) HistoryAsc(ctx context.Context, userID, examID string) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("fetching history: user_id=%s, exam_id=%s", userID, examID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, exam_id, section_id, test_id, topic_id, score, total_questions, correct_answers, wrong_answers, skipped_answers, time_taken, total_time, completed_at
FROM attempts
WHERE user_id = ? AND exam_id = ?
ORDER BY completed_at ASC
`, userID, examID)
	if err != nil {
		log.Error("failed to query history: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanAttempts(rows, log)
}

func (r *attemptRepository) DeleteByUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("deleting attempts: user_id=%s", userID)

	_, err := r.db.ExecContext(ctx, `DELETE FROM attempts WHERE user_id = ?`, userID)
	if err != nil {
		log.Error("failed to delete attempts: %v", err)
	}
	return err
}

// applyAttemptFilter adds the filter's equality and range predicates.
func applyAttemptFilter(query squirrel.SelectBuilder, filter models.AttemptFilter) squirrel.SelectBuilder {
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.ExamID != "" {
		query = query.Where(squirrel.Eq{"exam_id": filter.ExamID})
	}
	if filter.SectionID != "" {
		query = query.Where(squirrel.Eq{"section_id": filter.SectionID})
	}
	if filter.TopicID != "" {
		query = query.Where(squirrel.Eq{"topic_id": filter.TopicID})
	}
	if filter.StartDate != nil {
		query = query.Where(squirrel.GtOrEq{"completed_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		query = query.Where(squirrel.LtOrEq{"completed_at": *filter.EndDate})
	}
	return query
}

func scanAttempts(rows *sql.Rows, log *logger.Logger) ([]models.Attempt, error) {
	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		var topicID sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.ExamID, &a.SectionID, &a.TestID, &topicID, &a.Score, &a.TotalQuestions, &a.CorrectAnswers, &a.WrongAnswers, &a.SkippedAnswers, &a.TimeTaken, &a.TotalTime, &a.CompletedAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		if topicID.Valid {
			a.TopicID = topicID.String
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

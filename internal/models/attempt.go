package models

import "time"

// AnswerRecord is one per-question record inside an attempt.
type AnswerRecord struct {
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option"`
	IsCorrect      bool   `json:"is_correct"`
}

// Attempt is one completed, scored instance of a user taking a test.
// Created exactly once per submitted test; never mutated after creation.
type Attempt struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	ExamID         string         `json:"exam_id"`
	SectionID      string         `json:"section_id"`
	TestID         string         `json:"test_id"`
	TopicID        string         `json:"topic_id,omitempty"`
	Score          int            `json:"score"` // 0-100
	TotalQuestions int            `json:"total_questions"`
	CorrectAnswers int            `json:"correct_answers"`
	WrongAnswers   int            `json:"wrong_answers"`
	SkippedAnswers int            `json:"skipped_answers"`
	TimeTaken      int            `json:"time_taken"` // seconds
	TotalTime      int            `json:"total_time"` // seconds allotted
	CompletedAt    time.Time      `json:"completed_at"`
	Answers        []AnswerRecord `json:"answers"`
}

// AttemptFilter narrows attempt-history queries. Zero values mean "any".
type AttemptFilter struct {
	UserID    string
	ExamID    string
	SectionID string
	TopicID   string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// ExamStats is the derived rollup for one (user, exam) pair, recomputed in
// full from the attempt history every time a new attempt is recorded.
type ExamStats struct {
	UserID         string    `json:"user_id"`
	ExamID         string    `json:"exam_id"`
	TotalTests     int       `json:"total_tests"`
	AverageScore   int       `json:"average_score"`
	BestScore      int       `json:"best_score"`
	WorstScore     int       `json:"worst_score"`
	TotalTimeTaken int       `json:"total_time_taken"` // seconds
	TotalQuestions int       `json:"total_questions"`
	TotalCorrect   int       `json:"total_correct"`
	LastTestDate   time.Time `json:"last_test_date"`
	Streak         int       `json:"streak"`
	Rank           int       `json:"rank,omitempty"`
	Percentile     int       `json:"percentile,omitempty"`
}

// UserProfile is the cross-exam rollup for one user.
type UserProfile struct {
	UserID         string    `json:"user_id"`
	Phone          string    `json:"phone"`
	TotalTests     int       `json:"total_tests"`
	OverallAverage int       `json:"overall_average"`
	BestExam       string    `json:"best_exam"`
	JoinedDate     time.Time `json:"joined_date"`
	LastActiveDate time.Time `json:"last_active_date"`
}

// User is an authenticated account.
type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	PIN       string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

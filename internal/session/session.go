// Package session drives one test attempt: question list, countdown,
// answer tracking, navigation, flags, and the single submit that scores it.
package session

import (
	"math"
	"sync"
	"time"

	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
)

// State is the lifecycle phase of a session.
type State string

const (
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// Result is the scored outcome of a submitted session. It is computed in
// memory and handed to the presentation layer regardless of whether the
// durable write succeeds.
type Result struct {
	Score     int                   `json:"score"`
	Correct   int                   `json:"correct"`
	Incorrect int                   `json:"incorrect"`
	Skipped   int                   `json:"skipped"`
	Total     int                   `json:"total"`
	TimeTaken int                   `json:"time_taken"` // seconds
	TotalTime int                   `json:"total_time"` // seconds allotted
	AutoSubmitted bool              `json:"auto_submitted"`
	Answers   []models.AnswerRecord `json:"answers"`
	Questions []models.Question     `json:"questions"`
}

// SubmitFunc receives the result exactly once, on explicit submit or on
// timeout, whichever happens first.
type SubmitFunc func(Result)

// Session is one active test attempt. All state transitions are serialized
// through its mutex; the per-second countdown is the only autonomous input.
type Session struct {
	ID        string
	UserID    string
	ExamID    string
	SectionID string
	TestID    string
	TopicID   string

	mu        sync.Mutex
	state     State
	questions []models.Question
	duration  int // seconds allotted
	remaining int // seconds left
	current   int
	answers   map[int]int // question position -> selected option
	flagged   map[int]bool
	startedAt time.Time
	result    *Result

	now      func() time.Time
	interval time.Duration
	stop     chan struct{}
	onSubmit SubmitFunc
	log      *logger.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithTickInterval overrides the one-second countdown resolution, for tests.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.interval = d }
}

// New creates a session in the Loading state. durationMinutes and questions
// come from the catalog lookup; an empty question list is allowed and yields
// a session that scores 0 without dividing by zero.
func New(id, userID, examID, sectionID, testID, topicID string, questions []models.Question, durationMinutes int, onSubmit SubmitFunc, opts ...Option) *Session {
	s := &Session{
		ID:        id,
		UserID:    userID,
		ExamID:    examID,
		SectionID: sectionID,
		TestID:    testID,
		TopicID:   topicID,
		state:     StateLoading,
		questions: questions,
		duration:  durationMinutes * 60,
		remaining: durationMinutes * 60,
		answers:   make(map[int]int),
		flagged:   make(map[int]bool),
		now:       time.Now,
		interval:  time.Second,
		stop:      make(chan struct{}),
		onSubmit:  onSubmit,
		log:       logger.Default().WithPrefix("session").WithField("session_id", id),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start moves the session to InProgress and begins the countdown.
func (s *Session) Start() {
	s.mu.Lock()
	if s.state != StateLoading {
		s.mu.Unlock()
		return
	}
	s.state = StateInProgress
	s.startedAt = s.now()
	s.mu.Unlock()

	s.log.Debug("session started: questions=%d, duration=%ds", len(s.questions), s.duration)
	go s.countdown()
}

func (s *Session) countdown() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.state != StateInProgress {
				s.mu.Unlock()
				return
			}
			s.remaining--
			if s.remaining <= 0 {
				s.log.Info("time up, auto-submitting")
				s.submitLocked(true)
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
		}
	}
}

// SelectAnswer records or overwrites the answer for the current question.
// Answers are keyed by question position, not question id.
func (s *Session) SelectAnswer(option int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return false
	}
	if s.current < 0 || s.current >= len(s.questions) {
		return false
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return false
	}
	s.answers[s.current] = option
	return true
}

// Next advances the current question pointer. Answers are never cleared by
// navigation.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress && s.current < len(s.questions)-1 {
		s.current++
	}
}

// Previous moves the current question pointer back.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress && s.current > 0 {
		s.current--
	}
}

// Jump moves the current question pointer to index, ignoring out-of-range
// targets.
func (s *Session) Jump(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress && index >= 0 && index < len(s.questions) {
		s.current = index
	}
}

// ToggleFlag toggles the flagged mark on the current question, independent
// of answering.
func (s *Session) ToggleFlag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return
	}
	if s.flagged[s.current] {
		delete(s.flagged, s.current)
	} else {
		s.flagged[s.current] = true
	}
}

// Submit finishes the session explicitly. The returned result is identical
// to what the timeout path would produce; the second and later calls return
// the already-computed result.
func (s *Session) Submit() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress {
		s.submitLocked(false)
	}
	return s.result
}

// submitLocked runs the scoring and persistence routine exactly once.
// Callers must hold s.mu.
func (s *Session) submitLocked(auto bool) {
	s.state = StateSubmitting

	elapsed := int(s.now().Sub(s.startedAt) / time.Second)
	if elapsed > s.duration {
		elapsed = s.duration
	}

	correct, incorrect, records := Grade(s.answers, s.questions)
	total := len(s.questions)

	s.result = &Result{
		Score:         ComputeScore(correct, total),
		Correct:       correct,
		Incorrect:     incorrect,
		Skipped:       total - correct - incorrect,
		Total:         total,
		TimeTaken:     elapsed,
		TotalTime:     s.duration,
		AutoSubmitted: auto,
		Answers:       records,
		Questions:     s.questions,
	}
	s.state = StateSubmitted
	close(s.stop)

	if s.onSubmit != nil {
		// Persistence must not block the result view; the callback is
		// expected to enqueue its own background work.
		go s.onSubmit(*s.result)
	}
	s.log.Info("session submitted: score=%d, correct=%d, incorrect=%d, auto=%v",
		s.result.Score, correct, incorrect, auto)
}

// Abandon cancels the countdown without scoring. Used when the user starts
// a new session or navigates away for good.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress || s.state == StateLoading {
		s.state = StateSubmitted
		close(s.stop)
		s.log.Debug("session abandoned")
	}
}

// Snapshot is a read-only view of the session for the API layer.
type Snapshot struct {
	ID        string            `json:"id"`
	State     State             `json:"state"`
	ExamID    string            `json:"exam_id"`
	SectionID string            `json:"section_id"`
	TestID    string            `json:"test_id"`
	TopicID   string            `json:"topic_id,omitempty"`
	Current   int               `json:"current"`
	Remaining int               `json:"remaining"`
	Total     int               `json:"total"`
	Answered  int               `json:"answered"`
	Answers   map[int]int       `json:"answers"`
	Flagged   []int             `json:"flagged"`
	Questions []models.Question `json:"questions"`
	Result    *Result           `json:"result,omitempty"`
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(map[int]int, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	flagged := make([]int, 0, len(s.flagged))
	for i := range s.flagged {
		flagged = append(flagged, i)
	}

	return Snapshot{
		ID:        s.ID,
		State:     s.state,
		ExamID:    s.ExamID,
		SectionID: s.SectionID,
		TestID:    s.TestID,
		TopicID:   s.TopicID,
		Current:   s.current,
		Remaining: s.remaining,
		Total:     len(s.questions),
		Answered:  len(s.answers),
		Answers:   answers,
		Flagged:   flagged,
		Questions: s.questions,
		Result:    s.result,
	}
}

// Grade compares each recorded answer against its question's correct option
// and returns the correct/incorrect counts plus per-question records.
// Unanswered questions count toward neither.
func Grade(answers map[int]int, questions []models.Question) (correct, incorrect int, records []models.AnswerRecord) {
	records = make([]models.AnswerRecord, 0, len(answers))
	for i, q := range questions {
		selected, ok := answers[i]
		if !ok {
			continue
		}
		isCorrect := selected == q.Correct
		if isCorrect {
			correct++
		} else {
			incorrect++
		}
		records = append(records, models.AnswerRecord{
			QuestionID:     q.ID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
		})
	}
	return correct, incorrect, records
}

// ComputeScore is round(correct/total*100), with a zero-total guard.
func ComputeScore(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/examace/examace/internal/catalog"
	"github.com/examace/examace/internal/errors"
	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
	"github.com/examace/examace/internal/result"
	"github.com/examace/examace/internal/session"
)

// SessionService drives active test sessions: starting them against the
// catalog, relaying answer and navigation actions, and turning the submit
// into a recorded attempt plus a result analysis.
type SessionService interface {
	StartSession(ctx context.Context, userID, examID, sectionID, testID, topicID string) (session.Snapshot, error)
	GetSession(ctx context.Context, userID, sessionID string) (session.Snapshot, error)
	SelectAnswer(ctx context.Context, userID, sessionID string, option int) (session.Snapshot, error)
	Navigate(ctx context.Context, userID, sessionID, action string, index int) (session.Snapshot, error)
	ToggleFlag(ctx context.Context, userID, sessionID string) (session.Snapshot, error)
	Submit(ctx context.Context, userID, sessionID string) (session.Snapshot, *result.Analysis, error)
	Abandon(ctx context.Context, userID, sessionID string) error
}

type sessionService struct {
	catalog  *catalog.Catalog
	registry *session.Registry
	attempts AttemptService
	log      *logger.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(c *catalog.Catalog, registry *session.Registry, attempts AttemptService) SessionService {
	return &sessionService{
		catalog:  c,
		registry: registry,
		attempts: attempts,
		log:      logger.Default().WithPrefix("session-service"),
	}
}

func (s *sessionService) StartSession(ctx context.Context, userID, examID, sectionID, testID, topicID string) (session.Snapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: user_id=%s, exam_id=%s, test_id=%s", userID, examID, testID)

	// Catalog misses are not errors: the session starts with an empty
	// question list and the default duration, same as an unknown test id.
	questions := s.catalog.QuestionsForTest(examID, sectionID, testID, topicID)
	duration := s.catalog.TestDuration(examID, sectionID, testID, topicID)

	sess := session.New(
		uuid.NewString(), userID, examID, sectionID, testID, topicID,
		questions, duration,
		s.submitFunc(userID, examID, sectionID, testID, topicID),
	)
	s.registry.Put(sess)
	sess.Start()

	log.Info("session started: session_id=%s, questions=%d, duration=%dm", sess.ID, len(questions), duration)
	return sess.Snapshot(), nil
}

// submitFunc builds the persistence callback for one session. It runs on the
// session's goroutine after scoring, so it carries its own context; a failed
// write is logged and the in-memory result still reaches the user.
func (s *sessionService) submitFunc(userID, examID, sectionID, testID, topicID string) session.SubmitFunc {
	return func(res session.Result) {
		ctx := logger.NewContext(context.Background(), s.log)
		_, err := s.attempts.Record(ctx, models.Attempt{
			UserID:         userID,
			ExamID:         examID,
			SectionID:      sectionID,
			TestID:         testID,
			TopicID:        topicID,
			Score:          res.Score,
			TotalQuestions: res.Total,
			CorrectAnswers: res.Correct,
			WrongAnswers:   res.Incorrect,
			SkippedAnswers: res.Skipped,
			TimeTaken:      res.TimeTaken,
			TotalTime:      res.TotalTime,
			Answers:        res.Answers,
		})
		if err != nil {
			s.log.Error("failed to persist attempt: user_id=%s, test_id=%s: %v", userID, testID, err)
		}
	}
}

func (s *sessionService) GetSession(ctx context.Context, userID, sessionID string) (session.Snapshot, error) {
	sess := s.registry.Get(sessionID, userID)
	if sess == nil {
		return session.Snapshot{}, errors.NewNotFoundError("session", sessionID)
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) SelectAnswer(ctx context.Context, userID, sessionID string, option int) (session.Snapshot, error) {
	sess := s.registry.Get(sessionID, userID)
	if sess == nil {
		return session.Snapshot{}, errors.NewNotFoundError("session", sessionID)
	}
	if !sess.SelectAnswer(option) {
		return session.Snapshot{}, errors.NewBadRequestError("answer rejected: session not in progress or option out of range")
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) Navigate(ctx context.Context, userID, sessionID, action string, index int) (session.Snapshot, error) {
	sess := s.registry.Get(sessionID, userID)
	if sess == nil {
		return session.Snapshot{}, errors.NewNotFoundError("session", sessionID)
	}
	switch action {
	case "next":
		sess.Next()
	case "previous":
		sess.Previous()
	case "jump":
		sess.Jump(index)
	default:
		return session.Snapshot{}, errors.NewValidationError("action", "must be next, previous, or jump")
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) ToggleFlag(ctx context.Context, userID, sessionID string) (session.Snapshot, error) {
	sess := s.registry.Get(sessionID, userID)
	if sess == nil {
		return session.Snapshot{}, errors.NewNotFoundError("session", sessionID)
	}
	sess.ToggleFlag()
	return sess.Snapshot(), nil
}

func (s *sessionService) Submit(ctx context.Context, userID, sessionID string) (session.Snapshot, *result.Analysis, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting session: session_id=%s", sessionID)

	sess := s.registry.Get(sessionID, userID)
	if sess == nil {
		return session.Snapshot{}, nil, errors.NewNotFoundError("session", sessionID)
	}

	res := sess.Submit()
	if res == nil {
		return session.Snapshot{}, nil, errors.NewBadRequestError("session was abandoned before submit")
	}
	analysis := result.Analyze(*res)
	return sess.Snapshot(), &analysis, nil
}

func (s *sessionService) Abandon(ctx context.Context, userID, sessionID string) error {
	sess := s.registry.Get(sessionID, userID)
	if sess == nil {
		return errors.NewNotFoundError("session", sessionID)
	}
	sess.Abandon()
	s.registry.Remove(sessionID)
	return nil
}

package session_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examace/examace/internal/models"
	"github.com/examace/examace/internal/session"
)

func testQuestions(n int) []models.Question {
	questions := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, models.Question{
			ID:      fmt.Sprintf("q%d", i+1),
			Options: []string{"a", "b", "c", "d"},
			Correct: i % 4,
		})
	}
	return questions
}

func newTestSession(questions []models.Question, onSubmit session.SubmitFunc, opts ...session.Option) *session.Session {
	return session.New("s1", "u1", "ssc-cgl", "mock", "mock-1", "", questions, 180, onSubmit, opts...)
}

func TestComputeScore(t *testing.T) {
	assert.Equal(t, 0, session.ComputeScore(0, 0), "zero total guards the division")
	assert.Equal(t, 100, session.ComputeScore(10, 10))
	assert.Equal(t, 50, session.ComputeScore(5, 10))
	assert.Equal(t, 33, session.ComputeScore(1, 3))
	assert.Equal(t, 67, session.ComputeScore(2, 3))
}

func TestGrade_PartialAnswers(t *testing.T) {
	questions := testQuestions(4) // correct options 0,1,2,3

	answers := map[int]int{
		0: 0, // right
		1: 1, // right
		2: 0, // wrong
		// question 3 unanswered
	}

	correct, incorrect, records := session.Grade(answers, questions)

	assert.Equal(t, 2, correct)
	assert.Equal(t, 1, incorrect)
	require.Len(t, records, 3, "unanswered questions produce no record")
}

func TestSession_AnswerAndNavigate(t *testing.T) {
	s := newTestSession(testQuestions(3), nil)
	s.Start()
	defer s.Abandon()

	require.True(t, s.SelectAnswer(1))
	s.Next()
	require.True(t, s.SelectAnswer(2))
	s.Previous()
	// Re-answering overwrites; navigation never clears.
	require.True(t, s.SelectAnswer(0))

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Answered)
	assert.Equal(t, 0, snap.Answers[0])
	assert.Equal(t, 2, snap.Answers[1])
}

func TestSession_RejectsOutOfRangeInput(t *testing.T) {
	s := newTestSession(testQuestions(2), nil)
	s.Start()
	defer s.Abandon()

	assert.False(t, s.SelectAnswer(4), "option index past the option list")
	assert.False(t, s.SelectAnswer(-1))

	s.Jump(99)
	assert.Equal(t, 0, s.Snapshot().Current, "out-of-range jump is ignored")
	s.Previous()
	assert.Equal(t, 0, s.Snapshot().Current)
}

func TestSession_SubmitScoresOnce(t *testing.T) {
	var mu sync.Mutex
	submitted := 0
	onSubmit := func(session.Result) {
		mu.Lock()
		submitted++
		mu.Unlock()
	}

	s := newTestSession(testQuestions(4), onSubmit)
	s.Start()

	s.SelectAnswer(0) // right
	s.Next()
	s.SelectAnswer(0) // wrong

	first := s.Submit()
	require.NotNil(t, first)
	assert.Equal(t, 25, first.Score, "1 of 4 correct")
	assert.Equal(t, 1, first.Correct)
	assert.Equal(t, 1, first.Incorrect)
	assert.Equal(t, 2, first.Skipped)
	assert.False(t, first.AutoSubmitted)

	second := s.Submit()
	assert.Same(t, first, second, "repeat submits return the already-computed result")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return submitted == 1
	}, time.Second, 10*time.Millisecond, "persistence callback fires exactly once")
}

func TestSession_AutoSubmitOnTimeout(t *testing.T) {
	done := make(chan session.Result, 1)
	onSubmit := func(r session.Result) { done <- r }

	// durationMinutes=0 would be degenerate; use 1 minute with a tick
	// interval fast enough to burn it down in test time.
	s := session.New("s1", "u1", "ssc-cgl", "mock", "mock-1", "",
		testQuestions(2), 1, onSubmit,
		session.WithTickInterval(100*time.Microsecond),
	)
	s.Start()
	s.SelectAnswer(0)

	select {
	case res := <-done:
		assert.True(t, res.AutoSubmitted)
		assert.Equal(t, 50, res.Score)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for auto submit")
	}

	assert.Equal(t, session.StateSubmitted, s.Snapshot().State)
}

func TestSession_EmptyQuestionListScoresZero(t *testing.T) {
	s := newTestSession(nil, nil)
	s.Start()

	res := s.Submit()
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0, res.Total)
}

func TestSession_NoInputAfterSubmit(t *testing.T) {
	s := newTestSession(testQuestions(2), nil)
	s.Start()
	s.Submit()

	assert.False(t, s.SelectAnswer(0))
	s.Next()
	assert.Equal(t, 0, s.Snapshot().Current)
}

func TestRegistry_OneSessionPerUser(t *testing.T) {
	reg := session.NewRegistry()

	first := newTestSession(testQuestions(2), nil)
	first.Start()
	reg.Put(first)

	second := session.New("s2", "u1", "ssc-cgl", "mock", "mock-2", "", testQuestions(2), 180, nil)
	second.Start()
	reg.Put(second)

	assert.Nil(t, reg.Get("s1", "u1"), "starting a new session evicts the old one")
	assert.NotNil(t, reg.Get("s2", "u1"))
	assert.Equal(t, session.StateSubmitted, first.Snapshot().State, "evicted session is abandoned")

	second.Abandon()
}

func TestRegistry_OwnerRestricted(t *testing.T) {
	reg := session.NewRegistry()

	s := newTestSession(testQuestions(2), nil)
	reg.Put(s)
	defer s.Abandon()

	assert.Nil(t, reg.Get("s1", "someone-else"))
	assert.NotNil(t, reg.Get("s1", "u1"))
}

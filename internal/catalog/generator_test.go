package catalog_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examace/examace/internal/catalog"
	"github.com/examace/examace/internal/models"
)

func seedQuestions(t *testing.T) []models.Question {
	t.Helper()
	questions, err := catalog.SeedQuestions()
	require.NoError(t, err)
	require.NotEmpty(t, questions)
	return questions
}

func TestMockTests_CountAndSize(t *testing.T) {
	questions := seedQuestions(t)
	gen := catalog.NewGenerator(1)

	tests := gen.MockTests(questions, 15)

	require.Len(t, tests, 15)
	for i, test := range tests {
		assert.Equal(t, fmt.Sprintf("mock-%d", i+1), test.ID)
		assert.Equal(t, 180, test.Duration, "mock tests run 180 minutes")
		// With 8 seed questions, min(25, N) is 8.
		assert.Len(t, test.Questions, len(questions))
	}
}

func TestMockTests_QuestionsArePermutations(t *testing.T) {
	questions := seedQuestions(t)
	gen := catalog.NewGenerator(42)

	tests := gen.MockTests(questions, 5)

	seedIDs := make(map[string]bool, len(questions))
	for _, q := range questions {
		seedIDs[q.ID] = true
	}

	for _, test := range tests {
		got := make(map[string]bool, len(test.Questions))
		for _, q := range test.Questions {
			assert.True(t, seedIDs[q.ID], "question %s must come from the seed list", q.ID)
			assert.False(t, got[q.ID], "question %s duplicated within one test", q.ID)
			got[q.ID] = true
		}
	}
}

func TestMockTests_DeterministicForSeed(t *testing.T) {
	questions := seedQuestions(t)

	a := catalog.NewGenerator(7).MockTests(questions, 3)
	b := catalog.NewGenerator(7).MockTests(questions, 3)

	require.Equal(t, a, b, "same seed must produce the same tests")
}

func TestPYQYears_DayShiftEncoding(t *testing.T) {
	questions := seedQuestions(t)
	gen := catalog.NewGenerator(1)

	years := gen.PYQYears(questions)

	require.Len(t, years, 5)
	for _, year := range years {
		require.Len(t, year.Papers, 15)
		for i, paper := range year.Papers {
			day := i/3 + 1
			shift := i%3 + 1
			assert.Equal(t, fmt.Sprintf("%s-day%d-shift%d", year.Year, day, shift), paper.ID)
			assert.Equal(t, 180, paper.Duration)
		}
	}
}

func TestPracticeSubjects_PartitionAndChunking(t *testing.T) {
	questions := seedQuestions(t)
	gen := catalog.NewGenerator(1)

	subjects := gen.PracticeSubjects(questions)

	// The 8 seed questions cover 4 subjects; topics without questions are
	// omitted entirely.
	require.Len(t, subjects, 4)

	byID := make(map[string]models.Subject, len(subjects))
	for _, s := range subjects {
		byID[s.ID] = s
	}

	maths, ok := byID["maths"]
	require.True(t, ok)
	assert.Len(t, maths.Topics, 4, "algebra, geometry, number-system, percentage")

	for _, subject := range subjects {
		for _, topic := range subject.Topics {
			require.NotEmpty(t, topic.Sets)
			assert.LessOrEqual(t, len(topic.Sets), 5, "at most 5 sets per topic")
			for i, set := range topic.Sets {
				assert.Equal(t, fmt.Sprintf("%s-set-%d", topic.ID, i+1), set.ID)
				assert.Equal(t, 30, set.Duration, "practice sets run 30 minutes")
				assert.LessOrEqual(t, len(set.Questions), 5)
				for _, q := range set.Questions {
					assert.Equal(t, subject.ID, q.Subject)
					assert.Equal(t, topic.ID, q.Topic)
				}
			}
		}
	}
}

func TestPracticeSubjects_SetCapAtFive(t *testing.T) {
	// 40 questions on one topic would make 8 chunks; the cap keeps 5.
	var questions []models.Question
	for i := 0; i < 40; i++ {
		questions = append(questions, models.Question{
			ID:      fmt.Sprintf("g%d", i),
			Options: []string{"a", "b"},
			Subject: "maths",
			Topic:   "algebra",
		})
	}

	subjects := catalog.NewGenerator(1).PracticeSubjects(questions)

	require.Len(t, subjects, 1)
	require.Len(t, subjects[0].Topics, 1)
	assert.Len(t, subjects[0].Topics[0].Sets, 5)
}

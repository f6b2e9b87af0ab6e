package stats_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examace/examace/internal/models"
	"github.com/examace/examace/internal/stats"
)

func attemptOn(day time.Time, score int) models.Attempt {
	return models.Attempt{
		UserID:         "u1",
		ExamID:         "ssc-cgl",
		Score:          score,
		TotalQuestions: 10,
		CorrectAnswers: score / 10,
		WrongAnswers:   10 - score/10,
		TimeTaken:      600,
		CompletedAt:    day,
	}
}

func TestComputeRollup_EmptyHistoryReturnsNil(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, stats.ComputeRollup("u1", "ssc-cgl", nil, time.Now(), rng))
}

func TestComputeRollup_Aggregates(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	attempts := []models.Attempt{
		attemptOn(now.AddDate(0, 0, -2), 40),
		attemptOn(now.AddDate(0, 0, -1), 90),
		attemptOn(now, 60),
	}

	rollup := stats.ComputeRollup("u1", "ssc-cgl", attempts, now, rand.New(rand.NewSource(1)))
	require.NotNil(t, rollup)

	assert.Equal(t, 3, rollup.TotalTests)
	assert.Equal(t, 63, rollup.AverageScore, "round((40+90+60)/3)")
	assert.Equal(t, 90, rollup.BestScore)
	assert.Equal(t, 40, rollup.WorstScore)
	assert.Equal(t, 1800, rollup.TotalTimeTaken)
	assert.Equal(t, 30, rollup.TotalQuestions)
	assert.Equal(t, now, rollup.LastTestDate)
	assert.Equal(t, 3, rollup.Streak)

	assert.GreaterOrEqual(t, rollup.AverageScore, rollup.WorstScore)
	assert.LessOrEqual(t, rollup.AverageScore, rollup.BestScore)
}

func TestComputeRollup_RankAndPercentileUseLatestScore(t *testing.T) {
	now := time.Now()
	attempts := []models.Attempt{
		attemptOn(now.Add(-2*time.Hour), 20),
		attemptOn(now, 92),
	}

	rollup := stats.ComputeRollup("u1", "ssc-cgl", attempts, now, rand.New(rand.NewSource(1)))
	require.NotNil(t, rollup)

	assert.Equal(t, 95, rollup.Percentile, "latest score 92 maps to 95")
	assert.GreaterOrEqual(t, rollup.Rank, 1)
	assert.LessOrEqual(t, rollup.Rank, 10)
}

func TestStreak_AnchoredTodayOrYesterday(t *testing.T) {
	now := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)

	t.Run("consecutive days ending today", func(t *testing.T) {
		attempts := []models.Attempt{
			attemptOn(now.AddDate(0, 0, -2), 50),
			attemptOn(now.AddDate(0, 0, -1), 50),
			attemptOn(now, 50),
		}
		assert.Equal(t, 3, stats.Streak(attempts, now))
	})

	t.Run("last attempt yesterday keeps the streak", func(t *testing.T) {
		attempts := []models.Attempt{
			attemptOn(now.AddDate(0, 0, -2), 50),
			attemptOn(now.AddDate(0, 0, -1), 50),
		}
		assert.Equal(t, 2, stats.Streak(attempts, now))
	})

	t.Run("last attempt two days ago breaks the streak", func(t *testing.T) {
		attempts := []models.Attempt{
			attemptOn(now.AddDate(0, 0, -3), 50),
			attemptOn(now.AddDate(0, 0, -2), 50),
		}
		assert.Equal(t, 0, stats.Streak(attempts, now))
	})

	t.Run("gap stops the count", func(t *testing.T) {
		attempts := []models.Attempt{
			attemptOn(now.AddDate(0, 0, -4), 50),
			attemptOn(now.AddDate(0, 0, -1), 50),
			attemptOn(now, 50),
		}
		assert.Equal(t, 2, stats.Streak(attempts, now))
	})

	t.Run("multiple attempts one day count once", func(t *testing.T) {
		attempts := []models.Attempt{
			attemptOn(now.Add(-3*time.Hour), 50),
			attemptOn(now.Add(-2*time.Hour), 50),
			attemptOn(now, 50),
		}
		assert.Equal(t, 1, stats.Streak(attempts, now))
	})

	t.Run("empty history", func(t *testing.T) {
		assert.Equal(t, 0, stats.Streak(nil, now))
	})
}

func TestStreak_MixedLocations(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	t.Run("utc timestamps land on the local calendar day", func(t *testing.T) {
		// 02:00 UTC is 07:30 the same day in IST.
		now := time.Date(2026, 8, 31, 9, 0, 0, 0, ist)
		attempts := []models.Attempt{
			attemptOn(time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC), 50),
		}
		assert.Equal(t, 1, stats.Streak(attempts, now))
	})

	t.Run("consecutive local days across a zone boundary", func(t *testing.T) {
		now := time.Date(2026, 8, 31, 9, 0, 0, 0, ist)
		attempts := []models.Attempt{
			// 20:00 UTC on the 29th is already the 30th in IST.
			attemptOn(time.Date(2026, 8, 29, 20, 0, 0, 0, time.UTC), 50),
			attemptOn(time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC), 50),
		}
		assert.Equal(t, 2, stats.Streak(attempts, now))
	})

	t.Run("same instant different zones count once", func(t *testing.T) {
		now := time.Date(2026, 8, 31, 9, 0, 0, 0, ist)
		instant := time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC)
		attempts := []models.Attempt{
			attemptOn(instant, 50),
			attemptOn(instant.In(ist), 50),
		}
		assert.Equal(t, 1, stats.Streak(attempts, now))
	})
}

func TestStreak_AcrossDSTTransition(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Clocks went back on 2026-10-25 in Berlin, so that calendar day
	// lasted 25 hours.
	now := time.Date(2026, 10, 26, 10, 0, 0, 0, berlin)
	attempts := []models.Attempt{
		attemptOn(time.Date(2026, 10, 24, 12, 0, 0, 0, berlin), 50),
		attemptOn(time.Date(2026, 10, 25, 12, 0, 0, 0, berlin), 50),
		attemptOn(time.Date(2026, 10, 26, 9, 0, 0, 0, berlin), 50),
	}
	assert.Equal(t, 3, stats.Streak(attempts, now))
}

func TestEstimateRank_Bands(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	cases := []struct {
		score    int
		min, max int
	}{
		{95, 1, 10},
		{90, 1, 10},
		{85, 11, 60},
		{75, 61, 160},
		{65, 161, 360},
		{30, 361, 860},
		{0, 361, 860},
	}

	for _, tc := range cases {
		for i := 0; i < 50; i++ {
			rank := stats.EstimateRank(tc.score, rng)
			assert.GreaterOrEqual(t, rank, tc.min, "score %d", tc.score)
			assert.LessOrEqual(t, rank, tc.max, "score %d", tc.score)
		}
	}
}

func TestEstimatePercentile_StepTable(t *testing.T) {
	cases := map[int]int{
		100: 99,
		95:  99,
		90:  95,
		85:  90,
		80:  85,
		75:  75,
		70:  65,
		65:  55,
		60:  45,
		55:  35,
		50:  30, // floor(50*0.6)
		20:  12,
		10:  10, // floored at 10
		0:   10,
	}
	for score, want := range cases {
		assert.Equal(t, want, stats.EstimatePercentile(score), "score %d", score)
	}
}

func TestRankRollups_Ordering(t *testing.T) {
	rollups := []models.ExamStats{
		{UserID: "a", BestScore: 80, AverageScore: 70, TotalTests: 5},
		{UserID: "b", BestScore: 90, AverageScore: 60, TotalTests: 2},
		{UserID: "c", BestScore: 80, AverageScore: 75, TotalTests: 1},
		{UserID: "d", BestScore: 80, AverageScore: 70, TotalTests: 9},
	}

	stats.RankRollups(rollups)

	order := make([]string, len(rollups))
	for i, r := range rollups {
		order[i] = r.UserID
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, order,
		"best score, then average, then test count")
}

func TestComputeProfile(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	attempts := []models.Attempt{
		attemptOn(now.AddDate(0, 0, -10), 40),
		attemptOn(now, 80),
	}
	rollups := []models.ExamStats{
		{ExamID: "ssc-cgl", AverageScore: 60},
		{ExamID: "railway", AverageScore: 75},
	}

	profile := stats.ComputeProfile("u1", "9876543210", attempts, rollups)
	require.NotNil(t, profile)

	assert.Equal(t, 2, profile.TotalTests)
	assert.Equal(t, 60, profile.OverallAverage)
	assert.Equal(t, "railway", profile.BestExam)
	assert.Equal(t, now.AddDate(0, 0, -10), profile.JoinedDate)
	assert.Equal(t, now, profile.LastActiveDate)

	assert.Nil(t, stats.ComputeProfile("u1", "", nil, nil))
}

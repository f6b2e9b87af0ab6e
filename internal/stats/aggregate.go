// Package stats computes derived statistics from attempt history. Every
// function here is a pure computation over its inputs; persistence lives in
// the repositories.
package stats

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/examace/examace/internal/models"
)

// ComputeRollup recomputes the full ExamStats rollup for one (user, exam)
// pair from that user's complete attempt history for the exam. The attempts
// slice must be ordered by completion time ascending; rng drives the rank
// estimate and now anchors the streak. Returns nil when the history is
// empty: an absent rollup is never written from nothing.
func ComputeRollup(userID, examID string, attempts []models.Attempt, now time.Time, rng *rand.Rand) *models.ExamStats {
	if len(attempts) == 0 {
		return nil
	}

	scoreSum := 0
	best := attempts[0].Score
	worst := attempts[0].Score
	totalTime := 0
	totalQuestions := 0
	totalCorrect := 0
	lastDate := attempts[0].CompletedAt

	for _, a := range attempts {
		scoreSum += a.Score
		if a.Score > best {
			best = a.Score
		}
		if a.Score < worst {
			worst = a.Score
		}
		totalTime += a.TimeTaken
		totalQuestions += a.TotalQuestions
		totalCorrect += a.CorrectAnswers
		if a.CompletedAt.After(lastDate) {
			lastDate = a.CompletedAt
		}
	}

	latestScore := attempts[len(attempts)-1].Score

	return &models.ExamStats{
		UserID:         userID,
		ExamID:         examID,
		TotalTests:     len(attempts),
		AverageScore:   roundRatio(scoreSum, len(attempts)),
		BestScore:      best,
		WorstScore:     worst,
		TotalTimeTaken: totalTime,
		TotalQuestions: totalQuestions,
		TotalCorrect:   totalCorrect,
		LastTestDate:   lastDate,
		Streak:         Streak(attempts, now),
		Rank:           EstimateRank(latestScore, rng),
		Percentile:     EstimatePercentile(latestScore),
	}
}

// Streak counts consecutive calendar days with at least one attempt,
// anchored at today or yesterday relative to now. Days are taken in now's
// location, so attempts stored in UTC still land on the caller's calendar.
// A most recent attempt older than yesterday yields 0.
func Streak(attempts []models.Attempt, now time.Time) int {
	if len(attempts) == 0 {
		return 0
	}

	loc := now.Location()
	seen := make(map[time.Time]struct{}, len(attempts))
	for _, a := range attempts {
		seen[dateIn(a.CompletedAt, loc)] = struct{}{}
	}
	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	today := dateIn(now, loc)
	yesterday := today.AddDate(0, 0, -1)
	if !dates[0].Equal(today) && !dates[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(dates); i++ {
		// AddDate keeps this correct across DST days that are not 24h long.
		if dates[i].Equal(dates[i-1].AddDate(0, 0, -1)) {
			streak++
		} else {
			break
		}
	}
	return streak
}

// EstimateRank draws a rank from a score-banded random range. It is a
// cosmetic placeholder, not a real leaderboard position: two users with the
// same score can get different ranks. Real ranks come from RankRollups.
func EstimateRank(score int, rng *rand.Rand) int {
	switch {
	case score >= 90:
		return rng.Intn(10) + 1 // 1-10
	case score >= 80:
		return rng.Intn(50) + 11 // 11-60
	case score >= 70:
		return rng.Intn(100) + 61 // 61-160
	case score >= 60:
		return rng.Intn(200) + 161 // 161-360
	default:
		return rng.Intn(500) + 361 // 361-860
	}
}

// EstimatePercentile maps a score to a percentile via a fixed step table.
func EstimatePercentile(score int) int {
	switch {
	case score >= 95:
		return 99
	case score >= 90:
		return 95
	case score >= 85:
		return 90
	case score >= 80:
		return 85
	case score >= 75:
		return 75
	case score >= 70:
		return 65
	case score >= 65:
		return 55
	case score >= 60:
		return 45
	case score >= 55:
		return 35
	default:
		p := int(math.Floor(float64(score) * 0.6))
		if p < 10 {
			p = 10
		}
		return p
	}
}

// RankRollups orders rollups by (best score desc, average score desc, total
// tests desc) and assigns 1-based consecutive ranks in place. This is the
// shared-store variant: real positions across all users of one exam.
func RankRollups(rollups []models.ExamStats) {
	sort.SliceStable(rollups, func(i, j int) bool {
		a, b := rollups[i], rollups[j]
		if a.BestScore != b.BestScore {
			return a.BestScore > b.BestScore
		}
		if a.AverageScore != b.AverageScore {
			return a.AverageScore > b.AverageScore
		}
		return a.TotalTests > b.TotalTests
	})
	for i := range rollups {
		rollups[i].Rank = i + 1
	}
}

// ComputeProfile recomputes the cross-exam user profile from all of the
// user's attempts and per-exam rollups. Returns nil when there is no history.
func ComputeProfile(userID, phone string, attempts []models.Attempt, rollups []models.ExamStats) *models.UserProfile {
	if len(attempts) == 0 {
		return nil
	}

	scoreSum := 0
	joined := attempts[0].CompletedAt
	lastActive := attempts[0].CompletedAt
	for _, a := range attempts {
		scoreSum += a.Score
		if a.CompletedAt.Before(joined) {
			joined = a.CompletedAt
		}
		if a.CompletedAt.After(lastActive) {
			lastActive = a.CompletedAt
		}
	}

	bestExam := ""
	bestAvg := -1
	for _, r := range rollups {
		if r.AverageScore > bestAvg {
			bestAvg = r.AverageScore
			bestExam = r.ExamID
		}
	}

	return &models.UserProfile{
		UserID:         userID,
		Phone:          phone,
		TotalTests:     len(attempts),
		OverallAverage: roundRatio(scoreSum, len(attempts)),
		BestExam:       bestExam,
		JoinedDate:     joined,
		LastActiveDate: lastActive,
	}
}

func roundRatio(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Package result turns a scored attempt into the breakdown and
// recommendations shown on the result view. Everything here is a pure
// function of the submitted summary.
package result

import (
	"math"

	"github.com/examace/examace/internal/session"
)

// Icon is the closed set of icon identifiers the presentation layer knows
// how to render. The data model never carries component references.
type Icon string

const (
	IconBookOpen Icon = "book-open"
	IconClock    Icon = "clock"
	IconTrophy   Icon = "trophy"
	IconTarget   Icon = "target"
)

// Tier is the qualitative performance band of a score.
type Tier string

const (
	TierExcellent        Tier = "Excellent"
	TierGood             Tier = "Good"
	TierAverage          Tier = "Average"
	TierNeedsImprovement Tier = "Needs Improvement"
)

// Recommendation is one rule-driven next step. Rules are independent and
// non-exclusive; zero, one, or several may fire for an attempt.
type Recommendation struct {
	Icon        Icon   `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// Analysis is the full result-view payload derived from one attempt.
type Analysis struct {
	Score              int              `json:"score"`
	Correct            int              `json:"correct"`
	Incorrect          int              `json:"incorrect"`
	Unattempted        int              `json:"unattempted"`
	Total              int              `json:"total"`
	TimeTaken          int              `json:"time_taken"`
	Accuracy           int              `json:"accuracy"`
	AvgTimePerQuestion int              `json:"avg_time_per_question"`
	AttemptRate        int              `json:"attempt_rate"`
	Performance        Tier             `json:"performance"`
	Message            string           `json:"message"`
	Recommendations    []Recommendation `json:"recommendations"`
}

// Analyze derives the breakdown and recommendations from a session result.
// All ratios guard their zero denominators.
func Analyze(r session.Result) Analysis {
	accuracy := 0
	avgTime := 0
	attemptRate := 0
	attempted := r.Correct + r.Incorrect
	if r.Total > 0 {
		accuracy = roundPercent(r.Correct, r.Total)
		avgTime = int(math.Round(float64(r.TimeTaken) / float64(r.Total)))
		attemptRate = roundPercent(attempted, r.Total)
	}
	unattempted := r.Total - attempted

	tier, message := performanceTier(r.Score)

	return Analysis{
		Score:              r.Score,
		Correct:            r.Correct,
		Incorrect:          r.Incorrect,
		Unattempted:        unattempted,
		Total:              r.Total,
		TimeTaken:          r.TimeTaken,
		Accuracy:           accuracy,
		AvgTimePerQuestion: avgTime,
		AttemptRate:        attemptRate,
		Performance:        tier,
		Message:            message,
		Recommendations:    recommendations(accuracy, avgTime, unattempted, r.Total),
	}
}

func performanceTier(score int) (Tier, string) {
	switch {
	case score >= 80:
		return TierExcellent, "Outstanding performance! Keep it up!"
	case score >= 60:
		return TierGood, "Good work! Focus on weak areas to improve further."
	case score >= 40:
		return TierAverage, "You're on the right track. More practice needed."
	default:
		return TierNeedsImprovement, "Don't worry! Focus on fundamentals and practice regularly."
	}
}

func recommendations(accuracy, avgTime, unattempted, total int) []Recommendation {
	var recs []Recommendation

	if accuracy < 50 {
		recs = append(recs, Recommendation{
			Icon:        IconBookOpen,
			Title:       "Review Fundamentals",
			Description: "Revisit basic concepts and practice topic-wise questions",
			Action:      "Start Practice",
		})
	}

	if avgTime > 90 {
		recs = append(recs, Recommendation{
			Icon:        IconClock,
			Title:       "Improve Speed",
			Description: "Practice timed tests to increase solving speed",
			Action:      "Speed Practice",
		})
	}

	if accuracy > 80 && avgTime < 60 {
		recs = append(recs, Recommendation{
			Icon:        IconTrophy,
			Title:       "Take Mock Tests",
			Description: "You're ready for full-length mock examinations",
			Action:      "Mock Test",
		})
	}

	if float64(unattempted) > float64(total)*0.2 {
		recs = append(recs, Recommendation{
			Icon:        IconTarget,
			Title:       "Attempt All Questions",
			Description: "Practice time management to attempt all questions",
			Action:      "Time Practice",
		})
	}

	return recs
}

func roundPercent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

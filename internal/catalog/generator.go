package catalog

import (
	"fmt"
	"math/rand"

	"github.com/examace/examace/internal/models"
)

const (
	questionsPerTest    = 25
	papersPerYear       = 15
	shiftsPerDay        = 3
	questionsPerSet     = 5
	maxSetsPerTopic     = 5
	mockDurationMinutes = 180
	setDurationMinutes  = 30
)

var pyqYears = []string{"2024", "2023", "2022", "2021", "2020"}

// topicEntry maps a topic id to its display name.
type topicEntry struct {
	ID   string
	Name string
}

// subjectEntry is one subject in the practice taxonomy, in display order.
type subjectEntry struct {
	ID     string
	Name   string
	Topics []topicEntry
}

// practiceTaxonomy is the fixed subject/topic tree practice sets are built from.
var practiceTaxonomy = []subjectEntry{
	{
		ID:   "maths",
		Name: "Quantitative Aptitude",
		Topics: []topicEntry{
			{"algebra", "Algebra"},
			{"geometry", "Geometry"},
			{"number-system", "Number System"},
			{"percentage", "Percentage"},
			{"trigonometry", "Trigonometry"},
			{"statistics", "Statistics"},
		},
	},
	{
		ID:   "english",
		Name: "English Language",
		Topics: []topicEntry{
			{"grammar", "Grammar"},
			{"vocabulary", "Vocabulary"},
			{"reading-comprehension", "Reading Comprehension"},
			{"sentence-correction", "Sentence Correction"},
		},
	},
	{
		ID:   "reasoning",
		Name: "General Intelligence & Reasoning",
		Topics: []topicEntry{
			{"verbal-reasoning", "Verbal Reasoning"},
			{"non-verbal-reasoning", "Non-Verbal Reasoning"},
			{"puzzles", "Puzzles & Seating Arrangement"},
			{"coding-decoding", "Coding & Decoding"},
		},
	},
	{
		ID:   "gk",
		Name: "General Knowledge & Awareness",
		Topics: []topicEntry{
			{"history", "History"},
			{"polity", "Polity & Constitution"},
			{"geography", "Geography"},
			{"current-affairs", "Current Affairs"},
		},
	},
}

// Generator builds test collections from a seed question list using an
// injected PRNG, so generation is reproducible under test.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator seeded with the given value.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// sample returns a fresh shuffle of questions truncated to n, using
// Fisher-Yates over the generator's PRNG. The input is never mutated.
func (g *Generator) sample(questions []models.Question, n int) []models.Question {
	shuffled := make([]models.Question, len(questions))
	copy(shuffled, questions)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// MockTests generates count full mock tests, each an independent shuffle of
// the seed list truncated to min(25, len(questions)).
func (g *Generator) MockTests(questions []models.Question, count int) []models.Test {
	perTest := questionsPerTest
	if len(questions) < perTest {
		perTest = len(questions)
	}

	tests := make([]models.Test, 0, count)
	for i := 1; i <= count; i++ {
		tests = append(tests, models.Test{
			ID:        fmt.Sprintf("mock-%d", i),
			Name:      fmt.Sprintf("Full Mock Test %d", i),
			Duration:  mockDurationMinutes,
			Questions: g.sample(questions, questionsPerTest),
			Breakdown: fmt.Sprintf("%d questions - Mixed subjects", perTest),
		})
	}
	return tests
}

// PYQYears generates 15 previous-year papers for each of the fixed years.
// A paper's id encodes its day and shift derived from its 1-based position:
// day = floor((i-1)/3)+1, shift = ((i-1) mod 3)+1.
func (g *Generator) PYQYears(questions []models.Question) []models.YearPapers {
	years := make([]models.YearPapers, 0, len(pyqYears))
	for _, year := range pyqYears {
		papers := make([]models.Test, 0, papersPerYear)
		for i := 1; i <= papersPerYear; i++ {
			shift := ((i - 1) % shiftsPerDay) + 1
			day := ((i - 1) / shiftsPerDay) + 1
			papers = append(papers, models.Test{
				ID:        fmt.Sprintf("%s-day%d-shift%d", year, day, shift),
				Name:      fmt.Sprintf("PYQ %s (Day %d, Shift %d)", year, day, shift),
				Duration:  mockDurationMinutes,
				Questions: g.sample(questions, questionsPerTest),
			})
		}
		years = append(years, models.YearPapers{Year: year, Papers: papers})
	}
	return years
}

// PracticeSubjects partitions the seed list by (subject, topic) from the
// fixed taxonomy and chunks each topic's questions into consecutive sets of
// 5, capped at 5 sets per topic. Topics and subjects with no matching
// questions are omitted entirely.
func (g *Generator) PracticeSubjects(questions []models.Question) []models.Subject {
	var subjects []models.Subject
	for _, subj := range practiceTaxonomy {
		var topics []models.Topic
		for _, t := range subj.Topics {
			var matched []models.Question
			for _, q := range questions {
				if q.Subject == subj.ID && q.Topic == t.ID {
					matched = append(matched, q)
				}
			}
			if len(matched) == 0 {
				continue
			}

			setsCount := (len(matched) + questionsPerSet - 1) / questionsPerSet
			if setsCount > maxSetsPerTopic {
				setsCount = maxSetsPerTopic
			}

			sets := make([]models.Test, 0, setsCount)
			for i := 1; i <= setsCount; i++ {
				start := (i - 1) * questionsPerSet
				end := i * questionsPerSet
				if end > len(matched) {
					end = len(matched)
				}
				sets = append(sets, models.Test{
					ID:        fmt.Sprintf("%s-set-%d", t.ID, i),
					Name:      fmt.Sprintf("Practice Set %d", i),
					Duration:  setDurationMinutes,
					Questions: matched[start:end],
				})
			}
			topics = append(topics, models.Topic{ID: t.ID, Name: t.Name, Sets: sets})
		}
		if len(topics) > 0 {
			subjects = append(subjects, models.Subject{ID: subj.ID, Name: subj.Name, Topics: topics})
		}
	}
	return subjects
}

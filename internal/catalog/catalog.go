package catalog

import (
	"github.com/examace/examace/internal/logger"
	"github.com/examace/examace/internal/models"
)

// examEntry is one exam's static display metadata plus its mock test count.
type examEntry struct {
	ID        string
	Name      string
	FullName  string
	Icon      string
	Enrolled  string
	Tests     string
	MockCount int
}

var examEntries = []examEntry{
	{"ssc-cgl", "SSC CGL", "Staff Selection Commission Combined Graduate Level", "book-open", "2.5M+", "150+", 15},
	{"ssc-mts", "SSC MTS", "Staff Selection Commission Multi Tasking Staff", "users", "1.8M+", "120+", 10},
	{"railway", "Railway", "Railway Recruitment Board Examinations", "trending-up", "3.2M+", "200+", 20},
	{"bank-po", "Bank PO", "Bank Probationary Officer", "trophy", "1.9M+", "180+", 18},
	{"airforce", "Airforce", "Indian Air Force Group X & Y", "brain", "850K+", "90+", 9},
}

// Catalog is the static exam -> section -> test mapping, built once at
// process start and read-only afterwards.
type Catalog struct {
	exams map[string]models.Exam
	order []string
}

// Options tunes catalog generation.
type Options struct {
	Seed          int64
	MockTestCount int // overrides per-exam counts when > 0
}

// Build generates the full catalog from the seed question list.
func Build(questions []models.Question, opts Options) *Catalog {
	log := logger.Default().WithPrefix("catalog")
	gen := NewGenerator(opts.Seed)

	c := &Catalog{exams: make(map[string]models.Exam, len(examEntries))}
	for _, e := range examEntries {
		mockCount := e.MockCount
		if opts.MockTestCount > 0 {
			mockCount = opts.MockTestCount
		}

		exam := models.Exam{
			ID:       e.ID,
			Name:     e.Name,
			FullName: e.FullName,
			Icon:     e.Icon,
			Enrolled: e.Enrolled,
			Tests:    e.Tests,
			Sections: []models.Section{
				{
					ID:    "mock",
					Name:  "Full Mock Tests",
					Icon:  "trophy",
					Type:  models.SectionMock,
					Tests: gen.MockTests(questions, mockCount),
				},
				{
					ID:    "pyq",
					Name:  "Previous Year Questions",
					Icon:  "file-text",
					Type:  models.SectionPYQ,
					Years: gen.PYQYears(questions),
				},
				{
					ID:       "practice",
					Name:     "Practice Sets (Subject wise)",
					Icon:     "book-open",
					Type:     models.SectionPractice,
					Subjects: gen.PracticeSubjects(questions),
				},
			},
		}
		c.exams[e.ID] = exam
		c.order = append(c.order, e.ID)
	}

	log.Info("catalog built: %d exams from %d seed questions", len(c.exams), len(questions))
	return c
}

// Exams returns all exams in display order.
func (c *Catalog) Exams() []models.Exam {
	out := make([]models.Exam, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.exams[id])
	}
	return out
}

// Exam returns the exam for the given id, or nil if unknown.
func (c *Catalog) Exam(id string) *models.Exam {
	if exam, ok := c.exams[id]; ok {
		return &exam
	}
	return nil
}

// findTest resolves (examID, sectionID, testID, topicID) to a test. The
// topic id only matters for practice sections.
func (c *Catalog) findTest(examID, sectionID, testID, topicID string) (*models.Test, models.SectionType) {
	exam, ok := c.exams[examID]
	if !ok {
		return nil, ""
	}

	for _, section := range exam.Sections {
		if section.ID != sectionID {
			continue
		}
		switch section.Type {
		case models.SectionMock:
			for i := range section.Tests {
				if section.Tests[i].ID == testID {
					return &section.Tests[i], section.Type
				}
			}
		case models.SectionPYQ:
			for _, year := range section.Years {
				for i := range year.Papers {
					if year.Papers[i].ID == testID {
						return &year.Papers[i], section.Type
					}
				}
			}
		case models.SectionPractice:
			if topicID == "" {
				return nil, section.Type
			}
			for _, subject := range section.Subjects {
				for _, topic := range subject.Topics {
					if topic.ID != topicID {
						continue
					}
					for i := range topic.Sets {
						if topic.Sets[i].ID == testID {
							return &topic.Sets[i], section.Type
						}
					}
				}
			}
		}
		return nil, section.Type
	}
	return nil, ""
}

// QuestionsForTest returns the ordered question list for a test, or an empty
// list when any id fails to resolve. It never fails.
func (c *Catalog) QuestionsForTest(examID, sectionID, testID, topicID string) []models.Question {
	test, _ := c.findTest(examID, sectionID, testID, topicID)
	if test == nil {
		return []models.Question{}
	}
	return test.Questions
}

// TestDuration returns the test's duration in minutes, falling back to the
// section-kind default (30 for practice, 180 otherwise) on any unresolved id.
func (c *Catalog) TestDuration(examID, sectionID, testID, topicID string) int {
	test, sectionType := c.findTest(examID, sectionID, testID, topicID)
	if test != nil {
		return test.Duration
	}
	if sectionType == models.SectionPractice {
		return setDurationMinutes
	}
	return mockDurationMinutes
}

package models

// Difficulty is the ordered difficulty level of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a single multiple-choice question. Immutable once generated.
type Question struct {
	ID         string     `json:"id"`
	TextEn     string     `json:"question_en"`
	TextHi     string     `json:"question_hi"`
	Options    []string   `json:"options"`
	Correct    int        `json:"correct"` // zero-based index into Options
	Difficulty Difficulty `json:"difficulty"`
	Subject    string     `json:"subject,omitempty"`
	Topic      string     `json:"topic,omitempty"`
}

// Test is one paper/set: a fixed, ordered sequence of questions with a duration.
type Test struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Duration  int        `json:"duration"` // minutes
	Questions []Question `json:"questions"`
	Breakdown string     `json:"breakdown,omitempty"`
}

// YearPapers groups previous-year papers under one calendar year.
type YearPapers struct {
	Year   string `json:"year"`
	Papers []Test `json:"papers"`
}

// Topic holds the practice sets for one topic.
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets []Test `json:"sets"`
}

// Subject groups practice topics.
type Subject struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

// SectionType is the closed set of section kinds.
type SectionType string

const (
	SectionMock     SectionType = "mock"
	SectionPYQ      SectionType = "pyq"
	SectionPractice SectionType = "practice"
)

// Section groups tests one of three ways depending on its type. Exactly one
// of Tests, Years or Subjects is populated.
type Section struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Icon     string       `json:"icon"`
	Type     SectionType  `json:"type"`
	Tests    []Test       `json:"tests,omitempty"`
	Years    []YearPapers `json:"years,omitempty"`
	Subjects []Subject    `json:"subjects,omitempty"`
}

// Exam is one exam's full catalog entry.
type Exam struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	FullName string    `json:"full_name"`
	Icon     string    `json:"icon"`
	Enrolled string    `json:"enrolled"`
	Tests    string    `json:"tests"`
	Sections []Section `json:"sections"`
}

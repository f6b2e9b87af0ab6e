package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/examace/examace/internal/models"
)

//go:embed seed/questions.json
var seedFS embed.FS

// SeedQuestions loads the embedded seed question bank.
func SeedQuestions() ([]models.Question, error) {
	data, err := seedFS.ReadFile("seed/questions.json")
	if err != nil {
		return nil, fmt.Errorf("read seed questions: %w", err)
	}
	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse seed questions: %w", err)
	}
	return questions, nil
}

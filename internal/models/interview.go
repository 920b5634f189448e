package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MaxQuestions caps how many questions a single generation request returns,
// regardless of how many the model produced.
const MaxQuestions = 10

// MaxBatchSize bounds the number of Q&A pairs per evaluation request.
const MaxBatchSize = 10

type InterviewResponse struct {
	GeneratedQuestions []string `json:"generated_questions"`
	Model              string   `json:"model"`
	Difficulty         int      `json:"difficulty"`
}

// QAItem is one caller-supplied question/answer pair to evaluate.
type QAItem struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// EvaluationRecord is the scored feedback for a single QAItem. Question and
// Answer always echo the caller's original text, never the model's copy.
type EvaluationRecord struct {
	Question       string  `json:"question"`
	Answer         string  `json:"answer"`
	ClarityScore   float64 `json:"clarity_score"`
	RelevanceScore float64 `json:"relevance_score"`
	Communication  float64 `json:"communication"`
	Confidence     float64 `json:"confidence"`
	Structure      float64 `json:"structure"`
	Suggestion     string  `json:"suggestion"`
	Improvements   string  `json:"improvements"`
	ExampleAnswer  string  `json:"example_answer"`
}

type EvaluationResponse struct {
	Results []EvaluationRecord `json:"results"`
}

// ValidateBatch rejects evaluation batches that are empty, oversized, or
// contain items with missing fields. Must pass before any model call is made.
func ValidateBatch(items []QAItem) error {
	if len(items) == 0 || len(items) > MaxBatchSize {
		return fmt.Errorf("%w: got %d items", ErrBatchSize, len(items))
	}

	validate := validator.New()
	for i, item := range items {
		if err := validate.Struct(item); err != nil {
			return fmt.Errorf("%w: item %d: %v", ErrBatchSize, i+1, err)
		}
	}

	return nil
}

package services

import (
	"fmt"
	"strings"

	"ai-interviewer/internal/models"
)

// resumeCharBudget caps how much resume text goes into the generation prompt.
// Long resumes are cut to this prefix to keep the prompt within what small
// local models handle well.
const resumeCharBudget = 3000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt assembles the question-generation instruction from the
// extracted resume text, the difficulty level, and an optional job
// description. Pure string construction, never fails.
func (pb *PromptBuilder) BuildQuestionPrompt(resumeText string, difficulty int, jobDescription string) string {
	if len(resumeText) > resumeCharBudget {
		resumeText = resumeText[:resumeCharBudget]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d interview questions based on this resume:\n%s\n", pb.questionCount(difficulty), resumeText)

	if jobDescription != "" {
		fmt.Fprintf(&b, "\nAnd job description:\n%s\n", jobDescription)
	}

	b.WriteString("\nFormat as numbered questions only.")

	return b.String()
}

// questionCount maps difficulty to how many questions the model is asked
// for. Unknown levels get the level-2 count.
func (pb *PromptBuilder) questionCount(difficulty int) int {
	switch difficulty {
	case 1:
		return 10
	case 3:
		return 20
	default:
		return 15
	}
}

// BuildEvaluationPrompt assembles the scoring instruction for a batch of Q&A
// pairs. The header defines all eight output fields with 1-10 anchors and a
// literal JSON example so the model emits exact field names; each pair is
// appended as its own block and scored independently of the others.
// The handler guarantees 1-10 items before this is called.
func (pb *PromptBuilder) BuildEvaluationPrompt(items []models.QAItem) string {
	var b strings.Builder

	b.WriteString(`Evaluate each interview Q&A pair COMPLETELY and INDEPENDENTLY. For each, provide:
1. clarity_score (1-10): How clear and understandable the answer was
2. relevance_score (1-10): How relevant the answer was to the question
3. communication (1-10): How effectively the answer communicated ideas
4. confidence (1-10): How confident the answer sounded
5. structure (1-10): How well-structured the answer was
6. suggestion: Specific suggestion for improvement
7. improvements: Detailed areas for improvement
8. example_answer: A model answer for comparison

Format response as JSON with these exact field names. Example:
{
  "results": [
    {
      "question": "What is Python?",
      "answer": "A programming language",
      "clarity_score": 7,
      "relevance_score": 8,
      "communication": 6,
      "confidence": 7,
      "structure": 6,
      "suggestion": "Could provide more technical details",
      "improvements": "Add version info, key features, and use cases",
      "example_answer": "Python is a high-level, interpreted programming language..."
    }
  ]
}

Now evaluate these:
`)

	for _, item := range items {
		fmt.Fprintf(&b, "\nQuestion: %s\nAnswer: %s\n", item.Question, item.Answer)
	}

	return b.String()
}

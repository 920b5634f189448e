package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"ai-interviewer/internal/models"
)

// Parsers for raw model replies. Model output is untrusted input: it may be
// wrapped in prose, markdown fences, or deviate from the requested shape, so
// everything here either normalizes the reply or fails the whole request.

// questionMarkerRe matches the "N." marker that opens a numbered item at the
// start of a line. Question text runs from one marker to the next, so a body
// that spans multiple lines stays one item, which a line-by-line split would
// break apart.
var questionMarkerRe = regexp.MustCompile(`(?m)^\s*\d+\.[ \t]*`)

// ParseQuestionList extracts the numbered questions from a generation reply,
// in order of appearance, trimmed, capped at models.MaxQuestions. A reply
// with no extractable questions is a hard failure.
func ParseQuestionList(raw string) ([]string, error) {
	markers := questionMarkerRe.FindAllStringIndex(raw, -1)

	var questions []string
	for i, marker := range markers {
		end := len(raw)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}

		q := strings.TrimSpace(raw[marker[1]:end])
		if q == "" {
			continue
		}
		questions = append(questions, q)
		if len(questions) == models.MaxQuestions {
			break
		}
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no numbered items in reply", models.ErrGenerationParse)
	}

	return questions, nil
}

// rawEvaluation mirrors EvaluationRecord with pointer fields so that a field
// the model omitted is distinguishable from a zero value.
type rawEvaluation struct {
	Question       *string  `json:"question"`
	Answer         *string  `json:"answer"`
	ClarityScore   *float64 `json:"clarity_score"`
	RelevanceScore *float64 `json:"relevance_score"`
	Communication  *float64 `json:"communication"`
	Confidence     *float64 `json:"confidence"`
	Structure      *float64 `json:"structure"`
	Suggestion     *string  `json:"suggestion"`
	Improvements   *string  `json:"improvements"`
	ExampleAnswer  *string  `json:"example_answer"`
}

func (r *rawEvaluation) validate() error {
	missing := func(field string) error {
		return fmt.Errorf("%w: missing field %q", models.ErrEvaluationParse, field)
	}

	switch {
	case r.ClarityScore == nil:
		return missing("clarity_score")
	case r.RelevanceScore == nil:
		return missing("relevance_score")
	case r.Communication == nil:
		return missing("communication")
	case r.Confidence == nil:
		return missing("confidence")
	case r.Structure == nil:
		return missing("structure")
	case r.Suggestion == nil:
		return missing("suggestion")
	case r.Improvements == nil:
		return missing("improvements")
	case r.ExampleAnswer == nil:
		return missing("example_answer")
	}

	return nil
}

// ParseEvaluationReply turns a raw evaluation reply into one EvaluationRecord
// per input item, order-aligned with items. The reply may be a
// {"results": [...]} envelope, a bare array, or (for a single-item batch) a
// bare record object. The caller's question/answer text is re-attached by
// position so the response echoes the input exactly even when the model
// paraphrased it. Any missing field fails the whole batch.
func ParseEvaluationReply(raw string, items []models.QAItem) ([]models.EvaluationRecord, error) {
	candidate := ExtractJSON(raw)

	records, err := decodeEvaluations(candidate, len(items))
	if err != nil {
		return nil, err
	}

	if len(records) != len(items) {
		return nil, fmt.Errorf("%w: expected %d records, got %d",
			models.ErrEvaluationParse, len(items), len(records))
	}

	results := make([]models.EvaluationRecord, len(records))
	for i, rec := range records {
		if err := rec.validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}

		results[i] = models.EvaluationRecord{
			Question:       items[i].Question,
			Answer:         items[i].Answer,
			ClarityScore:   *rec.ClarityScore,
			RelevanceScore: *rec.RelevanceScore,
			Communication:  *rec.Communication,
			Confidence:     *rec.Confidence,
			Structure:      *rec.Structure,
			Suggestion:     *rec.Suggestion,
			Improvements:   *rec.Improvements,
			ExampleAnswer:  *rec.ExampleAnswer,
		}
	}

	return results, nil
}

func decodeEvaluations(candidate string, itemCount int) ([]rawEvaluation, error) {
	candidate = strings.TrimSpace(candidate)

	if strings.HasPrefix(candidate, "[") {
		var records []rawEvaluation
		if err := json.Unmarshal([]byte(candidate), &records); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON array: %v", models.ErrEvaluationParse, err)
		}
		return records, nil
	}

	var envelope struct {
		Results []rawEvaluation `json:"results"`
	}
	if err := json.Unmarshal([]byte(candidate), &envelope); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON object: %v", models.ErrEvaluationParse, err)
	}

	if envelope.Results != nil {
		return envelope.Results, nil
	}

	// No envelope: a single-item batch may come back as one bare record.
	if itemCount == 1 {
		var record rawEvaluation
		if err := json.Unmarshal([]byte(candidate), &record); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON record: %v", models.ErrEvaluationParse, err)
		}
		return []rawEvaluation{record}, nil
	}

	return nil, fmt.Errorf("%w: reply has no results", models.ErrEvaluationParse)
}

// ExtractJSON pulls the JSON span out of a reply that may wrap it in
// markdown fences or surrounding commentary. Fences are stripped first, then
// the substring from the first { (or [) to the matching last } (or ]) is
// taken as the candidate. Returns the input unchanged when no span is found.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	// An array counts only when it is not nested inside an object span.
	if startArr != -1 && endArr > startArr && (startObj == -1 || startArr < startObj) {
		return text[startArr : endArr+1]
	}

	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return text
}

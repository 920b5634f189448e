package models

import "errors"

// Sentinel errors for every failure mode a request can hit. Handlers match
// these with errors.Is to pick a status code; wrapped detail stays in the
// server logs and never reaches the client.
var (
	ErrInvalidDocument    = errors.New("invalid or unreadable PDF document")
	ErrEmptyContent       = errors.New("empty resume content")
	ErrServiceUnavailable = errors.New("model service unavailable")
	ErrGenerationParse    = errors.New("failed to extract questions from model reply")
	ErrEvaluationParse    = errors.New("failed to parse evaluation from model reply")
	ErrBatchSize          = errors.New("provide 1-10 answers for evaluation")
)

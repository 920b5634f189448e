package services

// SamplingParams is the tuple of generation knobs forwarded to the model
// gateway. Both gateways consume the same profile; Gemini maps it onto its
// generation config, Ollama forwards it as request options.
type SamplingParams struct {
	MaxOutputTokens int32
	Temperature     float32
	TopP            float32
	TopK            float32
}

// DifficultyTable maps an interview difficulty level (1-3) to its sampling
// profile. Built once at startup and shared read-only across requests.
type DifficultyTable struct {
	profiles map[int]SamplingParams
	eval     SamplingParams
}

func NewDifficultyTable() *DifficultyTable {
	return &DifficultyTable{
		profiles: map[int]SamplingParams{
			1: {MaxOutputTokens: 256, Temperature: 0.5, TopP: 0.7, TopK: 10},
			2: {MaxOutputTokens: 512, Temperature: 0.7, TopP: 0.9, TopK: 30},
			3: {MaxOutputTokens: 768, Temperature: 0.9, TopP: 1.0, TopK: 50},
		},
		// Evaluation runs long and low-temperature so the model sticks to
		// the requested JSON shape.
		eval: SamplingParams{MaxOutputTokens: 3072, Temperature: 0.3, TopP: 0.7, TopK: 30},
	}
}

// Lookup returns the profile for the given level. Any level outside 1-3
// resolves to the level-2 profile; it never fails.
func (t *DifficultyTable) Lookup(level int) SamplingParams {
	if params, ok := t.profiles[level]; ok {
		return params
	}
	return t.profiles[2]
}

// EvaluationProfile returns the fixed profile used for answer evaluation.
func (t *DifficultyTable) EvaluationProfile() SamplingParams {
	return t.eval
}

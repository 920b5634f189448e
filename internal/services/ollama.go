package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-interviewer/internal/models"
)

// ollamaService talks to a local Ollama inference server over its
// /api/generate endpoint with streaming disabled.
type ollamaService struct {
	httpClient *http.Client
	baseURL    string
	modelName  string
}

func NewOllamaService(baseURL, modelName string, timeout time.Duration) ModelClient {
	return &ollamaService{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		modelName:  modelName,
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
	TopK        float32 `json:"top_k"`
	NumPredict  int32   `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// ModelName implements ModelClient.
func (o *ollamaService) ModelName() string {
	return o.modelName
}

// Generate implements ModelClient.
func (o *ollamaService) Generate(ctx context.Context, prompt string, params SamplingParams) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  o.modelName,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: params.Temperature,
			TopP:        params.TopP,
			TopK:        params.TopK,
			NumPredict:  params.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", models.ErrServiceUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: ollama returned status %d", models.ErrServiceUnavailable, resp.StatusCode)
	}

	var decoded ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", models.ErrServiceUnavailable, err)
	}

	text := strings.TrimSpace(decoded.Response)
	if text == "" {
		return "", fmt.Errorf("%w: empty response from ollama", models.ErrServiceUnavailable)
	}

	return text, nil
}

package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"ai-interviewer/internal/models"
)

// ModelClient is the gateway to a remote text-generation backend. Both the
// Gemini and Ollama implementations satisfy it; transport or backend failures
// surface as models.ErrServiceUnavailable.
type ModelClient interface {
	Generate(ctx context.Context, prompt string, params SamplingParams) (string, error)
	ModelName() string
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	maxRetries int
}

func NewGeminiService(apiKey, modelName string, maxRetries int) (ModelClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		maxRetries: maxRetries,
	}, nil
}

// ModelName implements ModelClient.
func (g *geminiService) ModelName() string {
	return g.modelName
}

// Generate implements ModelClient. Retries stay inside the gateway; the
// handlers see either a reply or a single ErrServiceUnavailable.
func (g *geminiService) Generate(ctx context.Context, prompt string, params SamplingParams) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		text, err := g.generateOnce(ctx, prompt, params)
		if err == nil {
			return text, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", models.ErrServiceUnavailable, ctx.Err())
		default:
		}

		if attempt < g.maxRetries {
			log.Printf("⚠️  Gemini attempt %d failed: %v. Retrying...", attempt, err)
		}
	}

	return "", fmt.Errorf("%w: failed after %d attempts: %v", models.ErrServiceUnavailable, g.maxRetries, lastErr)
}

func (g *geminiService) generateOnce(ctx context.Context, prompt string, params SamplingParams) (string, error) {
	temperature := params.Temperature
	topP := params.TopP
	topK := params.TopK

	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: params.MaxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

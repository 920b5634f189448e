package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"ai-interviewer/internal/models"
	"ai-interviewer/internal/services"
)

type EvaluationHandler struct {
	prompts      *services.PromptBuilder
	difficulties *services.DifficultyTable
	model        services.ModelClient
	modelTimeout time.Duration
}

func NewEvaluationHandler(
	prompts *services.PromptBuilder,
	difficulties *services.DifficultyTable,
	model services.ModelClient,
	modelTimeout time.Duration,
) *EvaluationHandler {
	return &EvaluationHandler{
		prompts:      prompts,
		difficulties: difficulties,
		model:        model,
		modelTimeout: modelTimeout,
	}
}

// HandleEvaluateAnswers handles POST /evaluate-answers. The body is a JSON
// array of 1-10 {question, answer} pairs; the response echoes every pair in
// order with its scores and feedback attached.
func (h *EvaluationHandler) HandleEvaluateAnswers(c *fiber.Ctx) error {
	var items []models.QAItem
	if err := c.BodyParser(&items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	// Bounds are enforced before the model is ever called.
	if err := models.ValidateBatch(items); err != nil {
		log.Printf("❌ Rejected evaluation batch: %v", err)
		return respondError(c, err)
	}

	prompt := h.prompts.BuildEvaluationPrompt(items)

	ctx, cancel := context.WithTimeout(c.UserContext(), h.modelTimeout)
	defer cancel()

	reply, err := h.model.Generate(ctx, prompt, h.difficulties.EvaluationProfile())
	if err != nil {
		log.Printf("❌ Evaluation call failed: %v", err)
		return respondError(c, err)
	}

	results, err := services.ParseEvaluationReply(reply, items)
	if err != nil {
		log.Printf("❌ Failed to parse evaluation reply: %v", err)
		return respondError(c, err)
	}

	return c.JSON(models.EvaluationResponse{
		Results: results,
	})
}

package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"ai-interviewer/internal/models"
	"ai-interviewer/internal/services"
)

type InterviewHandler struct {
	storage      services.StorageService
	pdfParser    services.PDFParserService
	prompts      *services.PromptBuilder
	difficulties *services.DifficultyTable
	model        services.ModelClient
	maxFileSize  int64
	modelTimeout time.Duration
}

func NewInterviewHandler(
	storage services.StorageService,
	pdfParser services.PDFParserService,
	prompts *services.PromptBuilder,
	difficulties *services.DifficultyTable,
	model services.ModelClient,
	maxFileSize int64,
	modelTimeout time.Duration,
) *InterviewHandler {
	return &InterviewHandler{
		storage:      storage,
		pdfParser:    pdfParser,
		prompts:      prompts,
		difficulties: difficulties,
		model:        model,
		maxFileSize:  maxFileSize,
		modelTimeout: modelTimeout,
	}
}

// HandleGenerateQuestions handles POST /interview-questions. The request is a
// multipart form with a resume PDF ("pdf_file"), a difficulty of 1-3
// ("difficulty"), and an optional "job_description".
func (h *InterviewHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("pdf_file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "pdf_file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	difficulty, err := strconv.Atoi(c.FormValue("difficulty"))
	if err != nil || difficulty < 1 || difficulty > 3 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "difficulty must be an integer between 1 and 3",
		})
	}

	jobDescription := c.FormValue("job_description")

	filePath, err := h.storage.SaveResume(fileHeader)
	if err != nil {
		log.Printf("❌ Failed to store uploaded resume: %v", err)
		return respondError(c, err)
	}
	defer h.storage.Remove(filePath)

	resumeText, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		log.Printf("❌ Failed to extract resume text: %v", err)
		return respondError(c, err)
	}

	prompt := h.prompts.BuildQuestionPrompt(resumeText, difficulty, jobDescription)
	params := h.difficulties.Lookup(difficulty)

	ctx, cancel := context.WithTimeout(c.UserContext(), h.modelTimeout)
	defer cancel()

	reply, err := h.model.Generate(ctx, prompt, params)
	if err != nil {
		log.Printf("❌ Question generation call failed: %v", err)
		return respondError(c, err)
	}

	questions, err := services.ParseQuestionList(reply)
	if err != nil {
		log.Printf("❌ Failed to parse question list: %v", err)
		return respondError(c, err)
	}

	return c.JSON(models.InterviewResponse{
		GeneratedQuestions: questions,
		Model:              h.model.ModelName(),
		Difficulty:         difficulty,
	})
}

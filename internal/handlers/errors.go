package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-interviewer/internal/models"
)

// respondError maps a pipeline failure onto an HTTP status and a stable
// client-facing message. Only the sentinel text goes to the client; wrapped
// detail (including anything from the raw model reply) stays in the logs.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	for _, sentinel := range []struct {
		err    error
		status int
	}{
		{models.ErrInvalidDocument, fiber.StatusBadRequest},
		{models.ErrEmptyContent, fiber.StatusBadRequest},
		{models.ErrBatchSize, fiber.StatusBadRequest},
		{models.ErrServiceUnavailable, fiber.StatusServiceUnavailable},
		{models.ErrGenerationParse, fiber.StatusInternalServerError},
		{models.ErrEvaluationParse, fiber.StatusInternalServerError},
	} {
		if errors.Is(err, sentinel.err) {
			status = sentinel.status
			message = sentinel.err.Error()
			break
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

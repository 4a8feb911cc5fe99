package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"job-copilot/internal/domain"
)

// respondError maps the pipeline error taxonomy onto HTTP statuses. The
// body is always {"error": string}; provider payloads are only echoed for
// upstream HTTP failures, never for parse failures.
func respondError(c *fiber.Ctx, err error) error {
	var (
		valErr    *domain.ValidationError
		cfgErr    *domain.ConfigurationError
		upstream  *domain.UpstreamError
		formatErr *domain.FormatError
		storeErr  *domain.StoreError
	)

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	case errors.Is(err, domain.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Rate limit exceeded. Try again in a minute."})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	case errors.As(err, &valErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": valErr.Reason})
	case errors.As(err, &cfgErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": cfgErr.Reason})
	case errors.As(err, &upstream):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": upstream.Error()})
	case errors.As(err, &formatErr):
		// fixed generic message; the raw provider output stays server-side
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to parse model response as JSON"})
	case errors.As(err, &storeErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": storeErr.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

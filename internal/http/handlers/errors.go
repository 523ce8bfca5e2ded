package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"offers/internal/domain"
	applog "offers/internal/log"
)

// writeError maps service errors onto status codes. Storage failures are
// logged in full and reported without detail.
func writeError(c *fiber.Ctx, action string, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.Status(fiber.StatusBadRequest)
		applog.Security(c, "validation.fail", map[string]any{"op": action, "field": verr.Field})
		return c.JSON(fiber.Map{"error": verr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer not found"})
	case errors.Is(err, domain.ErrInvalidOperation):
		c.Status(fiber.StatusBadRequest)
		applog.Security(c, action+".rejected", map[string]any{"reason": err.Error()})
		return c.JSON(fiber.Map{"error": err.Error()})
	default:
		c.Status(fiber.StatusInternalServerError)
		applog.Error(c, action+".fail", err, nil)
		return c.JSON(fiber.Map{"error": "Something went wrong. Please try again."})
	}
}

func badBody(c *fiber.Ctx, action string, err error) error {
	c.Status(fiber.StatusBadRequest)
	applog.Security(c, "validation.fail", map[string]any{"op": action, "field": "body", "reason": err.Error()})
	return c.JSON(fiber.Map{"error": "invalid request body"})
}

package handlers

import "github.com/gofiber/fiber/v2"

// Health answers liveness probes on /health and /healthz.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

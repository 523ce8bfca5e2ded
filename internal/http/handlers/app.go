package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"offers/internal/config"
	applog "offers/internal/log"
)

// NewApp builds the fiber app with middleware, API routes and JSON error
// surfaces.
func NewApp(cfg config.Config, deps *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "offers",
		BodyLimit: 1 << 20, // 1 MiB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Something went wrong. Please try again."
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
				code, msg = fe.Code, fe.Message
			}
			c.Status(code)
			if code >= fiber.StatusInternalServerError {
				// Avoid leaking internals
				applog.Error(c, "server.error", err, nil)
			}
			return c.JSON(fiber.Map{"error": msg})
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(fiberrecover.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	if cfg.RatePerMin > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RatePerMin,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/health")
			},
			LimitReached: func(c *fiber.Ctx) error {
				c.Status(fiber.StatusTooManyRequests)
				applog.Security(c, "rate.limit.hit", nil)
				return c.JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
			},
		}))
	}

	// ---------- Routes ----------
	deps.Routes(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})
	return app
}

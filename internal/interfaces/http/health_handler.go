package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
)

// Health GET /health. Si hay Pinger, verifica el store con un timeout corto.
func Health(service string, pinger repository.Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "service": service})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}

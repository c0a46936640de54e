package middleware

import (
	"crypto/subtle"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// WebhookSecret guards plan callbacks with the shared X-Webhook-Secret
// header. With no secret configured every callback is accepted.
func WebhookSecret(cfg *config.Config) fiber.Handler {
	secret := []byte(cfg.PlannerWebhookSecret)

	return func(c *fiber.Ctx) error {
		if len(secret) == 0 {
			return c.Next()
		}
		got := []byte(c.Get("X-Webhook-Secret"))
		if subtle.ConstantTimeCompare(got, secret) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Invalid webhook secret",
			})
		}
		return c.Next()
	}
}

package apperr

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// Status maps err to the HTTP status code for its kind.
func Status(err error) int {
	switch Kind(err) {
	case ErrNotFound.Error():
		return fiber.StatusNotFound
	case ErrInvalidArgument.Error():
		return fiber.StatusBadRequest
	case ErrConflict.Error():
		return fiber.StatusConflict
	case ErrUpstream.Error():
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err as a dto.ErrorResponse. Internal errors are logged and
// sent to Sentry; their details never reach the client.
func Respond(c *fiber.Ctx, err error) error {
	code := Status(err)
	kind := Kind(err)
	message := err.Error()

	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"trace_id", c.Locals("requestid"),
			"action", c.Method()+" "+c.Path(),
			"kind", kind,
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		if code == fiber.StatusInternalServerError {
			message = "Internal server error"
		}
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Kind:    kind,
		Message: message,
	})
}

// BadRequest is a shortcut for request-shape failures caught in handlers.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, InvalidArgument(message))
}

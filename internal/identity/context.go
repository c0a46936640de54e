// Package identity reads the authenticated caller from a request.
package identity

import (
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errNoIdentity = apperr.InvalidArgument("missing or malformed token subject")

// GetUserID extracts the user UUID from the JWT sub claim set by
// middleware.JWTProtected.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errNoIdentity
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errNoIdentity
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errNoIdentity
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errNoIdentity
	}
	return id, nil
}

// GetEmail returns the email claim, empty when absent.
func GetEmail(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

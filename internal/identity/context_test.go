package identity

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGetUserID(t *testing.T) {
	want := uuid.New()
	cases := []struct {
		name   string
		token  interface{}
		status int
	}{
		{"valid", &jwt.Token{Claims: jwt.MapClaims{"sub": want.String(), "email": "a@b.c"}}, fiber.StatusOK},
		{"missing token", nil, fiber.StatusUnauthorized},
		{"bad sub", &jwt.Token{Claims: jwt.MapClaims{"sub": "nope"}}, fiber.StatusUnauthorized},
		{"no sub", &jwt.Token{Claims: jwt.MapClaims{}}, fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				if tc.token != nil {
					c.Locals("user", tc.token)
				}
				id, err := GetUserID(c)
				if err != nil {
					return c.SendStatus(fiber.StatusUnauthorized)
				}
				if id != want {
					t.Errorf("id = %s, want %s", id, want)
				}
				if GetEmail(c) != "a@b.c" {
					t.Errorf("email = %q", GetEmail(c))
				}
				return c.SendStatus(fiber.StatusOK)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.status)
			}
		})
	}
}

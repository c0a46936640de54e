package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

func TestHealthCheck(t *testing.T) {
	cases := []struct {
		name   string
		ping   func() error
		status string
	}{
		{"db up", func() error { return nil }, "ok"},
		{"db down", func() error { return errors.New("refused") }, "degraded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", NewHealthHandler(tc.ping, 4).Check)

			resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
			if err != nil {
				t.Fatal(err)
			}
			var body dto.HealthResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Status != tc.status || body.Plugins != 4 {
				t.Errorf("got %+v", body)
			}
		})
	}
}

func TestAuthHandlersRejectMalformedBodies(t *testing.T) {
	app := fiber.New()
	h := NewAuthHandler(nil)
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Post("/refresh", h.Refresh)

	for _, path := range []string{"/register", "/login", "/refresh"} {
		req := httptest.NewRequest("POST", path, strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, resp.StatusCode)
		}
	}
}

func TestMeRequiresIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/me", NewAuthHandler(nil).Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

package apperr

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

var errFoodMissing = NotFound("food not found")

func TestKindThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: 42", errFoodMissing)

	if !errors.Is(wrapped, errFoodMissing) {
		t.Fatal("wrapped error should match the domain error")
	}
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatal("wrapped error should match its kind")
	}
	if errors.Is(wrapped, ErrConflict) {
		t.Fatal("wrapped error must not match another kind")
	}
	if got := wrapped.Error(); got != "food not found: 42" {
		t.Errorf("Error() = %q", got)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), fiber.StatusNotFound},
		{InvalidArgument("x"), fiber.StatusBadRequest},
		{Conflict("x"), fiber.StatusConflict},
		{Upstream("x"), fiber.StatusBadGateway},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRespondHidesInternalDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return Respond(c, errors.New("pq: connection refused"))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return Respond(c, fmt.Errorf("%w: 7", errFoodMissing))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/internal", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if strings.Contains(string(body), "connection refused") {
		t.Errorf("internal error leaked: %s", body)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"kind":"not_found"`) || !strings.Contains(string(body), "food not found: 7") {
		t.Errorf("unexpected body: %s", body)
	}
}

package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ping    func() error
	plugins int
}

// NewHealthHandler reports database reachability through ping.
func NewHealthHandler(ping func() error, plugins int) *HealthHandler {
	return &HealthHandler{ping: ping, plugins: plugins}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status, dbStatus := "ok", "ok"
	if err := h.ping(); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Plugins:   h.plugins,
	})
}

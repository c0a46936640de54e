package calendar

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarPlugin struct {
	service *EventService
}

func New(db *gorm.DB) *CalendarPlugin {
	return &CalendarPlugin{service: NewEventService(db)}
}

func (p *CalendarPlugin) ID() string { return "calendar" }

func (p *CalendarPlugin) Models() []interface{} {
	return []interface{}{
		&CalendarEvent{},
	}
}

// PurgeUser lets account deletion remove the user's events.
func (p *CalendarPlugin) PurgeUser(tx *gorm.DB, userID uuid.UUID) error {
	return p.service.PurgeUser(tx, userID)
}

func (p *CalendarPlugin) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	handler := NewEventHandler(p.service)

	events := router.Group("/calendar/events", protect)
	events.Get("/", handler.List)
	events.Get("/week", handler.Week)
	events.Post("/", handler.Create)
	events.Get("/:id", handler.Get)
	events.Patch("/:id/complete", handler.Complete)
	events.Delete("/:id", handler.Delete)
}

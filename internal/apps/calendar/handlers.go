package calendar

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EventHandler struct {
	service *EventService
	now     func() time.Time
}

func NewEventHandler(service *EventService) *EventHandler {
	return &EventHandler{service: service, now: time.Now}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	start, err := optionalDate(c.Query("start_date"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	end, err := optionalDate(c.Query("end_date"))
	if err != nil {
		return apperr.Respond(c, err)
	}

	events, err := h.service.List(userID, start, end)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"events": toResponses(events)})
}

func (h *EventHandler) Week(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	start, end, events, err := h.service.Week(userID, h.now().UTC())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(WeekResponse{
		WeekStart: start.Format(dateLayout),
		WeekEnd:   end.Format(dateLayout),
		Events:    toResponses(events),
	})
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid event ID")
	}

	event, err := h.service.Get(userID, eventID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"event": toResponse(event)})
}

func (h *EventHandler) Complete(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid event ID")
	}

	event, err := h.service.Complete(userID, eventID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Event marked as completed",
		"event":   toResponse(event),
	})
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}

	event, err := h.service.Create(userID, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Event created",
		"event":   toResponse(event),
	})
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid event ID")
	}

	if err := h.service.Delete(userID, eventID); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

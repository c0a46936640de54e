package progress

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

type ProgressHandler struct {
	service *ProgressService
}

func NewProgressHandler(service *ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dash, err := h.service.Dashboard(userID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(dash)
}

func (h *ProgressHandler) WeightHistory(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	entries, err := h.service.WeightHistory(userID, c.QueryInt("limit", defaultWeightLimit))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"weight_history": entries})
}

func (h *ProgressHandler) LogWeight(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req LogWeightRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	entry, err := h.service.LogWeight(userID, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Weight logged successfully",
		"entry":   entry,
	})
}

func (h *ProgressHandler) PersonalRecords(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	records, err := h.service.PersonalRecords(userID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"personal_records": records})
}

func (h *ProgressHandler) LogRecord(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req LogRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	pr, current, err := h.service.LogRecord(userID, &req)
	if errors.Is(err, ErrNotPersonalRecord) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      true,
			"kind":       apperr.Kind(err),
			"message":    "Not a personal record",
			"current_pr": current,
		})
	}
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Personal record achieved!",
		"pr":      pr,
	})
}

func (h *ProgressHandler) WorkoutHistory(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	completedOnly := strings.ToLower(c.Query("completed", "true")) == "true"
	sessions, err := h.service.WorkoutHistory(userID, c.QueryInt("limit", defaultHistoryLimit), completedOnly)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"workout_history": sessions})
}

func (h *ProgressHandler) Streak(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	streak, err := h.service.Streak(userID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(streak)
}

func (h *ProgressHandler) Monthly(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	stats, err := h.service.Monthly(userID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(stats)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

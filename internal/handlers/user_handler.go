package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"user": services.ToUserResponse(user)})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c, "Unauthorized")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    services.ToUserResponse(user),
	})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c, "Unauthorized")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}

	if err := h.userService.ChangePassword(userID, &req); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return unauthorized(c, "Current password is incorrect")
		}
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c, "Unauthorized")
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}

	if err := h.userService.DeleteAccount(userID, req.Password); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return unauthorized(c, "Incorrect password. Please try again.")
		}
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}

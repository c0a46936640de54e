package training

import (
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const callbackPath = "/api/webhooks/workout-plan"

type WorkoutHandler struct {
	service *WorkoutService
}

func NewWorkoutHandler(service *WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

func (h *WorkoutHandler) ListExercises(c *fiber.Ctx) error {
	exercises, err := h.service.Exercises(c.Query("muscle_group"), c.Query("difficulty"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"exercises": exercises, "count": len(exercises)})
}

func (h *WorkoutHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.service.Templates(c.Query("goal"), c.Query("level"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"templates": templates, "count": len(templates)})
}

func (h *WorkoutHandler) GetTemplate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid template ID")
	}
	t, err := h.service.Template(id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"template": t})
}

func (h *WorkoutHandler) Generate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid template ID")
	}
	workout, err := h.service.Generate(id, c.QueryInt("count", defaultExerciseCount))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(workout)
}

func (h *WorkoutHandler) MyWorkouts(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	workouts, err := h.service.MyWorkouts(userID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *WorkoutHandler) Assign(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req AssignWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	uw, err := h.service.Assign(userID, req.TemplateID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Workout assigned successfully",
		"workout": uw,
	})
}

func (h *WorkoutHandler) Unassign(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid workout ID")
	}
	if err := h.service.Unassign(userID, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Workout removed successfully"})
}

func (h *WorkoutHandler) CreateSession(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	session, err := h.service.CreateSession(userID, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Workout session created",
		"session": session,
	})
}

func (h *WorkoutHandler) ListSessions(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	sessions, err := h.service.Sessions(userID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *WorkoutHandler) GetSession(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid session ID")
	}
	session, err := h.service.Session(userID, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"session": session})
}

func (h *WorkoutHandler) CompleteSession(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid session ID")
	}
	session, err := h.service.CompleteSession(userID, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Workout completed!", "session": session})
}

func (h *WorkoutHandler) UpdateSessionExercise(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid session ID")
	}
	exerciseID, err := uuid.Parse(c.Params("exercise_id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid exercise ID")
	}
	var req UpdateSessionExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	line, err := h.service.UpdateSessionExercise(userID, sessionID, exerciseID, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Exercise updated", "exercise": line})
}

func (h *WorkoutHandler) CreateExercise(c *fiber.Ctx) error {
	var req CreateExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	ex, err := h.service.CreateExercise(&req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Exercise created", "exercise": ex})
}

func (h *WorkoutHandler) CreateTemplate(c *fiber.Ctx) error {
	var req CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	t, err := h.service.CreateTemplate(&req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Template created", "template": t})
}

// --- AI planner ---

type PlannerHandler struct {
	service   *PlannerService
	publicURL string
}

func NewPlannerHandler(service *PlannerService, publicURL string) *PlannerHandler {
	return &PlannerHandler{service: service, publicURL: publicURL}
}

func (h *PlannerHandler) Generate(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req GenerateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}

	base := h.publicURL
	if base == "" {
		base = c.BaseURL()
	}
	schedule, err := h.service.Request(c.UserContext(), userID, &req, planner.CallbackURL(base, callbackPath))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":        "AI workout plan generation started",
		"schedule_id":    schedule.ID,
		"status":         schedule.GenerationStatus,
		"estimated_time": estimatedTime,
	})
}

func (h *PlannerHandler) Status(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid schedule ID")
	}
	schedule, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"schedule": schedule, "status": schedule.GenerationStatus})
}

func (h *PlannerHandler) MyPlans(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	plans, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"plans": plans})
}

func (h *PlannerHandler) Activate(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid schedule ID")
	}
	schedule, err := h.service.Activate(c.UserContext(), userID, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Plan activated", "schedule": schedule})
}

func (h *PlannerHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid schedule ID")
	}
	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Plan deleted"})
}

// Callback receives a plan from the workout planner workflow.
func (h *PlannerHandler) Callback(c *fiber.Ctx) error {
	var body dto.PlanCallback
	if err := c.BodyParser(&body); err != nil {
		return apperr.Respond(c, planner.ErrInvalidPayload)
	}
	schedule, action, err := h.service.Receive(c.UserContext(), &body)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(dto.CallbackResponse{
		Message:    "Plan received and saved",
		ScheduleID: schedule.ID.String(),
		UserID:     schedule.UserID.String(),
		Action:     action,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

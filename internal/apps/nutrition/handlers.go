package nutrition

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	callbackPath    = "/api/webhooks/meal-plan"
	defaultStatDays = 30
	maxStatDays     = 365
)

type NutritionHandler struct {
	catalog   *CatalogService
	plans     *PlanService
	schedules *ScheduleService
	publicURL string
}

func NewNutritionHandler(catalog *CatalogService, plans *PlanService, schedules *ScheduleService, publicURL string) *NutritionHandler {
	return &NutritionHandler{catalog: catalog, plans: plans, schedules: schedules, publicURL: publicURL}
}

// --- Foods ---

func (h *NutritionHandler) ListFoods(c *fiber.Ctx) error {
	foods, err := h.catalog.Foods(c.UserContext(), FoodFilter{
		Category:   c.Query("category"),
		CommonOnly: c.QueryBool("common", false),
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"foods": foods, "count": len(foods)})
}

func (h *NutritionHandler) GetFood(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid food ID")
	}
	food, err := h.catalog.Food(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"food": food})
}

func (h *NutritionHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.catalog.Categories(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *NutritionHandler) CreateFood(c *fiber.Ctx) error {
	var req CreateFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	food, err := h.catalog.CreateFood(c.UserContext(), &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Food created", "food": food})
}

// --- Meals ---

func (h *NutritionHandler) ListMeals(c *fiber.Ctx) error {
	meals, err := h.catalog.Meals(c.UserContext(), MealFilter{
		MealType: c.Query("type"),
		Goal:     c.Query("goal"),
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"meals": mealList(meals), "count": len(meals)})
}

func (h *NutritionHandler) GetMeal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid meal ID")
	}
	meal, err := h.catalog.Meal(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"meal": toMealResponse(meal, true)})
}

func (h *NutritionHandler) CreateMeal(c *fiber.Ctx) error {
	var req CreateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	meal, err := h.catalog.CreateMeal(c.UserContext(), &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Meal created",
		"meal":    toMealResponse(meal, true),
	})
}

func (h *NutritionHandler) UpdateMeal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid meal ID")
	}
	var req UpdateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	meal, err := h.catalog.UpdateMeal(c.UserContext(), id, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Meal updated",
		"meal":    toMealResponse(meal, true),
	})
}

func (h *NutritionHandler) DeleteMeal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid meal ID")
	}
	if err := h.catalog.DeleteMeal(c.UserContext(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Meal deleted"})
}

func (h *NutritionHandler) Recommended(c *fiber.Ctx) error {
	meals, err := h.catalog.Recommended(c.UserContext(), c.Query("goal"), c.Query("type"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"meals": mealList(meals), "count": len(meals)})
}

func (h *NutritionHandler) CatalogStats(c *fiber.Ctx) error {
	stats, err := h.catalog.Stats(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(stats)
}

// --- Daily plans ---

func (h *NutritionHandler) ListPlans(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var date *time.Time
	if q := c.Query("date"); q != "" {
		d, err := ParseDate(q)
		if err != nil {
			return apperr.Respond(c, err)
		}
		date = &d
	}

	plans, err := h.plans.List(c.UserContext(), userID, date)
	if err != nil {
		return apperr.Respond(c, err)
	}
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, toPlanResponse(&plans[i]))
	}
	return c.JSON(fiber.Map{"plans": out, "count": len(out)})
}

func (h *NutritionHandler) GetPlan(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid plan ID")
	}
	plan, err := h.plans.Get(c.UserContext(), userID, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"plan": toPlanResponse(plan)})
}

func (h *NutritionHandler) CreatePlan(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req PlanSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	plan, err := h.plans.Create(c.UserContext(), userID, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Meal plan created",
		"plan":    toPlanResponse(plan),
	})
}

func (h *NutritionHandler) UpdatePlan(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid plan ID")
	}
	var req PlanSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}
	plan, err := h.plans.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Meal plan updated",
		"plan":    toPlanResponse(plan),
	})
}

func (h *NutritionHandler) DeletePlan(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.BadRequest(c, "Invalid plan ID")
	}
	if err := h.plans.Delete(c.UserContext(), userID, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Meal plan deleted"})
}

func (h *NutritionHandler) PlanStats(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	days := c.QueryInt("days", defaultStatDays)
	if days < 1 || days > maxStatDays {
		return apperr.BadRequest(c, "days must be between 1 and 365")
	}
	stats, err := h.plans.Stats(c.UserContext(), userID, days)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(stats)
}

// --- Generated schedules ---

func (h *NutritionHandler) GeneratePlan(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req GenerateMealPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest(c, "Invalid request body")
	}

	base := h.publicURL
	if base == "" {
		base = c.BaseURL()
	}
	schedule, err := h.schedules.Request(c.UserContext(), userID, &req, planner.CallbackURL(base, callbackPath))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":     "Meal plan generation started",
		"schedule_id": schedule.ID,
		"status":      schedule.GenerationStatus,
	})
}

func (h *NutritionHandler) ListSchedules(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	list, err := h.schedules.List(c.UserContext(), userID, c.QueryBool("active", false))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"schedules": list, "count": len(list)})
}

func (h *NutritionHandler) ActiveSchedule(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	schedule, err := h.schedules.Active(c.UserContext(), userID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if schedule == nil {
		return apperr.Respond(c, apperr.NotFound("no active meal schedule"))
	}
	return c.JSON(fiber.Map{"schedule": schedule})
}

func (h *NutritionHandler) GetSchedule(c *fiber.Ctx) error {
	userID, id, ok := h.scheduleParams(c)
	if !ok {
		return nil
	}
	schedule, err := h.schedules.Get(c.UserContext(), userID, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"schedule": schedule})
}

func (h *NutritionHandler) ActivateSchedule(c *fiber.Ctx) error {
	userID, id, ok := h.scheduleParams(c)
	if !ok {
		return nil
	}
	schedule, err := h.schedules.Activate(c.UserContext(), userID, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Meal schedule activated", "schedule": schedule})
}

func (h *NutritionHandler) ScheduleDay(c *fiber.Ctx) error {
	userID, id, ok := h.scheduleParams(c)
	if !ok {
		return nil
	}
	day := c.Params("day")
	plan, err := h.schedules.Day(c.UserContext(), userID, id, day)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"schedule_id": id, "day": day, "plan": plan})
}

func (h *NutritionHandler) ScheduleSummary(c *fiber.Ctx) error {
	userID, id, ok := h.scheduleParams(c)
	if !ok {
		return nil
	}
	summary, err := h.schedules.Summary(c.UserContext(), userID, id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(summary)
}

func (h *NutritionHandler) DeleteSchedule(c *fiber.Ctx) error {
	userID, id, ok := h.scheduleParams(c)
	if !ok {
		return nil
	}
	if err := h.schedules.Delete(c.UserContext(), userID, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Meal schedule deleted"})
}

// Callback receives a plan from the meal planner workflow.
func (h *NutritionHandler) Callback(c *fiber.Ctx) error {
	var body dto.PlanCallback
	if err := c.BodyParser(&body); err != nil {
		return apperr.Respond(c, planner.ErrInvalidPayload)
	}
	schedule, action, err := h.schedules.Receive(c.UserContext(), &body)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(dto.CallbackResponse{
		Message:    "Meal plan saved successfully",
		ScheduleID: schedule.ID.String(),
		UserID:     schedule.UserID.String(),
		Action:     action,
	})
}

// scheduleParams reads the caller and the :id param. On false the error
// response has already been written.
func (h *NutritionHandler) scheduleParams(c *fiber.Ctx) (uuid.UUID, uuid.UUID, bool) {
	userID, err := identity.GetUserID(c)
	if err != nil {
		_ = unauthorized(c)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = apperr.BadRequest(c, "Invalid schedule ID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func mealList(meals []Meal) []MealResponse {
	out := make([]MealResponse, 0, len(meals))
	for i := range meals {
		out = append(out, toMealResponse(&meals[i], false))
	}
	return out
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

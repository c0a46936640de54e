package nutrition

import (
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NutritionPlugin struct {
	handler *NutritionHandler
}

func New(db *gorm.DB, dispatcher planner.Dispatcher, cfg *config.Config) *NutritionPlugin {
	store := NewStore(db)
	return &NutritionPlugin{
		handler: NewNutritionHandler(
			NewCatalogService(store),
			NewPlanService(store),
			NewScheduleService(store, dispatcher, cfg.MealPlannerURL),
			cfg.PublicURL,
		),
	}
}

func (p *NutritionPlugin) ID() string { return "nutrition" }

func (p *NutritionPlugin) Models() []interface{} {
	return []interface{}{
		&Food{},
		&Meal{},
		&MealItem{},
		&DailyMealPlan{},
		&MealSchedule{},
	}
}

// PurgeUser lets account deletion remove the user's plans and schedules.
func (p *NutritionPlugin) PurgeUser(tx *gorm.DB, userID uuid.UUID) error {
	return PurgeUser(tx, userID)
}

func (p *NutritionPlugin) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	h := p.handler
	meals := router.Group("/meals", protect)

	// Food catalog
	meals.Get("/foods", h.ListFoods)
	meals.Get("/foods/categories", h.Categories)
	meals.Get("/foods/:id", h.GetFood)

	// Daily plans
	meals.Get("/plans", h.ListPlans)
	meals.Get("/plans/stats", h.PlanStats)
	meals.Post("/plans", h.CreatePlan)
	meals.Get("/plans/:id", h.GetPlan)
	meals.Put("/plans/:id", h.UpdatePlan)
	meals.Delete("/plans/:id", h.DeletePlan)

	// Generated weekly schedules
	meals.Post("/generate-plan", h.GeneratePlan)
	meals.Get("/schedules", h.ListSchedules)
	meals.Get("/schedules/active", h.ActiveSchedule)
	meals.Get("/schedules/:id", h.GetSchedule)
	meals.Post("/schedules/:id/activate", h.ActivateSchedule)
	meals.Get("/schedules/:id/day/:day", h.ScheduleDay)
	meals.Get("/schedules/:id/summary", h.ScheduleSummary)
	meals.Delete("/schedules/:id", h.DeleteSchedule)

	// Meals
	meals.Get("/", h.ListMeals)
	meals.Get("/recommended", h.Recommended)
	meals.Get("/stats/summary", h.CatalogStats)
	meals.Post("/", h.CreateMeal)
	meals.Get("/:id", h.GetMeal)
	meals.Put("/:id", h.UpdateMeal)
	meals.Delete("/:id", h.DeleteMeal)
}

func (p *NutritionPlugin) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/foods", p.handler.CreateFood)
}

func (p *NutritionPlugin) RegisterWebhooks(router fiber.Router) {
	router.Post("/meal-plan", p.handler.Callback)
}

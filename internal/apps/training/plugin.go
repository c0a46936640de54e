package training

import (
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainingPlugin struct {
	workouts *WorkoutHandler
	planner  *PlannerHandler
}

func New(db *gorm.DB, dispatcher planner.Dispatcher, cfg *config.Config) *TrainingPlugin {
	return &TrainingPlugin{
		workouts: NewWorkoutHandler(NewWorkoutService(db)),
		planner: NewPlannerHandler(
			NewPlannerService(NewScheduleStore(db), dispatcher, cfg.WorkoutPlannerURL),
			cfg.PublicURL,
		),
	}
}

func (p *TrainingPlugin) ID() string { return "training" }

func (p *TrainingPlugin) Models() []interface{} {
	return []interface{}{
		&Exercise{},
		&WorkoutTemplate{},
		&WorkoutExercise{},
		&UserWorkout{},
		&WorkoutSession{},
		&SessionExercise{},
		&UserSchedule{},
	}
}

// PurgeUser lets account deletion remove the user's workouts and schedules.
func (p *TrainingPlugin) PurgeUser(tx *gorm.DB, userID uuid.UUID) error {
	if err := PurgeUserWorkouts(tx, userID); err != nil {
		return err
	}
	return PurgeUserSchedules(tx, userID)
}

func (p *TrainingPlugin) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	w := p.workouts

	// Catalog is public
	router.Get("/workouts/exercises", w.ListExercises)
	router.Get("/workouts/templates", w.ListTemplates)
	router.Get("/workouts/templates/:id", w.GetTemplate)
	router.Get("/workouts/templates/:id/generate", protect, w.Generate)

	workouts := router.Group("/workouts", protect)
	workouts.Get("/my-workouts", w.MyWorkouts)
	workouts.Post("/my-workouts", w.Assign)
	workouts.Delete("/my-workouts/:id", w.Unassign)
	workouts.Post("/sessions", w.CreateSession)
	workouts.Get("/sessions", w.ListSessions)
	workouts.Get("/sessions/:id", w.GetSession)
	workouts.Patch("/sessions/:id/complete", w.CompleteSession)
	workouts.Patch("/sessions/:id/exercises/:exercise_id", w.UpdateSessionExercise)

	ai := router.Group("/ai-planner", protect)
	ai.Post("/generate", p.planner.Generate)
	ai.Get("/status/:id", p.planner.Status)
	ai.Get("/my-plans", p.planner.MyPlans)
	ai.Patch("/activate/:id", p.planner.Activate)
	ai.Delete("/plans/:id", p.planner.Delete)
}

func (p *TrainingPlugin) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/exercises", p.workouts.CreateExercise)
	router.Post("/templates", p.workouts.CreateTemplate)
}

func (p *TrainingPlugin) RegisterWebhooks(router fiber.Router) {
	router.Post("/workout-plan", p.planner.Callback)
}

package progress

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressPlugin struct {
	handler *ProgressHandler
}

func New(db *gorm.DB) *ProgressPlugin {
	return &ProgressPlugin{handler: NewProgressHandler(NewProgressService(db))}
}

func (p *ProgressPlugin) ID() string { return "progress" }

func (p *ProgressPlugin) Models() []interface{} {
	return []interface{}{
		&WeightHistory{},
		&ExercisePersonalRecord{},
	}
}

func (p *ProgressPlugin) PurgeUser(tx *gorm.DB, userID uuid.UUID) error {
	return PurgeUser(tx, userID)
}

func (p *ProgressPlugin) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	h := p.handler

	progress := router.Group("/progress", protect)
	progress.Get("/dashboard", h.Dashboard)
	progress.Get("/weight", h.WeightHistory)
	progress.Post("/weight", h.LogWeight)
	progress.Get("/personal-records", h.PersonalRecords)
	progress.Post("/personal-records", h.LogRecord)
	progress.Get("/workout-history", h.WorkoutHistory)
	progress.Get("/streak", h.Streak)
	progress.Get("/stats/monthly", h.Monthly)
}

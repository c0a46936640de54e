package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// cleanupSpec runs the retention purge at 03:00 UTC.
const cleanupSpec = "0 3 * * *"

// StartCleanup schedules a daily job that deletes system_logs older than
// retention. Stop the returned scheduler on shutdown.
func StartCleanup(db *gorm.DB, retention time.Duration) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(cleanupSpec, func() {
		purge(db, time.Now().Add(-retention))
	}); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func purge(db *gorm.DB, cutoff time.Time) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "component", "logging", "error", result.Error)
	} else if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "component", "logging", "deleted", result.RowsAffected)
	}
}

package calendar

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CalendarEvent is a dated workout. Events materialized from a generated
// plan carry its ScheduleID; user-created events do not.
type CalendarEvent struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_calendar_user_date" json:"user_id"`
	User            models.User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ScheduleID      *uuid.UUID      `gorm:"type:uuid;index" json:"schedule_id"`
	Title           string          `gorm:"size:200;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Date            datatypes.Date  `gorm:"not null;index:idx_calendar_user_date" json:"date"`
	StartTime       *datatypes.Time `json:"start_time"`
	EndTime         *datatypes.Time `json:"end_time"`
	DurationMinutes int             `gorm:"default:60" json:"duration_minutes"`
	Exercises       datatypes.JSON  `gorm:"type:jsonb;default:'[]'" json:"exercises"`
	Completed       bool            `gorm:"default:false" json:"completed"`
	CompletedAt     *time.Time      `json:"completed_at"`
	ReminderSent    bool            `gorm:"default:false" json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
}

// --- DTOs ---

type CreateEventRequest struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Date            string         `json:"date"`
	StartTime       string         `json:"start_time"`
	DurationMinutes *int           `json:"duration_minutes"`
	Exercises       datatypes.JSON `json:"exercises"`
}

type EventResponse struct {
	ID              uuid.UUID      `json:"id"`
	ScheduleID      *uuid.UUID     `json:"schedule_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Date            string         `json:"date"`
	StartTime       *string        `json:"start_time"`
	EndTime         *string        `json:"end_time"`
	DurationMinutes int            `json:"duration_minutes"`
	Exercises       datatypes.JSON `json:"exercises"`
	Completed       bool           `json:"completed"`
	CompletedAt     *string        `json:"completed_at"`
}

type WeekResponse struct {
	WeekStart string          `json:"week_start"`
	WeekEnd   string          `json:"week_end"`
	Events    []EventResponse `json:"events"`
}

const dateLayout = "2006-01-02"

func toResponse(e *CalendarEvent) EventResponse {
	resp := EventResponse{
		ID:              e.ID,
		ScheduleID:      e.ScheduleID,
		Title:           e.Title,
		Description:     e.Description,
		Date:            time.Time(e.Date).Format(dateLayout),
		DurationMinutes: e.DurationMinutes,
		Exercises:       e.Exercises,
		Completed:       e.Completed,
	}
	if e.StartTime != nil {
		s := clock(*e.StartTime)
		resp.StartTime = &s
	}
	if e.EndTime != nil {
		s := clock(*e.EndTime)
		resp.EndTime = &s
	}
	if e.CompletedAt != nil {
		s := e.CompletedAt.UTC().Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	return resp
}

func toResponses(events []CalendarEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toResponse(&events[i]))
	}
	return out
}

// clock renders a time of day as HH:MM.
func clock(t datatypes.Time) string {
	return t.String()[:5]
}

package calendar

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultTitle    = "Workout Session"
	defaultDuration = 60
)

var slots = map[string][2]int{
	"morning":   {8, 9},
	"afternoon": {14, 15},
	"evening":   {18, 19},
}

// NextOccurrence returns the first date strictly after today that falls on
// target. A target equal to today's weekday lands a week out.
func NextOccurrence(today time.Time, target time.Weekday) time.Time {
	offset := (int(target) - int(today.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	y, m, d := today.Date()
	return time.Date(y, m, d+offset, 0, 0, 0, 0, time.UTC)
}

// SlotTimes maps a time-of-day label to its one-hour window. Unknown or
// empty labels fall back to morning.
func SlotTimes(label string) (start, end datatypes.Time) {
	hours, ok := slots[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		hours = slots["morning"]
	}
	return datatypes.NewTime(hours[0], 0, 0, 0), datatypes.NewTime(hours[1], 0, 0, 0)
}

// BuildEvents turns a completed weekly plan into one event per workout day,
// dated at the next occurrence of that weekday after today. Rest days and
// unrecognized keys produce nothing.
func BuildEvents(userID, scheduleID uuid.UUID, plan planner.WeeklyPlan, today time.Time) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(planner.Days))
	for _, day := range planner.Days {
		info, ok := plan.Day(day)
		if !ok {
			continue
		}
		weekday, _ := planner.Weekday(day)
		start, end := SlotTimes(info.Time)

		title := info.Workout
		if title == "" {
			title = defaultTitle
		}
		duration := info.Duration
		if duration <= 0 {
			duration = defaultDuration
		}
		exercises := datatypes.JSON("[]")
		if len(info.Exercises) > 0 {
			exercises = datatypes.JSON(info.Exercises)
		}

		sid := scheduleID
		events = append(events, CalendarEvent{
			ID:              uuid.New(),
			UserID:          userID,
			ScheduleID:      &sid,
			Title:           title,
			Description:     info.Description,
			Date:            datatypes.Date(NextOccurrence(today, weekday)),
			StartTime:       &start,
			EndTime:         &end,
			DurationMinutes: duration,
			Exercises:       exercises,
		})
	}
	return events
}

// ReplaceForSchedule deletes the events of a schedule and inserts events.
// Run it inside the completion transaction so a redelivered plan leaves no
// duplicates.
func ReplaceForSchedule(tx *gorm.DB, scheduleID uuid.UUID, events []CalendarEvent) error {
	if err := DeleteForSchedule(tx, scheduleID); err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}
	return tx.CreateInBatches(events, 50).Error
}

// DeleteForSchedule removes every event materialized from a schedule.
func DeleteForSchedule(tx *gorm.DB, scheduleID uuid.UUID) error {
	return tx.Where("schedule_id = ?", scheduleID).Delete(&CalendarEvent{}).Error
}

func exercisesOrEmpty(raw datatypes.JSON) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" || !json.Valid(raw) {
		return datatypes.JSON("[]")
	}
	return raw
}

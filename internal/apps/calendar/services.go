package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = apperr.NotFound("event not found")
	ErrMissingFields = apperr.InvalidArgument("title and date are required")
	ErrBadDate       = apperr.InvalidArgument("invalid date format, use YYYY-MM-DD")
	ErrBadStartTime  = apperr.InvalidArgument("invalid start_time, use HH:MM")
	ErrBadDuration   = apperr.InvalidArgument("duration_minutes must be between 1 and 1440")
)

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// List returns the user's events in [start, end], either bound optional,
// ordered by date then start time.
func (s *EventService) List(userID uuid.UUID, start, end *time.Time) ([]CalendarEvent, error) {
	q := s.db.Where("user_id = ?", userID)
	if start != nil {
		q = q.Where("date >= ?", datatypes.Date(*start))
	}
	if end != nil {
		q = q.Where("date <= ?", datatypes.Date(*end))
	}

	var events []CalendarEvent
	err := q.Order("date ASC").Order("start_time ASC").Find(&events).Error
	return events, err
}

// Week returns the Monday..Sunday window containing today and its events.
func (s *EventService) Week(userID uuid.UUID, today time.Time) (time.Time, time.Time, []CalendarEvent, error) {
	start, end := WeekBounds(today)
	events, err := s.List(userID, &start, &end)
	return start, end, events, err
}

func (s *EventService) Get(userID, eventID uuid.UUID) (*CalendarEvent, error) {
	var event CalendarEvent
	if err := s.db.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *EventService) Complete(userID, eventID uuid.UUID) (*CalendarEvent, error) {
	event, err := s.Get(userID, eventID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.db.Model(event).Updates(map[string]interface{}{
		"completed":    true,
		"completed_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to complete event: %w", err)
	}
	event.Completed = true
	event.CompletedAt = &now
	return event, nil
}

func (s *EventService) Create(userID uuid.UUID, req *CreateEventRequest) (*CalendarEvent, error) {
	event, err := NewCustomEvent(userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *EventService) Delete(userID, eventID uuid.UUID) error {
	res := s.db.Where("id = ? AND user_id = ?", eventID, userID).Delete(&CalendarEvent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// PurgeUser removes every event the user owns.
func (s *EventService) PurgeUser(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("user_id = ?", userID).Delete(&CalendarEvent{}).Error
}

// NewCustomEvent validates a user-created event. The end time is derived
// from the start time and duration.
func NewCustomEvent(userID uuid.UUID, req *CreateEventRequest) (*CalendarEvent, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Date) == "" {
		return nil, ErrMissingFields
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	duration := defaultDuration
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	if duration < 1 || duration > 24*60 {
		return nil, ErrBadDuration
	}

	event := &CalendarEvent{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Date:            datatypes.Date(date),
		DurationMinutes: duration,
		Exercises:       exercisesOrEmpty(req.Exercises),
	}

	if req.StartTime != "" {
		t, err := time.Parse("15:04", req.StartTime)
		if err != nil {
			return nil, ErrBadStartTime
		}
		start := datatypes.NewTime(t.Hour(), t.Minute(), 0, 0)
		endAt := t.Add(time.Duration(duration) * time.Minute)
		end := datatypes.NewTime(endAt.Hour(), endAt.Minute(), 0, 0)
		event.StartTime = &start
		event.EndTime = &end
	}
	return event, nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and keeps the date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrBadDate
}

// WeekBounds returns the Monday and Sunday of the week containing today.
func WeekBounds(today time.Time) (time.Time, time.Time) {
	y, m, d := today.Date()
	back := (int(today.Weekday()) + 6) % 7
	start := time.Date(y, m, d-back, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 6)
}

package calendar

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// 2025-01-15 is a Wednesday.
var wednesday = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		name   string
		today  time.Time
		target time.Weekday
		want   string
	}{
		{"same weekday goes a week out", wednesday, time.Wednesday, "2025-01-22"},
		{"monday to wednesday", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), time.Wednesday, "2025-01-15"},
		{"wednesday to monday", wednesday, time.Monday, "2025-01-20"},
		{"saturday to sunday", time.Date(2025, 1, 18, 23, 59, 0, 0, time.UTC), time.Sunday, "2025-01-19"},
		{"across month end", time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), time.Monday, "2025-02-03"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextOccurrence(tc.today, tc.target)
			if got.Format(dateLayout) != tc.want {
				t.Errorf("got %s, want %s", got.Format(dateLayout), tc.want)
			}
			if !got.After(tc.today) {
				t.Errorf("%s is not after today", got)
			}
			if days := got.Sub(tc.today.Truncate(24 * time.Hour)).Hours() / 24; days < 1 || days > 7 {
				t.Errorf("offset %.1f days out of range", days)
			}
		})
	}
}

func TestSlotTimes(t *testing.T) {
	cases := map[string][2]string{
		"morning":   {"08:00", "09:00"},
		"afternoon": {"14:00", "15:00"},
		"evening":   {"18:00", "19:00"},
		"Evening ":  {"18:00", "19:00"},
		"midnight":  {"08:00", "09:00"},
		"":          {"08:00", "09:00"},
	}
	for label, want := range cases {
		start, end := SlotTimes(label)
		if clock(start) != want[0] || clock(end) != want[1] {
			t.Errorf("SlotTimes(%q) = %s-%s, want %s-%s", label, clock(start), clock(end), want[0], want[1])
		}
	}
}

func TestBuildEvents(t *testing.T) {
	plan, ok := planner.ParseWeeklyPlan(json.RawMessage(`{
		"monday": {"workout": "Push Day", "time": "evening", "exercises": [{"name": "bench"}], "duration": 45},
		"Wednesday": {"description": "easy"},
		"thursday": null,
		"someday": {"workout": "ignored"}
	}`))
	if !ok {
		t.Fatal("plan rejected")
	}
	user, schedule := uuid.New(), uuid.New()

	events := BuildEvents(user, schedule, plan, wednesday)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	mon := events[0]
	if mon.Title != "Push Day" || mon.DurationMinutes != 45 {
		t.Errorf("monday = %+v", mon)
	}
	if got := time.Time(mon.Date).Format(dateLayout); got != "2025-01-20" {
		t.Errorf("monday date = %s", got)
	}
	if clock(*mon.StartTime) != "18:00" || clock(*mon.EndTime) != "19:00" {
		t.Errorf("monday slot = %s-%s", clock(*mon.StartTime), clock(*mon.EndTime))
	}
	if string(mon.Exercises) != `[{"name": "bench"}]` {
		t.Errorf("exercises = %s", mon.Exercises)
	}

	wed := events[1]
	if wed.Title != defaultTitle || wed.DurationMinutes != defaultDuration || wed.Description != "easy" {
		t.Errorf("wednesday defaults = %+v", wed)
	}
	if got := time.Time(wed.Date).Format(dateLayout); got != "2025-01-22" {
		t.Errorf("wednesday date = %s, want next week", got)
	}
	if string(wed.Exercises) != "[]" {
		t.Errorf("exercises default = %s", wed.Exercises)
	}
	for _, e := range events {
		if e.UserID != user || e.ScheduleID == nil || *e.ScheduleID != schedule {
			t.Errorf("event not linked to user and schedule: %+v", e)
		}
	}
}

func TestNewCustomEvent(t *testing.T) {
	user := uuid.New()
	ninety := 90

	ev, err := NewCustomEvent(user, &CreateEventRequest{Title: "Run", Date: "2025-03-01", StartTime: "07:15", DurationMinutes: &ninety})
	if err != nil {
		t.Fatalf("NewCustomEvent: %v", err)
	}
	if clock(*ev.StartTime) != "07:15" || clock(*ev.EndTime) != "08:45" {
		t.Errorf("slot = %s-%s", clock(*ev.StartTime), clock(*ev.EndTime))
	}
	if time.Time(ev.Date) != time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("date = %v", time.Time(ev.Date))
	}

	ev, err = NewCustomEvent(user, &CreateEventRequest{Title: "Stretch", Date: "2025-03-01T18:00:00Z"})
	if err != nil {
		t.Fatalf("NewCustomEvent: %v", err)
	}
	if ev.StartTime != nil || ev.DurationMinutes != defaultDuration {
		t.Errorf("defaults not applied: %+v", ev)
	}

	zero := 0
	bad := []struct {
		req  CreateEventRequest
		want error
	}{
		{CreateEventRequest{Date: "2025-03-01"}, ErrMissingFields},
		{CreateEventRequest{Title: "x"}, ErrMissingFields},
		{CreateEventRequest{Title: "x", Date: "03/01/2025"}, ErrBadDate},
		{CreateEventRequest{Title: "x", Date: "2025-03-01", StartTime: "7pm"}, ErrBadStartTime},
		{CreateEventRequest{Title: "x", Date: "2025-03-01", DurationMinutes: &zero}, ErrBadDuration},
	}
	for i, tc := range bad {
		_, err := NewCustomEvent(user, &tc.req)
		if !errors.Is(err, tc.want) || !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Errorf("case %d: err = %v, want %v", i, err, tc.want)
		}
	}
}

func TestWeekBounds(t *testing.T) {
	start, end := WeekBounds(wednesday)
	if start.Format(dateLayout) != "2025-01-13" || end.Format(dateLayout) != "2025-01-19" {
		t.Errorf("week = %s..%s", start.Format(dateLayout), end.Format(dateLayout))
	}
	sunday := time.Date(2025, 1, 19, 12, 0, 0, 0, time.UTC)
	if start, _ := WeekBounds(sunday); start.Format(dateLayout) != "2025-01-13" {
		t.Errorf("sunday week start = %s", start.Format(dateLayout))
	}
}

func TestToResponseFormatsDateAndTimes(t *testing.T) {
	start := datatypes.NewTime(8, 0, 0, 0)
	resp := toResponse(&CalendarEvent{Date: datatypes.Date(wednesday), StartTime: &start})
	if resp.Date != "2025-01-15" || resp.StartTime == nil || *resp.StartTime != "08:00" || resp.EndTime != nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestListRejectsMalformedDates(t *testing.T) {
	app := fiber.New()
	h := NewEventHandler(nil)
	app.Get("/events", func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"sub": uuid.NewString()}})
		return c.Next()
	}, h.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/events?start_date=yesterday", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

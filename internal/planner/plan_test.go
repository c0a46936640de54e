package planner

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/google/uuid"
)

func TestWeeklyPlanDay(t *testing.T) {
	plan, ok := ParseWeeklyPlan(json.RawMessage(`{
		"Monday": {"workout": "Push Day", "time": "evening", "duration": 45, "exercises": [{"name": "bench"}]},
		"tuesday": null,
		"wednesday": "rest",
		"thursday": {"daily_totals": {"calories": 2000, "protein": "lots", "carbs": 250.5}},
		"friday": {"daily_totals": {}}
	}`))
	if !ok {
		t.Fatal("plan rejected")
	}

	mon, ok := plan.Day("monday")
	if !ok {
		t.Fatal("monday missing after key lowercasing")
	}
	if mon.Workout != "Push Day" || mon.Time != "evening" || mon.Duration != 45 {
		t.Errorf("monday = %+v", mon)
	}
	if string(mon.Exercises) != `[{"name": "bench"}]` {
		t.Errorf("exercises = %s", mon.Exercises)
	}

	if _, ok := plan.Day("tuesday"); ok {
		t.Error("null day should be a rest day")
	}
	if _, ok := plan.Day("wednesday"); ok {
		t.Error("non-object day should be a rest day")
	}
	if _, ok := plan.Day("sunday"); ok {
		t.Error("absent day should be missing")
	}

	thu, _ := plan.Day("thursday")
	if thu.DailyTotals == nil {
		t.Fatal("thursday totals missing")
	}
	if thu.DailyTotals.Calories != 2000 || thu.DailyTotals.Protein != 0 || thu.DailyTotals.Carbs != 250.5 {
		t.Errorf("thursday totals = %+v", thu.DailyTotals)
	}

	fri, _ := plan.Day("friday")
	if fri.DailyTotals != nil {
		t.Error("empty daily_totals should read as absent")
	}
}

func TestParseWeeklyPlanRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{``, `null`, `[]`, `"plan"`, `42`} {
		if _, ok := ParseWeeklyPlan(json.RawMessage(raw)); ok {
			t.Errorf("%q accepted", raw)
		}
	}
}

func TestWeekday(t *testing.T) {
	if wd, ok := Weekday("Wednesday"); !ok || wd != time.Wednesday {
		t.Errorf("Weekday(Wednesday) = %v, %v", wd, ok)
	}
	if _, ok := Weekday("funday"); ok {
		t.Error("unknown day accepted")
	}
}

func TestParseCallback(t *testing.T) {
	user := uuid.New()
	sched := uuid.New()

	cb, err := ParseCallback(&dto.PlanCallback{
		UserID:         user.String(),
		ScheduleID:     sched.String(),
		WeeklyMealPlan: json.RawMessage(`{"monday": {}}`),
	})
	if err != nil {
		t.Fatalf("ParseCallback: %v", err)
	}
	if cb.UserID != user || cb.ScheduleID == nil || *cb.ScheduleID != sched {
		t.Errorf("ids = %v %v", cb.UserID, cb.ScheduleID)
	}
	if _, ok := cb.Plan["monday"]; !ok {
		t.Error("weekly_meal_plan not used as plan")
	}

	cb, err = ParseCallback(&dto.PlanCallback{UserID: user.String(), WeeklyPlan: json.RawMessage(`{}`)})
	if err != nil || cb.ScheduleID != nil {
		t.Errorf("schedule id should be optional: %v %v", cb, err)
	}

	bad := []*dto.PlanCallback{
		nil,
		{WeeklyPlan: json.RawMessage(`{}`)},
		{UserID: user.String()},
		{UserID: user.String(), WeeklyPlan: json.RawMessage(`[1,2]`)},
		{UserID: "not-a-uuid", WeeklyPlan: json.RawMessage(`{}`)},
		{UserID: user.String(), ScheduleID: "7", WeeklyPlan: json.RawMessage(`{}`)},
	}
	for i, body := range bad {
		if _, err := ParseCallback(body); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Errorf("case %d: err = %v, want invalid argument", i, err)
		}
	}
}

func TestCallbackURL(t *testing.T) {
	if got := CallbackURL("https://api.example.com/", "/api/webhooks/meal-plan"); got != "https://api.example.com/api/webhooks/meal-plan" {
		t.Errorf("CallbackURL = %q", got)
	}
}

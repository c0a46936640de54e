package planner

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/google/uuid"
)

var (
	ErrInvalidPayload = apperr.InvalidArgument("invalid payload: user_id and a weekly plan object are required")
	ErrBadIdentifier  = apperr.InvalidArgument("invalid payload: malformed identifier")
)

// Callback is a validated dto.PlanCallback.
type Callback struct {
	UserID     uuid.UUID
	ScheduleID *uuid.UUID
	WorkflowID string
	Plan       WeeklyPlan
	Targets    *dto.NutritionTargets
	UserData   *dto.MealUserData
}

// ParseCallback checks that the body names a user and carries a plan
// object. Nothing is written for a rejected body.
func ParseCallback(body *dto.PlanCallback) (*Callback, error) {
	if body == nil || strings.TrimSpace(body.UserID) == "" {
		return nil, ErrInvalidPayload
	}

	raw := body.WeeklyPlan
	if len(raw) == 0 || string(raw) == "null" {
		raw = body.WeeklyMealPlan
	}
	plan, ok := ParseWeeklyPlan(raw)
	if !ok {
		return nil, ErrInvalidPayload
	}

	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		return nil, ErrBadIdentifier
	}

	cb := &Callback{
		UserID:     userID,
		WorkflowID: body.WorkflowID,
		Plan:       plan,
		Targets:    body.NutritionTargets,
		UserData:   body.UserData,
	}
	if s := strings.TrimSpace(body.ScheduleID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, ErrBadIdentifier
		}
		cb.ScheduleID = &id
	}
	return cb, nil
}

// CallbackURL joins the public base URL and a webhook path.
func CallbackURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

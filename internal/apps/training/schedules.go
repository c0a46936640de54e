package training

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apps/calendar"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	defaultSessionDuration = 60
	defaultExperience      = "beginner"
	estimatedTime          = "30-60 seconds"
)

var defaultEquipment = []string{"bodyweight", "dumbbell", "barbell"}

var (
	ErrScheduleNotFound = apperr.NotFound("schedule not found")
	ErrUserNotFound     = apperr.NotFound("user not found")
	ErrGenerateFields   = apperr.InvalidArgument("available_days and sessions_per_week are required")
	ErrUnknownDay       = apperr.InvalidArgument("available_days must name days monday..sunday")
	ErrSessionsPerWeek  = apperr.InvalidArgument("sessions_per_week must be between 1 and 7")
	ErrSessionDuration  = apperr.InvalidArgument("session_duration must be between 1 and 300 minutes")
)

// PlannerService runs the generation lifecycle of weekly workout schedules.
type PlannerService struct {
	store      ScheduleStore
	dispatcher planner.Dispatcher
	endpoint   string
	now        func() time.Time
}

func NewPlannerService(store ScheduleStore, dispatcher planner.Dispatcher, endpoint string) *PlannerService {
	return &PlannerService{
		store:      store,
		dispatcher: dispatcher,
		endpoint:   endpoint,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func normalizePreferences(req *GenerateScheduleRequest) (*workoutPreferences, error) {
	if len(req.AvailableDays) == 0 || req.SessionsPerWeek == nil {
		return nil, ErrGenerateFields
	}
	days := make([]string, 0, len(req.AvailableDays))
	for _, d := range req.AvailableDays {
		d = strings.ToLower(strings.TrimSpace(d))
		if _, ok := planner.Weekday(d); !ok {
			return nil, ErrUnknownDay
		}
		days = append(days, d)
	}
	if *req.SessionsPerWeek < 1 || *req.SessionsPerWeek > 7 {
		return nil, ErrSessionsPerWeek
	}

	prefs := &workoutPreferences{
		AvailableDays:      days,
		AvailableTimeSlots: map[string]string{},
		SessionsPerWeek:    *req.SessionsPerWeek,
		SessionDuration:    defaultSessionDuration,
		EquipmentAccess:    req.EquipmentAccess,
		ExperienceLevel:    req.ExperienceLevel,
	}
	for day, slot := range req.AvailableTimeSlots {
		prefs.AvailableTimeSlots[strings.ToLower(day)] = strings.ToLower(slot)
	}
	if req.SessionDuration != nil {
		if *req.SessionDuration < 1 || *req.SessionDuration > 300 {
			return nil, ErrSessionDuration
		}
		prefs.SessionDuration = *req.SessionDuration
	}
	if len(prefs.EquipmentAccess) == 0 {
		prefs.EquipmentAccess = defaultEquipment
	}
	if prefs.ExperienceLevel == "" {
		prefs.ExperienceLevel = defaultExperience
	}
	return prefs, nil
}

func jsonOf(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// Request records a pending schedule and hands it to the workout planner
// workflow. A failed dispatch leaves the schedule failed with the reason
// and returns an upstream error.
func (s *PlannerService) Request(ctx context.Context, userID uuid.UUID, req *GenerateScheduleRequest, callbackURL string) (*UserSchedule, error) {
	prefs, err := normalizePreferences(req)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	schedule := &UserSchedule{
		ID:                 uuid.New(),
		UserID:             userID,
		AvailableDays:      jsonOf(prefs.AvailableDays),
		AvailableTimeSlots: jsonOf(prefs.AvailableTimeSlots),
		SessionsPerWeek:    prefs.SessionsPerWeek,
		SessionDuration:    prefs.SessionDuration,
		EquipmentAccess:    jsonOf(prefs.EquipmentAccess),
		ExperienceLevel:    prefs.ExperienceLevel,
		GenerationStatus:   planner.StatusPending,
		IsActive:           false,
	}
	if err := s.store.CreateSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	log := slog.With("component", "training", "user_id", userID.String(), "schedule_id", schedule.ID.String())

	ack, dispatchErr := s.dispatcher.Dispatch(ctx, s.endpoint, &planner.GenerationRequest{
		UserID:     userID,
		ScheduleID: schedule.ID,
		UserData: workoutUserData{
			Age:         user.Age,
			Weight:      user.Weight,
			Height:      user.Height,
			Gender:      user.Gender,
			FitnessGoal: user.FitnessGoal,
		},
		Preferences: prefs,
		CallbackURL: callbackURL,
	})
	if dispatchErr != nil {
		log.Error("workout plan dispatch failed", "action", "dispatch", "error", dispatchErr.Error())
		schedule.FailureReason = dispatchErr.Error()
		if _, err := s.store.ChangeStatus(ctx, schedule.ID, planner.StatusChange{
			From:          planner.StatusPending,
			To:            planner.StatusFailed,
			FailureReason: schedule.FailureReason,
		}); err != nil {
			log.Error("failed to mark schedule failed", "error", err.Error())
		}
		schedule.GenerationStatus = planner.StatusFailed
		return schedule, dispatchErr
	}

	var workflowID string
	if ack != nil {
		workflowID = ack.WorkflowID
	}
	moved, err := s.store.ChangeStatus(ctx, schedule.ID, planner.StatusChange{
		From:       planner.StatusPending,
		To:         planner.StatusProcessing,
		WorkflowID: workflowID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	if moved {
		schedule.GenerationStatus = planner.StatusProcessing
		schedule.WorkflowID = workflowID
	} else if latest, err := s.store.GetSchedule(ctx, schedule.ID); err == nil {
		// The callback already landed.
		schedule = latest
	}

	log.Info("workout plan requested", "action", "dispatch", "status", string(schedule.GenerationStatus))
	return schedule, nil
}

// Receive stores a plan posted back by the workflow, makes it the user's
// only active schedule and replaces its calendar events, all in one
// transaction. It overwrites the named schedule when it belongs to the
// user and otherwise creates one.
func (s *PlannerService) Receive(ctx context.Context, body *dto.PlanCallback) (*UserSchedule, string, error) {
	cb, err := planner.ParseCallback(body)
	if err != nil {
		return nil, "", err
	}

	var (
		schedule *UserSchedule
		action   = "created"
		events   []calendar.CalendarEvent
	)
	err = s.store.WithTx(ctx, func(tx ScheduleStore) error {
		if _, err := tx.GetUser(ctx, cb.UserID); err != nil {
			return notFound(err, ErrUserNotFound)
		}

		if cb.ScheduleID != nil {
			existing, err := tx.GetSchedule(ctx, *cb.ScheduleID)
			switch {
			case err == nil && existing.UserID == cb.UserID:
				schedule = existing
				action = "updated"
			case err != nil && !isNoRows(err):
				return err
			}
		}
		if schedule == nil {
			schedule = &UserSchedule{
				ID:                 uuid.New(),
				UserID:             cb.UserID,
				AvailableDays:      datatypes.JSON("[]"),
				AvailableTimeSlots: datatypes.JSON("{}"),
				EquipmentAccess:    datatypes.JSON("[]"),
				SessionsPerWeek:    len(calendarDays(cb.Plan)),
				SessionDuration:    defaultSessionDuration,
				GenerationStatus:   planner.StatusPending,
			}
		}
		if err := planner.Transition(schedule.GenerationStatus, planner.StatusCompleted); err != nil {
			return err
		}

		now := s.now()
		schedule.WeeklyPlan = datatypes.JSON(cb.Plan.JSON())
		schedule.GenerationStatus = planner.StatusCompleted
		schedule.FailureReason = ""
		schedule.GeneratedAt = &now
		if cb.WorkflowID != "" {
			schedule.WorkflowID = cb.WorkflowID
		}

		var err error
		if action == "created" {
			err = tx.CreateSchedule(ctx, schedule)
		} else {
			err = tx.SaveSchedule(ctx, schedule)
		}
		if err != nil {
			return err
		}
		if err := tx.ActivateSchedule(ctx, cb.UserID, schedule.ID); err != nil {
			return err
		}
		schedule.IsActive = true

		events = calendar.BuildEvents(cb.UserID, schedule.ID, cb.Plan, now)
		return tx.ReplaceEvents(ctx, schedule.ID, events)
	})
	if err != nil {
		return nil, "", err
	}

	slog.Info("workout plan received",
		"component", "training",
		"action", "callback_"+action,
		"user_id", cb.UserID.String(),
		"schedule_id", schedule.ID.String(),
		"events", len(events),
	)
	return schedule, action, nil
}

// calendarDays lists the plan days that materialize into events.
func calendarDays(plan planner.WeeklyPlan) []string {
	var days []string
	for _, d := range planner.Days {
		if _, ok := plan.Day(d); ok {
			days = append(days, d)
		}
	}
	return days
}

func (s *PlannerService) Get(ctx context.Context, userID, id uuid.UUID) (*UserSchedule, error) {
	schedule, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrScheduleNotFound)
	}
	if schedule.UserID != userID {
		return nil, ErrScheduleNotFound
	}
	return schedule, nil
}

func (s *PlannerService) List(ctx context.Context, userID uuid.UUID) ([]UserSchedule, error) {
	return s.store.ListSchedules(ctx, userID)
}

// Activate makes id the user's only active schedule.
func (s *PlannerService) Activate(ctx context.Context, userID, id uuid.UUID) (*UserSchedule, error) {
	err := s.store.WithTx(ctx, func(tx ScheduleStore) error {
		return notFound(tx.ActivateSchedule(ctx, userID, id), ErrScheduleNotFound)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Delete removes a schedule together with the events materialized from it.
func (s *PlannerService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx ScheduleStore) error {
		sched, err := tx.GetSchedule(ctx, id)
		if err != nil || sched.UserID != userID {
			if err == nil || isNoRows(err) {
				return ErrScheduleNotFound
			}
			return err
		}
		if err := tx.DeleteEvents(ctx, id); err != nil {
			return err
		}
		return notFound(tx.DeleteSchedule(ctx, userID, id), ErrScheduleNotFound)
	})
}

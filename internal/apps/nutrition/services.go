package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrFoodNotFound     = apperr.NotFound("food not found")
	ErrMealNotFound     = apperr.NotFound("meal not found")
	ErrPlanNotFound     = apperr.NotFound("meal plan not found")
	ErrScheduleNotFound = apperr.NotFound("meal schedule not found")
	ErrUserNotFound     = apperr.NotFound("user not found")
	ErrNoWeeklyPlan     = apperr.NotFound("schedule has no meal plan yet")
	ErrDayNotFound      = apperr.NotFound("no meal plan for this day")
	ErrFoodExists       = apperr.Conflict("food with this name already exists")
	ErrPlanExists       = apperr.Conflict("meal plan already exists for this date")
	ErrItemFields       = apperr.InvalidArgument("each item requires food_id and quantity")
	ErrQuantityRange    = apperr.InvalidArgument("quantity must be between 1 and 1000 grams")
	ErrNoItems          = apperr.InvalidArgument("meal must have at least one item")
	ErrMealFields       = apperr.InvalidArgument("name and meal_type are required")
	ErrMealType         = apperr.InvalidArgument("meal_type must be one of breakfast, lunch, dinner, snack")
	ErrFoodFields       = apperr.InvalidArgument("name and calories_per_100g are required")
	ErrNegativeMacro    = apperr.InvalidArgument("nutrition values cannot be negative")
	ErrGoalRequired     = apperr.InvalidArgument("goal is required")
	ErrPlanDate         = apperr.InvalidArgument("invalid date format, use YYYY-MM-DD")
	ErrPlanDateRequired = apperr.InvalidArgument("date is required")
	ErrGenerateFields   = apperr.InvalidArgument("goal_weight, days_to_goal and goal are required")
	ErrInvalidDay       = apperr.InvalidArgument("invalid day, use monday..sunday")
)

const (
	defaultActivityLevel = "moderate"
	defaultMealsPerDay   = 4
)

// notFound maps a missing row to want and passes other errors through.
func notFound(err, want error) error {
	if isNoRows(err) {
		return want
	}
	return err
}

// ParseDate accepts YYYY-MM-DD and returns UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrPlanDate
	}
	return d, nil
}

// ResolveItems validates a batch of requested items and attaches their
// foods. It fails on the first bad item; nothing is written by it.
func ResolveItems(ctx context.Context, store Store, inputs []ItemInput) ([]MealItem, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.FoodID == nil || in.Quantity == nil {
			return nil, ErrItemFields
		}
		ids = append(ids, *in.FoodID)
	}

	foods, err := store.FindFoods(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]MealItem, 0, len(inputs))
	for _, in := range inputs {
		food, ok := foods[*in.FoodID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrFoodNotFound, *in.FoodID)
		}
		if *in.Quantity < minQuantity || *in.Quantity > maxQuantity {
			return nil, ErrQuantityRange
		}
		items = append(items, MealItem{FoodID: food.ID, Food: food, Quantity: *in.Quantity})
	}
	return items, nil
}

// --- Catalog ---

type CatalogService struct {
	store Store
}

func NewCatalogService(store Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) Foods(ctx context.Context, f FoodFilter) ([]Food, error) {
	return s.store.ListFoods(ctx, f)
}

func (s *CatalogService) Food(ctx context.Context, id uuid.UUID) (*Food, error) {
	food, err := s.store.GetFood(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrFoodNotFound)
	}
	return food, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.store.FoodCategories(ctx)
}

func (s *CatalogService) CreateFood(ctx context.Context, req *CreateFoodRequest) (*Food, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.CaloriesPer100g == nil {
		return nil, ErrFoodFields
	}
	food := &Food{
		Name:            name,
		Category:        strings.TrimSpace(req.Category),
		CaloriesPer100g: *req.CaloriesPer100g,
		ProteinPer100g:  valueOr(req.ProteinPer100g, 0),
		CarbsPer100g:    valueOr(req.CarbsPer100g, 0),
		FatPer100g:      valueOr(req.FatPer100g, 0),
		Unit:            req.Unit,
		IsCommon:        req.IsCommon,
	}
	if food.CaloriesPer100g < 0 || food.ProteinPer100g < 0 || food.CarbsPer100g < 0 || food.FatPer100g < 0 {
		return nil, ErrNegativeMacro
	}
	if food.Unit == "" {
		food.Unit = "g"
	}
	if err := s.store.CreateFood(ctx, food); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFoodExists
		}
		return nil, fmt.Errorf("failed to create food: %w", err)
	}
	return food, nil
}

func (s *CatalogService) Meals(ctx context.Context, f MealFilter) ([]Meal, error) {
	return s.store.ListMeals(ctx, f)
}

func (s *CatalogService) Meal(ctx context.Context, id uuid.UUID) (*Meal, error) {
	meal, err := s.store.GetMeal(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMealNotFound)
	}
	return meal, nil
}

// Recommended lists meals for a goal, optionally of one type.
func (s *CatalogService) Recommended(ctx context.Context, goal, mealType string) ([]Meal, error) {
	if strings.TrimSpace(goal) == "" {
		return nil, ErrGoalRequired
	}
	return s.store.ListMeals(ctx, MealFilter{Goal: goal, MealType: mealType})
}

// CreateMeal validates the whole item batch before writing anything, then
// stores the meal, its items and the derived totals in one transaction.
func (s *CatalogService) CreateMeal(ctx context.Context, req *CreateMealRequest) (*Meal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.MealType == "" {
		return nil, ErrMealFields
	}
	if !MealTypes[req.MealType] {
		return nil, ErrMealType
	}
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	meal := &Meal{
		ID:          uuid.New(),
		Name:        name,
		MealType:    req.MealType,
		Goal:        req.Goal,
		Description: req.Description,
	}
	err := s.store.WithTx(ctx, func(tx Store) error {
		items, err := ResolveItems(ctx, tx, req.Items)
		if err != nil {
			return err
		}
		meal.Items = items
		RecomputeMealTotals(meal)
		if err := tx.CreateMeal(ctx, meal); err != nil {
			return err
		}
		return tx.ReplaceItems(ctx, meal.ID, items)
	})
	if err != nil {
		return nil, err
	}
	return s.Meal(ctx, meal.ID)
}

// UpdateMeal applies the present fields. A present items list replaces
// every item, and the day plans using the meal are recomputed with it.
func (s *CatalogService) UpdateMeal(ctx context.Context, id uuid.UUID, req *UpdateMealRequest) (*Meal, error) {
	err := s.store.WithTx(ctx, func(tx Store) error {
		meal, err := tx.GetMeal(ctx, id)
		if err != nil {
			return notFound(err, ErrMealNotFound)
		}

		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return ErrMealFields
			}
			meal.Name = strings.TrimSpace(*req.Name)
		}
		if req.MealType != nil {
			if !MealTypes[*req.MealType] {
				return ErrMealType
			}
			meal.MealType = *req.MealType
		}
		if req.Goal != nil {
			meal.Goal = *req.Goal
		}
		if req.Description != nil {
			meal.Description = *req.Description
		}

		if req.Items == nil {
			return tx.UpdateMeal(ctx, meal)
		}
		if len(*req.Items) == 0 {
			return ErrNoItems
		}
		items, err := ResolveItems(ctx, tx, *req.Items)
		if err != nil {
			return err
		}
		meal.Items = items
		RecomputeMealTotals(meal)
		if err := tx.UpdateMeal(ctx, meal); err != nil {
			return err
		}
		if err := tx.ReplaceItems(ctx, meal.ID, items); err != nil {
			return err
		}
		return recomputePlansWithMeal(ctx, tx, meal.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.Meal(ctx, id)
}

// DeleteMeal empties every slot holding the meal, recomputes those plans
// and removes the meal with its items.
func (s *CatalogService) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx Store) error {
		if _, err := tx.GetMeal(ctx, id); err != nil {
			return notFound(err, ErrMealNotFound)
		}
		plans, err := tx.PlansWithMeal(ctx, id)
		if err != nil {
			return err
		}
		for i := range plans {
			plans[i].clearSlot(id)
			if err := recomputePlan(ctx, tx, &plans[i]); err != nil {
				return err
			}
		}
		return notFound(tx.DeleteMeal(ctx, id), ErrMealNotFound)
	})
}

func (s *CatalogService) Stats(ctx context.Context) (*CatalogStats, error) {
	stats := &CatalogStats{ByType: map[string]int64{}, ByGoal: map[string]int64{}}

	var err error
	if stats.TotalMeals, err = s.store.CountMeals(ctx, "", ""); err != nil {
		return nil, err
	}
	for _, t := range []string{"breakfast", "lunch", "dinner", "snack"} {
		if stats.ByType[t], err = s.store.CountMeals(ctx, "meal_type", t); err != nil {
			return nil, err
		}
	}
	for _, g := range Goals {
		if stats.ByGoal[g], err = s.store.CountMeals(ctx, "goal", g); err != nil {
			return nil, err
		}
	}
	if stats.TotalFoods, err = s.store.CountFoods(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

func recomputePlansWithMeal(ctx context.Context, tx Store, mealID uuid.UUID) error {
	plans, err := tx.PlansWithMeal(ctx, mealID)
	if err != nil {
		return err
	}
	for i := range plans {
		if err := recomputePlan(ctx, tx, &plans[i]); err != nil {
			return err
		}
	}
	return nil
}

// recomputePlan reloads the slot meals of plan, refreshes its totals and saves it.
func recomputePlan(ctx context.Context, tx Store, plan *DailyMealPlan) error {
	meals, err := tx.FindMeals(ctx, plan.SlotIDs())
	if err != nil {
		return err
	}
	RecomputeDayTotals(plan, meals)
	return tx.SavePlan(ctx, plan)
}

// --- Daily plans ---

type PlanService struct {
	store Store
}

func NewPlanService(store Store) *PlanService {
	return &PlanService{store: store}
}

func (s *PlanService) List(ctx context.Context, userID uuid.UUID, date *time.Time) ([]DailyMealPlan, error) {
	return s.store.ListPlans(ctx, userID, date)
}

func (s *PlanService) Get(ctx context.Context, userID, id uuid.UUID) (*DailyMealPlan, error) {
	plan, err := s.store.GetPlan(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrPlanNotFound)
	}
	return plan, nil
}

// Create stores a plan for a date the user has no plan for yet.
func (s *PlanService) Create(ctx context.Context, userID uuid.UUID, req *PlanSlotsRequest) (*DailyMealPlan, error) {
	if strings.TrimSpace(req.Date) == "" {
		return nil, ErrPlanDateRequired
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	plan := &DailyMealPlan{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        datatypes.Date(date),
		BreakfastID: req.BreakfastID.ID,
		LunchID:     req.LunchID.ID,
		DinnerID:    req.DinnerID.ID,
		SnackID:     req.SnackID.ID,
	}
	err = s.store.WithTx(ctx, func(tx Store) error {
		exists, err := tx.PlanExists(ctx, userID, date)
		if err != nil {
			return err
		}
		if exists {
			return ErrPlanExists
		}
		meals, err := slotMeals(ctx, tx, plan)
		if err != nil {
			return err
		}
		RecomputeDayTotals(plan, meals)
		if err := tx.CreatePlan(ctx, plan); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrPlanExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Update reassigns the slots present in req. An explicit null empties a slot.
func (s *PlanService) Update(ctx context.Context, userID, id uuid.UUID, req *PlanSlotsRequest) (*DailyMealPlan, error) {
	var plan *DailyMealPlan
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		plan, err = tx.GetPlan(ctx, userID, id)
		if err != nil {
			return notFound(err, ErrPlanNotFound)
		}
		assign(&plan.BreakfastID, req.BreakfastID)
		assign(&plan.LunchID, req.LunchID)
		assign(&plan.DinnerID, req.DinnerID)
		assign(&plan.SnackID, req.SnackID)

		meals, err := slotMeals(ctx, tx, plan)
		if err != nil {
			return err
		}
		RecomputeDayTotals(plan, meals)
		return tx.SavePlan(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return notFound(s.store.DeletePlan(ctx, userID, id), ErrPlanNotFound)
}

// Stats averages the user's most recent days plans.
func (s *PlanService) Stats(ctx context.Context, userID uuid.UUID, days int) (PlanStats, error) {
	plans, err := s.store.RecentPlans(ctx, userID, days)
	if err != nil {
		return PlanStats{}, err
	}
	return ComputePlanStats(plans), nil
}

func assign(slot **uuid.UUID, v OptionalID) {
	if v.Set {
		*slot = v.ID
	}
}

// slotMeals loads the meals the plan points at; an unknown one is NotFound.
func slotMeals(ctx context.Context, tx Store, plan *DailyMealPlan) (map[uuid.UUID]*Meal, error) {
	ids := plan.SlotIDs()
	meals, err := tx.FindMeals(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := meals[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMealNotFound, id)
		}
	}
	return meals, nil
}

// --- Generated schedules ---

type ScheduleService struct {
	store      Store
	dispatcher planner.Dispatcher
	endpoint   string
	now        func() time.Time
}

func NewScheduleService(store Store, dispatcher planner.Dispatcher, endpoint string) *ScheduleService {
	return &ScheduleService{
		store:      store,
		dispatcher: dispatcher,
		endpoint:   endpoint,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Request records a pending schedule and hands it to the meal planner
// workflow. A failed dispatch leaves the schedule failed with the reason
// and returns an upstream error.
func (s *ScheduleService) Request(ctx context.Context, userID uuid.UUID, req *GenerateMealPlanRequest, callbackURL string) (*MealSchedule, error) {
	if req.GoalWeight == nil || req.DaysToGoal == nil || strings.TrimSpace(req.Goal) == "" {
		return nil, ErrGenerateFields
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	prefs := mealPreferences{
		GoalWeight:          req.GoalWeight,
		DaysToGoal:          req.DaysToGoal,
		Goal:                req.Goal,
		ActivityLevel:       req.ActivityLevel,
		DietaryRestrictions: req.DietaryRestrictions,
		MealsPerDay:         defaultMealsPerDay,
	}
	if prefs.ActivityLevel == "" {
		prefs.ActivityLevel = defaultActivityLevel
	}
	if prefs.DietaryRestrictions == nil {
		prefs.DietaryRestrictions = []string{}
	}
	if req.MealsPerDay != nil && *req.MealsPerDay > 0 {
		prefs.MealsPerDay = *req.MealsPerDay
	}

	currentWeight := req.CurrentWeight
	if currentWeight == nil {
		currentWeight = user.Weight
	}
	restrictions, _ := json.Marshal(prefs.DietaryRestrictions)

	schedule := &MealSchedule{
		ID:                  uuid.New(),
		UserID:              userID,
		CurrentWeight:       currentWeight,
		GoalWeight:          prefs.GoalWeight,
		DaysToGoal:          prefs.DaysToGoal,
		Goal:                prefs.Goal,
		ActivityLevel:       prefs.ActivityLevel,
		DietaryRestrictions: datatypes.JSON(restrictions),
		MealsPerDay:         prefs.MealsPerDay,
		GenerationStatus:    planner.StatusPending,
		IsActive:            false,
	}
	if err := s.store.CreateSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create meal schedule: %w", err)
	}

	log := slog.With("component", "nutrition", "user_id", userID.String(), "schedule_id", schedule.ID.String())

	ack, dispatchErr := s.dispatcher.Dispatch(ctx, s.endpoint, &planner.GenerationRequest{
		UserID:     userID,
		ScheduleID: schedule.ID,
		UserData: mealUserData{
			Age:           user.Age,
			Gender:        user.Gender,
			Height:        user.Height,
			CurrentWeight: currentWeight,
		},
		Preferences: prefs,
		CallbackURL: callbackURL,
	})
	if dispatchErr != nil {
		log.Error("meal plan dispatch failed", "action", "dispatch", "error", dispatchErr.Error())
		schedule.FailureReason = dispatchErr.Error()
		if _, err := s.store.ChangeStatus(ctx, schedule.ID, planner.StatusChange{
			From:          planner.StatusPending,
			To:            planner.StatusFailed,
			FailureReason: schedule.FailureReason,
		}); err != nil {
			log.Error("failed to mark meal schedule failed", "error", err.Error())
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
		return nil, fmt.Errorf("failed to update meal schedule: %w", err)
	}
	if moved {
		schedule.GenerationStatus = planner.StatusProcessing
		schedule.WorkflowID = workflowID
	} else if latest, err := s.store.GetSchedule(ctx, schedule.ID); err == nil {
		// The callback already landed.
		schedule = latest
	}

	log.Info("meal plan requested", "action", "dispatch", "status", string(schedule.GenerationStatus))
	return schedule, nil
}

// Receive stores a plan posted back by the workflow. It overwrites the
// named schedule when it belongs to the user and otherwise creates one.
// The stored schedule becomes the user's only active one.
func (s *ScheduleService) Receive(ctx context.Context, body *dto.PlanCallback) (*MealSchedule, string, error) {
	cb, err := planner.ParseCallback(body)
	if err != nil {
		return nil, "", err
	}

	var (
		schedule *MealSchedule
		action   = "created"
	)
	err = s.store.WithTx(ctx, func(tx Store) error {
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
			schedule = &MealSchedule{
				ID:                  uuid.New(),
				UserID:              cb.UserID,
				GenerationStatus:    planner.StatusPending,
				DietaryRestrictions: datatypes.JSON("[]"),
				MealsPerDay:         defaultMealsPerDay,
			}
		}
		if err := planner.Transition(schedule.GenerationStatus, planner.StatusCompleted); err != nil {
			return err
		}

		applyCallback(schedule, cb, s.now())

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
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	slog.Info("meal plan received",
		"component", "nutrition",
		"action", "callback_"+action,
		"user_id", cb.UserID.String(),
		"schedule_id", schedule.ID.String(),
	)
	return schedule, action, nil
}

func applyCallback(s *MealSchedule, cb *planner.Callback, now time.Time) {
	s.WeeklyPlan = datatypes.JSON(cb.Plan.JSON())
	s.GenerationStatus = planner.StatusCompleted
	s.FailureReason = ""
	s.GeneratedAt = &now
	if cb.WorkflowID != "" {
		s.WorkflowID = cb.WorkflowID
	}

	if t := cb.Targets; t != nil {
		s.DailyCalories = t.DailyCalories
		s.DailyProtein = t.DailyProtein
		s.DailyCarbs = t.DailyCarbs
		s.DailyFat = t.DailyFat
	}
	if u := cb.UserData; u != nil {
		if u.CurrentWeight != nil {
			s.CurrentWeight = u.CurrentWeight
		}
		if u.GoalWeight != nil {
			s.GoalWeight = u.GoalWeight
		}
		if u.DaysToGoal != nil {
			s.DaysToGoal = u.DaysToGoal
		}
		if u.Goal != "" {
			s.Goal = u.Goal
		}
	}
}

func (s *ScheduleService) List(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]MealSchedule, error) {
	return s.store.ListSchedules(ctx, userID, activeOnly)
}

// Active returns the user's active schedule, or nil when none is active.
func (s *ScheduleService) Active(ctx context.Context, userID uuid.UUID) (*MealSchedule, error) {
	list, err := s.store.ListSchedules(ctx, userID, true)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

func (s *ScheduleService) Get(ctx context.Context, userID, id uuid.UUID) (*MealSchedule, error) {
	schedule, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrScheduleNotFound)
	}
	if schedule.UserID != userID {
		return nil, ErrScheduleNotFound
	}
	return schedule, nil
}

// Activate makes id the user's only active schedule.
func (s *ScheduleService) Activate(ctx context.Context, userID, id uuid.UUID) (*MealSchedule, error) {
	err := s.store.WithTx(ctx, func(tx Store) error {
		return notFound(tx.ActivateSchedule(ctx, userID, id), ErrScheduleNotFound)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Day returns the raw plan of one weekday.
func (s *ScheduleService) Day(ctx context.Context, userID, id uuid.UUID, day string) (json.RawMessage, error) {
	day = strings.ToLower(day)
	if _, ok := planner.Weekday(day); !ok {
		return nil, ErrInvalidDay
	}
	schedule, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	plan, ok := schedule.Plan()
	if !ok {
		return nil, ErrNoWeeklyPlan
	}
	raw, ok := plan[day]
	if !ok || string(raw) == "null" {
		return nil, ErrDayNotFound
	}
	return raw, nil
}

func (s *ScheduleService) Summary(ctx context.Context, userID, id uuid.UUID) (*WeeklySummary, error) {
	schedule, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if _, ok := schedule.Plan(); !ok {
		return nil, ErrNoWeeklyPlan
	}
	summary := ComputeWeeklySummary(schedule)
	return &summary, nil
}

func (s *ScheduleService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return notFound(s.store.DeleteSchedule(ctx, userID, id), ErrScheduleNotFound)
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

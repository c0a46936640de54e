package nutrition

import (
	"context"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ Store = (*memStore)(nil)

// memStore is an in-memory Store. WithTx restores the previous state when
// fn fails, so tests can observe rollback.
type memStore struct {
	users     map[uuid.UUID]models.User
	foods     map[uuid.UUID]Food
	meals     map[uuid.UUID]Meal
	items     map[uuid.UUID][]MealItem
	plans     map[uuid.UUID]DailyMealPlan
	schedules map[uuid.UUID]MealSchedule
	locks     int
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]models.User{},
		foods:     map[uuid.UUID]Food{},
		meals:     map[uuid.UUID]Meal{},
		items:     map[uuid.UUID][]MealItem{},
		plans:     map[uuid.UUID]DailyMealPlan{},
		schedules: map[uuid.UUID]MealSchedule{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	foods, meals, items := copyMap(s.foods), copyMap(s.meals), copyMap(s.items)
	plans, schedules := copyMap(s.plans), copyMap(s.schedules)
	if err := fn(s); err != nil {
		s.foods, s.meals, s.items, s.plans, s.schedules = foods, meals, items, plans, schedules
		return err
	}
	return nil
}

func (s *memStore) addUser() uuid.UUID {
	id := uuid.New()
	w := 80.0
	s.users[id] = models.User{ID: id, Email: id.String() + "@test.local", Weight: &w}
	return id
}

func (s *memStore) addFood(name string, cal, protein, carbs, fat float64) Food {
	f := Food{ID: uuid.New(), Name: name, CaloriesPer100g: cal, ProteinPer100g: protein, CarbsPer100g: carbs, FatPer100g: fat, Unit: "g"}
	s.foods[f.ID] = f
	return f
}

func (s *memStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s *memStore) ListFoods(ctx context.Context, f FoodFilter) ([]Food, error) {
	var out []Food
	for _, food := range s.foods {
		if f.Category != "" && food.Category != f.Category {
			continue
		}
		if f.CommonOnly && !food.IsCommon {
			continue
		}
		out = append(out, food)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) GetFood(ctx context.Context, id uuid.UUID) (*Food, error) {
	f, ok := s.foods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &f, nil
}

func (s *memStore) FindFoods(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Food, error) {
	out := map[uuid.UUID]Food{}
	for _, id := range ids {
		if f, ok := s.foods[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func (s *memStore) FoodCategories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, f := range s.foods {
		if f.Category != "" && !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *memStore) CreateFood(ctx context.Context, food *Food) error {
	for _, f := range s.foods {
		if f.Name == food.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if food.ID == uuid.Nil {
		food.ID = uuid.New()
	}
	s.foods[food.ID] = *food
	return nil
}

func (s *memStore) CountFoods(ctx context.Context) (int64, error) {
	return int64(len(s.foods)), nil
}

func (s *memStore) ListMeals(ctx context.Context, f MealFilter) ([]Meal, error) {
	var out []Meal
	for _, m := range s.meals {
		if f.MealType != "" && m.MealType != f.MealType {
			continue
		}
		if f.Goal != "" && m.Goal != f.Goal {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) GetMeal(ctx context.Context, id uuid.UUID) (*Meal, error) {
	m, ok := s.meals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, it := range s.items[id] {
		it.Food = s.foods[it.FoodID]
		m.Items = append(m.Items, it)
	}
	return &m, nil
}

func (s *memStore) FindMeals(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Meal, error) {
	out := map[uuid.UUID]*Meal{}
	for _, id := range ids {
		if m, ok := s.meals[id]; ok {
			out[id] = &m
		}
	}
	return out, nil
}

func (s *memStore) CreateMeal(ctx context.Context, meal *Meal) error {
	m := *meal
	m.Items = nil
	s.meals[m.ID] = m
	return nil
}

func (s *memStore) UpdateMeal(ctx context.Context, meal *Meal) error {
	return s.CreateMeal(ctx, meal)
}

func (s *memStore) ReplaceItems(ctx context.Context, mealID uuid.UUID, items []MealItem) error {
	rows := make([]MealItem, len(items))
	for i, it := range items {
		rows[i] = MealItem{ID: uuid.New(), MealID: mealID, FoodID: it.FoodID, Quantity: it.Quantity}
	}
	s.items[mealID] = rows
	return nil
}

func (s *memStore) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.meals[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.meals, id)
	delete(s.items, id)
	return nil
}

func (s *memStore) CountMeals(ctx context.Context, column, value string) (int64, error) {
	var n int64
	for _, m := range s.meals {
		switch {
		case column == "":
			n++
		case column == "meal_type" && m.MealType == value:
			n++
		case column == "goal" && m.Goal == value:
			n++
		}
	}
	return n, nil
}

func (s *memStore) withMeals(p DailyMealPlan) DailyMealPlan {
	meals, _ := s.FindMeals(context.Background(), p.SlotIDs())
	p.Breakfast, p.Lunch, p.Dinner, p.Snack = pick(meals, p.BreakfastID), pick(meals, p.LunchID), pick(meals, p.DinnerID), pick(meals, p.SnackID)
	return p
}

func (s *memStore) ListPlans(ctx context.Context, userID uuid.UUID, date *time.Time) ([]DailyMealPlan, error) {
	var out []DailyMealPlan
	for _, p := range s.plans {
		if p.UserID != userID || (date != nil && !time.Time(p.Date).Equal(*date)) {
			continue
		}
		out = append(out, s.withMeals(p))
	}
	sort.Slice(out, func(i, j int) bool { return time.Time(out[i].Date).After(time.Time(out[j].Date)) })
	return out, nil
}

func (s *memStore) GetPlan(ctx context.Context, userID, id uuid.UUID) (*DailyMealPlan, error) {
	p, ok := s.plans[id]
	if !ok || p.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	p = s.withMeals(p)
	return &p, nil
}

func (s *memStore) PlanExists(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	for _, p := range s.plans {
		if p.UserID == userID && time.Time(p.Date).Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) PlansWithMeal(ctx context.Context, mealID uuid.UUID) ([]DailyMealPlan, error) {
	var out []DailyMealPlan
	for _, p := range s.plans {
		for _, id := range p.SlotIDs() {
			if id == mealID {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *memStore) RecentPlans(ctx context.Context, userID uuid.UUID, limit int) ([]DailyMealPlan, error) {
	out, _ := s.ListPlans(ctx, userID, nil)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) CreatePlan(ctx context.Context, plan *DailyMealPlan) error {
	if exists, _ := s.PlanExists(ctx, plan.UserID, time.Time(plan.Date)); exists {
		return gorm.ErrDuplicatedKey
	}
	return s.SavePlan(ctx, plan)
}

func (s *memStore) SavePlan(ctx context.Context, plan *DailyMealPlan) error {
	p := *plan
	p.Breakfast, p.Lunch, p.Dinner, p.Snack = nil, nil, nil, nil
	s.plans[p.ID] = p
	return nil
}

func (s *memStore) DeletePlan(ctx context.Context, userID, id uuid.UUID) error {
	p, ok := s.plans[id]
	if !ok || p.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(s.plans, id)
	return nil
}

func (s *memStore) CreateSchedule(ctx context.Context, sched *MealSchedule) error {
	s.schedules[sched.ID] = *sched
	return nil
}

func (s *memStore) SaveSchedule(ctx context.Context, sched *MealSchedule) error {
	return s.CreateSchedule(ctx, sched)
}

func (s *memStore) GetSchedule(ctx context.Context, id uuid.UUID) (*MealSchedule, error) {
	sched, ok := s.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sched, nil
}

func (s *memStore) ListSchedules(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]MealSchedule, error) {
	var out []MealSchedule
	for _, sched := range s.schedules {
		if sched.UserID == userID && (!activeOnly || sched.IsActive) {
			out = append(out, sched)
		}
	}
	return out, nil
}

func (s *memStore) ChangeStatus(ctx context.Context, id uuid.UUID, ch planner.StatusChange) (bool, error) {
	sched, ok := s.schedules[id]
	if !ok || sched.GenerationStatus != ch.From {
		return false, nil
	}
	sched.GenerationStatus = ch.To
	if ch.WorkflowID != "" {
		sched.WorkflowID = ch.WorkflowID
	}
	if ch.FailureReason != "" {
		sched.FailureReason = ch.FailureReason
	}
	s.schedules[id] = sched
	return true, nil
}

func (s *memStore) ActivateSchedule(ctx context.Context, userID, id uuid.UUID) error {
	s.locks++
	target, ok := s.schedules[id]
	if !ok || target.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	for sid, sched := range s.schedules {
		if sched.UserID == userID {
			sched.IsActive = sid == id
			s.schedules[sid] = sched
		}
	}
	return nil
}

func (s *memStore) DeleteSchedule(ctx context.Context, userID, id uuid.UUID) error {
	sched, ok := s.schedules[id]
	if !ok || sched.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(s.schedules, id)
	return nil
}

func (s *memStore) countActive(userID uuid.UUID) int {
	n := 0
	for _, sched := range s.schedules {
		if sched.UserID == userID && sched.IsActive {
			n++
		}
	}
	return n
}

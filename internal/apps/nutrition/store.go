package nutrition

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errNoRows is returned by Store lookups that match nothing. Services map
// it to the NotFound error of the entity they asked for.
var errNoRows = gorm.ErrRecordNotFound

type FoodFilter struct {
	Category   string
	CommonOnly bool
}

type MealFilter struct {
	MealType string
	Goal     string
}

// Store is the persistence surface of the nutrition app. WithTx runs fn
// against a Store bound to one transaction.
type Store interface {
	WithTx(ctx context.Context, fn func(tx Store) error) error

	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	ListFoods(ctx context.Context, f FoodFilter) ([]Food, error)
	GetFood(ctx context.Context, id uuid.UUID) (*Food, error)
	FindFoods(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Food, error)
	FoodCategories(ctx context.Context) ([]string, error)
	CreateFood(ctx context.Context, food *Food) error
	CountFoods(ctx context.Context) (int64, error)

	ListMeals(ctx context.Context, f MealFilter) ([]Meal, error)
	GetMeal(ctx context.Context, id uuid.UUID) (*Meal, error)
	FindMeals(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Meal, error)
	CreateMeal(ctx context.Context, meal *Meal) error
	UpdateMeal(ctx context.Context, meal *Meal) error
	ReplaceItems(ctx context.Context, mealID uuid.UUID, items []MealItem) error
	DeleteMeal(ctx context.Context, id uuid.UUID) error
	CountMeals(ctx context.Context, column, value string) (int64, error)

	ListPlans(ctx context.Context, userID uuid.UUID, date *time.Time) ([]DailyMealPlan, error)
	GetPlan(ctx context.Context, userID, id uuid.UUID) (*DailyMealPlan, error)
	PlanExists(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error)
	PlansWithMeal(ctx context.Context, mealID uuid.UUID) ([]DailyMealPlan, error)
	RecentPlans(ctx context.Context, userID uuid.UUID, limit int) ([]DailyMealPlan, error)
	CreatePlan(ctx context.Context, plan *DailyMealPlan) error
	SavePlan(ctx context.Context, plan *DailyMealPlan) error
	DeletePlan(ctx context.Context, userID, id uuid.UUID) error

	CreateSchedule(ctx context.Context, s *MealSchedule) error
	SaveSchedule(ctx context.Context, s *MealSchedule) error
	GetSchedule(ctx context.Context, id uuid.UUID) (*MealSchedule, error)
	ListSchedules(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]MealSchedule, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, ch planner.StatusChange) (bool, error)
	ActivateSchedule(ctx context.Context, userID, id uuid.UUID) error
	DeleteSchedule(ctx context.Context, userID, id uuid.UUID) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Foods ---

func (s *gormStore) ListFoods(ctx context.Context, f FoodFilter) ([]Food, error) {
	q := s.db.WithContext(ctx)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.CommonOnly {
		q = q.Where("is_common = ?", true)
	}
	var foods []Food
	err := q.Order("name ASC").Find(&foods).Error
	return foods, err
}

func (s *gormStore) GetFood(ctx context.Context, id uuid.UUID) (*Food, error) {
	var food Food
	if err := s.db.WithContext(ctx).First(&food, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *gormStore) FindFoods(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Food, error) {
	out := make(map[uuid.UUID]Food, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var foods []Food
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}
	for _, f := range foods {
		out[f.ID] = f
	}
	return out, nil
}

func (s *gormStore) FoodCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&Food{}).
		Where("category <> ''").
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (s *gormStore) CreateFood(ctx context.Context, food *Food) error {
	return s.db.WithContext(ctx).Create(food).Error
}

func (s *gormStore) CountFoods(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Food{}).Count(&n).Error
	return n, err
}

// --- Meals ---

func (s *gormStore) ListMeals(ctx context.Context, f MealFilter) ([]Meal, error) {
	q := s.db.WithContext(ctx)
	if f.MealType != "" {
		q = q.Where("meal_type = ?", f.MealType)
	}
	if f.Goal != "" {
		q = q.Where("goal = ?", f.Goal)
	}
	var meals []Meal
	err := q.Order("name ASC").Find(&meals).Error
	return meals, err
}

func (s *gormStore) GetMeal(ctx context.Context, id uuid.UUID) (*Meal, error) {
	var meal Meal
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Food").
		First(&meal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *gormStore) FindMeals(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Meal, error) {
	out := make(map[uuid.UUID]*Meal, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var meals []Meal
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&meals).Error; err != nil {
		return nil, err
	}
	for i := range meals {
		out[meals[i].ID] = &meals[i]
	}
	return out, nil
}

func (s *gormStore) CreateMeal(ctx context.Context, meal *Meal) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(meal).Error
}

func (s *gormStore) UpdateMeal(ctx context.Context, meal *Meal) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(meal).Error
}

func (s *gormStore) ReplaceItems(ctx context.Context, mealID uuid.UUID, items []MealItem) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("meal_id = ?", mealID).Delete(&MealItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	rows := make([]MealItem, len(items))
	for i, it := range items {
		rows[i] = MealItem{MealID: mealID, FoodID: it.FoodID, Quantity: it.Quantity}
	}
	return db.Omit("Food").Create(&rows).Error
}

func (s *gormStore) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("meal_id = ?", id).Delete(&MealItem{}).Error; err != nil {
		return err
	}
	res := db.Delete(&Meal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNoRows
	}
	return nil
}

func (s *gormStore) CountMeals(ctx context.Context, column, value string) (int64, error) {
	q := s.db.WithContext(ctx).Model(&Meal{})
	if column != "" {
		q = q.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// --- Daily plans ---

func (s *gormStore) planQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Breakfast").
		Preload("Lunch").
		Preload("Dinner").
		Preload("Snack")
}

func (s *gormStore) ListPlans(ctx context.Context, userID uuid.UUID, date *time.Time) ([]DailyMealPlan, error) {
	q := s.planQuery(ctx).Where("user_id = ?", userID)
	if date != nil {
		q = q.Where("date = ?", datatypes.Date(*date))
	}
	var plans []DailyMealPlan
	err := q.Order("date DESC").Find(&plans).Error
	return plans, err
}

func (s *gormStore) GetPlan(ctx context.Context, userID, id uuid.UUID) (*DailyMealPlan, error) {
	var plan DailyMealPlan
	if err := s.planQuery(ctx).First(&plan, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *gormStore) PlanExists(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&DailyMealPlan{}).
		Where("user_id = ? AND date = ?", userID, datatypes.Date(date)).
		Count(&n).Error
	return n > 0, err
}

func (s *gormStore) PlansWithMeal(ctx context.Context, mealID uuid.UUID) ([]DailyMealPlan, error) {
	var plans []DailyMealPlan
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("breakfast_id = ? OR lunch_id = ? OR dinner_id = ? OR snack_id = ?", mealID, mealID, mealID, mealID).
		Find(&plans).Error
	return plans, err
}

func (s *gormStore) RecentPlans(ctx context.Context, userID uuid.UUID, limit int) ([]DailyMealPlan, error) {
	var plans []DailyMealPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&plans).Error
	return plans, err
}

func (s *gormStore) CreatePlan(ctx context.Context, plan *DailyMealPlan) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(plan).Error
}

func (s *gormStore) SavePlan(ctx context.Context, plan *DailyMealPlan) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(plan).Error
}

func (s *gormStore) DeletePlan(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&DailyMealPlan{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNoRows
	}
	return nil
}

// --- Schedules ---

func (s *gormStore) CreateSchedule(ctx context.Context, sched *MealSchedule) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(sched).Error
}

func (s *gormStore) SaveSchedule(ctx context.Context, sched *MealSchedule) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(sched).Error
}

func (s *gormStore) GetSchedule(ctx context.Context, id uuid.UUID) (*MealSchedule, error) {
	var sched MealSchedule
	if err := s.db.WithContext(ctx).First(&sched, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

func (s *gormStore) ListSchedules(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]MealSchedule, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []MealSchedule
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *gormStore) ChangeStatus(ctx context.Context, id uuid.UUID, ch planner.StatusChange) (bool, error) {
	return planner.ChangeStatus(s.db.WithContext(ctx), &MealSchedule{}, id, ch)
}

// ActivateSchedule must run inside WithTx for the row lock to hold.
func (s *gormStore) ActivateSchedule(ctx context.Context, userID, id uuid.UUID) error {
	return planner.ActivateExclusive(s.db.WithContext(ctx), &MealSchedule{}, userID, id)
}

func (s *gormStore) DeleteSchedule(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&MealSchedule{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNoRows
	}
	return nil
}

// PurgeUser removes the user's plans and schedules. Meals and foods are
// shared catalog data and stay.
func PurgeUser(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Where("user_id = ?", userID).Delete(&DailyMealPlan{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Delete(&MealSchedule{}).Error
}

func isNoRows(err error) bool {
	return errors.Is(err, errNoRows)
}

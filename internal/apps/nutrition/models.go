package nutrition

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Food is a catalog entry with macros per 100 g.
type Food struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category        string    `gorm:"size:50;index" json:"category"`
	CaloriesPer100g float64   `gorm:"not null" json:"calories_per_100g"`
	ProteinPer100g  float64   `gorm:"not null" json:"protein_per_100g"`
	CarbsPer100g    float64   `gorm:"not null" json:"carbs_per_100g"`
	FatPer100g      float64   `gorm:"not null" json:"fat_per_100g"`
	Unit            string    `gorm:"size:20;default:'g'" json:"unit"`
	IsCommon        bool      `gorm:"default:false;index" json:"is_common"`
	CreatedAt       time.Time `json:"created_at"`
}

// Meal is a composition of foods. The totals are derived from Items and
// rewritten whenever the items change.
type Meal struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	MealType      string     `gorm:"size:20;not null;index" json:"meal_type"`
	Goal          string     `gorm:"size:50;index" json:"goal"`
	Description   string     `gorm:"type:text" json:"description"`
	TotalCalories float64    `gorm:"default:0" json:"total_calories"`
	TotalProtein  float64    `gorm:"default:0" json:"total_protein"`
	TotalCarbs    float64    `gorm:"default:0" json:"total_carbs"`
	TotalFat      float64    `gorm:"default:0" json:"total_fat"`
	Items         []MealItem `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type MealItem struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MealID   uuid.UUID `gorm:"type:uuid;not null;index" json:"meal_id"`
	FoodID   uuid.UUID `gorm:"type:uuid;not null;index" json:"food_id"`
	Food     Food      `gorm:"constraint:OnDelete:RESTRICT" json:"food"`
	Quantity float64   `gorm:"not null" json:"quantity"`
}

// DailyMealPlan assigns up to four meals to one date. Slots reference
// meals without owning them; deleting a meal empties the slot.
type DailyMealPlan struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_daily_plan_user_date" json:"user_id"`
	User          models.User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Date          datatypes.Date `gorm:"not null;uniqueIndex:idx_daily_plan_user_date" json:"date"`
	BreakfastID   *uuid.UUID     `gorm:"type:uuid" json:"breakfast_id"`
	Breakfast     *Meal          `gorm:"foreignKey:BreakfastID;constraint:OnDelete:SET NULL" json:"-"`
	LunchID       *uuid.UUID     `gorm:"type:uuid" json:"lunch_id"`
	Lunch         *Meal          `gorm:"foreignKey:LunchID;constraint:OnDelete:SET NULL" json:"-"`
	DinnerID      *uuid.UUID     `gorm:"type:uuid" json:"dinner_id"`
	Dinner        *Meal          `gorm:"foreignKey:DinnerID;constraint:OnDelete:SET NULL" json:"-"`
	SnackID       *uuid.UUID     `gorm:"type:uuid" json:"snack_id"`
	Snack         *Meal          `gorm:"foreignKey:SnackID;constraint:OnDelete:SET NULL" json:"-"`
	TotalCalories float64        `gorm:"default:0" json:"total_calories"`
	TotalProtein  float64        `gorm:"default:0" json:"total_protein"`
	TotalCarbs    float64        `gorm:"default:0" json:"total_carbs"`
	TotalFat      float64        `gorm:"default:0" json:"total_fat"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// MealSchedule is a generated weekly meal plan and its generation state.
type MealSchedule struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User                models.User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CurrentWeight       *float64       `json:"current_weight"`
	GoalWeight          *float64       `json:"goal_weight"`
	DaysToGoal          *int           `json:"days_to_goal"`
	Goal                string         `gorm:"size:50" json:"goal"`
	ActivityLevel       string         `gorm:"size:30" json:"activity_level"`
	DietaryRestrictions datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"dietary_restrictions"`
	MealsPerDay         int            `gorm:"default:4" json:"meals_per_day"`
	WeeklyPlan          datatypes.JSON `gorm:"type:jsonb" json:"weekly_plan"`
	DailyCalories       *float64       `json:"daily_calories"`
	DailyProtein        *float64       `json:"daily_protein"`
	DailyCarbs          *float64       `json:"daily_carbs"`
	DailyFat            *float64       `json:"daily_fat"`
	GenerationStatus    planner.Status `gorm:"size:20;not null;default:'pending';index" json:"generation_status"`
	WorkflowID          string         `gorm:"size:100" json:"workflow_id,omitempty"`
	FailureReason       string         `gorm:"type:text" json:"failure_reason,omitempty"`
	IsActive            bool           `gorm:"default:false;index" json:"is_active"`
	GeneratedAt         *time.Time     `json:"generated_at"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Plan decodes the stored weekly plan; ok is false when none is stored.
func (s *MealSchedule) Plan() (planner.WeeklyPlan, bool) {
	if len(bytes.TrimSpace(s.WeeklyPlan)) == 0 {
		return nil, false
	}
	return planner.ParseWeeklyPlan(json.RawMessage(s.WeeklyPlan))
}

var MealTypes = map[string]bool{"breakfast": true, "lunch": true, "dinner": true, "snack": true}

// Goals are the goal buckets reported by the catalog stats.
var Goals = []string{"weight_loss", "muscle_gain", "maintenance"}

// --- DTOs ---

type CreateFoodRequest struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	CaloriesPer100g *float64 `json:"calories_per_100g"`
	ProteinPer100g  *float64 `json:"protein_per_100g"`
	CarbsPer100g    *float64 `json:"carbs_per_100g"`
	FatPer100g      *float64 `json:"fat_per_100g"`
	Unit            string   `json:"unit"`
	IsCommon        bool     `json:"is_common"`
}

// ItemInput is one requested meal line. Both fields are required.
type ItemInput struct {
	FoodID   *uuid.UUID `json:"food_id"`
	Quantity *float64   `json:"quantity"`
}

type CreateMealRequest struct {
	Name        string      `json:"name"`
	MealType    string      `json:"meal_type"`
	Goal        string      `json:"goal"`
	Description string      `json:"description"`
	Items       []ItemInput `json:"items"`
}

// UpdateMealRequest replaces the items only when Items is present.
type UpdateMealRequest struct {
	Name        *string      `json:"name"`
	MealType    *string      `json:"meal_type"`
	Goal        *string      `json:"goal"`
	Description *string      `json:"description"`
	Items       *[]ItemInput `json:"items"`
}

// OptionalID tells an absent key apart from an explicit null.
type OptionalID struct {
	Set bool
	ID  *uuid.UUID
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(bytes.TrimSpace(b)) == "null" {
		o.ID = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.ID = &id
	return nil
}

type PlanSlotsRequest struct {
	Date        string     `json:"date"`
	BreakfastID OptionalID `json:"breakfast_id"`
	LunchID     OptionalID `json:"lunch_id"`
	DinnerID    OptionalID `json:"dinner_id"`
	SnackID     OptionalID `json:"snack_id"`
}

type GenerateMealPlanRequest struct {
	CurrentWeight       *float64 `json:"current_weight"`
	GoalWeight          *float64 `json:"goal_weight"`
	DaysToGoal          *int     `json:"days_to_goal"`
	Goal                string   `json:"goal"`
	ActivityLevel       string   `json:"activity_level"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	MealsPerDay         *int     `json:"meals_per_day"`
}

type mealUserData struct {
	Age           *int     `json:"age"`
	Gender        string   `json:"gender"`
	Height        *float64 `json:"height"`
	CurrentWeight *float64 `json:"current_weight"`
}

type mealPreferences struct {
	GoalWeight          *float64 `json:"goal_weight"`
	DaysToGoal          *int     `json:"days_to_goal"`
	Goal                string   `json:"goal"`
	ActivityLevel       string   `json:"activity_level"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	MealsPerDay         int      `json:"meals_per_day"`
}

type MealItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Food      Food      `json:"food"`
	Quantity  float64   `json:"quantity"`
	Nutrition Nutrition `json:"nutrition"`
}

type MealResponse struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	MealType      string             `json:"meal_type"`
	Goal          string             `json:"goal"`
	Description   string             `json:"description"`
	TotalCalories float64            `json:"total_calories"`
	TotalProtein  float64            `json:"total_protein"`
	TotalCarbs    float64            `json:"total_carbs"`
	TotalFat      float64            `json:"total_fat"`
	Items         []MealItemResponse `json:"items,omitempty"`
}

type PlanResponse struct {
	ID            uuid.UUID     `json:"id"`
	Date          string        `json:"date"`
	Breakfast     *MealResponse `json:"breakfast"`
	Lunch         *MealResponse `json:"lunch"`
	Dinner        *MealResponse `json:"dinner"`
	Snack         *MealResponse `json:"snack"`
	TotalCalories float64       `json:"total_calories"`
	TotalProtein  float64       `json:"total_protein"`
	TotalCarbs    float64       `json:"total_carbs"`
	TotalFat      float64       `json:"total_fat"`
}

type PlanStats struct {
	TotalPlans      int        `json:"total_plans"`
	AverageCalories float64    `json:"average_calories"`
	AverageProtein  float64    `json:"average_protein"`
	AverageCarbs    float64    `json:"average_carbs"`
	AverageFat      float64    `json:"average_fat"`
	DateRange       *DateRange `json:"date_range,omitempty"`
}

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type CatalogStats struct {
	TotalMeals int64            `json:"total_meals"`
	ByType     map[string]int64 `json:"by_type"`
	ByGoal     map[string]int64 `json:"by_goal"`
	TotalFoods int64            `json:"total_foods"`
}

// Targets are the daily goals stored with a schedule; nil when absent.
type Targets struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

type WeeklySummary struct {
	ScheduleID    uuid.UUID      `json:"schedule_id"`
	WeeklyTotals  planner.Totals `json:"weekly_totals"`
	DailyAverages planner.Totals `json:"daily_averages"`
	Targets       Targets        `json:"targets"`
	DaysCount     int            `json:"days_count"`
}

const dateLayout = "2006-01-02"

func toMealResponse(m *Meal, withItems bool) MealResponse {
	resp := MealResponse{
		ID:            m.ID,
		Name:          m.Name,
		MealType:      m.MealType,
		Goal:          m.Goal,
		Description:   m.Description,
		TotalCalories: m.TotalCalories,
		TotalProtein:  m.TotalProtein,
		TotalCarbs:    m.TotalCarbs,
		TotalFat:      m.TotalFat,
	}
	if withItems {
		resp.Items = make([]MealItemResponse, 0, len(m.Items))
		for _, it := range m.Items {
			resp.Items = append(resp.Items, MealItemResponse{
				ID:        it.ID,
				Food:      it.Food,
				Quantity:  it.Quantity,
				Nutrition: ComputeNutrition(&it.Food, it.Quantity),
			})
		}
	}
	return resp
}

func toPlanResponse(p *DailyMealPlan) PlanResponse {
	slot := func(m *Meal) *MealResponse {
		if m == nil {
			return nil
		}
		r := toMealResponse(m, false)
		return &r
	}
	return PlanResponse{
		ID:            p.ID,
		Date:          time.Time(p.Date).Format(dateLayout),
		Breakfast:     slot(p.Breakfast),
		Lunch:         slot(p.Lunch),
		Dinner:        slot(p.Dinner),
		Snack:         slot(p.Snack),
		TotalCalories: p.TotalCalories,
		TotalProtein:  p.TotalProtein,
		TotalCarbs:    p.TotalCarbs,
		TotalFat:      p.TotalFat,
	}
}

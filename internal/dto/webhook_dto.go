package dto

import "encoding/json"

// PlanCallback is the body the plan-generation workflow posts back once a
// weekly plan is ready. Workout callbacks send weekly_plan, meal callbacks
// send weekly_meal_plan; either is accepted on both endpoints.
type PlanCallback struct {
	ScheduleID       string            `json:"schedule_id"`
	UserID           string            `json:"user_id"`
	WorkflowID       string            `json:"workflow_id"`
	WeeklyPlan       json.RawMessage   `json:"weekly_plan"`
	WeeklyMealPlan   json.RawMessage   `json:"weekly_meal_plan"`
	NutritionTargets *NutritionTargets `json:"nutrition_targets"`
	UserData         *MealUserData     `json:"user_data"`
}

type NutritionTargets struct {
	DailyCalories *float64 `json:"daily_calories"`
	DailyProtein  *float64 `json:"daily_protein"`
	DailyCarbs    *float64 `json:"daily_carbs"`
	DailyFat      *float64 `json:"daily_fat"`
}

type MealUserData struct {
	CurrentWeight *float64 `json:"current_weight"`
	GoalWeight    *float64 `json:"goal_weight"`
	DaysToGoal    *int     `json:"days_to_goal"`
	Goal          string   `json:"goal"`
}

type CallbackResponse struct {
	Message    string `json:"message"`
	ScheduleID string `json:"schedule_id"`
	UserID     string `json:"user_id"`
	Action     string `json:"action"`
}

package nutrition

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestRound1TiesToEven(t *testing.T) {
	cases := map[float64]float64{
		0.25:  0.2,
		0.75:  0.8,
		1.25:  1.2,
		2.0:   2.0,
		-0.25: -0.2,
		99.96: 100.0,
	}
	for in, want := range cases {
		if got := Round1(in); got != want {
			t.Errorf("Round1(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestComputeNutritionScalesLinearly(t *testing.T) {
	food := &Food{CaloriesPer100g: 200, ProteinPer100g: 10, CarbsPer100g: 30, FatPer100g: 4}

	half := ComputeNutrition(food, 50)
	want := Nutrition{Calories: 100, Protein: 5, Carbs: 15, Fat: 2}
	if half != want {
		t.Fatalf("50 g = %+v, want %+v", half, want)
	}

	double := ComputeNutrition(food, 200)
	if double.Calories != 2*food.CaloriesPer100g || double.Fat != 2*food.FatPer100g {
		t.Errorf("200 g = %+v, want twice the per-100 g values", double)
	}

	if zero := ComputeNutrition(food, 0); zero != (Nutrition{}) {
		t.Errorf("0 g = %+v, want zero", zero)
	}
}

func TestRecomputeMealTotals(t *testing.T) {
	a := Food{ID: uuid.New(), CaloriesPer100g: 50}
	b := Food{ID: uuid.New(), CaloriesPer100g: 200}
	meal := &Meal{Name: "Test", Items: []MealItem{
		{Food: a, Quantity: 100},
		{Food: b, Quantity: 50},
	}}

	RecomputeMealTotals(meal)
	if meal.TotalCalories != 150.0 {
		t.Errorf("TotalCalories = %v, want 150.0", meal.TotalCalories)
	}
}

func TestRecomputeMealTotalsRoundsEachItemFirst(t *testing.T) {
	// 0.25 rounds to 0.2 per item; summing first would give 0.5.
	f := Food{CaloriesPer100g: 0.25}
	meal := &Meal{Items: []MealItem{{Food: f, Quantity: 100}, {Food: f, Quantity: 100}}}

	RecomputeMealTotals(meal)
	if meal.TotalCalories != 0.4 {
		t.Errorf("TotalCalories = %v, want 0.4", meal.TotalCalories)
	}
}

func TestRecomputeMealTotalsEmpty(t *testing.T) {
	meal := &Meal{TotalCalories: 99}
	RecomputeMealTotals(meal)
	if meal.TotalCalories != 0 || meal.TotalFat != 0 {
		t.Errorf("empty meal totals = %v/%v, want zero", meal.TotalCalories, meal.TotalFat)
	}
}

func TestRecomputeDayTotals(t *testing.T) {
	breakfast := &Meal{ID: uuid.New(), TotalCalories: 400, TotalProtein: 20}
	dinner := &Meal{ID: uuid.New(), TotalCalories: 650.5, TotalProtein: 40.2}
	missing := uuid.New()

	plan := &DailyMealPlan{
		BreakfastID: &breakfast.ID,
		DinnerID:    &dinner.ID,
		SnackID:     &missing,
	}
	RecomputeDayTotals(plan, map[uuid.UUID]*Meal{breakfast.ID: breakfast, dinner.ID: dinner})

	if plan.TotalCalories != 1050.5 || plan.TotalProtein != 60.2 {
		t.Errorf("totals = %v/%v, want 1050.5/60.2", plan.TotalCalories, plan.TotalProtein)
	}
	if plan.Breakfast != breakfast || plan.Lunch != nil || plan.Snack != nil {
		t.Errorf("slot meals not attached as expected")
	}
}

func TestClearSlot(t *testing.T) {
	id, other := uuid.New(), uuid.New()
	plan := &DailyMealPlan{BreakfastID: &id, LunchID: &other, SnackID: &id}
	plan.clearSlot(id)
	if plan.BreakfastID != nil || plan.SnackID != nil || plan.LunchID == nil {
		t.Errorf("clearSlot left %v/%v/%v", plan.BreakfastID, plan.LunchID, plan.SnackID)
	}
}

func TestComputeWeeklySummary(t *testing.T) {
	cal, protein := 2200.0, 160.0
	s := &MealSchedule{
		ID:            uuid.New(),
		DailyCalories: &cal,
		DailyProtein:  &protein,
		WeeklyPlan: datatypes.JSON(`{
			"Monday":    {"daily_totals": {"calories": 2000, "protein": 150, "carbs": 200, "fat": 70}},
			"tuesday":   {"daily_totals": {"calories": 2101, "protein": "n/a", "carbs": 201, "fat": 71}},
			"wednesday": null,
			"thursday":  {"meals": []},
			"friday":    {"daily_totals": {}},
			"holiday":   {"daily_totals": {"calories": 9999}}
		}`),
	}

	got := ComputeWeeklySummary(s)
	if got.DaysCount != 2 {
		t.Fatalf("DaysCount = %d, want 2", got.DaysCount)
	}
	if got.WeeklyTotals.Calories != 4101 || got.WeeklyTotals.Protein != 150 || got.WeeklyTotals.Fat != 141 {
		t.Errorf("WeeklyTotals = %+v", got.WeeklyTotals)
	}
	if got.DailyAverages.Calories != 2050.5 || got.DailyAverages.Protein != 75 || got.DailyAverages.Carbs != 200.5 || got.DailyAverages.Fat != 70.5 {
		t.Errorf("DailyAverages = %+v", got.DailyAverages)
	}
	if got.Targets.Calories == nil || *got.Targets.Calories != 2200 || got.Targets.Fat != nil {
		t.Errorf("Targets = %+v", got.Targets)
	}
}

func TestComputeWeeklySummaryMalformed(t *testing.T) {
	for _, raw := range []string{``, `[1,2]`, `"text"`, `{}`} {
		got := ComputeWeeklySummary(&MealSchedule{WeeklyPlan: datatypes.JSON(raw)})
		if got.DaysCount != 0 || got.DailyAverages.Calories != 0 {
			t.Errorf("plan %q: summary = %+v, want empty", raw, got)
		}
	}
}

func TestComputePlanStats(t *testing.T) {
	if got := ComputePlanStats(nil); got.TotalPlans != 0 || got.DateRange != nil {
		t.Errorf("empty stats = %+v", got)
	}

	plans := []DailyMealPlan{
		{Date: date(t, "2025-03-05"), TotalCalories: 2000, TotalProtein: 100},
		{Date: date(t, "2025-03-03"), TotalCalories: 1801, TotalProtein: 90},
		{Date: date(t, "2025-03-04"), TotalCalories: 1900, TotalProtein: 95.5},
	}
	got := ComputePlanStats(plans)
	if got.TotalPlans != 3 || got.AverageCalories != 1900.3 || got.AverageProtein != 95.2 {
		t.Errorf("stats = %+v", got)
	}
	if got.DateRange.From != "2025-03-03" || got.DateRange.To != "2025-03-05" {
		t.Errorf("DateRange = %+v", got.DateRange)
	}
}

func date(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return datatypes.Date(d)
}

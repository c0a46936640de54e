package nutrition

import (
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
)

const (
	minQuantity = 1
	maxQuantity = 1000
)

// Nutrition is the macro breakdown of a quantity of food.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (n Nutrition) add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

func (n Nutrition) rounded() Nutrition {
	return Nutrition{
		Calories: Round1(n.Calories),
		Protein:  Round1(n.Protein),
		Carbs:    Round1(n.Carbs),
		Fat:      Round1(n.Fat),
	}
}

// Round1 rounds to one decimal, ties to even.
func Round1(x float64) float64 {
	return math.RoundToEven(x*10) / 10
}

// ComputeNutrition scales the per-100 g values of food to quantity grams.
func ComputeNutrition(food *Food, quantity float64) Nutrition {
	scale := quantity / 100
	return Nutrition{
		Calories: food.CaloriesPer100g * scale,
		Protein:  food.ProteinPer100g * scale,
		Carbs:    food.CarbsPer100g * scale,
		Fat:      food.FatPer100g * scale,
	}.rounded()
}

// RecomputeMealTotals rewrites the meal totals from its items. Each item is
// rounded before summing and the sum is rounded again.
func RecomputeMealTotals(meal *Meal) {
	var sum Nutrition
	for i := range meal.Items {
		sum = sum.add(ComputeNutrition(&meal.Items[i].Food, meal.Items[i].Quantity))
	}
	sum = sum.rounded()
	meal.TotalCalories = sum.Calories
	meal.TotalProtein = sum.Protein
	meal.TotalCarbs = sum.Carbs
	meal.TotalFat = sum.Fat
}

// SlotIDs lists the non-empty meal slots of a plan.
func (p *DailyMealPlan) SlotIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, id := range []*uuid.UUID{p.BreakfastID, p.LunchID, p.DinnerID, p.SnackID} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}

// clearSlot empties every slot that points at mealID.
func (p *DailyMealPlan) clearSlot(mealID uuid.UUID) {
	for _, slot := range []**uuid.UUID{&p.BreakfastID, &p.LunchID, &p.DinnerID, &p.SnackID} {
		if *slot != nil && **slot == mealID {
			*slot = nil
		}
	}
}

// RecomputeDayTotals sums the cached totals of the slot meals. Empty slots
// and slots missing from meals contribute zero.
func RecomputeDayTotals(plan *DailyMealPlan, meals map[uuid.UUID]*Meal) {
	var sum Nutrition
	for _, id := range plan.SlotIDs() {
		m, ok := meals[id]
		if !ok {
			continue
		}
		sum = sum.add(Nutrition{
			Calories: m.TotalCalories,
			Protein:  m.TotalProtein,
			Carbs:    m.TotalCarbs,
			Fat:      m.TotalFat,
		})
	}
	sum = sum.rounded()
	plan.TotalCalories = sum.Calories
	plan.TotalProtein = sum.Protein
	plan.TotalCarbs = sum.Carbs
	plan.TotalFat = sum.Fat

	plan.Breakfast = pick(meals, plan.BreakfastID)
	plan.Lunch = pick(meals, plan.LunchID)
	plan.Dinner = pick(meals, plan.DinnerID)
	plan.Snack = pick(meals, plan.SnackID)
}

func pick(meals map[uuid.UUID]*Meal, id *uuid.UUID) *Meal {
	if id == nil {
		return nil
	}
	return meals[*id]
}

// ComputeWeeklySummary adds up the daily_totals of the populated days of the
// schedule's plan. It never fails; a missing or malformed plan counts zero days.
func ComputeWeeklySummary(s *MealSchedule) WeeklySummary {
	summary := WeeklySummary{
		ScheduleID: s.ID,
		Targets: Targets{
			Calories: s.DailyCalories,
			Protein:  s.DailyProtein,
			Carbs:    s.DailyCarbs,
			Fat:      s.DailyFat,
		},
	}

	plan, ok := s.Plan()
	if !ok {
		return summary
	}
	for _, day := range planner.Days {
		dp, ok := plan.Day(day)
		if !ok || dp.DailyTotals == nil {
			continue
		}
		summary.WeeklyTotals.Calories += dp.DailyTotals.Calories
		summary.WeeklyTotals.Protein += dp.DailyTotals.Protein
		summary.WeeklyTotals.Carbs += dp.DailyTotals.Carbs
		summary.WeeklyTotals.Fat += dp.DailyTotals.Fat
		summary.DaysCount++
	}

	if summary.DaysCount > 0 {
		n := float64(summary.DaysCount)
		summary.DailyAverages = planner.Totals{
			Calories: Round1(summary.WeeklyTotals.Calories / n),
			Protein:  Round1(summary.WeeklyTotals.Protein / n),
			Carbs:    Round1(summary.WeeklyTotals.Carbs / n),
			Fat:      Round1(summary.WeeklyTotals.Fat / n),
		}
	}
	return summary
}

// ComputePlanStats averages the totals of plans, most recent first.
func ComputePlanStats(plans []DailyMealPlan) PlanStats {
	stats := PlanStats{TotalPlans: len(plans)}
	if len(plans) == 0 {
		return stats
	}

	var sum Nutrition
	from, to := time.Time(plans[0].Date), time.Time(plans[0].Date)
	for _, p := range plans {
		sum = sum.add(Nutrition{Calories: p.TotalCalories, Protein: p.TotalProtein, Carbs: p.TotalCarbs, Fat: p.TotalFat})
		d := time.Time(p.Date)
		if d.Before(from) {
			from = d
		}
		if d.After(to) {
			to = d
		}
	}

	n := float64(len(plans))
	stats.AverageCalories = Round1(sum.Calories / n)
	stats.AverageProtein = Round1(sum.Protein / n)
	stats.AverageCarbs = Round1(sum.Carbs / n)
	stats.AverageFat = Round1(sum.Fat / n)
	stats.DateRange = &DateRange{From: from.Format(dateLayout), To: to.Format(dateLayout)}
	return stats
}

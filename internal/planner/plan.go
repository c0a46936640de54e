package planner

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Days are the weekly plan keys in calendar order.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Weekday maps a day key, in any case, to its time.Weekday.
func Weekday(day string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(day)]
	return wd, ok
}

// WeeklyPlan is a generated plan keyed by day. Day contents are opaque
// except for the few fields DayPlan exposes.
type WeeklyPlan map[string]json.RawMessage

// Totals holds the macro totals a day or a week adds up to.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DayPlan is the typed view of one day. Unknown fields are ignored and
// fields of the wrong type read as absent.
type DayPlan struct {
	DailyTotals *Totals
	Workout     string
	Time        string
	Description string
	Duration    int
	Exercises   json.RawMessage
}

// Day returns the typed view of day, or false when the entry is missing,
// null or not an object (rest days).
func (p WeeklyPlan) Day(day string) (*DayPlan, bool) {
	raw, ok := p[strings.ToLower(day)]
	if !ok || !isObject(raw) {
		return nil, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}

	dp := &DayPlan{}
	if t, ok := fields["daily_totals"]; ok && isObject(t) {
		var m map[string]json.RawMessage
		if json.Unmarshal(t, &m) == nil && len(m) > 0 {
			dp.DailyTotals = &Totals{
				Calories: number(m["calories"]),
				Protein:  number(m["protein"]),
				Carbs:    number(m["carbs"]),
				Fat:      number(m["fat"]),
			}
		}
	}
	dp.Workout = str(fields["workout"])
	dp.Time = str(fields["time"])
	dp.Description = str(fields["description"])
	dp.Duration = int(number(fields["duration"]))
	if ex, ok := fields["exercises"]; ok && isArray(ex) {
		dp.Exercises = ex
	}
	return dp, true
}

// ParseWeeklyPlan accepts a JSON object and lowercases its keys.
func ParseWeeklyPlan(raw json.RawMessage) (WeeklyPlan, bool) {
	if !isObject(raw) {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	plan := make(WeeklyPlan, len(m))
	for k, v := range m {
		plan[strings.ToLower(k)] = v
	}
	return plan, true
}

// JSON re-encodes the plan for storage.
func (p WeeklyPlan) JSON() []byte {
	b, err := json.Marshal(map[string]json.RawMessage(p))
	if err != nil {
		return []byte("{}")
	}
	return b
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '['
}

func number(raw json.RawMessage) float64 {
	var f float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil {
		return 0
	}
	return f
}

func str(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

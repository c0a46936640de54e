package progress

import (
	"math"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apps/training"
)

// CompletionRate is completed/total as a percentage with one decimal.
func CompletionRate(total, completed int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Streaks counts consecutive calendar days (UTC) with at least one
// completed workout. The current streak is alive while its last day is
// today or yesterday.
func Streaks(completed []time.Time, today time.Time) (current, longest int) {
	if len(completed) == 0 {
		return 0, 0
	}

	seen := make(map[time.Time]struct{}, len(completed))
	days := make([]time.Time, 0, len(completed))
	for _, t := range completed {
		d := day(t)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	t := day(today)
	if gap := t.Sub(days[0]); gap < 0 || gap > 24*time.Hour {
		return 0, longest
	}
	current = 1
	for i := 1; i < len(days) && days[i-1].Sub(days[i]) == 24*time.Hour; i++ {
		current++
	}
	return current, longest
}

// MonthStart is 00:00 UTC on the first of now's month.
func MonthStart(now time.Time) time.Time {
	y, m, _ := now.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// Summarize counts completed exercise lines and their sets across sessions.
func Summarize(sessions []training.WorkoutSession) (exercises, sets int) {
	for _, s := range sessions {
		for _, ex := range s.Exercises {
			if ex.Completed {
				exercises++
				sets += ex.Sets
			}
		}
	}
	return exercises, sets
}

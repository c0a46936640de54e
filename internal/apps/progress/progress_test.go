package progress

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apps/training"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStreaks(t *testing.T) {
	today := at("2026-03-10T18:00:00Z")
	tests := []struct {
		name             string
		completed        []string
		current, longest int
	}{
		{"none", nil, 0, 0},
		{"today only", []string{"2026-03-10T07:00:00Z"}, 1, 1},
		{"yesterday keeps streak", []string{"2026-03-09T07:00:00Z", "2026-03-08T07:00:00Z"}, 2, 2},
		{"two days ago breaks", []string{"2026-03-08T07:00:00Z", "2026-03-07T07:00:00Z"}, 0, 2},
		{"same day counted once", []string{"2026-03-10T07:00:00Z", "2026-03-10T19:00:00Z", "2026-03-09T23:59:00Z"}, 2, 2},
		{"longest in the past", []string{
			"2026-03-10T07:00:00Z",
			"2026-03-01T07:00:00Z", "2026-02-28T07:00:00Z", "2026-02-27T07:00:00Z",
		}, 1, 3},
		{"unordered input", []string{"2026-03-08T07:00:00Z", "2026-03-10T07:00:00Z", "2026-03-09T07:00:00Z"}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dates []time.Time
			for _, s := range tt.completed {
				dates = append(dates, at(s))
			}
			current, longest := Streaks(dates, today)
			if current != tt.current || longest != tt.longest {
				t.Errorf("Streaks = (%d, %d), want (%d, %d)", current, longest, tt.current, tt.longest)
			}
		})
	}
}

func TestCompletionRate(t *testing.T) {
	cases := []struct {
		total, completed int64
		want             float64
	}{
		{0, 0, 0},
		{3, 1, 33.3},
		{3, 2, 66.7},
		{4, 4, 100},
	}
	for _, c := range cases {
		if got := CompletionRate(c.total, c.completed); got != c.want {
			t.Errorf("CompletionRate(%d, %d) = %v, want %v", c.total, c.completed, got, c.want)
		}
	}
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(at("2026-03-31T23:30:00Z"))
	if !got.Equal(at("2026-03-01T00:00:00Z")) {
		t.Errorf("MonthStart = %v", got)
	}
}

func TestSummarizeCountsCompletedLines(t *testing.T) {
	sessions := []training.WorkoutSession{
		{Exercises: []training.SessionExercise{
			{Sets: 3, Completed: true},
			{Sets: 4, Completed: false},
		}},
		{Exercises: []training.SessionExercise{
			{Sets: 5, Completed: true},
		}},
	}
	exercises, sets := Summarize(sessions)
	if exercises != 2 || sets != 8 {
		t.Errorf("Summarize = (%d, %d), want (2, 8)", exercises, sets)
	}
}

func TestValidation(t *testing.T) {
	w := func(v float64) *float64 { return &v }
	reps := 5
	id := uuid.New()

	weightCases := map[*LogWeightRequest]error{
		{}:               ErrWeightRequired,
		{Weight: w(0)}:   ErrWeightRange,
		{Weight: w(501)}: ErrWeightRange,
		{Weight: w(72)}:  nil,
	}
	for req, want := range weightCases {
		if err := validateWeight(req); !errors.Is(err, want) {
			t.Errorf("validateWeight(%v) = %v, want %v", req.Weight, err, want)
		}
	}

	if err := validateRecord(&LogRecordRequest{ExerciseID: &id, Weight: w(100)}); !errors.Is(err, ErrRecordFields) {
		t.Errorf("missing reps err = %v", err)
	}
	if err := validateRecord(&LogRecordRequest{ExerciseID: &id, Weight: w(-1), Reps: &reps}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("negative weight err = %v", err)
	}
	if err := validateRecord(&LogRecordRequest{ExerciseID: &id, Weight: w(100), Reps: &reps}); err != nil {
		t.Errorf("valid record err = %v", err)
	}
}

func TestHandlersRejectBeforeStore(t *testing.T) {
	p := New(nil)
	user := uuid.New()
	app := fiber.New()
	p.RegisterRoutes(app.Group("/api"), func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"sub": user.String()}})
		return c.Next()
	})

	cases := map[string]string{
		"/api/progress/weight":           `{"notes": "no weight"}`,
		"/api/progress/personal-records": `{"weight": 100}`,
	}
	for path, body := range cases {
		req := httptest.NewRequest("POST", path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, resp.StatusCode)
		}
	}
}

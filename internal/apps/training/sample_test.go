package training

import (
	"testing"

	"github.com/google/uuid"
)

func reversed(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - 1 - i
	}
	return out
}

func pool(n int) []WorkoutExercise {
	out := make([]WorkoutExercise, n)
	for i := range out {
		out[i] = WorkoutExercise{ID: uuid.New(), Sets: 3, Reps: 10 + i, Position: 10 * (i + 1)}
	}
	return out
}

func TestSampleExercisesRenumbers(t *testing.T) {
	p := pool(4)
	got := SampleExercises(p, 2, reversed)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != p[3].ID || got[1].ID != p[2].ID {
		t.Errorf("picked %v, %v; want last two in reverse", got[0].ID, got[1].ID)
	}
	for i, ex := range got {
		if ex.Position != i+1 {
			t.Errorf("got[%d].Position = %d, want %d", i, ex.Position, i+1)
		}
	}
	if p[3].Position != 40 {
		t.Errorf("pool mutated: position = %d", p[3].Position)
	}
}

func TestSampleExercisesCapsAtPool(t *testing.T) {
	got := SampleExercises(pool(3), 10, reversed)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	seen := map[uuid.UUID]bool{}
	for _, ex := range got {
		if seen[ex.ID] {
			t.Errorf("exercise %v drawn twice", ex.ID)
		}
		seen[ex.ID] = true
	}
}

func TestSampleExercisesEmpty(t *testing.T) {
	if got := SampleExercises(pool(3), 0, reversed); len(got) != 0 {
		t.Errorf("count 0 gave %d exercises", len(got))
	}
	if got := SampleExercises(nil, 5, reversed); got == nil || len(got) != 0 {
		t.Errorf("empty pool gave %v", got)
	}
}

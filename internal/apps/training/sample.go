package training

// SampleExercises picks count lines of pool in random order and renumbers
// them 1..n. count is capped at len(pool). perm is rand.Perm or a
// deterministic stand-in.
func SampleExercises(pool []WorkoutExercise, count int, perm func(n int) []int) []WorkoutExercise {
	if count > len(pool) {
		count = len(pool)
	}
	if count <= 0 {
		return []WorkoutExercise{}
	}

	order := perm(len(pool))[:count]
	out := make([]WorkoutExercise, count)
	for i, idx := range order {
		out[i] = pool[idx]
		out[i].Position = i + 1
	}
	return out
}

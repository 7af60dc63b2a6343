package workout

// Clamp limits t to the timeline [0, total]
func Clamp(t, total int) int {
	if t < 0 {
		return 0
	}
	if t > total {
		return total
	}
	return t
}

// SkipForwardTarget returns the elapsed time to seek to for "next exercise".
// ok is false when the current exercise is the last one of the workout.
func SkipForwardTarget(state WorkoutState) (target int, ok bool) {
	if state.NextExerciseStartTime == nil {
		return 0, false
	}
	return Clamp(*state.NextExerciseStartTime, state.TotalWorkoutDuration), true
}

// SkipBackwardTarget returns the elapsed time to seek to for "previous
// exercise": one second before the current exercise started, which lands on
// the last second of the preceding exercise.
func SkipBackwardTarget(state WorkoutState) int {
	return Clamp(state.CurrentExerciseStartTime-1, state.TotalWorkoutDuration)
}

package workout

// WorkoutState is a full snapshot of where a workout is at a given elapsed
// time. It is recomputed from scratch by Project on every call.
type WorkoutState struct {
	TotalElapsedSeconds  int // Elapsed time in the whole workout
	TotalWorkoutDuration int // Sum of all stage durations

	CurrentStageIndex    int
	CurrentStage         WorkoutStage
	CurrentExerciseIndex int // -1 only for malformed plans whose last stage has no exercises
	CurrentExercise      Exercise

	NextExercise      *Exercise // Following exercise in the same stage, nil if none
	NextStageExercise *Exercise // First exercise of the next stage, set only when NextExercise is nil

	TimeInStage        int
	TimeInExercise     int
	TimeLeftInStage    int
	TimeLeftInExercise int
	TimeLeftInWorkout  int

	// 0..1 for plans that pass Validate. Stage and exercise values go negative
	// in the gap a stage leaves when its declared duration exceeds its exercises.
	WorkoutProgress  float64
	StageProgress    float64
	ExerciseProgress float64

	Lap       int // 1-based ordinal of the current WORK stage, 0 before the first one
	TotalLaps int // Number of WORK stages in the plan

	IsFinished bool

	CurrentExerciseStartTime int  // Absolute start of the current exercise
	NextExerciseStartTime    *int // Absolute start of the next exercise, nil at the last one
}

// Project maps an elapsed time onto a plan. It holds no state and has no side
// effects, so it can be called on every clock tick or after any seek.
//
// A stage or exercise owns the half-open interval [start, end): a time equal
// to a boundary belongs to what starts there. Once elapsedSeconds reaches the
// total duration the finished state is returned.
//
// Plans are not validated here. A stage whose declared duration disagrees with
// its exercises is projected literally against the declared duration. Time
// past the end of its exercises lands on the first exercise of the next stage
// with a negative TimeInStage and TimeInExercise.
func Project(elapsedSeconds int, plan WorkoutPlan) WorkoutState {
	totalDuration := plan.TotalDuration()
	totalLaps := plan.TotalLaps()
	lap := 0

	var stageStartTime int
	for stageIdx, stage := range plan {
		if stage.Type == StageWork {
			lap++
		}

		stageEndTime := stageStartTime + stage.Duration
		if elapsedSeconds < stageEndTime {
			timeInStage := elapsedSeconds - stageStartTime

			var exerciseStartInStage int
			for exerciseIdx, exercise := range stage.Exercises {
				exerciseEndInStage := exerciseStartInStage + exercise.Duration
				if timeInStage < exerciseEndInStage {
					timeInExercise := timeInStage - exerciseStartInStage
					currentExerciseStartTime := stageStartTime + exerciseStartInStage

					state := WorkoutState{
						TotalElapsedSeconds:      elapsedSeconds,
						TotalWorkoutDuration:     totalDuration,
						CurrentStageIndex:        stageIdx,
						CurrentStage:             stage,
						CurrentExerciseIndex:     exerciseIdx,
						CurrentExercise:          exercise,
						TimeInStage:              timeInStage,
						TimeInExercise:           timeInExercise,
						TimeLeftInStage:          stage.Duration - timeInStage,
						TimeLeftInExercise:       exercise.Duration - timeInExercise,
						TimeLeftInWorkout:        totalDuration - elapsedSeconds,
						WorkoutProgress:          progress(elapsedSeconds, totalDuration),
						StageProgress:            progress(timeInStage, stage.Duration),
						ExerciseProgress:         progress(timeInExercise, exercise.Duration),
						Lap:                      lap,
						TotalLaps:                totalLaps,
						IsFinished:               elapsedSeconds >= totalDuration,
						CurrentExerciseStartTime: currentExerciseStartTime,
					}

					if exerciseIdx+1 < len(stage.Exercises) {
						next := stage.Exercises[exerciseIdx+1]
						state.NextExercise = &next
						nextStart := currentExerciseStartTime + exercise.Duration
						state.NextExerciseStartTime = &nextStart
					} else if stageIdx+1 < len(plan) {
						if following := plan[stageIdx+1].Exercises; len(following) > 0 {
							first := following[0]
							state.NextStageExercise = &first
						}
						nextStart := stageEndTime
						state.NextExerciseStartTime = &nextStart
					}

					return state
				}
				exerciseStartInStage = exerciseEndInStage
			}
		}
		stageStartTime = stageEndTime
	}

	return finishedState(plan, totalDuration, totalLaps)
}

// finishedState pins the projection to the last exercise of the last stage
func finishedState(plan WorkoutPlan, totalDuration, totalLaps int) WorkoutState {
	state := WorkoutState{
		TotalElapsedSeconds:  totalDuration,
		TotalWorkoutDuration: totalDuration,
		WorkoutProgress:      1,
		StageProgress:        1,
		ExerciseProgress:     1,
		Lap:                  totalLaps,
		TotalLaps:            totalLaps,
		IsFinished:           true,
		CurrentExerciseIndex: -1,
	}
	if len(plan) == 0 {
		state.CurrentStageIndex = -1
		return state
	}

	lastStage := plan[len(plan)-1]
	state.CurrentStageIndex = len(plan) - 1
	state.CurrentStage = lastStage
	state.TimeInStage = lastStage.Duration
	state.CurrentExerciseStartTime = totalDuration

	if n := len(lastStage.Exercises); n > 0 {
		lastExercise := lastStage.Exercises[n-1]
		state.CurrentExerciseIndex = n - 1
		state.CurrentExercise = lastExercise
		state.TimeInExercise = lastExercise.Duration
		state.CurrentExerciseStartTime = totalDuration - lastExercise.Duration
	}
	return state
}

// progress returns part/whole, or 1 for an empty scope
func progress(part, whole int) float64 {
	if whole <= 0 {
		return 1
	}
	return float64(part) / float64(whole)
}

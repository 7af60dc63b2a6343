package trainer

import (
	"github.com/lowaak/hiit-timer/internal/workout"
)

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeWorkoutSelection UIMode = iota // Preset and saved workout list
	UIModeWorkoutSummary                 // Plan overview before starting
	UIModeWorkout                        // Running workout display
	UIModeGenerator                      // Prompt-based plan generation
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune // The number key to activate this mode (1-9)
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModeWorkoutSelection, DisplayName: "Workouts", KeyBinding: '1'},
	{Mode: UIModeWorkoutSummary, DisplayName: "Summary", KeyBinding: '2'},
	{Mode: UIModeWorkout, DisplayName: "Workout", KeyBinding: '3'},
	{Mode: UIModeGenerator, DisplayName: "Generator", KeyBinding: '4'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return UIModeWorkoutSelection, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// SessionStatus represents the current status of a workout session
type SessionStatus int

const (
	SessionStatusIdle     SessionStatus = iota // No workout loaded
	SessionStatusReady                         // Workout loaded, clock at zero or stopped
	SessionStatusRunning                       // Clock ticking
	SessionStatusPaused                        // Clock held
	SessionStatusFinished                      // Clock reached the total duration
)

func (s SessionStatus) String() string {
	switch s {
	case SessionStatusIdle:
		return "Idle"
	case SessionStatusReady:
		return "Ready"
	case SessionStatusRunning:
		return "Running"
	case SessionStatusPaused:
		return "Paused"
	case SessionStatusFinished:
		return "Finished"
	}
	return "Unknown"
}

// SessionState is what the workout manager publishes after every change:
// the session status, the loaded workout and its projection at the current
// elapsed time.
type SessionState struct {
	Status     SessionStatus
	Workout    *workout.WorkoutInfo // nil when idle
	Projection workout.WorkoutState
}

// Started reports whether the clock has moved since the workout was loaded
func (s SessionState) Started() bool {
	return s.Workout != nil && (s.Status != SessionStatusReady || s.Projection.TotalElapsedSeconds > 0)
}

// NextUp returns the names of the next one or two exercises. The second is
// only looked up within the current stage. Empty strings mean nothing follows.
func NextUp(state workout.WorkoutState) (first, second string) {
	if state.IsFinished {
		return "", ""
	}
	if state.NextExercise != nil {
		first = state.NextExercise.Name
		exercises := state.CurrentStage.Exercises
		if i := state.CurrentExerciseIndex + 2; i < len(exercises) {
			second = exercises[i].Name
		}
		return first, second
	}
	if state.NextStageExercise != nil {
		first = state.NextStageExercise.Name
	}
	return first, ""
}

package audio

import (
	"fmt"

	"github.com/lowaak/hiit-timer/internal/workout"
)

// Cue is a short sound telling the athlete what is happening
type Cue int

const (
	CueStart  Cue = iota // A new exercise began
	CueUrgent            // The current exercise ends within three seconds
)

// UrgentSeconds is the countdown window that triggers CueUrgent
const UrgentSeconds = 3

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueUrgent:
		return "urgent"
	}
	return fmt.Sprintf("Cue(%d)", int(c))
}

// Frequency is the tone pitch in Hz for players that can synthesise one
func (c Cue) Frequency() int {
	if c == CueUrgent {
		return 880
	}
	return 440
}

// CueDetector turns a sequence of projected states into cues. It is fed one
// state per clock tick or seek.
type CueDetector struct {
	seen       bool
	stage      int
	exercise   int
	lastUrgent int
}

// Observe records state and returns the cues it triggers. Nothing fires
// while paused, for the first state after Reset, or once finished.
func (d *CueDetector) Observe(state workout.WorkoutState, paused bool) []Cue {
	moved := !d.seen || state.CurrentStageIndex != d.stage || state.CurrentExerciseIndex != d.exercise
	first := !d.seen
	d.seen = true
	d.stage = state.CurrentStageIndex
	d.exercise = state.CurrentExerciseIndex
	if moved {
		d.lastUrgent = 0
	}

	if first || paused || state.IsFinished {
		return nil
	}

	var cues []Cue
	if moved {
		cues = append(cues, CueStart)
	}
	left := state.TimeLeftInExercise
	if left >= 1 && left <= UrgentSeconds && left != d.lastUrgent {
		d.lastUrgent = left
		cues = append(cues, CueUrgent)
	}
	return cues
}

// Reset forgets the previous state, e.g. when another workout is loaded
func (d *CueDetector) Reset() {
	*d = CueDetector{}
}

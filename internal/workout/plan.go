package workout

import (
	"fmt"
	"strings"
)

// StageType is the kind of a workout stage
type StageType int

const (
	StageWarmup   StageType = iota // Warm-up before the first round
	StageWork                      // A work round, counted as a lap
	StageRest                      // Rest between rounds
	StageCooldown                  // Cool-down after the last round
)

// AllStageTypes lists every stage type in canonical order
var AllStageTypes = []StageType{StageWarmup, StageWork, StageRest, StageCooldown}

var stageTypeNames = map[StageType]string{
	StageWarmup:   "WARMUP",
	StageWork:     "WORK",
	StageRest:     "REST",
	StageCooldown: "COOLDOWN",
}

func (t StageType) String() string {
	if name, ok := stageTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("StageType(%d)", int(t))
}

// Valid reports whether t is one of the four known stage types
func (t StageType) Valid() bool {
	_, ok := stageTypeNames[t]
	return ok
}

// ParseStageType parses the text form used in plan files and generator responses
func ParseStageType(s string) (StageType, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for t, name := range stageTypeNames {
		if name == upper {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown stage type %q", s)
}

// MarshalText implements encoding.TextMarshaler so JSON, YAML and TOML all
// carry the stage type as WARMUP/WORK/REST/COOLDOWN.
func (t StageType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *StageType) UnmarshalText(text []byte) error {
	parsed, err := ParseStageType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Exercise is the smallest timed unit of a workout
type Exercise struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Duration int    `json:"duration" yaml:"duration" toml:"duration"` // seconds
}

// WorkoutStage is a named phase of a workout made of one or more exercises.
// Duration is expected to equal the sum of the exercise durations.
type WorkoutStage struct {
	Type      StageType  `json:"type" yaml:"type" toml:"type"`
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Duration  int        `json:"duration" yaml:"duration" toml:"duration"` // seconds
	Exercises []Exercise `json:"exercises" yaml:"exercises" toml:"exercise"`
}

// ExerciseTotal returns the sum of the stage's exercise durations
func (s WorkoutStage) ExerciseTotal() int {
	total := 0
	for _, e := range s.Exercises {
		total += e.Duration
	}
	return total
}

// WorkoutPlan is an ordered sequence of stages forming one session
type WorkoutPlan []WorkoutStage

// TotalDuration returns the sum of all declared stage durations in seconds
func (p WorkoutPlan) TotalDuration() int {
	total := 0
	for _, stage := range p {
		total += stage.Duration
	}
	return total
}

// TotalLaps returns the number of WORK stages in the plan
func (p WorkoutPlan) TotalLaps() int {
	laps := 0
	for _, stage := range p {
		if stage.Type == StageWork {
			laps++
		}
	}
	return laps
}

// WorkoutID identifies a workout in the library. Built-in workouts use small
// integers ("1".."7"), saved workouts use "custom_<uuid>".
type WorkoutID string

// CustomIDPrefix marks ids of user-saved workouts
const CustomIDPrefix = "custom_"

// IsCustom reports whether id belongs to a user-saved workout
func (id WorkoutID) IsCustom() bool {
	return strings.HasPrefix(string(id), CustomIDPrefix)
}

// WorkoutInfo is a plan together with its library metadata
type WorkoutInfo struct {
	ID          WorkoutID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Plan        WorkoutPlan `json:"plan"`
	IsCustom    bool        `json:"isCustom,omitempty"`
}

package workout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPlan is wrapped by every ValidationError
var ErrInvalidPlan = errors.New("invalid workout plan")

// ValidationError lists every problem found in a plan
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPlan, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPlan
}

// Validate checks the structural rules a plan must satisfy before it is
// accepted from a generator, a plan file or the saved-workout store.
// Project never calls it.
func Validate(plan WorkoutPlan) error {
	var problems []string
	if len(plan) == 0 {
		problems = append(problems, "plan has no stages")
	}

	for i, stage := range plan {
		label := fmt.Sprintf("stage %d (%q)", i+1, stage.Name)
		if !stage.Type.Valid() {
			problems = append(problems, fmt.Sprintf("%s: unknown type %s", label, stage.Type))
		}
		if strings.TrimSpace(stage.Name) == "" {
			problems = append(problems, fmt.Sprintf("%s: name is empty", label))
		}
		if stage.Duration <= 0 {
			problems = append(problems, fmt.Sprintf("%s: duration must be positive, got %d", label, stage.Duration))
		}
		if len(stage.Exercises) == 0 {
			problems = append(problems, fmt.Sprintf("%s: has no exercises", label))
			continue
		}
		for j, exercise := range stage.Exercises {
			if strings.TrimSpace(exercise.Name) == "" {
				problems = append(problems, fmt.Sprintf("%s: exercise %d has no name", label, j+1))
			}
			if exercise.Duration <= 0 {
				problems = append(problems, fmt.Sprintf("%s: exercise %d (%q) duration must be positive, got %d", label, j+1, exercise.Name, exercise.Duration))
			}
		}
		if sum := stage.ExerciseTotal(); sum != stage.Duration {
			problems = append(problems, fmt.Sprintf("%s: duration %d does not match exercise total %d", label, stage.Duration, sum))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

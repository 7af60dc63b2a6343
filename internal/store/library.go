package store

import (
	"context"
	"fmt"

	"github.com/lowaak/hiit-timer/internal/workout"
)

// Library is the combined view of built-in and saved workouts shown on the
// selection screen and by the CLI.
type Library struct {
	custom *Store
}

func NewLibrary(custom *Store) *Library {
	if custom == nil {
		panic("Library: store cannot be nil")
	}
	return &Library{custom: custom}
}

// All returns the presets followed by the saved workouts
func (l *Library) All(ctx context.Context) ([]workout.WorkoutInfo, error) {
	saved, err := l.custom.List(ctx)
	if err != nil {
		return nil, err
	}
	return append(workout.Presets(), saved...), nil
}

// Saved returns only the user-saved workouts
func (l *Library) Saved(ctx context.Context) ([]workout.WorkoutInfo, error) {
	return l.custom.List(ctx)
}

// Find looks a workout up by id in either source
func (l *Library) Find(ctx context.Context, id workout.WorkoutID) (workout.WorkoutInfo, error) {
	if !id.IsCustom() {
		if info, ok := workout.PresetByID(id); ok {
			return info, nil
		}
		return workout.WorkoutInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l.custom.Get(ctx, id)
}

// Save stores a new custom workout
func (l *Library) Save(ctx context.Context, plan workout.WorkoutPlan, title, description string) (workout.WorkoutInfo, error) {
	return l.custom.Save(ctx, plan, title, description)
}

// Delete removes a custom workout
func (l *Library) Delete(ctx context.Context, id workout.WorkoutID) error {
	return l.custom.Delete(ctx, id)
}

package store

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/hiit-timer/internal/workout"
)

func openTestStore(t *testing.T) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s, err := Open(t.TempDir(), log.New(&buf, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, &buf
}

func quickPlan(name string) workout.WorkoutPlan {
	return workout.WorkoutPlan{
		{Type: workout.StageWork, Name: name, Duration: 30, Exercises: []workout.Exercise{
			{Name: "Burpees", Duration: 20},
			{Name: "Rest", Duration: 10},
		}},
	}
}

func TestStore_SaveGetList(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, quickPlan("One"), "  Morning  ", "short")
	require.NoError(t, err)
	assert.True(t, first.ID.IsCustom())
	assert.True(t, first.IsCustom)
	assert.Equal(t, "Morning", first.Title)

	second, err := s.Save(ctx, quickPlan("Two"), "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, second.Title)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, workout.StageWork, list[1].Plan[0].Type)
}

func TestStore_SaveRejectsInvalidPlan(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	bad := workout.WorkoutPlan{{Type: workout.StageWork, Name: "Bad", Duration: 99, Exercises: []workout.Exercise{{Name: "A", Duration: 10}}}}
	_, err := s.Save(ctx, bad, "Bad", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, workout.ErrInvalidPlan))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_Delete(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	info, err := s.Save(ctx, quickPlan("One"), "One", "")
	require.NoError(t, err)
	keep, err := s.Save(ctx, quickPlan("Two"), "Two", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, info.ID))
	_, err = s.Get(ctx, info.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Delete(ctx, info.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Delete(ctx, "1")
	assert.ErrorIs(t, err, ErrBuiltinReadOnly)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
}

func TestStore_SkipsCorruptRows(t *testing.T) {
	s, logs := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.Exec(`INSERT INTO workouts (id, title, description, plan) VALUES (?, ?, ?, ?)`,
		"custom_broken", "Broken", "", "{not json")
	require.NoError(t, err)
	good, err := s.Save(ctx, quickPlan("Good"), "Good", "")
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, good.ID, list[0].ID)
	assert.True(t, strings.Contains(logs.String(), "skipping corrupt workout custom_broken"))

	_, err = s.Get(ctx, "custom_broken")
	assert.Error(t, err)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	logger := log.New(&bytes.Buffer{}, "", 0)
	ctx := context.Background()

	s, err := Open(dir, logger)
	require.NoError(t, err)
	info, err := s.Save(ctx, quickPlan("Kept"), "Kept", "")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir, logger)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Title)
}

func TestLibrary(t *testing.T) {
	s, _ := openTestStore(t)
	lib := NewLibrary(s)
	ctx := context.Background()

	saved, err := lib.Save(ctx, quickPlan("Mine"), "Mine", "")
	require.NoError(t, err)

	all, err := lib.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(workout.AllWorkouts)+1)
	assert.Equal(t, workout.WorkoutID("1"), all[0].ID)
	assert.Equal(t, saved.ID, all[len(all)-1].ID)

	preset, err := lib.Find(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Day 7: Championship Rounds", preset.Title)

	custom, err := lib.Find(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", custom.Title)

	_, err = lib.Find(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, lib.Delete(ctx, saved.ID))
	only, err := lib.Saved(ctx)
	require.NoError(t, err)
	assert.Empty(t, only)
}

package planfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/hiit-timer/internal/workout"
)

func TestWriteRead_AllFormats(t *testing.T) {
	preset, ok := workout.PresetByID("1")
	require.True(t, ok)
	original := FromInfo(preset)

	for _, ext := range []string{".yaml", ".yml", ".toml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "day1"+ext)
			require.NoError(t, Write(path, original))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, original, got)
		})
	}
}

func TestRead_YAMLByHand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quick.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: Quick
stages:
  - type: work
    name: Round
    duration: 30
    exercises:
      - {name: Burpees, duration: 20}
      - {name: Rest, duration: 10}
`), 0o644))

	file, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Quick", file.Title)
	require.Len(t, file.Stages, 1)
	assert.Equal(t, workout.StageWork, file.Stages[0].Type)
	assert.Equal(t, 30, file.Stages[0].ExerciseTotal())
}

func TestRead_TOMLByHand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quick.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
title = "Quick"

[[stage]]
type = "REST"
name = "Breathe"
duration = 15

[[stage.exercise]]
name = "Breathe"
duration = 15
`), 0o644))

	file, err := Read(path)
	require.NoError(t, err)
	require.Len(t, file.Stages, 1)
	assert.Equal(t, workout.StageRest, file.Stages[0].Type)
}

func TestRead_BareJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"type": "WARMUP", "name": "Warm", "duration": 10, "exercises": [{"name": "Jog", "duration": 10}]}
]`), 0o644))

	file, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, file.Title)
	assert.Equal(t, workout.StageWarmup, file.Stages[0].Type)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "plan.txt"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Read(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	badType := filepath.Join(dir, "bad-type.json")
	require.NoError(t, os.WriteFile(badType, []byte(`{"stages":[{"type":"SPRINT","name":"x","duration":1,"exercises":[{"name":"x","duration":1}]}]}`), 0o644))
	_, err = Read(badType)
	assert.ErrorContains(t, err, "unknown stage type")

	mismatch := filepath.Join(dir, "mismatch.yaml")
	require.NoError(t, os.WriteFile(mismatch, []byte(`
stages:
  - type: WORK
    name: Round
    duration: 60
    exercises:
      - {name: A, duration: 10}
`), 0o644))
	_, err = Read(mismatch)
	assert.True(t, errors.Is(err, workout.ErrInvalidPlan))
}

func TestWrite_UnsupportedExtension(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "plan.xml"), File{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

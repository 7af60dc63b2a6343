package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/hiit-timer/internal/generator"
	"github.com/lowaak/hiit-timer/internal/workout"
)

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

// testInfo is W10 / WORK A5+B5 / C5, 25 seconds in total
func testInfo() workout.WorkoutInfo {
	return workout.WorkoutInfo{
		ID:    "test",
		Title: "Test",
		Plan: workout.WorkoutPlan{
			{Type: workout.StageWarmup, Name: "Warm-up", Duration: 10, Exercises: []workout.Exercise{{Name: "W", Duration: 10}}},
			{Type: workout.StageWork, Name: "Round 1", Duration: 10, Exercises: []workout.Exercise{{Name: "A", Duration: 5}, {Name: "B", Duration: 5}}},
			{Type: workout.StageCooldown, Name: "Cool-down", Duration: 5, Exercises: []workout.Exercise{{Name: "C", Duration: 5}}},
		},
	}
}

func TestPrintState(t *testing.T) {
	withoutColor(t)
	info := testInfo()

	var out bytes.Buffer
	printState(&out, info, workout.Project(12, info.Plan))
	assert.Equal(t, `Test

Elapsed: 00:12 / 00:25 (48%)
Time left: 00:13
Laps: 1/1
Stage: Round 1 (WORK, 00:08 left)
Exercise: A (00:03 left)
Next up: B at 00:15
`, out.String())

	out.Reset()
	printState(&out, info, workout.Project(100, info.Plan))
	assert.Equal(t, "Test\n\nWorkout Complete! 00:25\nLaps: 1/1\n", out.String())
}

func TestPrintPlan(t *testing.T) {
	withoutColor(t)

	var out bytes.Buffer
	printPlan(&out, testInfo())
	assert.Equal(t, `Test 00:25   Laps: 1
 1. Warm-up WARMUP: W 00:10
 2. Round 1 WORK: A 00:05, B 00:05
 3. Cool-down COOLDOWN: C 00:05
`, out.String())
}

func TestPrintWorkouts(t *testing.T) {
	withoutColor(t)
	info := testInfo()
	info.Description = "Short one"
	saved := testInfo()
	saved.ID = "custom-1"
	saved.IsCustom = true

	var out bytes.Buffer
	printWorkouts(&out, []workout.WorkoutInfo{info, saved})
	assert.Equal(t,
		fmt.Sprintf("%-44s Test (preset, 00:25)\n%-44s Short one\n%-44s Test (saved, 00:25)\n", "test", "", "custom-1"),
		out.String())
}

func TestGeneratedWorkout_DefaultsTitle(t *testing.T) {
	plan := testInfo().Plan

	info := generatedWorkout(plan, "", "")
	assert.Equal(t, "Generated Workout", info.Title)
	assert.Equal(t, plan, info.Plan)

	info = generatedWorkout(plan, "Legs", "Heavy")
	assert.Equal(t, "Legs", info.Title)
	assert.Equal(t, "Heavy", info.Description)
}

const generatedPlanJSON = `[
  {"type": "WARMUP", "name": "Warm-up", "duration": 60, "exercises": [{"name": "Jump Rope", "duration": 60}]},
  {"type": "WORK", "name": "Round 1", "duration": 60, "exercises": [{"name": "Burpees", "duration": 60}]},
  {"type": "COOLDOWN", "name": "Cool-down", "duration": 60, "exercises": [{"name": "Stretching", "duration": 60}]}
]`

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestGenerateSave_StoresDefaultTitle(t *testing.T) {
	withoutColor(t)
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("HIIT_GENERATOR_API_KEY", strings.Repeat("k", generator.MinAPIKeyLength))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": generatedPlanJSON}}}},
			},
		})
		w.Write(body)
	}))
	defer server.Close()

	common := []string{
		"--data-dir", filepath.Join(dir, "data"),
		"--log-file", filepath.Join(dir, "hiit.log"),
		"--generator-endpoint", server.URL + "/",
	}

	out := execute(t, append([]string{"generate", "--save", "20 minutes of cardio"}, common...)...)
	assert.Contains(t, out, "Generated Workout 03:00   Laps: 1")
	assert.Contains(t, out, "✅ Workout saved as ")

	out = execute(t, append([]string{"list", "--saved"}, common...)...)
	assert.Contains(t, out, "Generated Workout (saved, 03:00)")
	assert.NotContains(t, out, "Untitled Workout")
	assert.NotContains(t, out, "preset")
}

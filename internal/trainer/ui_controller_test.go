package trainer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/hiit-timer/internal/generator"
	"github.com/lowaak/hiit-timer/internal/store"
	"github.com/lowaak/hiit-timer/internal/workout"
)

type fakeGenerator struct {
	mu      sync.Mutex
	plan    workout.WorkoutPlan
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (workout.WorkoutPlan, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.plan, g.err
}

var _ generator.Generator = (*fakeGenerator)(nil)

type controllerFixture struct {
	controller *UIController
	model      *UIModel
	manager    *WorkoutManager
	generator  *fakeGenerator
}

func newControllerFixture(t *testing.T, dir string) controllerFixture {
	t.Helper()
	logger, _ := newTestLogger()

	model := newTestModel(t, dir)
	manager := NewWorkoutManager(model, &fakePlayer{}, time.Hour, logger)

	custom, err := store.Open(dir, logger)
	require.NoError(t, err)
	t.Cleanup(func() { custom.Close() })

	gen := &fakeGenerator{plan: testWorkout().Plan}
	controller := NewUIController(model, manager, store.NewLibrary(custom), gen, logger)
	t.Cleanup(controller.Shutdown)

	return controllerFixture{controller: controller, model: model, manager: manager, generator: gen}
}

func (f controllerFixture) waitForGenerator(t *testing.T) GeneratorState {
	t.Helper()
	require.Eventually(t, func() bool {
		return !f.model.GetGeneratorState().Generating
	}, time.Second, time.Millisecond)
	return f.model.GetGeneratorState()
}

func TestUIController_InitializeLoadsWorkouts(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())

	f.controller.Initialize()
	assert.Len(t, f.model.GetWorkouts(), len(workout.Presets()))
	assert.Equal(t, SessionStatusIdle, f.model.GetSessionState().Status)
}

func TestUIController_InitializeRestoresLastWorkout(t *testing.T) {
	dir := t.TempDir()
	first := newControllerFixture(t, dir)
	first.controller.OnWorkoutSelected("4")
	first.controller.Shutdown()

	second := newControllerFixture(t, dir)
	second.controller.Initialize()

	session := second.model.GetSessionState()
	require.NotNil(t, session.Workout)
	assert.Equal(t, workout.WorkoutID("4"), session.Workout.ID)
	assert.Equal(t, SessionStatusReady, session.Status)
}

func TestUIController_OnWorkoutSelected(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())

	f.controller.OnWorkoutSelected("2")
	session := f.model.GetSessionState()
	require.NotNil(t, session.Workout)
	assert.Equal(t, workout.WorkoutID("2"), session.Workout.ID)
	assert.Equal(t, UIModeWorkoutSummary, f.model.GetUIState().Mode)

	f.controller.OnWorkoutSelected("missing")
	assert.Contains(t, f.model.GetUIState().Notice, "Workout not found")
	assert.Equal(t, workout.WorkoutID("2"), f.model.GetSessionState().Workout.ID)
}

func TestUIController_OnModeChangeNeedsWorkout(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())

	f.controller.OnModeChange(UIModeWorkout)
	assert.Equal(t, UIState{Mode: UIModeWorkoutSelection, Notice: "Select a workout first"}, f.model.GetUIState())

	f.controller.OnModeChange(UIModeGenerator)
	assert.Equal(t, UIState{Mode: UIModeGenerator}, f.model.GetUIState())
}

func TestUIController_SummaryPausesRunningWorkout(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())
	f.controller.OnWorkoutSelected("1")

	f.controller.StartWorkout()
	assert.Equal(t, UIModeWorkout, f.model.GetUIState().Mode)
	require.Eventually(t, func() bool {
		return f.model.GetSessionState().Status == SessionStatusRunning
	}, time.Second, time.Millisecond)

	f.controller.OnModeChange(UIModeWorkoutSummary)
	assert.Equal(t, UIModeWorkoutSummary, f.model.GetUIState().Mode)
	require.Eventually(t, func() bool {
		return f.model.GetSessionState().Status == SessionStatusPaused
	}, time.Second, time.Millisecond)
}

func TestUIController_StartWorkoutRewindsFinished(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())
	f.controller.OnWorkoutSelected("1")

	f.manager.SeekTo(1 << 20)
	require.Equal(t, SessionStatusFinished, f.model.GetSessionState().Status)

	f.controller.ToggleWorkout()
	assert.Equal(t, "Workout Complete!", f.model.GetUIState().Notice)

	f.controller.StartWorkout()
	require.Eventually(t, func() bool {
		session := f.model.GetSessionState()
		return session.Status == SessionStatusRunning && session.Projection.TotalElapsedSeconds == 0
	}, time.Second, time.Millisecond)
}

func TestUIController_StartWorkoutWithoutSelection(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())

	f.controller.StartWorkout()
	assert.Equal(t, UIState{Mode: UIModeWorkoutSelection, Notice: "Select a workout first"}, f.model.GetUIState())
}

func TestUIController_SkipAndStop(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())
	f.controller.OnWorkoutSelected("1")

	f.controller.SkipNext()
	skipped := f.model.GetSessionState().Projection
	assert.Equal(t, 1, skipped.CurrentExerciseIndex+skipped.CurrentStageIndex)

	f.controller.SkipPrevious()
	assert.Equal(t, skipped.CurrentExerciseStartTime-1, f.model.GetSessionState().Projection.TotalElapsedSeconds)

	f.controller.StopWorkout()
	require.Eventually(t, func() bool {
		return f.model.GetSessionState().Projection.TotalElapsedSeconds == 0
	}, time.Second, time.Millisecond)
}

func TestUIController_BackToSelection(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())
	f.controller.OnWorkoutSelected("3")

	f.controller.BackToSelection()
	assert.Nil(t, f.model.GetSessionState().Workout)
	assert.Equal(t, UIModeWorkoutSelection, f.model.GetUIState().Mode)
}

func TestUIController_ToggleLanguage(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())

	f.controller.ToggleLanguage()
	assert.Equal(t, "ru", f.model.GetLanguage())
	f.controller.ToggleLanguage()
	assert.Equal(t, "en", f.model.GetLanguage())
}

func TestUIController_GenerateSaveStart(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())
	f.controller.Initialize()

	f.controller.Generate("short boxing session")
	state := f.waitForGenerator(t)
	assert.Equal(t, "short boxing session", state.Prompt)
	assert.Equal(t, testWorkout().Plan, state.Plan)
	assert.Empty(t, state.Err)
	assert.Empty(t, state.SavedID)

	f.controller.SaveGenerated("Mine", "quick one")
	state = f.model.GetGeneratorState()
	require.NotEmpty(t, state.SavedID)
	assert.True(t, state.SavedID.IsCustom())
	assert.Equal(t, "Workout saved", f.model.GetUIState().Notice)
	assert.Len(t, f.model.GetWorkouts(), len(workout.Presets())+1)

	f.controller.SaveGenerated("Mine again", "")
	assert.Equal(t, "Workout already saved", f.model.GetUIState().Notice)
	assert.Len(t, f.model.GetWorkouts(), len(workout.Presets())+1)

	f.controller.StartGenerated()
	session := f.model.GetSessionState()
	require.NotNil(t, session.Workout)
	assert.Equal(t, state.SavedID, session.Workout.ID)
	assert.Equal(t, "Mine", session.Workout.Title)
	assert.Equal(t, UIModeWorkoutSummary, f.model.GetUIState().Mode)
}

func TestUIController_StartGeneratedUnsaved(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())

	f.controller.StartGenerated()
	assert.Equal(t, "Generate a workout first", f.model.GetUIState().Notice)

	f.controller.Generate("anything")
	f.waitForGenerator(t)

	f.controller.StartGenerated()
	session := f.model.GetSessionState()
	require.NotNil(t, session.Workout)
	assert.Empty(t, session.Workout.ID)
	assert.Equal(t, "Generated Workout", session.Workout.Title)
	assert.Equal(t, 25, session.Projection.TotalWorkoutDuration)
}

func TestUIController_GenerateErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{generator.ErrEmptyPrompt, "Please describe the workout you want"},
		{fmt.Errorf("%w: set it", generator.ErrMissingAPIKey), "API key is not configured"},
		{fmt.Errorf("%w: bad key", generator.ErrInvalidAPIKey), "API key is not valid"},
		{generator.ErrEmptyResponse, "The generator returned an empty response"},
		{fmt.Errorf("%w: eof", generator.ErrMalformedPlan), "Could not parse the workout plan, try refining your request"},
		{errors.New("boom"), "Failed to generate workout: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			f := newControllerFixture(t, t.TempDir())
			f.generator.plan = nil
			f.generator.err = tt.err

			f.controller.Generate("prompt")
			state := f.waitForGenerator(t)
			assert.Equal(t, tt.want, state.Err)
			assert.Nil(t, state.Plan)
		})
	}
}

func TestUIController_DeleteWorkout(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())
	f.controller.Initialize()

	f.controller.DeleteWorkout("1")
	assert.Equal(t, "Built-in workouts cannot be deleted", f.model.GetUIState().Notice)

	f.controller.Generate("prompt")
	f.waitForGenerator(t)
	f.controller.SaveGenerated("Mine", "")
	id := f.model.GetGeneratorState().SavedID
	f.controller.OnWorkoutSelected(id)
	require.Equal(t, id, f.model.GetSessionState().Workout.ID)

	f.controller.DeleteWorkout(id)
	assert.Equal(t, "Workout deleted", f.model.GetUIState().Notice)
	assert.Nil(t, f.model.GetSessionState().Workout)
	assert.Len(t, f.model.GetWorkouts(), len(workout.Presets()))

	f.controller.DeleteWorkout(id)
	assert.Contains(t, f.model.GetUIState().Notice, "Failed to delete workout")
}

func TestUIController_EscapeRequestsClose(t *testing.T) {
	f := newControllerFixture(t, t.TempDir())

	closed := make(chan struct{}, 1)
	defer f.model.ListenToCloseApplication(closed)()

	f.controller.OnEscapeKey()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close not requested")
	}
}

package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lowaak/hiit-timer/internal/generator"
	"github.com/lowaak/hiit-timer/internal/i18n"
	"github.com/lowaak/hiit-timer/internal/safego"
	"github.com/lowaak/hiit-timer/internal/store"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// WorkoutLibrary is the part of store.Library the UI needs
type WorkoutLibrary interface {
	All(ctx context.Context) ([]workout.WorkoutInfo, error)
	Find(ctx context.Context, id workout.WorkoutID) (workout.WorkoutInfo, error)
	Save(ctx context.Context, plan workout.WorkoutPlan, title, description string) (workout.WorkoutInfo, error)
	Delete(ctx context.Context, id workout.WorkoutID) error
}

var _ WorkoutLibrary = (*store.Library)(nil)

// UIController handles UI events and coordinates with the UIModel
type UIController struct {
	model          *UIModel
	workoutManager *WorkoutManager
	library        WorkoutLibrary
	generator      generator.Generator
	logger         *log.Logger
	ctx            context.Context
	cancel         context.CancelFunc
	group          *safego.Group
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(model *UIModel, workoutManager *WorkoutManager, library WorkoutLibrary, gen generator.Generator, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if workoutManager == nil {
		panic("UIController: workoutManager cannot be nil")
	}
	if library == nil {
		panic("UIController: library cannot be nil")
	}
	if gen == nil {
		panic("UIController: generator cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &UIController{
		model:          model,
		workoutManager: workoutManager,
		library:        library,
		generator:      gen,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
		group:          safego.NewGroup(logger),
	}
}

// Initialize loads the workout list and reloads the workout used last time
func (c *UIController) Initialize() {
	c.RefreshWorkouts()

	id := c.model.LastWorkoutID()
	if id == "" {
		return
	}
	info, err := c.library.Find(c.ctx, id)
	if err != nil {
		c.logger.Printf("Last workout %s not restored: %v", id, err)
		return
	}
	c.logger.Printf("Restoring last workout: %s", info.Title)
	c.workoutManager.SetWorkout(&info)
}

// RefreshWorkouts reloads presets and saved workouts into the model
func (c *UIController) RefreshWorkouts() {
	workouts, err := c.library.All(c.ctx)
	if err != nil {
		c.logger.Printf("Failed to load workouts: %v", err)
		c.model.SetNotice(fmt.Sprintf("%s: %v", c.model.T("Failed to load workouts"), err))
		workouts = workout.Presets()
	}
	c.model.SetWorkouts(workouts)
}

// OnEscapeKey handles when the Escape key is pressed
func (c *UIController) OnEscapeKey() {
	c.model.RequestCloseApplication()
}

// OnModeChange handles when the user requests a mode change
func (c *UIController) OnModeChange(mode UIMode) {
	session := c.model.GetSessionState()
	if (mode == UIModeWorkoutSummary || mode == UIModeWorkout) && session.Workout == nil {
		c.model.SetNotice(c.model.T("Select a workout first"))
		return
	}

	// Leaving the clock for the summary pauses it
	if mode == UIModeWorkoutSummary && session.Status == SessionStatusRunning {
		c.workoutManager.Pause()
	}

	if info, ok := GetUIModeInfo(mode); ok {
		c.logger.Printf("Switching to %s mode", info.DisplayName)
	}
	c.model.SetMode(mode)
}

// ToggleLanguage switches to the next supported language
func (c *UIController) ToggleLanguage() {
	next := i18n.Next(c.model.GetLanguage())
	if err := c.model.SetLanguage(next); err != nil {
		c.logger.Printf("Failed to switch language: %v", err)
		return
	}
	c.logger.Printf("Language set to %s", next)
}

// --- Workout Selection Methods ---

// OnWorkoutSelected loads the workout with id and shows its summary
func (c *UIController) OnWorkoutSelected(id workout.WorkoutID) {
	info, err := c.library.Find(c.ctx, id)
	if err != nil {
		c.logger.Printf("Workout %s not found: %v", id, err)
		c.model.SetNotice(fmt.Sprintf("%s: %v", c.model.T("Workout not found"), err))
		return
	}

	c.logger.Printf("Workout selected: %s", info.Title)
	c.workoutManager.SetWorkout(&info)
	c.model.SetMode(UIModeWorkoutSummary)
}

// DeleteWorkout removes a saved workout. Built-in workouts are refused.
func (c *UIController) DeleteWorkout(id workout.WorkoutID) {
	err := c.library.Delete(c.ctx, id)
	switch {
	case errors.Is(err, store.ErrBuiltinReadOnly):
		c.model.SetNotice(c.model.T("Built-in workouts cannot be deleted"))
		return
	case err != nil:
		c.logger.Printf("Failed to delete workout %s: %v", id, err)
		c.model.SetNotice(fmt.Sprintf("%s: %v", c.model.T("Failed to delete workout"), err))
		return
	}

	c.logger.Printf("Workout %s deleted", id)
	if session := c.model.GetSessionState(); session.Workout != nil && session.Workout.ID == id {
		c.workoutManager.SetWorkout(nil)
	}
	c.RefreshWorkouts()
	c.model.SetNotice(c.model.T("Workout deleted"))
}

// BackToSelection unloads the workout and returns to the workout list
func (c *UIController) BackToSelection() {
	c.workoutManager.SetWorkout(nil)
	c.model.SetMode(UIModeWorkoutSelection)
}

// --- Workout Session Methods ---

// StartWorkout starts or resumes the loaded workout and shows it. A finished
// workout is rewound first.
func (c *UIController) StartWorkout() {
	session := c.model.GetSessionState()
	if session.Workout == nil {
		c.model.SetNotice(c.model.T("Select a workout first"))
		return
	}
	if session.Status == SessionStatusFinished {
		c.workoutManager.SetWorkout(session.Workout)
	}
	c.workoutManager.Start()
	c.model.SetMode(UIModeWorkout)
}

// ToggleWorkout starts, pauses, or resumes the workout based on current state
func (c *UIController) ToggleWorkout() {
	state := c.model.GetSessionState()
	switch state.Status {
	case SessionStatusReady, SessionStatusPaused, SessionStatusRunning:
		c.workoutManager.TogglePause()
	case SessionStatusFinished:
		c.model.SetNotice(c.model.T("Workout Complete!"))
	default:
		c.logger.Printf("No workout loaded - select one in Workout Selection mode (press 1)")
	}
}

// StopWorkout stops the workout and rewinds it
func (c *UIController) StopWorkout() {
	c.workoutManager.Stop()
}

// SkipNext jumps to the next exercise
func (c *UIController) SkipNext() {
	c.workoutManager.SkipNext()
}

// SkipPrevious jumps back into the previous exercise
func (c *UIController) SkipPrevious() {
	c.workoutManager.SkipPrevious()
}

// --- Generator Methods ---

// Generate asks the generator for a plan in the background. The result
// arrives through the model's generator state.
func (c *UIController) Generate(prompt string) {
	started := false
	c.model.UpdateGeneratorState(func(s *GeneratorState) {
		if s.Generating {
			return
		}
		*s = GeneratorState{Prompt: prompt, Generating: true}
		started = true
	})
	if !started {
		c.logger.Printf("Generation already in progress")
		return
	}
	c.logger.Printf("Generating workout for %q", prompt)

	c.group.Go("UIController.generate", func() {
		plan, err := c.generator.Generate(c.ctx, prompt)
		if err != nil {
			c.logger.Printf("Generation failed: %v", err)
		} else {
			c.logger.Printf("Generated %d stages (%s)", len(plan), workout.FormatTime(plan.TotalDuration()))
		}

		c.model.UpdateGeneratorState(func(s *GeneratorState) {
			s.Generating = false
			if err != nil {
				s.Err = c.generatorErrorMessage(err)
				return
			}
			s.Plan = plan
		})
	})
}

// generatorErrorMessage turns a generation failure into a message the user
// can act on
func (c *UIController) generatorErrorMessage(err error) string {
	switch {
	case errors.Is(err, generator.ErrEmptyPrompt):
		return c.model.T("Please describe the workout you want")
	case errors.Is(err, generator.ErrMissingAPIKey):
		return c.model.T("API key is not configured")
	case errors.Is(err, generator.ErrInvalidAPIKey):
		return c.model.T("API key is not valid")
	case errors.Is(err, generator.ErrEmptyResponse):
		return c.model.T("The generator returned an empty response")
	case errors.Is(err, generator.ErrMalformedPlan), errors.Is(err, workout.ErrInvalidPlan):
		return c.model.T("Could not parse the workout plan, try refining your request")
	case errors.Is(err, context.Canceled):
		return c.model.T("Generation cancelled")
	}
	return fmt.Sprintf("%s: %v", c.model.T("Failed to generate workout"), err)
}

// StartGenerated loads the last generated plan as an unsaved workout and
// shows its summary
func (c *UIController) StartGenerated() {
	state := c.model.GetGeneratorState()
	if len(state.Plan) == 0 {
		c.model.SetNotice(c.model.T("Generate a workout first"))
		return
	}

	info := workout.WorkoutInfo{
		ID:    state.SavedID,
		Title: c.model.T("Generated Workout"),
		Plan:  state.Plan,
	}
	if state.SavedID != "" {
		if saved, err := c.library.Find(c.ctx, state.SavedID); err == nil {
			info = saved
		}
	}

	c.logger.Printf("Starting generated workout (%s)", workout.FormatTime(info.Plan.TotalDuration()))
	c.workoutManager.SetWorkout(&info)
	c.model.SetMode(UIModeWorkoutSummary)
}

// SaveGenerated stores the last generated plan as a custom workout
func (c *UIController) SaveGenerated(title, description string) {
	state := c.model.GetGeneratorState()
	if len(state.Plan) == 0 {
		c.model.SetNotice(c.model.T("Generate a workout first"))
		return
	}
	if state.SavedID != "" {
		c.model.SetNotice(c.model.T("Workout already saved"))
		return
	}

	info, err := c.library.Save(c.ctx, state.Plan, title, description)
	if err != nil {
		c.logger.Printf("Failed to save workout: %v", err)
		c.model.SetNotice(fmt.Sprintf("%s: %v", c.model.T("Failed to save workout"), err))
		return
	}

	c.logger.Printf("Workout saved as %s (%s)", info.ID, info.Title)
	c.model.UpdateGeneratorState(func(s *GeneratorState) { s.SavedID = info.ID })
	c.RefreshWorkouts()
	c.model.SetNotice(c.model.T("Workout saved"))
}

// Shutdown cancels pending generation and stops the workout manager
func (c *UIController) Shutdown() {
	c.cancel()
	c.group.Wait()
	c.workoutManager.Shutdown()
}

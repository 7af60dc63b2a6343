package trainer

import (
	"github.com/lowaak/hiit-timer/internal/workout"
)

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	// controller is used to handle keyboard events
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Mode Management ---

	// SetMode switches the UI to the specified mode
	SetMode(mode UIMode)

	// GetCurrentMode returns the currently active UI mode
	GetCurrentMode() UIMode

	// SetNotice shows a one-line message above the active screen
	SetNotice(msg string)

	// SetLanguage re-renders every label in the active language
	SetLanguage(lang string)

	// --- Log View (shared across modes) ---

	// GetLogViewHeight returns the visible height of the log view
	GetLogViewHeight() int

	// ClearLogView clears the log view
	ClearLogView()

	// WriteLogLine writes a line to the log view
	WriteLogLine(line string) error

	// --- Workout Selection Mode ---

	// SetWorkoutList populates the workout selection list
	SetWorkoutList(workouts []workout.WorkoutInfo)

	// --- Summary and Workout Modes ---

	// UpdateSessionState updates the summary and running workout displays
	UpdateSessionState(state SessionState)

	// --- Generator Mode ---

	// UpdateGeneratorState updates the generator form and result display
	UpdateGeneratorState(state GeneratorState)
}

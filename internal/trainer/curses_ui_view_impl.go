package trainer

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/hiit-timer/internal/audio"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// Page names for tview.Pages
const (
	pageWorkoutSelection = "workout_selection"
	pageWorkoutSummary   = "workout_summary"
	pageWorkout          = "workout"
	pageGenerator        = "generator"
	pageConfirmDelete    = "confirm_delete"
)

const progressBarWidth = 30

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	model       *UIModel
	currentMode UIMode
	modalOpen   bool

	// Written by model listeners, read by key handlers on the tview goroutine
	dataMu   sync.RWMutex
	workouts []workout.WorkoutInfo
	session  SessionState

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	noticeView *tview.TextView
	logView    *tview.TextView
	mainFlex   *tview.Flex // Notice on top, mode content on left, logs on right

	// Workout Selection mode components
	workoutSelectionFlex         *tview.Flex
	workoutSelectionInstructions *tview.TextView
	workoutSelectionTabWidgets   []*tview.Box
	workoutList                  *tview.List
	workoutDetailsPanel          *tview.TextView

	// Workout Summary mode components
	workoutSummaryFlex         *tview.Flex
	workoutSummaryInstructions *tview.TextView
	summaryPanel               *tview.TextView

	// Workout mode components
	workoutFlex         *tview.Flex
	workoutInstructions *tview.TextView
	workoutPanel        *tview.TextView

	// Generator mode components
	generatorFlex         *tview.Flex
	generatorInstructions *tview.TextView
	generatorForm         *tview.Form
	promptField           *tview.InputField
	titleField            *tview.InputField
	descriptionField      *tview.InputField
	generatorResultPanel  *tview.TextView
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel) *CursesUIViewImpl {
	if logger == nil {
		panic("CursesUIView: logger cannot be nil")
	}
	if app == nil {
		panic("CursesUIView: app cannot be nil")
	}
	if model == nil {
		panic("CursesUIView: model cannot be nil")
	}
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		model:       model,
		currentMode: UIModeWorkoutSelection,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// Create shared log view
	// Note: Don't use SetChangedFunc with app.Draw() - it can cause hangs during shutdown
	// when the app has been stopped but log messages are still being written.
	// The BaseUIView's event listeners already call Draw() after updating content.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true)

	ui.noticeView = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	// Create pages container for mode switching
	ui.pages = tview.NewPages()

	// Initialize each mode
	ui.initWorkoutSelectionMode(controller)
	ui.initWorkoutSummaryMode()
	ui.initWorkoutMode()
	ui.initGeneratorMode(controller)

	// Add pages
	ui.pages.AddPage(pageWorkoutSelection, ui.workoutSelectionFlex, true, true)
	ui.pages.AddPage(pageWorkoutSummary, ui.workoutSummaryFlex, true, false)
	ui.pages.AddPage(pageWorkout, ui.workoutFlex, true, false)
	ui.pages.AddPage(pageGenerator, ui.generatorFlex, true, false)

	// Create main layout: notice line, then pages on left and logs on right
	body := tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)
	ui.mainFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.noticeView, 1, 0, false).
		AddItem(body, 0, 1, true)

	ui.applyLabels()
	ui.UpdateSessionState(ui.model.GetSessionState())
	ui.UpdateGeneratorState(ui.model.GetGeneratorState())

	// Set initial focus
	ui.setFocusForCurrentMode()
}

func newPanel() *tview.TextView {
	panel := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft).
		SetWordWrap(true)
	panel.SetBorder(true)
	return panel
}

func newInstructions() *tview.TextView {
	return tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
}

// initWorkoutSelectionMode sets up the Workout Selection mode UI
func (ui *CursesUIViewImpl) initWorkoutSelectionMode(controller *UIController) {
	ui.workoutSelectionInstructions = newInstructions()

	// Create workout list for selecting workouts
	ui.workoutList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			info, ok := ui.workoutAt(index)
			if !ok {
				return
			}
			ui.logger.Printf("UI: Workout selected: index=%d, name=%s", index, mainText)
			controller.OnWorkoutSelected(info.ID)
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			// Update details panel when selection changes
			ui.updateWorkoutDetailsDisplay(index)
		})
	ui.workoutList.SetBorder(true)

	// Create workout details panel
	ui.workoutDetailsPanel = newPanel()
	ui.updateWorkoutDetailsDisplay(-1) // Initialize with no selection

	ui.workoutSelectionTabWidgets = append(ui.workoutSelectionTabWidgets, ui.workoutList.Box)
	ui.workoutSelectionTabWidgets = append(ui.workoutSelectionTabWidgets, ui.workoutDetailsPanel.Box)

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.workoutList, 0, 1, true).
		AddItem(ui.workoutDetailsPanel, 0, 1, false)

	ui.workoutSelectionFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.workoutSelectionInstructions, 2, 0, false).
		AddItem(content, 0, 1, true)
}

// initWorkoutSummaryMode sets up the Workout Summary mode UI
func (ui *CursesUIViewImpl) initWorkoutSummaryMode() {
	ui.workoutSummaryInstructions = newInstructions()
	ui.summaryPanel = newPanel()
	ui.summaryPanel.SetScrollable(true)

	ui.workoutSummaryFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.workoutSummaryInstructions, 2, 0, false).
		AddItem(ui.summaryPanel, 0, 1, true)
}

// initWorkoutMode sets up the running Workout mode UI
func (ui *CursesUIViewImpl) initWorkoutMode() {
	ui.workoutInstructions = newInstructions()
	ui.workoutPanel = newPanel()

	ui.workoutFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.workoutInstructions, 2, 0, false).
		AddItem(ui.workoutPanel, 0, 1, true)
}

// initGeneratorMode sets up the Generator mode UI
func (ui *CursesUIViewImpl) initGeneratorMode(controller *UIController) {
	ui.generatorInstructions = newInstructions()

	ui.promptField = tview.NewInputField().SetFieldWidth(0)
	ui.titleField = tview.NewInputField().SetFieldWidth(0)
	ui.descriptionField = tview.NewInputField().SetFieldWidth(0)

	ui.generatorForm = tview.NewForm().
		AddFormItem(ui.promptField).
		AddButton("Generate", func() {
			controller.Generate(ui.promptField.GetText())
		}).
		AddFormItem(ui.titleField).
		AddFormItem(ui.descriptionField).
		AddButton("Save Workout", func() {
			controller.SaveGenerated(ui.titleField.GetText(), ui.descriptionField.GetText())
		}).
		AddButton("Start Generated Workout", func() {
			controller.StartGenerated()
		})
	ui.generatorForm.SetBorder(true)

	ui.generatorResultPanel = newPanel()
	ui.generatorResultPanel.SetScrollable(true)

	ui.generatorFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.generatorInstructions, 2, 0, false).
		AddItem(ui.generatorForm, 11, 0, true).
		AddItem(ui.generatorResultPanel, 0, 1, false)
}

// modeKeysLine lists the mode switching keys in the active language
func (ui *CursesUIViewImpl) modeKeysLine() string {
	parts := make([]string, 0, len(AllUIModes)+2)
	for _, info := range AllUIModes {
		parts = append(parts, fmt.Sprintf("[yellow]%c[white] %s", info.KeyBinding, ui.model.T(info.DisplayName)))
	}
	parts = append(parts, fmt.Sprintf("[yellow]Esc[white] %s", ui.model.T("Quit")))
	return strings.Join(parts, "  |  ")
}

// applyLabels renders every static label in the active language
func (ui *CursesUIViewImpl) applyLabels() {
	t := ui.model.T
	modeKeys := ui.modeKeysLine()

	ui.logView.SetTitle(fmt.Sprintf(" %s ", t("Log")))

	ui.workoutList.SetTitle(fmt.Sprintf(" %s ", t("Select Your Workout")))
	ui.workoutDetailsPanel.SetTitle(fmt.Sprintf(" %s ", t("Workout Details")))
	ui.workoutSelectionInstructions.SetText(fmt.Sprintf(
		"[yellow]Enter[white] %s  |  [yellow]D[white] %s  |  [yellow]L[white] %s  |  [yellow]Tab[white] %s\n%s",
		t("Select"), t("Delete"), t("Language"), t("Cycle Panels"), modeKeys))

	ui.summaryPanel.SetTitle(fmt.Sprintf(" %s ", t("Workout Summary")))
	ui.workoutSummaryInstructions.SetText(fmt.Sprintf(
		"[yellow]Enter[white] %s  |  [yellow]B[white] %s\n%s",
		t("Start Workout"), t("Back to selection"), modeKeys))

	ui.workoutPanel.SetTitle(fmt.Sprintf(" %s ", t("Workout")))
	ui.workoutInstructions.SetText(fmt.Sprintf(
		"[yellow]Space[white] %s/%s  |  [yellow]←[white]/[yellow]→[white] %s/%s  |  [yellow]X[white] %s  |  [yellow]S[white] %s  |  [yellow]B[white] %s\n%s",
		t("Start"), t("Pause"), t("Previous exercise"), t("Next exercise"), t("Stop"),
		t("Workout Summary"), t("Back to selection"), modeKeys))

	ui.generatorForm.SetTitle(fmt.Sprintf(" %s ", t("Workout Generator")))
	ui.generatorResultPanel.SetTitle(fmt.Sprintf(" %s ", t("Generated Workout")))
	ui.generatorInstructions.SetText(fmt.Sprintf(
		"[yellow]Tab[white] %s  |  [yellow]Enter[white] %s  |  [yellow]Esc[white] %s\n%s",
		t("Next field"), t("Press button"), t("Back to selection"), modeKeys))
	ui.promptField.SetLabel(t("Workout prompt") + " ").
		SetPlaceholder(t("Describe your ideal workout..."))
	ui.titleField.SetLabel(t("Title") + " ").
		SetPlaceholder(t("Enter a title for your workout"))
	ui.descriptionField.SetLabel(t("Description") + " ").
		SetPlaceholder(t("Enter a short description"))
	for i, label := range []string{"Generate", "Save Workout", "Start Generated Workout"} {
		if button := ui.generatorForm.GetButton(i); button != nil {
			button.SetLabel(t(label))
		}
	}
}

// SetLanguage re-renders every label in the active language
func (ui *CursesUIViewImpl) SetLanguage(lang string) {
	ui.logger.Printf("UI: Language switched to %s", lang)
	ui.applyLabels()
}

// SetNotice shows a one-line message above the active screen
func (ui *CursesUIViewImpl) SetNotice(msg string) {
	if msg == "" {
		ui.noticeView.SetText("")
		return
	}
	ui.noticeView.SetText(fmt.Sprintf("[black:yellow] %s [-:-]", tview.Escape(msg)))
}

// SetWorkoutList populates the workout selection list
func (ui *CursesUIViewImpl) SetWorkoutList(workouts []workout.WorkoutInfo) {
	currentIdx := ui.workoutList.GetCurrentItem()

	ui.dataMu.Lock()
	ui.workouts = workouts
	ui.dataMu.Unlock()

	ui.workoutList.Clear()

	for _, info := range workouts {
		secondary := formatDuration(info.Plan.TotalDuration())
		if info.IsCustom {
			secondary += fmt.Sprintf("  [green]%s[white]", ui.model.T("Saved"))
		}
		ui.workoutList.AddItem(tview.Escape(ui.model.T(info.Title)), secondary, 0, nil)
	}

	if len(workouts) == 0 {
		ui.updateWorkoutDetailsDisplay(-1)
		return
	}
	if currentIdx >= len(workouts) {
		currentIdx = len(workouts) - 1
	}
	if currentIdx < 0 {
		currentIdx = 0
	}
	ui.workoutList.SetCurrentItem(currentIdx)
	ui.updateWorkoutDetailsDisplay(currentIdx)
}

// formatDuration formats a workout length for lists
func formatDuration(seconds int) string {
	minutes := seconds / 60
	if minutes >= 60 {
		hours := minutes / 60
		mins := minutes % 60
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%d min", minutes)
}

// stageColor is the tview color tag for a stage type
func stageColor(stageType workout.StageType) string {
	switch stageType {
	case workout.StageWarmup:
		return "yellow"
	case workout.StageWork:
		return "red"
	case workout.StageRest:
		return "green"
	case workout.StageCooldown:
		return "blue"
	}
	return "white"
}

// formatPlanStructure lists stages and their exercises
func (ui *CursesUIViewImpl) formatPlanStructure(plan workout.WorkoutPlan, current int) string {
	t := ui.model.T
	var b strings.Builder
	for i, stage := range plan {
		marker := " "
		if i == current {
			marker = "[yellow]>[white]"
		}
		fmt.Fprintf(&b, "  %s %d. [%s]%s[white] [gray](%s)[white] %s\n",
			marker, i+1, stageColor(stage.Type), tview.Escape(t(stage.Name)), stage.Type, workout.FormatTime(stage.Duration))
		for _, exercise := range stage.Exercises {
			fmt.Fprintf(&b, "        [gray]-[white] %s [gray]%s[white]\n", tview.Escape(t(exercise.Name)), workout.FormatTime(exercise.Duration))
		}
	}
	return b.String()
}

// updateWorkoutDetailsDisplay formats and displays the workout details
func (ui *CursesUIViewImpl) updateWorkoutDetailsDisplay(index int) {
	if ui.workoutDetailsPanel == nil {
		return
	}
	t := ui.model.T

	var text string

	if info, ok := ui.workoutAt(index); !ok {
		text = fmt.Sprintf("\n\n  [yellow]%s[white]\n\n", t("Thai Boxer HIIT"))
		text += fmt.Sprintf("  %s\n\n", t("No workouts available."))
		text += fmt.Sprintf("  [gray]%s[white]\n", t("Create your custom workout with AI"))
	} else {
		text = "\n"
		text += fmt.Sprintf("  [yellow]%s[white]\n", tview.Escape(t(info.Title)))
		if info.Description != "" {
			text += fmt.Sprintf("  [gray]%s[white]\n", tview.Escape(t(info.Description)))
		}
		text += "\n"
		text += fmt.Sprintf("  [gray]%s:[white] %s\n", t("Total"), workout.FormatTime(info.Plan.TotalDuration()))
		text += fmt.Sprintf("  [gray]%s:[white] %d\n\n", t("Laps"), info.Plan.TotalLaps())
		text += ui.formatPlanStructure(info.Plan, -1)
	}

	ui.workoutDetailsPanel.SetText(text)
	ui.workoutDetailsPanel.ScrollToBeginning()
}

// UpdateSessionState updates the summary and running workout displays
func (ui *CursesUIViewImpl) UpdateSessionState(state SessionState) {
	ui.dataMu.Lock()
	ui.session = state
	ui.dataMu.Unlock()

	ui.updateSummaryDisplay(state)
	ui.updateWorkoutDisplay(state)
}

// updateSummaryDisplay shows the plan overview of the loaded workout
func (ui *CursesUIViewImpl) updateSummaryDisplay(state SessionState) {
	t := ui.model.T

	if state.Workout == nil {
		ui.summaryPanel.SetText(fmt.Sprintf("\n  [gray]%s[white]\n\n  %s\n",
			t("No workout loaded"), t("Select a workout first")))
		return
	}

	p := state.Projection
	text := "\n"
	text += fmt.Sprintf("  [yellow]%s[white]\n", tview.Escape(t(state.Workout.Title)))
	if state.Workout.Description != "" {
		text += fmt.Sprintf("  [gray]%s[white]\n", tview.Escape(t(state.Workout.Description)))
	}
	text += "\n"
	text += fmt.Sprintf("  [gray]%s:[white] %s    [gray]%s:[white] %d\n",
		t("Total"), workout.FormatTime(p.TotalWorkoutDuration), t("Laps"), p.TotalLaps)

	current := -1
	if state.Started() && !p.IsFinished {
		current = p.CurrentStageIndex
		text += fmt.Sprintf("  [gray]%s:[white] %s    [gray]%s:[white] %s\n",
			t("Elapsed Time"), workout.FormatTime(p.TotalElapsedSeconds), t("Time Left"), workout.FormatTime(p.TimeLeftInWorkout))
	}
	text += "\n"
	text += ui.formatPlanStructure(state.Workout.Plan, current)

	text += "\n  "
	switch {
	case p.IsFinished:
		text += fmt.Sprintf("[green]%s[white]  [yellow]Enter[white] %s\n", t("Workout Complete!"), t("Start Over"))
	case state.Started():
		text += fmt.Sprintf("[yellow]Enter[white] %s\n", t("Resume Workout"))
	default:
		text += fmt.Sprintf("[yellow]Enter[white] %s\n", t("Start Workout"))
	}

	ui.summaryPanel.SetText(text)
}

// progressBar renders fraction (0..1) as a fixed-width bar
func progressBar(fraction float64, color string) string {
	filled := int(fraction*progressBarWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return fmt.Sprintf("[%s]%s[gray]%s[white] %3.0f%%",
		color, strings.Repeat("█", filled), strings.Repeat("░", progressBarWidth-filled), fraction*100)
}

// updateWorkoutDisplay formats and displays the running workout
func (ui *CursesUIViewImpl) updateWorkoutDisplay(state SessionState) {
	t := ui.model.T

	if state.Workout == nil {
		text := fmt.Sprintf("\n  [gray]%s[white]\n\n", t("No workout loaded"))
		text += fmt.Sprintf("  %s\n", t("Select a workout first"))
		ui.workoutPanel.SetText(text)
		return
	}

	p := state.Projection
	text := "\n"

	if p.IsFinished {
		text += fmt.Sprintf("\n  [green::b]%s[-::-]\n\n", t("Workout Complete!"))
		text += fmt.Sprintf("  [yellow]%s[white]\n", tview.Escape(t(state.Workout.Title)))
		text += fmt.Sprintf("  [gray]%s:[white] %s    [gray]%s:[white] %d/%d\n\n",
			t("Total"), workout.FormatTime(p.TotalWorkoutDuration), t("Laps"), p.Lap, p.TotalLaps)
		text += fmt.Sprintf("  [yellow]Enter[white] %s  |  [yellow]B[white] %s\n", t("Start Over"), t("Back to selection"))
		ui.workoutPanel.SetText(text)
		return
	}

	// Workout title and status
	status := fmt.Sprintf("[green]%s[white]", t("Running"))
	switch state.Status {
	case SessionStatusPaused:
		status = fmt.Sprintf("[gray]%s[white]", t("Paused"))
	case SessionStatusReady:
		status = fmt.Sprintf("[gray]%s[white]", t("Ready"))
	}
	text += fmt.Sprintf("  [yellow]%s[white]  (%s)\n\n", tview.Escape(t(state.Workout.Title)), status)

	// Overall timing
	text += fmt.Sprintf("  [gray]%s:[white] %s    [gray]%s:[white] %d/%d    [gray]%s:[white] %s\n",
		t("Elapsed Time"), workout.FormatTime(p.TotalElapsedSeconds),
		t("Laps"), p.Lap, p.TotalLaps,
		t("Time Left"), workout.FormatTime(p.TimeLeftInWorkout))
	text += "  " + progressBar(p.WorkoutProgress, "white") + "\n\n"

	// Current stage
	color := stageColor(p.CurrentStage.Type)
	text += fmt.Sprintf("  [gray]%s %d/%d:[white] [%s::b]%s[-::-]  [gray]%s[white]\n",
		t("Stage"), p.CurrentStageIndex+1, len(state.Workout.Plan),
		color, tview.Escape(t(p.CurrentStage.Name)), workout.FormatTime(p.TimeLeftInStage))
	text += "  " + progressBar(p.StageProgress, color) + "\n\n"

	// Current exercise with countdown
	countdownColor := "white"
	if p.TimeLeftInExercise <= audio.UrgentSeconds {
		countdownColor = "red"
	}
	if p.CurrentExerciseIndex >= 0 {
		text += fmt.Sprintf("  [gray]%s:[white] [::b]%s[::-]\n",
			t("Exercise"), tview.Escape(t(p.CurrentExercise.Name)))
	}
	text += fmt.Sprintf("  [%s::b]%s[-::-]\n", countdownColor, workout.FormatTime(p.TimeLeftInExercise))
	text += "  " + progressBar(p.ExerciseProgress, "yellow") + "\n\n"

	// Look-ahead
	first, second := NextUp(p)
	if first != "" {
		text += fmt.Sprintf("  [purple]%s:[white] %s", t("Next Up"), tview.Escape(t(first)))
		if second != "" {
			text += fmt.Sprintf(" [gray]→ %s[white]", tview.Escape(t(second)))
		}
		text += "\n"
	} else {
		text += fmt.Sprintf("  [purple]%s:[white] [green]%s[white]\n", t("Next Up"), t("Finish"))
	}

	ui.workoutPanel.SetText(text)
}

// UpdateGeneratorState updates the generator result display
func (ui *CursesUIViewImpl) UpdateGeneratorState(state GeneratorState) {
	t := ui.model.T

	var text string
	switch {
	case state.Generating:
		text = fmt.Sprintf("\n  [yellow]%s[white]\n", t("Generating..."))
	case state.Err != "":
		text = fmt.Sprintf("\n  [red]%s[white]\n", tview.Escape(state.Err))
	case len(state.Plan) > 0:
		text = fmt.Sprintf("\n  [green]%s[white]\n\n", t("Your AI-powered workout is ready!"))
		text += fmt.Sprintf("  [gray]%s:[white] %s    [gray]%s:[white] %d\n",
			t("Total"), workout.FormatTime(state.Plan.TotalDuration()), t("Laps"), state.Plan.TotalLaps())
		if state.SavedID != "" {
			text += fmt.Sprintf("  [green]%s[white]\n", t("Saved"))
		}
		text += "\n" + ui.formatPlanStructure(state.Plan, -1)
	default:
		text = fmt.Sprintf("\n  [gray]%s[white]\n", t("Create your custom workout with AI"))
	}

	ui.generatorResultPanel.SetText(text)
	ui.generatorResultPanel.ScrollToBeginning()
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModeWorkoutSelection:
		ui.pages.SwitchToPage(pageWorkoutSelection)
	case UIModeWorkoutSummary:
		ui.pages.SwitchToPage(pageWorkoutSummary)
	case UIModeWorkout:
		ui.pages.SwitchToPage(pageWorkout)
	case UIModeGenerator:
		ui.pages.SwitchToPage(pageGenerator)
	}

	ui.setFocusForCurrentMode()
	ui.app.Draw()
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

// setFocusForCurrentMode sets focus to the first widget in the current mode
func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	switch ui.currentMode {
	case UIModeWorkoutSelection:
		ui.app.SetFocus(ui.workoutList)
	case UIModeWorkoutSummary:
		ui.app.SetFocus(ui.summaryPanel)
	case UIModeWorkout:
		ui.app.SetFocus(ui.workoutPanel)
	case UIModeGenerator:
		ui.app.SetFocus(ui.generatorForm)
	}
}

// getTabWidgetsForCurrentMode returns the tab widgets for the current mode.
// The generator form handles Tab itself.
func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []*tview.Box {
	switch ui.currentMode {
	case UIModeWorkoutSelection:
		return ui.workoutSelectionTabWidgets
	default:
		return nil
	}
}

// selectedWorkout returns the workout highlighted in the selection list
func (ui *CursesUIViewImpl) selectedWorkout() (workout.WorkoutInfo, bool) {
	return ui.workoutAt(ui.workoutList.GetCurrentItem())
}

// workoutAt returns the listed workout at index
func (ui *CursesUIViewImpl) workoutAt(index int) (workout.WorkoutInfo, bool) {
	ui.dataMu.RLock()
	defer ui.dataMu.RUnlock()
	if index < 0 || index >= len(ui.workouts) {
		return workout.WorkoutInfo{}, false
	}
	return ui.workouts[index], true
}

// sessionStatus returns the status of the last published session
func (ui *CursesUIViewImpl) sessionStatus() SessionStatus {
	ui.dataMu.RLock()
	defer ui.dataMu.RUnlock()
	return ui.session.Status
}

// confirmDelete asks before deleting a saved workout
func (ui *CursesUIViewImpl) confirmDelete(controller *UIController, info workout.WorkoutInfo) {
	if !info.IsCustom {
		ui.model.SetNotice(ui.model.T("Built-in workouts cannot be deleted"))
		return
	}

	t := ui.model.T
	deleteLabel, cancelLabel := t("Delete"), t("Cancel")
	modal := tview.NewModal().
		SetText(fmt.Sprintf("%s\n\n%s", t("Are you sure you want to delete this workout?"), info.Title)).
		AddButtons([]string{deleteLabel, cancelLabel}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			ui.pages.RemovePage(pageConfirmDelete)
			ui.modalOpen = false
			ui.setFocusForCurrentMode()
			if buttonIndex == 0 {
				controller.DeleteWorkout(info.ID)
			}
		})

	ui.modalOpen = true
	ui.pages.AddPage(pageConfirmDelete, modal, false, true)
	ui.app.SetFocus(modal)
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// The confirmation dialog gets every key
		if ui.modalOpen {
			return event
		}

		// Text entry gets every key but Escape, which leaves the generator
		if _, typing := ui.app.GetFocus().(*tview.InputField); typing {
			if event.Key() == tcell.KeyEscape {
				controller.OnModeChange(UIModeWorkoutSelection)
				return nil
			}
			return event
		}

		// Number keys for mode switching (1-9)
		if event.Key() == tcell.KeyRune {
			if mode, ok := GetUIModeByKey(event.Rune()); ok {
				// Delegate to controller - it will update the model, which will notify us
				controller.OnModeChange(mode)
				return nil
			}
		}

		// Tab to switch focus between widgets in current mode
		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentMode()
			widgetCount := len(widgets)
			if widgetCount == 0 {
				return event
			}
			for i := 0; i < widgetCount+1; i++ {
				idx := i % widgetCount
				if widgets[idx].HasFocus() {
					nextIdx := (idx + 1) % widgetCount
					ui.app.SetFocus(widgets[nextIdx])
					break
				}
			}
			return nil
		}

		// Escape to quit
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		// Mode-specific key handlers
		switch ui.currentMode {
		case UIModeWorkoutSelection:
			if event.Key() == tcell.KeyRune && event.Rune() == 'd' {
				if info, ok := ui.selectedWorkout(); ok {
					ui.confirmDelete(controller, info)
				}
				return nil
			}
			if event.Key() == tcell.KeyRune && event.Rune() == 'l' {
				controller.ToggleLanguage()
				return nil
			}

		case UIModeWorkoutSummary:
			if event.Key() == tcell.KeyEnter || (event.Key() == tcell.KeyRune && event.Rune() == ' ') {
				controller.StartWorkout()
				return nil
			}
			if event.Key() == tcell.KeyRune && event.Rune() == 'b' {
				controller.BackToSelection()
				return nil
			}

		case UIModeWorkout:
			// Space to start/pause workout
			if event.Key() == tcell.KeyRune && event.Rune() == ' ' {
				controller.ToggleWorkout()
				return nil
			}
			// Enter restarts a finished workout
			if event.Key() == tcell.KeyEnter {
				if ui.sessionStatus() == SessionStatusFinished {
					controller.StartWorkout()
				} else {
					controller.ToggleWorkout()
				}
				return nil
			}
			if event.Key() == tcell.KeyRight || (event.Key() == tcell.KeyRune && event.Rune() == 'n') {
				controller.SkipNext()
				return nil
			}
			if event.Key() == tcell.KeyLeft || (event.Key() == tcell.KeyRune && event.Rune() == 'p') {
				controller.SkipPrevious()
				return nil
			}
			// 'x' to stop workout
			if event.Key() == tcell.KeyRune && event.Rune() == 'x' {
				controller.StopWorkout()
				return nil
			}
			if event.Key() == tcell.KeyRune && event.Rune() == 's' {
				controller.OnModeChange(UIModeWorkoutSummary)
				return nil
			}
			if event.Key() == tcell.KeyRune && event.Rune() == 'b' {
				controller.BackToSelection()
				return nil
			}
		}

		return event
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprintln(ui.logView, tview.Escape(line))
	return err
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}

package trainer

import (
	"context"
	"log"
	"slices"
	"sync"

	"github.com/lowaak/hiit-timer/internal/events"
	"github.com/lowaak/hiit-timer/internal/i18n"
	"github.com/lowaak/hiit-timer/internal/safego"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Mode   UIMode
	Notice string // Last user-facing error or confirmation, empty if none
}

// GeneratorState is the progress of a prompt-based plan generation
type GeneratorState struct {
	Prompt     string
	Generating bool
	Plan       workout.WorkoutPlan // Last generated plan, nil if none
	Err        string              // Last failure, cleared by the next attempt
	SavedID    workout.WorkoutID   // Set once Plan has been saved
}

type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	closeApplicationEvent *events.ChannelEvent[struct{}]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	sessionStateEvent     *events.ChannelEvent[SessionState]
	sessionState          SessionState
	workoutsEvent         *events.ChannelEvent[[]workout.WorkoutInfo]
	workouts              []workout.WorkoutInfo
	languageEvent         *events.ChannelEvent[string]
	dictionary            *i18n.Dictionary
	generatorStateEvent   *events.ChannelEvent[GeneratorState]
	generatorState        GeneratorState
	persistence           *uiModelPersistence
	logLines              []string
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	group                 *safego.Group
	logger                *log.Logger
}

const maxLogLines = 1000

// NewUIModel creates the model. Preferences are kept under dataDir; a
// language saved there wins over defaultLanguage.
func NewUIModel(dataDir, defaultLanguage string, logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}

	persistence := newUIModelPersistence(dataDir, logger)
	lang := defaultLanguage
	if saved := persistence.getLanguage(); slices.Contains(i18n.Languages(), saved) {
		lang = saved
	}
	dictionary, err := i18n.NewDictionary(lang)
	if err != nil {
		logger.Printf("UIModel: %v, falling back to %s", err, i18n.Base)
		dictionary = i18n.MustDictionary(i18n.Base)
	}

	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Mode: UIModeWorkoutSelection},
		sessionStateEvent:     events.NewChannelEvent[SessionState](true),
		sessionState:          SessionState{Status: SessionStatusIdle},
		workoutsEvent:         events.NewChannelEvent[[]workout.WorkoutInfo](true),
		languageEvent:         events.NewChannelEvent[string](true),
		dictionary:            dictionary,
		generatorStateEvent:   events.NewChannelEvent[GeneratorState](true),
		persistence:           persistence,
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		group:                 safego.NewGroup(logger),
		logger:                logger,
	}

	// Read from the UI log channel and populate logLines
	model.group.Go("UIModel.readFromLogChannel", func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.group.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

// GetUIState returns the current UI state
func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetMode updates the current UI mode and notifies listeners. The notice of
// the previous screen is dropped.
func (m *UIModel) SetMode(mode UIMode) {
	m.mu.Lock()
	if m.uiState.Mode == mode {
		m.mu.Unlock()
		return
	}
	m.uiState.Mode = mode
	m.uiState.Notice = ""
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// SetNotice shows msg to the user until the next notice or mode change
func (m *UIModel) SetNotice(msg string) {
	m.mu.Lock()
	m.uiState.Notice = msg
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToSessionState registers a channel to receive workout session updates
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToSessionState(ch chan<- SessionState) func() {
	return m.sessionStateEvent.Listen(ch)
}

// GetSessionState returns the current workout session state
func (m *UIModel) GetSessionState() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionState
}

// SetSessionState updates the workout session state and notifies listeners
func (m *UIModel) SetSessionState(state SessionState) {
	m.mu.Lock()
	m.sessionState = state
	if state.Workout != nil && state.Workout.ID != "" {
		m.persistence.setLastWorkoutID(state.Workout.ID)
	}
	m.mu.Unlock()

	m.sessionStateEvent.Notify(state)
}

// LastWorkoutID returns the id of the workout loaded in the previous run
func (m *UIModel) LastWorkoutID() workout.WorkoutID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.persistence.getLastWorkoutID()
}

// ListenToWorkouts registers a channel to receive workout list changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToWorkouts(ch chan<- []workout.WorkoutInfo) func() {
	return m.workoutsEvent.Listen(ch)
}

// GetWorkouts returns a copy of the selectable workouts
func (m *UIModel) GetWorkouts() []workout.WorkoutInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.workouts)
}

// SetWorkouts replaces the selectable workouts and notifies listeners
func (m *UIModel) SetWorkouts(workouts []workout.WorkoutInfo) {
	m.mu.Lock()
	m.workouts = slices.Clone(workouts)
	listCopy := slices.Clone(m.workouts)
	m.mu.Unlock()

	m.workoutsEvent.Notify(listCopy)
}

// ListenToLanguage registers a channel to receive language changes
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLanguage(ch chan<- string) func() {
	return m.languageEvent.Listen(ch)
}

// GetLanguage returns the active language code
func (m *UIModel) GetLanguage() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dictionary.Lang()
}

// T translates key into the active language
func (m *UIModel) T(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dictionary.T(key)
}

var _ i18n.Translator = (*UIModel)(nil)

// SetLanguage switches the UI language, persists it and notifies listeners
func (m *UIModel) SetLanguage(lang string) error {
	dictionary, err := i18n.NewDictionary(lang)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.dictionary.Lang() == lang {
		m.mu.Unlock()
		return nil
	}
	m.dictionary = dictionary
	m.persistence.setLanguage(lang)
	m.mu.Unlock()

	m.languageEvent.Notify(lang)
	return nil
}

// ListenToGeneratorState registers a channel to receive generator progress
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToGeneratorState(ch chan<- GeneratorState) func() {
	return m.generatorStateEvent.Listen(ch)
}

// GetGeneratorState returns the current generator state
func (m *UIModel) GetGeneratorState() GeneratorState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generatorState
}

// UpdateGeneratorState applies update to the generator state and notifies
// listeners with the result
func (m *UIModel) UpdateGeneratorState(update func(*GeneratorState)) GeneratorState {
	m.mu.Lock()
	update(&m.generatorState)
	state := m.generatorState
	m.mu.Unlock()

	m.generatorStateEvent.Notify(state)
	return state
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				// Channel closed
				return
			}

			// Store in log lines buffer (max 1000 lines)
			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				// Remove oldest lines, keep the most recent maxLogLines
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			// Notify listeners for immediate display
			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n lines of logs
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return []string{}
	}

	if n >= len(m.logLines) {
		// Return all lines
		result := make([]string, len(m.logLines))
		copy(result, m.logLines)
		return result
	}

	// Return last n lines
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}

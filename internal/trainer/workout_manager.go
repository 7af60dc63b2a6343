package trainer

import (
	"log"
	"sync"
	"time"

	"github.com/lowaak/hiit-timer/internal/audio"
	"github.com/lowaak/hiit-timer/internal/events"
	"github.com/lowaak/hiit-timer/internal/safego"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// workoutCommand represents commands sent to the workout goroutine
type workoutCommand int

const (
	cmdStart workoutCommand = iota
	cmdPause
	cmdStop
)

// DefaultTickInterval is the wall-clock length of one workout second
const DefaultTickInterval = time.Second

// WorkoutManager drives the workout clock. It owns the elapsed time, projects
// it onto the loaded plan after every change and publishes the result to the
// UIModel.
type WorkoutManager struct {
	model        *UIModel
	logger       *log.Logger
	tickInterval time.Duration

	// Current session state (protected by mu)
	mu      sync.RWMutex
	workout *workout.WorkoutInfo
	status  SessionStatus
	elapsed int // Workout seconds, always within [0, total]
	cues    audio.CueDetector
	seq     uint64 // Bumped for every state handed to publish

	// Publishing (publishMu guards published)
	publishMu sync.Mutex
	published uint64
	cueEvent  *events.CallbackEvent[audio.Cue]

	// Goroutine management
	cmdChan      chan workoutCommand
	doneChan     chan struct{} // Closed to signal shutdown
	group        *safego.Group
	shutdownOnce sync.Once
}

// NewWorkoutManager creates a new WorkoutManager. A tickInterval of zero
// means DefaultTickInterval.
func NewWorkoutManager(model *UIModel, player audio.Player, tickInterval time.Duration, logger *log.Logger) *WorkoutManager {
	if model == nil {
		panic("WorkoutManager: model cannot be nil")
	}
	if player == nil {
		panic("WorkoutManager: player cannot be nil")
	}
	if logger == nil {
		panic("WorkoutManager: logger cannot be nil")
	}
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}

	wm := &WorkoutManager{
		model:        model,
		logger:       logger,
		tickInterval: tickInterval,
		status:       SessionStatusIdle,
		cueEvent:     events.NewCallbackEvent[audio.Cue](false),
		cmdChan:      make(chan workoutCommand, 1),
		doneChan:     make(chan struct{}),
		group:        safego.NewGroup(logger),
	}

	wm.cueEvent.Listen(player.Play)

	// Start the workout execution goroutine
	wm.group.Go("WorkoutManager.runWorkoutLoop", wm.runWorkoutLoop)

	return wm
}

// SetWorkout loads a workout with the clock at zero, replacing whatever was
// loaded. A nil workout clears the session.
func (wm *WorkoutManager) SetWorkout(info *workout.WorkoutInfo) {
	wm.mu.Lock()

	wm.workout = info
	wm.elapsed = 0
	wm.cues.Reset()

	if info != nil {
		wm.status = SessionStatusReady
		wm.logger.Printf("WorkoutManager: Workout '%s' loaded (duration: %s)", info.Title, workout.FormatTime(info.Plan.TotalDuration()))
	} else {
		wm.status = SessionStatusIdle
		wm.logger.Printf("WorkoutManager: Workout cleared")
	}

	state, seq := wm.buildState(), wm.nextSeq()
	wm.cues.Observe(state.Projection, true)
	wm.mu.Unlock()

	// External call after releasing lock
	wm.publish(seq, state)
}

// GetState returns the current session state
func (wm *WorkoutManager) GetState() SessionState {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return wm.buildState()
}

// Start begins or resumes the clock. A finished workout has to be stopped
// (rewound) before it can run again.
func (wm *WorkoutManager) Start() {
	wm.mu.RLock()
	status := wm.status
	loaded := wm.workout != nil
	wm.mu.RUnlock()

	if !loaded {
		wm.logger.Printf("WorkoutManager: No workout loaded")
		return
	}

	switch status {
	case SessionStatusRunning:
		wm.logger.Printf("WorkoutManager: Workout already running")
		return
	case SessionStatusFinished:
		wm.logger.Printf("WorkoutManager: Workout finished, stop it to start over")
		return
	case SessionStatusReady, SessionStatusPaused:
	default:
		wm.logger.Printf("WorkoutManager: Cannot start workout in current state")
		return
	}

	wm.logger.Printf("WorkoutManager: Starting workout")
	wm.send(cmdStart)
}

// Pause holds the clock
func (wm *WorkoutManager) Pause() {
	wm.mu.RLock()
	status := wm.status
	wm.mu.RUnlock()

	if status != SessionStatusRunning {
		wm.logger.Printf("WorkoutManager: Cannot pause - workout not running")
		return
	}

	wm.logger.Printf("WorkoutManager: Pausing workout")
	wm.send(cmdPause)
}

// TogglePause pauses a running workout and starts or resumes any other
func (wm *WorkoutManager) TogglePause() {
	wm.mu.RLock()
	status := wm.status
	wm.mu.RUnlock()

	if status == SessionStatusRunning {
		wm.Pause()
		return
	}
	wm.Start()
}

// Stop halts the clock and rewinds it to zero, keeping the workout loaded
func (wm *WorkoutManager) Stop() {
	wm.mu.RLock()
	status := wm.status
	wm.mu.RUnlock()

	if status == SessionStatusIdle {
		wm.logger.Printf("WorkoutManager: No workout to stop")
		return
	}

	wm.logger.Printf("WorkoutManager: Stopping workout")
	wm.send(cmdStop)
}

// SkipNext jumps to the start of the next exercise. Nothing happens on the
// last exercise of the workout.
func (wm *WorkoutManager) SkipNext() {
	wm.seek("next exercise", func(state workout.WorkoutState) (int, bool) {
		return workout.SkipForwardTarget(state)
	})
}

// SkipPrevious jumps to the last second of the previous exercise
func (wm *WorkoutManager) SkipPrevious() {
	wm.seek("previous exercise", func(state workout.WorkoutState) (int, bool) {
		return workout.SkipBackwardTarget(state), true
	})
}

// SeekTo moves the clock to t seconds, clamped to the workout
func (wm *WorkoutManager) SeekTo(t int) {
	wm.seek("time", func(workout.WorkoutState) (int, bool) {
		return t, true
	})
}

// Shutdown stops the workout manager and cleans up resources
// Safe to call multiple times - only the first call has effect
func (wm *WorkoutManager) Shutdown() {
	wm.shutdownOnce.Do(func() {
		wm.logger.Printf("WorkoutManager: Shutting down")
		close(wm.doneChan) // Signal goroutine to exit
		wm.group.Wait()
		wm.logger.Printf("WorkoutManager: Shutdown complete")
	})
}

// --- Private Methods (no locks - caller must handle locking or only external calls) ---

// send queues cmd for the workout goroutine, giving up once shut down
func (wm *WorkoutManager) send(cmd workoutCommand) {
	select {
	case wm.cmdChan <- cmd:
	case <-wm.doneChan:
		wm.logger.Printf("WorkoutManager: Ignoring command after shutdown")
	}
}

// buildState projects the elapsed time onto the loaded plan.
// MUST be called with mu held (at least read lock).
func (wm *WorkoutManager) buildState() SessionState {
	state := SessionState{Status: wm.status}
	if wm.workout == nil {
		return state
	}

	info := *wm.workout
	state.Workout = &info
	state.Projection = workout.Project(wm.elapsed, wm.workout.Plan)
	return state
}

// seek moves the clock to the time target picks for the current projection.
// Reaching the end finishes the workout; leaving the end of a finished one
// pauses it so it can be resumed.
func (wm *WorkoutManager) seek(what string, target func(workout.WorkoutState) (int, bool)) {
	state, seq, cues, ok := func() (SessionState, uint64, []audio.Cue, bool) {
		wm.mu.Lock()
		defer wm.mu.Unlock()

		if wm.workout == nil {
			wm.logger.Printf("WorkoutManager: Cannot seek - no workout loaded")
			return SessionState{}, 0, nil, false
		}

		t, ok := target(workout.Project(wm.elapsed, wm.workout.Plan))
		if !ok {
			wm.logger.Printf("WorkoutManager: No %s to skip to", what)
			return SessionState{}, 0, nil, false
		}

		total := wm.workout.Plan.TotalDuration()
		wm.elapsed = workout.Clamp(t, total)
		switch {
		case wm.elapsed >= total:
			wm.status = SessionStatusFinished
		case wm.status == SessionStatusFinished:
			wm.status = SessionStatusPaused
		}

		state := wm.buildState()
		cues := wm.cues.Observe(state.Projection, wm.status != SessionStatusRunning)
		wm.logger.Printf("WorkoutManager: Skipped to %s at %s", what, workout.FormatTime(wm.elapsed))
		return state, wm.nextSeq(), cues, true
	}()
	if !ok {
		return
	}

	if wm.publish(seq, state) {
		wm.play(cues)
	}
}

// nextSeq stamps a state about to be published.
// MUST be called with mu held.
func (wm *WorkoutManager) nextSeq() uint64 {
	wm.seq++
	return wm.seq
}

// publish hands state to the model unless a newer state was published
// already. It reports whether state was published.
func (wm *WorkoutManager) publish(seq uint64, state SessionState) bool {
	wm.publishMu.Lock()
	defer wm.publishMu.Unlock()

	if seq <= wm.published {
		return false
	}
	wm.published = seq
	wm.model.SetSessionState(state)
	return true
}

// play fans cues out to the cue listeners. No lock needed.
func (wm *WorkoutManager) play(cues []audio.Cue) {
	for _, cue := range cues {
		wm.cueEvent.Notify(cue)
	}
}

// tickResult holds the result of processing a timer tick
type tickResult struct {
	state     SessionState
	seq       uint64
	skip      bool // status wasn't running, skip this tick
	completed bool // workout just completed
	cues      []audio.Cue
}

// handleTick advances the clock by one second under lock and returns what
// actions to take.
func (wm *WorkoutManager) handleTick() tickResult {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	if wm.status != SessionStatusRunning || wm.workout == nil {
		return tickResult{skip: true}
	}

	total := wm.workout.Plan.TotalDuration()
	wm.elapsed = workout.Clamp(wm.elapsed+1, total)

	state := wm.buildState()
	if state.Projection.IsFinished {
		wm.status = SessionStatusFinished
		state.Status = wm.status
		wm.cues.Observe(state.Projection, false)
		return tickResult{state: state, seq: wm.nextSeq(), completed: true}
	}

	return tickResult{
		state: state,
		seq:   wm.nextSeq(),
		cues:  wm.cues.Observe(state.Projection, false),
	}
}

// applyCommand performs a state transition for cmd under lock. ok is false
// when the state changed since the command was queued and it no longer
// applies.
func (wm *WorkoutManager) applyCommand(cmd workoutCommand) (state SessionState, seq uint64, ok bool) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	if wm.workout == nil {
		return SessionState{}, 0, false
	}

	switch cmd {
	case cmdStart:
		if wm.status != SessionStatusReady && wm.status != SessionStatusPaused {
			return SessionState{}, 0, false
		}
		wm.status = SessionStatusRunning
	case cmdPause:
		if wm.status != SessionStatusRunning {
			return SessionState{}, 0, false
		}
		wm.status = SessionStatusPaused
	case cmdStop:
		wm.status = SessionStatusReady
		wm.elapsed = 0
		wm.cues.Reset()
	}

	state = wm.buildState()
	if cmd != cmdStart {
		wm.cues.Observe(state.Projection, true)
	}
	return state, wm.nextSeq(), true
}

// runWorkoutLoop is the main goroutine that manages workout execution.
func (wm *WorkoutManager) runWorkoutLoop() {
	ticker := time.NewTicker(wm.tickInterval)
	ticker.Stop() // Start stopped, will be started when workout starts

	for {
		select {
		case <-wm.doneChan:
			ticker.Stop()
			wm.logger.Printf("WorkoutManager: Goroutine exiting")
			return

		case cmd := <-wm.cmdChan:
			state, seq, ok := wm.applyCommand(cmd)
			if !ok {
				continue
			}
			published := wm.publish(seq, state)

			switch cmd {
			case cmdStart:
				ticker.Reset(wm.tickInterval)
				if published && state.Projection.TotalElapsedSeconds == 0 {
					wm.play([]audio.Cue{audio.CueStart})
				}
				wm.logger.Printf("WorkoutManager: Workout started")
			case cmdPause:
				ticker.Stop()
				wm.logger.Printf("WorkoutManager: Workout paused at %s", workout.FormatTime(state.Projection.TotalElapsedSeconds))
			case cmdStop:
				ticker.Stop()
				wm.logger.Printf("WorkoutManager: Workout stopped and reset")
			}

		case <-ticker.C:
			result := wm.handleTick()

			if result.skip {
				// Paused, stopped or reloaded outside the command channel
				ticker.Stop()
				continue
			}

			if wm.publish(result.seq, result.state) {
				wm.play(result.cues)
			}

			if result.completed {
				ticker.Stop()
				wm.logger.Printf("WorkoutManager: Workout complete!")
			}
		}
	}
}

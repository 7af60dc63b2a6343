package trainer

import (
	"bytes"
	"log"
	"sync"
	"testing"

	"github.com/lowaak/hiit-timer/internal/audio"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// syncBuffer is a log destination shared with background goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*log.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return log.New(buf, "", 0), buf
}

type fakePlayer struct {
	mu     sync.Mutex
	played []audio.Cue
}

func (p *fakePlayer) Play(cue audio.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, cue)
}

func (p *fakePlayer) Played() []audio.Cue {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]audio.Cue(nil), p.played...)
}

func newTestModel(t *testing.T, dir string) *UIModel {
	t.Helper()
	logger, _ := newTestLogger()
	model := NewUIModel(dir, "en", logger, make(chan string))
	t.Cleanup(model.Shutdown)
	return model
}

// testWorkout is W10 / WORK A5+B5 / C5, 25 seconds in total
func testWorkout() *workout.WorkoutInfo {
	return &workout.WorkoutInfo{
		ID:    "test",
		Title: "Test",
		Plan: workout.WorkoutPlan{
			{Type: workout.StageWarmup, Name: "Warm-up", Duration: 10, Exercises: []workout.Exercise{{Name: "W", Duration: 10}}},
			{Type: workout.StageWork, Name: "Round 1", Duration: 10, Exercises: []workout.Exercise{{Name: "A", Duration: 5}, {Name: "B", Duration: 5}}},
			{Type: workout.StageCooldown, Name: "Cool-down", Duration: 5, Exercises: []workout.Exercise{{Name: "C", Duration: 5}}},
		},
	}
}

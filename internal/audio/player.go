package audio

import (
	"log"

	"github.com/gdamore/tcell/v2"
)

// Player makes a cue audible
type Player interface {
	Play(cue Cue)
}

// Beeper is the part of tcell.Screen a ScreenBeeper needs
type Beeper interface {
	Beep() error
}

var _ Beeper = tcell.Screen(nil)

// ScreenBeeper rings the terminal bell through the UI's tcell screen.
// Terminals have one bell sound, so a start cue rings once and an urgent cue
// rings once per countdown second.
type ScreenBeeper struct {
	screen Beeper
	logger *log.Logger
}

func NewScreenBeeper(screen Beeper, logger *log.Logger) *ScreenBeeper {
	if screen == nil {
		panic("ScreenBeeper: screen cannot be nil")
	}
	if logger == nil {
		panic("ScreenBeeper: logger cannot be nil")
	}
	return &ScreenBeeper{screen: screen, logger: logger}
}

func (b *ScreenBeeper) Play(cue Cue) {
	if err := b.screen.Beep(); err != nil {
		b.logger.Printf("Audio: failed to play %s cue (%d Hz): %v", cue, cue.Frequency(), err)
	}
}

// NopPlayer is used when audio is disabled
type NopPlayer struct{}

func (NopPlayer) Play(Cue) {}

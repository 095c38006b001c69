package tone

import (
	"log"
	"time"

	"github.com/sweeney/alarm-clock/internal/logic"
)

// Timing holds the pattern timing constants.
type Timing struct {
	BeepDuration     time.Duration
	InterBeepPause   time.Duration
	InterRepeatPause time.Duration
}

// DefaultTiming matches the original clock firmware: 200ms beeps with a
// 200ms gap and a 500ms pause between repeats.
func DefaultTiming() Timing {
	return Timing{
		BeepDuration:     200 * time.Millisecond,
		InterBeepPause:   200 * time.Millisecond,
		InterRepeatPause: 500 * time.Millisecond,
	}
}

// Player sequences repeated tone bursts for alarm commands.
type Player struct {
	gen    *Generator
	timing Timing
}

// NewPlayer creates a Player rendering through the given generator.
func NewPlayer(gen *Generator, timing Timing) *Player {
	return &Player{gen: gen, timing: timing}
}

// Play renders a full alarm pattern: Repeats iterations of one beep,
// the inter-beep pause, then the inter-repeat pause. Repeats == 0 is a
// valid no-op. A generator failure aborts only the current beep; the
// pattern proceeds to the next pause and iteration.
func (p *Player) Play(cmd logic.Command) {
	for i := 0; i < int(cmd.Repeats); i++ {
		if err := p.gen.Play(cmd.FrequencyHz, p.timing.BeepDuration); err != nil {
			log.Printf("tone: beep %d/%d failed: %v", i+1, cmd.Repeats, err)
		}
		p.gen.wait(p.timing.InterBeepPause)
		p.gen.wait(p.timing.InterRepeatPause)
	}
}

package tone

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/alarm-clock/internal/gpio"
	"github.com/sweeney/alarm-clock/internal/logic"
)

func testPlayer(t *testing.T, timing Timing) (*Player, *gpio.FakeLine, *stepClock) {
	t.Helper()
	gen, line, clock := testGenerator(t)
	return NewPlayer(gen, timing), line, clock
}

func TestPlayerZeroRepeatsIsNoOp(t *testing.T) {
	p, line, _ := testPlayer(t, DefaultTiming())

	p.Play(logic.Command{Repeats: 0, FrequencyHz: 2000})

	if len(line.Transitions) != 0 {
		t.Errorf("expected no transitions, got %d", len(line.Transitions))
	}
}

func TestPlayerPatternShape(t *testing.T) {
	timing := Timing{
		BeepDuration:     10 * time.Millisecond,
		InterBeepPause:   5 * time.Millisecond,
		InterRepeatPause: 20 * time.Millisecond,
	}
	p, line, clock := testPlayer(t, timing)

	start := clock.now
	p.Play(logic.Command{Repeats: 3, FrequencyHz: 0})

	// Three plain pulses: high/low each.
	levels := line.Levels()
	want := []int{1, 0, 1, 0, 1, 0}
	if len(levels) != len(want) {
		t.Fatalf("expected %d transitions, got %d: %v", len(want), len(levels), levels)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("transition %d: level %d, want %d", i, levels[i], want[i])
		}
	}

	// Each iteration is beep + inter-beep + inter-repeat.
	elapsed := clock.now.Sub(start)
	if elapsed != 3*(10+5+20)*time.Millisecond {
		t.Errorf("pattern took %v, want 105ms", elapsed)
	}

	// Pulses start one full iteration apart.
	gap := line.Transitions[2].At.Sub(line.Transitions[0].At)
	if gap != 35*time.Millisecond {
		t.Errorf("pulse spacing %v, want 35ms", gap)
	}
}

func TestPlayerContinuesAfterBeepFailure(t *testing.T) {
	timing := Timing{
		BeepDuration:     10 * time.Millisecond,
		InterBeepPause:   5 * time.Millisecond,
		InterRepeatPause: 5 * time.Millisecond,
	}
	p, line, clock := testPlayer(t, timing)
	line.WriteError = errors.New("pin fault")
	line.ErrorAfter = 1

	start := clock.now
	p.Play(logic.Command{Repeats: 2, FrequencyHz: 0})

	// First pulse went high then failed to drop; second failed outright.
	// The pattern must still run every pause.
	if len(line.Transitions) != 1 {
		t.Errorf("expected 1 transition, got %d", len(line.Transitions))
	}
	elapsed := clock.now.Sub(start)
	// Iteration 1: beep (held high) + both pauses; iteration 2: failed
	// beep (no hold) + both pauses.
	if elapsed != 30*time.Millisecond {
		t.Errorf("pattern took %v, want 30ms", elapsed)
	}
}

func TestDefaultTiming(t *testing.T) {
	timing := DefaultTiming()
	if timing.BeepDuration != 200*time.Millisecond {
		t.Errorf("beep duration %v", timing.BeepDuration)
	}
	if timing.InterBeepPause != 200*time.Millisecond {
		t.Errorf("inter-beep pause %v", timing.InterBeepPause)
	}
	if timing.InterRepeatPause != 500*time.Millisecond {
		t.Errorf("inter-repeat pause %v", timing.InterRepeatPause)
	}
}

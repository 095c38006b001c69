package tone

import (
	"fmt"
	"time"

	"github.com/sweeney/alarm-clock/internal/gpio"
)

// DefaultMinSleep is the smallest duration the Linux scheduler honors
// reliably. Half-periods below it are rendered with a busy-wait instead
// of a sleep. Calibrate per platform against the scheduler tick.
const DefaultMinSleep = time.Millisecond

// Generator renders a single square-wave tone on a digital output line.
type Generator struct {
	line gpio.Line

	// Now and Sleep are injectable for tests.
	Now   func() time.Time
	Sleep func(time.Duration)

	// MinSleep is the minimum schedulable sleep quantum.
	MinSleep time.Duration
}

// NewGenerator creates a Generator driving the given line with real time.
func NewGenerator(line gpio.Line, minSleep time.Duration) *Generator {
	if minSleep <= 0 {
		minSleep = DefaultMinSleep
	}
	return &Generator{
		line:     line,
		Now:      time.Now,
		Sleep:    time.Sleep,
		MinSleep: minSleep,
	}
}

// Play renders one tone of the given frequency for duration.
// frequencyHz == 0 drives the line high for the full duration, then low:
// a plain pulse with a single transition each way. Any write failure
// aborts the tone; the line is forced low best-effort before returning.
func (g *Generator) Play(frequencyHz uint, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}

	if frequencyHz == 0 {
		if err := g.line.SetHigh(); err != nil {
			return fmt.Errorf("pulse high: %w", err)
		}
		g.wait(duration)
		if err := g.line.SetLow(); err != nil {
			return fmt.Errorf("pulse low: %w", err)
		}
		return nil
	}

	// One full cycle is 1_000_000/f microseconds; the line holds each
	// level for half of that.
	half := time.Duration(500_000/int64(frequencyHz)) * time.Microsecond
	if half <= 0 {
		half = time.Microsecond
	}

	deadline := g.Now().Add(duration)
	high := false
	for g.Now().Before(deadline) {
		var err error
		if high {
			err = g.line.SetLow()
		} else {
			err = g.line.SetHigh()
		}
		if err != nil {
			g.silence()
			return fmt.Errorf("toggle line: %w", err)
		}
		high = !high
		g.wait(half)
	}

	if high {
		if err := g.line.SetLow(); err != nil {
			return fmt.Errorf("final low: %w", err)
		}
	}
	return nil
}

// wait blocks for d: a sleep when d is at least the schedulable quantum,
// otherwise a busy-wait polling the clock, trading CPU for accuracy
// below the scheduler's tick resolution.
func (g *Generator) wait(d time.Duration) {
	if d >= g.MinSleep {
		g.Sleep(d)
		return
	}
	deadline := g.Now().Add(d)
	for g.Now().Before(deadline) {
	}
}

// silence forces the line low after a write failure. Best effort.
func (g *Generator) silence() {
	_ = g.line.SetLow()
}

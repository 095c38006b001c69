package gpio

import "time"

// FakeLine is a test double that records output transitions.
type FakeLine struct {
	// Now supplies timestamps for recorded transitions.
	// Defaults to time.Now if nil.
	Now func() time.Time

	// Transitions contains every level written, in order.
	Transitions []Transition

	// WriteError, if set, will be returned by SetHigh/SetLow
	// once ErrorAfter successful writes have been recorded.
	WriteError error

	// ErrorAfter is the number of writes that succeed before
	// WriteError takes effect.
	ErrorAfter int

	// Closed tracks if Close was called.
	Closed bool

	writes int
}

// Transition is a single recorded level change.
type Transition struct {
	Level int // 1 = high, 0 = low
	At    time.Time
}

// NewFakeLine creates a FakeLine recording with the given clock.
func NewFakeLine(now func() time.Time) *FakeLine {
	return &FakeLine{Now: now}
}

// SetHigh records a high level.
func (f *FakeLine) SetHigh() error {
	return f.write(1)
}

// SetLow records a low level.
func (f *FakeLine) SetLow() error {
	return f.write(0)
}

func (f *FakeLine) write(level int) error {
	if f.WriteError != nil && f.writes >= f.ErrorAfter {
		return f.WriteError
	}
	f.writes++

	at := time.Now()
	if f.Now != nil {
		at = f.Now()
	}
	f.Transitions = append(f.Transitions, Transition{Level: level, At: at})
	return nil
}

// Close marks the line as closed.
func (f *FakeLine) Close() error {
	f.Closed = true
	return nil
}

// Levels returns just the recorded levels, in order.
func (f *FakeLine) Levels() []int {
	levels := make([]int, len(f.Transitions))
	for i, tr := range f.Transitions {
		levels[i] = tr.Level
	}
	return levels
}

// Reset clears recorded transitions.
func (f *FakeLine) Reset() {
	f.Transitions = nil
	f.Closed = false
	f.writes = 0
	f.WriteError = nil
	f.ErrorAfter = 0
}

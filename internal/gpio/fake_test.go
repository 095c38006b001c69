package gpio

import (
	"errors"
	"testing"
	"time"
)

func TestFakeLineRecordsTransitions(t *testing.T) {
	f := NewFakeLine(nil)

	if err := f.SetHigh(); err != nil {
		t.Fatalf("SetHigh: %v", err)
	}
	if err := f.SetLow(); err != nil {
		t.Fatalf("SetLow: %v", err)
	}
	if err := f.SetHigh(); err != nil {
		t.Fatalf("SetHigh: %v", err)
	}

	want := []int{1, 0, 1}
	got := f.Levels()
	if len(got) != len(want) {
		t.Fatalf("expected %d transitions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d: got level %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFakeLineTimestamps(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	clock := func() time.Time {
		at := start.Add(time.Duration(n) * time.Millisecond)
		n++
		return at
	}

	f := NewFakeLine(clock)
	f.SetHigh()
	f.SetLow()

	if !f.Transitions[0].At.Equal(start) {
		t.Errorf("transition 0: got %v, want %v", f.Transitions[0].At, start)
	}
	if !f.Transitions[1].At.Equal(start.Add(time.Millisecond)) {
		t.Errorf("transition 1: got %v, want %v", f.Transitions[1].At, start.Add(time.Millisecond))
	}
}

func TestFakeLineWriteError(t *testing.T) {
	writeErr := errors.New("pin stuck")
	f := NewFakeLine(nil)
	f.WriteError = writeErr
	f.ErrorAfter = 2

	if err := f.SetHigh(); err != nil {
		t.Fatalf("write 1: %v", err)
	}
	if err := f.SetLow(); err != nil {
		t.Fatalf("write 2: %v", err)
	}
	if err := f.SetHigh(); !errors.Is(err, writeErr) {
		t.Errorf("write 3: got %v, want %v", err, writeErr)
	}

	if len(f.Transitions) != 2 {
		t.Errorf("expected 2 recorded transitions, got %d", len(f.Transitions))
	}
}

func TestFakeLineClose(t *testing.T) {
	f := NewFakeLine(nil)
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.Closed {
		t.Error("expected Closed to be true")
	}
}

func TestFakeLineReset(t *testing.T) {
	f := NewFakeLine(nil)
	f.SetHigh()
	f.Close()

	f.Reset()
	if len(f.Transitions) != 0 {
		t.Errorf("expected no transitions after reset, got %d", len(f.Transitions))
	}
	if f.Closed {
		t.Error("expected Closed to be false after reset")
	}
}

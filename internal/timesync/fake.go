package timesync

// FakeSource serves a scripted epoch sequence for tests.
type FakeSource struct {
	// Epochs contains scripted readings; each EpochSeconds call
	// consumes the next one. The last reading repeats once exhausted.
	Epochs []int64

	// State controls the value returned by Status.
	State SyncStatus

	// ReinitError, if set, will be returned by Reinitialize.
	ReinitError error

	// Reinits counts Reinitialize calls.
	Reinits int

	index int
}

// NewFakeSource creates a completed-sync FakeSource over the readings.
func NewFakeSource(epochs ...int64) *FakeSource {
	return &FakeSource{Epochs: epochs, State: SyncCompleted}
}

// EpochSeconds returns the next scripted reading.
func (f *FakeSource) EpochSeconds() int64 {
	if len(f.Epochs) == 0 {
		return 0
	}
	epoch := f.Epochs[f.index]
	if f.index < len(f.Epochs)-1 {
		f.index++
	}
	return epoch
}

// Status returns the scripted sync state.
func (f *FakeSource) Status() SyncStatus {
	return f.State
}

// Reinitialize records the call.
func (f *FakeSource) Reinitialize() error {
	f.Reinits++
	if f.ReinitError != nil {
		return f.ReinitError
	}
	f.State = SyncCompleted
	return nil
}

// Package timesync provides the synchronized wall-clock source the
// scheduler reads, with abstraction for testing. The real implementation
// queries an NTP server and serves epoch time from the cached offset.
package timesync

// SyncStatus reports whether an initial synchronization has completed.
type SyncStatus string

const (
	SyncPending   SyncStatus = "PENDING"
	SyncCompleted SyncStatus = "COMPLETED"
)

// Source provides epoch time and resynchronization.
type Source interface {
	// EpochSeconds returns the current synchronized Unix time.
	// Before the first successful sync it serves the unadjusted
	// system clock.
	EpochSeconds() int64

	// Status reports whether an initial synchronization has completed.
	Status() SyncStatus

	// Reinitialize performs a full resynchronization from scratch.
	Reinitialize() error
}

// Package status provides a thread-safe status tracker for the
// alarm-clock daemon. It feeds the heartbeat telemetry payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/alarm-clock/internal/logic"
	"github.com/sweeney/alarm-clock/internal/timesync"
)

// NetworkInfo contains network link state.
type NetworkInfo struct {
	Iface     string
	IP        string
	Connected bool
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs         int64
	QuietStartHour int
	QuietEndHour   int
	BeepMs         int64
	NetworkCheckMs int64
	ResyncMs       int64
	HeartbeatMs    int64
	Broker         string
	NTPServer      string
	Pin            int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Clock      logic.WallClock
	SyncState  timesync.SyncStatus
	Counts     logic.AlarmCounts
	QueueDepth int

	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			SyncState: timesync.SyncPending,
			Config:    cfg,
		},
	}
}

// Update sets the sampled clock, alarm counts, and queue depth.
// Called from the detection loop on every tick.
func (t *Tracker) Update(clock logic.WallClock, counts logic.AlarmCounts, queueDepth int) {
	t.mu.Lock()
	t.snap.Clock = clock
	t.snap.Counts = counts
	t.snap.QueueDepth = queueDepth
	t.mu.Unlock()
}

// SetSyncState sets the time-source synchronization state.
func (t *Tracker) SetSyncState(state timesync.SyncStatus) {
	t.mu.Lock()
	t.snap.SyncState = state
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

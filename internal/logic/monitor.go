package logic

import "time"

// Monitor gates periodic maintenance tasks on fixed intervals.
// The detection loop asks it on every tick which tasks are due; the
// loop itself performs the I/O. Retries happen at the next interval
// regardless of outcome; there is no backoff.
type Monitor struct {
	networkInterval   time.Duration
	resyncInterval    time.Duration
	heartbeatInterval time.Duration

	lastNetworkCheck time.Time
	lastResync       time.Time
	lastHeartbeat    time.Time
}

// NewMonitor creates a Monitor whose first checks come due one full
// interval after startTime. An interval <= 0 disables that task.
func NewMonitor(networkInterval, resyncInterval, heartbeatInterval time.Duration, startTime time.Time) *Monitor {
	return &Monitor{
		networkInterval:   networkInterval,
		resyncInterval:    resyncInterval,
		heartbeatInterval: heartbeatInterval,
		lastNetworkCheck:  startTime,
		lastResync:        startTime,
		lastHeartbeat:     startTime,
	}
}

// CheckNetwork reports whether the network health check is due.
func (m *Monitor) CheckNetwork(now time.Time) bool {
	if m.networkInterval <= 0 {
		return false
	}
	if now.Sub(m.lastNetworkCheck) < m.networkInterval {
		return false
	}
	m.lastNetworkCheck = now
	return true
}

// CheckResync reports whether the time-source resynchronization is due.
func (m *Monitor) CheckResync(now time.Time) bool {
	if m.resyncInterval <= 0 {
		return false
	}
	if now.Sub(m.lastResync) < m.resyncInterval {
		return false
	}
	m.lastResync = now
	return true
}

// CheckHeartbeat reports whether a telemetry heartbeat is due.
func (m *Monitor) CheckHeartbeat(now time.Time) bool {
	if m.heartbeatInterval <= 0 {
		return false
	}
	if now.Sub(m.lastHeartbeat) < m.heartbeatInterval {
		return false
	}
	m.lastHeartbeat = now
	return true
}

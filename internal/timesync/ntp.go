package timesync

import (
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
)

// DefaultServer is the NTP pool queried when none is configured.
const DefaultServer = "pool.ntp.org"

// queryFunc returns the clock offset reported by an NTP server.
type queryFunc func(server string) (time.Duration, error)

func ntpQuery(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", server, err)
	}
	if err := resp.Validate(); err != nil {
		return 0, fmt.Errorf("invalid response from %s: %w", server, err)
	}
	return resp.ClockOffset, nil
}

// NTPSource serves epoch time as the system clock adjusted by the last
// offset obtained from the server. There is no incremental update path:
// Reinitialize always performs a full query.
type NTPSource struct {
	server string
	query  queryFunc
	now    func() time.Time

	mu     sync.Mutex
	offset time.Duration
	synced bool
}

// NewNTPSource creates a source for the given server, unsynchronized.
func NewNTPSource(server string) *NTPSource {
	if server == "" {
		server = DefaultServer
	}
	return &NTPSource{
		server: server,
		query:  ntpQuery,
		now:    time.Now,
	}
}

// EpochSeconds returns the current synchronized Unix time.
func (s *NTPSource) EpochSeconds() int64 {
	s.mu.Lock()
	offset := s.offset
	s.mu.Unlock()
	return s.now().Add(offset).Unix()
}

// Status reports whether an initial synchronization has completed.
func (s *NTPSource) Status() SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.synced {
		return SyncCompleted
	}
	return SyncPending
}

// Reinitialize queries the server and replaces the cached offset.
// On failure the previous offset is kept.
func (s *NTPSource) Reinitialize() error {
	offset, err := s.query(s.server)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.offset = offset
	s.synced = true
	s.mu.Unlock()
	return nil
}

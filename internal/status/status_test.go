package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/alarm-clock/internal/logic"
	"github.com/sweeney/alarm-clock/internal/timesync"
)

func testConfig() Config {
	return Config{
		PollMs:         500,
		QuietStartHour: 7,
		QuietEndHour:   23,
		BeepMs:         200,
		NetworkCheckMs: 30000,
		ResyncMs:       3600000,
		HeartbeatMs:    900000,
		Broker:         "tcp://192.168.1.200:1883",
		NTPServer:      "pool.ntp.org",
		Pin:            5,
	}
}

func TestTrackerStartsPending(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(start, testConfig())

	snap := tracker.Snapshot()
	if snap.SyncState != timesync.SyncPending {
		t.Errorf("sync state: %s", snap.SyncState)
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("start time: %v", snap.StartTime)
	}
	if snap.Counts.Hourly != 0 || snap.Counts.TenPast != 0 {
		t.Errorf("counts: %+v", snap.Counts)
	}
}

func TestTrackerUpdate(t *testing.T) {
	tracker := NewTracker(time.Now(), testConfig())

	clock := logic.WallClock{Hours: 8, Minutes: 0, Seconds: 3}
	counts := logic.AlarmCounts{Hourly: 2, TenPast: 1}
	tracker.Update(clock, counts, 1)
	tracker.SetSyncState(timesync.SyncCompleted)
	tracker.SetMQTTConnected(true)
	tracker.SetNetwork(&NetworkInfo{Iface: "wlan0", IP: "192.168.1.77", Connected: true})

	snap := tracker.Snapshot()
	if snap.Clock != clock {
		t.Errorf("clock: %+v", snap.Clock)
	}
	if snap.Counts != counts {
		t.Errorf("counts: %+v", snap.Counts)
	}
	if snap.QueueDepth != 1 {
		t.Errorf("queue depth: %d", snap.QueueDepth)
	}
	if snap.SyncState != timesync.SyncCompleted {
		t.Errorf("sync state: %s", snap.SyncState)
	}
	if !snap.MQTTConnected {
		t.Error("mqtt connected not set")
	}
	if snap.Network == nil || snap.Network.IP != "192.168.1.77" {
		t.Errorf("network: %+v", snap.Network)
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(90 * time.Second),
	}
	if snap.Uptime() != 90*time.Second {
		t.Errorf("uptime: %v", snap.Uptime())
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Clock:      logic.WallClock{Hours: 12, Minutes: 5},
		SyncState:  timesync.SyncCompleted,
		Counts:     logic.AlarmCounts{Hourly: 5, TenPast: 5},
		QueueDepth: 0,
		StartTime:  start,
		Now:        start.Add(5 * time.Minute),
		Network:    &NetworkInfo{Iface: "wlan0", IP: "192.168.1.77", Connected: true},
		Config:     testConfig(),
	}
	snap.MQTTConnected = true

	data := FormatStatusEvent(snap, "HEARTBEAT", "")

	var got StatusJSON
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	inner := got.Status
	if inner.Event != "HEARTBEAT" {
		t.Errorf("event: %q", inner.Event)
	}
	if inner.Time != "12:05:00" {
		t.Errorf("time: %q", inner.Time)
	}
	if inner.SyncState != "COMPLETED" {
		t.Errorf("sync state: %q", inner.SyncState)
	}
	if inner.UptimeSeconds != 300 {
		t.Errorf("uptime: %d", inner.UptimeSeconds)
	}
	if inner.Counts.Hourly != 5 || inner.Counts.TenPast != 5 {
		t.Errorf("counts: %+v", inner.Counts)
	}
	if inner.Network == nil || inner.Network.IP != "192.168.1.77" {
		t.Errorf("network: %+v", inner.Network)
	}
	if inner.Config.QuietStartHour != 7 || inner.Config.QuietEndHour != 23 {
		t.Errorf("config window: %+v", inner.Config)
	}
	if !inner.MQTT.Connected || inner.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("mqtt: %+v", inner.MQTT)
	}
}

func TestFormatStatusEventOmitsEmptyNetwork(t *testing.T) {
	snap := Snapshot{Config: testConfig(), StartTime: time.Now(), Now: time.Now()}

	data := FormatStatusEvent(snap, "STARTUP", "")

	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["status"]["network"]; ok {
		t.Error("expected network omitted when unset")
	}
}

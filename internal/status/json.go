package status

import (
	"encoding/json"
	"fmt"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Time          string       `json:"time"`
	SyncState     string       `json:"sync_state"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"alarm_counts"`
	QueueDepth    int          `json:"queue_depth"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of alarm counts.
type CountsJSON struct {
	Hourly  int `json:"hourly"`
	TenPast int `json:"ten_past"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Iface     string `json:"iface"`
	IP        string `json:"ip"`
	Connected bool   `json:"connected"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs         int64  `json:"poll_ms"`
	QuietStartHour int    `json:"quiet_start_hour"`
	QuietEndHour   int    `json:"quiet_end_hour"`
	BeepMs         int64  `json:"beep_ms"`
	NetworkCheckMs int64  `json:"network_check_ms"`
	ResyncMs       int64  `json:"resync_ms"`
	HeartbeatMs    int64  `json:"heartbeat_ms"`
	Broker         string `json:"broker"`
	NTPServer      string `json:"ntp_server"`
	Pin            int    `json:"pin"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Time: fmt.Sprintf("%02d:%02d:%02d",
			snap.Clock.Hours, snap.Clock.Minutes, snap.Clock.Seconds),
		SyncState:     string(snap.SyncState),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Hourly:  snap.Counts.Hourly,
			TenPast: snap.Counts.TenPast,
		},
		QueueDepth: snap.QueueDepth,
		Config: ConfigJSON{
			PollMs:         snap.Config.PollMs,
			QuietStartHour: snap.Config.QuietStartHour,
			QuietEndHour:   snap.Config.QuietEndHour,
			BeepMs:         snap.Config.BeepMs,
			NetworkCheckMs: snap.Config.NetworkCheckMs,
			ResyncMs:       snap.Config.ResyncMs,
			HeartbeatMs:    snap.Config.HeartbeatMs,
			Broker:         snap.Config.Broker,
			NTPServer:      snap.Config.NTPServer,
			Pin:            snap.Config.Pin,
		},
	}
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Iface:     snap.Network.Iface,
			IP:        snap.Network.IP,
			Connected: snap.Network.Connected,
		}
	}
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

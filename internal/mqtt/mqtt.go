// Package mqtt provides telemetry publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/alarm-clock/internal/logic"
)

// Topic is the MQTT topic for alarm firings.
const Topic = "home/alarm-clock/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/alarm-clock/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// PublishAlarm sends an alarm firing to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishAlarm(event AlarmEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// AlarmEvent describes one alarm firing for telemetry.
type AlarmEvent struct {
	Timestamp   time.Time
	Kind        logic.AlarmKind
	Hour        int
	Repeats     uint8
	FrequencyHz uint
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Alarm AlarmPayload `json:"alarm"`
}

// AlarmPayload contains the alarm firing details.
type AlarmPayload struct {
	Timestamp   string `json:"timestamp"`
	Kind        string `json:"kind"`
	Hour        int    `json:"hour"`
	Time        string `json:"time"`
	Repeats     int    `json:"repeats"`
	FrequencyHz uint   `json:"frequency_hz"`
}

// FormatAlarmPayload creates the JSON payload for an alarm firing.
func FormatAlarmPayload(event AlarmEvent) ([]byte, error) {
	payload := Payload{
		Alarm: AlarmPayload{
			Timestamp:   event.Timestamp.UTC().Format(time.RFC3339),
			Kind:        string(event.Kind),
			Hour:        event.Hour,
			Time:        fmt.Sprintf("%02d:00", event.Hour),
			Repeats:     int(event.Repeats),
			FrequencyHz: event.FrequencyHz,
		},
	}
	if event.Kind == logic.AlarmTenPast {
		payload.Alarm.Time = fmt.Sprintf("%02d:10", event.Hour)
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/alarm-clock/internal/logic"
)

func TestFormatAlarmPayloadHourly(t *testing.T) {
	event := AlarmEvent{
		Timestamp:   time.Date(2026, 1, 1, 8, 0, 3, 0, time.UTC),
		Kind:        logic.AlarmHourly,
		Hour:        8,
		Repeats:     8,
		FrequencyHz: 2000,
	}

	data, err := FormatAlarmPayload(event)
	if err != nil {
		t.Fatalf("FormatAlarmPayload: %v", err)
	}

	var got Payload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Alarm.Timestamp != "2026-01-01T08:00:03Z" {
		t.Errorf("timestamp: %q", got.Alarm.Timestamp)
	}
	if got.Alarm.Kind != "HOURLY" {
		t.Errorf("kind: %q", got.Alarm.Kind)
	}
	if got.Alarm.Hour != 8 {
		t.Errorf("hour: %d", got.Alarm.Hour)
	}
	if got.Alarm.Time != "08:00" {
		t.Errorf("time: %q", got.Alarm.Time)
	}
	if got.Alarm.Repeats != 8 {
		t.Errorf("repeats: %d", got.Alarm.Repeats)
	}
	if got.Alarm.FrequencyHz != 2000 {
		t.Errorf("frequency: %d", got.Alarm.FrequencyHz)
	}
}

func TestFormatAlarmPayloadTenPast(t *testing.T) {
	event := AlarmEvent{
		Timestamp:   time.Date(2026, 1, 1, 23, 10, 5, 0, time.UTC),
		Kind:        logic.AlarmTenPast,
		Hour:        23,
		Repeats:     3,
		FrequencyHz: 2600,
	}

	data, err := FormatAlarmPayload(event)
	if err != nil {
		t.Fatalf("FormatAlarmPayload: %v", err)
	}

	var got Payload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Alarm.Kind != "TEN_PAST" {
		t.Errorf("kind: %q", got.Alarm.Kind)
	}
	if got.Alarm.Time != "23:10" {
		t.Errorf("time: %q", got.Alarm.Time)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}

	var got SystemPayload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.System.Event != "SHUTDOWN" {
		t.Errorf("event: %q", got.System.Event)
	}
	if got.System.Reason != "SIGTERM" {
		t.Errorf("reason: %q", got.System.Reason)
	}
}

func TestFormatSystemPayloadRaw(t *testing.T) {
	raw := []byte(`{"status":{"event":"HEARTBEAT"}}`)
	event := SystemEvent{Event: "HEARTBEAT", RawPayload: raw}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("raw payload not passed through: %s", data)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	event := AlarmEvent{Kind: logic.AlarmHourly, Hour: 9, Repeats: 9, FrequencyHz: 2000}
	if err := f.PublishAlarm(event); err != nil {
		t.Fatalf("PublishAlarm: %v", err)
	}
	if len(f.AlarmEvents) != 1 || f.AlarmEvents[0].Hour != 9 {
		t.Errorf("events: %+v", f.AlarmEvents)
	}
	if len(f.AlarmPayloads) != 1 {
		t.Errorf("payloads: %d", len(f.AlarmPayloads))
	}

	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err != nil {
		t.Fatalf("PublishSystem: %v", err)
	}
	if len(f.SystemEvents) != 1 {
		t.Errorf("system events: %d", len(f.SystemEvents))
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	pubErr := errors.New("broker gone")
	f.PublishAlarmError = pubErr

	if err := f.PublishAlarm(AlarmEvent{}); !errors.Is(err, pubErr) {
		t.Errorf("got %v", err)
	}
	if len(f.AlarmEvents) != 0 {
		t.Error("failed publish must not record")
	}
}

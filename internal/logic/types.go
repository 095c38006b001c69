// Package logic contains pure decision logic for the alarm clock.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via parameters.
package logic

// WallClock is an epoch-seconds reading decomposed into clock fields.
type WallClock struct {
	Hours   int // 0-23
	Minutes int // 0-59
	Seconds int // 0-59
}

// AlarmKind identifies which schedule rule produced a firing.
type AlarmKind string

const (
	AlarmHourly  AlarmKind = "HOURLY"
	AlarmTenPast AlarmKind = "TEN_PAST"
)

// Command instructs the actuator to play one alarm pattern.
// FrequencyHz == 0 means a plain on/off pulse with no oscillation.
type Command struct {
	Repeats     uint8
	FrequencyHz uint
}

// Firing couples a command with the rule and hour that produced it.
type Firing struct {
	Kind    AlarmKind
	Hour    int
	Command Command
}

// Alarm tone frequencies and the fixed ten-past repeat count.
const (
	FreqHourlyHz   = 2000
	FreqTenPastHz  = 2600
	TenPastRepeats = 3
)

// QuietWindow is the inclusive hour range during which alarms may sound.
// Hours outside the window are suppressed.
type QuietWindow struct {
	StartHour int
	EndHour   int
}

// DefaultQuietWindow allows alarms from 07:00 through 23:59.
var DefaultQuietWindow = QuietWindow{StartHour: 7, EndHour: 23}

// Contains reports whether the given hour is inside the window.
func (w QuietWindow) Contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

// AlarmCounts tracks the number of firings of each kind since startup.
type AlarmCounts struct {
	Hourly  int
	TenPast int
}

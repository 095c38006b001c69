package logic

// Evaluator decides when the hourly and ten-past alarms fire.
// It owns the dedup markers and is driven once per poll by a WallClock
// sample. Not safe for concurrent use; the detection loop is its only
// caller.
type Evaluator struct {
	window QuietWindow

	// Dedup markers: the hour each rule last fired for, -1 = never.
	// A marker only changes when a different hour is observed at the
	// matching minute mark, so each rule fires at most once per hour.
	lastHourFired    int
	lastTenPastFired int

	// lastLogBucket is the 5-minute bucket of the last status log line.
	lastLogBucket int

	counts AlarmCounts
}

// NewEvaluator creates an Evaluator with no firings recorded.
func NewEvaluator(window QuietWindow) *Evaluator {
	return &Evaluator{
		window:           window,
		lastHourFired:    -1,
		lastTenPastFired: -1,
		lastLogBucket:    -1,
	}
}

// Process evaluates one wall-clock sample and returns any alarms that
// should fire. The two rules are independent: both can fire within the
// same hour, at minute 0 and minute 10 respectively.
//
// Suppression by the quiet window does NOT update the dedup markers, so
// an hour suppressed on first sight can still fire if the window is
// re-entered at that same hour.
func (e *Evaluator) Process(wc WallClock) []Firing {
	var firings []Firing

	if wc.Minutes == 0 && e.window.Contains(wc.Hours) && wc.Hours != e.lastHourFired {
		e.lastHourFired = wc.Hours
		e.counts.Hourly++
		firings = append(firings, Firing{
			Kind: AlarmHourly,
			Hour: wc.Hours,
			Command: Command{
				Repeats:     uint8(wc.Hours),
				FrequencyHz: FreqHourlyHz,
			},
		})
	}

	if wc.Minutes == 10 && e.window.Contains(wc.Hours) && wc.Hours != e.lastTenPastFired {
		e.lastTenPastFired = wc.Hours
		e.counts.TenPast++
		firings = append(firings, Firing{
			Kind: AlarmTenPast,
			Hour: wc.Hours,
			Command: Command{
				Repeats:     TenPastRepeats,
				FrequencyHz: FreqTenPastHz,
			},
		})
	}

	return firings
}

// CheckStatusLog reports whether a periodic status line is due.
// A line is due at most once per 5-minute bucket, on minutes divisible
// by 5. Quiet hours do not apply to logging.
func (e *Evaluator) CheckStatusLog(wc WallClock) bool {
	if wc.Minutes%5 != 0 {
		return false
	}
	bucket := (wc.Hours*60 + wc.Minutes) / 5
	if bucket == e.lastLogBucket {
		return false
	}
	e.lastLogBucket = bucket
	return true
}

// Counts returns the number of firings of each kind since startup.
func (e *Evaluator) Counts() AlarmCounts {
	return e.counts
}

package logic

// SampleEpoch decomposes an epoch-seconds reading into wall-clock fields.
// Pure function: for any t >= 0,
// t mod 86400 == Hours*3600 + Minutes*60 + Seconds.
func SampleEpoch(t int64) WallClock {
	return WallClock{
		Hours:   int((t / 3600) % 24),
		Minutes: int((t / 60) % 60),
		Seconds: int(t % 60),
	}
}

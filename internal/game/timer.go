package game

// SpawnTimer is a repeating countdown. Elapsed time past a completion carries
// into the next interval so spawning stays at a constant rate regardless of
// frame rate.
type SpawnTimer struct {
	interval float64
	elapsed  float64
}

// NewSpawnTimer creates a timer that completes every interval seconds.
func NewSpawnTimer(interval float64) *SpawnTimer {
	return &SpawnTimer{interval: interval}
}

// Tick advances the timer and returns how many intervals completed.
func (t *SpawnTimer) Tick(dt float64) int {
	if t.interval <= 0 || dt <= 0 {
		return 0
	}
	t.elapsed += dt
	n := 0
	for t.elapsed >= t.interval {
		t.elapsed -= t.interval
		n++
	}
	return n
}

// Reset restarts the current interval from zero.
func (t *SpawnTimer) Reset() {
	t.elapsed = 0
}

// SetInterval changes the interval and restarts the timer.
func (t *SpawnTimer) SetInterval(interval float64) {
	t.interval = interval
	t.elapsed = 0
}

// Interval returns the configured interval.
func (t *SpawnTimer) Interval() float64 { return t.interval }

// Remaining returns the time until the next completion.
func (t *SpawnTimer) Remaining() float64 {
	return t.interval - t.elapsed
}

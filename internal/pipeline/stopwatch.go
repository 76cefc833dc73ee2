package pipeline

import "time"

// stopwatch measures elapsed wall-clock time for one pipeline phase.
type stopwatch struct {
	start time.Time
}

func newStopwatch() stopwatch {
	return stopwatch{start: time.Now()}
}

// ElapsedMS returns whole milliseconds since the stopwatch started,
// clamped to be non-negative under clock adjustments.
func (s stopwatch) ElapsedMS() int64 {
	ms := time.Since(s.start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

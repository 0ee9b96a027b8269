package loop

import "time"

// FPSMeter counts frames and reports the average rate about once per second.
type FPSMeter struct {
	frames int
	since  time.Time
}

// Tick records one frame rendered at now. It returns the rate and true when a
// full second has passed since the last report.
func (m *FPSMeter) Tick(now time.Time) (float64, bool) {
	if m.since.IsZero() {
		m.since = now
	}
	m.frames++
	elapsed := now.Sub(m.since)
	if elapsed < time.Second {
		return 0, false
	}
	fps := float64(m.frames) / elapsed.Seconds()
	m.frames = 0
	m.since = now
	return fps, true
}

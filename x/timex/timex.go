package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// ResetTimer safely stops, drains, and resets a timer.
func ResetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		DrainTimer(t)
	}
	t.Reset(d)
}

// DrainTimer empties a fired-but-unread timer channel.
func DrainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}

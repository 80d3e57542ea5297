package engine

import "time"

// Clock supplies wall-clock timestamps for submissions, resolutions and
// session completion. Tests inject a deterministic implementation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system time in UTC, truncated to the millisecond
// precision the store persists.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

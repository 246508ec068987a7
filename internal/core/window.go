package core

import "time"

// DayWindow is the half-open interval [Start, End) used to scope a
// daily aggregation query. It is recomputed from the clock on every
// call and never persisted.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// DayWindowAt returns the window from local midnight up to now, in the
// given location. A nil location falls back to the process-local zone.
// Midnight is computed with time.Date so month and year boundaries and
// DST transitions follow the timezone rules.
func DayWindowAt(now time.Time, loc *time.Location) DayWindow {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return DayWindow{Start: start, End: now}
}

// Contains reports whether t falls inside the window. The window is
// half-open: Start is included, End is excluded.
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

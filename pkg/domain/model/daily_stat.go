package model

import "time"

// DateKey is the site-local calendar date (YYYY-MM-DD) keying a DailyStat
// document.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

// DailyStat accumulates per-day counters. Fields are merged additively by
// the store's field-increment primitive, never overwritten, so concurrent
// increments from independent events cannot clobber each other.
type DailyStat struct {
	Date                string
	IncidentsReported   int64
	IncidentsResolved   int64
	ChecklistsCompleted int64
	AlertsCreated       int64
	UpdatedAt           time.Time
}

// DailyStatDelta is a set of additive increments applied to one date's
// DailyStat. Zero fields are no-ops.
type DailyStatDelta struct {
	IncidentsReported   int64
	IncidentsResolved   int64
	ChecklistsCompleted int64
	AlertsCreated       int64
}

// IsZero reports whether the delta would change nothing
func (d DailyStatDelta) IsZero() bool {
	return d == DailyStatDelta{}
}

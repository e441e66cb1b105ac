package model

import "time"

// BreakOutcome tells how a break ended.
type BreakOutcome string

const (
	BreakCompleted BreakOutcome = "completed"
	BreakSkipped   BreakOutcome = "skipped"
)

// BreakEntry is one journal row.
type BreakEntry struct {
	At      time.Time
	Outcome BreakOutcome
	Streak  int
}

// DailyTotals aggregates the journal for one day.
type DailyTotals struct {
	Completed int
	Skipped   int
}

package model

import "time"

// TimerConfig contains runtime settings for the timer controller.
type TimerConfig struct {
	BreakLength time.Duration

	// WarningLead is how long before the end of a work interval the
	// advance warning notification fires.
	WarningLead time.Duration
}

// DefaultTimerConfig returns the stock break schedule.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		BreakLength: DefaultBreakLength,
		WarningLead: 30 * time.Second,
	}
}

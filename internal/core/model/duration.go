package model

import (
	"fmt"
	"time"
)

// WorkDuration is one of the selectable work interval lengths, in seconds.
type WorkDuration int

const (
	FiveSeconds   WorkDuration = 5
	TenMinutes    WorkDuration = 600
	TwentyMinutes WorkDuration = 1200
	ThirtyMinutes WorkDuration = 1800
)

// DefaultWorkDuration is used when nothing else was selected.
const DefaultWorkDuration = TwentyMinutes

// WorkDurations lists the allowed durations in menu order.
func WorkDurations() []WorkDuration {
	return []WorkDuration{FiveSeconds, TenMinutes, TwentyMinutes, ThirtyMinutes}
}

// ParseWorkDuration converts a number of seconds to a WorkDuration.
func ParseWorkDuration(seconds int) (WorkDuration, bool) {
	for _, duration := range WorkDurations() {
		if int(duration) == seconds {
			return duration, true
		}
	}
	return 0, false
}

// Valid reports whether the value is one of the allowed durations.
func (duration WorkDuration) Valid() bool {
	_, ok := ParseWorkDuration(int(duration))
	return ok
}

// Seconds returns the length in whole seconds.
func (duration WorkDuration) Seconds() int {
	return int(duration)
}

// Duration returns the length as a time.Duration.
func (duration WorkDuration) Duration() time.Duration {
	return time.Duration(duration) * time.Second
}

// Title is the long label used in menus.
func (duration WorkDuration) Title() string {
	switch duration {
	case FiveSeconds:
		return "5 seconds"
	case TenMinutes:
		return "10 minutes"
	case TwentyMinutes:
		return "20 minutes"
	case ThirtyMinutes:
		return "30 minutes"
	default:
		return fmt.Sprintf("%d seconds", int(duration))
	}
}

// ShortTitle is the compact label used in the tray status.
func (duration WorkDuration) ShortTitle() string {
	switch duration {
	case FiveSeconds:
		return "5 sec"
	case TenMinutes:
		return "10 min"
	case TwentyMinutes:
		return "20 min"
	case ThirtyMinutes:
		return "30 min"
	default:
		return fmt.Sprintf("%d sec", int(duration))
	}
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

package timekeeper

import (
	"time"

	"eyecare/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange    EventType = "state_change"
	EventProgress       EventType = "progress"
	EventBreakCompleted EventType = "break_completed"
	EventBreakSkipped   EventType = "break_skipped"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type  EventType
	State model.TimerState
	At    time.Time
}

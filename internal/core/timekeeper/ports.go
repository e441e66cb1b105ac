package timekeeper

import (
	"time"

	"eyecare/internal/core/model"
)

// NotificationKind identifies a scheduled desktop notification.
type NotificationKind string

const (
	NotificationWorkEndWarning NotificationKind = "workEndWarning"
	NotificationBreakEnd       NotificationKind = "breakEnd"
)

// Notifier schedules delayed notifications. Scheduling a kind that is
// already pending replaces it.
type Notifier interface {
	Schedule(kind NotificationKind, delay time.Duration)
	Cancel(kind NotificationKind)
	CancelAll()
}

// SoundKind identifies a short audio cue.
type SoundKind string

const (
	SoundBreakStart SoundKind = "break-start"
	SoundBreakEnd   SoundKind = "break-end"
)

// SoundPlayer plays audio cues without blocking.
type SoundPlayer interface {
	Play(kind SoundKind)
}

// Geometry is the size of the host window before a break took it over.
type Geometry struct {
	Width  float32
	Height float32
}

// Window is the host window that turns into the break overlay.
type Window interface {
	Geometry() Geometry
	SetGeometry(geometry Geometry)
	ShowBreak()
	HideBreak()
}

// SnapshotStore persists the flat timer snapshot.
// Load returns an empty snapshot when nothing was stored yet.
type SnapshotStore interface {
	Load() (model.Snapshot, error)
	Save(snapshot model.Snapshot) error
}

// Clock returns the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// TickSource starts a recurring tick and returns a function that cancels it.
// The cancel function must be idempotent.
type TickSource interface {
	Start(interval time.Duration, tick func(time.Time)) (cancel func())
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

type noopNotifier struct{}

func (noopNotifier) Schedule(NotificationKind, time.Duration) {}
func (noopNotifier) Cancel(NotificationKind)                  {}
func (noopNotifier) CancelAll()                               {}

type noopSound struct{}

func (noopSound) Play(SoundKind) {}

type memoryStore struct{}

func (memoryStore) Load() (model.Snapshot, error) { return model.Snapshot{}, nil }
func (memoryStore) Save(model.Snapshot) error     { return nil }

// Package notify schedules delayed desktop notifications.
package notify

import (
	"fmt"
	"sync"
	"time"

	"eyecare/internal/core/timekeeper"

	"fyne.io/fyne/v2"
)

// Sender delivers a notification immediately.
type Sender func(title, content string)

// FyneSender delivers notifications through the fyne app on its main goroutine.
func FyneSender(app fyne.App) Sender {
	return func(title, content string) {
		fyne.Do(func() {
			app.SendNotification(fyne.NewNotification(title, content))
		})
	}
}

// Scheduler keeps at most one pending notification per kind.
type Scheduler struct {
	mu          sync.Mutex
	send        Sender
	enabled     bool
	breakLength time.Duration
	pending     map[timekeeper.NotificationKind]*time.Timer
}

// NewScheduler returns an enabled scheduler.
func NewScheduler(send Sender, breakLength time.Duration) *Scheduler {
	return &Scheduler{
		send:        send,
		enabled:     true,
		breakLength: breakLength,
		pending:     map[timekeeper.NotificationKind]*time.Timer{},
	}
}

// SetEnabled toggles delivery. Disabling drops everything pending.
func (scheduler *Scheduler) SetEnabled(enabled bool) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.enabled = enabled
	if !enabled {
		scheduler.cancelAllLocked()
	}
}

// SetBreakLength updates the duration mentioned in the warning text.
func (scheduler *Scheduler) SetBreakLength(breakLength time.Duration) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.breakLength = breakLength
}

// Schedule delivers kind after delay, replacing a pending one of the same kind.
func (scheduler *Scheduler) Schedule(kind timekeeper.NotificationKind, delay time.Duration) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if !scheduler.enabled || scheduler.send == nil {
		return
	}
	scheduler.cancelLocked(kind)

	title, content := scheduler.contentLocked(kind)
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		scheduler.mu.Lock()
		current, ok := scheduler.pending[kind]
		if !ok || current != timer {
			scheduler.mu.Unlock()
			return
		}
		delete(scheduler.pending, kind)
		send := scheduler.send
		scheduler.mu.Unlock()
		send(title, content)
	})
	scheduler.pending[kind] = timer
}

// Cancel drops a pending notification of kind.
func (scheduler *Scheduler) Cancel(kind timekeeper.NotificationKind) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.cancelLocked(kind)
}

// CancelAll drops every pending notification.
func (scheduler *Scheduler) CancelAll() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.cancelAllLocked()
}

// Pending reports how many notifications are waiting.
func (scheduler *Scheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.pending)
}

func (scheduler *Scheduler) cancelLocked(kind timekeeper.NotificationKind) {
	if timer, ok := scheduler.pending[kind]; ok {
		timer.Stop()
		delete(scheduler.pending, kind)
	}
}

func (scheduler *Scheduler) cancelAllLocked() {
	for kind := range scheduler.pending {
		scheduler.cancelLocked(kind)
	}
}

func (scheduler *Scheduler) contentLocked(kind timekeeper.NotificationKind) (string, string) {
	switch kind {
	case timekeeper.NotificationWorkEndWarning:
		seconds := int(scheduler.breakLength / time.Second)
		return "Time for a Break", fmt.Sprintf("Look away from your screen for %d seconds", seconds)
	case timekeeper.NotificationBreakEnd:
		return "Break Complete", "Time to get back to work!"
	default:
		return "EyeCare", string(kind)
	}
}

package model

import "time"

// Phase selects which countdown is active.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// DefaultBreakLength is the fixed rest length.
const DefaultBreakLength = 20 * time.Second

// TimerState is a read-only view of the controller.
type TimerState struct {
	Phase               Phase
	SelectedDuration    WorkDuration
	TimeRemaining       int
	BreakTimeRemaining  int
	Running             bool
	Paused              bool
	BreakStreak         int
	LastBreakSkipped    bool
	ShowingBreakOverlay bool
	LastUpdate          time.Time
}

// IsBreakTime reports whether the break countdown is active.
func (state TimerState) IsBreakTime() bool {
	return state.Phase == PhaseBreak
}

// ActiveRemaining returns the counter of the current phase.
func (state TimerState) ActiveRemaining() int {
	if state.Phase == PhaseBreak {
		return state.BreakTimeRemaining
	}
	return state.TimeRemaining
}

// Snapshot is the persisted form of TimerState.
// Nil fields were absent from the store and keep their in-memory value.
type Snapshot struct {
	TimeRemaining      *int
	BreakTimeRemaining *int
	IsBreakTime        *bool
	IsRunning          *bool
	SelectedDuration   *int
	BreakStreak        *int
	LastUpdateTime     *time.Time
}

// SnapshotOf captures every persisted field of state.
func SnapshotOf(state TimerState) Snapshot {
	timeRemaining := state.TimeRemaining
	breakRemaining := state.BreakTimeRemaining
	isBreak := state.IsBreakTime()
	running := state.Running
	selected := int(state.SelectedDuration)
	streak := state.BreakStreak
	lastUpdate := state.LastUpdate
	return Snapshot{
		TimeRemaining:      &timeRemaining,
		BreakTimeRemaining: &breakRemaining,
		IsBreakTime:        &isBreak,
		IsRunning:          &running,
		SelectedDuration:   &selected,
		BreakStreak:        &streak,
		LastUpdateTime:     &lastUpdate,
	}
}

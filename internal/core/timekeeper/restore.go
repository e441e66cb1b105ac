package timekeeper

import (
	"fmt"
	"time"

	"eyecare/internal/core/model"
)

// Restore loads the persisted snapshot and resumes a countdown that was
// running when it was written, minus the time spent while the process was
// gone. A countdown that ran out in the meantime is left at zero and not
// resumed; the missed transition is not replayed.
func (keeper *TimeKeeper) Restore() error {
	snapshot, err := keeper.store.Load()
	if err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return nil
	}

	keeper.applySnapshotLocked(snapshot)
	keeper.commitLocked(EventStateChange)
	return nil
}

func (keeper *TimeKeeper) applySnapshotLocked(snapshot model.Snapshot) {
	if snapshot.SelectedDuration != nil {
		if duration, ok := model.ParseWorkDuration(*snapshot.SelectedDuration); ok {
			keeper.selected = duration
			keeper.workRemaining = duration.Seconds()
		}
	}
	if snapshot.TimeRemaining != nil {
		keeper.workRemaining = floorZero(*snapshot.TimeRemaining)
	}
	if snapshot.BreakTimeRemaining != nil {
		keeper.breakRemaining = floorZero(*snapshot.BreakTimeRemaining)
	}
	if snapshot.IsBreakTime != nil {
		keeper.phase = model.PhaseWork
		if *snapshot.IsBreakTime {
			keeper.phase = model.PhaseBreak
		}
	}
	if snapshot.BreakStreak != nil {
		keeper.breakStreak = floorZero(*snapshot.BreakStreak)
	}

	wasRunning := snapshot.IsRunning != nil && *snapshot.IsRunning
	if !wasRunning || snapshot.LastUpdateTime == nil {
		keeper.running = false
		// A stopped countdown that is partway through was paused.
		if keeper.phase == model.PhaseWork && keeper.workRemaining > 0 && keeper.workRemaining < keeper.selected.Seconds() {
			remaining := keeper.workRemaining
			keeper.pausedRemaining = &remaining
		}
		return
	}

	elapsed := int(keeper.clock.Now().Sub(*snapshot.LastUpdateTime) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	if keeper.phase == model.PhaseBreak {
		keeper.breakRemaining = floorZero(keeper.breakRemaining - elapsed)
		if keeper.breakRemaining > 0 {
			keeper.enterBreakLocked(keeper.breakRemaining, false)
			return
		}
	} else {
		keeper.workRemaining = floorZero(keeper.workRemaining - elapsed)
		if keeper.workRemaining > 0 {
			keeper.beginWorkLocked(keeper.workRemaining)
			return
		}
	}
	keeper.running = false
}

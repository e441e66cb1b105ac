package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eyecare/internal/core/model"
	"eyecare/internal/storage"
	"eyecare/internal/ui/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(value int) *int    { return &value }
func boolPtr(value bool) *bool { return &value }

func TestProjectSnapshotCountsDownRunningWork(t *testing.T) {
	updated := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)
	view := projectSnapshot(model.Snapshot{
		TimeRemaining:    intPtr(300),
		IsBreakTime:      boolPtr(false),
		IsRunning:        boolPtr(true),
		SelectedDuration: intPtr(600),
		BreakStreak:      intPtr(4),
		LastUpdateTime:   &updated,
	}, model.DefaultBreakLength, updated.Add(90*time.Second+400*time.Millisecond))

	assert.Equal(t, model.PhaseWork, view.phase)
	assert.True(t, view.running)
	assert.Equal(t, 210, view.remaining)
	assert.Equal(t, model.TenMinutes, view.selected)
	assert.Equal(t, 4, view.streak)
}

func TestProjectSnapshotStopsAtZero(t *testing.T) {
	updated := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)
	view := projectSnapshot(model.Snapshot{
		BreakTimeRemaining: intPtr(12),
		IsBreakTime:        boolPtr(true),
		IsRunning:          boolPtr(true),
		LastUpdateTime:     &updated,
	}, model.DefaultBreakLength, updated.Add(time.Minute))

	assert.Equal(t, model.PhaseBreak, view.phase)
	assert.Equal(t, 0, view.remaining)
	assert.False(t, view.running)
}

func TestProjectSnapshotKeepsPausedValue(t *testing.T) {
	updated := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)
	view := projectSnapshot(model.Snapshot{
		TimeRemaining:  intPtr(500),
		IsRunning:      boolPtr(false),
		LastUpdateTime: &updated,
	}, model.DefaultBreakLength, updated.Add(time.Hour))

	assert.Equal(t, 500, view.remaining)
	assert.Equal(t, model.TwentyMinutes, view.selected)
	assert.Equal(t, "Work (stopped)", phaseLabel(view))
}

func TestProjectSnapshotBreakWithoutCounterUsesBreakLength(t *testing.T) {
	view := projectSnapshot(model.Snapshot{
		IsBreakTime: boolPtr(true),
		IsRunning:   boolPtr(false),
	}, 45*time.Second, time.Now())

	assert.Equal(t, model.PhaseBreak, view.phase)
	assert.Equal(t, 45, view.remaining)

	view = projectSnapshot(model.Snapshot{IsBreakTime: boolPtr(true)}, 0, time.Now())
	assert.Equal(t, int(model.DefaultBreakLength/time.Second), view.remaining)
}

func TestWriteStatus(t *testing.T) {
	var out bytes.Buffer
	writeStatus(&out, statusView{
		found:     true,
		phase:     model.PhaseBreak,
		running:   true,
		remaining: 15,
		selected:  model.TwentyMinutes,
		streak:    2,
	}, model.DailyTotals{Completed: 5, Skipped: 1}, nil, theme.Colors(theme.Ocean))

	text := out.String()
	assert.Contains(t, text, "EyeCare")
	assert.Contains(t, text, "Break")
	assert.Contains(t, text, "0:15")
	assert.Contains(t, text, model.TwentyMinutes.Title())
	assert.Contains(t, text, "5 taken, 1 skipped")
	assert.NotContains(t, text, "Recent")
}

func TestWriteStatusListsRecentBreaks(t *testing.T) {
	var out bytes.Buffer
	at := time.Date(2024, time.March, 4, 10, 30, 0, 0, time.Local)
	writeStatus(&out, statusView{}, model.DailyTotals{}, []model.BreakEntry{
		{At: at, Outcome: model.BreakSkipped, Streak: 0},
		{At: at.Add(-time.Hour), Outcome: model.BreakCompleted, Streak: 3},
	}, theme.Colors(theme.Ocean))

	text := out.String()
	assert.Contains(t, text, "Recent")
	assert.Contains(t, text, "Mar 04 10:30  skipped   streak 0")
	assert.Contains(t, text, "Mar 04 09:30  completed streak 3")
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestStatusCommandWithoutSnapshot(t *testing.T) {
	dir := t.TempDir()
	text := runCommand(t, "status", "--config-dir", dir)

	assert.Contains(t, text, "No saved timer state")
	assert.Contains(t, text, "0 taken, 0 skipped")
}

func TestStatusCommandReadsSnapshotAndJournal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, storage.NewSnapshotFile(dir).Save(model.Snapshot{
		TimeRemaining:    intPtr(5),
		IsBreakTime:      boolPtr(false),
		IsRunning:        boolPtr(false),
		SelectedDuration: intPtr(1800),
		BreakStreak:      intPtr(7),
	}))
	journal, err := storage.OpenJournal(storage.JournalPath(dir))
	require.NoError(t, err)
	require.NoError(t, journal.Record(context.Background(), model.BreakEntry{
		At:      time.Now(),
		Outcome: model.BreakCompleted,
		Streak:  7,
	}))
	require.NoError(t, journal.Close())

	text := runCommand(t, "status", "--config-dir", dir)
	assert.Contains(t, text, "Work (stopped)")
	assert.Contains(t, text, "0:05")
	assert.Contains(t, text, "1 taken, 0 skipped")
	assert.Contains(t, text, "Recent")
	assert.Contains(t, text, "completed streak 7")

	text = runCommand(t, "status", "--config-dir", dir, "--recent", "0")
	assert.NotContains(t, text, "Recent")
}

func TestResetStateRemovesSnapshot(t *testing.T) {
	dir := t.TempDir()
	file := storage.NewSnapshotFile(dir)
	require.NoError(t, file.Save(model.Snapshot{TimeRemaining: intPtr(10)}))

	text := runCommand(t, "reset-state", "--config-dir", dir)
	assert.Contains(t, text, filepath.Join(dir, "state.yaml"))

	_, err := os.Stat(file.Path())
	assert.True(t, os.IsNotExist(err))
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eyecare/internal/core/model"
	"eyecare/internal/ui/preferences"
	"eyecare/internal/ui/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "theme: Nord\nplay_sound: false\noverlay_opacity: 0.2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte(content), 0o644))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, theme.Nord, settings.Theme)
	assert.False(t, settings.PlaySound)
	assert.True(t, settings.ShowNotifications)
	assert.True(t, settings.Fullscreen)
	assert.InDelta(t, 0.85, settings.OverlayOpacity, 1e-9)
	assert.Equal(t, model.DefaultBreakLength, settings.BreakLength)
}

func TestSaveSettingsThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	settings := preferences.DefaultSettings()
	settings.Theme = theme.Mocha
	settings.BreakLength = 30 * time.Second
	settings.MotivationalMessages = false
	settings.LaunchAtLogin = true
	settings.SoundVolume = 0.4

	require.NoError(t, SaveSettings(dir, settings))
	loaded, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestSoundVolumeKeepsMuteAndIgnoresOutOfRange(t *testing.T) {
	dir := t.TempDir()
	settings := preferences.DefaultSettings()
	settings.SoundVolume = 0

	require.NoError(t, SaveSettings(dir, settings))
	loaded, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Zero(t, loaded.SoundVolume)

	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte("sound_volume: 1.5\n"), 0o644))
	loaded, err = LoadSettings(dir)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, loaded.SoundVolume, 1e-9)
}

func TestLoadSettingsRejectsBrokenYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte("theme: [unclosed"), 0o644))

	settings, err := LoadSettings(dir)
	require.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSnapshotMissingFile(t *testing.T) {
	file := NewSnapshotFile(t.TempDir())

	_, err := file.Read()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	snapshot, err := file.Load()
	require.NoError(t, err)
	assert.Nil(t, snapshot.IsRunning)
}

func TestSnapshotSaveAndLoad(t *testing.T) {
	file := NewSnapshotFile(t.TempDir())
	at := time.Date(2025, 4, 12, 10, 30, 0, 0, time.UTC)
	state := model.TimerState{
		Phase:              model.PhaseBreak,
		SelectedDuration:   model.TenMinutes,
		BreakTimeRemaining: 14,
		Running:            true,
		BreakStreak:        5,
		LastUpdate:         at,
	}

	require.NoError(t, file.Save(model.SnapshotOf(state)))
	snapshot, err := file.Load()
	require.NoError(t, err)

	require.NotNil(t, snapshot.LastUpdateTime)
	assert.True(t, at.Equal(*snapshot.LastUpdateTime))
	assert.Equal(t, 14, *snapshot.BreakTimeRemaining)
	assert.Equal(t, 0, *snapshot.TimeRemaining)
	assert.True(t, *snapshot.IsBreakTime)
	assert.True(t, *snapshot.IsRunning)
	assert.Equal(t, 600, *snapshot.SelectedDuration)
	assert.Equal(t, 5, *snapshot.BreakStreak)
}

func TestSnapshotUsesSharedKeyNames(t *testing.T) {
	dir := t.TempDir()
	file := NewSnapshotFile(dir)
	require.NoError(t, file.Save(model.SnapshotOf(model.TimerState{Phase: model.PhaseWork})))

	raw, err := os.ReadFile(filepath.Join(dir, snapshotFileName))
	require.NoError(t, err)
	for _, key := range []string{"timeRemaining", "breakTimeRemaining", "isBreakTime", "isRunning", "selectedDuration", "breakStreak", "lastUpdateTime"} {
		assert.Contains(t, string(raw), key+":")
	}
}

func TestSnapshotAbsentKeysStayNil(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFileName), []byte("breakStreak: 3\n"), 0o644))

	snapshot, err := NewSnapshotFile(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, 3, *snapshot.BreakStreak)
	assert.Nil(t, snapshot.TimeRemaining)
	assert.Nil(t, snapshot.LastUpdateTime)
}

func TestSnapshotCorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFileName), []byte("breakStreak: [oops"), 0o644))

	_, err := NewSnapshotFile(dir).Load()
	assert.Error(t, err)
}

func TestSnapshotRemove(t *testing.T) {
	file := NewSnapshotFile(t.TempDir())
	require.NoError(t, file.Remove())
	require.NoError(t, file.Save(model.SnapshotOf(model.TimerState{})))
	require.NoError(t, file.Remove())

	_, err := file.Read()
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestJournalDailyTotals(t *testing.T) {
	ctx := context.Background()
	journal, err := OpenJournal(JournalPath(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = journal.Close()
	})

	day := time.Date(2025, 4, 12, 0, 0, 0, 0, time.Local)
	entries := []model.BreakEntry{
		{At: day.Add(9 * time.Hour), Outcome: model.BreakCompleted, Streak: 1},
		{At: day.Add(10 * time.Hour), Outcome: model.BreakCompleted, Streak: 2},
		{At: day.Add(11 * time.Hour), Outcome: model.BreakSkipped, Streak: 0},
		{At: day.Add(-time.Hour), Outcome: model.BreakCompleted, Streak: 7},
		{At: day.Add(25 * time.Hour), Outcome: model.BreakSkipped, Streak: 0},
	}
	for _, entry := range entries {
		require.NoError(t, journal.Record(ctx, entry))
	}

	totals, err := journal.DailyTotals(ctx, day.Add(15*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.DailyTotals{Completed: 2, Skipped: 1}, totals)

	recent, err := journal.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, model.BreakSkipped, recent[0].Outcome)
	assert.True(t, recent[0].At.Equal(day.Add(25*time.Hour)))
	assert.Equal(t, 0, recent[1].Streak)
}

func TestJournalReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	path := JournalPath(t.TempDir())

	journal, err := OpenJournal(path)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, journal.Record(ctx, model.BreakEntry{At: now, Outcome: model.BreakCompleted, Streak: 1}))
	require.NoError(t, journal.Close())

	journal, err = OpenJournal(path)
	require.NoError(t, err)
	defer journal.Close()
	totals, err := journal.DailyTotals(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, totals.Completed)
}

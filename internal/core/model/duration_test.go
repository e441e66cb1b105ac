package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWorkDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    WorkDuration
		ok      bool
	}{
		{seconds: 5, want: FiveSeconds, ok: true},
		{seconds: 600, want: TenMinutes, ok: true},
		{seconds: 1200, want: TwentyMinutes, ok: true},
		{seconds: 1800, want: ThirtyMinutes, ok: true},
		{seconds: 0},
		{seconds: 900},
	}
	for _, tt := range tests {
		got, ok := ParseWorkDuration(tt.seconds)
		assert.Equal(t, tt.ok, ok, "seconds=%d", tt.seconds)
		assert.Equal(t, tt.want, got, "seconds=%d", tt.seconds)
	}
}

func TestWorkDurationConversions(t *testing.T) {
	assert.Equal(t, 20*time.Minute, TwentyMinutes.Duration())
	assert.Equal(t, "10 minutes", TenMinutes.Title())
	assert.Equal(t, "5 sec", FiveSeconds.ShortTitle())
	assert.False(t, WorkDuration(7).Valid())
}

func TestSnapshotOfCapturesEveryField(t *testing.T) {
	at := time.Date(2025, 4, 12, 10, 0, 0, 0, time.UTC)
	snapshot := SnapshotOf(TimerState{
		Phase:              PhaseBreak,
		SelectedDuration:   TenMinutes,
		TimeRemaining:      0,
		BreakTimeRemaining: 12,
		Running:            true,
		BreakStreak:        3,
		LastUpdate:         at,
	})

	assert.Equal(t, 0, *snapshot.TimeRemaining)
	assert.Equal(t, 12, *snapshot.BreakTimeRemaining)
	assert.True(t, *snapshot.IsBreakTime)
	assert.True(t, *snapshot.IsRunning)
	assert.Equal(t, 600, *snapshot.SelectedDuration)
	assert.Equal(t, 3, *snapshot.BreakStreak)
	assert.Equal(t, at, *snapshot.LastUpdateTime)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", FormatClock(0))
	assert.Equal(t, "0:05", FormatClock(5))
	assert.Equal(t, "20:00", FormatClock(1200))
	assert.Equal(t, "1:01", FormatClock(61))
	assert.Equal(t, "0:00", FormatClock(-3))
}

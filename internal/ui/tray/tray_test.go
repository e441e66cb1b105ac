package tray

import (
	"testing"

	"eyecare/internal/core/model"
	"eyecare/resources"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApp struct {
	menu  *fyne.Menu
	icons []string
	sets  int
}

func (app *fakeApp) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menu = menu
	app.sets++
}

func (app *fakeApp) SetSystemTrayIcon(icon fyne.Resource) {
	app.icons = append(app.icons, icon.Name())
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.Failf(t, "menu item not found", "label %q", label)
	return nil
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name  string
		state model.TimerState
		want  string
	}{
		{"idle", model.TimerState{Phase: model.PhaseWork, SelectedDuration: model.TenMinutes}, "Ready: 10 min"},
		{"running", model.TimerState{Phase: model.PhaseWork, Running: true, TimeRemaining: 754}, "Next break in 12:34"},
		{"paused", model.TimerState{Phase: model.PhaseWork, Paused: true, TimeRemaining: 90}, "Paused at 1:30"},
		{"break", model.TimerState{Phase: model.PhaseBreak, Running: true, BreakTimeRemaining: 7}, "Break: 0:07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusText(tt.state))
		})
	}
}

func TestIconFollowsPhase(t *testing.T) {
	assert.Equal(t, resources.IconEyePaused, IconName(model.TimerState{Phase: model.PhaseWork}))
	assert.Equal(t, resources.IconEyeOpen, IconName(model.TimerState{Phase: model.PhaseWork, Running: true}))
	assert.Equal(t, resources.IconEyeClosed, IconName(model.TimerState{Phase: model.PhaseBreak, Running: true}))
}

func TestUpdateRefreshesMenu(t *testing.T) {
	app := &fakeApp{}
	manager := New(app, Callbacks{}, Options{ShowStreak: true, Motivational: true})
	require.NotNil(t, app.menu)
	assert.Equal(t, []string{resources.IconEyePaused}, app.icons)

	manager.Update(model.TimerState{
		Phase:            model.PhaseWork,
		SelectedDuration: model.ThirtyMinutes,
		TimeRemaining:    61,
		Running:          true,
		BreakStreak:      2,
	}, "Stay focused!")
	manager.SetTotals(model.DailyTotals{Completed: 3, Skipped: 1})

	assert.Equal(t, "Next break in 1:01", app.menu.Items[0].Label)
	assert.Equal(t, "Stay focused!", app.menu.Items[1].Label)
	assert.Equal(t, "Break streak: 2", app.menu.Items[2].Label)
	assert.Equal(t, "Today: 3 taken, 1 skipped", app.menu.Items[3].Label)
	assert.True(t, findItem(t, app.menu, "Skip break").Disabled)
	assert.Equal(t, []string{resources.IconEyePaused, resources.IconEyeOpen}, app.icons)

	durations := findItem(t, app.menu, "Work duration").ChildMenu
	for _, item := range durations.Items {
		assert.Equal(t, item.Label == model.ThirtyMinutes.Title(), item.Checked, item.Label)
	}
}

func TestBreakEnablesSkipAndHidesMessage(t *testing.T) {
	app := &fakeApp{}
	var skipped int
	manager := New(app, Callbacks{OnSkipBreak: func() { skipped++ }}, Options{Motivational: true})

	manager.Update(model.TimerState{Phase: model.PhaseBreak, Running: true, BreakTimeRemaining: 20}, "Keep going!")

	skip := findItem(t, app.menu, "Skip break")
	assert.False(t, skip.Disabled)
	skip.Action()
	assert.Equal(t, 1, skipped)
	assert.Empty(t, app.menu.Items[1].Label)
	assert.Empty(t, app.menu.Items[2].Label)
	assert.True(t, findItem(t, app.menu, "Pause").Disabled)
}

func TestDurationItemsCallBack(t *testing.T) {
	app := &fakeApp{}
	var selected model.WorkDuration
	New(app, Callbacks{OnSetDuration: func(duration model.WorkDuration) { selected = duration }}, Options{})

	durations := findItem(t, app.menu, "Work duration").ChildMenu
	durations.Items[1].Action()
	assert.Equal(t, model.TenMinutes, selected)
}

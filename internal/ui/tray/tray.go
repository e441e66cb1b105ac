package tray

import (
	"fmt"

	"eyecare/internal/core/model"
	"eyecare/resources"

	"fyne.io/fyne/v2"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnSkipBreak   func()
	OnSetDuration func(model.WorkDuration)
	OnShowTimer   func()
	OnPreferences func()
	OnQuit        func()
}

// Options are the preferences that change what the menu shows.
type Options struct {
	ShowStreak   bool
	Motivational bool
}

// Manager handles system tray state.
type Manager struct {
	app       App
	callbacks Callbacks
	options   Options

	menu          *fyne.Menu
	statusItem    *fyne.MenuItem
	messageItem   *fyne.MenuItem
	streakItem    *fyne.MenuItem
	todayItem     *fyne.MenuItem
	toggleItem    *fyne.MenuItem
	skipItem      *fyne.MenuItem
	durationItems map[model.WorkDuration]*fyne.MenuItem

	state   model.TimerState
	totals  model.DailyTotals
	message string
	icon    string
}

// New creates a tray manager with the provided callbacks.
func New(app App, callbacks Callbacks, options Options) *Manager {
	manager := &Manager{
		app:           app,
		callbacks:     callbacks,
		options:       options,
		durationItems: map[model.WorkDuration]*fyne.MenuItem{},
		state: model.TimerState{
			Phase:            model.PhaseWork,
			SelectedDuration: model.DefaultWorkDuration,
			TimeRemaining:    model.DefaultWorkDuration.Seconds(),
		},
	}

	manager.statusItem = disabledItem("Starting...")
	manager.messageItem = disabledItem("")
	manager.streakItem = disabledItem("")
	manager.todayItem = disabledItem("")

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		call(manager.callbacks.OnToggle)
	})
	reset := fyne.NewMenuItem("Reset", func() {
		call(manager.callbacks.OnReset)
	})
	manager.skipItem = fyne.NewMenuItem("Skip break", func() {
		call(manager.callbacks.OnSkipBreak)
	})
	manager.skipItem.Disabled = true

	durations := fyne.NewMenuItem("Work duration", nil)
	var durationItems []*fyne.MenuItem
	for _, duration := range model.WorkDurations() {
		duration := duration
		item := fyne.NewMenuItem(duration.Title(), func() {
			if manager.callbacks.OnSetDuration != nil {
				manager.callbacks.OnSetDuration(duration)
			}
		})
		manager.durationItems[duration] = item
		durationItems = append(durationItems, item)
	}
	durations.ChildMenu = fyne.NewMenu("", durationItems...)

	showTimer := fyne.NewMenuItem("Show timer", func() {
		call(manager.callbacks.OnShowTimer)
	})
	preferences := fyne.NewMenuItem("Preferences...", func() {
		call(manager.callbacks.OnPreferences)
	})
	quit := fyne.NewMenuItem("Quit", func() {
		call(manager.callbacks.OnQuit)
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu("EyeCare",
		manager.statusItem,
		manager.messageItem,
		manager.streakItem,
		manager.todayItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		reset,
		manager.skipItem,
		durations,
		fyne.NewMenuItemSeparator(),
		showTimer,
		preferences,
		quit,
	)
	manager.refresh()
	return manager
}

// Update renders a timer state into the menu and icon.
func (manager *Manager) Update(state model.TimerState, message string) {
	manager.state = state
	manager.message = message
	manager.refresh()
}

// SetTotals updates today's break counts.
func (manager *Manager) SetTotals(totals model.DailyTotals) {
	manager.totals = totals
	manager.refresh()
}

// SetOptions applies changed preferences.
func (manager *Manager) SetOptions(options Options) {
	manager.options = options
	manager.refresh()
}

func (manager *Manager) refresh() {
	state := manager.state

	manager.statusItem.Label = StatusText(state)
	manager.messageItem.Label = ""
	if manager.options.Motivational && state.Running && !state.IsBreakTime() {
		manager.messageItem.Label = manager.message
	}
	manager.streakItem.Label = ""
	if manager.options.ShowStreak {
		manager.streakItem.Label = fmt.Sprintf("Break streak: %d", state.BreakStreak)
	}
	manager.todayItem.Label = TotalsText(manager.totals)

	manager.toggleItem.Label = ToggleText(state)
	manager.toggleItem.Disabled = state.IsBreakTime()
	manager.skipItem.Disabled = !state.IsBreakTime()
	for duration, item := range manager.durationItems {
		item.Checked = duration == state.SelectedDuration
	}

	if manager.app == nil {
		return
	}
	if icon := IconName(state); icon != manager.icon {
		manager.icon = icon
		manager.app.SetSystemTrayIcon(resources.MustIcon(icon))
	}
	manager.app.SetSystemTrayMenu(manager.menu)
}

// StatusText is the first menu line, the menu-bar label of the timer.
func StatusText(state model.TimerState) string {
	switch {
	case state.IsBreakTime():
		return "Break: " + model.FormatClock(state.BreakTimeRemaining)
	case state.Running:
		return "Next break in " + model.FormatClock(state.TimeRemaining)
	case state.Paused:
		return "Paused at " + model.FormatClock(state.TimeRemaining)
	default:
		return "Ready: " + state.SelectedDuration.ShortTitle()
	}
}

// ToggleText labels the start/pause item.
func ToggleText(state model.TimerState) string {
	switch {
	case state.Running:
		return "Pause"
	case state.Paused:
		return "Resume"
	default:
		return "Start"
	}
}

// TotalsText summarises today's journal.
func TotalsText(totals model.DailyTotals) string {
	return fmt.Sprintf("Today: %d taken, %d skipped", totals.Completed, totals.Skipped)
}

// IconName picks the tray icon for a state.
func IconName(state model.TimerState) string {
	switch {
	case state.IsBreakTime():
		return resources.IconEyeClosed
	case state.Running:
		return resources.IconEyeOpen
	default:
		return resources.IconEyePaused
	}
}

func disabledItem(label string) *fyne.MenuItem {
	item := fyne.NewMenuItem(label, nil)
	item.Disabled = true
	return item
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"time"

	"eyecare/internal/audio"
	"eyecare/internal/core/model"
	"eyecare/internal/core/timekeeper"
	"eyecare/internal/notify"
	"eyecare/internal/platform"
	"eyecare/internal/storage"
	"eyecare/internal/ui/overlay"
	"eyecare/internal/ui/preferences"
	"eyecare/internal/ui/theme"
	"eyecare/internal/ui/tray"
	"eyecare/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const journalTimeout = 2 * time.Second

// session ties the timer to the UI and the journal.
type session struct {
	keeper      *timekeeper.TimeKeeper
	journal     *storage.Journal
	timerWindow *overlay.Window
	trayManager *tray.Manager
	phase       model.Phase
	message     string
}

func runApp(opts *options) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	dir, err := resolveConfigDir(opts)
	if err != nil {
		return err
	}

	settings, err := storage.LoadSettings(dir)
	if err != nil {
		log.Printf("settings: %v", err)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconEyeOpen))
	fyneApp.Settings().SetTheme(theme.New(settings.Theme))

	journal, err := storage.OpenJournal(storage.JournalPath(dir))
	if err != nil {
		log.Printf("journal: %v", err)
		journal = nil
	}

	player := audio.New(filepath.Join(dir, "sounds"))
	if !opts.noSound {
		if err := player.Open(); err != nil {
			log.Printf("sound: %v", err)
		}
	}
	player.SetEnabled(settings.PlaySound && !opts.noSound)
	player.SetVolume(settings.SoundVolume)

	scheduler := notify.NewScheduler(notify.FyneSender(fyneApp), settings.BreakLength)
	scheduler.SetEnabled(settings.ShowNotifications)

	keeper := timekeeper.New(settings.TimerConfig(), timekeeper.Dependencies{
		Store:    storage.NewSnapshotFile(dir),
		Notifier: scheduler,
		Sound:    player,
	})

	timerWindow := overlay.New(fyneApp, overlayConfig(settings))
	timerWindow.SetHandlers(overlay.Handlers{
		Toggle:      keeper.Toggle,
		Reset:       keeper.Reset,
		Skip:        keeper.SkipBreak,
		SetDuration: keeper.SetDuration,
	})
	keeper.SetWindow(timerWindow)

	current := &session{
		keeper:      keeper,
		journal:     journal,
		timerWindow: timerWindow,
		message:     overlay.WorkMessage(time.Now()),
	}

	quit := func() {
		keeper.Close()
		fyneApp.Quit()
	}

	service := platform.NewService()
	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(dir, settings); err != nil {
			log.Printf("settings: %v", err)
		}
		fyneApp.Settings().SetTheme(theme.New(settings.Theme))
		keeper.UpdateConfig(settings.TimerConfig())
		scheduler.SetBreakLength(settings.BreakLength)
		scheduler.SetEnabled(settings.ShowNotifications)
		player.SetEnabled(settings.PlaySound && !opts.noSound)
		player.SetVolume(settings.SoundVolume)
		timerWindow.UpdateConfig(overlayConfig(settings))
		if current.trayManager != nil {
			current.trayManager.SetOptions(trayOptions(settings))
		}
		go syncAutostart(service, settings.LaunchAtLogin)
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		current.trayManager = tray.New(desktopApp, tray.Callbacks{
			OnToggle:      keeper.Toggle,
			OnReset:       keeper.Reset,
			OnSkipBreak:   keeper.SkipBreak,
			OnSetDuration: keeper.SetDuration,
			OnShowTimer:   timerWindow.ShowTimer,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		}, trayOptions(settings))
	} else {
		log.Printf("system tray unsupported on this platform")
		timerWindow.ShowTimer()
	}

	events := keeper.Subscribe(16)
	consumed := make(chan struct{})
	go current.consume(events, consumed)
	go guard.OnActivate(func() {
		fyne.Do(timerWindow.ShowTimer)
	})
	go syncAutostart(service, settings.LaunchAtLogin)

	restoreTimer(keeper)
	current.refreshTotals()

	fyneApp.Run()
	keeper.Close()
	select {
	case <-consumed:
	case <-time.After(journalTimeout):
		log.Printf("journal: event loop did not drain")
	}
	if journal != nil {
		if err := journal.Close(); err != nil {
			log.Printf("journal: %v", err)
		}
	}
	return nil
}

// restoreTimer resumes a countdown that was running when the app last
// exited. Anything else stays idle until the user starts it.
func restoreTimer(keeper *timekeeper.TimeKeeper) {
	if err := keeper.Restore(); err != nil {
		log.Printf("restore: %v", err)
	}
}

// consume closes done once events is closed and fully handled.
func (current *session) consume(events <-chan timekeeper.Event, done chan<- struct{}) {
	defer close(done)
	for event := range events {
		switch event.Type {
		case timekeeper.EventBreakCompleted:
			current.record(event, model.BreakCompleted)
			continue
		case timekeeper.EventBreakSkipped:
			current.record(event, model.BreakSkipped)
			continue
		}
		state := event.State
		fyne.Do(func() {
			current.render(state)
		})
	}
}

// render runs on the UI goroutine.
func (current *session) render(state model.TimerState) {
	if state.Phase != current.phase {
		current.phase = state.Phase
		current.message = overlay.WorkMessage(time.Now())
	}
	current.timerWindow.Update(state)
	if current.trayManager != nil {
		current.trayManager.Update(state, current.message)
	}
}

func (current *session) record(event timekeeper.Event, outcome model.BreakOutcome) {
	if current.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	entry := model.BreakEntry{At: event.At, Outcome: outcome, Streak: event.State.BreakStreak}
	if err := current.journal.Record(ctx, entry); err != nil {
		log.Printf("journal: %v", err)
		return
	}
	current.refreshTotals()
}

func (current *session) refreshTotals() {
	if current.journal == nil || current.trayManager == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	totals, err := current.journal.DailyTotals(ctx, time.Now())
	if err != nil {
		log.Printf("journal: %v", err)
		return
	}
	fyne.Do(func() {
		current.trayManager.SetTotals(totals)
	})
}

func syncAutostart(service platform.Service, enabled bool) {
	if err := platform.SyncAutostart(service, appName, enabled); err != nil {
		log.Printf("autostart: %v", err)
	}
}

func overlayConfig(settings preferences.Settings) overlay.Config {
	return overlay.Config{
		Style:        settings.Theme,
		Opacity:      settings.OverlayOpacity,
		Fullscreen:   settings.Fullscreen,
		Motivational: settings.MotivationalMessages,
		ShowStreak:   settings.ShowBreakStreak,
	}
}

func trayOptions(settings preferences.Settings) tray.Options {
	return tray.Options{
		ShowStreak:   settings.ShowBreakStreak,
		Motivational: settings.MotivationalMessages,
	}
}

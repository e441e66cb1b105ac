package preferences

import (
	"time"

	"eyecare/internal/core/model"
	"eyecare/internal/ui/theme"
)

// Settings defines editable user preferences.
type Settings struct {
	BreakLength time.Duration
	Theme       theme.Style

	PlaySound            bool
	SoundVolume          float64
	ShowNotifications    bool
	MotivationalMessages bool
	ShowBreakStreak      bool

	OverlayOpacity float64
	Fullscreen     bool
	LaunchAtLogin  bool
}

const (
	MinOverlayOpacity = 0.7
	MaxOverlayOpacity = 0.95
)

// DefaultSettings returns default settings for EyeCare.
func DefaultSettings() Settings {
	return Settings{
		BreakLength:          model.DefaultBreakLength,
		Theme:                theme.Minimal,
		PlaySound:            true,
		SoundVolume:          1,
		ShowNotifications:    true,
		MotivationalMessages: true,
		ShowBreakStreak:      true,
		OverlayOpacity:       0.85,
		Fullscreen:           true,
	}
}

// TimerConfig converts settings to the timer controller configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	config := model.DefaultTimerConfig()
	if settings.BreakLength > 0 {
		config.BreakLength = settings.BreakLength
	}
	return config
}

package preferences

import (
	"strconv"
	"time"

	"eyecare/internal/ui/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	themeSelect   *widget.Select
	themeHint     *widget.Label
	breakLength   *widget.Entry
	sound         *widget.Check
	volume        *widget.Slider
	notifications *widget.Check
	motivational  *widget.Check
	streak        *widget.Check
	fullscreen    *widget.Check
	launchAtLogin *widget.Check
	opacity       *widget.Slider
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("EyeCare Settings")

	styles := make([]string, 0, len(theme.Styles()))
	for _, style := range theme.Styles() {
		styles = append(styles, string(style))
	}
	themeHint := widget.NewLabel("")
	themeSelect := widget.NewSelect(styles, func(name string) {
		if style, ok := theme.ParseStyle(name); ok {
			themeHint.SetText(style.Description())
		}
	})

	breakLength := widget.NewEntry()
	breakLength.Validator = func(value string) error {
		if _, ok := parseSeconds(value); !ok {
			return strconv.ErrSyntax
		}
		return nil
	}

	opacity := widget.NewSlider(MinOverlayOpacity, MaxOverlayOpacity)
	opacity.Step = 0.01

	volume := widget.NewSlider(0, 1)
	volume.Step = 0.05

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		themeSelect:   themeSelect,
		themeHint:     themeHint,
		breakLength:   breakLength,
		sound:         widget.NewCheck("Play sounds", nil),
		volume:        volume,
		notifications: widget.NewCheck("Show notifications", nil),
		motivational:  widget.NewCheck("Motivational messages", nil),
		streak:        widget.NewCheck("Show break streak", nil),
		fullscreen:    widget.NewCheck("Fullscreen overlay", nil),
		launchAtLogin: widget.NewCheck("Launch at login", nil),
		opacity:       opacity,
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Theme"), themeSelect),
		themeHint,
		widget.NewLabel("Overlay opacity"),
		opacity,
		prefs.fullscreen,
		widget.NewLabelWithStyle("Breaks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Break length"), breakLength, widget.NewLabel("sec")),
		prefs.sound,
		widget.NewLabel("Sound volume"),
		volume,
		prefs.notifications,
		prefs.motivational,
		prefs.streak,
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.launchAtLogin,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(cancelButton, layout.NewSpacer(), saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(400, 520))
	window.SetCloseIntercept(window.Hide)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.themeSelect.SetSelected(string(settings.Theme))
	prefs.themeHint.SetText(settings.Theme.Description())
	prefs.breakLength.SetText(strconv.Itoa(int(settings.BreakLength / time.Second)))
	prefs.sound.SetChecked(settings.PlaySound)
	prefs.volume.SetValue(clampVolume(settings.SoundVolume))
	prefs.notifications.SetChecked(settings.ShowNotifications)
	prefs.motivational.SetChecked(settings.MotivationalMessages)
	prefs.streak.SetChecked(settings.ShowBreakStreak)
	prefs.fullscreen.SetChecked(settings.Fullscreen)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
	prefs.opacity.SetValue(ClampOpacity(settings.OverlayOpacity))
}

// Settings returns the values currently entered in the window.
func (prefs *Window) Settings() Settings {
	settings := prefs.settings
	if style, ok := theme.ParseStyle(prefs.themeSelect.Selected); ok {
		settings.Theme = style
	}
	if seconds, ok := parseSeconds(prefs.breakLength.Text); ok {
		settings.BreakLength = time.Duration(seconds) * time.Second
	}
	settings.PlaySound = prefs.sound.Checked
	settings.SoundVolume = clampVolume(prefs.volume.Value)
	settings.ShowNotifications = prefs.notifications.Checked
	settings.MotivationalMessages = prefs.motivational.Checked
	settings.ShowBreakStreak = prefs.streak.Checked
	settings.Fullscreen = prefs.fullscreen.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked
	settings.OverlayOpacity = ClampOpacity(prefs.opacity.Value)
	return settings
}

func (prefs *Window) handleSave() {
	prefs.settings = prefs.Settings()
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

// ClampOpacity keeps the overlay opacity inside the supported range.
func ClampOpacity(value float64) float64 {
	if value < MinOverlayOpacity {
		return MinOverlayOpacity
	}
	if value > MaxOverlayOpacity {
		return MaxOverlayOpacity
	}
	return value
}

func clampVolume(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// Breaks are between 5 seconds and 10 minutes.
func parseSeconds(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 5 || parsed > 600 {
		return 0, false
	}
	return parsed, true
}

package overlay

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"eyecare/internal/core/model"
	"eyecare/internal/core/timekeeper"
	"eyecare/internal/ui/animation"
	"eyecare/internal/ui/theme"
	"eyecare/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Style        theme.Style
	Opacity      float64
	Fullscreen   bool
	Motivational bool
	ShowStreak   bool
}

// Handlers are the timer commands the window can issue.
type Handlers struct {
	Toggle      func()
	Reset       func()
	Skip        func()
	SetDuration func(model.WorkDuration)
}

// Window is the timer window. During a break it turns into the break
// overlay and returns to the timer view afterwards.
type Window struct {
	window   fyne.Window
	config   Config
	handlers Handlers
	engine   *animation.Engine

	state       model.TimerState
	workMessage string
	breakNote   string
	inBreak     bool

	// size is the last timer view size seen on the UI goroutine.
	sizeMu sync.Mutex
	size   fyne.Size

	timerView    fyne.CanvasObject
	phaseLabel   *canvas.Text
	timerLabel   *canvas.Text
	messageLabel *canvas.Text
	streakLabel  *canvas.Text
	toggleButton *widget.Button
	durations    *widget.Select

	breakView    fyne.CanvasObject
	background   *canvas.Rectangle
	eye          *canvas.Image
	breakTitle   *canvas.Text
	breakHint    *canvas.Text
	breakTimer   *canvas.Text
	breakMessage *canvas.Text
	breakStreak  *canvas.Text
	skipButton   *widget.Button
}

var _ timekeeper.Window = (*Window)(nil)

const (
	overlayWidthFraction  = float32(0.5)
	overlayHeightFraction = float32(0.5)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
	timerWindowWidth      = float32(300)
	timerWindowHeight     = float32(280)
)

// New creates the timer window. It starts hidden.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("EyeCare")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	overlay := &Window{
		window: window,
		config: config,
		state: model.TimerState{
			Phase:              model.PhaseWork,
			SelectedDuration:   model.DefaultWorkDuration,
			TimeRemaining:      model.DefaultWorkDuration.Seconds(),
			BreakTimeRemaining: int(model.DefaultBreakLength / time.Second),
		},
		workMessage: WorkMessage(time.Now()),
	}
	overlay.timerView = overlay.buildTimerView()
	overlay.breakView = overlay.buildBreakView()
	overlay.engine = animation.New(animation.DefaultConfig(), overlay.setEye)

	window.SetContent(overlay.timerView)
	window.Resize(fyne.NewSize(timerWindowWidth, timerWindowHeight))
	overlay.rememberSize()
	window.SetCloseIntercept(func() {
		if overlay.state.ShowingBreakOverlay {
			return
		}
		window.Hide()
	})
	overlay.bindKeys()
	overlay.UpdateConfig(config)
	return overlay
}

// SetHandlers wires buttons and keyboard shortcuts to timer commands.
func (overlay *Window) SetHandlers(handlers Handlers) {
	overlay.handlers = handlers
}

// ShowTimer brings the timer view to the front.
func (overlay *Window) ShowTimer() {
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Geometry reports the timer view size as of the last redraw. It is safe
// to call from any goroutine.
func (overlay *Window) Geometry() timekeeper.Geometry {
	overlay.sizeMu.Lock()
	defer overlay.sizeMu.Unlock()
	return timekeeper.Geometry{Width: overlay.size.Width, Height: overlay.size.Height}
}

func (overlay *Window) rememberSize() {
	size := overlay.window.Canvas().Size()
	overlay.sizeMu.Lock()
	overlay.size = size
	overlay.sizeMu.Unlock()
}

// SetGeometry restores a size saved by Geometry.
func (overlay *Window) SetGeometry(geometry timekeeper.Geometry) {
	if geometry.Width <= 0 || geometry.Height <= 0 {
		return
	}
	fyne.Do(func() {
		overlay.window.Resize(fyne.NewSize(geometry.Width, geometry.Height))
		if !overlay.inBreak {
			overlay.rememberSize()
		}
	})
}

// ShowBreak switches to the break overlay and starts the blink loop.
func (overlay *Window) ShowBreak() {
	fyne.Do(func() {
		overlay.stopEngine()
		if !overlay.inBreak {
			overlay.rememberSize()
		}
		overlay.inBreak = true
		overlay.breakNote = BreakMessage(time.Now())
		overlay.window.SetContent(overlay.breakView)
		overlay.applyWindowMode()
		overlay.refresh()
		overlay.window.Show()
		overlay.window.RequestFocus()
		overlay.engine.Start(context.Background(), animation.Frames{
			Open:   resources.MustIcon(resources.IconEyeOpen),
			Closed: resources.MustIcon(resources.IconEyeClosed),
		})
	})
}

// HideBreak returns to the timer view.
func (overlay *Window) HideBreak() {
	fyne.Do(func() {
		overlay.stopEngine()
		overlay.inBreak = false
		overlay.window.SetFullScreen(false)
		overlay.window.SetContent(overlay.timerView)
		overlay.workMessage = WorkMessage(time.Now())
		overlay.refresh()
	})
}

// Update redraws both views from a timer state. Call it on the UI goroutine.
func (overlay *Window) Update(state model.TimerState) {
	if state.Phase != overlay.state.Phase {
		overlay.workMessage = WorkMessage(time.Now())
	}
	overlay.state = state
	if !overlay.inBreak {
		overlay.rememberSize()
	}
	overlay.refresh()
}

// UpdateConfig applies new visuals. Call it on the UI goroutine.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	palette := theme.Colors(config.Style)

	background := palette.Background
	background.A = opacityAlpha(config.Opacity)
	overlay.background.FillColor = background

	for _, text := range []*canvas.Text{overlay.breakTitle, overlay.breakTimer, overlay.phaseLabel} {
		text.Color = palette.Foreground
	}
	for _, text := range []*canvas.Text{overlay.breakHint, overlay.messageLabel, overlay.breakMessage} {
		text.Color = palette.Muted
	}
	overlay.timerLabel.Color = palette.Accent
	overlay.streakLabel.Color = palette.Warning
	overlay.breakStreak.Color = palette.Warning

	canvas.Refresh(overlay.background)
	if overlay.state.ShowingBreakOverlay {
		overlay.applyWindowMode()
	}
	overlay.refresh()
}

func (overlay *Window) buildTimerView() fyne.CanvasObject {
	overlay.phaseLabel = newText("Focus Time", 14, true)
	overlay.timerLabel = newText("--:--", 48, true)
	overlay.timerLabel.TextStyle.Monospace = true
	overlay.messageLabel = newText("", 13, false)
	overlay.streakLabel = newText("", 13, true)

	overlay.toggleButton = widget.NewButton("Start", func() {
		call(overlay.handlers.Toggle)
	})
	overlay.toggleButton.Importance = widget.HighImportance
	resetButton := widget.NewButton("Reset", func() {
		call(overlay.handlers.Reset)
	})

	titles := make([]string, 0, len(model.WorkDurations()))
	for _, duration := range model.WorkDurations() {
		titles = append(titles, duration.Title())
	}
	overlay.durations = widget.NewSelect(titles, func(title string) {
		duration, ok := durationByTitle(title)
		if !ok || duration == overlay.state.SelectedDuration {
			return
		}
		if overlay.handlers.SetDuration != nil {
			overlay.handlers.SetDuration(duration)
		}
	})

	return container.NewCenter(container.NewVBox(
		container.NewCenter(overlay.phaseLabel),
		container.NewCenter(overlay.timerLabel),
		container.NewCenter(overlay.messageLabel),
		container.NewCenter(overlay.streakLabel),
		container.NewGridWithColumns(2, overlay.toggleButton, resetButton),
		overlay.durations,
	))
}

func (overlay *Window) buildBreakView() fyne.CanvasObject {
	overlay.background = canvas.NewRectangle(color.NRGBA{A: 255})

	overlay.eye = canvas.NewImageFromResource(resources.MustIcon(resources.IconEyeOpen))
	overlay.eye.FillMode = canvas.ImageFillContain
	overlay.eye.SetMinSize(fyne.NewSize(96, 96))

	overlay.breakTitle = newText("Eye Break Time!", 32, true)
	overlay.breakHint = newText("Look at something 20 feet away", 18, false)
	overlay.breakTimer = newText("0:20", 64, true)
	overlay.breakTimer.TextStyle.Monospace = true
	overlay.breakMessage = newText("", 16, false)
	overlay.breakStreak = newText("", 15, true)

	overlay.skipButton = widget.NewButton("Skip Break", func() {
		call(overlay.handlers.Skip)
	})

	content := container.NewCenter(container.NewVBox(
		container.NewCenter(overlay.eye),
		container.NewCenter(overlay.breakTitle),
		container.NewCenter(overlay.breakHint),
		container.NewCenter(overlay.breakTimer),
		container.NewCenter(overlay.breakMessage),
		container.NewCenter(overlay.breakStreak),
		container.NewCenter(overlay.skipButton),
	))
	return container.NewStack(overlay.background, content)
}

func (overlay *Window) bindKeys() {
	windowCanvas := overlay.window.Canvas()
	windowCanvas.SetOnTypedKey(func(event *fyne.KeyEvent) {
		switch event.Name {
		case fyne.KeySpace:
			call(overlay.handlers.Toggle)
		case fyne.KeyEscape:
			call(overlay.handlers.Skip)
		}
	})
	windowCanvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyR,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) {
		call(overlay.handlers.Reset)
	})
}

func (overlay *Window) refresh() {
	state := overlay.state

	overlay.phaseLabel.Text = phaseTitle(state)
	overlay.timerLabel.Text = model.FormatClock(state.ActiveRemaining())
	overlay.toggleButton.SetText(toggleTitle(state))
	if state.IsBreakTime() {
		overlay.toggleButton.Disable()
	} else {
		overlay.toggleButton.Enable()
	}
	overlay.durations.SetSelected(state.SelectedDuration.Title())

	overlay.messageLabel.Text = ""
	if overlay.config.Motivational && state.Running && !state.IsBreakTime() {
		overlay.messageLabel.Text = overlay.workMessage
	}
	overlay.breakMessage.Text = ""
	if overlay.config.Motivational {
		overlay.breakMessage.Text = overlay.breakNote
	}

	streak := ""
	if overlay.config.ShowStreak && state.BreakStreak > 0 {
		streak = StreakText(state.BreakStreak)
	}
	overlay.streakLabel.Text = streak
	overlay.breakStreak.Text = streak
	overlay.breakTimer.Text = model.FormatClock(state.BreakTimeRemaining)

	for _, text := range []*canvas.Text{
		overlay.phaseLabel, overlay.timerLabel, overlay.messageLabel, overlay.streakLabel,
		overlay.breakTitle, overlay.breakHint, overlay.breakTimer, overlay.breakMessage, overlay.breakStreak,
	} {
		text.Refresh()
	}
}

func (overlay *Window) setEye(resource fyne.Resource) {
	fyne.Do(func() {
		overlay.eye.Resource = resource
		overlay.eye.Refresh()
	})
}

func (overlay *Window) stopEngine() {
	overlay.engine.Stop()
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.breakView.MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

// StreakText is the streak line shown under the timers.
func StreakText(streak int) string {
	if streak == 1 {
		return "1 break in a row"
	}
	return fmt.Sprintf("%d breaks in a row", streak)
}

func phaseTitle(state model.TimerState) string {
	switch {
	case state.IsBreakTime():
		return "Break Time"
	case state.Paused:
		return "Paused"
	case state.Running:
		return "Focus Time"
	default:
		return "Ready"
	}
}

func toggleTitle(state model.TimerState) string {
	switch {
	case state.Running:
		return "Pause"
	case state.Paused:
		return "Resume"
	default:
		return "Start"
	}
}

func durationByTitle(title string) (model.WorkDuration, bool) {
	for _, duration := range model.WorkDurations() {
		if duration.Title() == title {
			return duration, true
		}
	}
	return 0, false
}

func opacityAlpha(opacity float64) uint8 {
	if opacity <= 0 || opacity > 1 {
		return 255
	}
	return uint8(opacity*255 + 0.5)
}

func newText(value string, size float32, bold bool) *canvas.Text {
	text := canvas.NewText(value, color.White)
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = size
	text.TextStyle = fyne.TextStyle{Bold: bold}
	return text
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

package timekeeper

import (
	"log"
	"sync"
	"time"

	"eyecare/internal/core/model"
)

// Dependencies are the collaborators driven by TimeKeeper.
// Nil fields fall back to silent defaults.
type Dependencies struct {
	Clock        Clock
	Ticks        TickSource
	TickInterval time.Duration
	Store        SnapshotStore
	Notifier     Notifier
	Sound        SoundPlayer
}

// TimeKeeper is the work/break state machine.
type TimeKeeper struct {
	mu       sync.Mutex
	config   model.TimerConfig
	clock    Clock
	ticks    TickSource
	interval time.Duration
	store    SnapshotStore
	notifier Notifier
	sound    SoundPlayer
	window   Window

	phase            model.Phase
	selected         model.WorkDuration
	workRemaining    int
	breakRemaining   int
	running          bool
	pausedRemaining  *int
	breakStreak      int
	lastBreakSkipped bool
	showingOverlay   bool
	savedGeometry    *Geometry
	lastTick         time.Time

	generation uint64
	cancelTick func()
	events     []chan Event
	closed     bool
}

// New creates an idle TimeKeeper on the default work duration.
func New(config model.TimerConfig, deps Dependencies) *TimeKeeper {
	defaults := model.DefaultTimerConfig()
	if config.BreakLength <= 0 {
		config.BreakLength = defaults.BreakLength
	}
	if config.WarningLead <= 0 {
		config.WarningLead = defaults.WarningLead
	}
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}
	if deps.Ticks == nil {
		deps.Ticks = NewTickerSource()
	}
	if deps.TickInterval <= 0 {
		deps.TickInterval = time.Second
	}
	if deps.Store == nil {
		deps.Store = memoryStore{}
	}
	if deps.Notifier == nil {
		deps.Notifier = noopNotifier{}
	}
	if deps.Sound == nil {
		deps.Sound = noopSound{}
	}

	keeper := &TimeKeeper{
		config:   config,
		clock:    deps.Clock,
		ticks:    deps.Ticks,
		interval: deps.TickInterval,
		store:    deps.Store,
		notifier: deps.Notifier,
		sound:    deps.Sound,
		phase:    model.PhaseWork,
		selected: model.DefaultWorkDuration,
	}
	keeper.workRemaining = keeper.selected.Seconds()
	keeper.breakRemaining = keeper.breakLengthSeconds()
	keeper.lastTick = keeper.clock.Now()
	return keeper
}

// SetWindow injects the host window used for the break overlay.
func (keeper *TimeKeeper) SetWindow(window Window) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.window = window
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// State returns the current timer state.
func (keeper *TimeKeeper) State() model.TimerState {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.stateLocked()
}

// Start begins the work countdown, continuing a paused one if present.
// It does nothing while the timer is already running.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || keeper.running {
		return
	}

	remaining := keeper.selected.Seconds()
	if keeper.pausedRemaining != nil {
		remaining = *keeper.pausedRemaining
		keeper.pausedRemaining = nil
	}
	if keeper.showingOverlay {
		keeper.hideOverlayLocked()
	}
	keeper.beginWorkLocked(remaining)
	keeper.commitLocked(EventStateChange)
}

// Resume continues a paused countdown.
func (keeper *TimeKeeper) Resume() {
	keeper.Start()
}

// Pause freezes the work countdown. Breaks cannot be paused.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || !keeper.running || keeper.phase != model.PhaseWork {
		return
	}

	keeper.stopTickLocked()
	remaining := keeper.workRemaining
	keeper.pausedRemaining = &remaining
	keeper.running = false
	keeper.notifier.Cancel(NotificationWorkEndWarning)
	keeper.commitLocked(EventStateChange)
}

// Toggle pauses a running work countdown or resumes a stopped one.
func (keeper *TimeKeeper) Toggle() {
	state := keeper.State()
	switch {
	case state.Running && state.Phase == model.PhaseWork:
		keeper.Pause()
	case !state.Running:
		keeper.Resume()
	}
}

// Reset restarts the work countdown from the selected duration.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	keeper.resetLocked()
	keeper.commitLocked(EventStateChange)
}

// SetDuration selects a new work duration. Outside of a break the work
// countdown restarts with it; during a break it applies once the break ends.
func (keeper *TimeKeeper) SetDuration(duration model.WorkDuration) {
	if !duration.Valid() {
		return
	}

	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	keeper.selected = duration
	if keeper.running && keeper.phase == model.PhaseBreak {
		keeper.commitLocked(EventStateChange)
		return
	}
	keeper.resetLocked()
	keeper.commitLocked(EventStateChange)
}

// UpdateConfig applies new timing values. A break in progress keeps its
// current length; the next one uses the new value.
func (keeper *TimeKeeper) UpdateConfig(config model.TimerConfig) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	if config.BreakLength > 0 {
		keeper.config.BreakLength = config.BreakLength
	}
	if config.WarningLead > 0 {
		keeper.config.WarningLead = config.WarningLead
	}
	if keeper.phase == model.PhaseBreak {
		return
	}
	keeper.breakRemaining = keeper.breakLengthSeconds()
	keeper.commitLocked(EventStateChange)
}

// SkipBreak ends the current break early and resets the streak.
func (keeper *TimeKeeper) SkipBreak() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || !keeper.running || keeper.phase != model.PhaseBreak {
		return
	}

	keeper.lastBreakSkipped = true
	keeper.breakStreak = 0
	keeper.emitLocked(EventBreakSkipped)
	keeper.endBreakLocked()
	keeper.commitLocked(EventStateChange)
}

// Close stops ticking, writes the final snapshot and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.stopTickLocked()
	keeper.notifier.CancelAll()
	keeper.saveLocked()
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) tick(generation uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || !keeper.running || generation != keeper.generation {
		return
	}

	now := keeper.clock.Now()
	gap := now.Sub(keeper.lastTick)
	if gap < 0 {
		keeper.lastTick = now
		return
	}
	elapsed := int(gap / time.Second)
	if elapsed == 0 {
		return
	}
	// Only whole seconds are consumed so the remainder counts toward the next tick.
	keeper.lastTick = keeper.lastTick.Add(time.Duration(elapsed) * time.Second)

	if keeper.phase == model.PhaseWork {
		keeper.workRemaining = floorZero(keeper.workRemaining - elapsed)
		if keeper.workRemaining > 0 {
			keeper.commitLocked(EventProgress)
			return
		}
		keeper.stopTickLocked()
		keeper.enterBreakLocked(keeper.breakLengthSeconds(), true)
		keeper.commitLocked(EventStateChange)
		return
	}

	keeper.breakRemaining = floorZero(keeper.breakRemaining - elapsed)
	if keeper.breakRemaining > 0 {
		keeper.commitLocked(EventProgress)
		return
	}
	keeper.stopTickLocked()
	keeper.breakStreak++
	keeper.lastBreakSkipped = false
	keeper.emitLocked(EventBreakCompleted)
	keeper.endBreakLocked()
	keeper.commitLocked(EventStateChange)
}

func (keeper *TimeKeeper) resetLocked() {
	keeper.pausedRemaining = nil
	if keeper.phase == model.PhaseBreak || keeper.showingOverlay {
		keeper.stopTickLocked()
		keeper.notifier.CancelAll()
		keeper.hideOverlayLocked()
	}
	keeper.beginWorkLocked(keeper.selected.Seconds())
}

func (keeper *TimeKeeper) beginWorkLocked(remaining int) {
	keeper.phase = model.PhaseWork
	keeper.workRemaining = floorZero(remaining)
	keeper.running = true

	keeper.notifier.Cancel(NotificationWorkEndWarning)
	lead := int(keeper.config.WarningLead / time.Second)
	if keeper.workRemaining > lead {
		delay := time.Duration(keeper.workRemaining-lead) * time.Second
		keeper.notifier.Schedule(NotificationWorkEndWarning, delay)
	}
	keeper.startTickLocked()
}

func (keeper *TimeKeeper) enterBreakLocked(remaining int, announce bool) {
	keeper.phase = model.PhaseBreak
	keeper.breakRemaining = floorZero(remaining)
	keeper.running = true
	if announce {
		keeper.sound.Play(SoundBreakStart)
	}
	keeper.showOverlayLocked()

	keeper.notifier.CancelAll()
	keeper.notifier.Schedule(NotificationBreakEnd, time.Duration(keeper.breakRemaining)*time.Second)
	keeper.startTickLocked()
}

func (keeper *TimeKeeper) endBreakLocked() {
	keeper.stopTickLocked()
	keeper.hideOverlayLocked()
	keeper.phase = model.PhaseWork
	keeper.pausedRemaining = nil
	keeper.workRemaining = keeper.selected.Seconds()
	keeper.sound.Play(SoundBreakEnd)
	keeper.beginWorkLocked(keeper.selected.Seconds())
}

func (keeper *TimeKeeper) showOverlayLocked() {
	keeper.showingOverlay = true
	if keeper.window == nil {
		return
	}
	geometry := keeper.window.Geometry()
	keeper.savedGeometry = &geometry
	keeper.window.ShowBreak()
}

func (keeper *TimeKeeper) hideOverlayLocked() {
	keeper.showingOverlay = false
	if keeper.window == nil {
		return
	}
	keeper.window.HideBreak()
	if keeper.savedGeometry != nil {
		keeper.window.SetGeometry(*keeper.savedGeometry)
		keeper.savedGeometry = nil
	}
}

func (keeper *TimeKeeper) startTickLocked() {
	keeper.stopTickLocked()
	keeper.generation++
	generation := keeper.generation
	keeper.lastTick = keeper.clock.Now()
	keeper.cancelTick = keeper.ticks.Start(keeper.interval, func(time.Time) {
		keeper.tick(generation)
	})
}

func (keeper *TimeKeeper) stopTickLocked() {
	if keeper.cancelTick != nil {
		keeper.cancelTick()
		keeper.cancelTick = nil
	}
	keeper.generation++
}

// commitLocked is the post-command hook: persist, then notify observers.
func (keeper *TimeKeeper) commitLocked(eventType EventType) {
	keeper.saveLocked()
	keeper.emitLocked(eventType)
}

func (keeper *TimeKeeper) saveLocked() {
	if err := keeper.store.Save(model.SnapshotOf(keeper.stateLocked())); err != nil {
		log.Printf("snapshot: %v", err)
	}
}

func (keeper *TimeKeeper) emitLocked(eventType EventType) {
	event := Event{
		Type:  eventType,
		State: keeper.stateLocked(),
		At:    keeper.clock.Now(),
	}
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (keeper *TimeKeeper) stateLocked() model.TimerState {
	return model.TimerState{
		Phase:               keeper.phase,
		SelectedDuration:    keeper.selected,
		TimeRemaining:       keeper.workRemaining,
		BreakTimeRemaining:  keeper.breakRemaining,
		Running:             keeper.running,
		Paused:              !keeper.running && keeper.pausedRemaining != nil,
		BreakStreak:         keeper.breakStreak,
		LastBreakSkipped:    keeper.lastBreakSkipped,
		ShowingBreakOverlay: keeper.showingOverlay,
		LastUpdate:          keeper.lastTick,
	}
}

func (keeper *TimeKeeper) breakLengthSeconds() int {
	return int(keeper.config.BreakLength / time.Second)
}

func floorZero(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains blink timing values.
type Config struct {
	ClosedDuration    Range
	OpenDuration      Range
	Interval          Range
	DoubleBlinkChance float64
	DoubleBlinkGap    Range
}

// Frames are the two icons the blink alternates between.
type Frames struct {
	Open   fyne.Resource
	Closed fyne.Resource
}

// Engine blinks the overlay eye while a break is on screen.
type Engine struct {
	mu     sync.Mutex
	config Config
	update func(fyne.Resource)
	cancel context.CancelFunc
	rng    *rand.Rand
}

// New creates a blink engine that reports frames through update.
func New(config Config, update func(fyne.Resource)) *Engine {
	return &Engine{
		config: config,
		update: update,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start runs the blink loop until ctx is done or Stop is called.
// Starting again replaces the running loop.
func (engine *Engine) Start(ctx context.Context, frames Frames) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.mu.Unlock()

	go engine.run(runCtx, frames)
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) run(ctx context.Context, frames Frames) {
	engine.update(frames.Open)
	for {
		if !sleepWithContext(ctx, engine.sample(engine.config.Interval)) {
			return
		}
		if !engine.blink(ctx, frames) {
			return
		}
		if engine.chance() <= engine.config.DoubleBlinkChance {
			if !sleepWithContext(ctx, engine.sample(engine.config.DoubleBlinkGap)) {
				return
			}
			if !engine.blink(ctx, frames) {
				return
			}
		}
	}
}

func (engine *Engine) blink(ctx context.Context, frames Frames) bool {
	if ctx.Err() != nil {
		return false
	}
	engine.update(frames.Closed)
	if !sleepWithContext(ctx, engine.sample(engine.config.ClosedDuration)) {
		return false
	}
	engine.update(frames.Open)
	return sleepWithContext(ctx, engine.sample(engine.config.OpenDuration))
}

// rand.Rand is not safe for concurrent use.
func (engine *Engine) sample(value Range) time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return value.Random(engine.rng)
}

func (engine *Engine) chance() float64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.rng.Float64()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeRandomStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	value := Range{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	for i := 0; i < 100; i++ {
		got := value.Random(rng)
		assert.GreaterOrEqual(t, got, value.Min)
		assert.Less(t, got, value.Max)
	}

	fixed := Range{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, fixed.Random(rng))
}

type frameRecorder struct {
	mu     sync.Mutex
	frames []fyne.Resource
}

func (recorder *frameRecorder) update(resource fyne.Resource) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.frames = append(recorder.frames, resource)
}

func (recorder *frameRecorder) count() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return len(recorder.frames)
}

func TestEngineBlinksUntilStopped(t *testing.T) {
	open := fyne.NewStaticResource("open", nil)
	closed := fyne.NewStaticResource("closed", nil)
	fast := Range{Min: time.Millisecond, Max: 2 * time.Millisecond}
	recorder := &frameRecorder{}
	engine := New(Config{
		ClosedDuration: fast,
		OpenDuration:   fast,
		Interval:       fast,
		DoubleBlinkGap: fast,
	}, recorder.update)

	engine.Start(context.Background(), Frames{Open: open, Closed: closed})
	require.Eventually(t, func() bool {
		return recorder.count() >= 5
	}, time.Second, time.Millisecond)
	engine.Stop()

	recorder.mu.Lock()
	frames := append([]fyne.Resource(nil), recorder.frames...)
	recorder.mu.Unlock()
	assert.Equal(t, open, frames[0])
	assert.Equal(t, closed, frames[1])
	assert.Equal(t, open, frames[2])

	time.Sleep(20 * time.Millisecond)
	settled := recorder.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, recorder.count())
}

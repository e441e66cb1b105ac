// Package audio plays the short break cues.
package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"eyecare/internal/core/timekeeper"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// SampleRate is the speaker rate every cue is resampled to.
const SampleRate beep.SampleRate = 44100

var cueFormat = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Player keeps every cue decoded in memory.
type Player struct {
	mu      sync.Mutex
	enabled bool
	volume  float64
	silent  bool
	buffers map[timekeeper.SoundKind]*beep.Buffer
	output  func(beep.Streamer)
}

// New loads <kind>.wav cues from dir, synthesizing a chime for any file that
// is missing or unreadable. Sound goes nowhere until Open succeeds.
func New(dir string) *Player {
	player := &Player{
		enabled: true,
		buffers: map[timekeeper.SoundKind]*beep.Buffer{},
	}
	for _, kind := range []timekeeper.SoundKind{timekeeper.SoundBreakStart, timekeeper.SoundBreakEnd} {
		buffer, err := loadCue(filepath.Join(dir, string(kind)+".wav"))
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Printf("sound %s: %v", kind, err)
			}
			buffer = chime(kind)
		}
		player.buffers[kind] = buffer
	}
	return player
}

// Open initializes the speaker.
func (player *Player) Open() error {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	player.mu.Lock()
	player.output = func(streamer beep.Streamer) {
		speaker.Play(streamer)
	}
	player.mu.Unlock()
	return nil
}

// SetEnabled toggles playback.
func (player *Player) SetEnabled(enabled bool) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.enabled = enabled
}

// SetVolume sets a linear level where 1 plays cues unchanged and 0 mutes
// them. Levels above 1 are clamped.
func (player *Player) SetVolume(level float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.volume, player.silent = gain(level)
}

// gain maps a linear level onto beep's base-2 volume.
func gain(level float64) (volume float64, silent bool) {
	if level <= 0 || math.IsNaN(level) {
		return 0, true
	}
	if level > 1 {
		level = 1
	}
	return math.Log2(level), false
}

// Play starts kind without waiting for it to finish. Without a speaker it
// rings the terminal bell instead.
func (player *Player) Play(kind timekeeper.SoundKind) {
	player.mu.Lock()
	enabled := player.enabled
	output := player.output
	buffer := player.buffers[kind]
	volume := player.volume
	silent := player.silent
	player.mu.Unlock()

	if !enabled {
		return
	}
	if output == nil || buffer == nil {
		fmt.Fprint(os.Stdout, "\a")
		return
	}
	output(&effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   volume,
		Silent:   silent,
	})
}

func loadCue(path string) (*beep.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	streamer, format, err := wav.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(cueFormat)
	if format.SampleRate == SampleRate {
		buffer.Append(streamer)
	} else {
		buffer.Append(beep.Resample(4, format.SampleRate, SampleRate, streamer))
	}
	return buffer, nil
}

// chime builds a two-note cue: rising for a break start, falling for its end.
func chime(kind timekeeper.SoundKind) *beep.Buffer {
	first, second := 660.0, 880.0
	if kind == timekeeper.SoundBreakEnd {
		first, second = second, first
	}
	note := 180 * time.Millisecond

	buffer := beep.NewBuffer(cueFormat)
	buffer.Append(beep.Seq(tone(first, note), tone(second, note)))
	return buffer
}

// tone is a sine wave with a linear fade out to avoid clicks.
func tone(frequency float64, length time.Duration) beep.Streamer {
	total := SampleRate.N(length)
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if position >= total {
				break
			}
			envelope := 0.4 * (1 - float64(position)/float64(total))
			value := envelope * math.Sin(2*math.Pi*frequency*float64(position)/float64(SampleRate))
			samples[i][0] = value
			samples[i][1] = value
			position++
			n++
		}
		return n, true
	})
}

package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eyecare/internal/core/timekeeper"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(streamer beep.Streamer) int {
	samples := make([][2]float64, 512)
	total := 0
	for {
		n, ok := streamer.Stream(samples)
		total += n
		if !ok {
			return total
		}
	}
}

func TestChimeLength(t *testing.T) {
	buffer := chime(timekeeper.SoundBreakStart)
	assert.Equal(t, 2*SampleRate.N(180*time.Millisecond), buffer.Len())
}

func TestPlayUsesOutput(t *testing.T) {
	player := New(t.TempDir())
	var played []beep.Streamer
	player.output = func(streamer beep.Streamer) {
		played = append(played, streamer)
	}

	player.Play(timekeeper.SoundBreakStart)
	require.Len(t, played, 1)
	assert.Equal(t, 2*SampleRate.N(180*time.Millisecond), drain(played[0]))

	player.SetEnabled(false)
	player.Play(timekeeper.SoundBreakEnd)
	assert.Len(t, played, 1)
}

func TestGain(t *testing.T) {
	volume, silent := gain(1)
	assert.False(t, silent)
	assert.Zero(t, volume)

	volume, silent = gain(0.5)
	assert.False(t, silent)
	assert.InDelta(t, -1, volume, 1e-9)

	volume, silent = gain(3)
	assert.False(t, silent)
	assert.Zero(t, volume)

	_, silent = gain(0)
	assert.True(t, silent)
	_, silent = gain(-0.2)
	assert.True(t, silent)
}

func TestSetVolumeScalesPlayback(t *testing.T) {
	player := New(t.TempDir())
	var played []beep.Streamer
	player.output = func(streamer beep.Streamer) {
		played = append(played, streamer)
	}
	peak := func(streamer beep.Streamer) float64 {
		samples := make([][2]float64, 512)
		loudest := 0.0
		for {
			n, ok := streamer.Stream(samples)
			for _, sample := range samples[:n] {
				loudest = math.Max(loudest, math.Abs(sample[0]))
			}
			if !ok {
				return loudest
			}
		}
	}

	player.Play(timekeeper.SoundBreakStart)
	player.SetVolume(0.5)
	player.Play(timekeeper.SoundBreakStart)
	player.SetVolume(0)
	player.Play(timekeeper.SoundBreakStart)
	require.Len(t, played, 3)

	full := peak(played[0])
	require.Greater(t, full, 0.0)
	assert.InDelta(t, full/2, peak(played[1]), 1e-9)
	assert.Zero(t, peak(played[2]))
}

func TestNewLoadsCustomWav(t *testing.T) {
	dir := t.TempDir()
	file, err := os.Create(filepath.Join(dir, string(timekeeper.SoundBreakEnd)+".wav"))
	require.NoError(t, err)
	require.NoError(t, wav.Encode(file, tone(440, 50*time.Millisecond), cueFormat))
	require.NoError(t, file.Close())

	player := New(dir)
	assert.Equal(t, SampleRate.N(50*time.Millisecond), player.buffers[timekeeper.SoundBreakEnd].Len())
	assert.Equal(t, chime(timekeeper.SoundBreakStart).Len(), player.buffers[timekeeper.SoundBreakStart].Len())
}

func TestNewFallsBackOnBrokenWav(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, string(timekeeper.SoundBreakStart)+".wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav"), 0o644))

	player := New(dir)
	assert.Equal(t, chime(timekeeper.SoundBreakStart).Len(), player.buffers[timekeeper.SoundBreakStart].Len())
}

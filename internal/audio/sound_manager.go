// Package audio plays synthesized arcade sound effects through the system speaker.
// Every operation is a no-op until Initialize succeeds, so games run silently
// on machines without an audio device.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDuration = 100 * time.Millisecond
	chompDuration         = 60 * time.Millisecond
	powerDuration         = 400 * time.Millisecond
	enemyDuration         = 250 * time.Millisecond
	shotDuration          = 120 * time.Millisecond
	bounceDuration        = 40 * time.Millisecond
	pointDuration         = 300 * time.Millisecond
	deathDuration         = 900 * time.Millisecond
	clearedDuration       = 800 * time.Millisecond
)

// SoundManager mixes one-shot effects and a background music loop.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
	muted       bool
}

// NewSoundManager creates a sound manager. Call Initialize before expecting sound.
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. It is safe to call more than once.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything. The speaker itself stays open for reuse.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.music != nil {
		release(sm.music)
		sm.music = nil
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// SetMuted turns all output on or off. Muting also stops the music loop.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()

	if muted {
		sm.StopMusic()
	}
}

// Muted reports whether output is muted.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

func (sm *SoundManager) active() bool {
	return sm.initialized && !sm.muted
}

// Play triggers the effect for a gameplay event. Unknown events are ignored.
func (sm *SoundManager) Play(e core.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.active() {
		return
	}

	s := effectFor(e)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayAll triggers the effect for every event of one frame.
func (sm *SoundManager) PlayAll(events []core.Event) {
	for _, e := range events {
		sm.Play(e)
	}
}

// effectFor builds a bounded streamer for the event.
func effectFor(e core.Event) beep.Streamer {
	switch e {
	case core.EventPellet:
		return beep.Take(sampleRate.N(chompDuration), NewChompGenerator(sampleRate))
	case core.EventPowerUp:
		return beep.Take(sampleRate.N(powerDuration), NewSweepGenerator(sampleRate, 200, 900, powerDuration))
	case core.EventEnemyDestroyed:
		return beep.Take(sampleRate.N(enemyDuration), NewSweepGenerator(sampleRate, 1200, 300, enemyDuration))
	case core.EventShot:
		return beep.Take(sampleRate.N(shotDuration), NewSweepGenerator(sampleRate, 1600, 600, shotDuration))
	case core.EventBounce:
		return beep.Take(sampleRate.N(bounceDuration), NewToneGenerator(sampleRate, 440))
	case core.EventPoint:
		return beep.Take(sampleRate.N(pointDuration), NewToneGenerator(sampleRate, 880))
	case core.EventDeath:
		return beep.Take(sampleRate.N(deathDuration), NewJingleGenerator(sampleRate, deathNotes))
	case core.EventCleared:
		return beep.Take(sampleRate.N(clearedDuration), NewJingleGenerator(sampleRate, clearedNotes))
	}
	return nil
}

// StartMusic begins the background loop if it isn't already playing.
func (sm *SoundManager) StartMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.active() {
		return
	}

	if sm.music != nil && !sm.music.Paused {
		return
	}

	ctrl := &beep.Ctrl{Streamer: NewMusicGenerator(sampleRate), Paused: false}
	sm.music = ctrl

	speaker.Lock()
	sm.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopMusic pauses the background loop.
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.music == nil {
		return
	}

	if sm.initialized {
		speaker.Lock()
		release(sm.music)
		speaker.Unlock()
	} else {
		release(sm.music)
	}
	sm.music = nil
}

// release pauses a loop and detaches its streamer so the mixer drops it.
func release(ctrl *beep.Ctrl) {
	ctrl.Paused = true
	ctrl.Streamer = nil
}

// MusicPlaying reports whether the background loop is running.
func (sm *SoundManager) MusicPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.music != nil && !sm.music.Paused
}

// Package audio plays short cues for flaps, scores and crashes.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/baseglide/internal/notify"
)

const sampleRate = beep.SampleRate(44100)

// Sound identifies an audio cue.
type Sound int

const (
	SoundNone Sound = iota
	SoundFlap
	SoundScore
	SoundCrash
)

// String returns the cue name.
func (s Sound) String() string {
	switch s {
	case SoundFlap:
		return "flap"
	case SoundScore:
		return "score"
	case SoundCrash:
		return "crash"
	default:
		return "none"
	}
}

// SoundFor maps a driver notification to its cue.
func SoundFor(evt notify.Event) Sound {
	switch evt.(type) {
	case notify.Flapped:
		return SoundFlap
	case notify.ScoreChanged:
		return SoundScore
	case notify.GameOver:
		return SoundCrash
	default:
		return SoundNone
	}
}

// SoundManager owns the speaker and mixes cues into it.
// Every method is safe to call before Initialize or after Cleanup; cues are
// then dropped silently.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool
}

// NewSoundManager creates an enabled, uninitialized sound manager.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:   &beep.Mixer{},
		enabled: true,
	}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops every playing cue.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetEnabled mutes or unmutes cues.
func (sm *SoundManager) SetEnabled(enabled bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = enabled
}

// Play queues a cue on the mixer.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.enabled {
		return
	}

	var streamer beep.Streamer
	switch s {
	case SoundFlap:
		streamer = CreateFlapSound(sampleRate)
	case SoundScore:
		streamer = CreateScoreSound(sampleRate)
	case SoundCrash:
		streamer = CreateCrashSound(sampleRate)
	default:
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Send implements notify.Sink.
func (sm *SoundManager) Send(evt notify.Event) {
	sm.Play(SoundFor(evt))
}

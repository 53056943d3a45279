// Package audio plays the sandbox's feedback cues: tear crackles, pin blips and a wind bed
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/cloth/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager owns the speaker mixer; every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	wind        *hiss
	windCtrl    *beep.Ctrl
	initialized bool
	muted       bool

	last [cueCount]time.Time
	now  func() time.Time
	seed int64
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		now:   time.Now,
		seed:  time.Now().UnixNano(),
	}
}

// Initialize sets up the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything; the speaker itself stays open
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.windCtrl != nil {
		sm.windCtrl.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.wind = nil
	sm.windCtrl = nil
	sm.initialized = false
}

// SetMuted toggles output without tearing down the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if !sm.initialized || sm.windCtrl == nil {
		return
	}
	speaker.Lock()
	sm.windCtrl.Paused = muted || sm.wind.gain == 0
	speaker.Unlock()
}

// Muted reports the mute flag
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// allow rate-limits repeated cues; caller holds mu
func (sm *SoundManager) allow(c Cue) bool {
	now := sm.now()
	if now.Sub(sm.last[c]) < parameter.MinCueGap {
		return false
	}
	sm.last[c] = now
	return true
}

func (sm *SoundManager) active() bool {
	return sm.initialized && !sm.muted
}

// PlayTear plays a crackle; larger bursts of torn constraints play louder
func (sm *SoundManager) PlayTear(torn int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if torn <= 0 || !sm.active() || !sm.allow(CueTear) {
		return
	}

	sm.seed++
	gain := min(0.5+0.1*float64(torn), 1.0)
	s := newVolume(newCrackle(sampleRate, parameter.TearCueDuration, sm.seed), gain)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayPin plays the high pin blip
func (sm *SoundManager) PlayPin() {
	sm.playBlip(CuePin, parameter.PinCueFreq)
}

// PlayUnpin plays the low unpin blip
func (sm *SoundManager) PlayUnpin() {
	sm.playBlip(CueUnpin, parameter.UnpinCueFreq)
}

func (sm *SoundManager) playBlip(c Cue, freq float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.active() || !sm.allow(c) {
		return
	}

	s, err := blip(sampleRate, freq, parameter.PinCueDuration)
	if err != nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// SetWind starts, retunes or stops the wind bed; strength is the effective wind force
func (sm *SoundManager) SetWind(strength float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	gain := min(max(strength, 0), 2) / 2
	if gain == 0 {
		if sm.windCtrl != nil {
			speaker.Lock()
			sm.wind.gain = 0
			sm.windCtrl.Paused = true
			speaker.Unlock()
		}
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if sm.wind == nil {
		sm.seed++
		sm.wind = newHiss(sampleRate, sm.seed)
		sm.windCtrl = &beep.Ctrl{Streamer: sm.wind}
		sm.mixer.Add(sm.windCtrl)
	}
	sm.wind.gain = gain
	sm.windCtrl.Paused = sm.muted
}

// StopWind pauses the wind bed
func (sm *SoundManager) StopWind() {
	sm.SetWind(0)
}

package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Cue shapes
const (
	// TearCueDuration is the crackle length per tear burst
	TearCueDuration = 180 * time.Millisecond

	// PinCueDuration and PinCueFreq shape the pin/unpin blip
	PinCueDuration = 60 * time.Millisecond
	PinCueFreq     = 880.0
	UnpinCueFreq   = 440.0

	// WindCueCycle is the sweep period of the looping wind hiss
	WindCueCycle = 2 * time.Second

	// MinCueGap rate-limits repeated cues of the same kind
	MinCueGap = 50 * time.Millisecond
)

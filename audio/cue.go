package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/cloth/parameter"
)

// Cue identifies a sound the sandbox can trigger
type Cue int

const (
	CueTear Cue = iota
	CuePin
	CueUnpin
	cueCount
)

var cueNames = [cueCount]string{"tear", "pin", "unpin"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Cue amplitudes, unity = full scale
const (
	tearNoiseAmplitude  = 0.25
	tearRumbleAmplitude = 0.3
	tearRumbleHz        = 80.0
	tearDecayRate       = 14.0

	blipAmplitude = 0.2

	windAmplitude = 0.12
	windLowHz     = 90.0
	windHighHz    = 240.0
)

// newVolume wraps s with a linear gain, mapping 0 to silence
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// crackle is decaying noise over a low rumble, one burst per tear event
type crackle struct {
	sr    beep.SampleRate
	pos   int
	total int
	rng   *rand.Rand
}

func newCrackle(sr beep.SampleRate, d time.Duration, seed int64) *crackle {
	return &crackle{sr: sr, total: sr.N(d), rng: rand.New(rand.NewSource(seed))}
}

func (g *crackle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * tearDecayRate)
		noise := g.rng.Float64()*2 - 1
		rumble := tearRumbleAmplitude * math.Sin(2*math.Pi*tearRumbleHz*t)
		v := env * (tearNoiseAmplitude*noise + rumble)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *crackle) Err() error { return nil }

// blip is a short sine tone; pins ring higher than unpins
func blip(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	return newVolume(beep.Take(sr.N(d), tone), blipAmplitude), nil
}

// hiss is the endless wind bed; gain follows wind strength and may change while playing
type hiss struct {
	sr   beep.SampleRate
	pos  int
	low  float64
	gain float64
	rng  *rand.Rand
}

func newHiss(sr beep.SampleRate, seed int64) *hiss {
	return &hiss{sr: sr, rng: rand.New(rand.NewSource(seed))}
}

func (g *hiss) Stream(samples [][2]float64) (n int, ok bool) {
	cycle := float64(g.sr.N(parameter.WindCueCycle))
	for i := range samples {
		phase := float64(g.pos%int(cycle)) / cycle
		t := float64(g.pos) / float64(g.sr)

		// Low-passed noise with a slow swell
		g.low += 0.05 * (g.rng.Float64()*2 - 1 - g.low)
		freq := windLowHz + (windHighHz-windLowHz)*math.Sin(phase*math.Pi)
		swell := 0.5 + 0.5*math.Sin(phase*2*math.Pi)
		v := g.gain * windAmplitude * swell * (0.7*g.low + 0.3*math.Sin(2*math.Pi*freq*t))

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *hiss) Err() error { return nil }

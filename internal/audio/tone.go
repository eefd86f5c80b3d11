package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// Tone is a single oscillator note whose pitch and loudness glide from a
// start value to an end value.
type Tone struct {
	Wave     WaveType
	Duration time.Duration

	FreqStart float64
	FreqEnd   float64
	FreqRamp  time.Duration // pitch holds at FreqEnd after this
	FreqExp   bool          // exponential rather than linear glide

	Gain    float64 // peak amplitude, applied with effects.Volume
	GainEnd float64 // 0 keeps Gain for the whole note; otherwise decays exponentially
}

// tones is the synthesis table for each cue.
var tones = map[Cue]Tone{
	CueShoot: {
		Wave: WaveSquare, Duration: 100 * time.Millisecond,
		FreqStart: 800, FreqEnd: 100, FreqRamp: 100 * time.Millisecond, FreqExp: true,
		Gain: 0.1, GainEnd: 0.01,
	},
	CueChargeShot: {
		Wave: WaveSaw, Duration: 300 * time.Millisecond,
		FreqStart: 200, FreqEnd: 50, FreqRamp: 300 * time.Millisecond,
		Gain: 0.2, GainEnd: 0.01,
	},
	CueExplosion: {
		Wave: WaveSaw, Duration: 200 * time.Millisecond,
		FreqStart: 100, FreqEnd: 10, FreqRamp: 200 * time.Millisecond, FreqExp: true,
		Gain: 0.3, GainEnd: 0.01,
	},
	CuePowerup: {
		Wave: WaveSine, Duration: 200 * time.Millisecond,
		FreqStart: 600, FreqEnd: 1200, FreqRamp: 100 * time.Millisecond,
		Gain: 0.1,
	},
}

// Streamer renders the tone at unit amplitude; loudness is left to the caller.
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	return &toneStreamer{
		tone:  t,
		rate:  rate,
		total: rate.N(t.Duration),
		ramp:  rate.N(t.FreqRamp),
	}
}

type toneStreamer struct {
	tone     Tone
	rate     beep.SampleRate
	total    int
	ramp     int
	position int
	phase    float64
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}

		var val float64
		switch s.tone.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			if s.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (s.phase - 0.5)
		}
		val *= s.envelope()

		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.freq() / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error { return nil }

// freq returns the pitch at the current position.
func (s *toneStreamer) freq() float64 {
	t := s.tone
	if s.ramp <= 0 || s.position >= s.ramp {
		return t.FreqEnd
	}
	p := float64(s.position) / float64(s.ramp)
	if t.FreqExp && t.FreqStart > 0 && t.FreqEnd > 0 {
		return t.FreqStart * math.Pow(t.FreqEnd/t.FreqStart, p)
	}
	return t.FreqStart + (t.FreqEnd-t.FreqStart)*p
}

// envelope returns the relative loudness in (0, 1] at the current position.
func (s *toneStreamer) envelope() float64 {
	t := s.tone
	if t.GainEnd <= 0 || t.Gain <= 0 || s.total == 0 {
		return 1
	}
	p := float64(s.position) / float64(s.total)
	return math.Pow(t.GainEnd/t.Gain, p)
}

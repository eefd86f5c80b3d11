package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestEveryCueHasATone(t *testing.T) {
	for _, cue := range []Cue{CueShoot, CueChargeShot, CueExplosion, CuePowerup} {
		if _, ok := tones[cue]; !ok {
			t.Errorf("cue %q has no tone", cue)
		}
	}
}

func TestToneLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for cue, tone := range tones {
		t.Run(string(cue), func(t *testing.T) {
			s := tone.Streamer(rate)
			want := rate.N(tone.Duration)
			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := s.Stream(buf)
				for i := 0; i < n; i++ {
					if math.Abs(buf[i][0]) > 1 || buf[i][0] != buf[i][1] {
						t.Fatalf("sample %d = %v", total+i, buf[i])
					}
				}
				total += n
				if !ok {
					break
				}
			}
			if total != want {
				t.Fatalf("streamed %d samples, want %d", total, want)
			}
		})
	}
}

func TestToneGlide(t *testing.T) {
	tone := Tone{
		Wave: WaveSine, Duration: time.Second,
		FreqStart: 100, FreqEnd: 400, FreqRamp: 500 * time.Millisecond, FreqExp: true,
		Gain: 1, GainEnd: 0.25,
	}
	s := tone.Streamer(beep.SampleRate(1000)).(*toneStreamer)

	if got := s.freq(); got != 100 {
		t.Fatalf("start freq = %g", got)
	}
	s.position = 250
	if got := s.freq(); math.Abs(got-200) > 1e-9 {
		t.Fatalf("mid-ramp freq = %g, want 200 (geometric midpoint)", got)
	}
	s.position = 800
	if got := s.freq(); got != 400 {
		t.Fatalf("post-ramp freq = %g, want held at 400", got)
	}
	s.position = 500
	if got := s.envelope(); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("envelope at half = %g, want 0.5", got)
	}
}

func TestNopIgnoresCues(t *testing.T) {
	var sink Sink = Nop{}
	sink.Play(CueExplosion)
}

package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/duel/internal/config"
)

// Speaker synthesises cues on the local sound device. Each cue is rendered
// fresh and added to a shared mixer, so overlapping cues play together.
type Speaker struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	closed bool
}

// NewSpeaker opens the default output device.
func NewSpeaker(cfg config.AudioConfig) (*Speaker, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Speaker{
		rate:  rate,
		mixer: &beep.Mixer{},
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play queues the cue and returns immediately. Unknown cues are ignored.
func (s *Speaker) Play(cue Cue) {
	tone, ok := tones[cue]
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	stream := newVolume(tone.Streamer(s.rate), tone.Gain)
	speaker.Lock()
	s.mixer.Add(stream)
	speaker.Unlock()
}

// Close silences playback and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Clear()
	speaker.Close()
}

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

var _ Sink = (*Speaker)(nil)

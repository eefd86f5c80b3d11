// Package audio plays the duel's sound cues. The simulation only ever sees
// the Sink interface; cues are fire-and-forget.
package audio

// Cue names a sound event raised by the simulation.
type Cue string

const (
	CueShoot      Cue = "shoot"
	CueChargeShot Cue = "charge_shot"
	CueExplosion  Cue = "explosion"
	CuePowerup    Cue = "powerup"
)

// Sink receives cues. Play must not block the caller.
type Sink interface {
	Play(cue Cue)
}

// Nop discards every cue. Used for SSH sessions and when no output device
// is available.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Package loop runs the duel: the simulation that owns every entity, the
// round state machine, and the terminal loop that feeds it keys and draws it.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/duel/internal/audio"
	"github.com/tomz197/duel/internal/config"
	"github.com/tomz197/duel/internal/draw"
	"github.com/tomz197/duel/internal/input"
	"github.com/tomz197/duel/internal/object"
)

// ErrIdle is returned by Run when no key was pressed for the idle timeout.
var ErrIdle = errors.New("idle timeout")

const shutdownNotice = "Server shutting down. Thanks for playing!"

// RunOptions configures Run. Zero fields take defaults.
type RunOptions struct {
	Config       *config.Config
	Roster       *config.Roster
	Audio        audio.Sink
	Logger       *zap.Logger
	TermSizeFunc draw.TermSizeFunc
	IdleTimeout  time.Duration // zero never disconnects
	Rand         object.Rand
}

// Run plays duels on a terminal until the player quits, the reader closes,
// the idle timeout passes or ctx is cancelled. It paces itself at the
// configured tick rate: read keys, tick, draw.
func Run(ctx context.Context, r io.ByteReader, w io.Writer, opts RunOptions) error {
	sim, err := NewSimulation(Options{
		Config: opts.Config,
		Roster: opts.Roster,
		Audio:  opts.Audio,
		Rand:   opts.Rand,
		Logger: opts.Logger,
	})
	if err != nil {
		return err
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	rend := newRenderer(w, termSizeFunc, sim.arena)
	stream := input.StartStream(r)
	ctrl := &controller{sim: sim, stream: stream}

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	ticker := time.NewTicker(sim.cfg.TickInterval())
	defer ticker.Stop()

	lastInput := time.Now()
	for {
		select {
		case <-ctx.Done():
			rend.notice = shutdownNotice
			return rend.drawFrame(sim)
		case <-ticker.C:
		}

		in := input.ReadInput(stream)
		if len(in.Pressed) > 0 {
			lastInput = time.Now()
		}
		notice, err := idleNotice(time.Since(lastInput), opts.IdleTimeout)
		if err != nil {
			sim.log.Info("disconnecting idle player", zap.Duration("timeout", opts.IdleTimeout))
			draw.ClearScreen(w)
			return err
		}
		rend.notice = notice

		if ctrl.step(in) {
			draw.ClearScreen(w)
			return nil
		}
		if err := sim.Validate(); err != nil {
			sim.log.Error("simulation invariant violated",
				zap.Stringer("state", sim.State()),
				zap.Int("round", sim.Round()),
				zap.Error(err))
		}

		rend.updateScreen()
		if err := rend.drawFrame(sim); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}
	}
}

// idleNotice returns the warning to show after idle time without a key, or
// ErrIdle once the timeout has passed. The warning starts at three quarters
// of the timeout.
func idleNotice(idle, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		return "", nil
	}
	if idle > timeout {
		return "", ErrIdle
	}
	if idle > timeout*3/4 {
		left := (timeout - idle).Round(time.Second)
		return fmt.Sprintf("Idle. Disconnecting in %s, press any key", left), nil
	}
	return "", nil
}

// controller maps one frame of keys onto the simulation. Menu keys act on
// the frame they go down, not while held.
type controller struct {
	sim    *Simulation
	stream *input.Stream
	prev   input.Input
}

// step applies in and advances the simulation one tick. It reports whether
// the player asked to quit.
func (c *controller) step(in input.Input) bool {
	defer func() { c.prev = in }()
	if in.Quit {
		return true
	}

	sim := c.sim
	switch sim.State() {
	case StateTitle:
		switch {
		case in.Number != c.prev.Number && in.Number >= 1:
			keys := sim.roster.Keys()
			if in.Number <= len(keys) {
				_ = sim.SelectArchetype(keys[in.Number-1])
			}
		case in.Left && !c.prev.Left:
			_ = sim.CycleArchetype(-1)
		case in.Right && !c.prev.Right:
			_ = sim.CycleArchetype(1)
		case c.pressed(in.Space, c.prev.Space) || c.pressed(in.Enter, c.prev.Enter):
			_ = sim.StartMatch()
			c.transition(&in)
		}
		sim.Tick(object.Controls{})
		return false

	case StateResult:
		if c.pressed(in.Space, c.prev.Space) || c.pressed(in.Enter, c.prev.Enter) {
			sim.Reset()
			c.transition(&in)
		}
		return false
	}

	// Only R abandons a match; ESC does not.
	if c.pressed(in.Reset, c.prev.Reset) {
		sim.Reset()
		c.transition(&in)
		return false
	}
	sim.Tick(in.Controls())
	return false
}

func (c *controller) pressed(now, before bool) bool {
	return now && !before
}

// transition drops held keys so the key that changed screens does not
// carry into the next one.
func (c *controller) transition(in *input.Input) {
	input.ResetKeyInput(c.stream)
	*in = input.Input{}
}

// Package input turns raw terminal bytes into per-frame key state.
//
// Terminals only report key presses, never releases, so a key counts as held
// for a short window after its last byte arrives. Auto-repeat keeps the
// window open while a key is physically held down.
package input

import (
	"io"
	"time"

	"github.com/tomz197/duel/internal/object"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// It has to bridge the gap between auto-repeat bytes (~30ms on most systems).
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Space   bool
	Enter   bool
	Escape  bool
	Reset   bool
	Charge  bool // charge latch engaged with C; released by C or SPACE
	Number  int
	Pressed []byte
}

// Controls reduces the frame's keys to the three signals the duel reads.
func (in Input) Controls() object.Controls {
	return object.Controls{
		MoveLeft:  in.Left,
		MoveRight: in.Right,
		Fire:      in.Space || in.Up || in.Charge,
	}
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	space     time.Time
	enter     time.Time
	escape    time.Time
	reset     time.Time
	number    time.Time
	numberVal int
	charge    bool
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState

	// pending holds an unfinished ESC or ESC [ prefix carried to the next
	// read; pendingSince is when it was first seen.
	pending      []byte
	pendingSince time.Time
}

func newStream() *Stream {
	return &Stream{
		ch:    make(chan byte, 128),
		state: keyState{numberVal: -1},
	}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var fresh []byte
	closed := false

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.state.quit = now
				closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	buf := fresh
	if len(s.pending) > 0 {
		buf = append(s.pending, fresh...)
		s.pending = nil
	}
	rest := s.apply(buf, now)

	switch {
	case len(rest) == 0:
		s.pendingSince = time.Time{}
	case closed || (!s.pendingSince.IsZero() && now.Sub(s.pendingSince) >= keyHoldDuration):
		// Nothing completed the sequence: a bare ESC after all.
		for _, b := range rest {
			applyByteToState(&s.state, b, now)
		}
		s.pendingSince = time.Time{}
	default:
		// A prefix that starts past the carried bytes is new; time it afresh.
		if s.pendingSince.IsZero() || len(rest) < len(buf) {
			s.pendingSince = now
		}
		s.pending = append([]byte(nil), rest...)
	}

	in := s.snapshot(now)
	in.Pressed = fresh
	return in
}

// apply parses the collected bytes and updates key state timestamps. A
// trailing ESC or ESC [ that may still become an arrow key is returned
// unparsed.
func (s *Stream) apply(buf []byte, now time.Time) (rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// Check for escape sequences (arrow keys, etc.)
		if b == '\x1b' {
			if i+1 == len(buf) || (buf[i+1] == '[' && i+2 == len(buf)) {
				return buf[i:]
			}
			if buf[i+1] == '[' {
				// CSI sequence: ESC [ <code>
				switch buf[i+2] {
				case 'A': // Up arrow
					s.state.up = now
					i += 2
					continue
				case 'B': // Down arrow
					s.state.down = now
					i += 2
					continue
				case 'C': // Right arrow
					s.state.right = now
					i += 2
					continue
				case 'D': // Left arrow
					s.state.left = now
					i += 2
					continue
				}
			}
		}

		// Single byte handling - update key state
		applyByteToState(&s.state, b, now)
	}
	return nil
}

// snapshot builds input from key state - keys are "pressed" if seen within hold duration.
func (s *Stream) snapshot(now time.Time) Input {
	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	in := Input{
		Quit:   held(s.state.quit),
		Left:   held(s.state.left),
		Right:  held(s.state.right),
		Up:     held(s.state.up),
		Down:   held(s.state.down),
		Space:  held(s.state.space),
		Enter:  held(s.state.enter),
		Escape: held(s.state.escape),
		Reset:  held(s.state.reset),
		Charge: s.state.charge,
		Number: -1,
	}

	// Number is only set if recently pressed
	if held(s.state.number) {
		in.Number = s.state.numberVal
	}
	return in
}

// ResetKeyInput forgets every held key and drops unread bytes, so a key
// pressed on one screen does not leak into the next.
func ResetKeyInput(s *Stream) {
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.state = keyState{numberVal: -1, quit: time.Now()}
				s.pending, s.pendingSince = nil, time.Time{}
				return
			}
		default:
			s.state = keyState{numberVal: -1}
			s.pending, s.pendingSince = nil, time.Time{}
			return
		}
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.space = now
		state.charge = false
	case 'c', 'C':
		state.charge = !state.charge
	case 'r', 'R':
		state.reset = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
	}
}

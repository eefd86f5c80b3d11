package input

import (
	"testing"
	"time"
)

func feed(s *Stream, keys string) {
	for i := 0; i < len(keys); i++ {
		s.ch <- keys[i]
	}
}

func TestKeysHeldWithinWindow(t *testing.T) {
	s := newStream()
	start := time.Unix(100, 0)

	feed(s, "a ")
	in := s.read(start)
	if !in.Left || !in.Space {
		t.Fatalf("input = %+v, want left and space", in)
	}
	if c := in.Controls(); !c.MoveLeft || c.MoveRight || !c.Fire {
		t.Fatalf("controls = %+v", c)
	}

	in = s.read(start.Add(keyHoldDuration / 2))
	if !in.Left {
		t.Fatal("left released inside hold window")
	}
	in = s.read(start.Add(keyHoldDuration))
	if in.Left || in.Space {
		t.Fatalf("keys still held after window: %+v", in)
	}
}

func TestArrowSequences(t *testing.T) {
	s := newStream()
	feed(s, "\x1b[D\x1b[C\x1b[A")
	in := s.read(time.Unix(100, 0))
	if !in.Left || !in.Right || !in.Up {
		t.Fatalf("input = %+v, want left, right and up", in)
	}
	if in.Escape {
		t.Fatal("arrow sequence reported as escape")
	}
}

func TestArrowSplitAcrossReads(t *testing.T) {
	s := newStream()
	start := time.Unix(100, 0)

	feed(s, "\x1b")
	if in := s.read(start); in.Escape || in.Left || in.Right {
		t.Fatalf("first half = %+v, want nothing yet", in)
	}
	feed(s, "[")
	if in := s.read(start.Add(8 * time.Millisecond)); in.Escape || in.Left {
		t.Fatalf("second part = %+v, want nothing yet", in)
	}
	feed(s, "D")
	in := s.read(start.Add(16 * time.Millisecond))
	if !in.Left || in.Right || in.Escape {
		t.Fatalf("completed sequence = %+v, want left only", in)
	}
	if len(in.Pressed) != 1 {
		t.Fatalf("pressed = %q, want only the new byte", in.Pressed)
	}
}

func TestBareEscapeAfterHoldWindow(t *testing.T) {
	s := newStream()
	start := time.Unix(100, 0)

	feed(s, "\x1b")
	if in := s.read(start); in.Escape {
		t.Fatal("escape reported before the window closed")
	}
	if in := s.read(start.Add(keyHoldDuration / 2)); in.Escape {
		t.Fatal("escape reported inside the window")
	}
	in := s.read(start.Add(keyHoldDuration))
	if !in.Escape || in.Left || in.Right {
		t.Fatalf("input = %+v, want a bare escape", in)
	}
	// Following keys parse normally.
	feed(s, "d")
	if in := s.read(start.Add(keyHoldDuration + time.Millisecond)); !in.Right {
		t.Fatalf("input = %+v, want right", in)
	}
}

func TestChargeLatch(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)

	feed(s, "c")
	if in := s.read(now); !in.Controls().Fire {
		t.Fatal("latch did not hold fire")
	}
	// Latch survives long after the key byte.
	if in := s.read(now.Add(time.Second)); !in.Controls().Fire {
		t.Fatal("latch released on its own")
	}
	feed(s, "c")
	if in := s.read(now.Add(2 * time.Second)); in.Controls().Fire {
		t.Fatal("second C did not release")
	}

	feed(s, "c")
	s.read(now.Add(3 * time.Second))
	feed(s, " ")
	in := s.read(now.Add(4 * time.Second))
	if in.Charge || !in.Space {
		t.Fatalf("space should release the latch and count as held: %+v", in)
	}
}

func TestNumberAndReset(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)
	feed(s, "2r")
	in := s.read(now)
	if in.Number != 2 || !in.Reset {
		t.Fatalf("input = %+v", in)
	}
	if in := s.read(now.Add(time.Second)); in.Number != -1 {
		t.Fatalf("number = %d, want -1 once expired", in.Number)
	}
}

func TestResetKeyInput(t *testing.T) {
	s := newStream()
	feed(s, "c")
	s.read(time.Now())
	feed(s, "d")

	ResetKeyInput(s)

	in := s.read(time.Now())
	if in.Right || in.Charge || len(in.Pressed) != 0 {
		t.Fatalf("state survived reset: %+v", in)
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := newStream()
	close(s.ch)
	if in := s.read(time.Now()); !in.Quit {
		t.Fatal("closed stream should report quit")
	}
}

package physics

import "testing"

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Fatalf("Distance = %g, want 5", got)
	}
	if got := DistanceSquared(1, 1, 4, 5); got != 25 {
		t.Fatalf("DistanceSquared = %g, want 25", got)
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name string
		x2   float64
		want bool
	}{
		{"overlapping", 11, true},
		{"touching", 12, false},
		{"apart", 20, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CirclesOverlap(0, 0, 6, tc.x2, 0, 6); got != tc.want {
				t.Fatalf("CirclesOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRectContainsIsStrict(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 40, H: 40}
	tests := []struct {
		x, y float64
		want bool
	}{
		{30, 40, true},
		{10, 40, false}, // left edge
		{50, 40, false}, // right edge
		{30, 20, false}, // top edge
		{30, 60, false}, // bottom edge
		{10.01, 20.01, true},
		{0, 0, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%g, %g) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if cx, cy := r.Center(); cx != 30 || cy != 40 {
		t.Fatalf("Center = (%g, %g), want (30, 40)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 360); got != 0 {
		t.Fatalf("Clamp low = %g", got)
	}
	if got := Clamp(400, 0, 360); got != 360 {
		t.Fatalf("Clamp high = %g", got)
	}
	if got := Clamp(12.5, 0, 360); got != 12.5 {
		t.Fatalf("Clamp mid = %g", got)
	}
}

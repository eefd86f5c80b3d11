package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetFloatScales(t *testing.T) {
	// 400x700 logical onto 40 columns x 35 rows (70 sub-pixels): 10 units per pixel.
	c := NewScaledCanvas(40, 35, 400, 700)
	c.SetFloat(200, 350, Red)
	if got := c.At(20, 35); got != Red {
		t.Fatalf("pixel (20,35) = %v, want red", got)
	}
	c.SetFloat(-50, 10, Red) // off-canvas writes are dropped
	if got := c.At(-5, 1); got != None {
		t.Fatalf("out of range At = %v, want None", got)
	}
}

func TestFillCircleAndRect(t *testing.T) {
	c := NewScaledCanvas(40, 35, 400, 700)
	c.FillCircle(200, 200, 30, White)
	for _, p := range [][2]int{{20, 20}, {22, 20}, {20, 22}} {
		if c.At(p[0], p[1]) != White {
			t.Fatalf("pixel %v not filled", p)
		}
	}
	if c.At(25, 20) != None {
		t.Fatal("pixel outside radius filled")
	}

	c.Clear()
	c.FillRect(0, 0, 40, 40, Red)
	if c.At(0, 0) != Red || c.At(3, 3) != Red {
		t.Fatal("rect not filled")
	}
	if c.At(4, 4) != None {
		t.Fatal("rect overflowed")
	}
}

func TestFillCircleTinyStillVisible(t *testing.T) {
	c := NewScaledCanvas(40, 35, 400, 700)
	c.FillCircle(100, 100, 0.5, White)
	if c.At(10, 10) != White {
		t.Fatal("sub-pixel circle not drawn")
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	var out bytes.Buffer

	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := strings.Count(out.String(), "H"); got != 8 {
		t.Fatalf("first render wrote %d cells, want all 8", got)
	}

	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", out.String())
	}

	c.SetFloat(1, 0, Red)
	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "\033[1;2H") || !strings.Contains(s, string(BlockUpperHalf)) {
		t.Fatalf("changed cell render = %q", s)
	}
	if !strings.Contains(s, "38;2;255;0;0") {
		t.Fatalf("missing red foreground in %q", s)
	}

	c.ForceRedraw()
	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := strings.Count(out.String(), "H"); got != 8 {
		t.Fatalf("forced render wrote %d cells, want 8", got)
	}
}

func TestRenderTwoColourCell(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	c.SetFloat(0, 0, Red)
	c.SetFloat(0, 1, White)
	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatalf("Render: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "38;2;255;0;0") || !strings.Contains(s, "48;2;255;255;255") {
		t.Fatalf("two-colour cell = %q", s)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name                   string
		termW, termH           int
		wantW, wantH           int
		wantOffCol, wantOffRow int
	}{
		{"tall terminal", 80, 24, 25, 22, 27, 1},
		{"narrow terminal", 20, 60, 18, 15, 1, 22},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h, oc, or := Fit(tc.termW, tc.termH, 400, 700)
			if w != tc.wantW || h != tc.wantH || oc != tc.wantOffCol || or != tc.wantOffRow {
				t.Fatalf("Fit = %d,%d,%d,%d want %d,%d,%d,%d",
					w, h, oc, or, tc.wantW, tc.wantH, tc.wantOffCol, tc.wantOffRow)
			}
		})
	}
}

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	cw.MoveCursorAbs(1, 1)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := out.String(), "\033[3;4Hhi\033[1;1H"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestCenterColumn(t *testing.T) {
	tests := []struct {
		width int
		s     string
		want  int
	}{
		{80, "DUEL", 39},
		{81, "DUEL", 39},
		{10, "○○○○", 4},
		{3, "too wide", 1},
	}
	for _, tc := range tests {
		if got := CenterColumn(tc.width, tc.s); got != tc.want {
			t.Errorf("CenterColumn(%d, %q) = %d, want %d", tc.width, tc.s, got, tc.want)
		}
	}
}

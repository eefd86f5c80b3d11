package object

import (
	"github.com/tomz197/duel/internal/draw"
)

// Text is a simple drawable text object.
// Coordinates are 1-based canvas positions.
type Text struct {
	X     int
	Y     int
	Value string
	Color draw.Color
}

// Draw writes the text at its position in its colour.
func (t Text) Draw(cw *draw.ChunkWriter) {
	if t.Value == "" {
		return
	}
	x := t.X
	y := t.Y
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	cw.WriteColorAt(x, y, t.Value, t.Color)
}

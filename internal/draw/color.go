package draw

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Color is a terminal colour. The zero value (tcell.ColorDefault) marks an
// unset pixel.
type Color = tcell.Color

// None is the unset colour.
const None = tcell.ColorDefault

// Common colours.
var (
	White = tcell.NewRGBColor(255, 255, 255)
	Red   = tcell.NewRGBColor(255, 0, 0)
	Gray  = tcell.NewRGBColor(110, 110, 110)
)

// ParseColor accepts "#rrggbb" or a W3C colour name. Unknown strings map to
// white so a typo never hides an entity.
func ParseColor(s string) Color {
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault {
		return White
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(r, g, b)
}

// Dim scales a colour's channels by f in [0, 1].
func Dim(c Color, f float64) Color {
	if c == None {
		return None
	}
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(float64(r)*f), int32(float64(g)*f), int32(float64(b)*f))
}

// appendFg appends a truecolor foreground SGR sequence.
func appendFg(buf []byte, c Color) []byte {
	return appendSGR(buf, "38", c)
}

// appendBg appends a truecolor background SGR sequence.
func appendBg(buf []byte, c Color) []byte {
	return appendSGR(buf, "48", c)
}

func appendSGR(buf []byte, layer string, c Color) []byte {
	r, g, b := c.RGB()
	buf = append(buf, "\033["...)
	buf = append(buf, layer...)
	buf = append(buf, ";2;"...)
	buf = strconv.AppendInt(buf, int64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(b), 10)
	return append(buf, 'm')
}

// resetSGR clears all colour attributes.
const resetSGR = "\033[0m"

// Fg returns the foreground escape sequence for c, or a reset for None.
func Fg(c Color) string {
	if c == None {
		return resetSGR
	}
	return string(appendFg(nil, c))
}

package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
)

// cell is what one terminal character shows: the colours of its upper and
// lower sub-pixels.
type cell struct {
	top, bottom Color
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x], None if unset

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// What the terminal currently shows, for emitting only changed cells.
	shown  []cell
	redraw bool
	buf    []byte

	// Reusable buffers to reduce allocations
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.shown = make([]cell, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.redraw = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.redraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.redraw = true
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// At returns the colour of a sub-pixel, None when outside the canvas.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return None
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, col Color) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py, col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool, col Color) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}

		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// FillCircle fills a disc given in logical coordinates. Discs smaller than a
// pixel still set their centre pixel.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	c.setPixel(int(math.Round(pcx)), int(math.Round(pcy)), col)
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := int(math.Floor(pcy - ry)); y <= int(math.Ceil(pcy+ry)); y++ {
		dy := (float64(y) - pcy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		for x := int(math.Ceil(pcx - half)); x <= int(math.Floor(pcx+half)); x++ {
			c.setPixel(x, y, col)
		}
	}
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x1 := int(math.Round(x * c.scaleX))
	y1 := int(math.Round(y * c.scaleY))
	x2 := int(math.Round((x + w) * c.scaleX))
	y2 := int(math.Round((y + h) * c.scaleY))
	if x2 == x1 {
		x2++
	}
	if y2 == y1 {
		y2++
	}
	for py := y1; py < y2; py++ {
		for px := x1; px < x2; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
const maxChunkSize = 1400

// Render writes every cell that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.buf[:0]
	var fg, bg Color = None, None

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			next := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			idx := row*c.termWidth + col
			if !c.redraw && c.shown[idx] == next {
				continue
			}
			c.shown[idx] = next

			buf = appendMove(buf, col+1+c.offsetCol, row+1+c.offsetRow)

			var ch rune
			wantFg, wantBg := None, None
			switch {
			case next.top == None && next.bottom == None:
				ch = BlockEmpty
			case next.top == next.bottom:
				ch, wantFg = BlockFull, next.top
			case next.bottom == None:
				ch, wantFg = BlockUpperHalf, next.top
			case next.top == None:
				ch, wantFg = BlockLowerHalf, next.bottom
			default:
				ch, wantFg, wantBg = BlockUpperHalf, next.top, next.bottom
			}

			if (wantBg == None && bg != None) || (wantFg == None && fg != None) {
				buf = append(buf, resetSGR...)
				fg, bg = None, None
			}
			if wantFg != None && wantFg != fg {
				buf = appendFg(buf, wantFg)
				fg = wantFg
			}
			if wantBg != None && wantBg != bg {
				buf = appendBg(buf, wantBg)
				bg = wantBg
			}
			buf = appendRune(buf, ch)
		}
	}
	if fg != None || bg != None {
		buf = append(buf, resetSGR...)
	}
	c.redraw = false
	c.buf = buf

	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		buf = buf[len(chunk):]
	}
	return nil
}

func appendMove(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

func appendRune(buf []byte, r rune) []byte {
	return append(buf, string(r)...)
}

// RenderBorder draws a box border around the canvas area when there is room
// for it in the terminal.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	if !hasH && !hasV {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var line []byte
	for i := 0; i < c.termWidth; i++ {
		line = append(line, "─"...)
	}

	cw.WriteString(Fg(Gray))
	if hasV {
		if hasH {
			cw.MoveCursorAbs(left, top)
			cw.WriteString("┌" + string(line) + "┐")
			cw.MoveCursorAbs(left, bottom)
			cw.WriteString("└" + string(line) + "┘")
		} else {
			cw.MoveCursorAbs(c.offsetCol+1, top)
			cw.WriteString(string(line))
			cw.MoveCursorAbs(c.offsetCol+1, bottom)
			cw.WriteString(string(line))
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			cw.MoveCursorAbs(left, row)
			cw.WriteString("│")
			cw.MoveCursorAbs(right, row)
			cw.WriteString("│")
		}
	}
	cw.WriteString(resetSGR)
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

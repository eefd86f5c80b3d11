package loop

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tomz197/duel/internal/draw"
	"github.com/tomz197/duel/internal/object"
)

var (
	titleColor   = draw.ParseColor("#00f2ff")
	victoryColor = draw.ParseColor("#00ffff")
	defeatColor  = draw.ParseColor("#ff0055")
	chargeColor  = draw.ParseColor("#ffbb00")
)

// drawUI draws the overlay for the current state.
func (r *renderer) drawUI(snap *Snapshot) {
	width := r.canvas.TerminalWidth()
	centerY := r.canvas.TerminalHeight() / 2

	if r.notice != "" {
		r.centered(r.notice, centerY, draw.White).Draw(r.chunkWriter)
		return
	}

	switch snap.State {
	case StateTitle:
		r.drawTitleScreen(snap, centerY)
	case StatePlaying, StateRoundEnd:
		r.drawPlayingHUD(snap, width)
	case StateResult:
		r.drawResultScreen(snap, centerY)
	}
}

// centered returns a text label horizontally centred on the canvas.
func (r *renderer) centered(s string, row int, c draw.Color) object.Text {
	x := draw.CenterColumn(r.canvas.TerminalWidth(), s)
	return object.Text{X: x, Y: row, Value: s, Color: c}
}

// drawTitleScreen draws the archetype picker.
func (r *renderer) drawTitleScreen(snap *Snapshot, centerY int) {
	cw := r.chunkWriter
	row := centerY - 5
	r.centered("D U E L", row, titleColor).Draw(cw)
	row += 2

	for i, a := range snap.Archetypes {
		label := fmt.Sprintf("  %d %s  ", i+1, a.Name)
		color := draw.Gray
		if a.Key == snap.Archetype.Key {
			label = fmt.Sprintf("> %d %s <", i+1, a.Name)
			color = draw.ParseColor(a.Color)
		}
		r.centered(label, row, color).Draw(cw)
		row++
	}
	row++

	a := snap.Archetype
	stats := fmt.Sprintf("spd %g cost %g size %g", a.Speed, a.ShotCost, a.BulletSize)
	r.centered(stats, row, draw.White).Draw(cw)
	row += 2

	r.centered("SPACE to start", row, draw.White).Draw(cw)
	row += 2
	r.centered("A/D move  SPACE fire", row, draw.Gray).Draw(cw)
	r.centered("C hold charge  Q quit", row+1, draw.Gray).Draw(cw)
}

// drawPlayingHUD draws both energy bars, the score pips, the player's
// archetype and charge gauge on the border rows above and below the arena.
func (r *renderer) drawPlayingHUD(snap *Snapshot, width int) {
	if !snap.InMatch {
		return
	}
	name := " " + snap.Archetype.Name + " "
	barWidth := (width - utf8.RuneCountInString(name) - snap.WinRounds - 2) / 2
	if barWidth < 3 {
		barWidth = 3
	}

	top, bottom := r.hudRows()
	col := r.canvas.OffsetCol() + 1
	maxEnergy := snap.Rules.MaxEnergy

	r.hudLine(col, top,
		segment{fmt.Sprintf("%-*s", utf8.RuneCountInString(name), " CPU"), draw.Gray},
		segment{bar(snap.Opponent.Energy/maxEnergy, barWidth), snap.Opponent.Color},
		segment{" " + pips(snap.Scores.Opponent, snap.WinRounds) + " ", draw.White},
	)

	charge := segment{strings.Repeat(" ", barWidth), draw.None}
	if p := snap.Player; p.Charging {
		frac := float64(p.ChargeCount) / float64(snap.Rules.ChargeFrames)
		c := chargeColor
		if p.ChargeReady(snap.Rules) {
			c = draw.White
		}
		charge = segment{bar(frac, barWidth), c}
	}
	r.hudLine(col, bottom,
		segment{name, draw.Gray},
		segment{bar(snap.Player.Energy/maxEnergy, barWidth), snap.Player.Color},
		segment{" " + pips(snap.Scores.Player, snap.WinRounds) + " ", draw.White},
		charge,
	)
}

// drawResultScreen draws the match verdict.
func (r *renderer) drawResultScreen(snap *Snapshot, centerY int) {
	cw := r.chunkWriter
	if snap.Winner == object.SidePlayer {
		r.centered("VICTORY", centerY-2, victoryColor).Draw(cw)
	} else {
		r.centered("DEFEAT", centerY-2, defeatColor).Draw(cw)
	}
	score := fmt.Sprintf("%d - %d", snap.Scores.Player, snap.Scores.Opponent)
	r.centered(score, centerY, draw.White).Draw(cw)
	r.centered("SPACE for title", centerY+2, draw.Gray).Draw(cw)
}

// hudRows returns the absolute terminal rows for the top and bottom HUD:
// the border rows when there is room for a border, else the canvas edges.
func (r *renderer) hudRows() (top, bottom int) {
	offRow := r.canvas.OffsetRow()
	if offRow >= 1 {
		return offRow, offRow + r.canvas.TerminalHeight() + 1
	}
	return 1, r.canvas.TerminalHeight()
}

type segment struct {
	text  string
	color draw.Color
}

// hudLine writes coloured segments starting at an absolute position.
func (r *renderer) hudLine(col, row int, segs ...segment) {
	cw := r.chunkWriter
	cw.MoveCursorAbs(col, row)
	for _, s := range segs {
		cw.WriteString(draw.Fg(s.color))
		cw.WriteString(s.text)
	}
	cw.WriteString(draw.Fg(draw.None))
}

// bar renders frac in [0, 1] as a gauge width cells wide.
func bar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	return strings.Repeat(string(draw.BlockFull), filled) + strings.Repeat(string(draw.BlockLight), width-filled)
}

// pips renders a score as filled and empty dots, one per round needed.
func pips(score, total int) string {
	if score > total {
		score = total
	}
	return strings.Repeat("●", score) + strings.Repeat("○", total-score)
}

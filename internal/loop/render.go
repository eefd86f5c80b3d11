package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/tomz197/duel/internal/draw"
	"github.com/tomz197/duel/internal/object"
)

// renderer draws simulation snapshots onto a terminal.
type renderer struct {
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	termSizeFunc draw.TermSizeFunc
	snap         Snapshot
	jitter       *rand.Rand // screen shake only; never the simulation's source

	prevState  GameState
	notice     string // overlay line such as an idle warning, empty for none
	prevNotice string
}

func newRenderer(w io.Writer, termSizeFunc draw.TermSizeFunc, arena object.Arena) *renderer {
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	cw, ch, offCol, offRow := draw.Fit(termWidth, termHeight, arena.Width, arena.Height)
	canvas := draw.NewScaledCanvas(cw, ch, arena.Width, arena.Height)
	canvas.SetOffset(offCol, offRow)
	return &renderer{
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offCol, offRow),
		writer:       w,
		termSizeFunc: termSizeFunc,
		jitter:       rand.New(rand.NewSource(time.Now().UnixNano())),
		prevState:    -1,
	}
}

// updateScreen handles terminal resize, keeping the arena's aspect ratio.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (r *renderer) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(r.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.Fit(termWidth, termHeight, r.canvas.LogicalWidth(), r.canvas.LogicalHeight())

	if renderWidth != r.canvas.TerminalWidth() || renderHeight != r.canvas.TerminalHeight() ||
		offsetCol != r.canvas.OffsetCol() || offsetRow != r.canvas.OffsetRow() {
		draw.ClearScreen(r.writer)
		r.canvas.ForceRedraw()
	}

	r.canvas.Resize(renderWidth, renderHeight)
	r.canvas.SetOffset(offsetCol, offsetRow)
	r.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// drawFrame draws the current frame.
func (r *renderer) drawFrame(sim *Simulation) error {
	sim.SnapshotInto(&r.snap)
	snap := &r.snap

	// On game state or notice transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	if snap.State != r.prevState || r.notice != r.prevNotice {
		r.chunkWriter.WriteString("\033[H\033[2J")
		r.canvas.ForceRedraw()
		r.prevState = snap.State
		r.prevNotice = r.notice
	}

	r.canvas.Clear()

	ctx := object.DrawContext{Canvas: r.canvas}
	if snap.Shake > 0 {
		ctx.OffsetX = (r.jitter.Float64() - 0.5) * snap.Shake
		ctx.OffsetY = (r.jitter.Float64() - 0.5) * snap.Shake
	}

	for _, star := range snap.Stars {
		if err := star.Draw(ctx); err != nil {
			return err
		}
	}

	if snap.InMatch && snap.State.live() {
		if err := snap.Player.Draw(ctx); err != nil {
			return err
		}
		if err := snap.Opponent.Draw(ctx); err != nil {
			return err
		}
		for _, obj := range snap.Objects {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
	}

	// Render canvas to terminal
	if err := r.canvas.Render(r.chunkWriter); err != nil {
		return err
	}
	r.canvas.RenderBorder(r.chunkWriter)

	r.drawUI(snap)

	return r.chunkWriter.Flush()
}

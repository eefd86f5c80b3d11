package object

import (
	"math"

	"github.com/tomz197/duel/internal/draw"
)

// Power-capsule tuning.
const (
	ItemRadius       = 15.0
	ItemPickupRadius = 30.0

	itemEntryX    = -30.0
	itemSpeed     = 2.0
	itemBob       = 50.0  // vertical amplitude of the drift
	itemBobPeriod = 300.0 // ticks per bob cycle
	itemExitPad   = 30.0
	itemHoming    = 0.1 // fraction of the remaining distance closed per tick
)

var itemColor = draw.ParseColor("#ffbb00")

// Item is the power-capsule. It drifts across the arena until a projectile
// captures it, then homes in on the capturing side's character.
type Item struct {
	X, Y      float64
	VX        float64
	Radius    float64
	Target    Side
	age       int
	baseY     float64
	destroyed bool
}

// NewItem creates a capsule entering from the left edge at mid height.
func NewItem(arena Arena) *Item {
	return &Item{
		X:      itemEntryX,
		Y:      arena.Height / 2,
		VX:     itemSpeed,
		Radius: ItemRadius,
		baseY:  arena.Height / 2,
	}
}

// Capture locks the capsule onto side. A capsule already captured keeps its target.
func (it *Item) Capture(side Side) bool {
	if it.Target != SideNone {
		return false
	}
	it.Target = side
	return true
}

// MarkDestroyed marks the item for removal.
func (it *Item) MarkDestroyed() {
	it.destroyed = true
}

// IsDestroyed returns true if the item is marked for destruction.
func (it *Item) IsDestroyed() bool {
	return it.destroyed
}

// Update drifts or homes the capsule.
func (it *Item) Update(ctx UpdateContext) (bool, error) {
	if it.destroyed {
		return true, nil
	}

	if it.Target == SideNone {
		it.age++
		it.X += it.VX
		it.Y = it.baseY + math.Sin(2*math.Pi*float64(it.age)/itemBobPeriod)*itemBob
		if it.X > ctx.Arena.Width+itemExitPad {
			it.destroyed = true
			return true, nil
		}
		return false, nil
	}

	if c := ctx.Character(it.Target); c != nil {
		cx, cy := c.Center()
		it.X += (cx - it.X) * itemHoming
		it.Y += (cy - it.Y) * itemHoming
	}
	return false, nil
}

// Draw renders the capsule as an amber disc with a dark core.
func (it *Item) Draw(ctx DrawContext) error {
	x, y := it.X+ctx.OffsetX, it.Y+ctx.OffsetY
	ctx.Canvas.FillCircle(x, y, it.Radius, itemColor)
	ctx.Canvas.FillCircle(x, y, it.Radius*0.35, draw.Dim(itemColor, 0.25))
	return nil
}

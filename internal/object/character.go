package object

import (
	"github.com/tomz197/duel/internal/config"
	"github.com/tomz197/duel/internal/draw"
	"github.com/tomz197/duel/internal/physics"
)

// Character sizes and opponent behaviour.
const (
	CharacterSize = 40.0

	// chargeMinEnergy is the energy a held fire button needs to keep charging.
	chargeMinEnergy = 10.0

	playerBottomGap = 80.0 // player's top edge sits this far above the floor
	opponentTop     = 50.0

	aiTurnInterval = 30   // ticks between direction rolls
	aiTurnChance   = 0.1  // probability of reversing on a roll
	aiDriftFactor  = 0.7  // fraction of speed used while drifting
	aiFireEnergy   = 40.0 // AI only fires above this energy
	aiFireChance   = 0.02 // per-tick chance to fire once above aiFireEnergy
)

// Character is one of the two ships. X and Y are the top-left corner of its
// square bounding box.
type Character struct {
	X, Y   float64
	Width  float64
	Height float64
	Side   Side

	Archetype config.Archetype
	Color     draw.Color

	Energy      float64
	ChargeCount int
	Charging    bool

	aiDir   float64
	aiTimer int
}

// NewCharacter creates a character in its starting slot for a new round.
func NewCharacter(side Side, a config.Archetype, arena Arena, rules Rules) *Character {
	c := &Character{
		X:         arena.Width/2 - CharacterSize/2,
		Width:     CharacterSize,
		Height:    CharacterSize,
		Side:      side,
		Archetype: a,
		Color:     draw.ParseColor(a.Color),
		Energy:    rules.StartEnergy,
		aiDir:     1,
	}
	if side == SidePlayer {
		c.Y = arena.Height - playerBottomGap
	} else {
		c.Y = opponentTop
	}
	return c
}

// Update advances the character one tick and returns the shot it wants, if
// any. Player characters read in; the opponent ignores it and steers itself.
func (c *Character) Update(ctx UpdateContext, in Controls) Action {
	// Regen looks at last tick's charging flag.
	if c.Energy < ctx.Rules.MaxEnergy && !c.Charging {
		c.Energy += c.Archetype.Recharge
	}

	var act Action
	if c.Side == SidePlayer {
		act = c.steer(ctx, in)
	} else {
		act = c.think(ctx)
	}

	c.X = physics.Clamp(c.X, 0, ctx.Arena.Width-c.Width)
	c.Energy = physics.Clamp(c.Energy, 0, ctx.Rules.MaxEnergy)
	return act
}

func (c *Character) steer(ctx UpdateContext, in Controls) Action {
	if in.MoveLeft {
		c.X -= c.Archetype.Speed
	}
	if in.MoveRight {
		c.X += c.Archetype.Speed
	}

	if in.Fire {
		c.Charging = true
		if c.Energy > chargeMinEnergy {
			c.ChargeCount++
		}
		return ActionNone
	}
	c.Charging = false

	if c.ChargeCount == 0 {
		return ActionNone
	}
	count := c.ChargeCount
	c.ChargeCount = 0
	if count >= ctx.Rules.ChargeFrames {
		return ActionChargeShoot
	}
	return ActionShoot
}

func (c *Character) think(ctx UpdateContext) Action {
	c.aiTimer++
	if c.aiTimer >= aiTurnInterval {
		if ctx.Rand.Float64() < aiTurnChance {
			c.aiDir = -c.aiDir
		}
		c.aiTimer = 0
	}
	c.X += c.Archetype.Speed * aiDriftFactor * c.aiDir

	if c.Energy > aiFireEnergy && ctx.Rand.Float64() < aiFireChance {
		return ActionShoot
	}
	return ActionNone
}

// Bounds returns the character's hit box.
func (c *Character) Bounds() physics.Rect {
	return physics.Rect{X: c.X, Y: c.Y, W: c.Width, H: c.Height}
}

// Center returns the middle of the hit box.
func (c *Character) Center() (float64, float64) {
	return c.Bounds().Center()
}

// Muzzle is where this character's projectiles appear: horizontally centred,
// on the edge facing the enemy.
func (c *Character) Muzzle() (float64, float64) {
	x := c.X + c.Width/2
	if c.Side == SidePlayer {
		return x, c.Y
	}
	return x, c.Y + c.Height
}

// ChargeReady reports whether releasing fire now would yield a charge shot.
func (c *Character) ChargeReady(rules Rules) bool {
	return c.ChargeCount >= rules.ChargeFrames
}

// Draw renders the ship as a triangle pointing at the enemy, with a dim halo
// while charging.
func (c *Character) Draw(ctx DrawContext) error {
	x, y := c.X+ctx.OffsetX, c.Y+ctx.OffsetY
	if c.Charging {
		const glow = 6.0
		halo := c.shape(ctx.Canvas, x-glow, y-glow, c.Width+2*glow, c.Height+2*glow)
		ctx.Canvas.DrawPolygon(halo, true, draw.Dim(c.Color, 0.35))
	}
	ctx.Canvas.DrawPolygon(c.shape(ctx.Canvas, x, y, c.Width, c.Height), true, c.Color)
	return nil
}

func (c *Character) shape(canvas *draw.Canvas, x, y, w, h float64) []draw.Point {
	pts := canvas.BorrowPoints(3)
	if c.Side == SidePlayer {
		pts[0] = draw.Point{X: x + w/2, Y: y}
		pts[1] = draw.Point{X: x + w, Y: y + h}
		pts[2] = draw.Point{X: x, Y: y + h}
	} else {
		pts[0] = draw.Point{X: x, Y: y}
		pts[1] = draw.Point{X: x + w, Y: y}
		pts[2] = draw.Point{X: x + w/2, Y: y + h}
	}
	return pts
}

package object

import (
	"github.com/tomz197/duel/internal/draw"
)

// ProjectileSpeed is how far a projectile travels vertically per tick.
const ProjectileSpeed = 8.0

// projectileMargin is how far past the arena a projectile may fly before it
// is removed.
const projectileMargin = 50.0

// Hit points: a charged projectile can absorb this many opposing projectiles.
const (
	NormalHitPoints  = 1
	ChargedHitPoints = 3
)

// Projectile is a shot travelling straight toward the enemy.
type Projectile struct {
	X, Y      float64 // Centre
	VY        float64 // Negative for the player (upward)
	Radius    float64
	Owner     Side
	Color     draw.Color
	HitPoints int
	Charged   bool
	destroyed bool
}

// NewProjectile creates a projectile for owner at (x, y). Charged projectiles
// get the extra hit points; the caller picks the radius.
func NewProjectile(x, y float64, owner Side, radius float64, color draw.Color, charged bool) *Projectile {
	vy := ProjectileSpeed
	if owner == SidePlayer {
		vy = -ProjectileSpeed
	}
	hp := NormalHitPoints
	if charged {
		hp = ChargedHitPoints
	}
	return &Projectile{
		X:         x,
		Y:         y,
		VY:        vy,
		Radius:    radius,
		Owner:     owner,
		Color:     color,
		HitPoints: hp,
		Charged:   charged,
	}
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Wear removes one hit point and destroys the projectile when none remain.
func (p *Projectile) Wear() {
	p.HitPoints--
	if p.HitPoints <= 0 {
		p.destroyed = true
	}
}

// Update moves the projectile and removes it once it leaves the arena.
func (p *Projectile) Update(ctx UpdateContext) (bool, error) {
	if p.destroyed {
		return true, nil
	}
	p.Y += p.VY
	if p.Y < -projectileMargin || p.Y > ctx.Arena.Height+projectileMargin {
		p.destroyed = true
		return true, nil
	}
	return false, nil
}

// Draw renders the projectile as a coloured disc with a white core.
func (p *Projectile) Draw(ctx DrawContext) error {
	x, y := p.X+ctx.OffsetX, p.Y+ctx.OffsetY
	ctx.Canvas.FillCircle(x, y, p.Radius, p.Color)
	ctx.Canvas.FillCircle(x, y, p.Radius*0.5, draw.White)
	return nil
}

package object

import (
	"sync"

	"github.com/tomz197/duel/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

const (
	particleSpread = 8.0  // velocity components fall in [-spread/2, spread/2)
	particleDecay  = 0.05 // life lost per tick
	particleSize   = 4.0
)

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	Life   float64 // 1 when spawned, removed at 0
	Color  draw.Color
}

// NewParticle creates a single particle from the pool with a random velocity.
func NewParticle(x, y float64, color draw.Color, rnd Rand) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = (rnd.Float64() - 0.5) * particleSpread
	p.VY = (rnd.Float64() - 0.5) * particleSpread
	p.Life = 1
	p.Color = color
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates count particles at (x, y).
func SpawnBurst(x, y float64, count int, color draw.Color, rnd Rand, spawner Spawner) {
	if spawner == nil {
		return
	}
	for i := 0; i < count; i++ {
		spawner.Spawn(NewParticle(x, y, color, rnd))
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(_ UpdateContext) (bool, error) {
	p.X += p.VX
	p.Y += p.VY
	p.Life -= particleDecay
	return p.Life <= 0, nil
}

// Draw renders the particle as a small square fading with its life.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.Life <= 0 {
		return nil
	}
	ctx.Canvas.FillRect(p.X+ctx.OffsetX, p.Y+ctx.OffsetY, particleSize, particleSize, draw.Dim(p.Color, p.Life))
	return nil
}

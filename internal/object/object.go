package object

import (
	"github.com/tomz197/duel/internal/draw"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Rand is the source of every chance decision the duel makes. *math/rand.Rand
// satisfies it; tests substitute scripted sequences.
type Rand interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
}

// Side identifies which combatant owns a character, projectile or item target.
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideOpponent
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "none"
	}
}

// Opposite returns the other combatant. SideNone has no opposite.
func (s Side) Opposite() Side {
	switch s {
	case SidePlayer:
		return SideOpponent
	case SideOpponent:
		return SidePlayer
	default:
		return SideNone
	}
}

// Action is what a character asks for after its update.
type Action int

const (
	ActionNone Action = iota
	ActionShoot
	ActionChargeShoot
)

func (a Action) String() string {
	switch a {
	case ActionShoot:
		return "shoot"
	case ActionChargeShoot:
		return "charge_shoot"
	default:
		return "none"
	}
}

// Controls is the per-tick intent snapshot for the player's character.
type Controls struct {
	MoveLeft  bool
	MoveRight bool
	Fire      bool
}

// Arena is the logical playfield size.
type Arena struct {
	Width  float64
	Height float64
}

// Rules are the energy tunables every character obeys.
type Rules struct {
	MaxEnergy    float64
	StartEnergy  float64
	ChargeFrames int
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Arena    Arena
	Rules    Rules
	Rand     Rand
	Spawner  Spawner
	Objects  []Object
	Player   *Character
	Opponent *Character
}

// Character returns the combatant on the given side, nil for SideNone.
func (ctx UpdateContext) Character(side Side) *Character {
	switch side {
	case SidePlayer:
		return ctx.Player
	case SideOpponent:
		return ctx.Opponent
	default:
		return nil
	}
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	// Shake offset applied to everything drawn this frame, in logical units.
	OffsetX, OffsetY float64
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// IsDestroyed reports whether obj is Destructible and marked for removal.
func IsDestroyed(obj Object) bool {
	d, ok := obj.(Destructible)
	return ok && d.IsDestroyed()
}

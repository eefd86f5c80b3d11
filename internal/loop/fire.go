package loop

import (
	"github.com/tomz197/duel/internal/audio"
	"github.com/tomz197/duel/internal/object"
)

// Charge shots cost and grow by these factors over a normal shot.
const (
	chargeCostFactor   = 2.0
	chargeRadiusFactor = 3.0
)

// fire turns a character's action into a projectile if it can pay for it.
// An unaffordable shot is dropped: no projectile, no energy spent, no
// fallback to a cheaper shot.
func (s *Simulation) fire(c *object.Character, act object.Action) {
	cost := c.Archetype.ShotCost
	radius := c.Archetype.BulletSize
	charged := false
	cue := audio.CueShoot

	switch act {
	case object.ActionChargeShoot:
		cost *= chargeCostFactor
		radius *= chargeRadiusFactor
		charged = true
		cue = audio.CueChargeShot
	case object.ActionShoot:
	default:
		return
	}

	if c.Energy < cost {
		return
	}
	c.Energy -= cost

	x, y := c.Muzzle()
	s.AddObject(object.NewProjectile(x, y, c.Side, radius, c.Color, charged))
	s.audio.Play(cue)
	if charged {
		s.shake = chargeShake
	}
}

package loop

import (
	"github.com/tomz197/duel/internal/audio"
	"github.com/tomz197/duel/internal/draw"
	"github.com/tomz197/duel/internal/object"
	"github.com/tomz197/duel/internal/physics"
)

// collectCollidables extracts projectiles and items from the object list.
// Uses pre-allocated slices to avoid allocations.
func collectCollidables(objects []object.Object, projectiles *[]*object.Projectile, items *[]*object.Item) {
	*projectiles = (*projectiles)[:0]
	*items = (*items)[:0]

	for _, obj := range objects {
		switch o := obj.(type) {
		case *object.Projectile:
			*projectiles = append(*projectiles, o)
		case *object.Item:
			*items = append(*items, o)
		}
	}
}

// checkCollisions resolves one tick of interactions, in order: projectile
// attrition, projectile hits on characters and items, item pickups.
func (s *Simulation) checkCollisions() {
	collectCollidables(s.Objects, &s.projectiles, &s.items)

	s.checkProjectileProjectileCollisions()
	s.checkProjectileHits()
	s.checkItemPickups()

	s.FlushSpawned()
	clear(s.projectiles)
	clear(s.items)
}

// checkProjectileProjectileCollisions wears down overlapping projectiles from
// opposing sides. Each unordered pair is visited once; a charged projectile
// can lose several hit points in one tick.
func (s *Simulation) checkProjectileProjectileCollisions() {
	projectiles := s.projectiles
	for i := 0; i < len(projectiles); i++ {
		p1 := projectiles[i]
		if p1.IsDestroyed() {
			continue
		}
		for j := i + 1; j < len(projectiles); j++ {
			p2 := projectiles[j]
			if p2.IsDestroyed() || p1.Owner == p2.Owner {
				continue
			}
			if physics.CirclesOverlap(p1.X, p1.Y, p1.Radius, p2.X, p2.Y, p2.Radius) {
				object.SpawnBurst((p1.X+p2.X)/2, (p1.Y+p2.Y)/2, clashParticles, draw.White, s.rand, s)
				p1.Wear()
				p2.Wear()
				if p1.IsDestroyed() {
					break
				}
			}
		}
	}
}

// checkProjectileHits resolves projectiles against the enemy character and
// against a drifting item, in list order. Only the first character hit of a
// round ends it; roundEnd ignores the rest.
func (s *Simulation) checkProjectileHits() {
	for _, p := range s.projectiles {
		if p.IsDestroyed() {
			continue
		}

		switch {
		case p.Owner == object.SidePlayer && s.opponent.Bounds().Contains(p.X, p.Y):
			p.MarkDestroyed()
			s.roundEnd(object.SidePlayer)
			continue
		case p.Owner == object.SideOpponent && s.player.Bounds().Contains(p.X, p.Y):
			p.MarkDestroyed()
			s.roundEnd(object.SideOpponent)
			continue
		}

		for _, it := range s.items {
			if it.IsDestroyed() || it.Target != object.SideNone {
				continue
			}
			if physics.CirclesOverlap(p.X, p.Y, p.Radius, it.X, it.Y, it.Radius) {
				p.MarkDestroyed()
				it.Capture(p.Owner)
				s.audio.Play(audio.CuePowerup)
				break
			}
		}
	}
}

// checkItemPickups hands a homing item to its target once close enough,
// refilling that character's energy.
func (s *Simulation) checkItemPickups() {
	for _, it := range s.items {
		if it.IsDestroyed() || it.Target == object.SideNone {
			continue
		}
		c := s.character(it.Target)
		if c == nil {
			continue
		}
		cx, cy := c.Center()
		if physics.Within(cx, cy, it.X, it.Y, object.ItemPickupRadius) {
			it.MarkDestroyed()
			c.Energy = s.rules.MaxEnergy
		}
	}
}

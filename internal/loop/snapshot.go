package loop

import (
	"github.com/tomz197/duel/internal/config"
	"github.com/tomz197/duel/internal/object"
)

// Snapshot is a read-only view of the simulation for drawing. Renderers must
// not mutate anything reachable from it.
type Snapshot struct {
	State      GameState
	Round      int
	Scores     Scores
	WinRounds  int
	Winner     object.Side // match winner, only in StateResult
	Shake      float64
	Rules      object.Rules
	Arena      object.Arena
	Archetype  config.Archetype // player's selection
	Archetypes []config.Archetype

	// Characters are copies; valid when InMatch is true.
	InMatch  bool
	Player   object.Character
	Opponent object.Character

	Objects []object.Object // live projectiles, items and particles
	Stars   []*object.Star
}

// SnapshotInto fills dst with the current state, reusing its slices.
func (s *Simulation) SnapshotInto(dst *Snapshot) {
	dst.State = s.state
	dst.Round = s.round
	dst.Scores = s.scores
	dst.WinRounds = s.cfg.Match.WinRounds
	dst.Winner = s.Winner()
	dst.Shake = s.shake
	dst.Rules = s.rules
	dst.Arena = s.arena
	dst.Archetype = s.Archetype()
	dst.Archetypes = s.roster.Archetypes

	dst.InMatch = s.player != nil && s.opponent != nil
	if dst.InMatch {
		dst.Player = *s.player
		dst.Opponent = *s.opponent
	}

	clear(dst.Objects)
	dst.Objects = dst.Objects[:0]
	for _, obj := range s.Objects {
		if object.IsDestroyed(obj) {
			continue
		}
		if _, ok := obj.(*object.ItemSpawner); ok {
			continue
		}
		dst.Objects = append(dst.Objects, obj)
	}
	dst.Stars = s.stars
}

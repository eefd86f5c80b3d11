package loop

import (
	"errors"

	"github.com/tomz197/duel/internal/object"
)

// ErrNotInTitle is returned by menu operations attempted outside the title screen.
var ErrNotInTitle = errors.New("not on the title screen")

// GameState represents the current phase of the match.
type GameState int

const (
	StateTitle    GameState = iota // Archetype selection
	StatePlaying                   // Round in progress
	StateRoundEnd                  // Hit landed, waiting out the round-end delay
	StateResult                    // Match decided, waiting for a reset
)

func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StateRoundEnd:
		return "round_end"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// live reports whether entities are simulated in this state.
func (s GameState) live() bool {
	return s == StatePlaying || s == StateRoundEnd
}

// Scores holds round wins per side.
type Scores struct {
	Player   int
	Opponent int
}

// Of returns the wins for side.
func (s Scores) Of(side object.Side) int {
	switch side {
	case object.SidePlayer:
		return s.Player
	case object.SideOpponent:
		return s.Opponent
	default:
		return 0
	}
}

func (s *Scores) add(side object.Side) {
	switch side {
	case object.SidePlayer:
		s.Player++
	case object.SideOpponent:
		s.Opponent++
	}
}

// world holds the entity list the simulation updates each tick.
type world struct {
	Objects []object.Object
	toSpawn []object.Object // Objects to add after current update cycle
}

// AddObject adds an object to the game world.
func (w *world) AddObject(obj object.Object) {
	w.Objects = append(w.Objects, obj)
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *world) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the game and clears the queue.
func (w *world) FlushSpawned() {
	w.Objects = append(w.Objects, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// updateObjects updates all objects and removes any that request removal or
// were destroyed since the last update.
func (w *world) updateObjects(ctx object.UpdateContext) error {
	kept := w.Objects[:0] // reuse backing array
	for _, obj := range w.Objects {
		remove := object.IsDestroyed(obj)
		if !remove {
			var err error
			if remove, err = obj.Update(ctx); err != nil {
				return err
			}
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept

	// Add any newly spawned objects
	w.FlushSpawned()
	return nil
}

// reset drops every object, returning pooled ones.
func (w *world) reset() {
	for _, obj := range w.Objects {
		object.ReleaseObject(obj)
	}
	for _, obj := range w.toSpawn {
		object.ReleaseObject(obj)
	}
	clear(w.Objects)
	clear(w.toSpawn)
	w.Objects = w.Objects[:0]
	w.toSpawn = w.toSpawn[:0]
}

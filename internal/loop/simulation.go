package loop

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/duel/internal/audio"
	"github.com/tomz197/duel/internal/config"
	"github.com/tomz197/duel/internal/object"
)

// Screen shake magnitudes, in logical units.
const (
	chargeShake   = 10.0
	roundEndShake = 20.0
	shakeDecay    = 0.9
	shakeFloor    = 0.5
)

// Burst sizes.
const (
	clashParticles     = 5
	explosionParticles = 30
)

// Options configures a Simulation. Zero fields take defaults.
type Options struct {
	Config *config.Config
	Roster *config.Roster
	Audio  audio.Sink
	Rand   object.Rand
	Logger *zap.Logger
}

// Simulation owns the whole duel: both characters, every entity, the scores
// and the round state machine. It is not safe for concurrent use; one
// goroutine calls Tick and reads snapshots.
type Simulation struct {
	world

	cfg    *config.Config
	roster *config.Roster
	arena  object.Arena
	rules  object.Rules
	audio  audio.Sink
	rand   object.Rand
	log    *zap.Logger

	state    GameState
	selected int // roster index of the player's archetype
	scores   Scores
	round    int

	// roundWinner is set when a round ends; it is the match winner in StateResult.
	roundWinner object.Side
	roundTimer  int
	shake       float64

	player   *object.Character
	opponent *object.Character
	spawner  *object.ItemSpawner
	stars    []*object.Star

	// Reused each tick by the collision pass.
	projectiles []*object.Projectile
	items       []*object.Item
}

// NewSimulation creates a simulation sitting on the title screen.
func NewSimulation(opts Options) (*Simulation, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	roster := opts.Roster
	if roster == nil {
		roster = config.DefaultRoster()
	}
	if err := roster.Validate(); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	sink := opts.Audio
	if sink == nil {
		sink = audio.Nop{}
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Simulation{
		cfg:    cfg,
		roster: roster,
		arena:  object.Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height},
		rules: object.Rules{
			MaxEnergy:    cfg.Energy.Max,
			StartEnergy:  cfg.Energy.Start,
			ChargeFrames: cfg.Energy.ChargeFrames,
		},
		audio:   sink,
		rand:    rnd,
		log:     log,
		state:   StateTitle,
		spawner: object.NewItemSpawner(cfg.Items.SpawnRate),
	}
	s.stars = object.NewStarfield(s.arena, rnd)
	return s, nil
}

// State returns the current phase.
func (s *Simulation) State() GameState {
	return s.state
}

// Scores returns round wins so far.
func (s *Simulation) Scores() Scores {
	return s.scores
}

// Winner returns the match winner in StateResult and SideNone otherwise.
func (s *Simulation) Winner() object.Side {
	if s.state != StateResult {
		return object.SideNone
	}
	return s.roundWinner
}

// Round returns the 1-based number of the current round, 0 before a match.
func (s *Simulation) Round() int {
	return s.round
}

// Player returns the player's character, nil outside a match.
func (s *Simulation) Player() *object.Character {
	return s.player
}

// Opponent returns the opponent's character, nil outside a match.
func (s *Simulation) Opponent() *object.Character {
	return s.opponent
}

// Shake returns the current screen-shake magnitude.
func (s *Simulation) Shake() float64 {
	return s.shake
}

// Rules returns the energy rules in force.
func (s *Simulation) Rules() object.Rules {
	return s.rules
}

// Archetype returns the player's selected archetype.
func (s *Simulation) Archetype() config.Archetype {
	return s.roster.Archetypes[s.selected]
}

// SelectArchetype picks the player's archetype by key.
func (s *Simulation) SelectArchetype(key string) error {
	if s.state != StateTitle {
		return ErrNotInTitle
	}
	for i, a := range s.roster.Archetypes {
		if a.Key == key {
			s.selected = i
			return nil
		}
	}
	return fmt.Errorf("%q: %w", key, config.ErrUnknownArchetype)
}

// CycleArchetype moves the selection by delta, wrapping around the roster.
func (s *Simulation) CycleArchetype(delta int) error {
	if s.state != StateTitle {
		return ErrNotInTitle
	}
	n := len(s.roster.Archetypes)
	s.selected = ((s.selected+delta)%n + n) % n
	return nil
}

// StartMatch zeroes the scores and begins the first round.
func (s *Simulation) StartMatch() error {
	if s.state != StateTitle {
		return ErrNotInTitle
	}
	s.scores = Scores{}
	s.round = 0
	s.log.Info("match started",
		zap.String("archetype", s.Archetype().Key),
		zap.Int("win_rounds", s.cfg.Match.WinRounds))
	s.initRound()
	return nil
}

// Reset abandons whatever is running and returns to the title screen. A
// pending round-end never fires afterwards.
func (s *Simulation) Reset() {
	s.world.reset()
	s.state = StateTitle
	s.scores = Scores{}
	s.round = 0
	s.roundWinner = object.SideNone
	s.roundTimer = 0
	s.shake = 0
	s.player = nil
	s.opponent = nil
}

// initRound recreates both characters and clears the arena.
func (s *Simulation) initRound() {
	s.world.reset()
	s.player = object.NewCharacter(object.SidePlayer, s.Archetype(), s.arena, s.rules)
	s.opponent = object.NewCharacter(object.SideOpponent, s.roster.OpponentArchetype(), s.arena, s.rules)
	s.AddObject(s.spawner)
	s.roundWinner = object.SideNone
	s.roundTimer = 0
	s.round++
	s.state = StatePlaying
}

func (s *Simulation) updateContext() object.UpdateContext {
	return object.UpdateContext{
		Arena:    s.arena,
		Rules:    s.rules,
		Rand:     s.rand,
		Spawner:  &s.world,
		Objects:  s.Objects,
		Player:   s.player,
		Opponent: s.opponent,
	}
}

// Tick advances the simulation one frame. It does nothing on the title and
// result screens.
func (s *Simulation) Tick(in object.Controls) {
	if !s.state.live() {
		return
	}

	if s.state == StateRoundEnd {
		s.roundTimer--
		if s.roundTimer <= 0 {
			s.finishRound()
			return
		}
	}

	ctx := s.updateContext()
	for _, star := range s.stars {
		star.Update(ctx)
	}

	if act := s.player.Update(ctx, in); act != object.ActionNone {
		s.fire(s.player, act)
	}
	if act := s.opponent.Update(ctx, object.Controls{}); act != object.ActionNone {
		s.fire(s.opponent, act)
	}

	ctx.Objects = s.Objects
	if err := s.updateObjects(ctx); err != nil {
		s.log.Error("update objects", zap.Error(err))
	}

	s.checkCollisions()

	if s.shake > 0 {
		s.shake *= shakeDecay
		if s.shake < shakeFloor {
			s.shake = 0
		}
	}
}

// character returns the combatant on side.
func (s *Simulation) character(side object.Side) *object.Character {
	switch side {
	case object.SidePlayer:
		return s.player
	case object.SideOpponent:
		return s.opponent
	default:
		return nil
	}
}

// Validate checks the runtime invariants: energies within range, characters
// inside the arena, no NaN coordinates anywhere.
func (s *Simulation) Validate() error {
	var errs []error
	for _, c := range []*object.Character{s.player, s.opponent} {
		if c == nil {
			continue
		}
		if !(c.Energy >= 0 && c.Energy <= s.rules.MaxEnergy) {
			errs = append(errs, fmt.Errorf("%s energy %g outside [0, %g]", c.Side, c.Energy, s.rules.MaxEnergy))
		}
		if !(c.X >= 0 && c.X <= s.arena.Width-c.Width) {
			errs = append(errs, fmt.Errorf("%s x %g outside [0, %g]", c.Side, c.X, s.arena.Width-c.Width))
		}
		if math.IsNaN(c.Y) {
			errs = append(errs, fmt.Errorf("%s y is NaN", c.Side))
		}
	}
	for _, obj := range s.Objects {
		var x, y float64
		switch o := obj.(type) {
		case *object.Projectile:
			x, y = o.X, o.Y
		case *object.Item:
			x, y = o.X, o.Y
		case *object.Particle:
			x, y = o.X, o.Y
		default:
			continue
		}
		if math.IsNaN(x) || math.IsNaN(y) {
			errs = append(errs, fmt.Errorf("%T at NaN position", obj))
		}
	}
	return errors.Join(errs...)
}

package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

//go:embed archetypes.yaml
var defaultArchetypes []byte

// ErrUnknownArchetype is returned when a key is not in the roster.
var ErrUnknownArchetype = errors.New("unknown archetype")

// Archetype is a named preset of character stats.
type Archetype struct {
	Key        string  `yaml:"key"`
	Name       string  `yaml:"name"`
	Color      string  `yaml:"color"`
	Speed      float64 `yaml:"speed"`       // units per tick
	ShotCost   float64 `yaml:"shot_cost"`   // energy per normal shot
	Recharge   float64 `yaml:"recharge"`    // energy regained per tick
	BulletSize float64 `yaml:"bullet_size"` // normal projectile radius
}

// Roster is the ordered archetype table plus the fixed opponent pick.
type Roster struct {
	Archetypes    []Archetype `yaml:"archetypes"`
	Opponent      string      `yaml:"opponent"`
	OpponentColor string      `yaml:"opponent_color"`
}

// DefaultRoster returns the embedded Balanced/Rapid/Heavy table.
func DefaultRoster() *Roster {
	r, err := parseRoster(defaultArchetypes)
	if err != nil {
		panic(fmt.Sprintf("embedded archetypes.yaml: %v", err))
	}
	return r
}

// LoadRoster reads a roster YAML file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetypes %s: %w", path, err)
	}
	r, err := parseRoster(data)
	if err != nil {
		return nil, fmt.Errorf("archetypes %s: %w", path, err)
	}
	return r, nil
}

func parseRoster(data []byte) (*Roster, error) {
	var r Roster
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if r.Opponent == "" && len(r.Archetypes) > 0 {
		r.Opponent = r.Archetypes[0].Key
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks that keys are unique, stats are usable and the opponent,
// when set, refers to a listed archetype. It does not modify r.
func (r *Roster) Validate() error {
	if len(r.Archetypes) == 0 {
		return errors.New("roster is empty")
	}
	seen := make(map[string]bool, len(r.Archetypes))
	for _, a := range r.Archetypes {
		if a.Key == "" {
			return fmt.Errorf("archetype %q has no key", a.Name)
		}
		if seen[a.Key] {
			return fmt.Errorf("duplicate archetype %q", a.Key)
		}
		seen[a.Key] = true
		if a.Speed <= 0 || a.ShotCost <= 0 || a.BulletSize <= 0 {
			return fmt.Errorf("archetype %q: speed, shot cost and bullet size must be positive", a.Key)
		}
		if a.Recharge < 0 {
			return fmt.Errorf("archetype %q: negative recharge %g", a.Key, a.Recharge)
		}
		if !validColor(a.Color) {
			return fmt.Errorf("archetype %q: bad color %q", a.Key, a.Color)
		}
	}
	if r.Opponent != "" && !seen[r.Opponent] {
		return fmt.Errorf("opponent %q: %w", r.Opponent, ErrUnknownArchetype)
	}
	if r.OpponentColor != "" && !validColor(r.OpponentColor) {
		return fmt.Errorf("bad opponent color %q", r.OpponentColor)
	}
	return nil
}

func validColor(s string) bool {
	return tcell.GetColor(s) != tcell.ColorDefault
}

// Lookup returns the archetype with the given key.
func (r *Roster) Lookup(key string) (Archetype, error) {
	for _, a := range r.Archetypes {
		if a.Key == key {
			return a, nil
		}
	}
	return Archetype{}, fmt.Errorf("%q: %w", key, ErrUnknownArchetype)
}

// Keys lists archetype keys in menu order.
func (r *Roster) Keys() []string {
	keys := make([]string, len(r.Archetypes))
	for i, a := range r.Archetypes {
		keys[i] = a.Key
	}
	return keys
}

// OpponentArchetype returns the opponent's stats with its colour override
// applied.
func (r *Roster) OpponentArchetype() Archetype {
	a, err := r.Lookup(r.Opponent)
	if err != nil {
		a = r.Archetypes[0]
	}
	if r.OpponentColor != "" {
		a.Color = r.OpponentColor
	}
	return a
}

package config

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultRoster(t *testing.T) {
	r := DefaultRoster()

	want := []struct {
		key, name string
		speed     float64
		cost      float64
		size      float64
	}{
		{"standard", "Balanced", 5, 15, 6},
		{"speed", "Rapid", 7, 8, 4},
		{"power", "Heavy", 3, 25, 9},
	}
	if len(r.Archetypes) != len(want) {
		t.Fatalf("roster has %d archetypes, want %d", len(r.Archetypes), len(want))
	}
	for i, w := range want {
		a := r.Archetypes[i]
		if a.Key != w.key || a.Name != w.name || a.Speed != w.speed || a.ShotCost != w.cost || a.BulletSize != w.size {
			t.Errorf("archetype %d = %+v, want %+v", i, a, w)
		}
	}

	opp := r.OpponentArchetype()
	if opp.Key != "standard" || opp.Color != "#ff0055" {
		t.Fatalf("opponent = %+v, want standard in #ff0055", opp)
	}
}

func TestLookup(t *testing.T) {
	r := DefaultRoster()
	a, err := r.Lookup("power")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if a.Recharge != 0.3 {
		t.Fatalf("recharge = %g, want 0.3", a.Recharge)
	}
	if _, err := r.Lookup("sniper"); !errors.Is(err, ErrUnknownArchetype) {
		t.Fatalf("err = %v, want ErrUnknownArchetype", err)
	}
}

func TestLoadRoster(t *testing.T) {
	path := writeFile(t, "roster.yaml", `
opponent: tank
archetypes:
  - key: tank
    name: Tank
    color: "#888888"
    speed: 2
    shot_cost: 30
    recharge: 0.2
    bullet_size: 12
  - key: dart
    name: Dart
    color: yellow
    speed: 9
    shot_cost: 5
    recharge: 0.9
    bullet_size: 3
`)
	r, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	if got := r.Keys(); len(got) != 2 || got[0] != "tank" || got[1] != "dart" {
		t.Fatalf("Keys = %v", got)
	}
	if opp := r.OpponentArchetype(); opp.Color != "#888888" {
		t.Fatalf("opponent colour = %q, want the archetype's own", opp.Color)
	}
}

func TestLoadRosterRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "archetypes: []\n", "empty"},
		{"unknown field", "archetypes:\n  - key: a\n    name: A\n    color: red\n    speed: 1\n    shot_cost: 1\n    recharge: 1\n    bullet_size: 1\n    power: 2\n", "power"},
		{"duplicate", "archetypes:\n  - {key: a, name: A, color: red, speed: 1, shot_cost: 1, recharge: 1, bullet_size: 1}\n  - {key: a, name: B, color: red, speed: 1, shot_cost: 1, recharge: 1, bullet_size: 1}\n", "duplicate"},
		{"bad colour", "archetypes:\n  - {key: a, name: A, color: notacolour, speed: 1, shot_cost: 1, recharge: 1, bullet_size: 1}\n", "bad color"},
		{"unknown opponent", "opponent: b\narchetypes:\n  - {key: a, name: A, color: red, speed: 1, shot_cost: 1, recharge: 1, bullet_size: 1}\n", "unknown archetype"},
		{"zero speed", "archetypes:\n  - {key: a, name: A, color: red, speed: 0, shot_cost: 1, recharge: 1, bullet_size: 1}\n", "must be positive"},
		{"negative recharge", "archetypes:\n  - {key: a, name: A, color: red, speed: 1, shot_cost: 1, recharge: -0.5, bullet_size: 1}\n", "negative recharge"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadRoster(writeFile(t, "roster.yaml", tc.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadRosterDefaultsOpponent(t *testing.T) {
	r, err := LoadRoster(writeFile(t, "roster.yaml", "archetypes:\n  - {key: a, name: A, color: red, speed: 1, shot_cost: 1, recharge: 0, bullet_size: 1}\n  - {key: b, name: B, color: blue, speed: 1, shot_cost: 1, recharge: 0, bullet_size: 1}\n"))
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	if r.Opponent != "a" {
		t.Fatalf("opponent = %q, want the first archetype", r.Opponent)
	}
}

func TestValidateLeavesRosterUnchanged(t *testing.T) {
	r := DefaultRoster()
	r.Opponent = ""
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if r.Opponent != "" {
		t.Fatalf("Validate set opponent to %q", r.Opponent)
	}
	if opp := r.OpponentArchetype(); opp.Key != r.Archetypes[0].Key {
		t.Fatalf("opponent archetype = %q, want the first", opp.Key)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultMatchesStockTuning(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Arena.Width != 400 || cfg.Arena.Height != 700 {
		t.Fatalf("arena = %gx%g, want 400x700", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Energy.Max != 100 || cfg.Energy.ChargeFrames != 45 || cfg.Match.WinRounds != 3 {
		t.Fatalf("unexpected defaults: %+v %+v", cfg.Energy, cfg.Match)
	}
	if got := cfg.RoundEndTicks(); got != 90 {
		t.Fatalf("RoundEndTicks = %d, want 90", got)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Match.WinRounds != 3 {
		t.Fatalf("win rounds = %d, want 3", cfg.Match.WinRounds)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, "duel.toml", `
[match]
win_rounds = 5
round_end_delay = "2s"

[loop]
tick_rate = 30

[logging]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Match.WinRounds != 5 {
		t.Fatalf("win rounds = %d, want 5", cfg.Match.WinRounds)
	}
	if cfg.Match.RoundEndDelay != 2*time.Second {
		t.Fatalf("delay = %s, want 2s", cfg.Match.RoundEndDelay)
	}
	if got := cfg.RoundEndTicks(); got != 60 {
		t.Fatalf("RoundEndTicks = %d, want 60", got)
	}
	if cfg.Arena.Width != 400 {
		t.Fatalf("untouched arena width changed to %g", cfg.Arena.Width)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "duel.toml", "[match]\nwin_round = 5\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "match.win_round") {
		t.Fatalf("err = %v, want unknown key error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Arena.Width = 0 }},
		{"start above max", func(c *Config) { c.Energy.Start = 101 }},
		{"no charge frames", func(c *Config) { c.Energy.ChargeFrames = 0 }},
		{"no win rounds", func(c *Config) { c.Match.WinRounds = 0 }},
		{"spawn rate above one", func(c *Config) { c.Items.SpawnRate = 1.5 }},
		{"zero tick rate", func(c *Config) { c.Loop.TickRate = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("DUEL_TEST_KEY", "set")
	if got := GetEnv("DUEL_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("GetEnv = %q, want set", got)
	}
	if got := GetEnv("DUEL_TEST_KEY_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv = %q, want fallback", got)
	}
}

func TestFromEnv(t *testing.T) {
	cfgPath := writeFile(t, "duel.toml", "[match]\nwin_rounds = 2\n")
	t.Setenv(EnvConfigPath, cfgPath)
	t.Setenv(EnvArchetypesPath, "")

	cfg, roster, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Match.WinRounds != 2 {
		t.Fatalf("win rounds = %d, want 2", cfg.Match.WinRounds)
	}
	if len(roster.Archetypes) != 3 {
		t.Fatalf("roster size = %d, want 3", len(roster.Archetypes))
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "DUEL_TEST_DOTENV=from-file\nDUEL_TEST_DOTENV_SET=from-file\n")
	t.Setenv("DUEL_TEST_DOTENV_SET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("DUEL_TEST_DOTENV") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("DUEL_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("DUEL_TEST_DOTENV = %q, want from-file", got)
	}
	if got := os.Getenv("DUEL_TEST_DOTENV_SET"); got != "from-env" {
		t.Fatalf("existing variable overridden: %q", got)
	}
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
}

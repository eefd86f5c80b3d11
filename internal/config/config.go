package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable of the duel. Zero sections in a TOML file keep
// their compiled-in defaults.
type Config struct {
	Arena   ArenaConfig   `toml:"arena"`
	Energy  EnergyConfig  `toml:"energy"`
	Match   MatchConfig   `toml:"match"`
	Items   ItemsConfig   `toml:"items"`
	Loop    LoopConfig    `toml:"loop"`
	Logging LoggingConfig `toml:"logging"`
	Audio   AudioConfig   `toml:"audio"`
	SSH     SSHConfig     `toml:"ssh"`
	Web     WebConfig     `toml:"web"`
}

type ArenaConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type EnergyConfig struct {
	Max          float64 `toml:"max"`
	Start        float64 `toml:"start"`         // energy each character begins a round with
	ChargeFrames int     `toml:"charge_frames"` // ticks of held fire that upgrade a shot
}

type MatchConfig struct {
	WinRounds     int           `toml:"win_rounds"`
	RoundEndDelay time.Duration `toml:"round_end_delay"` // simulated time, converted to ticks
}

type ItemsConfig struct {
	SpawnRate float64 `toml:"spawn_rate"` // probability per tick while no item exists
}

type LoopConfig struct {
	TickRate int `toml:"tick_rate"` // ticks per second
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty logs to stderr
}

type AudioConfig struct {
	Enabled    bool `toml:"enabled"`
	SampleRate int  `toml:"sample_rate"`
}

type SSHConfig struct {
	Host        string        `toml:"host"`
	Port        string        `toml:"port"`
	HostKey     string        `toml:"host_key"`
	IdleTimeout time.Duration `toml:"idle_timeout"` // sessions without a keypress for this long are closed
}

type WebConfig struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	DisplayHost string `toml:"display_host"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Arena: ArenaConfig{
			Width:  400,
			Height: 700,
		},
		Energy: EnergyConfig{
			Max:          100,
			Start:        50,
			ChargeFrames: 45,
		},
		Match: MatchConfig{
			WinRounds:     3,
			RoundEndDelay: 1500 * time.Millisecond,
		},
		Items: ItemsConfig{
			SpawnRate: 0.003,
		},
		Loop: LoopConfig{
			TickRate: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKey:     "/app/keys/host_key",
			IdleTimeout: 2 * time.Minute,
		},
		Web: WebConfig{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "your-server.com",
		},
	}
}

// Load reads a TOML file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.decode(string(data)); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("arena must be positive, got %gx%g", c.Arena.Width, c.Arena.Height)
	case c.Energy.Max <= 0:
		return fmt.Errorf("energy.max must be positive, got %g", c.Energy.Max)
	case c.Energy.Start < 0 || c.Energy.Start > c.Energy.Max:
		return fmt.Errorf("energy.start %g outside [0, %g]", c.Energy.Start, c.Energy.Max)
	case c.Energy.ChargeFrames < 1:
		return fmt.Errorf("energy.charge_frames must be at least 1, got %d", c.Energy.ChargeFrames)
	case c.Match.WinRounds < 1:
		return fmt.Errorf("match.win_rounds must be at least 1, got %d", c.Match.WinRounds)
	case c.Match.RoundEndDelay < 0:
		return fmt.Errorf("match.round_end_delay must not be negative, got %s", c.Match.RoundEndDelay)
	case c.Items.SpawnRate < 0 || c.Items.SpawnRate > 1:
		return fmt.Errorf("items.spawn_rate %g outside [0, 1]", c.Items.SpawnRate)
	case c.Loop.TickRate < 1:
		return fmt.Errorf("loop.tick_rate must be at least 1, got %d", c.Loop.TickRate)
	case c.SSH.IdleTimeout < 0:
		return fmt.Errorf("ssh.idle_timeout must not be negative, got %s", c.SSH.IdleTimeout)
	}
	return nil
}

// TickInterval is the simulated duration of one tick.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Loop.TickRate)
}

// RoundEndTicks converts the round-end delay into a whole number of ticks
// (90 at the default 1.5s and 60 ticks per second).
func (c *Config) RoundEndTicks() int {
	return int(math.Round(c.Match.RoundEndDelay.Seconds() * float64(c.Loop.TickRate)))
}

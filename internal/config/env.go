// Package config loads the duel's tuning file, archetype roster and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables consulted by the binaries.
const (
	EnvConfigPath     = "DUEL_CONFIG"
	EnvArchetypesPath = "DUEL_ARCHETYPES"
	EnvDotEnvPath     = "DUEL_ENV_FILE"
)

// DefaultConfigPath is used when DUEL_CONFIG is unset.
const DefaultConfigPath = "config/duel.toml"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// LoadDotEnv sets variables from a dotenv file. Variables already in the
// environment win, and a missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv loads the tuning file and roster named by the environment, after
// applying an optional .env file (DUEL_ENV_FILE, default ".env").
func FromEnv() (*Config, *Roster, error) {
	if err := LoadDotEnv(GetEnv(EnvDotEnvPath, ".env")); err != nil {
		return nil, nil, err
	}
	cfg, err := Load(GetEnv(EnvConfigPath, DefaultConfigPath))
	if err != nil {
		return nil, nil, err
	}
	roster := DefaultRoster()
	if path := GetEnv(EnvArchetypesPath, ""); path != "" {
		if roster, err = LoadRoster(path); err != nil {
			return nil, nil, err
		}
	}
	return cfg, roster, nil
}

// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the wordle commands read from the environment.
// Flags override these values after ParseEnv.
type Config struct {
	Port       int    `env:"WORDLE_PORT" envDefault:"8080"`
	Database   string `env:"WORDLE_DATABASE" envDefault:"wordle.db"`
	LogLevel   string `env:"WORDLE_LOG_LEVEL" envDefault:"info"`
	DevLog     bool   `env:"WORDLE_DEV_LOG" envDefault:"false"`
	Timezone   string `env:"WORDLE_TIMEZONE" envDefault:"Local"`
	WordLength int    `env:"WORDLE_WORD_LENGTH" envDefault:"5"`
	GuessRate  int    `env:"WORDLE_GUESS_RATE" envDefault:"10"`

	SeedFile  string `env:"WORDLE_SEED_FILE"`
	WatchSeed bool   `env:"WORDLE_WATCH_SEED" envDefault:"false"`

	// Gemini clues are enabled when a project is set.
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCPRegion    string `env:"GCP_REGION"`
	ClueModel    string `env:"WORDLE_CLUE_MODEL"`

	OTelEndpoint string `env:"WORDLE_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves Timezone. "Local" and "" mean the process zone.
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Validate checks values the commands cannot recover from.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.WordLength < 0 {
		return fmt.Errorf("invalid word length %d", c.WordLength)
	}
	if c.WatchSeed && c.SeedFile == "" {
		return fmt.Errorf("watching the seed file requires WORDLE_SEED_FILE")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

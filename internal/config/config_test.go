package config

import (
	"os"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func TestParseEnvDefaults(t *testing.T) {
	for _, k := range []string{"WORDLE_PORT", "WORDLE_DATABASE", "WORDLE_LOG_LEVEL", "WORDLE_TIMEZONE", "WORDLE_WORD_LENGTH", "WORDLE_SEED_FILE", "WORDLE_WATCH_SEED", "WORDLE_GUESS_RATE", "GCP_PROJECT_ID"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := ParseEnv()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "wordle.db", cfg.Database)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 5, cfg.WordLength)
	require.Equal(t, 10, cfg.GuessRate)
	require.Empty(t, cfg.GCPProjectID)
	require.NoError(t, cfg.Validate())
}

func TestParseEnvReadsVariables(t *testing.T) {
	t.Setenv("WORDLE_PORT", "9000")
	t.Setenv("WORDLE_DATABASE", "/tmp/w.db")
	t.Setenv("WORDLE_TIMEZONE", "Europe/Paris")
	t.Setenv("WORDLE_WATCH_SEED", "true")
	t.Setenv("WORDLE_SEED_FILE", "seed.yaml")
	t.Setenv("GCP_PROJECT_ID", "demo")

	cfg, err := ParseEnv()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, "/tmp/w.db", cfg.Database)
	require.True(t, cfg.WatchSeed)
	require.Equal(t, "demo", cfg.GCPProjectID)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, "Europe/Paris", loc.String())
}

func TestParseEnvRejectsBadNumber(t *testing.T) {
	t.Setenv("WORDLE_PORT", "eighty")
	_, err := ParseEnv()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{Port: 8080, Timezone: "UTC", WordLength: 5}
	require.NoError(t, base.Validate())

	bad := base
	bad.Port = 0
	require.Error(t, bad.Validate())

	bad = base
	bad.WatchSeed = true
	require.Error(t, bad.Validate())

	bad = base
	bad.Timezone = "Mars/Olympus"
	require.Error(t, bad.Validate())

	loc, err := Config{Timezone: "Local"}.Location()
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)
}

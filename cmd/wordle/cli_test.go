package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// cli runs the root command against a SQLite file shared across invocations.
type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("WORDLE_TIMEZONE", "UTC")
	t.Setenv("WORDLE_LOG_LEVEL", "error")
	return &cli{t: t, db: filepath.Join(t.TempDir(), "wordle.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--database", c.db}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "wordle %v", args)
	return out
}

func TestDayCommand(t *testing.T) {
	c := newCLI(t)
	require.Equal(t, "2026-10-17\t10172026\t1248\n", c.mustRun("day", "2026-10-17"))
	require.Equal(t, "2024-02-14\t2142024\t2304\n", c.mustRun("day", "02142024"))
	require.Equal(t, "2024-02-14\t2142024\t2304\n", c.mustRun("day", "2142024"))

	_, err := c.run("day", "tomorrow")
	require.Error(t, err)
}

func TestWordsAndGuessCommands(t *testing.T) {
	c := newCLI(t)

	require.Equal(t, "added CRANE\nadded TRACE\n", c.mustRun("words", "add", "crane", "trace"))
	_, err := c.run("words", "add", "CRANE")
	require.Error(t, err)

	require.Equal(t, "valid\n", c.mustRun("words", "check", "Trace"))
	_, err = c.run("words", "check", "plume")
	require.Error(t, err)

	require.Equal(t, "CRANE\n", c.mustRun("words", "list", "--limit", "1"))
	require.Equal(t, "CRANE\nTRACE\n", c.mustRun("words", "list"))

	require.Equal(t, "answer for 2026-10-17 set (identifier 1248)\n",
		c.mustRun("answer", "set", "crane", "--date", "2026-10-17"))

	out := c.mustRun("guess", "trace", "--date", "2026-10-17")
	require.Equal(t, "T\tabsent\nR\tcorrect\nA\tcorrect\nC\tpresent\nE\tcorrect\n.GGYG\n", out)

	out = c.mustRun("guess", "crane", "--date", "10172026", "--json")
	require.Contains(t, out, `"is_exact_match": true`)
	require.Contains(t, out, `"identifier": 1248`)

	_, err = c.run("guess", "crane", "--date", "2026-10-18")
	require.Error(t, err)

	require.Equal(t, "removed TRACE\n", c.mustRun("words", "remove", "trace"))
	_, err = c.run("words", "remove", "trace")
	require.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	c := newCLI(t)
	c.mustRun("words", "add", "crane")

	bank := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(bank, []byte(`words: [speed, erase]
answers:
  - date: 2026-10-18
    word: speed
`), 0o600))

	require.Equal(t, "2 words added, 1 already present, 1 answers set\n", c.mustRun("seed", bank))

	out := c.mustRun("guess", "erase", "--date", "2026-10-18")
	require.Contains(t, out, "Y..YY\n")
	require.NotContains(t, out, "exact match")

	_, err := c.run("seed", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestInvalidConfiguration(t *testing.T) {
	c := newCLI(t)
	t.Setenv("WORDLE_TIMEZONE", "Mars/Olympus")
	_, err := c.run("day")
	require.Error(t, err)
}

func TestRunExitCode(t *testing.T) {
	c := newCLI(t)

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--database", c.db, "day", "2026-10-17"})
	require.Equal(t, 0, run(context.Background(), root))

	root = newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--database", c.db, "day", "tomorrow"})
	require.Equal(t, 1, run(context.Background(), root))
}

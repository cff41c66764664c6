package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/game"
	"github.com/bodul/wordle/internal/storage/memory"
)

const sampleBank = `
words:
  - crane
  - trace
  - CRANE
answers:
  - date: 2026-10-17
    word: speed
  - date: "10182026"
    word: crane
`

func newTarget(t *testing.T) (*game.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	selector := daily.NewSelector(time.UTC)
	return game.NewService(store, store, selector, game.WithWordLength(5)), store
}

func TestParse(t *testing.T) {
	bank, err := Parse([]byte(sampleBank))
	require.NoError(t, err)
	require.Equal(t, []string{"crane", "trace", "CRANE"}, bank.Words)
	require.Equal(t, []AnswerEntry{
		{Date: "2026-10-17", Word: "speed"},
		{Date: "10182026", Word: "crane"},
	}, bank.Answers)
}

func TestParseRejectsBadBanks(t *testing.T) {
	for name, data := range map[string]string{
		"unknown field":  "words: [CRANE]\nscores: [1]\n",
		"missing word":   "answers:\n  - date: 2026-10-17\n",
		"not a list":     "words: CRANE\n",
		"malformed yaml": "words: [CRANE\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	bank, err := Parse(nil)
	require.NoError(t, err)
	require.Empty(t, bank.Words)
}

func TestApply(t *testing.T) {
	bank, err := Parse([]byte(sampleBank))
	require.NoError(t, err)
	svc, store := newTarget(t)
	ctx := context.Background()

	report, err := Apply(ctx, bank, svc, time.UTC, zaptest.NewLogger(t))
	require.NoError(t, err)
	// crane, trace, then speed from the answers; CRANE twice is a duplicate.
	require.Equal(t, Report{WordsAdded: 3, WordsSkipped: 2, Answers: 2}, report)

	a, err := store.GetAnswer(ctx, daily.Identifier(1248))
	require.NoError(t, err)
	require.Equal(t, "SPEED", a.Word)
	a, err = store.GetAnswer(ctx, daily.Identifier(1241))
	require.NoError(t, err)
	require.Equal(t, "CRANE", a.Word)

	// A second run changes nothing but the answers' timestamps.
	report, err = Apply(ctx, bank, svc, time.UTC, nil)
	require.NoError(t, err)
	require.Equal(t, Report{WordsAdded: 0, WordsSkipped: 5, Answers: 2}, report)
}

func TestApplyStopsOnInvalidEntries(t *testing.T) {
	svc, _ := newTarget(t)

	_, err := Apply(context.Background(), Bank{Words: []string{"TOOLONG"}}, svc, time.UTC, nil)
	require.Error(t, err)

	_, err = Apply(context.Background(), Bank{Answers: []AnswerEntry{{Date: "tomorrow", Word: "CRANE"}}}, svc, time.UTC, nil)
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleBank), 0o644))

	bank, err := Load(path)
	require.NoError(t, err)
	require.Len(t, bank.Words, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

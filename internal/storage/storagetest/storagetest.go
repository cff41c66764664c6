// Package storagetest runs the storage contract against an implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/storage"
)

// Run exercises every storage.Store method against stores built by open.
// Each subtest gets a fresh store.
func Run(t *testing.T, open func(t *testing.T) storage.Store) {
	t.Helper()

	t.Run("answer not found", func(t *testing.T) {
		s := open(t)
		_, err := s.GetAnswer(context.Background(), 42)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get missing answer error = %v, want %v", err, storage.ErrNotFound)
		}
	})

	t.Run("set then get answer", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		id := daily.Identifier(1248)

		require.NoError(t, s.SetAnswer(ctx, id, "CRANE"))
		got, err := s.GetAnswer(ctx, id)
		require.NoError(t, err)
		require.Equal(t, id, got.ID)
		require.Equal(t, "CRANE", got.Word)
		require.False(t, got.UpdatedAt.IsZero())

		require.NoError(t, s.SetAnswer(ctx, id, "SPEED"))
		got, err = s.GetAnswer(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "SPEED", got.Word)

		_, err = s.GetAnswer(ctx, id+1)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("word list", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		ok, err := s.ContainsWord(ctx, "CRANE")
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, s.AddWord(ctx, "CRANE"))
		require.NoError(t, s.AddWord(ctx, "BRAKE"))
		require.ErrorIs(t, s.AddWord(ctx, "CRANE"), storage.ErrAlreadyExists)

		ok, err = s.ContainsWord(ctx, "CRANE")
		require.NoError(t, err)
		require.True(t, ok)

		n, err := s.CountWords(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, n)

		list, err := s.ListWords(ctx, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "BRAKE", list[0].Text)
		require.Equal(t, "CRANE", list[1].Text)

		list, err = s.ListWords(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)

		require.NoError(t, s.RemoveWord(ctx, "CRANE"))
		require.ErrorIs(t, s.RemoveWord(ctx, "CRANE"), storage.ErrNotFound)

		ok, err = s.ContainsWord(ctx, "CRANE")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("canceled context", func(t *testing.T) {
		s := open(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.GetAnswer(ctx, 1)
		require.ErrorIs(t, err, context.Canceled)
		require.ErrorIs(t, s.AddWord(ctx, "CRANE"), context.Canceled)
	})
}

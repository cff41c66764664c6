// Package storage defines persistence contracts for answers and the word list.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/bodul/wordle/internal/daily"
)

var (
	// ErrNotFound indicates a requested answer or word is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained word already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Answer binds an identifier to the secret word of a day.
type Answer struct {
	ID        daily.Identifier `json:"id"`
	Word      string           `json:"word"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Word is one admissible guess.
type Word struct {
	Text      string    `json:"word"`
	CreatedAt time.Time `json:"created_at"`
}

// AnswerStore resolves and rebinds daily answers.
type AnswerStore interface {
	// GetAnswer returns ErrNotFound when no word is bound to id.
	GetAnswer(ctx context.Context, id daily.Identifier) (Answer, error)
	// SetAnswer binds word to id, replacing any previous binding.
	SetAnswer(ctx context.Context, id daily.Identifier, word string) error
}

// WordStore holds the list of admissible guesses. Words are stored
// normalized; implementations compare them exactly.
type WordStore interface {
	ContainsWord(ctx context.Context, word string) (bool, error)
	// AddWord returns ErrAlreadyExists for a duplicate.
	AddWord(ctx context.Context, word string) error
	// RemoveWord returns ErrNotFound when the word is not in the list.
	RemoveWord(ctx context.Context, word string) error
	// ListWords returns up to limit words in alphabetical order; limit <= 0 means all.
	ListWords(ctx context.Context, limit int) ([]Word, error)
	CountWords(ctx context.Context) (int, error)
}

// Store is the full persistence surface used by the game service.
type Store interface {
	AnswerStore
	WordStore
	Close() error
}

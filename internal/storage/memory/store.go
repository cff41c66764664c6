// Package memory keeps answers and words in process memory.
// It backs tests and the server when no database path is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/storage"
)

// Store holds all answers and words in memory.
type Store struct {
	mu      sync.RWMutex
	answers map[daily.Identifier]storage.Answer
	words   map[string]time.Time
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		answers: make(map[daily.Identifier]storage.Answer),
		words:   make(map[string]time.Time),
		now:     time.Now,
	}
}

// GetAnswer returns the answer bound to id.
func (s *Store) GetAnswer(ctx context.Context, id daily.Identifier) (storage.Answer, error) {
	if err := ctx.Err(); err != nil {
		return storage.Answer{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.answers[id]
	if !ok {
		return storage.Answer{}, storage.ErrNotFound
	}
	return a, nil
}

// SetAnswer binds word to id.
func (s *Store) SetAnswer(ctx context.Context, id daily.Identifier, word string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.answers[id] = storage.Answer{ID: id, Word: word, UpdatedAt: s.now().UTC()}
	s.mu.Unlock()
	return nil
}

// ContainsWord reports whether word is in the list.
func (s *Store) ContainsWord(ctx context.Context, word string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.words[word]
	return ok, nil
}

// AddWord inserts word, failing on duplicates.
func (s *Store) AddWord(ctx context.Context, word string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[word]; ok {
		return storage.ErrAlreadyExists
	}
	s.words[word] = s.now().UTC()
	return nil
}

// RemoveWord deletes word.
func (s *Store) RemoveWord(ctx context.Context, word string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[word]; !ok {
		return storage.ErrNotFound
	}
	delete(s.words, word)
	return nil
}

// ListWords returns words in alphabetical order.
func (s *Store) ListWords(ctx context.Context, limit int) ([]storage.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	list := make([]storage.Word, 0, len(s.words))
	for w, at := range s.words {
		list = append(list, storage.Word{Text: w, CreatedAt: at})
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// CountWords returns the size of the word list.
func (s *Store) CountWords(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words), nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

var _ storage.Store = (*Store)(nil)

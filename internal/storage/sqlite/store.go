// Package sqlite provides a SQLite-backed answer and word-list store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/storage"
	"github.com/bodul/wordle/internal/storage/sqlite/migrations"
)

// Store persists answers and words in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetAnswer returns the word bound to id.
func (s *Store) GetAnswer(ctx context.Context, id daily.Identifier) (storage.Answer, error) {
	if err := ctx.Err(); err != nil {
		return storage.Answer{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Answer{}, fmt.Errorf("storage is not configured")
	}

	var (
		answer    storage.Answer
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT answer_id, word, updated_at FROM answers WHERE answer_id = ? LIMIT 1`,
		int(id),
	).Scan(&answer.ID, &answer.Word, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Answer{}, storage.ErrNotFound
		}
		return storage.Answer{}, fmt.Errorf("get answer %d: %w", id, err)
	}
	answer.UpdatedAt = fromMillis(updatedAt)
	return answer, nil
}

// SetAnswer inserts or replaces the word bound to id.
func (s *Store) SetAnswer(ctx context.Context, id daily.Identifier, word string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if word == "" {
		return fmt.Errorf("answer word is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO answers (answer_id, word, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(answer_id) DO UPDATE SET word = excluded.word, updated_at = excluded.updated_at`,
		int(id), word, toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("set answer %d: %w", id, err)
	}
	return nil
}

// ContainsWord reports whether word is in the list.
func (s *Store) ContainsWord(ctx context.Context, word string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}

	var found int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM words WHERE word = ? LIMIT 1`, word).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup word: %w", err)
	}
	return true, nil
}

// AddWord inserts word into the list.
func (s *Store) AddWord(ctx context.Context, word string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO words (word, created_at) VALUES (?, ?)`,
		word, toMillis(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("add word: %w", err)
	}
	return nil
}

// RemoveWord deletes word from the list.
func (s *Store) RemoveWord(ctx context.Context, word string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM words WHERE word = ?`, word)
	if err != nil {
		return fmt.Errorf("remove word: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove word rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListWords returns up to limit words in alphabetical order.
func (s *Store) ListWords(ctx context.Context, limit int) ([]storage.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT word, created_at FROM words ORDER BY word LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var list []storage.Word
	for rows.Next() {
		var (
			w         storage.Word
			createdAt int64
		)
		if err := rows.Scan(&w.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		w.CreatedAt = fromMillis(createdAt)
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return list, nil
}

// CountWords returns the size of the word list.
func (s *Store) CountWords(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.Store = (*Store)(nil)

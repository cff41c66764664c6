// Package seed loads a YAML bank of words and daily answers into the game.
//
// A bank looks like:
//
//	words: [CRANE, TRACE, SPEED]
//	answers:
//	  - date: 2026-10-17
//	    word: CRANE
//
// Answers are keyed by date, never by identifier, so the day encoding stays
// owned by package daily.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/game"
	"github.com/bodul/wordle/internal/storage"
)

// Bank is the decoded seed file.
type Bank struct {
	Words   []string      `yaml:"words"`
	Answers []AnswerEntry `yaml:"answers"`
}

// AnswerEntry binds a word to a day.
type AnswerEntry struct {
	Date string `yaml:"date"`
	Word string `yaml:"word"`
}

// Target receives the bank. *game.Service implements it.
type Target interface {
	AddWord(ctx context.Context, w string) (string, error)
	SetAnswer(ctx context.Context, w string, date *time.Time) (game.Day, error)
}

// Report counts what Apply changed.
type Report struct {
	WordsAdded   int
	WordsSkipped int
	Answers      int
}

// Load reads and decodes a bank file.
func Load(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a bank and rejects unknown fields.
func Parse(data []byte) (Bank, error) {
	var bank Bank
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&bank); err != nil && !errors.Is(err, io.EOF) {
		return Bank{}, fmt.Errorf("parse seed file: %w", err)
	}
	for i, a := range bank.Answers {
		if a.Date == "" || a.Word == "" {
			return Bank{}, fmt.Errorf("answer %d: date and word are required", i)
		}
	}
	return bank, nil
}

// Apply adds every word, then every answer, to target. Answer words are also
// added to the word list so they can be guessed. Words already present are
// counted as skipped; Apply can run again on the same bank.
func Apply(ctx context.Context, bank Bank, target Target, loc *time.Location, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var report Report

	add := func(w string) error {
		_, err := target.AddWord(ctx, w)
		switch {
		case err == nil:
			report.WordsAdded++
		case errors.Is(err, storage.ErrAlreadyExists):
			report.WordsSkipped++
		default:
			return err
		}
		return nil
	}

	for _, w := range bank.Words {
		if err := add(w); err != nil {
			return report, fmt.Errorf("seed word %q: %w", w, err)
		}
	}

	for _, a := range bank.Answers {
		date, err := daily.ParseDate(a.Date, loc)
		if err != nil {
			return report, fmt.Errorf("seed answer: %w", err)
		}
		if err := add(a.Word); err != nil {
			return report, fmt.Errorf("seed answer word %q: %w", a.Word, err)
		}
		day, err := target.SetAnswer(ctx, a.Word, &date)
		if err != nil {
			return report, fmt.Errorf("seed answer for %s: %w", a.Date, err)
		}
		logger.Debug("seeded answer", zap.String("date", day.Date), zap.Int("identifier", int(day.Identifier)))
		report.Answers++
	}

	logger.Info("seed applied",
		zap.Int("words_added", report.WordsAdded),
		zap.Int("words_skipped", report.WordsSkipped),
		zap.Int("answers", report.Answers),
	)
	return report, nil
}

// Package game plays the daily word: it resolves the day's secret word,
// checks that a guess is admissible and classifies it. It also administers
// the word list and the answer table.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/storage"
	"github.com/bodul/wordle/internal/word"
)

const tracerName = "github.com/bodul/wordle/internal/game"

// Clues produces a short hint for a secret word without revealing it.
type Clues interface {
	Clue(ctx context.Context, secret string) (string, error)
}

// Day identifies the answer slot of a calendar day.
type Day struct {
	Date       string           `json:"date"`
	Encoded    int              `json:"encoded"`
	Identifier daily.Identifier `json:"identifier"`
}

// Outcome is the result of one guess.
type Outcome struct {
	Day
	word.Result
}

// Service composes the selector, the stores and the evaluator.
type Service struct {
	answers    storage.AnswerStore
	words      storage.WordStore
	selector   daily.Selector
	wordLength int
	logger     *zap.Logger
	tracer     trace.Tracer
	events     Publisher
	clues      Clues
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithPublisher sets the receiver of change events.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithClues enables Clue.
func WithClues(c Clues) Option {
	return func(s *Service) { s.clues = c }
}

// WithWordLength restricts the word list and answers to n letters.
// Zero accepts any length; guesses are always checked against the secret.
func WithWordLength(n int) Option {
	return func(s *Service) { s.wordLength = n }
}

// NewService creates a service over the given stores.
func NewService(answers storage.AnswerStore, words storage.WordStore, selector daily.Selector, opts ...Option) *Service {
	s := &Service{
		answers:  answers,
		words:    words,
		selector: selector,
		logger:   zap.NewNop(),
		tracer:   otel.Tracer(tracerName),
		events:   nopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Day returns the answer slot for date, or for today when date is nil.
func (s *Service) Day(date *time.Time) Day {
	d := s.selector.Day(date)
	encoded := daily.Encode(d)
	return Day{
		Date:       d.Format(time.DateOnly),
		Encoded:    encoded,
		Identifier: daily.IdentifierFor(encoded),
	}
}

// Guess classifies guess against the secret word of date (today when nil).
//
// Errors: word.ErrEmptyInput, ErrNoAnswerForDay, word.ErrLengthMismatch,
// ErrWordNotAllowed, or a wrapped store error.
func (s *Service) Guess(ctx context.Context, guess string, date *time.Time) (out Outcome, err error) {
	day := s.Day(date)
	ctx, span := s.tracer.Start(ctx, "game.Guess", trace.WithAttributes(
		attribute.String("wordle.date", day.Date),
		attribute.Int("wordle.identifier", int(day.Identifier)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Bool("wordle.exact_match", out.ExactMatch))
		}
		span.End()
	}()

	guess = word.Normalize(guess)
	if guess == "" {
		return Outcome{}, word.ErrEmptyInput
	}

	secret, err := s.secret(ctx, day)
	if err != nil {
		return Outcome{}, err
	}
	if word.Len(guess) != word.Len(secret) {
		return Outcome{}, fmt.Errorf("%w: guess has %d letters, want %d", word.ErrLengthMismatch, word.Len(guess), word.Len(secret))
	}

	ok, err := s.words.ContainsWord(ctx, guess)
	if err != nil {
		return Outcome{}, fmt.Errorf("check word list: %w", err)
	}
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrWordNotAllowed, guess)
	}

	res, err := word.Evaluate(secret, guess)
	if err != nil {
		return Outcome{}, err
	}
	s.logger.Debug("guess evaluated",
		zap.String("date", day.Date),
		zap.Int("identifier", int(day.Identifier)),
		zap.String("pattern", res.Pattern()),
		zap.Bool("exact", res.ExactMatch),
	)
	return Outcome{Day: day, Result: res}, nil
}

func (s *Service) secret(ctx context.Context, day Day) (string, error) {
	answer, err := s.answers.GetAnswer(ctx, day.Identifier)
	if errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("%w: %s (identifier %d)", ErrNoAnswerForDay, day.Date, day.Identifier)
	}
	if err != nil {
		return "", fmt.Errorf("get answer: %w", err)
	}
	secret := word.Normalize(answer.Word)
	if secret == "" {
		return "", fmt.Errorf("%w: %s has an empty answer", ErrNoAnswerForDay, day.Date)
	}
	return secret, nil
}

// CheckWord reports whether w may be guessed. It returns nil when w is in the
// word list, ErrWordNotAllowed when it is not.
func (s *Service) CheckWord(ctx context.Context, w string) error {
	w, err := s.admissible(w)
	if err != nil {
		return err
	}
	ok, err := s.words.ContainsWord(ctx, w)
	if err != nil {
		return fmt.Errorf("check word list: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrWordNotAllowed, w)
	}
	return nil
}

// AddWord adds w to the word list and returns its normalized form.
// A duplicate yields storage.ErrAlreadyExists.
func (s *Service) AddWord(ctx context.Context, w string) (string, error) {
	w, err := s.admissible(w)
	if err != nil {
		return "", err
	}
	if err := s.words.AddWord(ctx, w); err != nil {
		return "", fmt.Errorf("add word %s: %w", w, err)
	}
	s.logger.Info("word added", zap.String("word", w))
	s.events.Publish(Event{Type: EventWordAdded, Word: w})
	return w, nil
}

// RemoveWord deletes w from the word list. A missing word yields
// storage.ErrNotFound.
func (s *Service) RemoveWord(ctx context.Context, w string) (string, error) {
	w = word.Normalize(w)
	if w == "" {
		return "", word.ErrEmptyInput
	}
	if err := s.words.RemoveWord(ctx, w); err != nil {
		return "", fmt.Errorf("remove word %s: %w", w, err)
	}
	s.logger.Info("word removed", zap.String("word", w))
	s.events.Publish(Event{Type: EventWordRemoved, Word: w})
	return w, nil
}

// ListWords returns up to limit words of the list.
func (s *Service) ListWords(ctx context.Context, limit int) ([]storage.Word, error) {
	return s.words.ListWords(ctx, limit)
}

// CountWords returns the size of the word list.
func (s *Service) CountWords(ctx context.Context) (int, error) {
	return s.words.CountWords(ctx)
}

// SetAnswer binds w as the secret word of date (today when nil).
func (s *Service) SetAnswer(ctx context.Context, w string, date *time.Time) (Day, error) {
	w, err := s.admissible(w)
	if err != nil {
		return Day{}, err
	}
	day := s.Day(date)
	if err := s.answers.SetAnswer(ctx, day.Identifier, w); err != nil {
		return Day{}, fmt.Errorf("set answer for %s: %w", day.Date, err)
	}
	s.logger.Info("answer updated",
		zap.String("date", day.Date),
		zap.Int("identifier", int(day.Identifier)),
	)
	id := day.Identifier
	s.events.Publish(Event{Type: EventAnswerUpdated, Date: day.Date, Identifier: &id})
	return day, nil
}

// Clue asks the configured clue generator for a hint about the secret word
// of date (today when nil).
func (s *Service) Clue(ctx context.Context, date *time.Time) (string, error) {
	if s.clues == nil {
		return "", ErrCluesDisabled
	}
	secret, err := s.secret(ctx, s.Day(date))
	if err != nil {
		return "", err
	}
	clue, err := s.clues.Clue(ctx, secret)
	if err != nil {
		return "", fmt.Errorf("generate clue: %w", err)
	}
	return clue, nil
}

func (s *Service) admissible(w string) (string, error) {
	w = word.Normalize(w)
	if w == "" {
		return "", word.ErrEmptyInput
	}
	if s.wordLength > 0 && word.Len(w) != s.wordLength {
		return "", fmt.Errorf("%w: %s has %d letters, want %d", word.ErrLengthMismatch, w, word.Len(w), s.wordLength)
	}
	return w, nil
}

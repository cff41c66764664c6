// Package word compares guesses against a secret word.
//
// Evaluate is a pure function: it holds no state between calls and is safe
// for concurrent use.
package word

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput indicates the secret or the guess is empty.
	ErrEmptyInput = errors.New("empty input")
	// ErrLengthMismatch indicates the guess and the secret differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
)

// LetterResult is the classification of one guess position.
type LetterResult struct {
	Letter         string         `json:"letter"`
	Classification Classification `json:"classification"`
}

// Result is the outcome of comparing a guess to the secret word.
// Letters is index-aligned with the guess.
type Result struct {
	Letters    []LetterResult `json:"classification"`
	ExactMatch bool           `json:"is_exact_match"`
}

// Classifications returns the per-position verdicts without the letters.
func (r Result) Classifications() []Classification {
	out := make([]Classification, len(r.Letters))
	for i, l := range r.Letters {
		out[i] = l.Classification
	}
	return out
}

// Pattern renders the result as one character per position:
// G for correct, Y for present, '.' for absent.
func (r Result) Pattern() string {
	var b strings.Builder
	b.Grow(len(r.Letters))
	for _, l := range r.Letters {
		b.WriteByte(l.Classification.symbol())
	}
	return b.String()
}

// Evaluate classifies every position of guess against secret.
//
// Exact matches are resolved first and consume the secret's letter tally, so
// a letter is never credited more times than it appears in the secret. Both
// inputs are compared as given; callers normalize case beforehand.
func Evaluate(secret, guess string) (Result, error) {
	if secret == "" || guess == "" {
		return Result{}, ErrEmptyInput
	}
	s := []rune(secret)
	g := []rune(guess)
	if len(s) != len(g) {
		return Result{}, fmt.Errorf("%w: guess has %d letters, want %d", ErrLengthMismatch, len(g), len(s))
	}

	remaining := make(map[rune]int, len(s))
	for _, r := range s {
		remaining[r]++
	}

	letters := make([]LetterResult, len(g))
	exact := true
	for i, r := range g {
		letters[i].Letter = string(r)
		if r == s[i] {
			letters[i].Classification = Correct
			remaining[r]--
		} else {
			exact = false
		}
	}

	if !exact {
		for i, r := range g {
			if letters[i].Classification == Correct {
				continue
			}
			if remaining[r] > 0 {
				letters[i].Classification = Present
				remaining[r]--
			}
		}
	}

	return Result{Letters: letters, ExactMatch: exact}, nil
}

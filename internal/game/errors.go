package game

import "errors"

var (
	// ErrNoAnswerForDay indicates no secret word is bound to the day's identifier.
	ErrNoAnswerForDay = errors.New("no answer for day")
	// ErrWordNotAllowed indicates the guess is not in the word list.
	ErrWordNotAllowed = errors.New("word not in word list")
	// ErrCluesDisabled indicates no clue generator is configured.
	ErrCluesDisabled = errors.New("clues are not configured")
)

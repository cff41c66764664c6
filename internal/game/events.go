package game

import "github.com/bodul/wordle/internal/daily"

// Event types published after administrative changes.
const (
	EventAnswerUpdated = "answer_updated"
	EventWordAdded     = "word_added"
	EventWordRemoved   = "word_removed"
)

// Event topics group event types for subscribers.
const (
	TopicAnswers = "answers"
	TopicWords   = "words"
)

// Event describes a change to the answers or the word list.
// Answer events never carry the secret word.
type Event struct {
	Type       string            `json:"type"`
	Date       string            `json:"date,omitempty"`
	Identifier *daily.Identifier `json:"identifier,omitempty"`
	Word       string            `json:"word,omitempty"`
}

// Topic returns the subscription topic of the event.
func (e Event) Topic() string {
	if e.Type == EventAnswerUpdated {
		return TopicAnswers
	}
	return TopicWords
}

// Publisher receives events. Publish must not block.
type Publisher interface {
	Publish(Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

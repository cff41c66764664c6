package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bodul/wordle/internal/daily"
	"github.com/bodul/wordle/internal/game"
)

func TestBroadcasterRegisterUnregister(t *testing.T) {
	b := NewBroadcaster(nil)

	c1 := b.Register(game.TopicWords)
	c2 := b.Register(game.TopicWords)
	c3 := b.Register(game.TopicAnswers)
	all := b.Register("")

	if n := b.ClientCount(game.TopicWords); n != 3 {
		t.Fatalf("expected 3 clients for words, got %d", n)
	}
	if n := b.ClientCount(game.TopicAnswers); n != 2 {
		t.Fatalf("expected 2 clients for answers, got %d", n)
	}

	b.Unregister(c1)
	if n := b.ClientCount(game.TopicWords); n != 2 {
		t.Fatalf("expected 2 clients for words after unregister, got %d", n)
	}

	b.Unregister(c2)
	b.Unregister(c3)
	b.Unregister(all)
	if b.ClientCount(game.TopicWords) != 0 || b.ClientCount(game.TopicAnswers) != 0 {
		t.Fatal("expected 0 clients after full unregister")
	}
}

func TestBroadcasterDoubleUnregister(t *testing.T) {
	b := NewBroadcaster(nil)
	c := b.Register(game.TopicWords)
	b.Unregister(c)
	b.Unregister(c) // should not panic
}

func TestPublish(t *testing.T) {
	b := NewBroadcaster(nil)

	words := b.Register(game.TopicWords)
	answers := b.Register(game.TopicAnswers)
	defer b.Unregister(words)
	defer b.Unregister(answers)

	b.Publish(game.Event{Type: game.EventWordAdded, Word: "PLUME"})

	select {
	case msg := <-words.ch:
		if msg != `{"type":"word_added","word":"PLUME"}` {
			t.Fatalf("unexpected message %q", msg)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("words client did not receive message")
	}

	// answers client is on another topic, should not receive.
	select {
	case <-answers.ch:
		t.Fatal("answers client should not receive word events")
	case <-time.After(50 * time.Millisecond):
		// ok
	}

	id := daily.Identifier(0)
	b.Publish(game.Event{Type: game.EventAnswerUpdated, Date: "2026-10-17", Identifier: &id})
	select {
	case msg := <-answers.ch:
		if msg != `{"type":"answer_updated","date":"2026-10-17","identifier":0}` {
			t.Fatalf("unexpected message %q", msg)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("answers client did not receive message")
	}
}

func TestBroadcastSkipsFullChannel(t *testing.T) {
	b := NewBroadcaster(nil)
	c := b.Register(game.TopicWords)

	// Fill the channel.
	for range sseChannelBuffer {
		b.Broadcast(game.TopicWords, "fill")
	}

	// This should not block.
	b.Broadcast(game.TopicWords, "overflow")

	b.Unregister(c)
}

func TestBroadcasterConcurrent(t *testing.T) {
	b := NewBroadcaster(nil)
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			topic := game.TopicWords
			if i%2 == 0 {
				topic = game.TopicAnswers
			}
			c := b.Register(topic)
			b.Broadcast(topic, "msg")
			b.ClientCount(topic)
			b.Unregister(c)
		}(i)
	}
	wg.Wait()

	if b.ClientCount(game.TopicWords) != 0 || b.ClientCount(game.TopicAnswers) != 0 {
		t.Fatal("expected 0 clients after concurrent test")
	}
}

func TestEventsStream(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/api/events?topic=words", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		srv.ServeHTTP(w, req)
		close(done)
	}()

	// Wait for the subscription before changing the word list.
	deadline := time.Now().Add(time.Second)
	for srv.sse.ClientCount(game.TopicWords) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if code := do(srv, "POST", "/api/words", `{"word":"plume"}`).Code; code != http.StatusCreated {
		t.Fatalf("add word: expected 201, got %d", code)
	}

	// Give the stream a moment to flush, then disconnect.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := w.Body.String()
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}
	if !strings.Contains(body, `"type":"connected"`) {
		t.Fatalf("missing connected event in %q", body)
	}
	if !strings.Contains(body, `data: {"type":"word_added","word":"PLUME"}`) {
		t.Fatalf("missing word_added event in %q", body)
	}
}

func TestEventsRejectsUnknownTopic(t *testing.T) {
	srv, _ := newTestServer(t)
	if w := do(srv, "GET", "/api/events?topic=scores", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bodul/wordle/internal/game"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// client represents a single SSE connection. An empty topic receives every event.
type client struct {
	ch    chan string
	topic string
}

func (c *client) wants(topic string) bool {
	return c.topic == "" || c.topic == topic
}

// Broadcaster fans game events out to SSE clients grouped by topic.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  *zap.Logger
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

// Register adds a client for a topic and returns it.
func (b *Broadcaster) Register(topic string) *client {
	c := &client{
		ch:    make(chan string, sseChannelBuffer),
		topic: topic,
	}
	b.mu.Lock()
	b.clients[c] = struct{}{}
	b.mu.Unlock()
	return c
}

// Unregister removes a client and closes its channel.
func (b *Broadcaster) Unregister(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.ch)
	}
	b.mu.Unlock()
}

// Broadcast sends a message to all clients subscribed to topic.
func (b *Broadcaster) Broadcast(topic, data string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for c := range b.clients {
		if !c.wants(topic) {
			continue
		}
		select {
		case c.ch <- data:
		default:
			// Channel full, skip slow client.
		}
	}
}

// Publish implements game.Publisher.
func (b *Broadcaster) Publish(e game.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		b.logger.Error("marshal event", zap.String("type", e.Type), zap.Error(err))
		return
	}
	b.Broadcast(e.Topic(), string(data))
}

// ClientCount returns the number of clients that would receive topic.
func (b *Broadcaster) ClientCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for c := range b.clients {
		if c.wants(topic) {
			n++
		}
	}
	return n
}

// ServeSSE streams events of topic until the request context ends.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, topic string, onConnect func(c *client)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		jsonError(w, "Streaming non supporté", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := b.Register(topic)
	defer b.Unregister(c)

	if onConnect != nil {
		onConnect(c)
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-c.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}

var _ game.Publisher = (*Broadcaster)(nil)

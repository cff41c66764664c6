// Package hint asks Gemini on Vertex AI for a short clue about the day's
// secret word.
package hint

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

const (
	defaultRegion = "europe-west1"
	defaultModel  = "gemini-2.5-flash"
)

// Config selects the Vertex AI project and model. Credentials come from
// Application Default Credentials (GOOGLE_APPLICATION_CREDENTIALS).
type Config struct {
	Project string
	Region  string
	Model   string
}

// Client produces clues and remembers them per secret word, so the same
// day never costs more than one generation.
type Client struct {
	models generator
	model  string

	mu    sync.Mutex
	clues map[string]string
}

// generator is the subset of genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// New connects to Vertex AI.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Project == "" {
		return nil, errors.New("gcp project id is required")
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.Project,
		Location: cfg.Region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newClient(gc.Models, cfg.Model), nil
}

func newClient(models generator, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{models: models, model: model, clues: make(map[string]string)}
}

// Close drops the remembered clues. The genai client holds no connection.
func (c *Client) Close() error {
	c.mu.Lock()
	clear(c.clues)
	c.mu.Unlock()
	return nil
}

func (c *Client) cached(secret string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clue, ok := c.clues[secret]
	return clue, ok
}

func (c *Client) remember(secret, clue string) {
	c.mu.Lock()
	c.clues[secret] = clue
	c.mu.Unlock()
}

package hint

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const cluePrompt = `Tu es l'animateur d'un jeu de mots quotidien.

Le mot secret du jour est : %s

Écris un indice court (une phrase, 12 mots maximum) qui aide à deviner ce mot.

Règles :
- Ne cite jamais le mot secret, ni une forme dérivée, ni ses lettres.
- Ne donne ni sa longueur ni sa première lettre.
- Réponds UNIQUEMENT avec le JSON {"clue": "<indice>"}, sans commentaire ni markdown.`

// Clue returns a one-sentence hint for secret. Answers that contain the
// secret word are rejected and not remembered.
func (c *Client) Clue(ctx context.Context, secret string) (string, error) {
	if clue, ok := c.cached(secret); ok {
		return clue, nil
	}

	resp, err := c.models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: fmt.Sprintf(cluePrompt, secret)}},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			TopP:             genai.Ptr(float32(1)),
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty gemini response")
	}

	var out struct {
		Clue string `json:"clue"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return "", fmt.Errorf("parse clue JSON: %w\nraw response: %s", err, text)
	}

	clue := strings.TrimSpace(out.Clue)
	if clue == "" {
		return "", fmt.Errorf("gemini returned an empty clue")
	}
	if strings.Contains(strings.ToUpper(clue), strings.ToUpper(secret)) {
		return "", fmt.Errorf("gemini clue reveals the secret word")
	}
	c.remember(secret, clue)
	return clue, nil
}

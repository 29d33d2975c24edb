package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/moviemate/watchparty/internal/application/config"
)

// GenreSuggester names 1-3 catalog genres for a free-form prompt about
// a mood or a viewing history.
type GenreSuggester interface {
	SuggestGenres(ctx context.Context, prompt string) ([]string, error)
}

// Client calls the Gemini generateContent REST endpoint. The model is
// instructed to answer with a bare comma-separated genre list.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

var _ GenreSuggester = (*Client)(nil)

func New(cfg config.GeminiConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) SuggestGenres(ctx context.Context, prompt string) ([]string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generate content: status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("generate content: empty response")
	}

	return splitGenres(out.Candidates[0].Content.Parts[0].Text), nil
}

func splitGenres(text string) []string {
	raw := strings.Split(strings.TrimSpace(text), ",")

	genres := make([]string, 0, len(raw))
	for _, g := range raw {
		if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

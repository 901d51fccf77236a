package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/geoecon/newsradar/internal/config"
	"github.com/geoecon/newsradar/internal/ports"
)

// OllamaClient implements ports.Summarizer against an Ollama-compatible
// generate endpoint.
type OllamaClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

var _ ports.Summarizer = (*OllamaClient)(nil)

// NewOllamaClient builds a client from configuration.
func NewOllamaClient(cfg config.SummaryConfig) *OllamaClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &OllamaClient{
		endpoint:   cfg.OllamaURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ModelVersion reports the configured model tag for persistence.
func (c *OllamaClient) ModelVersion() string {
	return c.model
}

// Summarize posts a non-streaming generate request and returns the model's
// response text. An empty response is an error so callers leave the page
// pending.
func (c *OllamaClient) Summarize(ctx context.Context, title, text string) (string, error) {
	if c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("ollama client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model":  c.model,
		"prompt": BuildPrompt(title, text),
		"stream": false,
		"options": map[string]any{
			"temperature": 0.3,
			"top_p":       0.9,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ollama error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	summary := strings.TrimSpace(parsed.Response)
	if summary == "" {
		return "", fmt.Errorf("empty model response")
	}
	return summary, nil
}

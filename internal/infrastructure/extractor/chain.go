package extractor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/geoecon/newsradar/internal/domain"
	"github.com/geoecon/newsradar/internal/ports"
)

// Strategy is one way of turning a URL into article text. Implementations
// report failures as errors; the chain decides what to do with them.
type Strategy interface {
	Name() string
	TryExtract(ctx context.Context, pageURL string) (string, error)
}

// Chain walks an ordered list of strategies and stops at the first one
// producing at least minWords words. It never fails: rejected URLs, strategy
// errors, and thin results all collapse to an empty string. A missing
// strategy is simply a shorter list.
type Chain struct {
	strategies []Strategy
	minWords   int
	logger     *slog.Logger
}

var _ ports.Extractor = (*Chain)(nil)

// NewChain assembles the fallback chain; nil strategies are dropped.
func NewChain(minWords int, logger *slog.Logger, strategies ...Strategy) *Chain {
	kept := make([]Strategy, 0, len(strategies))
	for _, strategy := range strategies {
		if strategy != nil {
			kept = append(kept, strategy)
		}
	}
	if minWords < 1 {
		minWords = 100
	}
	return &Chain{strategies: kept, minWords: minWords, logger: logger}
}

// Extract returns the first sufficiently long text produced by the chain.
func (c *Chain) Extract(ctx context.Context, pageURL string) string {
	if !looksLikeHTTPURL(pageURL) {
		return ""
	}

	for _, strategy := range c.strategies {
		text, err := strategy.TryExtract(ctx, pageURL)
		if err != nil {
			c.debug("strategy failed", "strategy", strategy.Name(), "url", pageURL, "error", err)
			continue
		}
		text = strings.TrimSpace(text)
		if domain.WordCount(text) >= c.minWords {
			c.debug("strategy succeeded", "strategy", strategy.Name(), "url", pageURL, "words", domain.WordCount(text))
			return text
		}
	}

	return ""
}

func (c *Chain) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func looksLikeHTTPURL(pageURL string) bool {
	return strings.HasPrefix(pageURL, "http://") || strings.HasPrefix(pageURL, "https://")
}

// fetchHTML downloads a page body for the strategies that parse raw HTML
// themselves. The caller's context bounds the request alongside the client
// timeout.
func fetchHTML(ctx context.Context, client *http.Client, pageURL, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return body, nil
}

package extractor

import (
	"context"
	"fmt"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// ReadabilityStrategy delegates to go-readability, which downloads the page
// and isolates the main article content.
type ReadabilityStrategy struct {
	timeout time.Duration
}

var _ Strategy = (*ReadabilityStrategy)(nil)

// NewReadabilityStrategy applies timeout to each download.
func NewReadabilityStrategy(timeout time.Duration) *ReadabilityStrategy {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ReadabilityStrategy{timeout: timeout}
}

func (r *ReadabilityStrategy) Name() string { return "readability" }

func (r *ReadabilityStrategy) TryExtract(ctx context.Context, pageURL string) (string, error) {
	article, err := readability.FromURL(pageURL, r.timeout)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}
	return article.TextContent, nil
}

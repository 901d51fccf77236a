package extractor

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/geoecon/newsradar/internal/domain"
)

// ManualStrategy is the last resort: fetch raw HTML and join the paragraph
// text inside an <article> container; when that is absent or too short, join
// every paragraph on the page instead.
type ManualStrategy struct {
	client    *http.Client
	userAgent string
	minWords  int
}

var _ Strategy = (*ManualStrategy)(nil)

// NewManualStrategy wires the shared HTTP client; minWords controls when the
// <article> container is considered too thin to trust.
func NewManualStrategy(client *http.Client, userAgent string, minWords int) *ManualStrategy {
	if client == nil {
		client = http.DefaultClient
	}
	if minWords < 1 {
		minWords = 100
	}
	return &ManualStrategy{client: client, userAgent: userAgent, minWords: minWords}
}

func (m *ManualStrategy) Name() string { return "manual" }

func (m *ManualStrategy) TryExtract(ctx context.Context, pageURL string) (string, error) {
	body, err := fetchHTML(ctx, m.client, pageURL, m.userAgent)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	text := joinParagraphs(doc.Find("article p"))
	if domain.WordCount(text) < m.minWords {
		text = joinParagraphs(doc.Find("p"))
	}
	return text, nil
}

func joinParagraphs(selection *goquery.Selection) string {
	var paragraphs []string
	selection.Each(func(_ int, paragraph *goquery.Selection) {
		if trimmed := strings.TrimSpace(paragraph.Text()); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	})
	return strings.Join(paragraphs, "\n")
}

package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestManualStrategyPrefersArticleContainer(t *testing.T) {
	t.Parallel()

	articleText := strings.TrimSpace(strings.Repeat("body word ", 60))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<p>navigation junk</p>
			<article><p>` + articleText + `</p></article>
		</body></html>`))
	}))
	defer server.Close()

	strategy := NewManualStrategy(server.Client(), "newsradar-test/1.0", 100)
	got, err := strategy.TryExtract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("TryExtract error: %v", err)
	}
	if got != articleText {
		t.Fatalf("expected article paragraphs only, got %q", got)
	}
}

func TestManualStrategyFallsBackToAllParagraphs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<article><p>too short</p></article>
			<p>first loose paragraph</p>
			<p>second loose paragraph</p>
		</body></html>`))
	}))
	defer server.Close()

	strategy := NewManualStrategy(server.Client(), "", 100)
	got, err := strategy.TryExtract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("TryExtract error: %v", err)
	}
	if !strings.Contains(got, "first loose paragraph") || !strings.Contains(got, "second loose paragraph") {
		t.Fatalf("expected all paragraphs in fallback, got %q", got)
	}
}

func TestManualStrategyReportsHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	strategy := NewManualStrategy(server.Client(), "", 100)
	if _, err := strategy.TryExtract(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

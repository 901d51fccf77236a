package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTextFromHTMLPrefersMainContent(t *testing.T) {
	t.Parallel()

	input := []byte(`<html><body>
		<nav>menu menu menu</nav>
		<main><p>real content here</p></main>
		<footer>copyright</footer>
	</body></html>`)

	got := textFromHTML(input)
	if !strings.Contains(got, "real content here") {
		t.Fatalf("missing main content: %q", got)
	}
	if strings.Contains(got, "menu") || strings.Contains(got, "copyright") {
		t.Fatalf("boilerplate leaked: %q", got)
	}
}

func TestTextFromHTMLSkipsConsentBanners(t *testing.T) {
	t.Parallel()

	input := []byte(`<html><body>
		<div class="cookie-banner"><p>accept our cookies</p></div>
		<article><p>story text</p></article>
	</body></html>`)

	got := textFromHTML(input)
	if strings.Contains(got, "cookies") {
		t.Fatalf("cookie banner leaked: %q", got)
	}
	if !strings.Contains(got, "story text") {
		t.Fatalf("missing article text: %q", got)
	}
}

func TestTextFromHTMLFallsBackToBody(t *testing.T) {
	t.Parallel()

	got := textFromHTML([]byte(`<html><body><p>plain page</p></body></html>`))
	if got != "plain page" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestHeuristicStrategyFetchesAndExtracts(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "newsradar-test/1.0" {
			http.Error(w, "missing agent", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`<html><body><article><p>fetched text</p></article></body></html>`))
	}))
	defer server.Close()

	strategy := NewHeuristicStrategy(server.Client(), "newsradar-test/1.0")
	got, err := strategy.TryExtract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("TryExtract error: %v", err)
	}
	if got != "fetched text" {
		t.Fatalf("unexpected text: %q", got)
	}
}

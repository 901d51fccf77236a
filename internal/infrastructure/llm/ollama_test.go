package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/geoecon/newsradar/internal/config"
)

func newTestClient(serverURL string) *OllamaClient {
	return NewOllamaClient(config.SummaryConfig{
		OllamaURL: serverURL,
		Model:     "llama3.1:8b",
		Timeout:   5 * time.Second,
	})
}

func TestSummarizeSendsGenerateRequest(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"response":"  the summary  "}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	summary, err := client.Summarize(context.Background(), "Oil surges", "body text")
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if summary != "the summary" {
		t.Fatalf("unexpected summary: %q", summary)
	}

	if gotBody["model"] != "llama3.1:8b" {
		t.Fatalf("unexpected model: %v", gotBody["model"])
	}
	if gotBody["stream"] != false {
		t.Fatalf("stream must be disabled")
	}
	prompt, _ := gotBody["prompt"].(string)
	if !strings.Contains(prompt, "Oil surges") || !strings.Contains(prompt, "body text") {
		t.Fatalf("prompt missing article content: %q", prompt)
	}
}

func TestSummarizeEmptyResponseIsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":""}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Summarize(context.Background(), "t", "b"); err == nil {
		t.Fatalf("empty model response must be an error")
	}
}

func TestSummarizeErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Summarize(context.Background(), "t", "b"); err == nil {
		t.Fatalf("non-2xx status must be an error")
	}
}

func TestModelVersion(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://localhost:11434/api/generate")
	if client.ModelVersion() != "llama3.1:8b" {
		t.Fatalf("unexpected model version: %s", client.ModelVersion())
	}
}

package extractor

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type stubStrategy struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) TryExtract(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestChainRejectsNonHTTPURLs(t *testing.T) {
	t.Parallel()

	strategy := &stubStrategy{name: "stub", text: strings.Repeat("word ", 200)}
	chain := NewChain(100, nil, strategy)

	for _, badURL := range []string{"", "ftp://a.test/x", "not-a-url"} {
		if got := chain.Extract(context.Background(), badURL); got != "" {
			t.Fatalf("expected empty result for %q, got %q", badURL, got)
		}
	}
	if strategy.calls != 0 {
		t.Fatalf("strategies must not run for rejected URLs")
	}
}

func TestChainStopsAtFirstSufficientResult(t *testing.T) {
	t.Parallel()

	long := strings.TrimSpace(strings.Repeat("word ", 150))
	first := &stubStrategy{name: "first", text: long}
	second := &stubStrategy{name: "second", text: long}

	chain := NewChain(100, nil, first, second)
	got := chain.Extract(context.Background(), "http://a.test/1")
	if got != long {
		t.Fatalf("unexpected text: %q", got)
	}
	if second.calls != 0 {
		t.Fatalf("second strategy must not run after a sufficient result")
	}
}

func TestChainFallsThroughErrorsAndShortResults(t *testing.T) {
	t.Parallel()

	long := strings.TrimSpace(strings.Repeat("word ", 150))
	failing := &stubStrategy{name: "failing", err: fmt.Errorf("boom")}
	thin := &stubStrategy{name: "thin", text: "too short"}
	last := &stubStrategy{name: "last", text: long}

	chain := NewChain(100, nil, failing, thin, last)
	got := chain.Extract(context.Background(), "https://a.test/1")
	if got != long {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestChainReturnsEmptyWhenEverythingFails(t *testing.T) {
	t.Parallel()

	chain := NewChain(100, nil,
		&stubStrategy{name: "a", err: fmt.Errorf("down")},
		&stubStrategy{name: "b", text: "tiny"},
	)
	if got := chain.Extract(context.Background(), "https://a.test/1"); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestChainDropsNilStrategies(t *testing.T) {
	t.Parallel()

	long := strings.TrimSpace(strings.Repeat("word ", 150))
	chain := NewChain(100, nil, nil, &stubStrategy{name: "only", text: long}, nil)
	if got := chain.Extract(context.Background(), "https://a.test/1"); got != long {
		t.Fatalf("chain must work with absent strategies, got %q", got)
	}
}

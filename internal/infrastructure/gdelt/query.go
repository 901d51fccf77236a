package gdelt

import (
	"net/url"
	"strings"
)

// BuildQuery turns a keyword list into the boolean-OR expression the GDELT
// doc API expects: "(kw1 OR kw2 OR ... OR kwN)". Keywords are trimmed,
// empties dropped, and each one percent-encoded so the final string is safe
// inside a query parameter. It works on any sublist, which is what chunked
// fetching relies on.
func BuildQuery(keywords []string) string {
	encoded := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" {
			continue
		}
		encoded = append(encoded, url.QueryEscape(trimmed))
	}
	return "(" + strings.Join(encoded, " OR ") + ")"
}

// chunkKeywords splits keywords into groups of at most size, preserving
// order. Size values below one fall back to single-keyword chunks.
func chunkKeywords(keywords []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	var chunks [][]string
	for start := 0; start < len(keywords); start += size {
		end := start + size
		if end > len(keywords) {
			end = len(keywords)
		}
		chunks = append(chunks, keywords[start:end])
	}
	return chunks
}

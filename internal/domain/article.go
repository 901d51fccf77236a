package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength bounds persisted titles, matching the articles schema.
const MaxTitleLength = 300

// NormalizedRecord is the fixed-shape view of one raw provider item. Every
// field is always present; empty strings are valid values.
type NormalizedRecord struct {
	Title          string
	URL            string
	Snippet        string
	PublishedAtRaw string
	Source         string
}

// RankedCandidate pairs a record with its snippet word count at ranking time.
type RankedCandidate struct {
	Record NormalizedRecord
	Score  int
}

// Article is the persisted entity, one row per unique URL. FetchedAt is set
// on first insert only and serves as the rate-limit clock for the whole run.
type Article struct {
	ID          uuid.UUID
	Source      string
	Title       string
	URL         string
	PublishedAt *time.Time
	Summary     string
	FetchedAt   time.Time
}

// SummaryPage holds AI-summary state, one-to-one with Article. SummarizedAt
// stays nil until a summarization attempt has succeeded.
type SummaryPage struct {
	ID           uuid.UUID
	ArticleID    uuid.UUID
	ArticleTitle string
	ArticleBody  string
	ShortPreview string
	AISummary    string
	SummarizedAt *time.Time
	ModelVersion string
	Confidence   *float64
}

// FetchReport aggregates per-run counters for the terminal summary line.
type FetchReport struct {
	Skipped    bool
	WaitLeft   time.Duration
	Fetched    int
	Ranked     int
	Saved      int
	SkippedLow int
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// TruncateTitle clips a title to the persisted maximum length. The cut is
// made in characters, never mid-rune, so multibyte titles stay valid UTF-8.
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= MaxTitleLength {
		return title
	}
	return string(runes[:MaxTitleLength])
}

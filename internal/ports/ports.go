package ports

import (
	"context"
	"time"

	"github.com/geoecon/newsradar/internal/domain"
)

// ArticleSource pulls normalized records from the upstream provider.
type ArticleSource interface {
	FetchAll(ctx context.Context) ([]domain.NormalizedRecord, error)
}

// Extractor returns the best available full text for a URL. It never fails;
// an unusable page simply yields an empty string.
type Extractor interface {
	Extract(ctx context.Context, url string) string
}

// ArticleRepository persists articles and their summary pages.
type ArticleRepository interface {
	// LastFetchedAt reports the fetched_at of the most recent article, or the
	// zero time when the store is empty.
	LastFetchedAt(ctx context.Context) (time.Time, error)

	// UpsertArticle inserts or updates by URL. fetched_at is written only on
	// first insert. A pending summary page row is created alongside when one
	// does not exist yet.
	UpsertArticle(ctx context.Context, article domain.Article, preview string) error

	// PendingSummaryPages returns pages with summarized_at still null joined
	// with their article title and body, oldest first, up to limit.
	PendingSummaryPages(ctx context.Context, limit int) ([]domain.SummaryPage, error)

	// SaveSummary stamps a successful summarization attempt.
	SaveSummary(ctx context.Context, page domain.SummaryPage) error
}

// Summarizer generates an AI summary for article body text.
type Summarizer interface {
	Summarize(ctx context.Context, title, text string) (string, error)
	ModelVersion() string
}

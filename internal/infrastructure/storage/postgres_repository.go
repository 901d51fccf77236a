package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/geoecon/newsradar/internal/domain"
	"github.com/geoecon/newsradar/internal/ports"
)

// PostgresRepository persists articles and summary pages.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema bootstraps the two tables when they do not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS articles (
  id UUID PRIMARY KEY,
  source TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL UNIQUE,
  published_at TIMESTAMPTZ,
  summary TEXT NOT NULL DEFAULT '',
  fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS summary_pages (
  id UUID PRIMARY KEY,
  article_id UUID NOT NULL UNIQUE REFERENCES articles(id) ON DELETE CASCADE,
  short_preview TEXT NOT NULL DEFAULT '',
  ai_summary TEXT NOT NULL DEFAULT '',
  summarized_at TIMESTAMPTZ,
  model_version TEXT NOT NULL DEFAULT '',
  confidence DOUBLE PRECISION
);

CREATE INDEX IF NOT EXISTS idx_articles_fetched_at ON articles (fetched_at DESC);
CREATE INDEX IF NOT EXISTS idx_summary_pages_pending ON summary_pages (summarized_at) WHERE summarized_at IS NULL;
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// LastFetchedAt returns the newest fetched_at, or the zero time on an empty
// store.
func (r *PostgresRepository) LastFetchedAt(ctx context.Context) (time.Time, error) {
	query, args, err := r.builder.
		Select("fetched_at").
		From("articles").
		OrderBy("fetched_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("build query: %w", err)
	}

	var fetchedAt time.Time
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query last fetched_at: %w", err)
	}
	return fetchedAt, nil
}

// UpsertArticle inserts or updates one row keyed by URL. On conflict the
// mutable fields are refreshed while fetched_at keeps its original value. A
// pending summary page row is created alongside; an existing page only gets
// its preview refreshed and is never reset to pending.
func (r *PostgresRepository) UpsertArticle(ctx context.Context, article domain.Article, preview string) error {
	const upsert = `
INSERT INTO articles (id, source, title, url, published_at, summary, fetched_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
ON CONFLICT (url) DO UPDATE
SET source = EXCLUDED.source,
    title = EXCLUDED.title,
    published_at = EXCLUDED.published_at,
    summary = EXCLUDED.summary
RETURNING id`

	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}

	var publishedAt sql.NullTime
	if article.PublishedAt != nil {
		publishedAt = sql.NullTime{Time: *article.PublishedAt, Valid: true}
	}

	var articleID uuid.UUID
	err := r.db.QueryRowContext(ctx, upsert,
		article.ID,
		article.Source,
		domain.TruncateTitle(article.Title),
		article.URL,
		publishedAt,
		article.Summary,
	).Scan(&articleID)
	if err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}

	const upsertPage = `
INSERT INTO summary_pages (id, article_id, short_preview)
VALUES ($1, $2, $3)
ON CONFLICT (article_id) DO UPDATE
SET short_preview = EXCLUDED.short_preview`

	if _, err := r.db.ExecContext(ctx, upsertPage, uuid.New(), articleID, preview); err != nil {
		return fmt.Errorf("upsert summary page: %w", err)
	}
	return nil
}

// PendingSummaryPages loads pages still waiting for a summary, oldest
// article first, joined with the text the summarizer needs.
func (r *PostgresRepository) PendingSummaryPages(ctx context.Context, limit int) ([]domain.SummaryPage, error) {
	if limit < 1 {
		limit = 1
	}

	query, args, err := r.builder.
		Select("sp.id", "sp.article_id", "a.title", "a.summary", "sp.short_preview").
		From("summary_pages sp").
		Join("articles a ON a.id = sp.article_id").
		Where(sq.Eq{"sp.summarized_at": nil}).
		OrderBy("a.fetched_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pending pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.SummaryPage
	for rows.Next() {
		var page domain.SummaryPage
		if err := rows.Scan(&page.ID, &page.ArticleID, &page.ArticleTitle, &page.ArticleBody, &page.ShortPreview); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return pages, nil
}

// SaveSummary stamps a successful summarization attempt on the page.
func (r *PostgresRepository) SaveSummary(ctx context.Context, page domain.SummaryPage) error {
	builder := r.builder.
		Update("summary_pages").
		Set("ai_summary", page.AISummary).
		Set("summarized_at", page.SummarizedAt).
		Set("model_version", page.ModelVersion).
		Set("confidence", page.Confidence).
		Where(sq.Eq{"id": page.ID})

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save summary: %w", err)
	}
	return nil
}

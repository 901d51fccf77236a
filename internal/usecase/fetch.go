package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/geoecon/newsradar/internal/config"
	"github.com/geoecon/newsradar/internal/domain"
	"github.com/geoecon/newsradar/internal/ports"
	"github.com/geoecon/newsradar/internal/ranker"
)

const previewWords = 40

// FetchDeps wires the driven adapters into the fetch pipeline.
type FetchDeps struct {
	Source     ports.ArticleSource
	Extractor  ports.Extractor
	Repository ports.ArticleRepository
	Config     config.FetchConfig
	Logger     *slog.Logger

	// Now and Sleep default to the real clock; tests override them.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// FetchPipeline implements the ingestion workflow: rate gate, chunked fetch,
// rank/filter, per-item length gate with extraction fallback, idempotent
// persistence.
type FetchPipeline struct {
	source     ports.ArticleSource
	extractor  ports.Extractor
	repository ports.ArticleRepository
	cfg        config.FetchConfig
	logger     *slog.Logger
	now        func() time.Time
	sleep      func(time.Duration)
}

// NewFetchPipeline constructs the orchestration component.
func NewFetchPipeline(deps FetchDeps) *FetchPipeline {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	return &FetchPipeline{
		source:     deps.Source,
		extractor:  deps.Extractor,
		repository: deps.Repository,
		cfg:        deps.Config,
		logger:     deps.Logger,
		now:        deps.Now,
		sleep:      deps.Sleep,
	}
}

// Run executes one complete ingestion pass. Per-item problems are logged and
// skipped; only a broken store read aborts the run.
func (p *FetchPipeline) Run(ctx context.Context) (domain.FetchReport, error) {
	var report domain.FetchReport
	now := p.now()

	last, err := p.repository.LastFetchedAt(ctx)
	if err != nil {
		return report, fmt.Errorf("load last fetched_at: %w", err)
	}
	if !last.IsZero() {
		elapsed := now.Sub(last)
		if elapsed < p.cfg.MinInterval {
			report.Skipped = true
			report.WaitLeft = p.cfg.MinInterval - elapsed
			p.info("skipping fetch, last run too recent",
				"elapsed", elapsed.Round(time.Second),
				"wait_left", report.WaitLeft.Round(time.Second))
			return report, nil
		}
	}

	records, err := p.source.FetchAll(ctx)
	if err != nil {
		p.warn("fetch failed", "error", err)
		records = nil
	}
	report.Fetched = len(records)
	if len(records) == 0 {
		p.info("no articles returned, nothing to do")
		return report, nil
	}

	ranked := ranker.Rank(records, p.cfg.Keywords, p.cfg.TopN)
	report.Ranked = len(ranked)

	seen := map[string]struct{}{}
	for _, record := range ranked {
		if record.URL == "" {
			continue
		}
		if _, ok := seen[record.URL]; ok {
			continue
		}
		seen[record.URL] = struct{}{}

		text := p.resolveBody(ctx, record)
		if domain.WordCount(text) < p.cfg.MinWords {
			report.SkippedLow++
			p.warn("skipping short article",
				"url", record.URL,
				"words", domain.WordCount(text),
				"min_words", p.cfg.MinWords)
			continue
		}

		article := domain.Article{
			Source:      record.Source,
			Title:       domain.TruncateTitle(record.Title),
			URL:         record.URL,
			PublishedAt: parsePublishedAt(record.PublishedAtRaw),
			Summary:     text,
		}
		if err := p.repository.UpsertArticle(ctx, article, shortPreview(text)); err != nil {
			p.warn("failed saving article", "url", record.URL, "error", err)
			continue
		}
		report.Saved++
	}

	p.info("fetch complete",
		"fetched", report.Fetched,
		"ranked", report.Ranked,
		"saved", report.Saved,
		"skipped_short", report.SkippedLow)
	return report, nil
}

// resolveBody picks the best available body text: the snippet when it is
// already long enough, otherwise one extraction attempt followed by the
// polite pause, successful or not.
func (p *FetchPipeline) resolveBody(ctx context.Context, record domain.NormalizedRecord) string {
	text := record.Snippet
	if domain.WordCount(text) >= p.cfg.MinWords || p.extractor == nil {
		return text
	}

	fetched := p.extractor.Extract(ctx, record.URL)
	p.sleep(p.cfg.Pause)
	if fetched != "" {
		return fetched
	}
	return text
}

// parsePublishedAt tries the compact GDELT timestamp first, then any common
// date layout. Unparseable input yields nil rather than a bogus zero time.
func parsePublishedAt(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if parsed, err := time.Parse("20060102T150405Z", raw); err == nil {
		utc := parsed.UTC()
		return &utc
	}
	if parsed, err := dateparse.ParseAny(raw); err == nil {
		utc := parsed.UTC()
		return &utc
	}
	return nil
}

func shortPreview(text string) string {
	words := strings.Fields(text)
	if len(words) <= previewWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:previewWords], " ") + "..."
}

func (p *FetchPipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *FetchPipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

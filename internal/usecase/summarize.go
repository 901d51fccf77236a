package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/geoecon/newsradar/internal/config"
	"github.com/geoecon/newsradar/internal/domain"
	"github.com/geoecon/newsradar/internal/ports"
)

const summaryConfidence = 0.85

// SummarizeDeps wires the adapters the summarization pass needs.
type SummarizeDeps struct {
	Repository ports.ArticleRepository
	Summarizer ports.Summarizer
	Config     config.SummaryConfig
	Logger     *slog.Logger
	Now        func() time.Time
}

// SummarizePipeline walks pending summary pages and fills them in via the
// language model. Pages whose article is too short, or whose model call
// fails, stay pending so a later run can retry them; no placeholder summary
// is ever written.
type SummarizePipeline struct {
	repository ports.ArticleRepository
	summarizer ports.Summarizer
	cfg        config.SummaryConfig
	logger     *slog.Logger
	now        func() time.Time
}

// NewSummarizePipeline constructs the summarization pass.
func NewSummarizePipeline(deps SummarizeDeps) *SummarizePipeline {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &SummarizePipeline{
		repository: deps.Repository,
		summarizer: deps.Summarizer,
		cfg:        deps.Config,
		logger:     deps.Logger,
		now:        deps.Now,
	}
}

// Run processes up to the configured batch of pending pages.
func (p *SummarizePipeline) Run(ctx context.Context) error {
	pages, err := p.repository.PendingSummaryPages(ctx, p.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("load pending pages: %w", err)
	}
	if len(pages) == 0 {
		p.info("no pending articles")
		return nil
	}

	var saved, skipped int
	for _, page := range pages {
		text := strings.TrimSpace(page.ArticleBody)
		if domain.WordCount(text) < p.cfg.MinWords {
			skipped++
			p.warn("skipping short article",
				"title", clipTitle(page.ArticleTitle),
				"words", domain.WordCount(text))
			continue
		}

		summary, err := p.summarizer.Summarize(ctx, page.ArticleTitle, text)
		if err != nil {
			skipped++
			p.warn("summarization failed, leaving pending",
				"title", clipTitle(page.ArticleTitle),
				"error", err)
			continue
		}

		summarizedAt := p.now()
		confidence := summaryConfidence
		page.AISummary = summary
		page.SummarizedAt = &summarizedAt
		page.ModelVersion = p.summarizer.ModelVersion()
		page.Confidence = &confidence

		if err := p.repository.SaveSummary(ctx, page); err != nil {
			skipped++
			p.warn("failed saving summary",
				"title", clipTitle(page.ArticleTitle),
				"error", err)
			continue
		}
		saved++
	}

	p.info("summarization complete", "saved", saved, "skipped", skipped)
	return nil
}

func clipTitle(title string) string {
	if len(title) <= 80 {
		return title
	}
	return title[:80]
}

func (p *SummarizePipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *SummarizePipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

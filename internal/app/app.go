package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/geoecon/newsradar/internal/config"
	"github.com/geoecon/newsradar/internal/infrastructure/extractor"
	"github.com/geoecon/newsradar/internal/infrastructure/gdelt"
	"github.com/geoecon/newsradar/internal/infrastructure/llm"
	"github.com/geoecon/newsradar/internal/infrastructure/storage"
	"github.com/geoecon/newsradar/internal/logging"
	"github.com/geoecon/newsradar/internal/usecase"
)

// Application wires config to adapters and use cases.
type Application struct {
	cfg       config.Config
	fetch     *usecase.FetchPipeline
	summarize *usecase.SummarizePipeline
	closeFn   func() error
}

// New connects to the store, bootstraps the schema, and builds both
// pipelines.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect storage: %w", err)
	}

	repository := storage.NewPostgresRepository(db)
	if err := repository.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.Provider.Timeout}

	source := gdelt.NewClient(cfg.Provider, cfg.Fetch.Keywords, httpClient,
		baseLogger.With("component", "source.gdelt"))

	chain := extractor.NewChain(cfg.Fetch.MinWords,
		baseLogger.With("component", "extractor"),
		extractor.NewReadabilityStrategy(cfg.Provider.Timeout),
		extractor.NewHeuristicStrategy(httpClient, cfg.Provider.UserAgent),
		extractor.NewManualStrategy(httpClient, cfg.Provider.UserAgent, cfg.Fetch.MinWords),
	)

	fetch := usecase.NewFetchPipeline(usecase.FetchDeps{
		Source:     source,
		Extractor:  chain,
		Repository: repository,
		Config:     cfg.Fetch,
		Logger:     baseLogger.With("component", "pipeline.fetch"),
	})

	summarize := usecase.NewSummarizePipeline(usecase.SummarizeDeps{
		Repository: repository,
		Summarizer: llm.NewOllamaClient(cfg.Summary),
		Config:     cfg.Summary,
		Logger:     baseLogger.With("component", "pipeline.summarize"),
	})

	return &Application{
		cfg:       cfg,
		fetch:     fetch,
		summarize: summarize,
		closeFn:   db.Close,
	}, nil
}

// RunFetch executes one ingestion pass.
func (a *Application) RunFetch(ctx context.Context) error {
	_, err := a.fetch.Run(ctx)
	return err
}

// RunSummarize executes one summarization pass.
func (a *Application) RunSummarize(ctx context.Context) error {
	return a.summarize.Run(ctx)
}

// Close releases the database connection.
func (a *Application) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

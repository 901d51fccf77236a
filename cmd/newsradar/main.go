package main

import (
	"context"
	"fmt"
	"os"

	"github.com/geoecon/newsradar/internal/app"
	"github.com/geoecon/newsradar/internal/config"
	"github.com/geoecon/newsradar/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	command := "fetch"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	switch command {
	case "fetch":
		err = application.RunFetch(ctx)
	case "summarize":
		err = application.RunSummarize(ctx)
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [fetch|summarize]\n", os.Args[0])
		os.Exit(2)
	}

	if err != nil {
		logger.Error("run failed", "command", command, "error", err)
		os.Exit(1)
	}
}

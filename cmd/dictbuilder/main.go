// Command dictbuilder builds dictionary and translation databases from a
// tree of raw extraction files, processed language-card files, and
// per-language frequency lists.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/lexibase/lexibase/internal/app"
	"github.com/lexibase/lexibase/internal/config"
	"github.com/lexibase/lexibase/internal/ingest/batch"
	"github.com/lexibase/lexibase/internal/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	cliApp := &cli.App{
		Name:    "dictbuilder",
		Usage:   "build dictionary and translation databases from extraction output",
		Version: app.BuildVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "raw",
				Usage:    "root of raw extraction files (<raw>/<lang>/<word>.json)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "processed",
				Usage:    "root of processed card files (<processed>/<lang>/<word>.json)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Usage:    "output directory for database files",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "frequency",
				Usage:    "directory of per-language frequency lists (<lang>_words.txt)",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, logger, cfg, batch.Roots{
				Raw:       c.String("raw"),
				Processed: c.String("processed"),
				Out:       c.String("out"),
				Frequency: c.String("frequency"),
			})
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		logger.Error("build failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, roots batch.Roots) error {
	driver := batch.NewDriver(logger, cfg.Builder.ProgressEvery)

	results, err := driver.Run(ctx, roots)
	if err != nil {
		return err
	}

	store, err := settings.Open(roots.Out)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	defer store.Close()
	if err := store.Set(ctx, settings.KeyDataVersion, cfg.Builder.DataVersion); err != nil {
		return err
	}

	total := 0
	for _, r := range results {
		total += r.Words
	}
	logger.Info("build finished",
		slog.Int("languages", len(results)),
		slog.Int("words", total),
	)
	return nil
}

// Command importer bulk-loads clients and engagements from a CSV export.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"caoffice/internal/importer"
	"caoffice/internal/platform/config"
	"caoffice/internal/platform/logger"
	"caoffice/internal/platform/postgres"
)

func main() {
	csvPath := flag.String("csv", "", "path to the CSV file to import")
	flag.Parse()

	if *csvPath == "" {
		slog.Error("missing required -csv flag")
		os.Exit(2)
	}
	if err := run(*csvPath); err != nil {
		slog.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(csvPath string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return err
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	summary, err := importer.New(db, log).Run(ctx, f)
	if err != nil {
		return err
	}

	log.Info("import complete",
		slog.Int("rows_read", summary.RowsRead),
		slog.Int("rows_skipped", summary.RowsSkipped),
		slog.Int("clients_upserted", summary.ClientsUpserted),
		slog.Int("engagements_upserted", summary.EngagementsUpserted))
	return nil
}

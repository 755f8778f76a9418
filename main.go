package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"car-integration/config"
	"car-integration/models"
	"car-integration/services"
	"car-integration/storage"
	"car-integration/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Supplier car integration starting ===")
	logger.Info("Input: %s | workbook: %s", cfg.InputPath, cfg.XLSXOutputPath)

	var reader storage.RowReader = storage.NewJSONLReader(cfg.InputPath)
	rows, err := reader.ReadAll()
	if err != nil {
		logger.Error("Failed to read supplier catalog: %v", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		logger.Error("Supplier catalog %s is empty. Exiting.", cfg.InputPath)
		os.Exit(1)
	}

	pipeline := services.NewPipeline(logger)
	result, err := pipeline.Run(rows)
	if err != nil {
		if errors.Is(err, services.ErrInvalidID) {
			logger.Error("Supplier catalog has a row without a numeric ID, nothing was exported")
		}
		logger.Error("Pipeline failed: %v", err)
		os.Exit(1)
	}

	writers, err := openWriters(cfg, logger)
	if err != nil {
		logger.Error("%v", err)
		if cfg.PostgresEnabled {
			logger.Error("Make sure Docker is running: docker compose up -d")
		}
		os.Exit(1)
	}

	failed := false
	for _, w := range writers {
		if err := w.writer.Write(result); err != nil {
			logger.Error("%s export failed: %v", w.name, err)
			failed = true
		} else {
			logger.Info("%s export written", w.name)
			logStored(w, result.RunID, logger)
		}
		if err := w.writer.Close(); err != nil {
			logger.Warn("%s close: %v", w.name, err)
		}
	}

	summarySvc := services.NewSummaryService(logger)
	summary := summarySvc.Generate(result)
	summarySvc.Log(summary)
	if cfg.SummaryOutputPath != "" {
		writeSummary(cfg.SummaryOutputPath, summary, logger)
	}
	summarySvc.Print(os.Stdout, summary)

	if failed {
		os.Exit(1)
	}
	fmt.Printf("  Done. %d vehicles → %s\n\n", len(result.Integrated), cfg.XLSXOutputPath)
}

type namedWriter struct {
	name   string
	writer storage.ResultWriter
	// stored reports how many integrated records the backend holds for a run.
	stored func(runID string) (int, error)
}

// openWriters returns every configured export. PostgreSQL and the workbook
// are mandatory and are prepared before any file is touched, so a failed
// connection leaves earlier outputs intact. CSV and SQLite are skipped with
// a warning when they cannot be opened.
func openWriters(cfg *config.Config, logger *utils.Logger) ([]namedWriter, error) {
	var pg *namedWriter
	if cfg.PostgresEnabled {
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.PostgresMaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		}
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), retry)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		pg = &namedWriter{"PostgreSQL", pgWriter, pgWriter.Count}
	}

	xlsxWriter, err := storage.NewXLSXWriter(cfg.XLSXOutputPath)
	if err != nil {
		if pg != nil {
			_ = pg.writer.Close()
		}
		return nil, fmt.Errorf("failed to prepare workbook: %w", err)
	}
	writers := []namedWriter{{name: "Workbook", writer: xlsxWriter}}

	if cfg.CSVOutputPath != "" {
		csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
		if err != nil {
			logger.Warn("CSV export disabled: %v", err)
		} else {
			writers = append(writers, namedWriter{name: "CSV", writer: csvWriter})
		}
	}

	if cfg.SQLiteOutputPath != "" {
		sqliteWriter, err := storage.NewSQLiteWriter(cfg.SQLiteOutputPath)
		if err != nil {
			logger.Warn("SQLite export disabled: %v", err)
		} else {
			writers = append(writers, namedWriter{"SQLite", sqliteWriter, func(string) (int, error) {
				return sqliteWriter.Count("integrated")
			}})
		}
	}

	if pg != nil {
		writers = append(writers, *pg)
	}
	return writers, nil
}

func logStored(w namedWriter, runID string, logger *utils.Logger) {
	if w.stored == nil {
		return
	}
	n, err := w.stored(runID)
	if err != nil {
		logger.Warn("%s row count: %v", w.name, err)
		return
	}
	logger.Info("%s holds %d integrated records for run %s", w.name, n, runID)
}

func writeSummary(path string, summary *models.Summary, logger *utils.Logger) {
	if prev, err := storage.ReadSummary(path); err == nil {
		logger.Info("Previous run %s had %d vehicles, this run has %d",
			prev.RunID, prev.Vehicles, summary.Vehicles)
	}
	if err := storage.NewSummaryWriter(path).Write(summary); err != nil {
		logger.Warn("Summary not written: %v", err)
		return
	}
	logger.Info("Summary saved to %s", path)
}

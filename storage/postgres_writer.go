package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"car-integration/models"
	"car-integration/utils"
)

// integratedColumnsSQL lists the table columns in IntegratedColumns order.
var integratedColumnsSQL = []string{
	"car_type", "color", "condition", "currency", "drive", "city", "country",
	"make", "manufacture_year", "mileage", "mileage_unit", "model",
	"model_variant", "price_on_request", "type", "zip", "manufacture_month",
	"fuel_consumption_unit",
}

const postgresBatchSize = 50

// execer is the part of *sql.DB and *sql.Tx the export statements need.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// PostgresWriter persists integrated records to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying the ping with
// back-off, runs schema migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS integrated_vehicles (
			id                    SERIAL PRIMARY KEY,
			run_id                TEXT NOT NULL,
			car_type              TEXT NOT NULL,
			color                 TEXT NOT NULL,
			condition             TEXT NOT NULL,
			currency              VARCHAR(3) NOT NULL,
			drive                 VARCHAR(3) NOT NULL,
			city                  TEXT,
			country               VARCHAR(2) NOT NULL,
			make                  TEXT,
			manufacture_year      TEXT,
			mileage               TEXT,
			mileage_unit          TEXT NOT NULL,
			model                 TEXT,
			model_variant         TEXT,
			price_on_request      TEXT,
			type                  TEXT NOT NULL,
			zip                   TEXT NOT NULL,
			manufacture_month     TEXT,
			fuel_consumption_unit TEXT,
			created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_integrated_vehicles_make     ON integrated_vehicles(make);
		CREATE INDEX IF NOT EXISTS idx_integrated_vehicles_car_type ON integrated_vehicles(car_type);
		CREATE INDEX IF NOT EXISTS idx_integrated_vehicles_zip      ON integrated_vehicles(zip);
	`)
	return err
}

// Write replaces the table contents with the run's integrated records. The
// clear and every batch insert share one transaction, so a failed run leaves
// the previous contents in place. An empty run still clears the table.
func (pw *PostgresWriter) Write(result *models.Result) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := replaceIntegrated(tx, result.RunID, result.Integrated); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func replaceIntegrated(ex execer, runID string, records []*models.IntegratedRecord) error {
	if _, err := ex.Exec("DELETE FROM integrated_vehicles"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i := 0; i < len(records); i += postgresBatchSize {
		end := i + postgresBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := insertBatch(ex, runID, records[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func insertBatch(ex execer, runID string, batch []*models.IntegratedRecord) error {
	width := len(integratedColumnsSQL) + 1
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*width)

	for idx, rec := range batch {
		placeholders := make([]string, width)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", idx*width+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		valueArgs = append(valueArgs, runID)
		for _, v := range rec.Values() {
			valueArgs = append(valueArgs, v)
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO integrated_vehicles (run_id, %s)
		VALUES %s
	`, strings.Join(integratedColumnsSQL, ", "), strings.Join(valueStrings, ","))

	if _, err := ex.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// Count returns how many rows the given run stored.
func (pw *PostgresWriter) Count(runID string) (int, error) {
	var n int
	err := pw.db.QueryRow(`SELECT COUNT(*) FROM integrated_vehicles WHERE run_id = $1`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"car-integration/models"
)

// sqliteTables maps each stage table to its SQLite table name.
var sqliteTables = map[string]string{
	models.SheetPreprocessed: "preprocessed",
	models.SheetNormalized:   "normalized",
	models.SheetIntegrated:   "integrated",
}

// SQLiteWriter exports every stage table into a SQLite database file.
// Tables are dropped and recreated on each Write.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter opens (or creates) the database at path.
func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create output dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return &SQLiteWriter{db: db}, nil
}

// Write stores the three stage tables in one transaction.
func (s *SQLiteWriter) Write(result *models.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range result.Tables() {
		if err := writeTable(tx, sqliteTables[t.Name], result.RunID, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func writeTable(tx *sql.Tx, name, runID string, t *models.Table) error {
	defs := []string{`"run_id" TEXT NOT NULL`}
	cols := []string{`"run_id"`}
	used := map[string]int{"run_id": 1}
	for _, c := range t.Columns {
		col := uniqueColumn(used, c)
		defs = append(defs, fmt.Sprintf("%s TEXT", quoteIdent(col)))
		cols = append(cols, quoteIdent(col))
	}

	if _, err := tx.Exec(`DROP TABLE IF EXISTS ` + quoteIdent(name)); err != nil {
		return fmt.Errorf("sqlite: drop %s: %w", name, err)
	}
	if _, err := tx.Exec(`CREATE TABLE ` + quoteIdent(name) + ` (` + strings.Join(defs, ",") + `)`); err != nil {
		return fmt.Errorf("sqlite: create %s: %w", name, err)
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.Prepare(`INSERT INTO ` + quoteIdent(name) + ` (` + strings.Join(cols, ",") + `) VALUES (` + ph + `)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare %s: %w", name, err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]any, 0, len(cols))
		args = append(args, runID)
		for _, v := range row {
			args = append(args, v)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("sqlite: insert into %s: %w", name, err)
		}
	}
	return nil
}

// uniqueColumn suffixes names that SQLite would treat as duplicates, since
// column names are compared case-insensitively.
func uniqueColumn(used map[string]int, name string) string {
	key := strings.ToLower(name)
	used[key]++
	if used[key] == 1 {
		return name
	}
	alt := fmt.Sprintf("%s_%d", name, used[key])
	used[strings.ToLower(alt)]++
	return alt
}

// quoteIdent double-quotes an identifier; supplier attribute names may
// contain spaces or punctuation.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Count returns the number of rows stored in one stage table.
func (s *SQLiteWriter) Count(table string) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + quoteIdent(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count %s: %w", table, err)
	}
	return n, nil
}

func (s *SQLiteWriter) Close() error {
	return s.db.Close()
}

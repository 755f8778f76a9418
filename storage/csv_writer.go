package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"car-integration/models"
)

// CSVWriter writes the integrated records to a flat CSV file in the target
// schema order, rendering missing values as "null".
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(models.IntegratedColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one line per integrated record.
func (c *CSVWriter) Write(result *models.Result) error {
	table := models.IntegratedTable(result.Integrated)
	for _, row := range table.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = models.Cell(v)
		}
		if err := c.writer.Write(rec); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

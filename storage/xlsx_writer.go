package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"car-integration/models"
)

// defaultSheet is the sheet every new excelize workbook starts with.
const defaultSheet = "Sheet1"

// XLSXWriter exports the three stage tables as sheets of one workbook.
// Missing values are written as the literal "null".
type XLSXWriter struct {
	path string
}

// NewXLSXWriter prepares a workbook export at path. Intermediate directories
// are created automatically.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &XLSXWriter{path: path}, nil
}

// Write replaces the workbook with one sheet per stage of the result.
func (x *XLSXWriter) Write(result *models.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range result.Tables() {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.Name); err != nil {
				return fmt.Errorf("xlsx: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("xlsx: create sheet %q: %w", t.Name, err)
		}
		if err := writeSheet(f, t); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, t *models.Table) error {
	sw, err := f.NewStreamWriter(t.Name)
	if err != nil {
		return fmt.Errorf("xlsx: stream %q: %w", t.Name, err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("xlsx: write header %q: %w", t.Name, err)
	}

	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = models.Cell(v)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("xlsx: write row %d of %q: %w", r+1, t.Name, err)
		}
	}
	return sw.Flush()
}

// Close is a no-op; the workbook is written and closed by Write.
func (x *XLSXWriter) Close() error {
	return nil
}

package models

import "database/sql"

// Sheet names used by every tabular export.
const (
	SheetPreprocessed = "Pre-processed Data"
	SheetNormalized   = "Normalized Data"
	SheetIntegrated   = "Integrated Data"
)

// NullText is how a missing value is rendered in flat exports.
const NullText = "null"

// Table is a flat, column-ordered view of one stage's records.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]sql.NullString
}

// Cell renders a value for a flat export.
func Cell(v sql.NullString) string {
	if !v.Valid {
		return NullText
	}
	return v.String
}

// Tables returns the three stage outputs of a result as export tables.
func (r *Result) Tables() []*Table {
	normalized := make([]*AggregatedRecord, len(r.Normalized))
	for i, n := range r.Normalized {
		normalized[i] = &n.AggregatedRecord
	}
	return []*Table{
		recordTable(SheetPreprocessed, r.Aggregated),
		recordTable(SheetNormalized, normalized),
		IntegratedTable(r.Integrated),
	}
}

// IntegratedTable lays out integrated records in the target schema order.
func IntegratedTable(records []*IntegratedRecord) *Table {
	t := &Table{Name: SheetIntegrated, Columns: IntegratedColumns}
	for _, rec := range records {
		t.Rows = append(t.Rows, rec.Values())
	}
	return t
}

// recordTable builds a sparse table: identity columns first, then the union
// of attribute names in first-seen order. Absent attributes stay null.
func recordTable(name string, records []*AggregatedRecord) *Table {
	columns := append([]string(nil), KeyColumns...)
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		seen[c] = struct{}{}
	}
	for _, rec := range records {
		for _, attr := range rec.Order {
			if _, ok := seen[attr]; ok {
				continue
			}
			seen[attr] = struct{}{}
			columns = append(columns, attr)
		}
	}

	t := &Table{Name: name, Columns: columns}
	for _, rec := range records {
		row := make([]sql.NullString, len(columns))
		for i, c := range columns {
			row[i] = rec.Value(c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

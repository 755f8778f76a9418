package storage

import (
	"bufio"
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"car-integration/models"
)

// ErrMalformedLine is returned when a catalog line is not a JSON object.
var ErrMalformedLine = errors.New("malformed catalog line")

const (
	keyID              = "ID"
	keyMakeText        = "MakeText"
	keyTypeName        = "TypeName"
	keyTypeNameFull    = "TypeNameFull"
	keyModelText       = "ModelText"
	keyModelTypeText   = "ModelTypeText"
	keyAttributeNames  = "Attribute Names"
	keyAttributeValues = "Attribute Values"
)

// auxiliaryKeys are supplier fields that some catalogs carry as top-level
// keys instead of attribute pairs. They are folded into the attributes.
var auxiliaryKeys = []string{
	"Seats", "BodyTypeText", "BodyColorText", "ConditionTypeText", "City",
	"FirstRegYear", "FirstRegMonth", "Km", "ConsumptionTotalText",
}

// JSONLReader reads a line-delimited JSON supplier catalog.
type JSONLReader struct {
	path string
}

// NewJSONLReader creates a reader for the catalog at path.
func NewJSONLReader(path string) *JSONLReader {
	return &JSONLReader{path: path}
}

// ReadAll loads every row of the catalog into memory.
func (r *JSONLReader) ReadAll() ([]*models.RawRow, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("jsonl: open %q: %w", r.path, err)
	}
	defer f.Close()

	rows, err := DecodeRows(f)
	if err != nil {
		return nil, fmt.Errorf("jsonl: %s: %w", r.path, err)
	}
	return rows, nil
}

// DecodeRows parses one raw row per non-blank line.
func DecodeRows(rd io.Reader) ([]*models.RawRow, error) {
	sc := bufio.NewScanner(rd)
	buf := make([]byte, 0, 1024*1024)
	sc.Buffer(buf, 20*1024*1024)

	var rows []*models.RawRow
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if lineNo == 1 {
			line = bytes.TrimPrefix(line, []byte("\xef\xbb\xbf"))
		}
		if len(line) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil || obj == nil {
			return nil, fmt.Errorf("%w at line %d", ErrMalformedLine, lineNo)
		}
		// One object per line; anything after it is an error.
		var trailing json.RawMessage
		if err := dec.Decode(&trailing); err != io.EOF {
			return nil, fmt.Errorf("%w at line %d: trailing data", ErrMalformedLine, lineNo)
		}
		rows = append(rows, parseRow(obj))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func parseRow(obj map[string]any) *models.RawRow {
	row := &models.RawRow{
		ID:            toText(obj[keyID]).String,
		MakeText:      toText(obj[keyMakeText]),
		TypeName:      toText(obj[keyTypeName]),
		TypeNameFull:  toText(obj[keyTypeNameFull]),
		ModelText:     toText(obj[keyModelText]),
		ModelTypeText: toText(obj[keyModelTypeText]),
	}

	for _, key := range auxiliaryKeys {
		if v, ok := obj[key]; ok {
			row.Attributes = append(row.Attributes, models.Attribute{Name: key, Value: toText(v)})
		}
	}

	names := asList(obj[keyAttributeNames])
	values := asList(obj[keyAttributeValues])
	for i := 0; i < len(names) && i < len(values); i++ {
		name := toText(names[i])
		if !name.Valid {
			continue
		}
		row.Attributes = append(row.Attributes, models.Attribute{Name: name.String, Value: toText(values[i])})
	}
	return row
}

// asList treats a scalar as a one-element list; absent means empty.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// toText renders a decoded JSON value as an optional string.
func toText(v any) sql.NullString {
	switch t := v.(type) {
	case nil:
		return sql.NullString{}
	case string:
		return models.Text(t)
	case json.Number:
		return models.Text(t.String())
	case bool:
		return models.Text(strconv.FormatBool(t))
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return sql.NullString{}
		}
		return models.Text(strings.TrimSpace(string(b)))
	}
}

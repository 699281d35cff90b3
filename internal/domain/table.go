package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Table is the row-oriented form of a provider payload with display
// column names applied. Rows hold the payload cells untouched; cells can
// be strings, numbers, or nil depending on the API version.
type Table struct {
	Kind        DatasetKind `json:"kind"`
	Columns     []string    `json:"columns"`
	Rows        [][]any     `json:"rows"`
	RetrievedAt time.Time   `json:"retrieved_at"`
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a display column, or -1 when the
// column is absent. Absence is an expected branch, not an error: the
// provider omits columns the query did not populate.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a display column is present.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Records returns the rows as column-name to value maps, the shape
// published by the export sink.
func (t *Table) Records() []map[string]any {
	records := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for j, col := range t.Columns {
			if j < len(row) {
				rec[col] = row[j]
			}
		}
		records[i] = rec
	}
	return records
}

// cellBlank reports whether a cell carries no value: nil, or a string of
// only whitespace. Plot paths skip blank cells rather than fail on them.
func cellBlank(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(c) == ""
	default:
		return false
	}
}

// cellFloat coerces a non-blank cell to float64. The v1.0 endpoints
// serialize numbers as strings, so numeric strings are accepted alongside
// real JSON numbers.
func cellFloat(v any) (float64, error) {
	switch c := v.(type) {
	case float64:
		return c, nil
	case json.Number:
		return c.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(c), 64)
	case int:
		return float64(c), nil
	case int64:
		return float64(c), nil
	default:
		return 0, fmt.Errorf("cell %v (%T) is not numeric", v, v)
	}
}

// cellString renders a cell for hover text.
func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case json.Number:
		return c.String()
	default:
		return fmt.Sprintf("%v", c)
	}
}

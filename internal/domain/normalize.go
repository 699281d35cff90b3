package domain

import (
	"encoding/json"
	"errors"
)

// Payload mirrors the columnar envelope returned by the SSD/CNEOS
// endpoints. Signature stays raw because the provider usually puts a
// source/version object there; it is only consulted as a column list
// when Fields is absent.
type Payload struct {
	Fields    []string        `json:"fields"`
	Signature json.RawMessage `json:"signature"`
	Data      [][]any         `json:"data"`
	Error     string          `json:"error"`
}

// Normalization failures. Both mean "no data to show", never a crash.
var (
	ErrNoColumns = errors.New("payload carries no fields or signature column list")
	ErrNoRows    = errors.New("payload carries no data rows")
)

// columnNames resolves the column list: fields when present, otherwise a
// signature that decodes as a JSON string array.
func (p Payload) columnNames() []string {
	if len(p.Fields) > 0 {
		return p.Fields
	}
	if len(p.Signature) > 0 {
		var alt []string
		if err := json.Unmarshal(p.Signature, &alt); err == nil && len(alt) > 0 {
			return alt
		}
	}
	return nil
}

// Normalize converts a columnar payload into a row-oriented Table for
// the given dataset kind.
//
// Cells zip positionally against the resolved column list: rows longer
// than the column list are truncated, shorter rows are padded with nil.
// The kind's rename table is applied to columns that are present; unknown
// columns pass through unrenamed, and source order defines column order.
// RetrievedAt is stamped from the package clock.
func Normalize(p Payload, kind DatasetKind) (*Table, error) {
	names := p.columnNames()
	if len(names) == 0 {
		return nil, ErrNoColumns
	}
	if len(p.Data) == 0 {
		return nil, ErrNoRows
	}

	renames := kind.Renames()
	columns := make([]string, len(names))
	for i, name := range names {
		if display, ok := renames[name]; ok {
			columns[i] = display
		} else {
			columns[i] = name
		}
	}

	rows := make([][]any, len(p.Data))
	for i, src := range p.Data {
		row := make([]any, len(names))
		copy(row, src)
		rows[i] = row
	}

	return &Table{
		Kind:        kind,
		Columns:     columns,
		Rows:        rows,
		RetrievedAt: clock.Now(),
	}, nil
}

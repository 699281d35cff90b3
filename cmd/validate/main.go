// Command validate checks saved SSD/CNEOS payload files against the
// explorer's normalization and chart rules. It decodes each envelope,
// runs it through the same code paths the service uses, and reports
// column resolution, row shape, rename coverage, and chart eligibility,
// so provider format drift shows up before it reaches the UI.
//
// Usage:
//
//	go run ./cmd/validate -dataset fireball fixtures/fireball.json
//	go run ./cmd/validate -dataset cad fixtures/cad_jan.json fixtures/cad_feb.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cdcockrum/cneos-explorer/internal/domain"
)

// phase tracks pass/fail for one validation phase of one file.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataset := flag.String("dataset", "", "dataset the files belong to: fireball or cad")
	flag.Parse()

	kind, ok := datasetKind(*dataset)
	if !ok || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(kind, flag.Args()); code != 0 {
		os.Exit(code)
	}
}

func datasetKind(name string) (domain.DatasetKind, bool) {
	switch name {
	case "fireball":
		return domain.Fireball, true
	case "cad", "close-approach":
		return domain.CloseApproach, true
	}
	return "", false
}

func run(kind domain.DatasetKind, paths []string) int {
	fmt.Printf("=== %s payload validation ===\n\n", kind)

	// Chart aborts explain themselves through the builder's log output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var phases []*phase
	totalRows := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: read %s: %v\n", path, err)
			return 1
		}

		filePhases, rows := validateFile(filepath.Base(path), data, kind, logger)
		phases = append(phases, filePhases...)
		totalRows += rows
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-52s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Files: %d, data rows: %d\n", len(paths), totalRows)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validateFile(name string, data []byte, kind domain.DatasetKind, logger *slog.Logger) ([]*phase, int) {
	envelope := &phase{name: name + " · Phase 1: Envelope"}
	payload, meta := checkEnvelope(envelope, data)
	if !envelope.passed() {
		return []*phase{envelope}, 0
	}

	columns := &phase{name: name + " · Phase 2: Column resolution"}
	table := checkColumns(columns, payload, kind)
	if table == nil {
		return []*phase{envelope, columns}, len(payload.Data)
	}

	rows := &phase{name: name + " · Phase 3: Row shape"}
	checkRows(rows, payload, table, meta)

	chart := &phase{name: name + " · Phase 4: Chart eligibility"}
	checkChart(chart, table, logger)

	return []*phase{envelope, columns, rows, chart}, len(payload.Data)
}

// ── Phase 1: Envelope ──
// The file must decode as the provider's columnar envelope and must not
// carry the provider's error key.

type envelopeMeta struct {
	Count any `json:"count"`
}

func checkEnvelope(p *phase, data []byte) (domain.Payload, envelopeMeta) {
	var payload domain.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		p.errorf("not a columnar envelope: %v", err)
		return payload, envelopeMeta{}
	}
	if payload.Error != "" {
		p.errorf("provider error payload: %q", payload.Error)
	}

	var meta envelopeMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		p.errorf("decode count: %v", err)
	}
	return payload, meta
}

// ── Phase 2: Column resolution ──
// Normalization must resolve a column list and apply every rename the
// dataset defines for the columns present.

func checkColumns(p *phase, payload domain.Payload, kind domain.DatasetKind) *domain.Table {
	table, err := domain.Normalize(payload, kind)
	if err != nil {
		p.errorf("normalize: %v", err)
		return nil
	}

	sources := sourceColumns(payload)
	if len(table.Columns) != len(sources) {
		p.errorf("resolved %d columns from %d source names", len(table.Columns), len(sources))
	}

	renames := kind.Renames()
	for _, src := range sources {
		display, renamed := renames[src]
		if !renamed {
			continue
		}
		if !table.HasColumn(display) {
			p.errorf("source column %q missing display name %q", src, display)
		}
		if table.HasColumn(src) {
			p.errorf("source column %q survived the rename to %q", src, display)
		}
	}
	return table
}

// sourceColumns mirrors normalization's column resolution: fields when
// present, otherwise a signature that decodes as a string array.
func sourceColumns(payload domain.Payload) []string {
	if len(payload.Fields) > 0 {
		return payload.Fields
	}
	var alt []string
	if err := json.Unmarshal(payload.Signature, &alt); err == nil {
		return alt
	}
	return nil
}

// ── Phase 3: Row shape ──
// Every source row must carry one cell per column, the table must keep
// every source row, and the envelope count must agree with the data.

func checkRows(p *phase, payload domain.Payload, table *domain.Table, meta envelopeMeta) {
	if table.Len() != len(payload.Data) {
		p.errorf("table has %d rows, payload has %d", table.Len(), len(payload.Data))
	}

	want := len(table.Columns)
	for i, src := range payload.Data {
		if len(src) != want {
			p.errorf("data row %d has %d cells, expected %d", i, len(src), want)
		}
	}

	if count, ok := countValue(meta.Count); ok && count != len(payload.Data) {
		p.errorf("envelope count %d disagrees with %d data rows", count, len(payload.Data))
	}
}

// countValue normalizes the provider's count, which arrives as a string
// on fireball.api and a number on cad.api.
func countValue(v any) (int, bool) {
	switch c := v.(type) {
	case string:
		n, err := strconv.Atoi(c)
		return n, err == nil
	case float64:
		return int(c), true
	}
	return 0, false
}

// ── Phase 4: Chart eligibility ──
// When the columns a chart binds to are present, the builder must accept
// the cell values. Missing bindings are fine; garbage in them is not.

func checkChart(p *phase, table *domain.Table, logger *slog.Logger) {
	chart := domain.BuildChart(table, logger)
	if chart != nil {
		return
	}

	switch table.Kind {
	case domain.Fireball:
		if !table.HasColumn("Latitude") || !table.HasColumn("Longitude") {
			fmt.Printf("  Note: %s rows are not chartable (no Latitude/Longitude)\n", table.Kind)
			return
		}
	case domain.CloseApproach:
		if len(table.Columns) < 2 && !table.HasColumn("Velocity (km/s)") {
			fmt.Printf("  Note: %s rows are not chartable (fewer than two columns)\n", table.Kind)
			return
		}
	}
	p.errorf("chart columns are present but no chart was built (see log output)")
}

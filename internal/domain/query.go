package domain

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// defaultLimit matches the UI's initial record count.
const defaultLimit = 10

// ValidationError reports a user-supplied filter value that cannot be
// sent to the provider. Its message is shown to the user verbatim.
type ValidationError struct {
	Field string // user-facing field label, e.g. "energy"
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Error: Invalid %s value '%s'. Please enter a valid number.", e.Field, e.Value)
}

// FireballQuery holds validated fireball.api filter parameters. Optional
// fields are nil/blank when the user left them empty.
type FireballQuery struct {
	Limit     int
	DateMin   string
	EnergyMin *float64
}

// ParseFireballQuery validates raw form inputs for the fireball dataset.
// A blank limit defaults to 10; a non-numeric limit or energy returns a
// *ValidationError and nothing is sent upstream. Dates pass through
// untouched: the provider rejects malformed dates with its own error
// payload.
func ParseFireballQuery(limit, dateMin, energyMin string) (FireballQuery, error) {
	n, err := parseLimit(limit)
	if err != nil {
		return FireballQuery{}, err
	}

	energy, err := parseOptionalNumber("energy", energyMin)
	if err != nil {
		return FireballQuery{}, err
	}

	return FireballQuery{
		Limit:     n,
		DateMin:   strings.TrimSpace(dateMin),
		EnergyMin: energy,
	}, nil
}

// Params encodes the query for fireball.api. Only present values are
// included, and provider parameter names are verbatim.
func (q FireballQuery) Params() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.DateMin != "" {
		v.Set("date-min", q.DateMin)
	}
	if q.EnergyMin != nil {
		v.Set("energy-min", formatNumber(*q.EnergyMin))
	}
	return v
}

// CloseApproachInput holds the raw form values for a close-approach
// search, all optional except that limit defaults when blank.
type CloseApproachInput struct {
	Limit   string
	DistMax string
	DateMin string
	DateMax string
	HMin    string
	HMax    string
	VInfMin string
	VInfMax string
}

// CloseApproachQuery holds validated cad.api filter parameters.
type CloseApproachQuery struct {
	Limit   int
	DistMax *float64
	DateMin string
	DateMax string
	HMin    *float64
	HMax    *float64
	VInfMin *float64
	VInfMax *float64
}

// ParseCloseApproachQuery validates raw form inputs for the
// close-approach dataset. Each numeric field is checked independently so
// the error names the exact field and value the user got wrong.
func ParseCloseApproachQuery(in CloseApproachInput) (CloseApproachQuery, error) {
	n, err := parseLimit(in.Limit)
	if err != nil {
		return CloseApproachQuery{}, err
	}

	q := CloseApproachQuery{
		Limit:   n,
		DateMin: strings.TrimSpace(in.DateMin),
		DateMax: strings.TrimSpace(in.DateMax),
	}

	fields := []struct {
		label string
		raw   string
		dst   **float64
	}{
		{"maximum distance", in.DistMax, &q.DistMax},
		{"minimum H", in.HMin, &q.HMin},
		{"maximum H", in.HMax, &q.HMax},
		{"minimum velocity", in.VInfMin, &q.VInfMin},
		{"maximum velocity", in.VInfMax, &q.VInfMax},
	}
	for _, f := range fields {
		v, err := parseOptionalNumber(f.label, f.raw)
		if err != nil {
			return CloseApproachQuery{}, err
		}
		*f.dst = v
	}

	return q, nil
}

// Params encodes the query for cad.api. Results are always requested in
// date order.
func (q CloseApproachQuery) Params() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("sort", "date")
	if q.DistMax != nil {
		v.Set("dist-max", formatNumber(*q.DistMax))
	}
	if q.DateMin != "" {
		v.Set("date-min", q.DateMin)
	}
	if q.DateMax != "" {
		v.Set("date-max", q.DateMax)
	}
	if q.HMin != nil {
		v.Set("h-min", formatNumber(*q.HMin))
	}
	if q.HMax != nil {
		v.Set("h-max", formatNumber(*q.HMax))
	}
	if q.VInfMin != nil {
		v.Set("v-inf-min", formatNumber(*q.VInfMin))
	}
	if q.VInfMax != nil {
		v.Set("v-inf-max", formatNumber(*q.VInfMax))
	}
	return v
}

// parseLimit parses the record limit. Blank means the default; anything
// that is not a positive integer is rejected.
func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &ValidationError{Field: "limit", Value: raw}
	}
	return n, nil
}

// parseOptionalNumber parses an optional numeric filter. Blank returns
// nil. NaN and infinities parse but cannot be transmitted, so they are
// rejected like any other invalid input.
func parseOptionalNumber(label, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &ValidationError{Field: label, Value: raw}
	}
	return &v, nil
}

// formatNumber renders a filter value the way the provider expects,
// without exponent notation or trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

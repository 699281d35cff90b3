// Command mockssd serves canned fireball.api and cad.api responses so the
// explorer can be developed and demoed without reaching NASA. It honors
// limit and the numeric filters, and answers malformed filter values with
// the provider's error envelope.
//
// Usage:
//
//	go run ./cmd/mockssd -addr :7070
//
// Then point the explorer at it:
//
//	FIREBALL_API_URL=http://localhost:7070/fireball.api \
//	CAD_API_URL=http://localhost:7070/cad.api \
//	go run ./cmd/explorer
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"
)

// envelope mirrors the SSD/CNEOS columnar response shape. Count is a
// string for fireball.api (v1.0) and a number for cad.api (v1.5).
type envelope struct {
	Signature map[string]string `json:"signature"`
	Count     any               `json:"count"`
	Fields    []string          `json:"fields"`
	Data      [][]any           `json:"data"`
}

var fireballFields = []string{"date", "energy", "impact-e", "lat", "lat-dir", "lon", "lon-dir", "alt", "vel"}

var fireballData = [][]any{
	{"2025-12-22 07:44:10", "2.1", "6.2", "33.6", "S", "118.4", "W", "31.5", "15.1"},
	{"2025-11-08 12:08:33", "0.42", "1.4", "14.2", "N", "337.2", "E", "33.3", "18.2"},
	{"2025-09-14 01:21:50", "7.6", "21.0", "-5.3", "S", "151.9", "E", "28.0", "21.4"},
	{"2025-07-03 18:55:04", "0.18", "0.56", "48.1", "N", "-102.7", "W", nil, nil},
	{"2025-05-27 22:12:47", "1.3", "3.9", "-33.5", "S", "151.2", "E", "35.2", "16.8"},
	{"2025-03-19 04:30:12", "0.95", "2.8", "10.0", "N", "-20.0", "W", "30.1", "19.5"},
	{"2025-02-02 09:17:39", "4.2", "12.0", "62.4", "N", "17.6", "E", "27.7", "14.3"},
	{"2025-01-11 16:03:58", "0.29", "0.89", "-21.8", "S", "-68.2", "W", "32.9", "22.0"},
}

var cadFields = []string{"des", "orbit_id", "jd", "cd", "dist", "dist_min", "dist_max", "v_rel", "v_inf", "t_sigma_f", "h"}

var cadData = [][]any{
	{"2010 AB", "12", "2461041.5", "2026-Jan-01 12:00", "0.0502", "0.0499", "0.0505", "15.30", "15.28", "< 00:01", "22.1"},
	{"433 Eros", "674", "2461081.5", "2026-Feb-10 03:30", "0.1498", "0.1498", "0.1498", "5.83", "5.80", "< 00:01", "10.4"},
	{"2019 XS", "34", "2461120.5", "2026-Mar-21 08:45", "0.0121", "0.0119", "0.0123", "9.47", "9.42", "00:02", "24.7"},
	{"99942 Apophis", "221", "2461160.5", "2026-Apr-30 11:15", "0.0923", "0.0923", "0.0923", "7.42", "7.39", "< 00:01", "19.7"},
	{"2024 YR4", "9", "2461200.5", "2026-Jun-08 19:20", "0.0034", "0.0028", "0.0041", "13.25", "13.21", "00:14", "23.9"},
	{"2005 ED224", "41", "2461239.5", "2026-Jul-17 02:05", "0.0456", "0.0450", "0.0462", "22.10", "22.07", "00:05", "26.3"},
	{"1620 Geographos", "512", "2461279.5", "2026-Aug-26 14:50", "0.1102", "0.1102", "0.1102", "11.87", "11.84", "< 00:01", "15.2"},
	{"2017 BQ6", "28", "2461318.5", "2026-Oct-04 21:35", "0.0789", "0.0782", "0.0796", "6.54", "6.50", "00:03", nil},
}

func main() {
	addr := flag.String("addr", ":7070", "listen address")
	delay := flag.Duration("delay", 0, "artificial response delay, for timeout testing")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /fireball.api", handleFireball(*delay))
	mux.HandleFunc("GET /cad.api", handleCAD(*delay))

	log.Printf("mockssd listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func handleFireball(delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		q := r.URL.Query()

		limit, err := parseLimit(q.Get("limit"), len(fireballData))
		if err != nil {
			writeErrorEnvelope(w, err)
			return
		}

		rows := fireballData
		if v := q.Get("date-min"); v != "" {
			rows = filterString(rows, 0, func(cell string) bool { return cell >= v })
		}
		if v := q.Get("energy-min"); v != "" {
			min, err := strconv.ParseFloat(v, 64)
			if err != nil {
				writeErrorEnvelope(w, fmt.Errorf("invalid value for energy-min: %q", v))
				return
			}
			rows = filterNumeric(rows, 1, func(f float64) bool { return f >= min })
		}
		rows = truncate(rows, limit)

		writeJSON(w, envelope{
			Signature: map[string]string{"source": "NASA/JPL Fireball Data API", "version": "1.0"},
			Count:     strconv.Itoa(len(rows)),
			Fields:    fireballFields,
			Data:      rows,
		})
	}
}

func handleCAD(delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		q := r.URL.Query()

		limit, err := parseLimit(q.Get("limit"), len(cadData))
		if err != nil {
			writeErrorEnvelope(w, err)
			return
		}

		rows := cadData
		numericFilters := []struct {
			param string
			col   int
			keep  func(cell, bound float64) bool
		}{
			{"dist-max", 4, func(cell, bound float64) bool { return cell <= bound }},
			{"h-min", 10, func(cell, bound float64) bool { return cell >= bound }},
			{"h-max", 10, func(cell, bound float64) bool { return cell <= bound }},
			{"v-inf-min", 8, func(cell, bound float64) bool { return cell >= bound }},
			{"v-inf-max", 8, func(cell, bound float64) bool { return cell <= bound }},
		}
		for _, f := range numericFilters {
			v := q.Get(f.param)
			if v == "" {
				continue
			}
			bound, err := strconv.ParseFloat(v, 64)
			if err != nil {
				writeErrorEnvelope(w, fmt.Errorf("invalid value for %s: %q", f.param, v))
				return
			}
			keep := f.keep
			rows = filterNumeric(rows, f.col, func(cell float64) bool { return keep(cell, bound) })
		}
		// Dates are ignored: cd uses month-name timestamps and the canned
		// set is small enough to eyeball.
		rows = truncate(rows, limit)

		writeJSON(w, envelope{
			Signature: map[string]string{"source": "NASA/JPL SBDB Close Approach Data API", "version": "1.5"},
			Count:     len(rows),
			Fields:    cadFields,
			Data:      rows,
		})
	}
}

func parseLimit(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid value for limit: %q", raw)
	}
	return n, nil
}

func filterString(rows [][]any, col int, keep func(string) bool) [][]any {
	var out [][]any
	for _, row := range rows {
		s, ok := row[col].(string)
		if ok && keep(s) {
			out = append(out, row)
		}
	}
	return out
}

func filterNumeric(rows [][]any, col int, keep func(float64) bool) [][]any {
	var out [][]any
	for _, row := range rows {
		s, ok := row[col].(string)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		if keep(f) {
			out = append(out, row)
		}
	}
	return out
}

func truncate(rows [][]any, limit int) [][]any {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func writeErrorEnvelope(w http.ResponseWriter, err error) {
	writeJSON(w, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

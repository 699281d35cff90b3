// Package domain models NASA SSD/CNEOS near-Earth-object data.
//
// # Data Source
//
// Records come from two JPL Solar System Dynamics (SSD) REST endpoints
// operated for the Center for Near Earth Object Studies (CNEOS):
//
//	https://ssd-api.jpl.nasa.gov/fireball.api  (atmospheric fireball events)
//	https://ssd-api.jpl.nasa.gov/cad.api       (close-approach records)
//
// Both return the same columnar envelope:
//
//	{
//	  "signature": {"source": "...", "version": "1.0"},
//	  "count": "20",
//	  "fields": ["date", "energy", ...],
//	  "data": [["2023-01-01 12:04:33", "0.5", ...], ...]
//	}
//
// or, when the request cannot be served, a bare error object:
//
//	{"error": "invalid value specified for query parameter 'date-min'"}
//
// Column names live in "fields"; each element of "data" is one row whose
// cells line up positionally with "fields". Some responses carry the
// column list under "signature" instead, so the normalizer accepts either
// key, but only when the value is actually a JSON array of strings. The
// usual "signature" is the source/version object above, which is
// metadata, not columns.
//
// Cell values are untyped: the v1.0 endpoints serialize every number as a
// JSON string ("energy": "0.42"), newer versions use real numbers, and
// close-approach rows may contain nulls. Coercion helpers in this package
// accept all three.
//
// # Query Parameters
//
// Provider parameter names are hyphenated and must be sent verbatim:
//
//	fireball.api: limit, date-min, energy-min
//	cad.api:      limit, date-min, date-max, dist-max, h-min, h-max,
//	              v-inf-min, v-inf-max, sort
//
// Dates are ISO "YYYY-MM-DD" strings. Close-approach results are always
// requested with sort=date. Blank or absent filters are never
// transmitted; the provider treats an empty value as malformed.
//
// # Display Columns
//
// Each dataset has a fixed rename table mapping provider keys to the
// labels shown in the UI, e.g. "energy" → "Energy (kt)" and "h" →
// "H (mag)" (absolute magnitude, a brightness-based proxy for object
// size). Close-approach timestamps ("cd") are in TDB, Barycentric
// Dynamical Time. Columns absent from a response are simply not renamed;
// columns the rename table does not know pass through unchanged.
package domain

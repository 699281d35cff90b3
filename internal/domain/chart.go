package domain

import "log/slog"

const (
	fireballChartTitle      = "Fireball Events"
	closeApproachChartTitle = "Close Approaches - Distance vs Velocity"
	geoProjectionType       = "natural earth"

	// Marker sizes are scaled so the largest value renders at
	// markerSizeMax pixels, area-proportional, never below markerSizeMin.
	markerSizeMax = 20.0
	markerSizeMin = 4.0
)

// Chart is a renderer-ready figure: one trace plus layout, serialized in
// the shape plotly.js consumes directly.
type Chart struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace holds the plotted series. Fireballs use lat/lon on a geographic
// scatter; close approaches use x/y. X and Y carry cell values untouched
// so string-valued columns fall back to a categorical axis.
type Trace struct {
	Type   string    `json:"type"`
	Mode   string    `json:"mode"`
	Lat    []float64 `json:"lat,omitempty"`
	Lon    []float64 `json:"lon,omitempty"`
	X      []any     `json:"x,omitempty"`
	Y      []any     `json:"y,omitempty"`
	Text   []string  `json:"text,omitempty"`
	Marker *Marker   `json:"marker,omitempty"`
}

// Marker carries per-point sizing and coloring.
type Marker struct {
	Size       []float64 `json:"size,omitempty"`
	SizeMode   string    `json:"sizemode,omitempty"`
	SizeRef    float64   `json:"sizeref,omitempty"`
	SizeMin    float64   `json:"sizemin,omitempty"`
	Color      []float64 `json:"color,omitempty"`
	ColorScale string    `json:"colorscale,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
}

// Layout holds figure-level presentation.
type Layout struct {
	Title Title      `json:"title"`
	Geo   *GeoLayout `json:"geo,omitempty"`
	XAxis *Axis      `json:"xaxis,omitempty"`
	YAxis *Axis      `json:"yaxis,omitempty"`
}

// Title is the plotly title object form.
type Title struct {
	Text string `json:"text"`
}

// GeoLayout selects the map projection for geographic traces.
type GeoLayout struct {
	Projection Projection `json:"projection"`
}

// Projection names a plotly geo projection.
type Projection struct {
	Type string `json:"type"`
}

// Axis labels one cartesian axis.
type Axis struct {
	Title Title `json:"title"`
}

// BuildChart maps a normalized table to a chart for its dataset kind.
// A nil result means no chart: required columns are missing, no plottable
// rows remain, or a bound cell could not be interpreted. The table itself
// is always still usable; chart failures are logged and absorbed here.
func BuildChart(t *Table, logger *slog.Logger) *Chart {
	if t == nil || t.Len() == 0 || len(t.Columns) == 0 {
		return nil
	}
	switch t.Kind {
	case Fireball:
		return buildFireballChart(t, logger)
	case CloseApproach:
		return buildCloseApproachChart(t, logger)
	default:
		logger.Warn("no chart shape for dataset", "dataset", t.Kind)
		return nil
	}
}

// buildFireballChart plots events on a world map. Latitude and Longitude
// are required; Energy (kt) sizes markers when present; Date/Time labels
// hover text when present. Rows with blank bound cells are skipped.
func buildFireballChart(t *Table, logger *slog.Logger) *Chart {
	latIdx := t.ColumnIndex(ColLatitude)
	lonIdx := t.ColumnIndex(ColLongitude)
	if latIdx < 0 || lonIdx < 0 {
		logger.Info("skipping fireball chart, location columns missing", "columns", t.Columns)
		return nil
	}
	energyIdx := t.ColumnIndex(ColEnergy)
	dateIdx := t.ColumnIndex(ColDateTime)

	var lat, lon, sizes []float64
	var text []string
	for _, row := range t.Rows {
		if len(row) != len(t.Columns) {
			continue
		}
		if cellBlank(row[latIdx]) || cellBlank(row[lonIdx]) {
			continue
		}
		if energyIdx >= 0 && cellBlank(row[energyIdx]) {
			continue
		}

		la, err := cellFloat(row[latIdx])
		if err != nil {
			logger.Warn("skipping fireball chart", "column", ColLatitude, "error", err)
			return nil
		}
		lo, err := cellFloat(row[lonIdx])
		if err != nil {
			logger.Warn("skipping fireball chart", "column", ColLongitude, "error", err)
			return nil
		}
		var size float64
		if energyIdx >= 0 {
			size, err = cellFloat(row[energyIdx])
			if err != nil {
				logger.Warn("skipping fireball chart", "column", ColEnergy, "error", err)
				return nil
			}
			if size < 0 {
				logger.Warn("skipping fireball chart, negative marker size", "column", ColEnergy, "value", size)
				return nil
			}
		}

		lat = append(lat, la)
		lon = append(lon, lo)
		if energyIdx >= 0 {
			sizes = append(sizes, size)
		}
		if dateIdx >= 0 {
			text = append(text, cellString(row[dateIdx]))
		}
	}
	if len(lat) == 0 {
		logger.Info("skipping fireball chart, no plottable rows", "rows", t.Len())
		return nil
	}

	trace := Trace{Type: "scattergeo", Mode: "markers", Lat: lat, Lon: lon, Text: text}
	if energyIdx >= 0 {
		trace.Marker = &Marker{
			Size:     sizes,
			SizeMode: "area",
			SizeRef:  areaSizeRef(sizes),
			SizeMin:  markerSizeMin,
		}
	}
	return &Chart{
		Data: []Trace{trace},
		Layout: Layout{
			Title: Title{Text: fireballChartTitle},
			Geo:   &GeoLayout{Projection: Projection{Type: geoProjectionType}},
		},
	}
}

// buildCloseApproachChart plots an XY scatter. X binds to Nominal
// Distance (au) when present, else the first column; Y binds to
// Velocity (km/s) when present, else the second column. H (mag) drives
// both marker size and color when present; Object labels hover text.
func buildCloseApproachChart(t *Table, logger *slog.Logger) *Chart {
	xIdx := t.ColumnIndex(ColNominalDistance)
	if xIdx < 0 {
		xIdx = 0
	}
	yIdx := t.ColumnIndex(ColVelocity)
	if yIdx < 0 {
		if len(t.Columns) < 2 {
			logger.Info("skipping close approach chart, too few columns", "columns", t.Columns)
			return nil
		}
		yIdx = 1
	}
	hIdx := t.ColumnIndex(ColMagnitude)
	objIdx := t.ColumnIndex(ColObject)

	var xs, ys []any
	var hs []float64
	var text []string
	for _, row := range t.Rows {
		if len(row) != len(t.Columns) {
			continue
		}
		if cellBlank(row[xIdx]) || cellBlank(row[yIdx]) {
			continue
		}
		if hIdx >= 0 && cellBlank(row[hIdx]) {
			continue
		}

		if hIdx >= 0 {
			h, err := cellFloat(row[hIdx])
			if err != nil {
				logger.Warn("skipping close approach chart", "column", ColMagnitude, "error", err)
				return nil
			}
			if h < 0 {
				logger.Warn("skipping close approach chart, negative marker size", "column", ColMagnitude, "value", h)
				return nil
			}
			hs = append(hs, h)
		}
		xs = append(xs, row[xIdx])
		ys = append(ys, row[yIdx])
		if objIdx >= 0 {
			text = append(text, cellString(row[objIdx]))
		}
	}
	if len(xs) == 0 {
		logger.Info("skipping close approach chart, no plottable rows", "rows", t.Len())
		return nil
	}

	trace := Trace{Type: "scatter", Mode: "markers", X: xs, Y: ys, Text: text}
	if hIdx >= 0 {
		trace.Marker = &Marker{
			Size:       hs,
			SizeMode:   "area",
			SizeRef:    areaSizeRef(hs),
			SizeMin:    markerSizeMin,
			Color:      hs,
			ColorScale: "Viridis",
			ShowScale:  true,
		}
	}
	return &Chart{
		Data: []Trace{trace},
		Layout: Layout{
			Title: Title{Text: closeApproachChartTitle},
			XAxis: &Axis{Title: Title{Text: t.Columns[xIdx]}},
			YAxis: &Axis{Title: Title{Text: t.Columns[yIdx]}},
		},
	}
}

// areaSizeRef computes the plotly sizeref that renders the largest value
// at markerSizeMax pixels under area scaling.
func areaSizeRef(sizes []float64) float64 {
	var max float64
	for _, s := range sizes {
		if s > max {
			max = s
		}
	}
	return 2 * max / (markerSizeMax * markerSizeMax)
}

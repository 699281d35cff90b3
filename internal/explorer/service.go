// Package explorer wires queries, the upstream client, normalization, and
// chart construction into dataset views ready for rendering.
package explorer

import (
	"context"
	"log/slog"

	"github.com/cdcockrum/cneos-explorer/internal/domain"
	"github.com/cdcockrum/cneos-explorer/internal/observability"
)

// User-facing status messages. A view carries at most one.
const (
	MsgNoData            = "No data returned from API. There might be an issue with the connection or parameters."
	MsgNoFireballData    = "No fireball data available for the specified parameters."
	MsgNoCloseApproaches = "No close approach data available for the specified parameters."
)

// Fetcher retrieves columnar payloads from the data provider.
type Fetcher interface {
	Fireballs(ctx context.Context, q domain.FireballQuery) (domain.Payload, error)
	CloseApproaches(ctx context.Context, q domain.CloseApproachQuery) (domain.Payload, error)
}

// Exporter publishes normalized tables to an external sink.
type Exporter interface {
	ExportTable(ctx context.Context, table *domain.Table) error
}

// View is one rendered dataset response: a table, an optional chart, and
// a status message when data is unavailable. Fetch and normalization
// failures end here; callers only ever see a message.
type View struct {
	Table   *domain.Table `json:"table,omitempty"`
	Chart   *domain.Chart `json:"chart,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Service runs the fetch, normalize, chart sequence for both datasets.
type Service struct {
	fetcher  Fetcher
	exporter Exporter // nil when export is disabled
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates the explorer service. A nil exporter disables export.
func New(fetcher Fetcher, exporter Exporter, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		fetcher:  fetcher,
		exporter: exporter,
		logger:   logger,
		metrics:  metrics,
	}
}

// Fireballs fetches and presents fireball events.
func (s *Service) Fireballs(ctx context.Context, q domain.FireballQuery) View {
	payload, err := s.fetcher.Fireballs(ctx, q)
	if err != nil {
		return View{Message: MsgNoData}
	}
	return s.present(ctx, payload, domain.Fireball, MsgNoFireballData)
}

// CloseApproaches fetches and presents close-approach records.
func (s *Service) CloseApproaches(ctx context.Context, q domain.CloseApproachQuery) View {
	payload, err := s.fetcher.CloseApproaches(ctx, q)
	if err != nil {
		return View{Message: MsgNoData}
	}
	return s.present(ctx, payload, domain.CloseApproach, MsgNoCloseApproaches)
}

func (s *Service) present(ctx context.Context, payload domain.Payload, kind domain.DatasetKind, emptyMsg string) View {
	table, err := domain.Normalize(payload, kind)
	if err != nil {
		s.logger.Info("no table from payload", "dataset", kind, "error", err)
		return View{Message: emptyMsg}
	}

	s.metrics.TablesNormalized.WithLabelValues(kind.String()).Inc()
	s.metrics.TableRows.WithLabelValues(kind.String()).Observe(float64(table.Len()))

	chart := domain.BuildChart(table, s.logger)
	if chart != nil {
		s.metrics.ChartsBuilt.WithLabelValues(kind.String(), "built").Inc()
	} else {
		s.metrics.ChartsBuilt.WithLabelValues(kind.String(), "skipped").Inc()
	}

	s.export(ctx, table)

	return View{Table: table, Chart: chart}
}

// export publishes the table when a sink is configured. Failures are
// counted and logged, never surfaced: the view renders regardless.
func (s *Service) export(ctx context.Context, table *domain.Table) {
	if s.exporter == nil {
		return
	}
	if err := s.exporter.ExportTable(ctx, table); err != nil {
		s.metrics.ExportErrors.Inc()
		s.logger.Warn("table export failed", "dataset", table.Kind, "error", err)
		return
	}
	s.metrics.ExportMessages.Add(float64(table.Len()))
}

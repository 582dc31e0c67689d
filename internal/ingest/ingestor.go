package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-revenue-sync/internal/domain"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
	"github.com/feral-file/ff-revenue-sync/internal/providers/defillama"
	"github.com/feral-file/ff-revenue-sync/internal/store"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
	"github.com/feral-file/ff-revenue-sync/internal/types"
)

// IngestorConfig holds configuration for the metric ingestor
type IngestorConfig struct {
	// BackfillDays is the number of days before the cursor that are re-ingested
	BackfillDays int
}

// Ingestor ingests the metric series of one protocol
//
//go:generate mockgen -source=ingestor.go -destination=../mocks/ingestor.go -package=mocks -mock_names=Ingestor=MockIngestor
type Ingestor interface {
	// IngestOne fetches the full series of a protocol metric and writes the incremental slice.
	// It returns the number of points written, or the number that would be written on dry runs.
	IngestOne(ctx context.Context, slug string, kind domain.MetricKind, dryRun bool) (int, error)
}

type ingestor struct {
	config IngestorConfig
	client defillama.Client
	store  store.Store
	sink   logger.EventSink
}

// NewIngestor creates a new metric ingestor
func NewIngestor(cfg IngestorConfig, client defillama.Client, st store.Store, sink logger.EventSink) Ingestor {
	if cfg.BackfillDays < 0 {
		cfg.BackfillDays = domain.DEFAULT_BACKFILL_DAYS
	}
	if sink == nil {
		sink = logger.NopEventSink{}
	}
	return &ingestor{
		config: cfg,
		client: client,
		store:  st,
		sink:   sink,
	}
}

// IngestOne fetches the full series of a protocol metric and writes the incremental slice
func (i *ingestor) IngestOne(ctx context.Context, slug string, kind domain.MetricKind, dryRun bool) (int, error) {
	if !kind.IsValid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidMetricKind, kind)
	}

	summary, err := i.client.FetchMetricSummary(ctx, slug, kind)
	if err != nil {
		return 0, err
	}

	points, err := BuildMetricPoints(summary.Points)
	if err != nil {
		return 0, err
	}
	fetched := len(points)

	cursor, err := i.store.GetIngestCursor(ctx, slug, kind)
	if err != nil {
		return 0, err
	}
	cutoff := ""
	if cursor != nil {
		cutoff, err = domain.AddDays(*cursor, -i.config.BackfillDays)
		if err != nil {
			return 0, fmt.Errorf("invalid cursor for %s/%s: %w", slug, kind, err)
		}
		points = FilterFrom(points, cutoff)
	}

	logger.DebugCtx(ctx, "Prepared metric points",
		zap.String("slug", slug),
		zap.String("metric", string(kind)),
		zap.Int("fetched", fetched),
		zap.Int("pending", len(points)),
		zap.String("cutoff", cutoff),
		zap.Bool("dry_run", dryRun),
	)

	written := len(points)
	if !dryRun && len(points) > 0 {
		written, err = i.store.UpsertMetricPoints(ctx, store.UpsertMetricPointsInput{
			Slug:       slug,
			MetricType: kind,
			Points:     points,
		})
		if err != nil {
			return 0, err
		}
	}
	if !dryRun && fetched > 0 && summary.HasBreakdown {
		if err := i.store.MarkProtocolBreakdown(ctx, slug); err != nil {
			return 0, err
		}
	}

	i.sink.Record(ctx, logger.Event{
		Name:  "metric_ingested",
		Level: zapcore.DebugLevel,
		Fields: map[string]any{
			"slug":          slug,
			"metric":        string(kind),
			"fetched":       fetched,
			"written":       written,
			"cutoff":        cutoff,
			"dry_run":       dryRun,
			"has_breakdown": summary.HasBreakdown,
		},
	})

	return written, nil
}

// BuildMetricPoints converts upstream series points into daily rows ordered by date.
// Breakdown values are summed into the row value and kept as the breakdown payload.
// Points with a non-finite total are dropped; when several points fall on the same
// day the last one wins.
func BuildMetricPoints(series []defillama.SeriesPoint) ([]schema.ProtocolMetric, error) {
	byDate := make(map[string]schema.ProtocolMetric, len(series))

	for _, p := range series {
		total := p.Value.Total()
		if !types.IsFinite(total) {
			continue
		}

		ts := p.Timestamp
		point := schema.ProtocolMetric{
			Date:            domain.DateFromUnix(ts),
			Value:           total,
			SourceTimestamp: &ts,
		}
		if p.Value.IsBreakdown() {
			raw, err := json.Marshal(p.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to encode breakdown: %w", err)
			}
			point.Breakdown = datatypes.JSON(raw)
		}

		byDate[point.Date] = point
	}

	points := make([]schema.ProtocolMetric, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, p)
	}
	sort.Slice(points, func(a, b int) bool {
		return points[a].Date < points[b].Date
	})

	return points, nil
}

// FilterFrom drops the points dated strictly before cutoff
func FilterFrom(points []schema.ProtocolMetric, cutoff string) []schema.ProtocolMetric {
	kept := points[:0]
	for _, p := range points {
		if p.Date >= cutoff {
			kept = append(kept, p)
		}
	}
	return kept
}

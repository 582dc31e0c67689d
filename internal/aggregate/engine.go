package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/domain"
	"github.com/feral-file/ff-revenue-sync/internal/store"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
	"github.com/feral-file/ff-revenue-sync/internal/types"
)

// AggregateFilter selects the protocols and windows to aggregate
type AggregateFilter struct {
	// Slugs to aggregate; empty means every tracked protocol
	Slugs []string
	// Windows in days; empty means domain.DefaultWindows
	Windows []int
	// Preference orders the metrics tried for each window; empty means auto
	Preference domain.MetricPreference
	// PEMultiple enables the annualized valuation when set
	PEMultiple *float64
	// AsOf is the last day included in every window; zero means today (UTC)
	AsOf time.Time
}

// WindowAggregate is the total of one protocol over one window
type WindowAggregate struct {
	Days                int                `json:"days"`
	CutoffDate          string             `json:"cutoffDate"`
	Metric              *domain.MetricKind `json:"metric"`
	Total               *float64           `json:"total"`
	Points              int64              `json:"points"`
	AnnualizedValuation *float64           `json:"annualizedValuation,omitempty"`
}

// ProtocolAggregate holds the windowed totals of one protocol
type ProtocolAggregate struct {
	Slug         string            `json:"slug"`
	Name         string            `json:"name,omitempty"`
	DisplayName  string            `json:"displayName,omitempty"`
	Logo         string            `json:"logo,omitempty"`
	Category     string            `json:"category,omitempty"`
	HasBreakdown bool              `json:"hasBreakdown"`
	Windows      []WindowAggregate `json:"windows"`
}

// SeriesPoint is one stored daily value
type SeriesPoint struct {
	Date      string          `json:"date"`
	Value     float64         `json:"value"`
	Breakdown json.RawMessage `json:"breakdown,omitempty"`
}

// ProtocolSeries holds every stored point of a protocol, per metric
type ProtocolSeries struct {
	Slug         string                              `json:"slug"`
	Name         string                              `json:"name,omitempty"`
	DisplayName  string                              `json:"displayName,omitempty"`
	Logo         string                              `json:"logo,omitempty"`
	HasBreakdown bool                                `json:"hasBreakdown"`
	Metrics      map[domain.MetricKind][]SeriesPoint `json:"metrics"`
}

// CoverageFilter selects the protocols of a coverage listing
type CoverageFilter struct {
	// Slugs to list; empty means every tracked protocol
	Slugs []string
	// TrackedOnly drops requested slugs that are not tracked
	TrackedOnly bool
}

// MetricCoverage is the stored history of one metric
type MetricCoverage struct {
	Metric    domain.MetricKind `json:"metric"`
	Points    int64             `json:"points"`
	FirstDate string            `json:"firstDate"`
	LastDate  string            `json:"lastDate"`
}

// CoverageEntry lists the stored history of one protocol
type CoverageEntry struct {
	Slug        string           `json:"slug"`
	Name        string           `json:"name,omitempty"`
	DisplayName string           `json:"displayName,omitempty"`
	Tracked     bool             `json:"tracked"`
	Metrics     []MetricCoverage `json:"metrics"`
}

// Engine computes windowed aggregates over stored metrics
type Engine interface {
	// GetWindowedAggregates returns the per-window totals of every selected protocol
	GetWindowedAggregates(ctx context.Context, filter AggregateFilter) ([]ProtocolAggregate, error)
	// GetSeries returns every stored point of a protocol, domain.ErrProtocolNotFound if absent
	GetSeries(ctx context.Context, identifier string) (*ProtocolSeries, error)
	// GetCoverageList returns the stored history per protocol and metric
	GetCoverageList(ctx context.Context, filter CoverageFilter) ([]CoverageEntry, error)
}

type engine struct {
	store store.Store
	clock adapter.Clock
}

// NewEngine creates a new aggregation engine
func NewEngine(st store.Store, clock adapter.Clock) Engine {
	return &engine{
		store: st,
		clock: clock,
	}
}

type metricKey struct {
	slug   string
	metric domain.MetricKind
}

// GetWindowedAggregates returns the per-window totals of every selected protocol.
//
// For each window the metric is the first one in preference order that has
// stored history, counting a metric without rows in the window as zero once
// the protocol has any row there. When none qualifies, the first metric with a
// total in the window is used. A window with no data has a nil metric and total.
func (e *engine) GetWindowedAggregates(ctx context.Context, filter AggregateFilter) ([]ProtocolAggregate, error) {
	windows, err := resolveWindows(filter.Windows)
	if err != nil {
		return nil, err
	}

	preference := filter.Preference
	if preference == "" {
		preference = domain.MetricPreferenceAuto
	}
	if !preference.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMetricPreference, preference)
	}
	order := preference.Order()

	slugs, err := e.resolveSlugs(ctx, filter.Slugs)
	if err != nil {
		return nil, err
	}
	if len(slugs) == 0 {
		return []ProtocolAggregate{}, nil
	}

	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = e.clock.Now()
	}
	today := domain.DateOf(asOf)

	coverage, err := e.store.GetMetricCoverage(ctx, slugs)
	if err != nil {
		return nil, err
	}
	covered := make(map[metricKey]bool, len(coverage))
	for _, c := range coverage {
		if c.Points > 0 {
			covered[metricKey{c.Slug, c.MetricType}] = true
		}
	}

	protocols, err := e.store.GetProtocolsBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	meta := make(map[string]schema.Protocol, len(protocols))
	for _, p := range protocols {
		meta[p.Slug] = p
	}

	aggregates := make([]ProtocolAggregate, len(slugs))
	for i, slug := range slugs {
		p := meta[slug]
		aggregates[i] = ProtocolAggregate{
			Slug:         slug,
			Name:         p.Name,
			DisplayName:  p.DisplayName,
			Logo:         p.Logo,
			Category:     p.Category,
			HasBreakdown: p.HasBreakdown,
			Windows:      make([]WindowAggregate, 0, len(windows)),
		}
	}

	for _, days := range windows {
		cutoff, err := domain.AddDays(today, -(days - 1))
		if err != nil {
			return nil, err
		}

		sums, err := e.store.SumMetricsSince(ctx, slugs, cutoff)
		if err != nil {
			return nil, err
		}
		totals := make(map[metricKey]store.MetricWindowSum, len(sums))
		for _, s := range sums {
			totals[metricKey{s.Slug, s.MetricType}] = s
		}

		for i := range aggregates {
			window := WindowAggregate{
				Days:       days,
				CutoffDate: cutoff,
			}

			if sum, ok := selectMetric(aggregates[i].Slug, order, covered, totals); ok {
				metric := sum.MetricType
				total := sum.Total
				window.Metric = &metric
				window.Total = &total
				window.Points = sum.Points
				if filter.PEMultiple != nil {
					window.AnnualizedValuation = AnnualizedValuation(window.Total, days, *filter.PEMultiple)
				}
			}

			aggregates[i].Windows = append(aggregates[i].Windows, window)
		}
	}

	return aggregates, nil
}

// selectMetric picks the window total of the first metric with coverage, then of the first metric with any total.
// Once a protocol has any row in the window, a covered metric without rows counts as a zero total.
func selectMetric(slug string, order []domain.MetricKind, covered map[metricKey]bool, totals map[metricKey]store.MetricWindowSum) (store.MetricWindowSum, bool) {
	inWindow := false
	for _, metric := range order {
		if _, ok := totals[metricKey{slug, metric}]; ok {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return store.MetricWindowSum{}, false
	}

	for _, metric := range order {
		key := metricKey{slug, metric}
		if !covered[key] {
			continue
		}
		if sum, ok := totals[key]; ok {
			return sum, true
		}
		return store.MetricWindowSum{Slug: slug, MetricType: metric}, true
	}
	for _, metric := range order {
		if sum, ok := totals[metricKey{slug, metric}]; ok {
			return sum, true
		}
	}
	return store.MetricWindowSum{}, false
}

// GetSeries returns every stored point of a protocol
func (e *engine) GetSeries(ctx context.Context, identifier string) (*ProtocolSeries, error) {
	protocol, err := e.store.FindProtocol(ctx, identifier)
	if err != nil {
		return nil, err
	}

	slug := types.NormalizeKey(identifier)
	series := &ProtocolSeries{Slug: slug}
	if protocol != nil {
		series.Slug = protocol.Slug
		series.Name = protocol.Name
		series.DisplayName = protocol.DisplayName
		series.Logo = protocol.Logo
		series.HasBreakdown = protocol.HasBreakdown
	}

	points, err := e.store.GetMetricSeries(ctx, series.Slug)
	if err != nil {
		return nil, err
	}
	if protocol == nil && len(points) == 0 {
		return nil, domain.ErrProtocolNotFound
	}

	series.Metrics = make(map[domain.MetricKind][]SeriesPoint)
	for _, p := range points {
		point := SeriesPoint{
			Date:  p.Date,
			Value: p.Value,
		}
		if len(p.Breakdown) > 0 {
			point.Breakdown = json.RawMessage(p.Breakdown)
		}
		series.Metrics[p.MetricType] = append(series.Metrics[p.MetricType], point)
	}

	return series, nil
}

// GetCoverageList returns the stored history per protocol and metric
func (e *engine) GetCoverageList(ctx context.Context, filter CoverageFilter) ([]CoverageEntry, error) {
	tracked, err := e.store.ListTrackedProtocols(ctx)
	if err != nil {
		return nil, err
	}
	trackedSet := make(map[string]bool, len(tracked))
	for _, t := range tracked {
		trackedSet[t.Slug] = true
	}

	var slugs []string
	if len(filter.Slugs) == 0 {
		for _, t := range tracked {
			slugs = append(slugs, t.Slug)
		}
	} else {
		for _, s := range filter.Slugs {
			slug := types.NormalizeKey(s)
			if slug == "" || slices.Contains(slugs, slug) {
				continue
			}
			if filter.TrackedOnly && !trackedSet[slug] {
				continue
			}
			slugs = append(slugs, slug)
		}
	}
	if len(slugs) == 0 {
		return []CoverageEntry{}, nil
	}

	protocols, err := e.store.GetProtocolsBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	meta := make(map[string]schema.Protocol, len(protocols))
	for _, p := range protocols {
		meta[p.Slug] = p
	}

	coverage, err := e.store.GetMetricCoverage(ctx, slugs)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string][]MetricCoverage, len(slugs))
	for _, c := range coverage {
		bySlug[c.Slug] = append(bySlug[c.Slug], MetricCoverage{
			Metric:    c.MetricType,
			Points:    c.Points,
			FirstDate: c.FirstDate,
			LastDate:  c.LastDate,
		})
	}

	entries := make([]CoverageEntry, 0, len(slugs))
	for _, slug := range slugs {
		metrics := bySlug[slug]
		if metrics == nil {
			metrics = []MetricCoverage{}
		}
		entries = append(entries, CoverageEntry{
			Slug:        slug,
			Name:        meta[slug].Name,
			DisplayName: meta[slug].DisplayName,
			Tracked:     trackedSet[slug],
			Metrics:     metrics,
		})
	}

	return entries, nil
}

// resolveSlugs returns the requested slugs, or every tracked protocol when none is requested
func (e *engine) resolveSlugs(ctx context.Context, requested []string) ([]string, error) {
	var slugs []string
	if len(requested) > 0 {
		for _, s := range requested {
			slug := types.NormalizeKey(s)
			if slug != "" && !slices.Contains(slugs, slug) {
				slugs = append(slugs, slug)
			}
		}
		return slugs, nil
	}

	tracked, err := e.store.ListTrackedProtocols(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tracked {
		slugs = append(slugs, t.Slug)
	}
	return slugs, nil
}

// resolveWindows validates and deduplicates the requested windows, keeping their order
func resolveWindows(windows []int) ([]int, error) {
	if len(windows) == 0 {
		return slices.Clone(domain.DefaultWindows), nil
	}

	resolved := make([]int, 0, len(windows))
	for _, w := range windows {
		if !domain.IsValidWindow(w) {
			return nil, fmt.Errorf("%w: %d", domain.ErrInvalidWindow, w)
		}
		if !slices.Contains(resolved, w) {
			resolved = append(resolved, w)
		}
	}
	return resolved, nil
}

// AnnualizedValuation returns (total / windowDays) * 365 * pe.
// It is nil when total is nil or non-finite, windowDays is not positive, or pe is non-finite.
func AnnualizedValuation(total *float64, windowDays int, pe float64) *float64 {
	if total == nil || !types.IsFinite(*total) || windowDays <= 0 || !types.IsFinite(pe) {
		return nil
	}
	v := (*total / float64(windowDays)) * domain.DAYS_PER_YEAR * pe
	if !types.IsFinite(v) {
		return nil
	}
	return &v
}

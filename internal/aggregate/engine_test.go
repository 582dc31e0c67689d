package aggregate_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/aggregate"
	"github.com/feral-file/ff-revenue-sync/internal/config"
	"github.com/feral-file/ff-revenue-sync/internal/domain"
	"github.com/feral-file/ff-revenue-sync/internal/mocks"
	"github.com/feral-file/ff-revenue-sync/internal/store"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
	"github.com/feral-file/ff-revenue-sync/internal/types"
)

var jan3 = time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC)

// newTestStore opens a fresh migrated embedded database
func newTestStore(t *testing.T) store.Store {
	db, err := store.Open(config.DatabaseConfig{
		Driver: config.DatabaseDriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}, false)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return store.NewStore(db)
}

func writePoints(t *testing.T, st store.Store, slug string, metric domain.MetricKind, values map[string]float64) {
	points := make([]schema.ProtocolMetric, 0, len(values))
	for date, v := range values {
		points = append(points, schema.ProtocolMetric{Date: date, Value: v})
	}
	_, err := st.UpsertMetricPoints(context.Background(), store.UpsertMetricPointsInput{
		Slug:       slug,
		MetricType: metric,
		Points:     points,
	})
	require.NoError(t, err)
}

// seedStore stores alpha (fees only), beta (fees and revenue) and gamma (no data), all tracked
func seedStore(t *testing.T) store.Store {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.UpsertProtocols(ctx, []schema.Protocol{
		{Slug: "alpha", Name: "Alpha Protocol", DisplayName: "Alpha", Category: "Dexs", Chains: datatypes.JSONSlice[string]{"Ethereum"}},
		{Slug: "beta", Name: "Beta", DisplayName: "Beta Finance", Category: "Lending"},
		{Slug: "gamma", Name: "Gamma", DisplayName: "Gamma"},
	}))
	for _, slug := range []string{"alpha", "beta", "gamma"} {
		_, err := st.AddTrackedProtocol(ctx, slug, jan3)
		require.NoError(t, err)
	}

	writePoints(t, st, "alpha", domain.MetricKindFees, map[string]float64{
		"2024-01-01": 10,
		"2024-01-02": 20,
		"2024-01-03": 30,
	})
	writePoints(t, st, "beta", domain.MetricKindFees, map[string]float64{
		"2024-01-02": 100,
		"2024-01-03": 100,
	})
	writePoints(t, st, "beta", domain.MetricKindRevenue, map[string]float64{
		"2024-01-03": 40,
	})

	return st
}

func findWindow(t *testing.T, aggregates []aggregate.ProtocolAggregate, slug string, days int) aggregate.WindowAggregate {
	for _, a := range aggregates {
		if a.Slug != slug {
			continue
		}
		for _, w := range a.Windows {
			if w.Days == days {
				return w
			}
		}
	}
	t.Fatalf("window %d of %s not found", days, slug)
	return aggregate.WindowAggregate{}
}

func TestGetWindowedAggregates_FeesOnlyProtocol(t *testing.T) {
	engine := aggregate.NewEngine(seedStore(t), adapter.NewClock())

	aggregates, err := engine.GetWindowedAggregates(context.Background(), aggregate.AggregateFilter{
		Slugs:      []string{"alpha"},
		Windows:    []int{7, 1},
		PEMultiple: types.Float64Ptr(15),
		AsOf:       jan3,
	})
	require.NoError(t, err)
	require.Len(t, aggregates, 1)

	alpha := aggregates[0]
	assert.Equal(t, "alpha", alpha.Slug)
	assert.Equal(t, "Alpha", alpha.DisplayName)
	assert.Equal(t, "Dexs", alpha.Category)
	require.Len(t, alpha.Windows, 2)
	assert.Equal(t, 7, alpha.Windows[0].Days)

	week := alpha.Windows[0]
	assert.Equal(t, "2023-12-28", week.CutoffDate)
	require.NotNil(t, week.Metric)
	assert.Equal(t, domain.MetricKindFees, *week.Metric)
	require.NotNil(t, week.Total)
	assert.InDelta(t, 60, *week.Total, 1e-9)
	assert.Equal(t, int64(3), week.Points)
	require.NotNil(t, week.AnnualizedValuation)
	assert.InDelta(t, 60.0/7*365*15, *week.AnnualizedValuation, 1e-6)

	today := alpha.Windows[1]
	assert.Equal(t, "2024-01-03", today.CutoffDate)
	require.NotNil(t, today.Total)
	assert.InDelta(t, 30, *today.Total, 1e-9)
	assert.Equal(t, int64(1), today.Points)
}

func TestGetWindowedAggregates_Preference(t *testing.T) {
	engine := aggregate.NewEngine(seedStore(t), adapter.NewClock())
	ctx := context.Background()

	aggregates, err := engine.GetWindowedAggregates(ctx, aggregate.AggregateFilter{
		Slugs:   []string{"beta"},
		Windows: []int{7},
		AsOf:    jan3,
	})
	require.NoError(t, err)
	week := findWindow(t, aggregates, "beta", 7)
	require.NotNil(t, week.Metric)
	assert.Equal(t, domain.MetricKindRevenue, *week.Metric)
	assert.InDelta(t, 40, *week.Total, 1e-9)
	assert.Nil(t, week.AnnualizedValuation)

	aggregates, err = engine.GetWindowedAggregates(ctx, aggregate.AggregateFilter{
		Slugs:      []string{"beta"},
		Windows:    []int{7},
		Preference: domain.MetricPreferenceFees,
		AsOf:       jan3,
	})
	require.NoError(t, err)
	week = findWindow(t, aggregates, "beta", 7)
	require.NotNil(t, week.Metric)
	assert.Equal(t, domain.MetricKindFees, *week.Metric)
	assert.InDelta(t, 200, *week.Total, 1e-9)
}

func TestGetWindowedAggregates_DefaultsToTrackedAndAllWindows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClock := mocks.NewMockClock(ctrl)
	mockClock.EXPECT().Now().Return(jan3)

	engine := aggregate.NewEngine(seedStore(t), mockClock)

	aggregates, err := engine.GetWindowedAggregates(context.Background(), aggregate.AggregateFilter{})
	require.NoError(t, err)
	require.Len(t, aggregates, 3)
	assert.Equal(t, "alpha", aggregates[0].Slug)
	assert.Equal(t, "beta", aggregates[1].Slug)
	assert.Equal(t, "gamma", aggregates[2].Slug)

	for _, a := range aggregates {
		assert.Len(t, a.Windows, len(domain.DefaultWindows))
	}

	// No stored data
	gamma := findWindow(t, aggregates, "gamma", 30)
	assert.Nil(t, gamma.Metric)
	assert.Nil(t, gamma.Total)
	assert.Equal(t, int64(0), gamma.Points)

	alpha := findWindow(t, aggregates, "alpha", 365)
	require.NotNil(t, alpha.Total)
	assert.InDelta(t, 60, *alpha.Total, 1e-9)
}

func TestGetWindowedAggregates_CustomWindow(t *testing.T) {
	st := newTestStore(t)
	writePoints(t, st, "x", domain.MetricKindRevenue, map[string]float64{
		"2024-01-01": 10,
		"2024-01-02": 20,
		"2024-01-03": 30,
	})
	engine := aggregate.NewEngine(st, adapter.NewClock())

	aggregates, err := engine.GetWindowedAggregates(context.Background(), aggregate.AggregateFilter{
		Slugs:      []string{"x"},
		Windows:    []int{3},
		PEMultiple: types.Float64Ptr(15),
		AsOf:       time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	window := findWindow(t, aggregates, "x", 3)
	assert.Equal(t, "2024-01-01", window.CutoffDate)
	require.NotNil(t, window.Metric)
	assert.Equal(t, domain.MetricKindRevenue, *window.Metric)
	require.NotNil(t, window.Total)
	assert.InDelta(t, 60, *window.Total, 1e-9)
	assert.Equal(t, int64(3), window.Points)
	require.NotNil(t, window.AnnualizedValuation)
	assert.InDelta(t, 109500, *window.AnnualizedValuation, 1e-6)
}

func TestGetWindowedAggregates_CoveredMetricWithoutRowsIsZero(t *testing.T) {
	st := newTestStore(t)
	writePoints(t, st, "delta", domain.MetricKindHoldersRevenue, map[string]float64{"2023-11-01": 50})
	writePoints(t, st, "delta", domain.MetricKindFees, map[string]float64{"2024-01-02": 100})
	writePoints(t, st, "idle", domain.MetricKindHoldersRevenue, map[string]float64{"2023-11-01": 50})
	engine := aggregate.NewEngine(st, adapter.NewClock())

	aggregates, err := engine.GetWindowedAggregates(context.Background(), aggregate.AggregateFilter{
		Slugs:   []string{"delta", "idle"},
		Windows: []int{7},
		AsOf:    jan3,
	})
	require.NoError(t, err)

	week := findWindow(t, aggregates, "delta", 7)
	require.NotNil(t, week.Metric)
	assert.Equal(t, domain.MetricKindHoldersRevenue, *week.Metric)
	require.NotNil(t, week.Total)
	assert.Zero(t, *week.Total)
	assert.Equal(t, int64(0), week.Points)

	// No row at all in the window
	idle := findWindow(t, aggregates, "idle", 7)
	assert.Nil(t, idle.Metric)
	assert.Nil(t, idle.Total)
}

func TestGetWindowedAggregates_UnknownSlug(t *testing.T) {
	engine := aggregate.NewEngine(seedStore(t), adapter.NewClock())

	aggregates, err := engine.GetWindowedAggregates(context.Background(), aggregate.AggregateFilter{
		Slugs:   []string{" Missing ", "missing"},
		Windows: []int{30},
		AsOf:    jan3,
	})
	require.NoError(t, err)
	require.Len(t, aggregates, 1)
	assert.Equal(t, "missing", aggregates[0].Slug)
	assert.Empty(t, aggregates[0].Name)
	assert.Nil(t, aggregates[0].Windows[0].Total)
}

func TestGetWindowedAggregates_InvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := aggregate.NewEngine(mocks.NewMockStore(ctrl), adapter.NewClock())

	_, err := engine.GetWindowedAggregates(context.Background(), aggregate.AggregateFilter{Windows: []int{0}})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = engine.GetWindowedAggregates(context.Background(), aggregate.AggregateFilter{Windows: []int{7, -1}})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = engine.GetWindowedAggregates(context.Background(), aggregate.AggregateFilter{Preference: "tvl"})
	assert.ErrorIs(t, err, domain.ErrInvalidMetricPreference)
}

func TestGetWindowedAggregates_FallsBackToUncoveredMetric(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().GetMetricCoverage(gomock.Any(), []string{"alpha"}).Return(nil, nil)
	mockStore.EXPECT().GetProtocolsBySlugs(gomock.Any(), []string{"alpha"}).Return(nil, nil)
	mockStore.EXPECT().SumMetricsSince(gomock.Any(), []string{"alpha"}, "2023-12-05").
		Return([]store.MetricWindowSum{
			{Slug: "alpha", MetricType: domain.MetricKindFees, Total: 5, Points: 1},
		}, nil)

	engine := aggregate.NewEngine(mockStore, adapter.NewClock())

	aggregates, err := engine.GetWindowedAggregates(context.Background(), aggregate.AggregateFilter{
		Slugs:   []string{"alpha"},
		Windows: []int{30},
		AsOf:    jan3,
	})
	require.NoError(t, err)
	window := findWindow(t, aggregates, "alpha", 30)
	require.NotNil(t, window.Metric)
	assert.Equal(t, domain.MetricKindFees, *window.Metric)
	assert.InDelta(t, 5, *window.Total, 1e-9)
}

func TestGetSeries(t *testing.T) {
	st := seedStore(t)
	writePoints(t, st, "orphan", domain.MetricKindFees, map[string]float64{"2024-01-01": 1})
	engine := aggregate.NewEngine(st, adapter.NewClock())
	ctx := context.Background()
	require.NoError(t, st.MarkProtocolBreakdown(ctx, "alpha"))
	require.NoError(t, st.UpsertRawProtocols(ctx, []schema.RawProtocol{
		{UpstreamID: "42", Slug: "alpha-v2", Name: "Alpha V2", ParentProtocol: types.StringPtr("parent#alpha")},
	}))

	t.Run("resolves by name", func(t *testing.T) {
		series, err := engine.GetSeries(ctx, "alpha protocol")
		require.NoError(t, err)
		assert.Equal(t, "alpha", series.Slug)
		assert.Equal(t, "Alpha", series.DisplayName)
		assert.True(t, series.HasBreakdown)

		fees := series.Metrics[domain.MetricKindFees]
		require.Len(t, fees, 3)
		assert.Equal(t, "2024-01-01", fees[0].Date)
		assert.Equal(t, "2024-01-03", fees[2].Date)
		assert.InDelta(t, 30, fees[2].Value, 1e-9)
		assert.NotContains(t, series.Metrics, domain.MetricKindRevenue)
	})

	t.Run("resolves by upstream id of a child entry", func(t *testing.T) {
		series, err := engine.GetSeries(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, "alpha", series.Slug)
		assert.Len(t, series.Metrics[domain.MetricKindFees], 3)
	})

	t.Run("stored points without catalog entry", func(t *testing.T) {
		series, err := engine.GetSeries(ctx, "Orphan")
		require.NoError(t, err)
		assert.Equal(t, "orphan", series.Slug)
		assert.Len(t, series.Metrics[domain.MetricKindFees], 1)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := engine.GetSeries(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrProtocolNotFound)
	})
}

func TestGetCoverageList(t *testing.T) {
	engine := aggregate.NewEngine(seedStore(t), adapter.NewClock())
	ctx := context.Background()

	entries, err := engine.GetCoverageList(ctx, aggregate.CoverageFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	beta := entries[1]
	assert.Equal(t, "beta", beta.Slug)
	assert.Equal(t, "Beta Finance", beta.DisplayName)
	assert.True(t, beta.Tracked)
	require.Len(t, beta.Metrics, 2)
	assert.Equal(t, domain.MetricKindFees, beta.Metrics[0].Metric)
	assert.Equal(t, int64(2), beta.Metrics[0].Points)
	assert.Equal(t, "2024-01-02", beta.Metrics[0].FirstDate)
	assert.Equal(t, "2024-01-03", beta.Metrics[0].LastDate)

	assert.Empty(t, entries[2].Metrics)
	assert.NotNil(t, entries[2].Metrics)

	entries, err = engine.GetCoverageList(ctx, aggregate.CoverageFilter{Slugs: []string{"alpha", "untracked"}})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[1].Tracked)

	entries, err = engine.GetCoverageList(ctx, aggregate.CoverageFilter{Slugs: []string{"alpha", "untracked"}, TrackedOnly: true})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alpha", entries[0].Slug)
}

func TestAnnualizedValuation(t *testing.T) {
	total := 60.0
	v := aggregate.AnnualizedValuation(&total, 3, 15)
	require.NotNil(t, v)
	assert.InDelta(t, 109500, *v, 1e-9)

	assert.Nil(t, aggregate.AnnualizedValuation(nil, 3, 15))
	assert.Nil(t, aggregate.AnnualizedValuation(&total, 0, 15))
	assert.Nil(t, aggregate.AnnualizedValuation(&total, 3, math.NaN()))

	inf := math.Inf(1)
	assert.Nil(t, aggregate.AnnualizedValuation(&inf, 3, 15))
}

package ingest_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-revenue-sync/internal/config"
	"github.com/feral-file/ff-revenue-sync/internal/domain"
	"github.com/feral-file/ff-revenue-sync/internal/ingest"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
	"github.com/feral-file/ff-revenue-sync/internal/mocks"
	"github.com/feral-file/ff-revenue-sync/internal/providers/defillama"
	"github.com/feral-file/ff-revenue-sync/internal/store"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
)

const (
	jan1 = int64(1704067200) // 2024-01-01T00:00:00Z
	day  = int64(86400)
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

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

// dailySeries builds one scalar point per day starting at 2024-01-01
func dailySeries(days int, value float64) []defillama.SeriesPoint {
	series := make([]defillama.SeriesPoint, days)
	for i := range series {
		series[i] = defillama.SeriesPoint{
			Timestamp: jan1 + int64(i)*day,
			Value:     domain.Scalar(value),
		}
	}
	return series
}

func seriesValues(t *testing.T, st store.Store, slug string) map[string]float64 {
	points, err := st.GetMetricSeries(context.Background(), slug)
	require.NoError(t, err)
	values := make(map[string]float64, len(points))
	for _, p := range points {
		values[p.Date] = p.Value
	}
	return values
}

func TestIngestor_FirstRunSetsCursorToMaxDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockDefillamaClient(ctrl)
	st := newTestStore(t)
	ing := ingest.NewIngestor(ingest.IngestorConfig{BackfillDays: 5}, mockClient, st, nil)

	mockClient.EXPECT().
		FetchMetricSummary(gomock.Any(), "x", domain.MetricKindRevenue).
		Return(&defillama.MetricSummary{Points: dailySeries(3, 10)}, nil)

	written, err := ing.IngestOne(context.Background(), "x", domain.MetricKindRevenue, false)

	require.NoError(t, err)
	assert.Equal(t, 3, written)

	cursor, err := st.GetIngestCursor(context.Background(), "x", domain.MetricKindRevenue)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, "2024-01-03", *cursor)
}

func TestIngestor_BackfillWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockDefillamaClient(ctrl)
	st := newTestStore(t)
	ing := ingest.NewIngestor(ingest.IngestorConfig{BackfillDays: 5}, mockClient, st, nil)
	ctx := context.Background()

	gomock.InOrder(
		mockClient.EXPECT().
			FetchMetricSummary(gomock.Any(), "x", domain.MetricKindFees).
			Return(&defillama.MetricSummary{Points: dailySeries(10, 1)}, nil),
		mockClient.EXPECT().
			FetchMetricSummary(gomock.Any(), "x", domain.MetricKindFees).
			Return(&defillama.MetricSummary{Points: dailySeries(12, 100)}, nil),
	)

	written, err := ing.IngestOne(ctx, "x", domain.MetricKindFees, false)
	require.NoError(t, err)
	assert.Equal(t, 10, written)

	// Cursor is 2024-01-10, so only 2024-01-05 onward is rewritten
	written, err = ing.IngestOne(ctx, "x", domain.MetricKindFees, false)
	require.NoError(t, err)
	assert.Equal(t, 8, written)

	values := seriesValues(t, st, "x")
	require.Len(t, values, 12)
	assert.Equal(t, 1.0, values["2024-01-01"])
	assert.Equal(t, 1.0, values["2024-01-04"])
	assert.Equal(t, 100.0, values["2024-01-05"])
	assert.Equal(t, 100.0, values["2024-01-12"])

	cursor, err := st.GetIngestCursor(ctx, "x", domain.MetricKindFees)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, "2024-01-12", *cursor)
}

func TestIngestor_DryRunWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockDefillamaClient(ctrl)
	st := newTestStore(t)
	ing := ingest.NewIngestor(ingest.IngestorConfig{BackfillDays: 5}, mockClient, st, nil)

	mockClient.EXPECT().
		FetchMetricSummary(gomock.Any(), "x", domain.MetricKindRevenue).
		Return(&defillama.MetricSummary{Points: dailySeries(4, 10)}, nil)

	written, err := ing.IngestOne(context.Background(), "x", domain.MetricKindRevenue, true)

	require.NoError(t, err)
	assert.Equal(t, 4, written)
	assert.Empty(t, seriesValues(t, st, "x"))

	cursor, err := st.GetIngestCursor(context.Background(), "x", domain.MetricKindRevenue)
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestIngestor_BreakdownIsSummedAndKept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockDefillamaClient(ctrl)
	mockSink := mocks.NewMockEventSink(ctrl)
	st := newTestStore(t)
	require.NoError(t, st.UpsertProtocols(context.Background(), []schema.Protocol{{Slug: "uniswap", Name: "Uniswap", DisplayName: "Uniswap"}}))
	ing := ingest.NewIngestor(ingest.IngestorConfig{BackfillDays: 5}, mockClient, st, mockSink)

	value := domain.Breakdown(map[string]domain.Value{
		"ethereum": domain.Breakdown(map[string]domain.Value{"v2": domain.Scalar(1), "v3": domain.Scalar(2)}),
		"base":     domain.Scalar(3),
	})
	mockClient.EXPECT().
		FetchMetricSummary(gomock.Any(), "uniswap", domain.MetricKindHoldersRevenue).
		Return(&defillama.MetricSummary{
			Points:       []defillama.SeriesPoint{{Timestamp: jan1, Value: value}},
			HasBreakdown: true,
		}, nil)
	mockSink.EXPECT().Record(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, event logger.Event) {
			assert.Equal(t, "metric_ingested", event.Name)
			assert.Equal(t, 1, event.Fields["written"])
			assert.Equal(t, true, event.Fields["has_breakdown"])
		})

	written, err := ing.IngestOne(context.Background(), "uniswap", domain.MetricKindHoldersRevenue, false)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	points, err := st.GetMetricSeries(context.Background(), "uniswap")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 6.0, points[0].Value)
	assert.JSONEq(t, `{"ethereum":{"v2":1,"v3":2},"base":3}`, string(points[0].Breakdown))
	require.NotNil(t, points[0].SourceTimestamp)
	assert.Equal(t, jan1, *points[0].SourceTimestamp)

	protocol, err := st.GetProtocolBySlug(context.Background(), "uniswap")
	require.NoError(t, err)
	require.NotNil(t, protocol)
	assert.True(t, protocol.HasBreakdown)

	// Catalog refresh keeps the flag
	require.NoError(t, st.UpsertProtocols(context.Background(), []schema.Protocol{{Slug: "uniswap", Name: "Uniswap", DisplayName: "Uniswap V3"}}))
	protocol, err = st.GetProtocolBySlug(context.Background(), "uniswap")
	require.NoError(t, err)
	assert.True(t, protocol.HasBreakdown)
	assert.Equal(t, "Uniswap V3", protocol.DisplayName)
}

func TestIngestor_DryRunLeavesBreakdownFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockDefillamaClient(ctrl)
	st := newTestStore(t)
	require.NoError(t, st.UpsertProtocols(context.Background(), []schema.Protocol{{Slug: "uniswap", Name: "Uniswap", DisplayName: "Uniswap"}}))
	ing := ingest.NewIngestor(ingest.IngestorConfig{}, mockClient, st, nil)

	mockClient.EXPECT().
		FetchMetricSummary(gomock.Any(), "uniswap", domain.MetricKindFees).
		Return(&defillama.MetricSummary{Points: dailySeries(2, 1), HasBreakdown: true}, nil)

	_, err := ing.IngestOne(context.Background(), "uniswap", domain.MetricKindFees, true)
	require.NoError(t, err)

	protocol, err := st.GetProtocolBySlug(context.Background(), "uniswap")
	require.NoError(t, err)
	require.NotNil(t, protocol)
	assert.False(t, protocol.HasBreakdown)
}

func TestIngestor_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockDefillamaClient(ctrl)
	mockStore := mocks.NewMockStore(ctrl)
	ing := ingest.NewIngestor(ingest.IngestorConfig{BackfillDays: 5}, mockClient, mockStore, nil)

	expected := errors.New("status 429")
	mockClient.EXPECT().FetchMetricSummary(gomock.Any(), "x", domain.MetricKindFees).Return(nil, expected)

	_, err := ing.IngestOne(context.Background(), "x", domain.MetricKindFees, false)
	assert.ErrorIs(t, err, expected)
}

func TestIngestor_InvalidKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ing := ingest.NewIngestor(ingest.IngestorConfig{}, mocks.NewMockDefillamaClient(ctrl), mocks.NewMockStore(ctrl), nil)

	_, err := ing.IngestOne(context.Background(), "x", domain.MetricKind("tvl"), false)
	assert.ErrorIs(t, err, domain.ErrInvalidMetricKind)
}

func TestBuildMetricPoints(t *testing.T) {
	series := []defillama.SeriesPoint{
		{Timestamp: jan1 + day, Value: domain.Scalar(5)},
		{Timestamp: jan1, Value: domain.Scalar(1)},
		{Timestamp: jan1 + 3600, Value: domain.Scalar(2)},
		{Timestamp: jan1 + 2*day, Value: domain.Scalar(math.NaN())},
		{Timestamp: jan1 + 3*day, Value: domain.Scalar(math.Inf(1))},
	}

	points, err := ingest.BuildMetricPoints(series)

	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-01", points[0].Date)
	// Same day, last point wins
	assert.Equal(t, 2.0, points[0].Value)
	assert.Nil(t, points[0].Breakdown)
	assert.Equal(t, "2024-01-02", points[1].Date)
	assert.Equal(t, 5.0, points[1].Value)
}

func TestFilterFrom(t *testing.T) {
	points, err := ingest.BuildMetricPoints(dailySeries(10, 1))
	require.NoError(t, err)

	kept := ingest.FilterFrom(points, "2024-01-05")

	require.Len(t, kept, 6)
	assert.Equal(t, "2024-01-05", kept[0].Date)
	assert.Equal(t, "2024-01-10", kept[5].Date)
}

package scheduler_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/ingest"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
	"github.com/feral-file/ff-revenue-sync/internal/mocks"
	"github.com/feral-file/ff-revenue-sync/internal/scheduler"
	"github.com/feral-file/ff-revenue-sync/internal/store/schema"
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

// tickClock delivers ticks only when the test sends them
type tickClock struct {
	ticks chan time.Time
}

func newTickClock() *tickClock {
	return &tickClock{ticks: make(chan time.Time)}
}

func (c *tickClock) Now() time.Time                         { return time.Now() }
func (c *tickClock) Since(t time.Time) time.Duration        { return time.Since(t) }
func (c *tickClock) After(d time.Duration) <-chan time.Time { return c.ticks }

var _ adapter.Clock = (*tickClock)(nil)

func TestGate_TriggerNow_ReturnsResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCoordinator := mocks.NewMockCoordinator(ctrl)
	gate := scheduler.NewGate(mockCoordinator, adapter.NewClock())

	expected := &ingest.RunResult{RunID: "run", Status: schema.IngestRunStatusSuccess, ProtocolsProcessed: 2}
	mockCoordinator.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, opts ingest.RunOptions) (*ingest.RunResult, error) {
			assert.Equal(t, "manual", opts.Reason)
			assert.True(t, opts.DryRun)
			return expected, nil
		})

	result := gate.TriggerNow(context.Background(), "manual", ingest.RunOptions{DryRun: true})

	assert.Equal(t, expected, result)
	assert.False(t, gate.IsRunning())
}

func TestGate_TriggerNow_SecondTriggerIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCoordinator := mocks.NewMockCoordinator(ctrl)
	gate := scheduler.NewGate(mockCoordinator, adapter.NewClock())

	started := make(chan struct{})
	release := make(chan struct{})
	mockCoordinator.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, opts ingest.RunOptions) (*ingest.RunResult, error) {
			close(started)
			<-release
			return &ingest.RunResult{RunID: "first"}, nil
		}).
		Times(1)

	var (
		wg    sync.WaitGroup
		first *ingest.RunResult
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = gate.TriggerNow(context.Background(), "first", ingest.RunOptions{})
	}()

	<-started
	assert.True(t, gate.IsRunning())
	assert.Nil(t, gate.TriggerNow(context.Background(), "second", ingest.RunOptions{}))

	close(release)
	wg.Wait()

	require.NotNil(t, first)
	assert.Equal(t, "first", first.RunID)
	assert.False(t, gate.IsRunning())
}

func TestGate_TriggerNow_ErrorReleasesFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCoordinator := mocks.NewMockCoordinator(ctrl)
	gate := scheduler.NewGate(mockCoordinator, adapter.NewClock())

	gomock.InOrder(
		mockCoordinator.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, errors.New("db locked")),
		mockCoordinator.EXPECT().Run(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, opts ingest.RunOptions) (*ingest.RunResult, error) {
				panic("boom")
			}),
		mockCoordinator.EXPECT().Run(gomock.Any(), gomock.Any()).Return(&ingest.RunResult{RunID: "ok"}, nil),
	)

	assert.Nil(t, gate.TriggerNow(context.Background(), "manual", ingest.RunOptions{}))
	assert.False(t, gate.IsRunning())

	assert.Nil(t, gate.TriggerNow(context.Background(), "manual", ingest.RunOptions{}))
	assert.False(t, gate.IsRunning())

	result := gate.TriggerNow(context.Background(), "manual", ingest.RunOptions{})
	require.NotNil(t, result)
	assert.Equal(t, "ok", result.RunID)
}

func TestLoop_RunsOnBootAndOnInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCoordinator := mocks.NewMockCoordinator(ctrl)
	clock := newTickClock()
	gate := scheduler.NewGate(mockCoordinator, adapter.NewClock())
	loop := scheduler.NewLoop(scheduler.LoopConfig{
		RunOnBoot: true,
		Interval:  time.Hour,
		Options:   ingest.RunOptions{Concurrency: 2},
	}, gate, clock)

	reasons := make(chan string, 4)
	mockCoordinator.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, opts ingest.RunOptions) (*ingest.RunResult, error) {
			assert.Equal(t, 2, opts.Concurrency)
			reasons <- opts.Reason
			return &ingest.RunResult{}, nil
		}).
		Times(2)

	done := make(chan error, 1)
	go func() {
		done <- loop.Start(context.Background())
	}()

	assert.Equal(t, scheduler.REASON_BOOT, <-reasons)
	clock.ticks <- time.Now()
	assert.Equal(t, scheduler.REASON_INTERVAL, <-reasons)

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, loop.Stop(stopCtx))
	require.NoError(t, <-done)
}

func TestLoop_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gate := scheduler.NewGate(mocks.NewMockCoordinator(ctrl), adapter.NewClock())
	loop := scheduler.NewLoop(scheduler.LoopConfig{Interval: time.Hour}, gate, newTickClock())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- loop.Start(ctx)
	}()

	cancel()
	assert.NoError(t, <-done)
}

func TestLoop_InvalidInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gate := scheduler.NewGate(mocks.NewMockCoordinator(ctrl), adapter.NewClock())
	loop := scheduler.NewLoop(scheduler.LoopConfig{}, gate, newTickClock())

	assert.Error(t, loop.Start(context.Background()))
}

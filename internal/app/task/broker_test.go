package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshPublicCaches(context.Context) (int, error) {
	r.calls.Add(1)
	return 12, r.err
}

type countingCleanup struct {
	calls atomic.Int32
}

func (c *countingCleanup) CleanupOrphanedUploads(context.Context) (int, error) {
	c.calls.Add(1)
	return 0, nil
}

type panicJob struct{}

func (panicJob) Run()         { panic("boom") }
func (panicJob) Name() string { return "panicJob" }

func TestBrokerDispatch(t *testing.T) {
	refresher := &countingRefresher{}
	cleaner := &countingCleanup{}
	b := NewBroker(cleaner, refresher)
	require.NoError(t, b.RegisterCronJobs())

	assert.True(t, b.Dispatch(panicJob{}), "panic 的任务不会拖垮 worker")
	assert.True(t, b.DispatchCacheWarmup())
	assert.True(t, b.DispatchUploadCleanup())
	b.Stop()

	assert.Equal(t, int32(1), refresher.calls.Load())
	assert.Equal(t, int32(1), cleaner.calls.Load())
	assert.False(t, b.DispatchCacheWarmup(), "停止后不再接受任务")
}

func TestCacheWarmupJobError(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("cache down")}
	b := NewBroker(&countingCleanup{}, refresher)
	defer b.Stop()

	job := NewCacheWarmupJob(refresher, b.logger)
	assert.Equal(t, "CacheWarmupJob", job.Name())
	assert.NotPanics(t, job.Run)
	assert.Equal(t, int32(1), refresher.calls.Load())
}

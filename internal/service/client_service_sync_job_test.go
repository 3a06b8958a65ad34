package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSyncService struct {
	calls atomic.Int64
}

func (c *countingSyncService) FullSync(context.Context) error {
	c.calls.Add(1)
	return nil
}

func TestClientSyncJob_SyncsOnTicker(t *testing.T) {
	syncSvc := &countingSyncService{}
	job := NewClientSyncJob(syncSvc)

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return syncSvc.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_StopTerminatesJob(t *testing.T) {
	syncSvc := &countingSyncService{}
	job := NewClientSyncJob(syncSvc)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	job.Stop()

	after := syncSvc.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, syncSvc.calls.Load(), "no syncs after Stop")
}

func TestClientSyncJob_StopWithoutStartIsNoOp(t *testing.T) {
	job := NewClientSyncJob(&countingSyncService{})
	assert.NotPanics(t, job.Stop)
}

func TestClientSyncJob_RestartReplacesPreviousJob(t *testing.T) {
	syncSvc := &countingSyncService{}
	job := NewClientSyncJob(syncSvc)

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return syncSvc.calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_ContextCancelStopsJob(t *testing.T) {
	syncSvc := &countingSyncService{}
	job := NewClientSyncJob(syncSvc)

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(25 * time.Millisecond)

	after := syncSvc.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, syncSvc.calls.Load())
}

package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/mock"
	"github.com/marketforge/marketsync/internal/store"
	"github.com/marketforge/marketsync/models"
)

func TestReconcile_ServerPayloadWinsLocalIdentityKept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	srv.EXPECT().Push(gomock.Any(), models.CollectionCart, gomock.Any()).Return(nil).AnyTimes()

	svc := newTestCollection(t, models.CollectionCart, store.NewOrigin().NewContext(), srv)
	ctx := context.Background()

	local := svc.Add(ctx, "x", json.RawMessage(`{"price":10}`), 3)

	srv.EXPECT().Fetch(gomock.Any(), models.CollectionCart).Return([]models.ResourceEntry{
		{ID: "server-entry", ResourceID: "x", Payload: json.RawMessage(`{"price":8}`)},
	}, nil)

	require.NoError(t, svc.Reconcile(ctx))

	merged, ok := svc.Get("x")
	require.True(t, ok)
	assert.JSONEq(t, `{"price":8}`, string(merged.Payload), "server payload is authoritative for display data")
	assert.Equal(t, local.ID, merged.ID, "local entry identity survives the merge")
	assert.Equal(t, 3, merged.Quantity, "local cart quantity survives the merge")
}

func TestReconcile_LocalOnlyEntrySurvivesAndIsPushed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	// One push for the optimistic add, one for the post-merge upload of the
	// local-only entry.
	srv.EXPECT().Push(gomock.Any(), models.CollectionCart, gomock.Any()).Return(nil).Times(2)
	srv.EXPECT().Fetch(gomock.Any(), models.CollectionCart).Return([]models.ResourceEntry{}, nil)

	svc := newTestCollection(t, models.CollectionCart, store.NewOrigin().NewContext(), srv)
	ctx := context.Background()

	svc.Add(ctx, "local-only", json.RawMessage(`{"price":10}`), 1)

	require.NoError(t, svc.Reconcile(ctx))

	entry, ok := svc.Get("local-only")
	require.True(t, ok, "a local-only entry survives the merge")
	assert.JSONEq(t, `{"price":10}`, string(entry.Payload))
}

func TestReconcile_ServerOnlyEntriesAppended(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	srv.EXPECT().Push(gomock.Any(), models.CollectionCart, gomock.Any()).Return(nil).AnyTimes()

	svc := newTestCollection(t, models.CollectionCart, store.NewOrigin().NewContext(), srv)
	ctx := context.Background()

	svc.Add(ctx, "local", nil, 1)

	srv.EXPECT().Fetch(gomock.Any(), models.CollectionCart).Return([]models.ResourceEntry{
		{ID: "s1", ResourceID: "local"},
		{ID: "s2", ResourceID: "server-only", Payload: json.RawMessage(`{"price":4}`), Quantity: 2},
	}, nil)

	require.NoError(t, svc.Reconcile(ctx))

	entries := svc.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "local", entries[0].ResourceID, "local insertion order comes first")
	assert.Equal(t, "server-only", entries[1].ResourceID, "server-only entries are appended verbatim")
	assert.Equal(t, 2, entries[1].Quantity)
}

func TestReconcile_EmptyLocalBecomesServerSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	srv.EXPECT().Fetch(gomock.Any(), models.CollectionWishlist).Return([]models.ResourceEntry{
		{ID: "s1", ResourceID: "a"},
		{ID: "s2", ResourceID: "b"},
	}, nil)

	svc := newTestCollection(t, models.CollectionWishlist, store.NewOrigin().NewContext(), srv)

	require.NoError(t, svc.Reconcile(context.Background()))

	entries := svc.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ResourceID)
	assert.Equal(t, "b", entries[1].ResourceID)
}

func TestReconcile_FetchFailureLeavesLocalUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	srv.EXPECT().Push(gomock.Any(), models.CollectionCart, gomock.Any()).Return(nil).AnyTimes()

	svc := newTestCollection(t, models.CollectionCart, store.NewOrigin().NewContext(), srv)
	ctx := context.Background()

	svc.Add(ctx, "p1", nil, 2)
	before := svc.Entries()

	srv.EXPECT().Fetch(gomock.Any(), models.CollectionCart).Return(nil, errConnRefused)

	err := svc.Reconcile(ctx)
	require.Error(t, err)

	assert.Equal(t, before, svc.Entries(), "a failed fetch aborts the merge entirely")
	assert.False(t, svc.IsLoading())
	assert.NotEmpty(t, svc.LastError())
	assert.False(t, svc.connectivity.Online())
}

func TestReconcile_PersistsAndNotifiesMergedState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	srv.EXPECT().Fetch(gomock.Any(), models.CollectionWishlist).Return([]models.ResourceEntry{
		{ID: "s1", ResourceID: "a"},
	}, nil)

	kv := store.NewOrigin().NewContext()
	svc := newTestCollection(t, models.CollectionWishlist, kv, srv)

	var notified bool
	cancel := svc.Subscribe(func([]models.ResourceEntry) { notified = true })
	defer cancel()

	require.NoError(t, svc.Reconcile(context.Background()))

	assert.True(t, notified, "subscribers observe the merge as one atomic update")

	raw, err := kv.Get(models.CollectionWishlist.StorageKey())
	require.NoError(t, err)
	persisted, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, svc.Entries(), persisted)
}

func TestReconcile_DrainsOfflineQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)

	// The optimistic push fails; the queued intent is replayed during
	// reconciliation after the merge.
	gomock.InOrder(
		srv.EXPECT().Push(gomock.Any(), models.CollectionCart, gomock.Any()).Return(errConnRefused),
		srv.EXPECT().Fetch(gomock.Any(), models.CollectionCart).Return([]models.ResourceEntry{}, nil),
		srv.EXPECT().Push(gomock.Any(), models.CollectionCart, models.PushRequest{ResourceID: "p1", Quantity: 2}).Return(nil),
		srv.EXPECT().Push(gomock.Any(), models.CollectionCart, gomock.Any()).Return(nil),
	)

	svc := newTestCollection(t, models.CollectionCart, store.NewOrigin().NewContext(), srv)
	ctx := context.Background()

	svc.Add(ctx, "p1", nil, 2)
	require.Len(t, svc.PendingOperations(), 1)

	require.NoError(t, svc.Reconcile(ctx))
	assert.Empty(t, svc.PendingOperations(), "the queue drains with the merged state as baseline")
}

func TestReplay_HaltsOnFailureAndKeepsRemainder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	srv.EXPECT().Push(gomock.Any(), models.CollectionWishlist, gomock.Any()).Return(errConnRefused).Times(2)

	svc := newTestCollection(t, models.CollectionWishlist, store.NewOrigin().NewContext(), srv)
	ctx := context.Background()

	svc.Add(ctx, "p1", nil, 0)
	svc.Add(ctx, "p2", nil, 0)
	require.Len(t, svc.PendingOperations(), 2)

	gomock.InOrder(
		srv.EXPECT().Push(gomock.Any(), models.CollectionWishlist, models.PushRequest{ResourceID: "p1"}).Return(nil),
		srv.EXPECT().Push(gomock.Any(), models.CollectionWishlist, models.PushRequest{ResourceID: "p2"}).Return(errConnRefused),
	)

	err := svc.Replay(ctx)
	require.Error(t, err)

	remaining := svc.PendingOperations()
	require.Len(t, remaining, 1, "nothing is silently dropped")
	assert.Equal(t, "p2", remaining[0].ResourceID)
	assert.NotEmpty(t, svc.LastError())
}

func TestReplay_ConcurrentCallsReplayEachOpOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	srv.EXPECT().Push(gomock.Any(), models.CollectionWishlist, gomock.Any()).Return(errConnRefused).Times(2)

	svc := newTestCollection(t, models.CollectionWishlist, store.NewOrigin().NewContext(), srv)
	ctx := context.Background()

	svc.Add(ctx, "p1", nil, 0)
	svc.Add(ctx, "p2", nil, 0)
	require.Len(t, svc.PendingOperations(), 2)

	// Overlapping replay triggers (reconnect hook racing the sync job)
	// must serialize: each queued operation reaches the server exactly
	// once, never in parallel.
	var inFlight int32
	replay := func(_ context.Context, _ models.CollectionType, _ models.PushRequest) error {
		assert.Equal(t, int32(1), atomic.AddInt32(&inFlight, 1), "replay calls must not run in parallel")
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	}
	srv.EXPECT().Push(gomock.Any(), models.CollectionWishlist, models.PushRequest{ResourceID: "p1"}).DoAndReturn(replay).Times(1)
	srv.EXPECT().Push(gomock.Any(), models.CollectionWishlist, models.PushRequest{ResourceID: "p2"}).DoAndReturn(replay).Times(1)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Replay(ctx))
		}()
	}
	wg.Wait()

	assert.Empty(t, svc.PendingOperations())
}

func TestReconcile_LoginTimeMergeKeepsCollectionsIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := mock.NewMockServerAdapter(ctrl)
	srv.EXPECT().Push(gomock.Any(), models.CollectionCart, gomock.Any()).Return(nil).AnyTimes()
	srv.EXPECT().Fetch(gomock.Any(), models.CollectionCart).Return([]models.ResourceEntry{}, nil)
	srv.EXPECT().Fetch(gomock.Any(), models.CollectionWishlist).Return([]models.ResourceEntry{
		{ID: "s1", ResourceID: "b"},
	}, nil)

	kv := store.NewOrigin().NewContext()
	cart := newTestCollection(t, models.CollectionCart, kv, srv)
	wishlist := newTestCollection(t, models.CollectionWishlist, kv, srv)
	ctx := context.Background()

	cart.Add(ctx, "a", nil, 3)

	syncSvc := NewClientSyncService([]CollectionService{cart, wishlist}, NewConnectivityTracker(), logger.Nop())
	require.NoError(t, syncSvc.FullSync(ctx))

	require.Len(t, wishlist.Entries(), 1)
	assert.True(t, wishlist.Contains("b"))

	entry, ok := cart.Get("a")
	require.True(t, ok, "cart is unaffected by the wishlist merge")
	assert.Equal(t, 3, entry.Quantity)
}

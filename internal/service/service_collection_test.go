package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/mock"
	"github.com/marketforge/marketsync/models"
)

func newTestCollectionSyncService(t *testing.T) (CollectionSyncService, *mock.MockCollectionRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockCollectionRepository(ctrl)

	return NewCollectionSyncService(repo, logger.Nop()), repo
}

func TestCollectionSyncService_List(t *testing.T) {
	svc, repo := newTestCollectionSyncService(t)
	ctx := context.Background()

	t.Run("delegates to repository", func(t *testing.T) {
		want := []models.ResourceEntry{{ID: "e1", ResourceID: "p1", Quantity: 2}}
		repo.EXPECT().List(ctx, int64(7), models.CollectionCart).Return(want, nil)

		got, err := svc.List(ctx, 7, models.CollectionCart)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("unknown collection", func(t *testing.T) {
		_, err := svc.List(ctx, 7, "basket")
		assert.ErrorIs(t, err, ErrValidationUnknownCollection)
	})

	t.Run("repository failure wraps", func(t *testing.T) {
		boom := errors.New("connection reset")
		repo.EXPECT().List(ctx, int64(7), models.CollectionWishlist).Return(nil, boom)

		_, err := svc.List(ctx, 7, models.CollectionWishlist)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCollectionSyncService_Upsert(t *testing.T) {
	svc, repo := newTestCollectionSyncService(t)
	ctx := context.Background()

	t.Run("cart entry keeps quantity", func(t *testing.T) {
		repo.EXPECT().Upsert(ctx, int64(7), models.CollectionCart, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, _ models.CollectionType, entry models.ResourceEntry) error {
				assert.NotEmpty(t, entry.ID, "the server assigns a fresh entry id")
				assert.Equal(t, "p1", entry.ResourceID)
				assert.Equal(t, 3, entry.Quantity)
				assert.JSONEq(t, `{"price":10}`, string(entry.Payload))
				return nil
			})

		err := svc.Upsert(ctx, 7, models.CollectionCart, models.PushRequest{
			ResourceID: "p1",
			Payload:    json.RawMessage(`{"price":10}`),
			Quantity:   3,
		})
		assert.NoError(t, err)
	})

	t.Run("wishlist entry drops quantity", func(t *testing.T) {
		repo.EXPECT().Upsert(ctx, int64(7), models.CollectionWishlist, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, _ models.CollectionType, entry models.ResourceEntry) error {
				assert.Zero(t, entry.Quantity)
				return nil
			})

		err := svc.Upsert(ctx, 7, models.CollectionWishlist, models.PushRequest{ResourceID: "p1", Quantity: 9})
		assert.NoError(t, err)
	})

	t.Run("zero quantity cart push removes", func(t *testing.T) {
		repo.EXPECT().Delete(ctx, int64(7), models.CollectionCart, "p1").Return(nil)

		err := svc.Upsert(ctx, 7, models.CollectionCart, models.PushRequest{ResourceID: "p1", Quantity: 0})
		assert.NoError(t, err)
	})

	t.Run("validation matrix", func(t *testing.T) {
		tests := []struct {
			name       string
			collection models.CollectionType
			req        models.PushRequest
			wantErr    error
		}{
			{name: "unknown collection", collection: "basket", req: models.PushRequest{ResourceID: "p1"}, wantErr: ErrValidationUnknownCollection},
			{name: "missing resource id", collection: models.CollectionCart, req: models.PushRequest{Quantity: 1}, wantErr: ErrValidationNoResourceID},
			{name: "negative quantity", collection: models.CollectionCart, req: models.PushRequest{ResourceID: "p1", Quantity: -1}, wantErr: ErrValidationNegativeQuantity},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := svc.Upsert(ctx, 7, tt.collection, tt.req)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestCollectionSyncService_Delete(t *testing.T) {
	svc, repo := newTestCollectionSyncService(t)
	ctx := context.Background()

	t.Run("delegates to repository", func(t *testing.T) {
		repo.EXPECT().Delete(ctx, int64(7), models.CollectionWishlist, "p1").Return(nil)
		assert.NoError(t, svc.Delete(ctx, 7, models.CollectionWishlist, "p1"))
	})

	t.Run("missing resource id", func(t *testing.T) {
		err := svc.Delete(ctx, 7, models.CollectionCart, "")
		assert.ErrorIs(t, err, ErrValidationNoResourceID)
	})

	t.Run("unknown collection", func(t *testing.T) {
		err := svc.Delete(ctx, 7, "basket", "p1")
		assert.ErrorIs(t, err, ErrValidationUnknownCollection)
	})
}

func TestCollectionSyncService_Clear(t *testing.T) {
	svc, repo := newTestCollectionSyncService(t)
	ctx := context.Background()

	t.Run("delegates to repository", func(t *testing.T) {
		repo.EXPECT().Clear(ctx, int64(7), models.CollectionCart).Return(nil)
		assert.NoError(t, svc.Clear(ctx, 7, models.CollectionCart))
	})

	t.Run("unknown collection", func(t *testing.T) {
		err := svc.Clear(ctx, 7, "basket")
		assert.ErrorIs(t, err, ErrValidationUnknownCollection)
	})
}

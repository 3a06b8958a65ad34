package store

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/models"
)

func newCollectionRepoWithMock(t *testing.T) (CollectionRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := &DB{DB: mockDB, logger: logger.Nop()}
	return NewCollectionRepository(db, logger.Nop()), mock
}

func TestCollectionRepository_List(t *testing.T) {
	repo, mock := newCollectionRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"entry_id", "resource_id", "payload", "quantity"}).
		AddRow("e1", "p1", []byte(`{"price":10}`), 2).
		AddRow("e2", "p2", []byte(`{"price":5}`), 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT entry_id, resource_id, payload, quantity FROM collection_items")).
		WithArgs("cart", int64(7)).
		WillReturnRows(rows)

	entries, err := repo.List(context.Background(), 7, models.CollectionCart)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "e1", entries[0].ID)
	assert.Equal(t, "p1", entries[0].ResourceID)
	assert.Equal(t, json.RawMessage(`{"price":10}`), entries[0].Payload)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, "p2", entries[1].ResourceID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionRepository_List_QueryError(t *testing.T) {
	repo, mock := newCollectionRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT entry_id, resource_id, payload, quantity FROM collection_items")).
		WillReturnError(assert.AnError)

	_, err := repo.List(context.Background(), 7, models.CollectionWishlist)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestCollectionRepository_Upsert(t *testing.T) {
	repo, mock := newCollectionRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO collection_items")).
		WithArgs(int64(7), "cart", "e1", "p1", []byte(`{"price":10}`), 3).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := models.ResourceEntry{
		ID:         "e1",
		ResourceID: "p1",
		Payload:    json.RawMessage(`{"price":10}`),
		Quantity:   3,
	}
	require.NoError(t, repo.Upsert(context.Background(), 7, models.CollectionCart, entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionRepository_Delete(t *testing.T) {
	repo, mock := newCollectionRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM collection_items")).
		WithArgs("wishlist", "p9", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 7, models.CollectionWishlist, "p9"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionRepository_Delete_AbsentRowIsNoError(t *testing.T) {
	repo, mock := newCollectionRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM collection_items")).
		WithArgs("wishlist", "missing", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 7, models.CollectionWishlist, "missing"))
}

func TestCollectionRepository_Clear(t *testing.T) {
	repo, mock := newCollectionRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM collection_items")).
		WithArgs("cart", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, repo.Clear(context.Background(), 7, models.CollectionCart))
	assert.NoError(t, mock.ExpectationsWereMet())
}

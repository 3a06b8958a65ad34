package store

import (
	"context"

	"github.com/marketforge/marketsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CollectionRepository is the server-side persistence surface for one user's
// synchronized collections (cart, wishlist).
type CollectionRepository interface {
	// List returns the user's entries for one collection in insertion
	// order.
	List(ctx context.Context, userID int64, collection models.CollectionType) ([]models.ResourceEntry, error)

	// Upsert inserts the entry, or, when the (user, collection,
	// resource_id) row already exists, replaces its payload and quantity
	// while keeping the stored entry identity.
	Upsert(ctx context.Context, userID int64, collection models.CollectionType, entry models.ResourceEntry) error

	// Delete removes the entry with the given resource id. Removing an
	// absent entry is not an error.
	Delete(ctx context.Context, userID int64, collection models.CollectionType, resourceID string) error

	// Clear removes every entry of the user's collection.
	Clear(ctx context.Context, userID int64, collection models.CollectionType) error
}

// UserRepository is the server-side persistence surface for accounts.
type UserRepository interface {
	// CreateUser inserts a new account. Returns [ErrLoginAlreadyExists]
	// (wrapped) when the login is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin returns the account for login, or
	// [ErrNoUserWasFound] when no such account exists.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

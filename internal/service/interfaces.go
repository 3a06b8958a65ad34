package service

import (
	"context"

	"github.com/marketforge/marketsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// CollectionSyncService is the server-side contract behind the collection
// endpoints: the authoritative copy of every user's cart and wishlist.
type CollectionSyncService interface {
	// List returns the user's entries for one collection in insertion
	// order.
	List(ctx context.Context, userID int64, collection models.CollectionType) ([]models.ResourceEntry, error)

	// Upsert validates and applies one pushed entry. For cart collections
	// a quantity of zero removes the line instead of storing it.
	Upsert(ctx context.Context, userID int64, collection models.CollectionType, req models.PushRequest) error

	// Delete removes one entry by resource id. Removing an absent entry
	// succeeds.
	Delete(ctx context.Context, userID int64, collection models.CollectionType, resourceID string) error

	// Clear removes every entry of the user's collection.
	Clear(ctx context.Context, userID int64, collection models.CollectionType) error
}

// AuthService is the server-side contract for accounts and session tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

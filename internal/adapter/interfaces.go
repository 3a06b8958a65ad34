// Package adapter provides transport-layer abstractions for communicating with
// the MarketSync server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes and
// transport failures by mapHTTPError and classifyRequestError so that callers
// can use [errors.Is] for transport-agnostic handling. [ErrConnectivity] is
// the load-bearing one: the offline write queue keys its enqueue decision on
// it, and nothing else.
package adapter

import (
	"context"

	"github.com/marketforge/marketsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the MarketSync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level failures to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request with the provided credentials.
	// On success it stores the bearer token returned in the Authorization
	// response header via SetToken and returns the created user with its
	// server-assigned UserID.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user. On success it stores the bearer token
	// via SetToken and returns it together with the user ID parsed from the
	// token's subject claim.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// Fetch retrieves the authoritative server-side entry list for the
	// collection of the authenticated user. Returns a wrapped
	// [ErrConnectivity] when the server cannot be reached.
	Fetch(ctx context.Context, collection models.CollectionType) ([]models.ResourceEntry, error)

	// Push upserts one entry into the server-side collection. Quantity is
	// absolute, not a delta. Returns a wrapped [ErrValidation] when the
	// server rejects the entry and [ErrConnectivity] when it is unreachable.
	Push(ctx context.Context, collection models.CollectionType, req models.PushRequest) error

	// Remove deletes one entry from the server-side collection by resource
	// identifier. Removing an absent entry is not an error on the server.
	Remove(ctx context.Context, collection models.CollectionType, resourceID string) error

	// Clear empties the server-side collection of the authenticated user.
	Clear(ctx context.Context, collection models.CollectionType) error
}

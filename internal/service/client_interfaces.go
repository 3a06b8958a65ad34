package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/marketforge/marketsync/models"
)

// ClientAuthService defines the client-side contract for account registration
// and authentication against the remote server.
type ClientAuthService interface {
	// Register creates a new account on the server. On success the
	// transport adapter holds the issued session token and the returned
	// user carries its server-assigned UserID.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates against the server. On success the transport
	// adapter holds the issued session token.
	Login(ctx context.Context, user models.User) (models.Token, error)
}

// CollectionService is the replicated local store for one resource collection
// (cart or wishlist). It is the single source of truth for the collection's
// in-memory state within this execution context and the only component that
// mutates it.
//
// Mutations are optimistic: in-memory state changes first, is persisted to
// the backing store, and the server push happens after. Failures never roll
// the local mutation back; they surface through LastError. Connectivity-class
// push failures are additionally buffered in the offline write queue for
// replay.
type CollectionService interface {
	// Add inserts the catalog item into the collection and returns the
	// resulting entry. If the item is already present, cart collections
	// increment the line quantity by the given amount (minimum 1) and
	// wishlist collections do nothing. payload is copied, never retained.
	Add(ctx context.Context, resourceID string, payload json.RawMessage, quantity int) models.ResourceEntry

	// Remove deletes the entry for resourceID. Removing an absent entry
	// is a no-op, not an error.
	Remove(ctx context.Context, resourceID string)

	// SetQuantity sets the cart line quantity to exactly quantity. A
	// quantity of zero or less removes the entry. Setting quantity on an
	// absent entry is a no-op and never creates one.
	SetQuantity(ctx context.Context, resourceID string, quantity int)

	// Clear empties the collection, locally and on the server.
	Clear(ctx context.Context)

	// Contains reports whether the collection holds an entry for
	// resourceID. Pure read, no side effects.
	Contains(resourceID string) bool

	// Get returns the entry for resourceID and whether it exists. Pure
	// read, no side effects.
	Get(resourceID string) (models.ResourceEntry, bool)

	// Entries returns the collection's entries in insertion order. The
	// returned slice is a snapshot owned by the caller.
	Entries() []models.ResourceEntry

	// IsLoading reports whether a reconciliation fetch is in flight.
	IsLoading() bool

	// LastError returns the last persistence or sync failure, or the
	// empty string. Cleared by the next successful mutation.
	LastError() string

	// Subscribe registers fn to be called with an entry snapshot after
	// every state change, whether caused by a local mutation, another
	// execution context's write, or a reconciliation merge. The returned
	// cancel removes the subscription.
	Subscribe(fn func(entries []models.ResourceEntry)) (cancel func())

	// Reconcile fetches the authoritative server-side collection, merges
	// it into local state, pushes local-only entries to the server, and
	// drains the offline write queue. A failed fetch aborts the merge and
	// leaves local state untouched.
	Reconcile(ctx context.Context) error

	// PendingOperations returns a snapshot of the offline write queue in
	// replay order.
	PendingOperations() []models.QueuedOperation

	// Replay drains the offline write queue against the server in FIFO
	// order. The first failed call halts the drain; remaining operations
	// stay queued for the next trigger.
	Replay(ctx context.Context) error

	// Close detaches the store from the backing store's change feed.
	Close()
}

// ClientSyncService coordinates reconciliation across every collection of the
// session and reacts to connectivity transitions.
type ClientSyncService interface {
	// FullSync reconciles every registered collection per
	// [CollectionService.Reconcile]. The first failure stops the pass and
	// is returned; collections reconciled before it keep their merged
	// state.
	FullSync(ctx context.Context) error
}

// ClientSyncJob defines the contract for a background worker that
// periodically runs a full sync.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}

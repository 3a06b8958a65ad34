package store

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// KeyValue is the client-side backing store: a per-origin, synchronous
// key-value surface shared by all execution contexts (tabs, windows,
// processes) of one storefront session.
//
// Writers always write a full replacement value, never a delta — that is
// what makes last-write-wins safe across contexts without any locking
// beyond the store's own.
type KeyValue interface {
	// Get returns the value stored under key, or [ErrKeyNotFound] if the
	// key has never been written.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value. Returns
	// [ErrQuotaExceeded] (wrapped) when the store's budget is exhausted.
	Set(key, value string) error

	// Subscribe registers fn to be called with the new value whenever a
	// DIFFERENT execution context writes under key. Writes performed
	// through this same handle never trigger fn, which prevents mutation
	// loops. The returned cancel function removes the subscription and is
	// safe to call more than once.
	Subscribe(key string, fn func(value string)) (cancel func())
}

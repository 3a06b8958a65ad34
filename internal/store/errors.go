package store

import "errors"

// Client-side key-value store errors.
var (
	// ErrKeyNotFound is returned by [KeyValue.Get] when no value has ever
	// been written under the requested key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrQuotaExceeded is returned by [KeyValue.Set] when the backing
	// store refuses the write because its storage budget is exhausted.
	// Callers keep their in-memory state and surface the error as a
	// non-fatal notice.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Server-side repository errors.
var (
	// ErrLoginAlreadyExists is returned on registration when the login is
	// already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when no account matches the login.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrEntryNotFound is returned when a collection entry lookup matches
	// no row.
	ErrEntryNotFound = errors.New("collection entry not found")

	// ErrBuildingSQLQuery indicates a query could not be constructed.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery indicates a query failed at the database.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrScanningRow indicates a result row could not be scanned.
	ErrScanningRow = errors.New("error scanning row")

	// ErrScanningRows indicates an error surfaced during rows iteration.
	ErrScanningRows = errors.New("error scanning rows")
)

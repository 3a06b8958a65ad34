package adapter

import "errors"

var (
	// ErrConnectivity marks failures where the server was unreachable or did
	// not produce a usable response: transport errors, timeouts, and 5xx
	// gateway statuses. It is the only error class the offline queue buffers
	// mutations for.
	ErrConnectivity = errors.New("server unreachable")

	// ErrValidation marks requests the server understood and rejected.
	// Validation failures are never queued for replay.
	ErrValidation = errors.New("request rejected by server")

	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("rate limit exceeded")
	ErrInternalServerError = errors.New("internal server error")
)

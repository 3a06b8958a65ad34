package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrValidationUnknownCollection = errors.New("unknown collection type")
	ErrValidationNoResourceID      = errors.New("no resource id provided")
	ErrValidationNegativeQuantity  = errors.New("negative quantity provided")

	// ErrUnknownEnvelopeVersion is returned by the codec when the persisted
	// envelope declares a schema version this build does not understand.
	// Callers fall back to an empty collection rather than failing.
	ErrUnknownEnvelopeVersion = errors.New("unknown envelope version")

	// ErrCorruptEnvelope is returned by the codec when the persisted value
	// is not a parseable envelope. Callers fall back to an empty collection.
	ErrCorruptEnvelope = errors.New("corrupt envelope")
)

package service

import (
	"encoding/json"
	"fmt"

	"github.com/marketforge/marketsync/models"
)

// EncodeEnvelope serializes entries into the versioned persistence envelope.
// The envelope always carries the current schema version; transient
// collection state (loading flag, last error) is never part of it.
func EncodeEnvelope(entries []models.ResourceEntry) (string, error) {
	if entries == nil {
		entries = []models.ResourceEntry{}
	}

	envelope := models.PersistedEnvelope{
		Version: models.EnvelopeVersion,
		State:   models.EnvelopeState{Entries: entries},
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}

	return string(raw), nil
}

// DecodeEnvelope parses a persisted envelope back into its entry list.
//
// An empty value decodes to an empty list: a key that has never been written
// and a freshly cleared collection look the same. A value that is not valid
// JSON yields [ErrCorruptEnvelope]; a version this build does not know yields
// [ErrUnknownEnvelopeVersion]. In both failure cases callers keep or reset to
// their current in-memory state instead of trusting the stored value.
func DecodeEnvelope(raw string) ([]models.ResourceEntry, error) {
	if raw == "" {
		return []models.ResourceEntry{}, nil
	}

	var envelope models.PersistedEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptEnvelope, err)
	}

	if envelope.Version != models.EnvelopeVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEnvelopeVersion, envelope.Version)
	}

	if envelope.State.Entries == nil {
		return []models.ResourceEntry{}, nil
	}

	return envelope.State.Entries, nil
}

package models

// EnvelopeVersion is the current schema version written into every persisted
// envelope. Bump it whenever the serialized shape of [EnvelopeState] changes;
// readers treat any other value as unknown and fall back to an empty state.
const EnvelopeVersion = 1

// PersistedEnvelope is the versioned on-disk representation of one
// collection's state, written as JSON under the collection's storage key.
//
// Transient fields of the in-memory state (loading flag, last error) are
// deliberately absent: only the entry list survives a restart.
type PersistedEnvelope struct {
	// Version is the schema version of State. Monotonically increasing
	// across releases.
	Version int `json:"version"`

	// State is the serializable subset of the collection state.
	State EnvelopeState `json:"state"`
}

// EnvelopeState holds the persisted portion of a collection's state.
type EnvelopeState struct {
	// Entries is the full entry list in insertion order.
	Entries []ResourceEntry `json:"entries"`
}

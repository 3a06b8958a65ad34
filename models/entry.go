package models

import "encoding/json"

// CollectionType discriminates the two synchronized collection kinds.
// Cart entries carry a quantity; wishlist entries do not.
type CollectionType string

const (
	CollectionCart     CollectionType = "cart"
	CollectionWishlist CollectionType = "wishlist"
)

// Valid reports whether the value is one of the known collection kinds.
func (c CollectionType) Valid() bool {
	return c == CollectionCart || c == CollectionWishlist
}

// HasQuantity reports whether entries of this collection carry a quantity.
// Only cart lines do; wishlist membership is a plain set.
func (c CollectionType) HasQuantity() bool {
	return c == CollectionCart
}

// StorageKey returns the fixed backing-store key under which the collection's
// persisted envelope lives. Each collection type writes to its own key so
// clearing one collection can never touch another.
func (c CollectionType) StorageKey() string {
	return "marketsync:" + string(c)
}

// String implements the [fmt.Stringer] interface.
func (c CollectionType) String() string {
	return string(c)
}

// ResourceEntry is one synchronized unit of a collection: a cart line or a
// wishlist entry.
//
// Payload is a denormalized snapshot of the catalog item's display data taken
// at insertion time. It is owned exclusively by the entry — callers must copy
// before storing so later catalog updates never mutate an entry in place.
type ResourceEntry struct {
	// ID is the stable local identifier of the entry, unique within one
	// collection. Assigned on first insertion and preserved across merges.
	ID string `json:"id"`

	// ResourceID identifies the underlying catalog item (product id).
	// It is the unique business key: within one collection no two entries
	// share a ResourceID.
	ResourceID string `json:"resource_id"`

	// Payload is the opaque display snapshot of the referenced item
	// (name, price, image URL, ...). The store never inspects it.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Quantity is the cart line quantity. Always positive when stored:
	// zero is a removal signal, never a persisted state. Unused (zero)
	// for wishlist entries.
	Quantity int `json:"quantity,omitempty"`
}

// CopyPayload returns an owned copy of raw. A nil input stays nil.
func CopyPayload(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}

package models

import "encoding/json"

// CollectionResponse is the body of GET /api/collections/{collection}:
// the authoritative server-side entry list for one collection.
type CollectionResponse struct {
	// Items is the server's entry list. Quantity is included for cart
	// collections only.
	Items []ResourceEntry `json:"items"`

	// Length is the number of entries in Items, provided so clients can
	// pre-allocate without iterating.
	Length int `json:"length"`
}

// PushRequest upserts one entry into a server-side collection. For cart
// collections Quantity is the desired absolute quantity (not a delta);
// for wishlist collections it is ignored.
type PushRequest struct {
	// ResourceID identifies the catalog item being pushed.
	ResourceID string `json:"resource_id"`

	// Payload is the denormalized display snapshot stored alongside the
	// entry. The server treats it as opaque JSON.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Quantity is the absolute quantity for cart pushes.
	Quantity int `json:"quantity,omitempty"`
}

// ErrorResponse is the uniform JSON error body returned by the HTTP API.
type ErrorResponse struct {
	Error string `json:"error"`
}

package models

import "encoding/json"

// OperationKind tags a queued offline mutation intent.
type OperationKind string

const (
	OpAdd         OperationKind = "add"
	OpRemove      OperationKind = "remove"
	OpSetQuantity OperationKind = "set_quantity"
	OpClear       OperationKind = "clear"
)

// QueuedOperation is one buffered mutation that could not reach the server
// due to a connectivity failure. Operations are replayed strictly in Seq
// order once connectivity returns.
type QueuedOperation struct {
	// Kind selects the replay action.
	Kind OperationKind `json:"kind"`

	// ResourceID identifies the target catalog item. Empty for OpClear.
	ResourceID string `json:"resource_id,omitempty"`

	// Payload is the display snapshot to push for OpAdd / OpSetQuantity.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Quantity is the desired absolute quantity for OpAdd / OpSetQuantity
	// on cart collections.
	Quantity int `json:"quantity,omitempty"`

	// Seq is the monotonic enqueue sequence number used for FIFO replay.
	Seq int64 `json:"seq"`
}

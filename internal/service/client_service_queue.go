package service

import (
	"context"
	"sync"

	"github.com/marketforge/marketsync/models"
)

// offlineQueue buffers mutation intents that could not reach the server due
// to a connectivity failure, in enqueue order, for later replay.
//
// The queue lives in volatile memory only: a full process restart drops
// buffered intents while the optimistic local state itself stays persisted.
type offlineQueue struct {
	mu      sync.Mutex
	ops     []models.QueuedOperation
	nextSeq int64

	// draining is held for the whole of a drain loop so overlapping
	// replay triggers (reconnect hook, reconcile, periodic sync job)
	// serialize instead of issuing the same replay call twice.
	draining sync.Mutex
}

func newOfflineQueue() *offlineQueue {
	return &offlineQueue{}
}

// enqueue buffers one operation, coalescing against what is already queued:
//
//   - An Add or SetQuantity targeting a resource that already has a queued
//     Add/SetQuantity replaces that operation in place — only the latest
//     desired state per resource needs replaying, and the original queue
//     position keeps FIFO ordering intact.
//   - A Remove cancels every earlier queued operation for its resource and
//     appends as a terminal operation.
//   - A Clear supersedes everything: the queue is wiped down to the single
//     Clear.
func (q *offlineQueue) enqueue(kind models.OperationKind, resourceID string, payload []byte, quantity int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch kind {
	case models.OpClear:
		q.nextSeq++
		q.ops = []models.QueuedOperation{{Kind: models.OpClear, Seq: q.nextSeq}}
		return

	case models.OpRemove:
		kept := q.ops[:0]
		for _, op := range q.ops {
			if op.ResourceID != resourceID {
				kept = append(kept, op)
			}
		}
		q.ops = kept

	case models.OpAdd, models.OpSetQuantity:
		for i, op := range q.ops {
			if op.ResourceID != resourceID {
				continue
			}
			if op.Kind == models.OpAdd || op.Kind == models.OpSetQuantity {
				// The slot is reused but the operation is a new
				// intent: a fresh Seq lets an in-flight drain tell
				// it apart from the operation it just replayed.
				q.nextSeq++
				q.ops[i].Kind = kind
				q.ops[i].Payload = models.CopyPayload(payload)
				q.ops[i].Quantity = quantity
				q.ops[i].Seq = q.nextSeq
				return
			}
		}
	}

	q.nextSeq++
	q.ops = append(q.ops, models.QueuedOperation{
		Kind:       kind,
		ResourceID: resourceID,
		Payload:    models.CopyPayload(payload),
		Quantity:   quantity,
		Seq:        q.nextSeq,
	})
}

// reset drops every queued operation.
func (q *offlineQueue) reset() {
	q.mu.Lock()
	q.ops = nil
	q.mu.Unlock()
}

// snapshot returns a copy of the queued operations in replay order.
func (q *offlineQueue) snapshot() []models.QueuedOperation {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.QueuedOperation, len(q.ops))
	copy(out, q.ops)
	return out
}

func (q *offlineQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// drain replays queued operations strictly in enqueue order, one in-flight
// call at a time; concurrent drain calls serialize on the draining lock so
// no operation is ever replayed in parallel or issued twice. Each
// successfully applied operation is removed; the first failure halts the
// drain and leaves it and everything after it queued for the next trigger.
// Operations enqueued concurrently with the drain are picked up by it.
func (q *offlineQueue) drain(ctx context.Context, apply func(ctx context.Context, op models.QueuedOperation) error) error {
	q.draining.Lock()
	defer q.draining.Unlock()

	for {
		q.mu.Lock()
		if len(q.ops) == 0 {
			q.mu.Unlock()
			return nil
		}
		head := q.ops[0]
		q.mu.Unlock()

		if err := apply(ctx, head); err != nil {
			return err
		}

		q.mu.Lock()
		// The head may have been coalesced away while the call was in
		// flight; only drop it if it is still the same operation.
		if len(q.ops) > 0 && q.ops[0].Seq == head.Seq {
			q.ops = q.ops[1:]
		}
		q.mu.Unlock()
	}
}

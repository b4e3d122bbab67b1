// Package storepipe implements the storage stage: the final consumer of a
// CRDT command stream, and the cursor it persists alongside the data it
// writes.
package storepipe

import "context"

// cursorKey is the key the persisted resume point lives under.
const cursorKey = "_cursor"

// Store is the narrow surface the storage stage needs from a backing
// key-value store. A CRDTCommand's kind maps onto at most one of these
// calls; see Worker.apply.
type Store interface {
	SetAdd(ctx context.Context, key, member string) error
	SetRemove(ctx context.Context, key, member string) error
	SortedSetAdd(ctx context.Context, key, member string, score int64) error
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	IncrBy(ctx context.Context, key string, delta int64) error
}

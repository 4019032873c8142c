package ports

import "context"

// KeyValueStore is the persistence medium for card snapshots.
// Implementations may be unavailable; callers treat errors as non-fatal.
type KeyValueStore interface {
	// Get returns the value under key. ok is false when the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

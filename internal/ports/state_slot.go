package ports

import "context"

// Port: a single string-keyed persistence slot.
type StateSlot interface {
	// Return the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Store value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
}

// Package medium defines the key-value substrate the record store runs on:
// a synchronous string key -> string value store scoped to one logical
// origin, with a capacity limit and cross-tab change notifications.
// Drivers live under internal/medium/<driver>/.
package medium

import (
	"context"
	"errors"
)

// ErrQuotaExceeded reports a write rejected by the medium's capacity
// limit. Callers should treat it as retryable.
var ErrQuotaExceeded = errors.New("medium: quota exceeded")

// Change describes a single key write performed by another tab.
type Change struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

// Medium is one tab's handle onto the shared store. Writes made through a
// handle are never delivered back to that handle's own watchers, matching
// browser storage-event semantics. The medium offers single-key write
// atomicity and nothing more; there are no cross-key transactions.
type Medium interface {
	// Get returns the raw value at key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites key with value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Watch delivers changes to the given keys made by other handles until
	// ctx is cancelled, at which point the channel is closed. A burst of
	// writes produces a burst of notifications; slow consumers may miss
	// intermediate ones but always hold a channel that eventually reflects
	// the latest write.
	Watch(ctx context.Context, keys ...string) (<-chan Change, error)

	// Origin identifies this handle in change notifications.
	Origin() string
}

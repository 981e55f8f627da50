// Package keyspace is the single source of truth for how an entity type
// maps to a storage key, and for collection serialization. One key holds
// the full JSON array for its entity type across all communities;
// partitioning happens in memory after reading.
package keyspace

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/peermall/peerstore/internal/medium"
	"github.com/peermall/peerstore/internal/model"
)

// Storage keys are globally known and not configurable.
const (
	PostsKey       = "peerspace_posts"
	ChannelsKey    = "peerspace_channels"
	MembersKey     = "peerspace_members"
	EventsKey      = "peerspace_events"
	CommunitiesKey = "peerspace_communities"
)

// Keys returns every collection key in a stable order.
func Keys() []string {
	return []string{PostsKey, ChannelsKey, MembersKey, EventsKey, CommunitiesKey}
}

// ReadCollection decodes the records stored under key. An absent key
// yields an empty collection. A stored value that fails to decode yields
// model.ErrCorruptCollection, which callers must degrade to "empty"
// rather than surface. Medium read failures surface as
// model.ErrPersistenceUnavailable.
func ReadCollection[T any](ctx context.Context, m medium.Medium, key string) ([]T, error) {
	raw, ok, err := m.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", key, model.ErrPersistenceUnavailable, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", key, model.ErrCorruptCollection, err)
	}
	return items, nil
}

// WriteCollection serializes the full collection and overwrites key. The
// medium guarantees single-key atomicity only. Rejected writes surface as
// model.ErrPersistenceUnavailable and leave the caller holding the
// unsaved records.
func WriteCollection[T any](ctx context.Context, m medium.Medium, key string, items []T) error {
	buf, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := m.Set(ctx, key, string(buf)); err != nil {
		return fmt.Errorf("write %s: %w: %v", key, model.ErrPersistenceUnavailable, err)
	}
	return nil
}

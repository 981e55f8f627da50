package store

import (
	"context"

	"github.com/peermall/peerstore/internal/model"
)

// Store exposes the persistence operations the services run on.
// Implementations live under internal/store/<driver>/ (local is the only
// one; it layers on a medium).
//
// Every mutation is a full read-modify-write of the entity's collection:
// the medium has no field-level updates, and simulating them would only
// hide the race, not remove it. Save is last-write-wins with no version
// check. Remove of an absent id is a no-op.
type Store interface {
	Posts() Posts
	Channels() Channels
	Members() Members
	Events() Events
	Communities() Communities
}

// PostQuery filters a post listing. Zero-value fields match everything;
// ordering is insertion order (newest first, since Save prepends).
type PostQuery struct {
	CommunityID string
	ChannelID   string
	Limit       int
}

type Posts interface {
	List(ctx context.Context, q PostQuery) ([]*model.Post, error)
	Save(ctx context.Context, p *model.Post) (*model.Post, error)
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// IncrementView and IncrementLike bump their counter by exactly 1 and
	// return the updated record, or model.ErrNotFound when the id is
	// absent. The read-modify-write is deliberately unlocked; see the
	// package doc in store/local.
	IncrementView(ctx context.Context, id string) (*model.Post, error)
	IncrementLike(ctx context.Context, id string) (*model.Post, error)
}

type Channels interface {
	List(ctx context.Context, communityID string) ([]*model.Channel, error)
	Save(ctx context.Context, c *model.Channel) (*model.Channel, error)
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Channel, error)
}

type Members interface {
	List(ctx context.Context, communityID string) ([]*model.Member, error)
	Save(ctx context.Context, m *model.Member) (*model.Member, error)
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Member, error)
}

type Events interface {
	List(ctx context.Context, communityID string) ([]*model.Event, error)
	Save(ctx context.Context, e *model.Event) (*model.Event, error)
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
}

type Communities interface {
	List(ctx context.Context) ([]*model.Community, error)
	Save(ctx context.Context, c *model.Community) (*model.Community, error)
	Remove(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Community, error)

	// Denormalized counter maintenance. These mutate the cached aggregates
	// in place and are silent no-ops for unknown community ids, so callers
	// can apply them opportunistically without checking existence first.
	// Drift against the real child collections is accepted and never
	// reconciled.
	AdjustPostCount(ctx context.Context, communityID string, delta int) error
	AdjustMemberCount(ctx context.Context, communityID string, delta int) error
	SetHasEvent(ctx context.Context, communityID string, hasEvent bool) error
	TouchLastActive(ctx context.Context, communityID string) error
}

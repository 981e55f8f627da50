// Package local implements store.Store over a key-value medium, one JSON
// array per entity type.
//
// Concurrency caveat: every mutation reads the full collection, edits it
// in memory, and writes it back without a lock. Two un-awaited increments
// in one tab, or any two tabs writing concurrently, can lose an update.
// That is the documented behavior of the medium this models, kept on
// purpose: the contention profile (one user per tab) does not warrant
// locking, and callers are isolated behind Save and the counter
// operations so a per-record key scheme could be swapped in later without
// touching them.
package local

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/peermall/peerstore/internal/events"
	"github.com/peermall/peerstore/internal/keyspace"
	"github.com/peermall/peerstore/internal/medium"
	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/store"
)

// New returns a store over m. Mutations are not announced anywhere;
// use NewWithBus when observer feeds in this tab should refresh on local
// writes.
func New(m medium.Medium) store.Store {
	return NewWithBus(m, nil)
}

// NewWithBus returns a store that publishes every mutation on bus.
func NewWithBus(m medium.Medium, bus *events.Bus) store.Store {
	return &kvStore{m: m, bus: bus, log: log.Logger}
}

type kvStore struct {
	m   medium.Medium
	bus *events.Bus
	log zerolog.Logger
}

func (s *kvStore) publish(kind events.Kind, id, communityID string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{Kind: kind, ID: id, CommunityID: communityID})
}

func (s *kvStore) Posts() store.Posts {
	return &posts{collection: coll(s, keyspace.PostsKey, func(p *model.Post) string { return p.ID }), st: s}
}

func (s *kvStore) Channels() store.Channels {
	return &channels{collection: coll(s, keyspace.ChannelsKey, func(c *model.Channel) string { return c.ID }), st: s}
}

func (s *kvStore) Members() store.Members {
	return &members{collection: coll(s, keyspace.MembersKey, func(m *model.Member) string { return m.ID }), st: s}
}

func (s *kvStore) Events() store.Events {
	return &calendarEvents{collection: coll(s, keyspace.EventsKey, func(e *model.Event) string { return e.ID }), st: s}
}

func (s *kvStore) Communities() store.Communities {
	return &communities{collection: coll(s, keyspace.CommunitiesKey, func(c *model.Community) string { return c.ID }), st: s}
}

func coll[T any](s *kvStore, key string, id func(*T) string) collection[T] {
	return collection[T]{m: s.m, key: key, id: id, log: s.log}
}

// collection holds the generic read-modify-write cycle shared by every
// repository.
type collection[T any] struct {
	m   medium.Medium
	key string
	id  func(*T) string
	log zerolog.Logger
}

// load reads the full collection. A corrupt value degrades to an empty
// collection after a log line; the stored data for that key is effectively
// lost, which is an accepted risk of the medium.
func (c *collection[T]) load(ctx context.Context) ([]*T, error) {
	items, err := keyspace.ReadCollection[*T](ctx, c.m, c.key)
	if err != nil {
		if errors.Is(err, model.ErrCorruptCollection) {
			c.log.Warn().Str("key", c.key).Err(err).Msg("corrupt collection, treating as empty")
			return nil, nil
		}
		return nil, err
	}
	return items, nil
}

func (c *collection[T]) flush(ctx context.Context, items []*T) error {
	if err := keyspace.WriteCollection(ctx, c.m, c.key, items); err != nil {
		c.log.Error().Str("key", c.key).Err(err).Msg("collection write rejected")
		return err
	}
	return nil
}

// save replaces an existing record in place, preserving its position, or
// prepends a new one. Last write wins; there is no version token.
func (c *collection[T]) save(ctx context.Context, rec *T) (*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	id := c.id(rec)
	replaced := false
	for i, it := range items {
		if c.id(it) == id {
			items[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		items = append([]*T{rec}, items...)
	}
	if err := c.flush(ctx, items); err != nil {
		return nil, err
	}
	return rec, nil
}

// remove filters the record out and writes back. Removing an absent id is
// a no-op that skips the write entirely.
func (c *collection[T]) remove(ctx context.Context, id string) (bool, error) {
	items, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	kept := items[:0]
	for _, it := range items {
		if c.id(it) != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := c.flush(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (c *collection[T]) find(ctx context.Context, id string) (*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if c.id(it) == id {
			return it, nil
		}
	}
	return nil, model.ErrNotFound
}

// mutate applies f to the record with the given id and writes the
// collection back. Returns the updated record, or model.ErrNotFound.
func (c *collection[T]) mutate(ctx context.Context, id string, f func(*T)) (*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if c.id(it) == id {
			f(it)
			if err := c.flush(ctx, items); err != nil {
				return nil, err
			}
			return it, nil
		}
	}
	return nil, model.ErrNotFound
}

// --- Posts ---

type posts struct {
	collection[model.Post]
	st *kvStore
}

func (p *posts) List(ctx context.Context, q store.PostQuery) ([]*model.Post, error) {
	items, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Post, 0, len(items))
	for _, it := range items {
		if q.CommunityID != "" && it.CommunityID != q.CommunityID {
			continue
		}
		if q.ChannelID != "" && it.ChannelID != q.ChannelID {
			continue
		}
		out = append(out, it)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (p *posts) Save(ctx context.Context, rec *model.Post) (*model.Post, error) {
	saved, err := p.save(ctx, rec)
	if err != nil {
		return nil, err
	}
	p.st.publish(events.KindPostSaved, rec.ID, rec.CommunityID)
	return saved, nil
}

func (p *posts) Remove(ctx context.Context, id string) error {
	removed, err := p.remove(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		p.st.publish(events.KindPostRemoved, id, "")
	}
	return nil
}

func (p *posts) FindByID(ctx context.Context, id string) (*model.Post, error) {
	return p.find(ctx, id)
}

func (p *posts) IncrementView(ctx context.Context, id string) (*model.Post, error) {
	return p.increment(ctx, id, func(x *model.Post) { x.ViewCount++ })
}

func (p *posts) IncrementLike(ctx context.Context, id string) (*model.Post, error) {
	return p.increment(ctx, id, func(x *model.Post) { x.Likes++ })
}

func (p *posts) increment(ctx context.Context, id string, bump func(*model.Post)) (*model.Post, error) {
	updated, err := p.mutate(ctx, id, bump)
	if err != nil {
		return nil, err
	}
	p.st.publish(events.KindPostSaved, id, updated.CommunityID)
	return updated, nil
}

// --- Channels ---

type channels struct {
	collection[model.Channel]
	st *kvStore
}

func (c *channels) List(ctx context.Context, communityID string) ([]*model.Channel, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return filterByCommunity(items, communityID, func(ch *model.Channel) string { return ch.CommunityID }), nil
}

func (c *channels) Save(ctx context.Context, rec *model.Channel) (*model.Channel, error) {
	saved, err := c.save(ctx, rec)
	if err != nil {
		return nil, err
	}
	c.st.publish(events.KindChannelSaved, rec.ID, rec.CommunityID)
	return saved, nil
}

func (c *channels) Remove(ctx context.Context, id string) error {
	removed, err := c.remove(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		c.st.publish(events.KindChannelRemoved, id, "")
	}
	return nil
}

func (c *channels) FindByID(ctx context.Context, id string) (*model.Channel, error) {
	return c.find(ctx, id)
}

// --- Members ---

type members struct {
	collection[model.Member]
	st *kvStore
}

func (m *members) List(ctx context.Context, communityID string) ([]*model.Member, error) {
	items, err := m.load(ctx)
	if err != nil {
		return nil, err
	}
	return filterByCommunity(items, communityID, func(mb *model.Member) string { return mb.CommunityID }), nil
}

func (m *members) Save(ctx context.Context, rec *model.Member) (*model.Member, error) {
	saved, err := m.save(ctx, rec)
	if err != nil {
		return nil, err
	}
	m.st.publish(events.KindMemberSaved, rec.ID, rec.CommunityID)
	return saved, nil
}

func (m *members) Remove(ctx context.Context, id string) error {
	removed, err := m.remove(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		m.st.publish(events.KindMemberRemoved, id, "")
	}
	return nil
}

func (m *members) FindByID(ctx context.Context, id string) (*model.Member, error) {
	return m.find(ctx, id)
}

// --- Events ---

type calendarEvents struct {
	collection[model.Event]
	st *kvStore
}

func (e *calendarEvents) List(ctx context.Context, communityID string) ([]*model.Event, error) {
	items, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return filterByCommunity(items, communityID, func(ev *model.Event) string { return ev.CommunityID }), nil
}

func (e *calendarEvents) Save(ctx context.Context, rec *model.Event) (*model.Event, error) {
	saved, err := e.save(ctx, rec)
	if err != nil {
		return nil, err
	}
	e.st.publish(events.KindEventSaved, rec.ID, rec.CommunityID)
	return saved, nil
}

func (e *calendarEvents) Remove(ctx context.Context, id string) error {
	removed, err := e.remove(ctx, id)
	if err != nil {
		return err
	}
	if removed {
		e.st.publish(events.KindEventRemoved, id, "")
	}
	return nil
}

func (e *calendarEvents) FindByID(ctx context.Context, id string) (*model.Event, error) {
	return e.find(ctx, id)
}

// --- Communities ---

type communities struct {
	collection[model.Community]
	st *kvStore
}

func (c *communities) List(ctx context.Context) ([]*model.Community, error) {
	return c.load(ctx)
}

func (c *communities) Save(ctx context.Context, rec *model.Community) (*model.Community, error) {
	saved, err := c.save(ctx, rec)
	if err != nil {
		return nil, err
	}
	c.st.publish(events.KindCommunitySaved, rec.ID, rec.ID)
	return saved, nil
}

func (c *communities) Remove(ctx context.Context, id string) error {
	_, err := c.remove(ctx, id)
	return err
}

func (c *communities) FindByID(ctx context.Context, id string) (*model.Community, error) {
	return c.find(ctx, id)
}

// adjust applies f to the community record if it exists. Unknown ids are
// silent no-ops so child repositories can bump counters without caring
// whether the parent aggregate was ever created.
func (c *communities) adjust(ctx context.Context, id string, f func(*model.Community)) error {
	_, err := c.mutate(ctx, id, f)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	c.st.publish(events.KindCommunitySaved, id, id)
	return nil
}

func (c *communities) AdjustPostCount(ctx context.Context, communityID string, delta int) error {
	return c.adjust(ctx, communityID, func(cm *model.Community) {
		cm.PostCount += delta
		if cm.PostCount < 0 {
			cm.PostCount = 0
		}
	})
}

func (c *communities) AdjustMemberCount(ctx context.Context, communityID string, delta int) error {
	return c.adjust(ctx, communityID, func(cm *model.Community) {
		cm.MemberCount += delta
		if cm.MemberCount < 0 {
			cm.MemberCount = 0
		}
	})
}

func (c *communities) SetHasEvent(ctx context.Context, communityID string, hasEvent bool) error {
	return c.adjust(ctx, communityID, func(cm *model.Community) { cm.HasEvent = hasEvent })
}

func (c *communities) TouchLastActive(ctx context.Context, communityID string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	return c.adjust(ctx, communityID, func(cm *model.Community) { cm.LastActive = now })
}

func filterByCommunity[T any](items []*T, communityID string, of func(*T) string) []*T {
	if communityID == "" {
		return items
	}
	out := make([]*T, 0, len(items))
	for _, it := range items {
		if of(it) == communityID {
			out = append(out, it)
		}
	}
	return out
}

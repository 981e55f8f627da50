// Package observer keeps an in-memory view of one collection fresh. A
// Feed refreshes when another tab writes the watched key (medium change
// notification) or when this tab mutates through the repositories (bus
// event). Refreshes are whole-collection re-reads, so redundant wakeups
// are cheap to tolerate and never coalesced.
package observer

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/peermall/peerstore/internal/events"
	"github.com/peermall/peerstore/internal/medium"
)

// State is the feed lifecycle: Idle until Run starts, then Loading and
// Ready, re-entering Loading on every wakeup. There is no error terminal
// state; a failed refresh keeps the previous snapshot and returns to
// Ready.
type State int

const (
	Idle State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	default:
		return "ready"
	}
}

// ListFunc loads the current snapshot for a feed, typically a repository
// List call. Corrupt stored data never surfaces here: the store already
// degrades it to an empty collection.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// Feed maintains the snapshot for one entity type in one tab.
type Feed[T any] struct {
	m     medium.Medium
	bus   *events.Bus
	key   string
	list  ListFunc[T]
	kinds map[events.Kind]struct{}
	log   zerolog.Logger

	mu      sync.Mutex
	state   State
	items   []T
	updates chan struct{}
}

// NewFeed builds a feed over key. bus may be nil when local mutations need
// no reflection (e.g. a read-only viewer); kinds selects which bus events
// trigger a refresh.
func NewFeed[T any](m medium.Medium, bus *events.Bus, key string, list ListFunc[T], kinds ...events.Kind) *Feed[T] {
	f := &Feed[T]{
		m:       m,
		bus:     bus,
		key:     key,
		list:    list,
		kinds:   make(map[events.Kind]struct{}, len(kinds)),
		log:     log.Logger,
		state:   Idle,
		updates: make(chan struct{}, 1),
	}
	for _, k := range kinds {
		f.kinds[k] = struct{}{}
	}
	return f
}

// Run watches for changes and blocks until ctx is cancelled. The first
// refresh happens immediately after the watch is in place, so no write can
// slip between initial load and subscription.
func (f *Feed[T]) Run(ctx context.Context) error {
	changes, err := f.m.Watch(ctx, f.key)
	if err != nil {
		return err
	}
	var local <-chan events.Event
	if f.bus != nil {
		local = f.bus.Subscribe(ctx)
	}

	f.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			f.refresh(ctx)
		case evt, ok := <-local:
			if !ok {
				local = nil
				continue
			}
			if _, want := f.kinds[evt.Kind]; want {
				f.refresh(ctx)
			}
		}
	}
}

func (f *Feed[T]) refresh(ctx context.Context) {
	f.setState(Loading)
	items, err := f.list(ctx)
	if err != nil {
		// medium unavailable: keep the previous snapshot rather than
		// blocking the consumer
		f.log.Warn().Str("key", f.key).Err(err).Msg("feed refresh failed, keeping previous snapshot")
		f.setState(Ready)
		return
	}
	f.mu.Lock()
	f.items = items
	f.state = Ready
	f.mu.Unlock()
	f.signal()
}

func (f *Feed[T]) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Feed[T]) signal() {
	select {
	case f.updates <- struct{}{}:
	default:
	}
}

// Snapshot returns the most recent successfully loaded collection.
func (f *Feed[T]) Snapshot() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]T, len(f.items))
	copy(out, f.items)
	return out
}

// State reports the feed lifecycle state.
func (f *Feed[T]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Updates signals after each completed refresh. The channel holds at most
// one pending signal; consumers poll Snapshot after draining it.
func (f *Feed[T]) Updates() <-chan struct{} {
	return f.updates
}

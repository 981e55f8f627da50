// Package events carries in-process mutation notifications from the
// repositories to observer feeds in the same tab. Cross-tab visibility is
// the medium's job; this bus only covers the tab's own writes, which the
// medium deliberately never echoes back.
package events

import (
	"context"
	"sync"
)

// Kind identifies which entity collection a mutation touched.
type Kind string

const (
	KindPostSaved      Kind = "post_saved"
	KindPostRemoved    Kind = "post_removed"
	KindChannelSaved   Kind = "channel_saved"
	KindChannelRemoved Kind = "channel_removed"
	KindMemberSaved    Kind = "member_saved"
	KindMemberRemoved  Kind = "member_removed"
	KindEventSaved     Kind = "event_saved"
	KindEventRemoved   Kind = "event_removed"
	KindCommunitySaved Kind = "community_saved"
)

// Event carries the minimum data a feed needs to decide whether to
// refresh. Only ids travel on the bus; consumers re-read full records
// from the store.
type Event struct {
	Kind        Kind
	ID          string
	CommunityID string
}

// Bus is a lightweight pub-sub fan-out backed by buffered channels.
type Bus struct {
	mu     sync.Mutex
	buffer int
	subs   map[chan Event]struct{}
}

// NewBus creates a bus whose subscriber channels hold up to buffer events.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 16
	}
	return &Bus{buffer: buffer, subs: make(map[chan Event]struct{})}
}

// Subscribe returns a channel receiving every published event until ctx is
// cancelled, at which point the channel is closed.
func (b *Bus) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	}()
	return ch
}

// Publish delivers evt to all subscribers without blocking. A subscriber
// whose buffer is full misses the event; feeds tolerate that because every
// wakeup re-reads the whole collection anyway.
func (b *Bus) Publish(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

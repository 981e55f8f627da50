// Package mem provides an in-process medium driver. A Hub plays the role
// of the browser's origin-scoped storage; each Open call returns a handle
// that behaves like one tab. The optional quota makes write rejection
// reproducible in tests.
package mem

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/peermall/peerstore/internal/medium"
)

// Option configures a Hub.
type Option func(*Hub)

// WithQuota caps the total size of keys plus values, in bytes. Zero means
// unlimited.
func WithQuota(bytes int) Option {
	return func(h *Hub) { h.quota = bytes }
}

// Hub is the shared storage all tabs of one hub read and write.
type Hub struct {
	mu     sync.Mutex
	data   map[string]string
	quota  int
	notify *medium.Notifier
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		data:   make(map[string]string),
		notify: medium.NewNotifier(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Open returns a new tab handle onto the hub.
func (h *Hub) Open() medium.Medium {
	return &tab{hub: h, origin: uuid.New().String()}
}

func (h *Hub) usage() int {
	total := 0
	for k, v := range h.data {
		total += len(k) + len(v)
	}
	return total
}

type tab struct {
	hub    *Hub
	origin string
}

func (t *tab) Origin() string { return t.origin }

func (t *tab) Get(_ context.Context, key string) (string, bool, error) {
	t.hub.mu.Lock()
	defer t.hub.mu.Unlock()
	v, ok := t.hub.data[key]
	return v, ok, nil
}

func (t *tab) Set(_ context.Context, key, value string) error {
	t.hub.mu.Lock()
	if t.hub.quota > 0 {
		next := t.hub.usage() - len(t.hub.data[key]) + len(value)
		if _, ok := t.hub.data[key]; !ok {
			next += len(key)
		}
		if next > t.hub.quota {
			t.hub.mu.Unlock()
			return medium.ErrQuotaExceeded
		}
	}
	t.hub.data[key] = value
	t.hub.mu.Unlock()

	t.hub.notify.Publish(medium.Change{Key: key, Origin: t.origin})
	return nil
}

func (t *tab) Delete(_ context.Context, key string) error {
	t.hub.mu.Lock()
	_, existed := t.hub.data[key]
	delete(t.hub.data, key)
	t.hub.mu.Unlock()

	if existed {
		t.hub.notify.Publish(medium.Change{Key: key, Origin: t.origin})
	}
	return nil
}

func (t *tab) Watch(ctx context.Context, keys ...string) (<-chan medium.Change, error) {
	return t.hub.notify.Watch(ctx, t.origin, keys...), nil
}

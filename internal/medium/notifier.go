package medium

import (
	"context"
	"sync"
)

const watchBuffer = 16

// Notifier fans change notifications out to in-process watchers. Drivers
// without a native cross-process signal (mem, sqlitekv) use it as their
// only delivery path; rediskv uses it for handles sharing one client.
type Notifier struct {
	mu   sync.Mutex
	subs map[*watcher]struct{}
}

type watcher struct {
	origin string
	keys   map[string]struct{}
	ch     chan Change
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[*watcher]struct{})}
}

// Watch registers a watcher for the given keys on behalf of origin.
// Changes published with that same origin are filtered out. The returned
// channel is closed when ctx is cancelled.
func (n *Notifier) Watch(ctx context.Context, origin string, keys ...string) <-chan Change {
	w := &watcher{
		origin: origin,
		keys:   make(map[string]struct{}, len(keys)),
		ch:     make(chan Change, watchBuffer),
	}
	for _, k := range keys {
		w.keys[k] = struct{}{}
	}
	n.mu.Lock()
	n.subs[w] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.subs, w)
		n.mu.Unlock()
		close(w.ch)
	}()
	return w.ch
}

// Publish delivers c to every watcher of c.Key except those registered by
// the originating handle. Sends never block; a full watcher drops the
// notification, which is acceptable because watchers re-read the whole
// collection on every wakeup.
func (n *Notifier) Publish(c Change) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for w := range n.subs {
		if w.origin == c.Origin {
			continue
		}
		if _, ok := w.keys[c.Key]; !ok {
			continue
		}
		select {
		case w.ch <- c:
		default:
		}
	}
}

package observer

import (
	"context"
	"testing"
	"time"

	"github.com/peermall/peerstore/internal/events"
	"github.com/peermall/peerstore/internal/keyspace"
	"github.com/peermall/peerstore/internal/medium/mem"
	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/store"
	"github.com/peermall/peerstore/internal/store/local"
)

func waitUpdate(t *testing.T, f *Feed[*model.Post]) {
	t.Helper()
	select {
	case <-f.Updates():
	case <-time.After(2 * time.Second):
		t.Fatalf("feed never refreshed")
	}
}

func TestFeedSeesCrossTabWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := mem.NewHub()
	writerTab := hub.Open()
	readerTab := hub.Open()
	writer := local.New(writerTab)
	reader := local.New(readerTab)

	feed := NewFeed(readerTab, nil, keyspace.PostsKey, func(ctx context.Context) ([]*model.Post, error) {
		return reader.Posts().List(ctx, store.PostQuery{CommunityID: "c1"})
	}, events.KindPostSaved, events.KindPostRemoved)

	if feed.State() != Idle {
		t.Fatalf("state before Run: %v", feed.State())
	}
	go func() { _ = feed.Run(ctx) }()
	waitUpdate(t, feed) // initial load
	if feed.State() != Ready || len(feed.Snapshot()) != 0 {
		t.Fatalf("initial: state=%v snapshot=%+v", feed.State(), feed.Snapshot())
	}

	if _, err := writer.Posts().Save(ctx, &model.Post{ID: "p1", Title: "Hello", CommunityID: "c1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	waitUpdate(t, feed)
	snap := feed.Snapshot()
	if len(snap) != 1 || snap[0].ID != "p1" {
		t.Fatalf("snapshot after cross-tab write: %+v", snap)
	}

	if err := writer.Posts().Remove(ctx, "p1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	waitUpdate(t, feed)
	if len(feed.Snapshot()) != 0 {
		t.Fatalf("snapshot after cross-tab remove: %+v", feed.Snapshot())
	}
}

func TestFeedSeesLocalMutationsViaBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tab := mem.NewHub().Open()
	bus := events.NewBus(16)
	s := local.NewWithBus(tab, bus)

	feed := NewFeed(tab, bus, keyspace.PostsKey, func(ctx context.Context) ([]*model.Post, error) {
		return s.Posts().List(ctx, store.PostQuery{})
	}, events.KindPostSaved, events.KindPostRemoved)

	go func() { _ = feed.Run(ctx) }()
	waitUpdate(t, feed)

	// the medium never echoes a tab's own writes; the bus covers them
	if _, err := s.Posts().Save(ctx, &model.Post{ID: "p1", CommunityID: "c1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	waitUpdate(t, feed)
	if snap := feed.Snapshot(); len(snap) != 1 || snap[0].ID != "p1" {
		t.Fatalf("snapshot after local write: %+v", snap)
	}
}

func TestFeedDegradesCorruptDataToEmptyReady(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := mem.NewHub()
	writerTab := hub.Open()
	readerTab := hub.Open()
	reader := local.New(readerTab)

	if _, err := local.New(writerTab).Posts().Save(ctx, &model.Post{ID: "p1", CommunityID: "c1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	feed := NewFeed(readerTab, nil, keyspace.PostsKey, func(ctx context.Context) ([]*model.Post, error) {
		return reader.Posts().List(ctx, store.PostQuery{})
	})
	go func() { _ = feed.Run(ctx) }()
	waitUpdate(t, feed)
	if len(feed.Snapshot()) != 1 {
		t.Fatalf("initial snapshot: %+v", feed.Snapshot())
	}

	if err := writerTab.Set(ctx, keyspace.PostsKey, "}{"); err != nil {
		t.Fatalf("corrupting key: %v", err)
	}
	waitUpdate(t, feed)
	if feed.State() != Ready {
		t.Fatalf("state after corrupt refresh: %v", feed.State())
	}
	if len(feed.Snapshot()) != 0 {
		t.Fatalf("corrupt data should read as empty, got %+v", feed.Snapshot())
	}
}

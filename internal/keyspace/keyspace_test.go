package keyspace

import (
	"context"
	"errors"
	"testing"

	"github.com/peermall/peerstore/internal/medium/mem"
	"github.com/peermall/peerstore/internal/model"
)

func TestReadCollectionAbsentKey(t *testing.T) {
	tab := mem.NewHub().Open()
	items, err := ReadCollection[*model.Post](context.Background(), tab, PostsKey)
	if err != nil {
		t.Fatalf("ReadCollection: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(items))
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	tab := mem.NewHub().Open()

	in := []*model.Post{
		{ID: "p1", Title: "Hello", CommunityID: "c1", ChannelID: "ch1", Tags: []string{"a", "b"}},
		{ID: "p2", Title: "World", CommunityID: "c2"},
	}
	if err := WriteCollection(ctx, tab, PostsKey, in); err != nil {
		t.Fatalf("WriteCollection: %v", err)
	}
	out, err := ReadCollection[*model.Post](ctx, tab, PostsKey)
	if err != nil {
		t.Fatalf("ReadCollection: %v", err)
	}
	if len(out) != 2 || out[0].ID != "p1" || out[1].ID != "p2" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if len(out[0].Tags) != 2 || out[0].Tags[1] != "b" {
		t.Fatalf("tags lost in round trip: %+v", out[0].Tags)
	}
}

func TestReadCollectionCorruptValue(t *testing.T) {
	ctx := context.Background()
	tab := mem.NewHub().Open()

	if err := tab.Set(ctx, PostsKey, "{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_, err := ReadCollection[*model.Post](ctx, tab, PostsKey)
	if !errors.Is(err, model.ErrCorruptCollection) {
		t.Fatalf("expected ErrCorruptCollection, got %v", err)
	}
}

func TestWriteCollectionQuotaRejected(t *testing.T) {
	ctx := context.Background()
	tab := mem.NewHub(mem.WithQuota(8)).Open()

	err := WriteCollection(ctx, tab, PostsKey, []*model.Post{{ID: "p1", Title: "too big"}})
	if !errors.Is(err, model.ErrPersistenceUnavailable) {
		t.Fatalf("expected ErrPersistenceUnavailable, got %v", err)
	}
}

package events

import (
	"context"
	"testing"
	"time"
)

func TestPublishFansOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBus(4)
	a := b.Subscribe(ctx)
	c := b.Subscribe(ctx)

	b.Publish(Event{Kind: KindPostSaved, ID: "p1", CommunityID: "c1"})

	for _, ch := range []<-chan Event{a, c} {
		select {
		case evt := <-ch:
			if evt.Kind != KindPostSaved || evt.ID != "p1" {
				t.Fatalf("unexpected event: %+v", evt)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber never received event")
		}
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBus(1)
	_ = b.Subscribe(ctx) // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			b.Publish(Event{Kind: KindPostSaved})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Publish blocked on a full subscriber")
	}
}

func TestSubscribeClosedOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBus(1)
	ch := b.Subscribe(ctx)
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed after cancel")
	}
}

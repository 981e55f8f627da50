package calendar

import (
	"context"
	"testing"

	"github.com/peermall/peerstore/internal/core/board"
	"github.com/peermall/peerstore/internal/medium/mem"
	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/store/local"
)

func TestCreateEventRejectsReversedDates(t *testing.T) {
	s := NewService(local.New(mem.NewHub().Open()))
	_, err := s.CreateEvent(context.Background(), CreateEventRequest{
		CommunityID: "c1", Title: "meetup", StartDate: "2026-09-12", EndDate: "2026-09-10",
	})
	if !board.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateEventAcceptsTimestampDates(t *testing.T) {
	s := NewService(local.New(mem.NewHub().Open()))
	e, err := s.CreateEvent(context.Background(), CreateEventRequest{
		CommunityID: "c1", Title: "meetup",
		StartDate: "2026-09-10T09:00:00Z", EndDate: "2026-09-10T17:00:00Z",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if e.ID == "" {
		t.Fatalf("event id not minted")
	}
}

func TestHasEventLifecycle(t *testing.T) {
	ctx := context.Background()
	st := local.New(mem.NewHub().Open())
	s := NewService(st)

	if _, err := st.Communities().Save(ctx, &model.Community{ID: "c1"}); err != nil {
		t.Fatalf("seed community: %v", err)
	}
	e1, err := s.CreateEvent(ctx, CreateEventRequest{CommunityID: "c1", Title: "a", StartDate: "2026-09-10", EndDate: "2026-09-11"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	e2, err := s.CreateEvent(ctx, CreateEventRequest{CommunityID: "c1", Title: "b", StartDate: "2026-09-12", EndDate: "2026-09-12"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	c, _ := st.Communities().FindByID(ctx, "c1")
	if !c.HasEvent {
		t.Fatalf("hasEvent not set after create")
	}

	if err := s.RemoveEvent(ctx, e1.ID); err != nil {
		t.Fatalf("RemoveEvent: %v", err)
	}
	c, _ = st.Communities().FindByID(ctx, "c1")
	if !c.HasEvent {
		t.Fatalf("hasEvent cleared while events remain")
	}

	if err := s.RemoveEvent(ctx, e2.ID); err != nil {
		t.Fatalf("RemoveEvent: %v", err)
	}
	c, _ = st.Communities().FindByID(ctx, "c1")
	if c.HasEvent {
		t.Fatalf("hasEvent still set after last event removed")
	}
}

func TestRemoveAbsentEventIsNoop(t *testing.T) {
	s := NewService(local.New(mem.NewHub().Open()))
	if err := s.RemoveEvent(context.Background(), "missing"); err != nil {
		t.Fatalf("RemoveEvent absent: %v", err)
	}
}

package roster

import (
	"context"
	"testing"

	"github.com/peermall/peerstore/internal/core/board"
	"github.com/peermall/peerstore/internal/medium/mem"
	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/store/local"
)

func TestAddMemberRejectsUnknownRole(t *testing.T) {
	s := NewService(local.New(mem.NewHub().Open()))
	_, err := s.AddMember(context.Background(), AddMemberRequest{CommunityID: "c1", Name: "alice", Role: "emperor"})
	if !board.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddMemberDefaultsRole(t *testing.T) {
	s := NewService(local.New(mem.NewHub().Open()))
	m, err := s.AddMember(context.Background(), AddMemberRequest{CommunityID: "c1", Name: "alice"})
	if err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if m.Role != model.RoleMember || !m.IsActive || m.JoinedAt == "" {
		t.Fatalf("member defaults: %+v", m)
	}
}

func TestMemberCountTracksRoster(t *testing.T) {
	ctx := context.Background()
	st := local.New(mem.NewHub().Open())
	s := NewService(st)

	if _, err := st.Communities().Save(ctx, &model.Community{ID: "c1", Name: "Makers"}); err != nil {
		t.Fatalf("seed community: %v", err)
	}
	a, err := s.AddMember(ctx, AddMemberRequest{CommunityID: "c1", Name: "alice", Role: model.RoleOwner})
	if err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if _, err := s.AddMember(ctx, AddMemberRequest{CommunityID: "c1", Name: "bob"}); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	c, _ := st.Communities().FindByID(ctx, "c1")
	if c.MemberCount != 2 {
		t.Fatalf("member count after adds: %+v", c)
	}

	if err := s.RemoveMember(ctx, a.ID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	c, _ = st.Communities().FindByID(ctx, "c1")
	if c.MemberCount != 1 {
		t.Fatalf("member count after remove: %+v", c)
	}

	// absent remove leaves the count alone
	if err := s.RemoveMember(ctx, "missing"); err != nil {
		t.Fatalf("RemoveMember absent: %v", err)
	}
	c, _ = st.Communities().FindByID(ctx, "c1")
	if c.MemberCount != 1 {
		t.Fatalf("member count after absent remove: %+v", c)
	}
}

func TestSetActiveKeepsCount(t *testing.T) {
	ctx := context.Background()
	st := local.New(mem.NewHub().Open())
	s := NewService(st)

	if _, err := st.Communities().Save(ctx, &model.Community{ID: "c1"}); err != nil {
		t.Fatalf("seed community: %v", err)
	}
	m, err := s.AddMember(ctx, AddMemberRequest{CommunityID: "c1", Name: "alice"})
	if err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	got, err := s.SetActive(ctx, m.ID, false)
	if err != nil || got.IsActive {
		t.Fatalf("SetActive: %+v err=%v", got, err)
	}
	c, _ := st.Communities().FindByID(ctx, "c1")
	if c.MemberCount != 1 {
		t.Fatalf("deactivation changed the count: %+v", c)
	}
}

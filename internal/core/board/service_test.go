package board

import (
	"context"
	"strings"
	"testing"

	"github.com/peermall/peerstore/internal/medium/mem"
	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/store/local"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(local.New(mem.NewHub().Open()))
}

func TestCreatePostValidation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreatePostRequest
	}{
		{"missing community", CreatePostRequest{Title: "t", Author: "a"}},
		{"missing title", CreatePostRequest{CommunityID: "c1", Author: "a"}},
		{"missing author", CreatePostRequest{CommunityID: "c1", Title: "t"}},
		{"title too long", CreatePostRequest{CommunityID: "c1", Author: "a", Title: strings.Repeat("x", 201)}},
	}
	for _, tc := range cases {
		if _, err := s.CreatePost(ctx, tc.req); !IsValidationError(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreatePostDerivesExcerpt(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	body := strings.Repeat("x", ExcerptLimit+40)
	p, err := s.CreatePost(ctx, CreatePostRequest{
		CommunityID: "c1", ChannelID: "ch1", Title: "Hello", Author: "alice", Body: body,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if len([]rune(p.Content)) != ExcerptLimit+3 || !strings.HasSuffix(p.Content, "...") {
		t.Fatalf("excerpt not capped: %d chars", len([]rune(p.Content)))
	}
	if p.RichContent == nil || *p.RichContent != body {
		t.Fatalf("rich content not preserved")
	}
	if p.ID == "" || p.Date == "" {
		t.Fatalf("id or date not set: %+v", p)
	}
}

func TestExcerptShortBodyUntouched(t *testing.T) {
	if got := Excerpt("short"); got != "short" {
		t.Fatalf("Excerpt(short) = %q", got)
	}
	// limit-length body gets no marker
	exact := strings.Repeat("y", ExcerptLimit)
	if got := Excerpt(exact); got != exact {
		t.Fatalf("Excerpt at limit altered the body")
	}
}

func TestCreatePostBumpsCommunityCounters(t *testing.T) {
	ctx := context.Background()
	st := local.New(mem.NewHub().Open())
	s := NewService(st)

	if _, err := st.Communities().Save(ctx, &model.Community{ID: "c1", Name: "Makers"}); err != nil {
		t.Fatalf("seed community: %v", err)
	}
	p, err := s.CreatePost(ctx, CreatePostRequest{CommunityID: "c1", Title: "t", Author: "a"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	c, _ := st.Communities().FindByID(ctx, "c1")
	if c.PostCount != 1 || c.LastActive == "" {
		t.Fatalf("counters after create: %+v", c)
	}

	if err := s.DeletePost(ctx, p.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	c, _ = st.Communities().FindByID(ctx, "c1")
	if c.PostCount != 0 {
		t.Fatalf("counters after delete: %+v", c)
	}
}

func TestEditPostPreservesIdentity(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	p, err := s.CreatePost(ctx, CreatePostRequest{CommunityID: "c1", ChannelID: "ch1", Title: "Hello", Author: "alice", Body: "World"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	got, err := s.EditPost(ctx, EditPostRequest{ID: p.ID, Title: "Hello v2", Body: "World v2"})
	if err != nil {
		t.Fatalf("EditPost: %v", err)
	}
	if got.ID != p.ID || got.CommunityID != "c1" || got.ChannelID != "ch1" || got.Date != p.Date {
		t.Fatalf("identity changed on edit: %+v", got)
	}
	if got.Title != "Hello v2" || !got.IsEdited || got.LastEditedAt == nil {
		t.Fatalf("edit not applied: %+v", got)
	}
}

func TestDeleteAbsentPostIsNoop(t *testing.T) {
	s := newService(t)
	if err := s.DeletePost(context.Background(), "missing"); err != nil {
		t.Fatalf("DeletePost absent: %v", err)
	}
}

func TestLikeAndViewPassthrough(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	p, err := s.CreatePost(ctx, CreatePostRequest{CommunityID: "c1", Title: "t", Author: "a"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if got, err := s.LikePost(ctx, p.ID); err != nil || got.Likes != 1 {
		t.Fatalf("LikePost: %+v err=%v", got, err)
	}
	if got, err := s.ViewPost(ctx, p.ID); err != nil || got.ViewCount != 1 {
		t.Fatalf("ViewPost: %+v err=%v", got, err)
	}
}

func TestCreateChannelValidation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	if _, err := s.CreateChannel(ctx, CreateChannelRequest{CommunityID: "c1", Name: "general", Color: "orange"}); !IsValidationError(err) {
		t.Fatalf("expected color validation error, got %v", err)
	}
	ch, err := s.CreateChannel(ctx, CreateChannelRequest{CommunityID: "c1", Name: "general", Color: "#FF6600"})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	if ch.ID == "" {
		t.Fatalf("channel id not minted")
	}
}

func TestSortForBoard(t *testing.T) {
	posts := []*model.Post{
		{ID: "p1", Date: "2026-08-30"},
		{ID: "p2", Date: "2026-09-01"},
		{ID: "p3", Date: "2026-08-29", IsNotice: true},
		{ID: "p4", Date: "2026-09-01"},
	}
	SortForBoard(posts)
	want := []string{"p3", "p4", "p2", "p1"}
	for i, id := range want {
		if posts[i].ID != id {
			t.Fatalf("order[%d] = %s, want %s (full: %v)", i, posts[i].ID, id, posts)
		}
	}
}

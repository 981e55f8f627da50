package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/peermall/peerstore/internal/keyspace"
	"github.com/peermall/peerstore/internal/medium"
	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store together with a medium
// handle onto the same underlying data, which the suite uses to corrupt
// raw values.
func Run(t *testing.T, makeStore func(t *testing.T) (store.Store, medium.Medium)) {
	t.Helper()
	ctx := context.Background()

	t.Run("PostRoundTrip", func(t *testing.T) {
		s, _ := makeStore(t)
		rich := "<p>World</p>"
		in := &model.Post{
			ID: "p1", Title: "Hello", Author: "alice", Date: "2026-09-01",
			Content: "World", RichContent: &rich, Tags: []string{"intro", "hello"},
			IsNotice: true, ChannelID: "ch1", CommunityID: "c1",
		}
		if _, err := s.Posts().Save(ctx, in); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := s.Posts().FindByID(ctx, "p1")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.Title != in.Title || got.Author != in.Author || got.Date != in.Date ||
			got.Content != in.Content || !got.IsNotice || got.ChannelID != in.ChannelID ||
			got.CommunityID != in.CommunityID || len(got.Tags) != 2 {
			t.Fatalf("round trip mismatch: %+v", got)
		}
		if got.RichContent == nil || *got.RichContent != rich {
			t.Fatalf("rich content lost: %+v", got.RichContent)
		}
	})

	t.Run("FindByIDNotFound", func(t *testing.T) {
		s, _ := makeStore(t)
		if _, err := s.Posts().FindByID(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveReplacesInPlace", func(t *testing.T) {
		s, _ := makeStore(t)
		for _, id := range []string{"p1", "p2", "p3"} {
			if _, err := s.Posts().Save(ctx, &model.Post{ID: id, CommunityID: "c1"}); err != nil {
				t.Fatalf("Save %s: %v", id, err)
			}
		}
		// p2 sits in the middle; updating it must not move it
		if _, err := s.Posts().Save(ctx, &model.Post{ID: "p2", Title: "updated", CommunityID: "c1"}); err != nil {
			t.Fatalf("Save update: %v", err)
		}
		lst, err := s.Posts().List(ctx, store.PostQuery{CommunityID: "c1"})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(lst) != 3 || lst[0].ID != "p3" || lst[1].ID != "p2" || lst[2].ID != "p1" {
			t.Fatalf("unexpected order: %+v", lst)
		}
		if lst[1].Title != "updated" {
			t.Fatalf("update lost: %+v", lst[1])
		}
	})

	t.Run("IdempotentRemove", func(t *testing.T) {
		s, _ := makeStore(t)
		if _, err := s.Posts().Save(ctx, &model.Post{ID: "p1", CommunityID: "c1"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := s.Posts().Remove(ctx, "p1"); err != nil {
			t.Fatalf("first Remove: %v", err)
		}
		after1, _ := s.Posts().List(ctx, store.PostQuery{})
		if err := s.Posts().Remove(ctx, "p1"); err != nil {
			t.Fatalf("second Remove: %v", err)
		}
		after2, _ := s.Posts().List(ctx, store.PostQuery{})
		if len(after1) != 0 || len(after2) != 0 {
			t.Fatalf("remove not idempotent: %d then %d", len(after1), len(after2))
		}
	})

	t.Run("PartitionCorrectness", func(t *testing.T) {
		s, _ := makeStore(t)
		c1, c2 := "c-"+uuid.New().String(), "c-"+uuid.New().String()
		if _, err := s.Posts().Save(ctx, &model.Post{ID: "p1", CommunityID: c1, ChannelID: "ch1"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if _, err := s.Posts().Save(ctx, &model.Post{ID: "p2", CommunityID: c2, ChannelID: "ch1"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
		lst, err := s.Posts().List(ctx, store.PostQuery{CommunityID: c1})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(lst) != 1 || lst[0].ID != "p1" {
			t.Fatalf("partition leak: %+v", lst)
		}
		for _, p := range lst {
			if p.CommunityID == c2 {
				t.Fatalf("list(%s) returned record of %s", c1, c2)
			}
		}
		byChannel, err := s.Posts().List(ctx, store.PostQuery{CommunityID: c1, ChannelID: "ch2"})
		if err != nil || len(byChannel) != 0 {
			t.Fatalf("channel filter leak: %+v err=%v", byChannel, err)
		}
	})

	t.Run("CounterMonotonicity", func(t *testing.T) {
		s, _ := makeStore(t)
		if _, err := s.Posts().Save(ctx, &model.Post{ID: "p1", CommunityID: "c1", Likes: 2}); err != nil {
			t.Fatalf("Save: %v", err)
		}
		const n = 7
		var last *model.Post
		for i := 0; i < n; i++ {
			p, err := s.Posts().IncrementLike(ctx, "p1")
			if err != nil {
				t.Fatalf("IncrementLike %d: %v", i, err)
			}
			last = p
		}
		if last.Likes != 2+n {
			t.Fatalf("likes = %d, want %d", last.Likes, 2+n)
		}
		if p, err := s.Posts().IncrementView(ctx, "p1"); err != nil || p.ViewCount != 1 {
			t.Fatalf("IncrementView: %+v err=%v", p, err)
		}
	})

	t.Run("CounterNotFoundIsNoop", func(t *testing.T) {
		s, _ := makeStore(t)
		if _, err := s.Posts().IncrementLike(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CorruptDataTolerance", func(t *testing.T) {
		s, m := makeStore(t)
		if _, err := s.Posts().Save(ctx, &model.Post{ID: "p1", CommunityID: "c1"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := m.Set(ctx, keyspace.PostsKey, "][ not json"); err != nil {
			t.Fatalf("corrupting key: %v", err)
		}
		lst, err := s.Posts().List(ctx, store.PostQuery{})
		if err != nil {
			t.Fatalf("List over corrupt data: %v", err)
		}
		if len(lst) != 0 {
			t.Fatalf("expected empty list, got %+v", lst)
		}
	})

	t.Run("CreateEditDeleteScenario", func(t *testing.T) {
		s, _ := makeStore(t)
		if _, err := s.Posts().Save(ctx, &model.Post{
			ID: "p1", Title: "Hello", Content: "World", CommunityID: "c1", ChannelID: "ch1",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
		lst, _ := s.Posts().List(ctx, store.PostQuery{CommunityID: "c1"})
		if len(lst) != 1 || lst[0].ID != "p1" {
			t.Fatalf("list after create: %+v", lst)
		}
		if p, err := s.Posts().IncrementView(ctx, "p1"); err != nil || p.ViewCount != 1 {
			t.Fatalf("view: %+v err=%v", p, err)
		}
		cur, _ := s.Posts().FindByID(ctx, "p1")
		cur.Title = "Hello v2"
		if _, err := s.Posts().Save(ctx, cur); err != nil {
			t.Fatalf("edit: %v", err)
		}
		got, _ := s.Posts().FindByID(ctx, "p1")
		if got.Title != "Hello v2" || got.ID != "p1" || got.CommunityID != "c1" {
			t.Fatalf("after edit: %+v", got)
		}
		if err := s.Posts().Remove(ctx, "p1"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		lst, _ = s.Posts().List(ctx, store.PostQuery{CommunityID: "c1"})
		if len(lst) != 0 {
			t.Fatalf("list after remove: %+v", lst)
		}
	})

	t.Run("ChannelsMembersEventsCRUD", func(t *testing.T) {
		s, _ := makeStore(t)
		icon := "📣"
		if _, err := s.Channels().Save(ctx, &model.Channel{ID: "ch1", Name: "general", Icon: &icon, Color: "#ff6600", CommunityID: "c1"}); err != nil {
			t.Fatalf("Channels.Save: %v", err)
		}
		if chs, err := s.Channels().List(ctx, "c1"); err != nil || len(chs) != 1 || chs[0].Color != "#ff6600" {
			t.Fatalf("Channels.List: %+v err=%v", chs, err)
		}
		if _, err := s.Members().Save(ctx, &model.Member{ID: "m1", Name: "alice", Role: model.RoleOwner, IsActive: true, CommunityID: "c1"}); err != nil {
			t.Fatalf("Members.Save: %v", err)
		}
		if ms, err := s.Members().List(ctx, "c1"); err != nil || len(ms) != 1 {
			t.Fatalf("Members.List: %+v err=%v", ms, err)
		}
		if _, err := s.Events().Save(ctx, &model.Event{ID: "e1", Title: "meetup", StartDate: "2026-09-10", EndDate: "2026-09-11", CommunityID: "c1"}); err != nil {
			t.Fatalf("Events.Save: %v", err)
		}
		if err := s.Events().Remove(ctx, "e1"); err != nil {
			t.Fatalf("Events.Remove: %v", err)
		}
		if evs, err := s.Events().List(ctx, "c1"); err != nil || len(evs) != 0 {
			t.Fatalf("Events.List after remove: %+v err=%v", evs, err)
		}
	})

	t.Run("CommunityCounters", func(t *testing.T) {
		s, _ := makeStore(t)
		if _, err := s.Communities().Save(ctx, &model.Community{ID: "c1", Name: "Makers"}); err != nil {
			t.Fatalf("Communities.Save: %v", err)
		}
		if err := s.Communities().AdjustPostCount(ctx, "c1", 1); err != nil {
			t.Fatalf("AdjustPostCount: %v", err)
		}
		if err := s.Communities().AdjustMemberCount(ctx, "c1", 2); err != nil {
			t.Fatalf("AdjustMemberCount: %v", err)
		}
		if err := s.Communities().SetHasEvent(ctx, "c1", true); err != nil {
			t.Fatalf("SetHasEvent: %v", err)
		}
		if err := s.Communities().TouchLastActive(ctx, "c1"); err != nil {
			t.Fatalf("TouchLastActive: %v", err)
		}
		got, err := s.Communities().FindByID(ctx, "c1")
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got.PostCount != 1 || got.MemberCount != 2 || !got.HasEvent || got.LastActive == "" {
			t.Fatalf("counters not applied: %+v", got)
		}
		// counter never goes negative
		if err := s.Communities().AdjustPostCount(ctx, "c1", -5); err != nil {
			t.Fatalf("AdjustPostCount down: %v", err)
		}
		got, _ = s.Communities().FindByID(ctx, "c1")
		if got.PostCount != 0 {
			t.Fatalf("post count went negative: %+v", got)
		}
		// unknown community is a silent no-op
		if err := s.Communities().AdjustPostCount(ctx, "nope", 1); err != nil {
			t.Fatalf("adjust unknown community: %v", err)
		}
	})
}

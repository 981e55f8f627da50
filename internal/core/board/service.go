// Package board contains the core business logic for posts and channels.
// It validates at the boundary, derives the plain-text excerpt, and bumps
// the parent community's denormalized counters opportunistically: a
// counter bump that fails after a successful child write is logged and
// dropped, never rolled back. The resulting drift is an accepted property
// of the aggregates, which are approximate by design.
package board

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/store"
)

// ExcerptLimit caps the plain-text excerpt stored alongside the rich body.
const ExcerptLimit = 150

// hex color seed, e.g. #ff6600
var colorRx = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Service contains the core business logic for board operations.
type Service struct {
	store store.Store
}

// NewService creates a new board service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// CreatePost validates the request, mints a time-based id, and saves the
// post with a derived excerpt.
func (s *Service) CreatePost(ctx context.Context, req CreatePostRequest) (*model.Post, error) {
	if err := s.validateCreatePostRequest(req); err != nil {
		return nil, err
	}

	p := &model.Post{
		ID:          model.NewPostID(),
		Title:       req.Title,
		Author:      req.Author,
		Date:        time.Now().UTC().Format("2006-01-02"),
		Content:     Excerpt(req.Body),
		Tags:        req.Tags,
		IsNotice:    req.IsNotice,
		ChannelID:   req.ChannelID,
		CommunityID: req.CommunityID,
	}
	if req.Body != "" {
		body := req.Body
		p.RichContent = &body
	}

	log.Info().Str("postID", p.ID).Str("communityID", p.CommunityID).Msg("Creating post")
	saved, err := s.store.Posts().Save(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("postID", p.ID).Msg("Failed to create post")
		return nil, err
	}
	s.bumpCommunity(ctx, req.CommunityID, 1)
	return saved, nil
}

// EditPost replaces the mutable fields of an existing post, marks it
// edited, and re-derives the excerpt. ID, community, channel, date and
// counters are preserved.
func (s *Service) EditPost(ctx context.Context, req EditPostRequest) (*model.Post, error) {
	if req.ID == "" {
		return nil, NewValidationError("id", "post ID is required")
	}
	if req.Title == "" {
		return nil, NewValidationError("title", "title is required")
	}

	cur, err := s.store.Posts().FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	cur.Title = req.Title
	cur.Content = Excerpt(req.Body)
	cur.Tags = req.Tags
	cur.IsNotice = req.IsNotice
	if req.Body != "" {
		body := req.Body
		cur.RichContent = &body
	} else {
		cur.RichContent = nil
	}
	cur.IsEdited = true
	editedAt := time.Now().UTC().Format(time.RFC3339)
	cur.LastEditedAt = &editedAt

	return s.store.Posts().Save(ctx, cur)
}

// DeletePost removes a post. Deleting an absent id is a no-op.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	p, err := s.store.Posts().FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("postID", id).Str("communityID", p.CommunityID).Msg("Deleting post")
	if err := s.store.Posts().Remove(ctx, id); err != nil {
		return err
	}
	s.bumpCommunity(ctx, p.CommunityID, -1)
	return nil
}

// ListPosts returns posts filtered by the optional partition keys, in
// insertion order. Use SortForBoard for display order.
func (s *Service) ListPosts(ctx context.Context, communityID, channelID string) ([]*model.Post, error) {
	return s.store.Posts().List(ctx, store.PostQuery{CommunityID: communityID, ChannelID: channelID})
}

// GetPost retrieves one post by id.
func (s *Service) GetPost(ctx context.Context, id string) (*model.Post, error) {
	return s.store.Posts().FindByID(ctx, id)
}

// ViewPost bumps the view counter and returns the updated post.
// model.ErrNotFound means the post vanished; callers keep showing the
// prior cached value.
func (s *Service) ViewPost(ctx context.Context, id string) (*model.Post, error) {
	return s.store.Posts().IncrementView(ctx, id)
}

// LikePost bumps the like counter and returns the updated post.
func (s *Service) LikePost(ctx context.Context, id string) (*model.Post, error) {
	p, err := s.store.Posts().IncrementLike(ctx, id)
	if err != nil {
		return nil, err
	}
	s.touch(ctx, p.CommunityID)
	return p, nil
}

// CreateChannel validates and saves a channel.
func (s *Service) CreateChannel(ctx context.Context, req CreateChannelRequest) (*model.Channel, error) {
	if req.CommunityID == "" {
		return nil, NewValidationError("communityID", "community ID is required")
	}
	if req.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	if len(req.Name) > 50 {
		return nil, NewValidationError("name", "name exceeds 50 characters")
	}
	if !colorRx.MatchString(req.Color) {
		return nil, NewValidationError("color", "color must be a #rrggbb hex string")
	}

	ch := &model.Channel{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Icon:        req.Icon,
		Color:       req.Color,
		Description: req.Description,
		CommunityID: req.CommunityID,
	}
	return s.store.Channels().Save(ctx, ch)
}

// ListChannels lists the channels of a community.
func (s *Service) ListChannels(ctx context.Context, communityID string) ([]*model.Channel, error) {
	return s.store.Channels().List(ctx, communityID)
}

// DeleteChannel removes a channel. Posts referencing it keep their
// channelId; readers treat the dangling reference as "unknown channel".
func (s *Service) DeleteChannel(ctx context.Context, id string) error {
	return s.store.Channels().Remove(ctx, id)
}

func (s *Service) validateCreatePostRequest(req CreatePostRequest) error {
	if req.CommunityID == "" {
		return NewValidationError("communityID", "community ID is required")
	}
	if req.Title == "" {
		return NewValidationError("title", "title is required")
	}
	if len(req.Title) > 200 {
		return NewValidationError("title", "title exceeds 200 characters")
	}
	if req.Author == "" {
		return NewValidationError("author", "author is required")
	}
	return nil
}

// bumpCommunity adjusts postCount and lastActive. Best effort only.
func (s *Service) bumpCommunity(ctx context.Context, communityID string, delta int) {
	if err := s.store.Communities().AdjustPostCount(ctx, communityID, delta); err != nil {
		log.Warn().Err(err).Str("communityID", communityID).Msg("post count bump failed")
	}
	s.touch(ctx, communityID)
}

func (s *Service) touch(ctx context.Context, communityID string) {
	if err := s.store.Communities().TouchLastActive(ctx, communityID); err != nil {
		log.Warn().Err(err).Str("communityID", communityID).Msg("last active bump failed")
	}
}

// Excerpt derives the plain-text excerpt stored on a post. Bodies longer
// than ExcerptLimit characters are cut at the limit with an ellipsis
// marker appended; shorter bodies pass through unchanged.
func Excerpt(body string) string {
	runes := []rune(body)
	if len(runes) <= ExcerptLimit {
		return body
	}
	return string(runes[:ExcerptLimit]) + "..."
}

// SortForBoard orders posts the way the board renders them: notices
// first, then by date descending, then by id descending so same-day
// posts keep a stable, newest-first order. Sorting happens at render
// time, never in the store.
func SortForBoard(posts []*model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].IsNotice != posts[j].IsNotice {
			return posts[i].IsNotice
		}
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return strings.Compare(posts[i].ID, posts[j].ID) > 0
	})
}

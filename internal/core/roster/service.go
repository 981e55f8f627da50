// Package roster contains the core business logic for community
// membership. The parent community's memberCount follows additions and
// removals made here, eventually consistent and never reconciled.
package roster

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/peermall/peerstore/internal/core/board"
	"github.com/peermall/peerstore/internal/model"
	"github.com/peermall/peerstore/internal/store"
)

var roles = map[string]bool{
	model.RoleOwner:     true,
	model.RoleAdmin:     true,
	model.RoleModerator: true,
	model.RoleMember:    true,
}

// Service contains the core business logic for roster operations.
type Service struct {
	store store.Store
}

// NewService creates a new roster service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// AddMemberRequest represents a request to add a member to a community.
type AddMemberRequest struct {
	CommunityID string
	Name        string
	Role        string
}

// AddMember validates the role label, saves the member as active, and
// bumps the community's memberCount.
func (s *Service) AddMember(ctx context.Context, req AddMemberRequest) (*model.Member, error) {
	if req.CommunityID == "" {
		return nil, board.NewValidationError("communityID", "community ID is required")
	}
	if req.Name == "" {
		return nil, board.NewValidationError("name", "name is required")
	}
	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	if !roles[role] {
		return nil, board.NewValidationError("role", "unknown role label: "+role)
	}

	m := &model.Member{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Role:        role,
		JoinedAt:    time.Now().UTC().Format("2006-01-02"),
		IsActive:    true,
		CommunityID: req.CommunityID,
	}
	saved, err := s.store.Members().Save(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := s.store.Communities().AdjustMemberCount(ctx, req.CommunityID, 1); err != nil {
		log.Warn().Err(err).Str("communityID", req.CommunityID).Msg("member count bump failed")
	}
	return saved, nil
}

// RemoveMember removes a member and decrements the community's
// memberCount. Removing an absent id is a no-op.
func (s *Service) RemoveMember(ctx context.Context, id string) error {
	m, err := s.store.Members().FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.store.Members().Remove(ctx, id); err != nil {
		return err
	}
	if err := s.store.Communities().AdjustMemberCount(ctx, m.CommunityID, -1); err != nil {
		log.Warn().Err(err).Str("communityID", m.CommunityID).Msg("member count bump failed")
	}
	return nil
}

// SetActive toggles a member's active flag without touching the count;
// inactive members still belong to the community.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*model.Member, error) {
	m, err := s.store.Members().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.IsActive = active
	return s.store.Members().Save(ctx, m)
}

// ListMembers lists the members of a community.
func (s *Service) ListMembers(ctx context.Context, communityID string) ([]*model.Member, error) {
	return s.store.Members().List(ctx, communityID)
}

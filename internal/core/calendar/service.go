// Package calendar contains the core business logic for community map
// events. Date ordering is enforced here at the boundary; the store never
// inspects dates. The community's hasEvent flag tracks whether any events
// remain after each mutation.
package calendar

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

// Service contains the core business logic for calendar operations.
type Service struct {
	store store.Store
}

// NewService creates a new calendar service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// CreateEventRequest represents a request to create a community map event.
type CreateEventRequest struct {
	CommunityID string
	Title       string
	Description string
	StartDate   string
	EndDate     string
}

// CreateEvent validates dates, saves the event, and marks the community
// as having events.
func (s *Service) CreateEvent(ctx context.Context, req CreateEventRequest) (*model.Event, error) {
	if req.CommunityID == "" {
		return nil, board.NewValidationError("communityID", "community ID is required")
	}
	if req.Title == "" {
		return nil, board.NewValidationError("title", "title is required")
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, board.NewValidationError("startDate", "not a date: "+req.StartDate)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, board.NewValidationError("endDate", "not a date: "+req.EndDate)
	}
	if start.After(end) {
		return nil, board.NewValidationError("startDate", "start date is after end date")
	}

	e := &model.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CommunityID: req.CommunityID,
	}
	saved, err := s.store.Events().Save(ctx, e)
	if err != nil {
		return nil, err
	}
	if err := s.store.Communities().SetHasEvent(ctx, req.CommunityID, true); err != nil {
		log.Warn().Err(err).Str("communityID", req.CommunityID).Msg("hasEvent bump failed")
	}
	return saved, nil
}

// RemoveEvent removes an event and refreshes the community's hasEvent
// flag from the remaining events. Removing an absent id is a no-op.
func (s *Service) RemoveEvent(ctx context.Context, id string) error {
	e, err := s.store.Events().FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.store.Events().Remove(ctx, id); err != nil {
		return err
	}
	rest, err := s.store.Events().List(ctx, e.CommunityID)
	if err != nil {
		log.Warn().Err(err).Str("communityID", e.CommunityID).Msg("hasEvent refresh skipped")
		return nil
	}
	if err := s.store.Communities().SetHasEvent(ctx, e.CommunityID, len(rest) > 0); err != nil {
		log.Warn().Err(err).Str("communityID", e.CommunityID).Msg("hasEvent bump failed")
	}
	return nil
}

// ListEvents lists the events of a community.
func (s *Service) ListEvents(ctx context.Context, communityID string) ([]*model.Event, error) {
	return s.store.Events().List(ctx, communityID)
}

// parseDate accepts the two shapes the UI produces: a bare date or a full
// RFC 3339 timestamp.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

package services

import (
	"context"

	"campus-hub/agora/internal/cache"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/models/entities"
)

// CommunityEventService gates community-event mutations behind ownership:
// only the owning account may update or delete an event.
type CommunityEventService struct {
	events *cache.Manager[entities.CommunityEvent]
}

func NewCommunityEventService(events *cache.Manager[entities.CommunityEvent]) *CommunityEventService {
	return &CommunityEventService{events: events}
}

func (s *CommunityEventService) List(ctx context.Context) ([]entities.CommunityEvent, error) {
	return s.events.GetAll(ctx)
}

func (s *CommunityEventService) Get(ctx context.Context, id int64) (*entities.CommunityEvent, error) {
	return s.events.GetByID(ctx, id)
}

func (s *CommunityEventService) Create(ctx context.Context, actorID int64, event *entities.CommunityEvent) (*entities.CommunityEvent, error) {
	event.AccountID = actorID
	return s.events.Create(ctx, event)
}

func (s *CommunityEventService) Update(ctx context.Context, actorID, id int64, patch cache.Patch) (*entities.CommunityEvent, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	if event.AccountID != actorID {
		return nil, constants.NewForbidden("only the owner can modify this event")
	}

	// Ownership is not patchable.
	delete(patch, "account_id")
	return s.events.Update(ctx, id, patch)
}

func (s *CommunityEventService) Delete(ctx context.Context, actorID, id int64) (bool, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if event == nil {
		return false, nil
	}
	if event.AccountID != actorID {
		return false, constants.NewForbidden("only the owner can delete this event")
	}

	return s.events.Delete(ctx, id)
}

package items

import (
	"context"

	"github.com/google/uuid"

	"github.com/atelier-hq/atelier/internal/auth"
	"github.com/atelier-hq/atelier/internal/shared"
)

// Service implements item business rules. Ownership checks live here so
// every transport shares the same policy.
type Service struct {
	repo Repository
}

// NewService builds an item service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the items the principal may see. Superusers see every
// item, regular users only their own, anonymous callers none.
func (s *Service) List(ctx context.Context, principal *auth.User, skip, limit int) ([]Item, int, error) {
	switch {
	case principal == nil:
		return []Item{}, 0, nil
	case auth.CanReadAll(principal):
		return s.repo.List(ctx, skip, limit)
	default:
		return s.repo.ListByOwner(ctx, principal.ID, skip, limit)
	}
}

// Get returns a single item if the principal owns it or is a superuser.
func (s *Service) Get(ctx context.Context, principal *auth.User, id uuid.UUID) (*Item, error) {
	if principal == nil {
		return nil, shared.ErrUnauthenticated
	}
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(principal, item.OwnerID) {
		return nil, shared.ErrForbidden
	}
	return item, nil
}

// Create stores a new item owned by the principal.
func (s *Service) Create(ctx context.Context, principal *auth.User, req CreateItemRequest) (*Item, error) {
	if principal == nil {
		return nil, shared.ErrUnauthenticated
	}
	item := Item{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     principal.ID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies a partial update to an item the principal may mutate.
func (s *Service) Update(ctx context.Context, principal *auth.User, id uuid.UUID, req UpdateItemRequest) (*Item, error) {
	if principal == nil {
		return nil, shared.ErrUnauthenticated
	}
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(principal, item.OwnerID) {
		return nil, shared.ErrForbidden
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if err := s.repo.Update(ctx, *item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item the principal may mutate.
func (s *Service) Delete(ctx context.Context, principal *auth.User, id uuid.UUID) error {
	if principal == nil {
		return shared.ErrUnauthenticated
	}
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutate(principal, item.OwnerID) {
		return shared.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// DeleteByOwner removes every item owned by the given user. It backs the
// account deletion cascade in the users module.
func (s *Service) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return s.repo.DeleteByOwner(ctx, ownerID)
}

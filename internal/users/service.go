package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/atelier-hq/atelier/internal/auth"
	"github.com/atelier-hq/atelier/internal/shared"
)

var (
	// ErrIncorrectPassword signals a failed current-password check.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrSamePassword rejects a password change to the identical value.
	ErrSamePassword = errors.New("new password matches current password")
)

// ItemRemover cascades deletion of a user's owned resources.
type ItemRemover interface {
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

// Service handles account business logic.
type Service struct {
	repo   Repository
	hasher *auth.Hasher
	items  ItemRemover
}

// NewService builds a Service instance.
func NewService(repo Repository, hasher *auth.Hasher, items ItemRemover) *Service {
	return &Service{repo: repo, hasher: hasher, items: items}
}

func (s *Service) emailTaken(ctx context.Context, email string, selfID uuid.UUID) (bool, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != selfID, nil
}

func (s *Service) create(ctx context.Context, email, password, fullName string, active, superuser bool) (*User, error) {
	taken, err := s.emailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already exists", shared.ErrConflict)
	}
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := User{
		ID:             uuid.New(),
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashed,
		IsActive:       active,
		IsSuperuser:    superuser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account through open signup.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	return s.create(ctx, req.Email, req.Password, req.FullName, true, false)
}

// Create creates an account through the administrative path.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return s.create(ctx, req.Email, req.Password, req.FullName, active, req.IsSuperuser)
}

// List returns a page of accounts with the total count.
func (s *Service) List(ctx context.Context, skip, limit int) ([]User, int, error) {
	return s.repo.List(ctx, skip, limit)
}

// Get loads an account for reading. Users may read themselves; reading
// anyone else requires superuser privileges.
func (s *Service) Get(ctx context.Context, actor *auth.User, id uuid.UUID) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(actor, user.ID) {
		return nil, shared.ErrForbidden
	}
	return user, nil
}

// UpdateMe applies a profile patch to the calling user's own account.
func (s *Service) UpdateMe(ctx context.Context, actor *auth.User, req UpdateMeRequest) (*User, error) {
	user, err := s.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.emailTaken(ctx, *req.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: email already exists", shared.ErrConflict)
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if err := s.repo.Update(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword verifies the current password and persists a new hash.
func (s *Service) UpdatePassword(ctx context.Context, actor *auth.User, current, newPassword string) error {
	if !s.hasher.Verify(current, actor.HashedPassword) {
		return ErrIncorrectPassword
	}
	if current == newPassword {
		return ErrSamePassword
	}
	user, err := s.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.HashedPassword = hashed
	return s.repo.Update(ctx, *user)
}

// DeleteMe removes the calling user's own account together with every
// resource it owns. Superusers may not delete themselves.
func (s *Service) DeleteMe(ctx context.Context, actor *auth.User) error {
	if !auth.CanSelfDelete(actor) {
		return fmt.Errorf("%w: superusers are not allowed to delete themselves", shared.ErrForbidden)
	}
	if err := s.items.DeleteByOwner(ctx, actor.ID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, actor.ID)
}

// AdminUpdate applies an administrative patch to any account.
func (s *Service) AdminUpdate(ctx context.Context, id uuid.UUID, req AdminUpdateUserRequest) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.emailTaken(ctx, *req.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: email already exists", shared.ErrConflict)
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}
	if err := s.repo.Update(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminDelete removes any account and cascades its owned resources.
// The acting superuser cannot delete their own account this way.
func (s *Service) AdminDelete(ctx context.Context, actor *auth.User, id uuid.UUID) error {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanDeleteUser(actor, target.ID) {
		return fmt.Errorf("%w: superusers are not allowed to delete themselves", shared.ErrForbidden)
	}
	if err := s.items.DeleteByOwner(ctx, target.ID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, target.ID)
}

package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/atelier-hq/atelier/internal/shared"
)

// Resolver turns a raw bearer token into an authenticated user.
//
// Strict resolution fails loudly; optional resolution swallows every
// failure and yields anonymous instead, so probing clients learn nothing
// from invalid tokens.
type Resolver struct {
	codec *Codec
	repo  Repository
}

// NewResolver constructs a Resolver.
func NewResolver(codec *Codec, repo Repository) *Resolver {
	return &Resolver{codec: codec, repo: repo}
}

// ResolveStrict validates the token and loads its subject. The returned
// user is always active; handlers behind strict resolution never re-check
// the active flag.
func (r *Resolver) ResolveStrict(ctx context.Context, raw string) (*User, error) {
	if raw == "" {
		return nil, shared.ErrUnauthenticated
	}
	claims, err := r.codec.DecodeAccess(raw)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	user, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, shared.ErrInactiveUser
	}
	return user, nil
}

// ResolveOptional validates the token and loads its subject, returning nil
// for an absent, invalid or expired token, an unknown subject, or an
// inactive account. A non-nil result is always an active user. No token
// means no store lookup.
func (r *Resolver) ResolveOptional(ctx context.Context, raw string) *User {
	if raw == "" {
		return nil
	}
	user, err := r.ResolveStrict(ctx, raw)
	if err != nil {
		return nil
	}
	return user
}

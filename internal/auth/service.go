package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atelier-hq/atelier/internal/shared"
)

// Service wraps authentication business rules: credential checks, token
// issuance and the password recovery flow.
type Service struct {
	repo      Repository
	hasher    *Hasher
	codec     *Codec
	accessTTL time.Duration
	resetTTL  time.Duration
}

// NewService constructs a Service.
func NewService(repo Repository, hasher *Hasher, codec *Codec, accessTTL, resetTTL time.Duration) *Service {
	return &Service{repo: repo, hasher: hasher, codec: codec, accessTTL: accessTTL, resetTTL: resetTTL}
}

// Authenticate validates email/password credentials. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: credential lookup: %w", err)
	}
	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByEmail loads an account by exact email match.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// IssueAccessToken signs a bearer token for the user with the configured TTL.
func (s *Service) IssueAccessToken(user *User) (string, error) {
	return s.codec.IssueAccess(user.ID.String(), s.accessTTL)
}

// GenerateResetToken signs a password-recovery token for the email.
func (s *Service) GenerateResetToken(email string) (string, error) {
	return s.codec.IssueReset(email, s.resetTTL)
}

// ResetTokenTTL reports the configured recovery-token lifetime.
func (s *Service) ResetTokenTTL() time.Duration {
	return s.resetTTL
}

// VerifyResetToken returns the email embedded in a recovery token, or
// false for any invalid, expired or tampered token. All failure kinds
// collapse into one outcome.
func (s *Service) VerifyResetToken(token string) (string, bool) {
	claims, err := s.codec.DecodeReset(token)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

// ResetPassword completes the recovery flow: validate the token, locate
// the account by the embedded email, re-hash and persist the credential.
// Previously issued access tokens stay valid; the design trades
// revocability for statelessness.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, ok := s.VerifyResetToken(token)
	if !ok {
		return shared.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return fmt.Errorf("auth: reset password lookup: %w", err)
	}
	if !user.IsActive {
		return shared.ErrInactiveUser
	}
	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, user.ID, hashed)
}

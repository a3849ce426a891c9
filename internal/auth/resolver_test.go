package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-hq/atelier/internal/shared"
)

type mockRepo struct {
	byID    map[uuid.UUID]*User
	byEmail map[string]*User

	lookups     int
	updatedID   uuid.UUID
	updatedHash string

	// Injected failures, returned ahead of any map lookup.
	byIDErr    error
	byEmailErr error
}

func newMockRepo(users ...*User) *mockRepo {
	m := &mockRepo{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]*User),
	}
	for _, u := range users {
		m.byID[u.ID] = u
		m.byEmail[u.Email] = u
	}
	return m
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	m.lookups++
	if m.byIDErr != nil {
		return nil, m.byIDErr
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	m.lookups++
	if m.byEmailErr != nil {
		return nil, m.byEmailErr
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	if _, ok := m.byID[id]; !ok {
		return shared.ErrNotFound
	}
	m.updatedID = id
	m.updatedHash = hashed
	m.byID[id].HashedPassword = hashed
	return nil
}

func issueFor(t *testing.T, codec *Codec, id uuid.UUID) string {
	t.Helper()
	raw, err := codec.IssueAccess(id.String(), time.Hour)
	require.NoError(t, err)
	return raw
}

func TestResolveStrict(t *testing.T) {
	codec := NewCodec("resolver-secret")
	active := &User{ID: uuid.New(), Email: "active@example.com", IsActive: true}
	inactive := &User{ID: uuid.New(), Email: "inactive@example.com"}
	repo := newMockRepo(active, inactive)
	resolver := NewResolver(codec, repo)

	ctx := context.Background()

	_, err := resolver.ResolveStrict(ctx, "")
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)

	_, err = resolver.ResolveStrict(ctx, "garbage")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	notUUID, err := codec.IssueAccess("not-a-uuid", time.Hour)
	require.NoError(t, err)
	_, err = resolver.ResolveStrict(ctx, notUUID)
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = resolver.ResolveStrict(ctx, issueFor(t, codec, uuid.New()))
	assert.ErrorIs(t, err, shared.ErrUserNotFound)

	_, err = resolver.ResolveStrict(ctx, issueFor(t, codec, inactive.ID))
	assert.ErrorIs(t, err, shared.ErrInactiveUser)

	user, err := resolver.ResolveStrict(ctx, issueFor(t, codec, active.ID))
	require.NoError(t, err)
	assert.Equal(t, active.ID, user.ID)
	assert.True(t, user.IsActive)
}

func TestResolveStrictWrappedNotFound(t *testing.T) {
	codec := NewCodec("resolver-secret")
	repo := newMockRepo()
	repo.byIDErr = fmt.Errorf("scan user row: %w", shared.ErrNotFound)
	resolver := NewResolver(codec, repo)

	_, err := resolver.ResolveStrict(context.Background(), issueFor(t, codec, uuid.New()))
	assert.ErrorIs(t, err, shared.ErrUserNotFound)
}

func TestResolveStrictStoreFailure(t *testing.T) {
	codec := NewCodec("resolver-secret")
	repo := newMockRepo()
	storeErr := errors.New("connection refused")
	repo.byIDErr = storeErr
	resolver := NewResolver(codec, repo)

	_, err := resolver.ResolveStrict(context.Background(), issueFor(t, codec, uuid.New()))
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, shared.ErrUserNotFound)
}

func TestResolveOptional(t *testing.T) {
	codec := NewCodec("resolver-secret")
	active := &User{ID: uuid.New(), Email: "active@example.com", IsActive: true}
	inactive := &User{ID: uuid.New(), Email: "inactive@example.com"}
	repo := newMockRepo(active, inactive)
	resolver := NewResolver(codec, repo)

	ctx := context.Background()

	assert.Nil(t, resolver.ResolveOptional(ctx, ""))
	assert.Zero(t, repo.lookups, "empty token must not touch the store")

	assert.Nil(t, resolver.ResolveOptional(ctx, "garbage"))
	assert.Nil(t, resolver.ResolveOptional(ctx, issueFor(t, codec, uuid.New())))
	assert.Nil(t, resolver.ResolveOptional(ctx, issueFor(t, codec, inactive.ID)))

	expired, err := codec.IssueAccess(active.ID.String(), -time.Minute)
	require.NoError(t, err)
	assert.Nil(t, resolver.ResolveOptional(ctx, expired))

	user := resolver.ResolveOptional(ctx, issueFor(t, codec, active.ID))
	require.NotNil(t, user)
	assert.Equal(t, active.ID, user.ID)
}

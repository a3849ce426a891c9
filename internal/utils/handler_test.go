package utils

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-hq/atelier/internal/auth"
	"github.com/atelier-hq/atelier/internal/shared"
	"github.com/atelier-hq/atelier/jobs"
	_ "github.com/atelier-hq/atelier/testing"
)

type authUserStore struct {
	users map[uuid.UUID]*auth.User
}

func (s authUserStore) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (s authUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s authUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	return nil
}

type mockQueue struct {
	sent []jobs.SendEmailPayload
}

func (m *mockQueue) EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) error {
	m.sent = append(m.sent, payload)
	return nil
}

type utilsFixture struct {
	router chi.Router
	queue  *mockQueue
	codec  *auth.Codec
}

func newUtilsRouter(t *testing.T, principals ...*auth.User) *utilsFixture {
	t.Helper()
	store := authUserStore{users: make(map[uuid.UUID]*auth.User)}
	for _, p := range principals {
		store.users[p.ID] = p
	}
	queue := &mockQueue{}
	codec := auth.NewCodec("utils-handler-secret")
	mw := auth.Middleware{Resolver: auth.NewResolver(codec, store)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, queue, mw, "Atelier")
	r := chi.NewRouter()
	r.Route("/utils", handler.MountRoutes)
	return &utilsFixture{router: r, queue: queue, codec: codec}
}

func (f *utilsFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	f.router.ServeHTTP(res, req)
	return res
}

func (f *utilsFixture) tokenFor(t *testing.T, u *auth.User) string {
	t.Helper()
	raw, err := f.codec.IssueAccess(u.ID.String(), time.Hour)
	require.NoError(t, err)
	return raw
}

func principal(superuser bool) *auth.User {
	return &auth.User{
		ID:          uuid.New(),
		Email:       uuid.NewString() + "@example.com",
		IsActive:    true,
		IsSuperuser: superuser,
	}
}

func TestHealthCheck(t *testing.T) {
	f := newUtilsRouter(t)

	res := f.do(http.MethodGet, "/utils/health-check", "", "")
	require.Equal(t, http.StatusOK, res.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "Ok", body["message"])
}

func TestTestEmailRequiresSuperuser(t *testing.T) {
	admin := principal(true)
	regular := principal(false)
	f := newUtilsRouter(t, admin, regular)

	res := f.do(http.MethodPost, "/utils/test-email", "", `{"email_to":"dst@example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = f.do(http.MethodPost, "/utils/test-email", f.tokenFor(t, regular), `{"email_to":"dst@example.com"}`)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Empty(t, f.queue.sent)

	res = f.do(http.MethodPost, "/utils/test-email", f.tokenFor(t, admin), `{"email_to":"dst@example.com"}`)
	require.Equal(t, http.StatusAccepted, res.Code)
	require.Len(t, f.queue.sent, 1)
	assert.Equal(t, "dst@example.com", f.queue.sent[0].To)
	assert.Contains(t, f.queue.sent[0].Subject, "Test email")
}

func TestTestEmailValidation(t *testing.T) {
	admin := principal(true)
	f := newUtilsRouter(t, admin)

	res := f.do(http.MethodPost, "/utils/test-email", f.tokenFor(t, admin), `{"email_to":"not-an-email"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.Empty(t, f.queue.sent)
}

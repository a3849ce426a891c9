package items

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

type itemFixture struct {
	router chi.Router
	repo   *mockRepo
	codec  *auth.Codec
}

func newItemRouter(t *testing.T, principals []*auth.User, seed ...*Item) *itemFixture {
	t.Helper()
	store := authUserStore{users: make(map[uuid.UUID]*auth.User)}
	for _, p := range principals {
		store.users[p.ID] = p
	}
	repo := newMockRepo(seed...)
	codec := auth.NewCodec("items-handler-secret")
	mw := auth.Middleware{Resolver: auth.NewResolver(codec, store)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo), mw)
	r := chi.NewRouter()
	r.Route("/items", handler.MountRoutes)
	return &itemFixture{router: r, repo: repo, codec: codec}
}

func (f *itemFixture) tokenFor(t *testing.T, p *auth.User) string {
	t.Helper()
	raw, err := f.codec.IssueAccess(p.ID.String(), time.Hour)
	require.NoError(t, err)
	return raw
}

func (f *itemFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
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

func TestListEndpointScoping(t *testing.T) {
	alice := principal(false)
	bob := principal(false)
	f := newItemRouter(t, []*auth.User{alice, bob},
		ownedItem(alice, "alice one"),
		ownedItem(bob, "bob one"),
	)

	// Anonymous callers get an empty listing, not an error.
	res := f.do(http.MethodGet, "/items/", "", "")
	require.Equal(t, http.StatusOK, res.Code)
	var body ItemsResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Zero(t, body.Count)
	assert.Empty(t, body.Data)

	// A garbage token behaves exactly like no token.
	res = f.do(http.MethodGet, "/items/", "garbage", "")
	require.Equal(t, http.StatusOK, res.Code)

	res = f.do(http.MethodGet, "/items/", f.tokenFor(t, alice), "")
	require.Equal(t, http.StatusOK, res.Code)
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "alice one", body.Data[0].Title)
}

func TestCreateEndpoint(t *testing.T) {
	alice := principal(false)
	f := newItemRouter(t, []*auth.User{alice})

	res := f.do(http.MethodPost, "/items/", "", `{"title":"notebook"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = f.do(http.MethodPost, "/items/", f.tokenFor(t, alice), `{"title":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)

	res = f.do(http.MethodPost, "/items/", f.tokenFor(t, alice), `{"title":"notebook","description":"dotted"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var body ItemResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, alice.ID.String(), body.OwnerID)
}

func TestItemEndpointsOwnership(t *testing.T) {
	alice := principal(false)
	bob := principal(false)
	admin := principal(true)
	item := ownedItem(alice, "alice's item")
	f := newItemRouter(t, []*auth.User{alice, bob, admin}, item)
	path := "/items/" + item.ID.String()

	res := f.do(http.MethodGet, path, f.tokenFor(t, bob), "")
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = f.do(http.MethodGet, path, f.tokenFor(t, admin), "")
	assert.Equal(t, http.StatusOK, res.Code)

	res = f.do(http.MethodPut, path, f.tokenFor(t, bob), `{"title":"stolen"}`)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = f.do(http.MethodPut, path, f.tokenFor(t, alice), `{"title":"renamed"}`)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "renamed")

	res = f.do(http.MethodDelete, path, f.tokenFor(t, bob), "")
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = f.do(http.MethodDelete, path, f.tokenFor(t, alice), "")
	require.Equal(t, http.StatusOK, res.Code)

	res = f.do(http.MethodGet, path, f.tokenFor(t, alice), "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

// AngelaMos | 2026
// handler_test.go

package upgrade

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/ittools/internal/access"
	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/middleware"
	"github.com/carterperez-dev/ittools/internal/routes"
	"github.com/carterperez-dev/ittools/internal/toolkit"
)

// store plays both the upgrade repository and the user table.
type store struct {
	mu      sync.Mutex
	premium map[int64]bool
	admins  map[int64]bool
	pending map[int64]Request
	nextID  int64
}

func newStore() *store {
	return &store{
		premium: map[int64]bool{1: false, 2: false},
		admins:  map[int64]bool{1: true},
		pending: map[int64]Request{},
		nextID:  1,
	}
}

func (s *store) ResolveViewer(_ context.Context, id int64) (*access.Viewer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	premium, ok := s.premium[id]
	if !ok {
		return nil, fmt.Errorf("viewer: %w", core.ErrNotFound)
	}
	return &access.Viewer{ID: id, IsPremium: premium, IsAdmin: s.admins[id]}, nil
}

func (s *store) Create(_ context.Context, userID int64) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[userID]; ok {
		return nil, fmt.Errorf("create: %w", core.ErrDuplicateKey)
	}
	req := Request{ID: s.nextID, UserID: userID, Status: StatusPending, CreatedAt: time.Now()}
	s.nextID++
	s.pending[userID] = req
	return &req, nil
}

func (s *store) ListPending(context.Context) ([]PendingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []PendingRequest{}
	for _, r := range s.pending {
		out = append(out, PendingRequest{ID: r.ID, UserID: r.UserID, Username: fmt.Sprint("user", r.UserID)})
	}
	return out, nil
}

func (s *store) Approve(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[userID]; !ok {
		return fmt.Errorf("approve: %w", core.ErrNotFound)
	}
	delete(s.pending, userID)
	s.premium[userID] = true
	return nil
}

func (s *store) Reject(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[userID]; !ok {
		return fmt.Errorf("reject: %w", core.ErrNotFound)
	}
	delete(s.pending, userID)
	return nil
}

// tokenVerifier treats the bearer token as the user id.
type tokenVerifier struct{}

func (tokenVerifier) VerifyToken(_ context.Context, token string) (*middleware.Identity, error) {
	var id int64
	if _, err := fmt.Sscan(token, &id); err != nil {
		return nil, core.ErrTokenInvalid
	}
	return &middleware.Identity{UserID: id}, nil
}

func newRouter(s *store) http.Handler {
	h := NewHandler(NewService(s, s))
	authenticated := middleware.Chain(
		middleware.Authenticator(tokenVerifier{}),
		middleware.ResolveViewer(s),
	)

	r := chi.NewRouter()
	h.RegisterRoutes(r, authenticated)
	h.RegisterAdminRoutes(r, authenticated, middleware.RequireAdmin)
	return r
}

func call(h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestUpgradeScenario(t *testing.T) {
	s := newStore()
	h := newRouter(s)

	assert.Equal(t, http.StatusUnauthorized, call(h, http.MethodPost, "/upgrade-request", "").Code)

	require.Equal(t, http.StatusCreated, call(h, http.MethodPost, "/upgrade-request", "2").Code)

	again := call(h, http.MethodPost, "/upgrade-request", "2")
	require.Equal(t, http.StatusConflict, again.Code)
	assert.Equal(t, "REQUEST_PENDING", errorCode(t, again))
	assert.Len(t, s.pending, 1)

	assert.Equal(t, http.StatusForbidden, call(h, http.MethodPost, "/approve-request/2", "2").Code)

	list := call(h, http.MethodGet, "/upgrade-requests", "1")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"user_id":2`)

	require.Equal(t, http.StatusOK, call(h, http.MethodPost, "/approve-request/2", "1").Code)
	assert.True(t, s.premium[2])
	assert.Empty(t, s.pending)

	premium := call(h, http.MethodPost, "/upgrade-request", "2")
	require.Equal(t, http.StatusConflict, premium.Code)
	assert.Equal(t, "ALREADY_PREMIUM", errorCode(t, premium))

	assert.Equal(t, http.StatusNotFound, call(h, http.MethodPost, "/approve-request/2", "1").Code)
}

type fixedCatalog []catalog.Tool

func (c fixedCatalog) ActiveTools(context.Context) ([]catalog.Tool, error) {
	return c, nil
}

func TestApprovalUnlocksPremiumTool(t *testing.T) {
	s := newStore()
	h := newRouter(s)
	ctx := context.Background()

	composer := routes.NewComposer(fixedCatalog{
		{ID: 1, Name: "Hash Text", RoutePath: "/hash-text", IsActive: true},
		{ID: 2, Name: "Bcrypt", RoutePath: "/bcrypt", IsActive: true, IsPremium: true},
	}, toolkit.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, composer.Refresh(ctx))

	viewer, err := s.ResolveViewer(ctx, 2)
	require.NoError(t, err)
	_, _, err = composer.Resolve("/bcrypt", viewer)
	require.ErrorIs(t, err, core.ErrPremiumRequired)
	_, widget, err := composer.Resolve("/hash-text", viewer)
	require.NoError(t, err)
	require.NotNil(t, widget)

	require.Equal(t, http.StatusCreated, call(h, http.MethodPost, "/upgrade-request", "2").Code)

	viewer, err = s.ResolveViewer(ctx, 2)
	require.NoError(t, err)
	_, _, err = composer.Resolve("/bcrypt", viewer)
	require.ErrorIs(t, err, core.ErrPremiumRequired, "a pending request grants nothing")

	require.Equal(t, http.StatusOK, call(h, http.MethodPost, "/approve-request/2", "1").Code)

	viewer, err = s.ResolveViewer(ctx, 2)
	require.NoError(t, err)
	route, widget, err := composer.Resolve("/bcrypt", viewer)
	require.NoError(t, err)
	assert.NotNil(t, widget)
	assert.Equal(t, "Bcrypt", route.Name)
}

func TestRejectRequest(t *testing.T) {
	s := newStore()
	h := newRouter(s)

	assert.Equal(t, http.StatusNotFound, call(h, http.MethodPost, "/reject-request/2", "1").Code)

	require.Equal(t, http.StatusCreated, call(h, http.MethodPost, "/upgrade-request", "2").Code)
	require.Equal(t, http.StatusOK, call(h, http.MethodPost, "/reject-request/2", "1").Code)
	assert.False(t, s.premium[2])

	assert.Equal(t, http.StatusCreated, call(h, http.MethodPost, "/upgrade-request", "2").Code)
	assert.Equal(t, http.StatusBadRequest, call(h, http.MethodPost, "/reject-request/abc", "1").Code)
}

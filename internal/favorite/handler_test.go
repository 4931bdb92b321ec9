// AngelaMos | 2026
// handler_test.go

package favorite

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/middleware"
)

type key struct{ user, tool int64 }

type memoryRepo struct {
	mu      sync.Mutex
	tools   map[int64]catalog.Tool
	rows    map[key]struct{}
	deleted map[int64]bool
}

func newMemoryRepo(tools ...catalog.Tool) *memoryRepo {
	m := &memoryRepo{
		tools:   map[int64]catalog.Tool{},
		rows:    map[key]struct{}{},
		deleted: map[int64]bool{},
	}
	for _, t := range tools {
		m.tools[t.ID] = t
	}
	return m
}

func (m *memoryRepo) List(_ context.Context, userID int64) ([]catalog.Tool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []catalog.Tool
	for k := range m.rows {
		if k.user == userID {
			out = append(out, m.tools[k.tool])
		}
	}
	return out, nil
}

func (m *memoryRepo) Add(_ context.Context, userID, toolID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleted[userID] {
		return false, fmt.Errorf("add favorite: %w", core.UnauthorizedError("account no longer exists"))
	}
	if _, ok := m.tools[toolID]; !ok {
		return false, fmt.Errorf("add favorite: %w", core.ErrNotFound)
	}
	k := key{userID, toolID}
	if _, ok := m.rows[k]; ok {
		return false, nil
	}
	m.rows[k] = struct{}{}
	return true, nil
}

func (m *memoryRepo) Remove(_ context.Context, userID, toolID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{userID, toolID}
	_, ok := m.rows[k]
	delete(m.rows, k)
	return ok, nil
}

type userVerifier struct{}

func (userVerifier) VerifyToken(context.Context, string) (*middleware.Identity, error) {
	return &middleware.Identity{UserID: 5, Username: "alice"}, nil
}

func TestFavoriteLifecycle(t *testing.T) {
	repo := newMemoryRepo(catalog.Tool{ID: 1, Name: "Hash Text", IsActive: true})
	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(r, middleware.Authenticator(userVerifier{}))

	send := func(method, target string, authed bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		if authed {
			req.Header.Set("Authorization", "Bearer t")
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, send(http.MethodGet, "/favorites", false).Code)

	first := send(http.MethodPost, "/favorites/1", true)
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Contains(t, first.Body.String(), `"changed":true`)

	again := send(http.MethodPost, "/favorites/1", true)
	require.Equal(t, http.StatusCreated, again.Code)
	assert.Contains(t, again.Body.String(), `"changed":false`)
	assert.Len(t, repo.rows, 1)

	assert.Equal(t, http.StatusNotFound, send(http.MethodPost, "/favorites/42", true).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/favorites/x", true).Code)

	list := send(http.MethodGet, "/favorites", true)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"name":"Hash Text"`)

	assert.Equal(t, http.StatusOK, send(http.MethodDelete, "/favorites/1", true).Code)
	assert.Equal(t, http.StatusOK, send(http.MethodDelete, "/favorites/1", true).Code)
	assert.Empty(t, repo.rows)
}

func TestAddForDeletedAccount(t *testing.T) {
	repo := newMemoryRepo(catalog.Tool{ID: 1, Name: "Hash Text", IsActive: true})
	repo.deleted[5] = true
	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(r, middleware.Authenticator(userVerifier{}))

	req := httptest.NewRequest(http.MethodPost, "/favorites/1", nil)
	req.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "account no longer exists")
	assert.NotContains(t, rec.Body.String(), "tool not found")
	assert.Empty(t, repo.rows)
}

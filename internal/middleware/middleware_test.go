// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/ittools/internal/access"
	"github.com/carterperez-dev/ittools/internal/config"
	"github.com/carterperez-dev/ittools/internal/core"
)

type stubVerifier struct {
	identity *Identity
	err      error
}

func (s stubVerifier) VerifyToken(_ context.Context, _ string) (*Identity, error) {
	return s.identity, s.err
}

type stubViewers struct {
	viewer *access.Viewer
	err    error
}

func (s stubViewers) ResolveViewer(_ context.Context, _ int64) (*access.Viewer, error) {
	return s.viewer, s.err
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body core.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthenticator(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		verifier stubVerifier
		status   int
		code     string
	}{
		{"missing header", "", stubVerifier{}, http.StatusUnauthorized, "TOKEN_MISSING"},
		{"wrong scheme", "Basic abc", stubVerifier{}, http.StatusUnauthorized, "TOKEN_MISSING"},
		{
			"expired",
			"Bearer tok",
			stubVerifier{err: core.ErrTokenExpired},
			http.StatusUnauthorized,
			"TOKEN_EXPIRED",
		},
		{
			"invalid",
			"Bearer tok",
			stubVerifier{err: core.ErrTokenInvalid},
			http.StatusUnauthorized,
			"TOKEN_INVALID",
		},
		{
			"unknown error",
			"Bearer tok",
			stubVerifier{err: errors.New("boom")},
			http.StatusUnauthorized,
			"TOKEN_INVALID",
		},
		{
			"valid",
			"Bearer tok",
			stubVerifier{identity: &Identity{UserID: 7, Username: "alice"}},
			http.StatusOK,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *Identity
			h := Authenticator(tt.verifier)(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					seen = GetIdentity(r.Context())
					w.WriteHeader(http.StatusOK)
				},
			))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, rec))
				return
			}
			require.NotNil(t, seen)
			assert.Equal(t, int64(7), seen.UserID)
		})
	}
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	var authed bool
	h := OptionalAuth(stubVerifier{err: core.ErrTokenInvalid})(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			authed = IsAuthenticated(r.Context())
			w.WriteHeader(http.StatusOK)
		},
	))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, authed)
}

func TestResolveViewer(t *testing.T) {
	identity := &Identity{UserID: 3, Username: "carol"}

	t.Run("loads viewer", func(t *testing.T) {
		var got *access.Viewer
		chain := OptionalAuth(stubVerifier{identity: identity})(
			ResolveViewer(stubViewers{viewer: &access.Viewer{ID: 3, IsPremium: true}})(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					got = GetViewer(r.Context())
				}),
			),
		)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		chain.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, got)
		assert.True(t, got.Premium())
	})

	t.Run("store failure degrades to anonymous", func(t *testing.T) {
		called := false
		var got *access.Viewer
		chain := OptionalAuth(stubVerifier{identity: identity})(
			ResolveViewer(stubViewers{err: errors.New("db down")})(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					called = true
					got = GetViewer(r.Context())
				}),
			),
		)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		chain.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
		assert.Nil(t, got)
	})
}

func TestRequireAdmin(t *testing.T) {
	run := func(identity *Identity, viewer *access.Viewer) *httptest.ResponseRecorder {
		ctx := context.Background()
		if identity != nil {
			ctx = context.WithValue(ctx, IdentityKey, identity)
		}
		if viewer != nil {
			ctx = context.WithValue(ctx, ViewerKey, viewer)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		RequireAdmin(okHandler).ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, run(nil, nil).Code)

	id := &Identity{UserID: 1}
	assert.Equal(t, http.StatusForbidden, run(id, &access.Viewer{ID: 1}).Code)
	assert.Equal(t, http.StatusForbidden, run(id, nil).Code)
	assert.Equal(t, http.StatusOK, run(id, &access.Viewer{ID: 1, IsAdmin: true}).Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestCORS(t *testing.T) {
	h := CORS(config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/routes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodGet, "/api/routes", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRateLimiterFallsBackToLocal(t *testing.T) {
	rl := NewRateLimiter(unreachableRedis(t), RateLimitConfig{
		Limit:    PerMinute(2, 2),
		FailOpen: true,
	})
	h := rl.Handler(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestTieredRateLimiterUsesViewerTier(t *testing.T) {
	tiers := map[string]TierConfig{
		"free":    {RequestsPerMinute: 1, BurstSize: 1},
		"premium": {RequestsPerMinute: 100, BurstSize: 10},
	}
	h := TieredRateLimiter(unreachableRedis(t), tiers)(okHandler)

	send := func(viewer *access.Viewer) *httptest.ResponseRecorder {
		ctx := context.Background()
		if viewer != nil {
			ctx = context.WithValue(ctx, IdentityKey, &Identity{UserID: viewer.ID})
			ctx = context.WithValue(ctx, ViewerKey, viewer)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/run/hash-text", nil).WithContext(ctx)
		req.RemoteAddr = "10.0.0.2:4444"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send(nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, send(nil).Code)

	premium := &access.Viewer{ID: 9, IsPremium: true}
	for range 3 {
		rec := send(premium)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "premium", rec.Header().Get("X-RateLimit-Tier"))
	}
}

func TestLocalLimiterConcurrentAccess(t *testing.T) {
	l := &localLimiter{}
	limit := redis_rate.Limit{Rate: 1, Period: time.Hour, Burst: 10}

	var (
		wg      sync.WaitGroup
		allowed atomic.Int64
	)
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			res, err := l.allow("10.0.0.1", limit)
			if err == nil && res.Allowed > 0 {
				allowed.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			l.sweep(0)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), allowed.Load())

	_, kept := l.limiters.Load("10.0.0.1")
	require.True(t, kept, "recently used limiters survive a sweep")

	l.sweep(time.Now().Add(time.Minute).Unix())
	_, kept = l.limiters.Load("10.0.0.1")
	assert.False(t, kept)
}

// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/ittools/internal/config"
	"github.com/carterperez-dev/ittools/internal/core"
)

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	priv := filepath.Join(dir, "private.pem")
	pub := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(priv, pub))

	m, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    priv,
		AccessTokenExpire: time.Hour,
		Issuer:            "ittools",
		Audience:          "ittools-api",
	})
	require.NoError(t, err)
	return m
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestJWTManager(t)

	token, expiresAt, err := m.IssueToken(42, "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	identity, err := m.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}

func TestVerifyExpired(t *testing.T) {
	m := newTestJWTManager(t)

	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }
	token, _, err := m.IssueToken(1, "bob")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyRejects(t *testing.T) {
	m := newTestJWTManager(t)
	other := newTestJWTManager(t)

	foreign, _, err := other.IssueToken(1, "mallory")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", core.ErrTokenMissing},
		{"garbage", "not.a.jwt", core.ErrTokenInvalid},
		{"other key", foreign, core.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.VerifyToken(context.Background(), tt.token)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	m := newTestJWTManager(t)
	token, _, err := m.IssueToken(5, "dave")
	require.NoError(t, err)

	m.config.Audience = "someone-else"
	_, err = m.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWKSHandler(t *testing.T) {
	m := newTestJWTManager(t)

	rec := httptest.NewRecorder()
	m.JWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Keys, 1)
	assert.Equal(t, "EC", body.Keys[0]["kty"])
	assert.Equal(t, m.KeyID(), body.Keys[0]["kid"])
	assert.NotContains(t, body.Keys[0], "d")
}

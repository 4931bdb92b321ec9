// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carterperez-dev/ittools/internal/access"
	"github.com/carterperez-dev/ittools/internal/core"
)

const (
	IdentityKey contextKey = "identity"
	ViewerKey   contextKey = "viewer"
)

// Identity is what a verified bearer token says about its holder.
type Identity struct {
	UserID   int64
	Username string
}

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.JSONError(w, core.TokenMissingError())
				return
			}

			identity, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise lets the request through as anonymous.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				identity, err := verifier.VerifyToken(r.Context(), token)
				if err == nil {
					ctx := context.WithValue(r.Context(), IdentityKey, identity)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ResolveViewer loads the current role flags for the authenticated user.
// A store failure leaves the request anonymous rather than failing it.
func ResolveViewer(source access.ViewerSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				next.ServeHTTP(w, r)
				return
			}

			viewer, err := source.ResolveViewer(r.Context(), identity.UserID)
			if err != nil {
				if !errors.Is(err, core.ErrNotFound) {
					slog.Warn("viewer resolution failed, continuing anonymous",
						"user_id", identity.UserID,
						"error", err,
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ViewerKey, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetIdentity(r.Context()) == nil {
			core.JSONError(w, core.UnauthorizedError("authentication required"))
			return
		}

		if !GetViewer(r.Context()).Admin() {
			core.JSONError(w, core.ForbiddenError("insufficient permissions"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenMissing):
		core.JSONError(w, core.TokenMissingError())
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) int64 {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.UserID
	}
	return 0
}

// GetViewer returns nil for anonymous requests, which access.Decide treats
// as a non-premium visitor.
func GetViewer(ctx context.Context) *access.Viewer {
	if viewer, ok := ctx.Value(ViewerKey).(*access.Viewer); ok {
		return viewer
	}
	return nil
}

func IsAuthenticated(ctx context.Context) bool {
	return GetIdentity(ctx) != nil
}

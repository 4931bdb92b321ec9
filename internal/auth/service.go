// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/ittools/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
)

type UserInfo struct {
	ID           int64
	Username     string
	PasswordHash string
	IsPremium    bool
	IsAdmin      bool
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByUsername(ctx context.Context, username string) (*UserInfo, error)
	Create(ctx context.Context, username, passwordHash string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type Service struct {
	jwt          *JWTManager
	userProvider UserProvider
	hasher       *core.PasswordHasher
}

func NewService(
	jwt *JWTManager,
	userProvider UserProvider,
	hasher *core.PasswordHasher,
) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		hasher:       hasher,
	}
}

func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*UserResponse, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Username, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	user, err := s.userProvider.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // spend the same work as a real verification
			_, _, _ = s.hasher.VerifyTimingSafe(req.Password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := s.hasher.VerifyTimingSafe(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.Warn("password rehash not stored", "user_id", user.ID, "error", err)
		}
	}

	token, expiresAt, err := s.jwt.IssueToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResponse{
		User:      toUserResponse(user),
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}

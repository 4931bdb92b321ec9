// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/ittools/internal/access"
	"github.com/carterperez-dev/ittools/internal/auth"
	"github.com/carterperez-dev/ittools/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByUsername(
	ctx context.Context,
	username string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	username, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// ResolveViewer reads the role flags as they are now, so an approved
// upgrade applies to tokens issued before the approval.
func (s *Service) ResolveViewer(
	ctx context.Context,
	userID int64,
) (*access.Viewer, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &access.Viewer{
		ID:        user.ID,
		Username:  user.Username,
		IsPremium: user.IsPremium,
		IsAdmin:   user.IsAdmin,
	}, nil
}

func (s *Service) GetMe(ctx context.Context, userID int64) (*User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Counts(ctx context.Context) (*Counts, error) {
	return s.repo.Counts(ctx)
}

// EnsureAdmin creates the account with the admin flag, or promotes it when
// the username is already taken. The password of an existing account is
// left alone.
func (s *Service) EnsureAdmin(
	ctx context.Context,
	username, passwordHash string,
) (*User, bool, error) {
	existing, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if !existing.IsAdmin {
			if err := s.repo.SetAdmin(ctx, existing.ID, true); err != nil {
				return nil, false, err
			}
			existing.IsAdmin = true
		}
		return existing, false, nil
	case !errors.Is(err, core.ErrNotFound):
		return nil, false, err
	}

	user := &User{
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, err
	}

	return user, true, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsPremium:    u.IsPremium,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

var (
	_ auth.UserProvider   = (*Service)(nil)
	_ access.ViewerSource = (*Service)(nil)
)

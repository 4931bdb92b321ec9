// AngelaMos | 2026
// service.go

package upgrade

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/ittools/internal/access"
	"github.com/carterperez-dev/ittools/internal/core"
)

type Service struct {
	repo    Repository
	viewers access.ViewerSource
}

func NewService(repo Repository, viewers access.ViewerSource) *Service {
	return &Service{repo: repo, viewers: viewers}
}

// Create files a pending request for userID. A second request while one is
// pending, or any request from a premium account, is a conflict.
func (s *Service) Create(ctx context.Context, userID int64) (*Request, error) {
	if userID == 0 {
		return nil, fmt.Errorf("create upgrade request: %w", core.ErrUnauthorized)
	}

	viewer, err := s.viewers.ResolveViewer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if viewer.Premium() {
		return nil, core.ConflictError("account is already premium", "ALREADY_PREMIUM")
	}

	req, err := s.repo.Create(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError(
				"an upgrade request is already pending",
				"REQUEST_PENDING",
			)
		}
		return nil, err
	}

	return req, nil
}

func (s *Service) ListPending(ctx context.Context) ([]PendingRequest, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) Approve(ctx context.Context, userID int64) error {
	return s.repo.Approve(ctx, userID)
}

func (s *Service) Reject(ctx context.Context, userID int64) error {
	return s.repo.Reject(ctx, userID)
}

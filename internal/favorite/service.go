// AngelaMos | 2026
// service.go

package favorite

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID int64) ([]catalog.Tool, error) {
	if userID == 0 {
		return nil, fmt.Errorf("list favorites: %w", core.ErrUnauthorized)
	}
	return s.repo.List(ctx, userID)
}

// Add is idempotent: favoriting twice leaves one row and succeeds both
// times.
func (s *Service) Add(ctx context.Context, userID, toolID int64) (bool, error) {
	if userID == 0 {
		return false, fmt.Errorf("add favorite: %w", core.ErrUnauthorized)
	}
	return s.repo.Add(ctx, userID, toolID)
}

// Remove succeeds whether or not the favorite existed.
func (s *Service) Remove(ctx context.Context, userID, toolID int64) (bool, error) {
	if userID == 0 {
		return false, fmt.Errorf("remove favorite: %w", core.ErrUnauthorized)
	}
	return s.repo.Remove(ctx, userID, toolID)
}

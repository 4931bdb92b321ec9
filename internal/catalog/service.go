// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/ittools/internal/core"
	"github.com/carterperez-dev/ittools/internal/toolkit"
)

// WidgetIndex reports whether a compiled widget exists for an identifier.
type WidgetIndex interface {
	Has(identifier string) bool
}

type Service struct {
	repo     Repository
	widgets  WidgetIndex
	onChange []func(ctx context.Context)
}

func NewService(repo Repository, widgets WidgetIndex) *Service {
	return &Service{repo: repo, widgets: widgets}
}

// OnChange registers fn to run after every successful catalog mutation.
func (s *Service) OnChange(fn func(ctx context.Context)) {
	s.onChange = append(s.onChange, fn)
}

func (s *Service) changed(ctx context.Context) {
	for _, fn := range s.onChange {
		fn(ctx)
	}
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) CategoriesWithTools(ctx context.Context) ([]CategoryWithTools, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	tools, err := s.repo.ListTools(ctx, true)
	if err != nil {
		return nil, err
	}

	return GroupByCategory(categories, tools), nil
}

// ActiveTools is the composer's view of the catalog.
func (s *Service) ActiveTools(ctx context.Context) ([]Tool, error) {
	return s.repo.ListTools(ctx, true)
}

func (s *Service) AllTools(ctx context.Context) ([]Tool, error) {
	return s.repo.ListTools(ctx, false)
}

// ToolDetails looks a tool up by display name, case-insensitively. Hidden
// tools are reported as missing.
func (s *Service) ToolDetails(ctx context.Context, name string) (*Tool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, core.ValidationError("name is required")
	}

	tool, err := s.repo.GetToolByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !tool.IsActive {
		return nil, fmt.Errorf("tool details: %w", core.ErrNotFound)
	}

	return tool, nil
}

func (s *Service) ToolStatus(ctx context.Context, id int64) (*Tool, error) {
	return s.repo.GetToolByID(ctx, id)
}

func (s *Service) AddTool(ctx context.Context, req AddToolRequest) (*Tool, error) {
	name := strings.TrimSpace(req.Name)
	if id := toolkit.Identifier(name); !s.widgets.Has(id) {
		return nil, core.ValidationError(
			fmt.Sprintf("no widget is registered for identifier %q", id),
		)
	}

	tool := &Tool{
		Name:        name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		RoutePath:   req.RoutePath,
		IsPremium:   req.IsPremium,
		IsActive:    req.IsActive == nil || *req.IsActive,
		Icon:        req.Icon,
	}

	if err := s.repo.CreateTool(ctx, tool); err != nil {
		if errors.Is(err, ErrUnknownCategory) {
			return nil, core.ValidationError("category does not exist")
		}
		return nil, err
	}

	s.changed(ctx)
	return tool, nil
}

func (s *Service) TogglePremium(ctx context.Context, id int64) (*Tool, error) {
	tool, err := s.repo.TogglePremium(ctx, id)
	if err != nil {
		return nil, err
	}

	s.changed(ctx)
	return tool, nil
}

func (s *Service) ToggleActive(ctx context.Context, id int64) (*Tool, error) {
	tool, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, err
	}

	s.changed(ctx)
	return tool, nil
}

func (s *Service) DeleteTool(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTool(ctx, id); err != nil {
		return err
	}

	s.changed(ctx)
	return nil
}

func (s *Service) Counts(ctx context.Context) (*Counts, error) {
	return s.repo.Counts(ctx)
}

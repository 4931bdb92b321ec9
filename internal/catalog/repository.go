// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/ittools/internal/core"
)

var ErrUnknownCategory = errors.New("unknown category")

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListTools(ctx context.Context, activeOnly bool) ([]Tool, error)
	GetToolByID(ctx context.Context, id int64) (*Tool, error)
	GetToolByName(ctx context.Context, name string) (*Tool, error)
	CreateTool(ctx context.Context, tool *Tool) error
	TogglePremium(ctx context.Context, id int64) (*Tool, error)
	ToggleActive(ctx context.Context, id int64) (*Tool, error)
	DeleteTool(ctx context.Context, id int64) error
	Counts(ctx context.Context) (*Counts, error)
}

type repository struct {
	db core.TxBeginner
}

func NewRepository(db core.TxBeginner) Repository {
	return &repository{db: db}
}

const toolColumns = `id, name, category_id, description, route_path, is_premium, is_active, icon, created_at`

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name FROM categories ORDER BY id ASC`

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) ListTools(ctx context.Context, activeOnly bool) ([]Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY category_id ASC, id ASC`

	var tools []Tool
	if err := r.db.SelectContext(ctx, &tools, query); err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	return tools, nil
}

func (r *repository) GetToolByID(ctx context.Context, id int64) (*Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`

	var tool Tool
	err := r.db.GetContext(ctx, &tool, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tool: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tool: %w", err)
	}

	return &tool, nil
}

func (r *repository) GetToolByName(ctx context.Context, name string) (*Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE LOWER(name) = LOWER($1)`

	var tool Tool
	err := r.db.GetContext(ctx, &tool, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tool by name: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tool by name: %w", err)
	}

	return &tool, nil
}

func (r *repository) CreateTool(ctx context.Context, tool *Tool) error {
	query := `
		INSERT INTO tools (name, category_id, description, route_path, is_premium, is_active, icon)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	row := r.db.QueryRowxContext(ctx, query,
		tool.Name,
		tool.CategoryID,
		tool.Description,
		tool.RoutePath,
		tool.IsPremium,
		tool.IsActive,
		tool.Icon,
	)
	err := row.Scan(&tool.ID, &tool.CreatedAt)
	switch {
	case err == nil:
		return nil
	case core.IsDuplicateKeyError(err):
		return fmt.Errorf("create tool: %w", core.ErrDuplicateKey)
	case core.IsForeignKeyError(err):
		return fmt.Errorf("create tool: %w", ErrUnknownCategory)
	default:
		return fmt.Errorf("create tool: %w", err)
	}
}

func (r *repository) TogglePremium(ctx context.Context, id int64) (*Tool, error) {
	return r.toggle(ctx, "toggle premium", "is_premium", id)
}

func (r *repository) ToggleActive(ctx context.Context, id int64) (*Tool, error) {
	return r.toggle(ctx, "toggle active", "is_active", id)
}

// toggle flips a boolean column in place; column is never user input.
func (r *repository) toggle(
	ctx context.Context,
	op, column string,
	id int64,
) (*Tool, error) {
	query := fmt.Sprintf(
		`UPDATE tools SET %[1]s = NOT %[1]s WHERE id = $1 RETURNING %[2]s`,
		column, toolColumns,
	)

	var tool Tool
	err := r.db.GetContext(ctx, &tool, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tool, nil
}

// DeleteTool removes the tool and every favorite pointing at it in one
// transaction.
func (r *repository) DeleteTool(ctx context.Context, id int64) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE tool_id = $1`, id); err != nil {
			return fmt.Errorf("delete tool favorites: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM tools WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete tool: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete tool: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("delete tool: %w", core.ErrNotFound)
		}

		return nil
	})
}

func (r *repository) Counts(ctx context.Context) (*Counts, error) {
	query := `
		SELECT COUNT(*) AS tools,
		       COUNT(*) FILTER (WHERE is_active) AS active,
		       COUNT(*) FILTER (WHERE is_premium) AS premium,
		       (SELECT COUNT(*) FROM categories) AS categories
		FROM tools`

	var counts Counts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count tools: %w", err)
	}

	return &counts, nil
}

// AngelaMos | 2026
// repository.go

package favorite

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/ittools/internal/catalog"
	"github.com/carterperez-dev/ittools/internal/core"
)

const userForeignKey = "favorites_user_id_fkey"

type Repository interface {
	List(ctx context.Context, userID int64) ([]catalog.Tool, error)
	Add(ctx context.Context, userID, toolID int64) (bool, error)
	Remove(ctx context.Context, userID, toolID int64) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, userID int64) ([]catalog.Tool, error) {
	query := `
		SELECT t.id, t.name, t.category_id, t.description, t.route_path,
		       t.is_premium, t.is_active, t.icon, t.created_at
		FROM favorites f
		JOIN tools t ON t.id = f.tool_id
		WHERE f.user_id = $1 AND t.is_active
		ORDER BY f.created_at DESC, t.id ASC`

	var tools []catalog.Tool
	if err := r.db.SelectContext(ctx, &tools, query, userID); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return tools, nil
}

// Add reports whether a row was inserted; an existing favorite is left as
// is.
func (r *repository) Add(ctx context.Context, userID, toolID int64) (bool, error) {
	query := `
		INSERT INTO favorites (user_id, tool_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, tool_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, userID, toolID)
	if err != nil {
		if core.IsForeignKeyError(err) {
			if core.ConstraintName(err) == userForeignKey {
				return false, fmt.Errorf("add favorite: %w",
					core.UnauthorizedError("account no longer exists"))
			}
			return false, fmt.Errorf("add favorite: %w", core.ErrNotFound)
		}
		return false, fmt.Errorf("add favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}

	return rows > 0, nil
}

func (r *repository) Remove(ctx context.Context, userID, toolID int64) (bool, error) {
	query := `DELETE FROM favorites WHERE user_id = $1 AND tool_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, toolID)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}

	return rows > 0, nil
}

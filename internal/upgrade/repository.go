// AngelaMos | 2026
// repository.go

package upgrade

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/ittools/internal/core"
)

type Repository interface {
	Create(ctx context.Context, userID int64) (*Request, error)
	ListPending(ctx context.Context) ([]PendingRequest, error)
	Approve(ctx context.Context, userID int64) error
	Reject(ctx context.Context, userID int64) error
}

type repository struct {
	db core.TxBeginner
}

func NewRepository(db core.TxBeginner) Repository {
	return &repository{db: db}
}

// Create relies on the partial unique index over pending rows, so two
// concurrent requests from one user cannot both succeed.
func (r *repository) Create(ctx context.Context, userID int64) (*Request, error) {
	query := `
		INSERT INTO upgrade_requests (user_id, status)
		VALUES ($1, $2)
		RETURNING id, user_id, status, created_at`

	var req Request
	err := r.db.GetContext(ctx, &req, query, userID, StatusPending)
	switch {
	case err == nil:
		return &req, nil
	case core.IsDuplicateKeyError(err):
		return nil, fmt.Errorf("create upgrade request: %w", core.ErrDuplicateKey)
	case core.IsForeignKeyError(err):
		return nil, fmt.Errorf("create upgrade request: %w", core.ErrNotFound)
	default:
		return nil, fmt.Errorf("create upgrade request: %w", err)
	}
}

func (r *repository) ListPending(ctx context.Context) ([]PendingRequest, error) {
	query := `
		SELECT r.id, r.user_id, u.username, r.created_at
		FROM upgrade_requests r
		JOIN users u ON u.id = r.user_id
		WHERE r.status = $1
		ORDER BY r.created_at ASC, r.id ASC`

	var pending []PendingRequest
	if err := r.db.SelectContext(ctx, &pending, query, StatusPending); err != nil {
		return nil, fmt.Errorf("list upgrade requests: %w", err)
	}

	return pending, nil
}

// Approve deletes the pending row and grants premium in one transaction.
func (r *repository) Approve(ctx context.Context, userID int64) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := deletePending(ctx, tx, "approve upgrade request", userID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE users SET is_premium = TRUE, updated_at = NOW() WHERE id = $1`,
			userID,
		)
		if err != nil {
			return fmt.Errorf("grant premium: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("grant premium: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("grant premium: %w", core.ErrNotFound)
		}

		return nil
	})
}

func (r *repository) Reject(ctx context.Context, userID int64) error {
	return deletePending(ctx, r.db, "reject upgrade request", userID)
}

func deletePending(ctx context.Context, db core.DBTX, op string, userID int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM upgrade_requests WHERE user_id = $1 AND status = $2`,
		userID, StatusPending,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

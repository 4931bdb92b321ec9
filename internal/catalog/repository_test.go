// AngelaMos | 2026
// repository_test.go

package catalog

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/ittools/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

var toolCols = []string{
	"id", "name", "category_id", "description", "route_path",
	"is_premium", "is_active", "icon", "created_at",
}

func TestListToolsActiveOnly(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM tools WHERE is_active ORDER BY")).
		WillReturnRows(sqlmock.NewRows(toolCols).
			AddRow(int64(1), "Hash Text", int64(1), "d", "/hash-text", false, true, "hash", now).
			AddRow(int64(2), "Bcrypt", int64(1), "d", "/bcrypt", true, true, "lock", now))

	tools, err := repo.ListTools(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.True(t, tools[1].IsPremium)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetToolByNameIsCaseInsensitive(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(name) = LOWER($1)")).
		WithArgs("hash text").
		WillReturnRows(sqlmock.NewRows(toolCols).
			AddRow(int64(1), "Hash Text", int64(1), "d", "/hash-text", false, true, "", time.Now()))

	tool, err := repo.GetToolByName(context.Background(), "hash text")
	require.NoError(t, err)
	assert.Equal(t, "Hash Text", tool.Name)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(name) = LOWER($1)")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetToolByName(context.Background(), "ghost")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestCreateToolErrors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{"duplicate", "23505", core.ErrDuplicateKey},
		{"missing category", "23503", ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tools")).
				WillReturnError(&pgconn.PgError{Code: tt.code})

			err := repo.CreateTool(context.Background(), &Tool{Name: "X", RoutePath: "/x"})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTool(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tools")).
		WithArgs("Hash Text", int64(1), "desc", "/hash-text", false, true, "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), now))

	tool := &Tool{
		Name: "Hash Text", CategoryID: 1, Description: "desc",
		RoutePath: "/hash-text", IsActive: true, Icon: "hash",
	}
	require.NoError(t, repo.CreateTool(context.Background(), tool))
	assert.Equal(t, int64(9), tool.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTogglePremium(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tools SET is_premium = NOT is_premium WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(toolCols).
			AddRow(int64(3), "Bcrypt", int64(1), "", "/bcrypt", true, true, "", time.Now()))

	tool, err := repo.TogglePremium(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, tool.IsPremium)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tools SET is_active = NOT is_active")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.ToggleActive(context.Background(), 99)
	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteToolRemovesFavoritesInTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorites WHERE tool_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tools WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteTool(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingToolRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorites")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tools")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteTool(context.Background(), 42)
	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCounts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE is_active)")).
		WillReturnRows(sqlmock.NewRows([]string{"tools", "active", "premium", "categories"}).
			AddRow(29, 28, 5, 11))

	counts, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{Tools: 29, Active: 28, Premium: 5, Categories: 11}, *counts)
}

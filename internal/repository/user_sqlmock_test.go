package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// ListPage with a search term must match case-insensitively across
// username, display name and email, and paginate with LIMIT/OFFSET.
func TestUserRepositoryListPageQueryShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	like := "%car%"

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "users" WHERE (LOWER(username) LIKE $1 OR LOWER(display_name) LIKE $2 OR LOWER(email) LIKE $3) AND "users"."deleted_at" IS NULL`)).
		WithArgs(like, like, like).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "users" WHERE (LOWER(username) LIKE $1 OR LOWER(display_name) LIKE $2 OR LOWER(email) LIKE $3) AND "users"."deleted_at" IS NULL ORDER BY created_at DESC LIMIT $4 OFFSET $5`)).
		WithArgs(like, like, like, 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(3, "carol").
			AddRow(4, "carlos"))

	// Mixed-case input is lowered before it reaches the database.
	users, total, err := repo.ListPage(ctx, 2, 10, "CaR")
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, users, 2)
	assert.Equal(t, "carol", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListPageWithoutSearch(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "users" WHERE "users"."deleted_at" IS NULL`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "users" WHERE "users"."deleted_at" IS NULL ORDER BY created_at DESC LIMIT $1`)).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))

	// Out-of-range paging inputs fall back to the defaults.
	users, total, err := repo.ListPage(ctx, 0, 0, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

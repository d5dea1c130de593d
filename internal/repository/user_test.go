package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")

	err := repo.Create(ctx, &models.User{
		DisplayName: "Alice Again",
		Username:    "alice",
		Email:       "other@example.com",
		Password:    "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Username already exists")

	err = repo.Create(ctx, &models.User{
		DisplayName: "Alice Again",
		Username:    "alice2",
		Email:       "alice@example.com",
		Password:    "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already exists")
}

func TestUserRepositoryLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "bob")

	byUsername, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, created.ID, byUsername.ID)

	byEmail, err := repo.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)

	// Missing users resolve to (nil, nil) so callers can give a uniform
	// invalid-credentials answer.
	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryListPage(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, name := range []string{"carol", "carlos", "dave"} {
		createTestUser(t, db, name)
	}

	users, total, err := repo.ListPage(ctx, 1, 10, "CAR")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	users, total, err = repo.ListPage(ctx, 2, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 1)
}

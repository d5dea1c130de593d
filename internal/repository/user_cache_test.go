package repository

import (
	"context"
	"testing"

	"ripple/internal/cache"
	"ripple/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestUserRepositoryGetByIDCachesReads(t *testing.T) {
	db := newTestDB(t)
	mr := withTestCache(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Username)
	assert.True(t, mr.Exists(cache.UserKey(user.ID)))

	// Second read is served from the cache.
	second, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Username, second.Username)
	assert.Equal(t, first.Email, second.Email)
}

// A cache hit must return the full row, password hash included; the handed-out
// struct flows into Save on every read-modify-write path, so an empty hash
// here would be persisted and lock the account out.
func TestUserRepositoryCacheHitKeepsPasswordHash(t *testing.T) {
	db := newTestDB(t)
	withTestCache(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	// Warm the cache, then read through it.
	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	cachedRead, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "not-a-real-hash", cachedRead.Password)

	// Mutating a cached read must not wipe the stored hash.
	cachedRead.Bio = "updated after cached read"
	require.NoError(t, repo.Update(ctx, cachedRead))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "not-a-real-hash", stored.Password)
	assert.Equal(t, "updated after cached read", stored.Bio)
}

func TestUserRepositoryUpdateInvalidatesCache(t *testing.T) {
	db := newTestDB(t)
	mr := withTestCache(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))

	user.DisplayName = "Alice A."
	require.NoError(t, repo.Update(ctx, user))
	assert.False(t, mr.Exists(cache.UserKey(user.ID)))

	fresh, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", fresh.DisplayName)
}

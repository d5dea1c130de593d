package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepositoryListAggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")

	post := createTestPost(t, db, author.ID, "hello world")
	require.NoError(t, repo.Like(ctx, fan.ID, post.ID))

	posts, err := repo.List(ctx, 20, 0, fan.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].LikesCount)
	assert.True(t, posts[0].Liked)
	assert.Equal(t, "author", posts[0].User.Username)

	// Without a requesting user the liked flag stays false.
	posts, err = repo.List(ctx, 20, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.False(t, posts[0].Liked)
}

func TestPostRepositoryLikeIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	post := createTestPost(t, db, author.ID, "like me")

	require.NoError(t, repo.Like(ctx, fan.ID, post.ID))
	require.NoError(t, repo.Like(ctx, fan.ID, post.ID))

	count, err := repo.LikesCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Unlike(ctx, fan.ID, post.ID))
	// Unliking again is a no-op.
	require.NoError(t, repo.Unlike(ctx, fan.ID, post.ID))

	count, err = repo.LikesCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPostRepositoryDeleteRemovesLikes(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	post := createTestPost(t, db, author.ID, "doomed")
	require.NoError(t, repo.Like(ctx, fan.ID, post.ID))

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID, 0)
	require.Error(t, err)

	count, err := repo.LikesCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPostRepositoryCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "a")
	b := createTestUser(t, db, "b")
	createTestPost(t, db, a.ID, "one")
	createTestPost(t, db, a.ID, "two")
	createTestPost(t, db, b.ID, "three")

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	byUser, err := repo.CountByUserID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byUser)

	authors, err := repo.CountActiveAuthorsSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), authors)

	none, err := repo.CountCreatedSince(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), none)
}

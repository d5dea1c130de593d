package seed

import (
	"fmt"
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:seed_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRunSeedsMesh(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Run(db, Options{Users: 5, PostsPerUser: 2, SkipBcrypt: true}))

	var userCount, postCount, likeCount, followCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)

	assert.Equal(t, int64(5), userCount)
	assert.Equal(t, int64(10), postCount)
	assert.Positive(t, followCount)
	// Likes are probabilistic but self-likes never happen.
	var selfLikes int64
	require.NoError(t, db.Table("likes").
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.user_id = likes.user_id").
		Count(&selfLikes).Error)
	assert.Zero(t, selfLikes)
}

func TestCreatePostRespectsLengthLimit(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		post, err := f.CreatePost(user)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(post.Content), models.MaxPostContentLen)
	}
}

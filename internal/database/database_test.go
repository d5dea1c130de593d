package database

import (
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrateCreatesSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{
		"users", "posts", "likes", "follows",
		"reports", "admin_actions", "moderation_actions",
	} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}

	// Composite uniqueness backs idempotent likes and follows.
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_like_user_post"))
	assert.True(t, db.Migrator().HasIndex(&models.Follow{}, "idx_follower_following"))
}

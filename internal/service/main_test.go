package service

import (
	"context"
	"fmt"
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	users      *UserService
	posts      *PostService
	moderation *ModerationService
	analytics  *AnalyticsService
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	auditRepo  repository.AuditRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	reportRepo := repository.NewReportRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	users := NewUserService(db, userRepo, postRepo, followRepo, auditRepo)
	return &testEnv{
		db:         db,
		users:      users,
		posts:      NewPostService(postRepo),
		moderation: NewModerationService(db, reportRepo, postRepo, userRepo, users),
		analytics:  NewAnalyticsService(userRepo, postRepo),
		userRepo:   userRepo,
		postRepo:   postRepo,
		auditRepo:  auditRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := &models.User{
		DisplayName: username,
		Username:    username,
		Email:       username + "@example.com",
		Password:    "not-a-real-hash",
	}
	require.NoError(t, e.userRepo.Create(context.Background(), user))
	return user
}

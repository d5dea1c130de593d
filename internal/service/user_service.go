package service

import (
	"context"
	"time"
	"unicode/utf8"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"gorm.io/gorm"
)

// UserService provides profile, follow and account administration logic.
type UserService struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	auditRepo  repository.AuditRepository
}

// NewUserService returns a new UserService. The db handle is used only for
// multi-write transactions (ban plus audit row).
func NewUserService(db *gorm.DB, userRepo repository.UserRepository, postRepo repository.PostRepository, followRepo repository.FollowRepository, auditRepo repository.AuditRepository) *UserService {
	return &UserService{
		db:         db,
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		auditRepo:  auditRepo,
	}
}

// ProfileView aggregates everything a profile page needs in one response.
type ProfileView struct {
	User        models.PublicProfile `json:"user"`
	Counts      models.ProfileCounts `json:"counts"`
	IsFollowing bool                 `json:"is_following"`
}

// cachedProfile is the viewer-independent slice of a profile page. Follow
// state depends on who is asking and is never cached.
type cachedProfile struct {
	User   models.PublicProfile `json:"user"`
	Counts models.ProfileCounts `json:"counts"`
}

// GetProfile returns the public profile, counts and the viewer's follow state.
// viewerID of 0 means anonymous.
func (s *UserService) GetProfile(ctx context.Context, username string, viewerID uint) (*ProfileView, error) {
	username = validation.NormalizeUsername(username)

	var cached cachedProfile
	err := cache.Aside(ctx, cache.ProfileKey(username), &cached, cache.ProfileTTL, func() error {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return models.NewNotFoundError("User", username)
		}
		cached.User = user.Profile()
		if cached.Counts.Posts, err = s.postRepo.CountByUserID(ctx, user.ID); err != nil {
			return err
		}
		if cached.Counts.Followers, err = s.followRepo.CountFollowers(ctx, user.ID); err != nil {
			return err
		}
		cached.Counts.Following, err = s.followRepo.CountFollowing(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	view := &ProfileView{User: cached.User, Counts: cached.Counts}
	if viewerID != 0 && viewerID != view.User.ID {
		if view.IsFollowing, err = s.followRepo.IsFollowing(ctx, viewerID, view.User.ID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// GetUserPosts returns a user's posts, newest first.
func (s *UserService) GetUserPosts(ctx context.Context, username string, limit, offset int, viewerID uint) ([]*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, validation.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return s.postRepo.GetByUserID(ctx, user.ID, limit, offset, viewerID)
}

// FollowUser makes followerID follow the named user. Following yourself is
// rejected; following an already-followed user is a no-op.
func (s *UserService) FollowUser(ctx context.Context, followerID uint, username string) error {
	target, err := s.userRepo.GetByUsername(ctx, validation.NormalizeUsername(username))
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNotFoundError("User", username)
	}
	if target.ID == followerID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if err := s.followRepo.Follow(ctx, followerID, target.ID); err != nil {
		return err
	}
	// Follower counts live in the cached profile.
	cache.InvalidateProfile(ctx, target.Username)
	return nil
}

// UnfollowUser removes a follow edge. Unfollowing a user you never followed
// is a no-op.
func (s *UserService) UnfollowUser(ctx context.Context, followerID uint, username string) error {
	target, err := s.userRepo.GetByUsername(ctx, validation.NormalizeUsername(username))
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNotFoundError("User", username)
	}
	if err := s.followRepo.Unfollow(ctx, followerID, target.ID); err != nil {
		return err
	}
	cache.InvalidateProfile(ctx, target.Username)
	return nil
}

// UpdateProfileInput carries the editable profile fields. Empty strings mean
// "leave unchanged".
type UpdateProfileInput struct {
	UserID      uint
	DisplayName string
	Bio         string
	AvatarURL   string
	BannerURL   string
	Website     string
	Location    string
}

// UpdateProfile applies partial profile edits for the given user.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.DisplayName != "" {
		if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.DisplayName = in.DisplayName
	}
	if in.Bio != "" {
		if utf8.RuneCountInString(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}
	if in.BannerURL != "" {
		user.BannerURL = in.BannerURL
	}
	if in.Website != "" {
		user.Website = in.Website
	}
	if in.Location != "" {
		user.Location = in.Location
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns a page of users plus the total count for admin listings.
func (s *UserService) ListUsers(ctx context.Context, page, limit int, search string) ([]models.User, int64, error) {
	return s.userRepo.ListPage(ctx, page, limit, search)
}

// BanUser bans the target account and writes the audit row in one
// transaction. A nil duration means a permanent ban.
func (s *UserService) BanUser(ctx context.Context, adminID, targetID uint, duration *time.Duration, reason string) (*models.User, error) {
	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		user, txErr = s.banUserInTx(ctx, tx, adminID, targetID, duration, reason)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// banUserInTx validates and applies a ban using repositories bound to tx, so
// callers holding a wider transaction (report resolution) stay atomic.
func (s *UserService) banUserInTx(ctx context.Context, tx *gorm.DB, adminID, targetID uint, duration *time.Duration, reason string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.ID == adminID {
		return nil, models.NewValidationError("You cannot ban yourself")
	}
	if duration != nil && *duration <= 0 {
		return nil, models.NewValidationError("Ban duration must be positive")
	}

	user.IsBanned = true
	user.BannedUntil = nil
	if duration != nil {
		until := time.Now().Add(*duration)
		user.BannedUntil = &until
	}

	if err := repository.NewUserRepository(tx).Update(ctx, user); err != nil {
		return nil, err
	}
	if err := repository.NewAuditRepository(tx).CreateAdminAction(ctx, &models.AdminAction{
		AdminID:      adminID,
		TargetUserID: targetID,
		Action:       models.AuditActionBanUser,
		Reason:       reason,
	}); err != nil {
		return nil, err
	}
	return user, nil
}

// UnbanUser lifts a ban and writes the audit row in one transaction.
func (s *UserService) UnbanUser(ctx context.Context, adminID, targetID uint, reason string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.IsBanned = false
	user.BannedUntil = nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewUserRepository(tx).Update(ctx, user); err != nil {
			return err
		}
		return repository.NewAuditRepository(tx).CreateAdminAction(ctx, &models.AdminAction{
			AdminID:      adminID,
			TargetUserID: targetID,
			Action:       models.AuditActionUnbanUser,
			Reason:       reason,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetAdmin grants or revokes the admin role.
func (s *UserService) SetAdmin(ctx context.Context, targetID uint, isAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetModerator grants or revokes the moderator role.
func (s *UserService) SetModerator(ctx context.Context, targetID uint, isModerator bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	user.IsModerator = isModerator
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

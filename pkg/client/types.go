package client

import "time"

// User is a user account as returned by the API.
type User struct {
	ID          uint       `json:"id"`
	DisplayName string     `json:"display_name"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	IsAdmin     bool       `json:"is_admin"`
	IsModerator bool       `json:"is_moderator"`
	IsVerified  bool       `json:"is_verified"`
	IsPremium   bool       `json:"is_premium"`
	IsBanned    bool       `json:"is_banned"`
	BannedUntil *time.Time `json:"banned_until,omitempty"`
	AvatarURL   string     `json:"avatar_url"`
	BannerURL   string     `json:"banner_url"`
	Bio         string     `json:"bio"`
	Website     string     `json:"website"`
	Location    string     `json:"location"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Post is a single post with its author and like aggregates.
type Post struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	UserID     uint      `json:"user_id"`
	User       User      `json:"user"`
	LikesCount int       `json:"likes_count"`
	Liked      bool      `json:"liked"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProfileCounts holds the aggregate counts shown on a profile page.
type ProfileCounts struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// Profile is the public profile view of a user, including counts and
// whether the authenticated caller follows them.
type Profile struct {
	User        User          `json:"user"`
	Counts      ProfileCounts `json:"counts"`
	IsFollowing bool          `json:"is_following"`
}

// LikeResult is the like state of a post after a like or unlike call.
type LikeResult struct {
	LikesCount int64 `json:"likes_count"`
	Liked      bool  `json:"liked"`
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	DisplayName string `json:"display_name,omitempty"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// UpdateProfileInput carries profile fields to change. Empty fields are
// left unchanged by the server.
type UpdateProfileInput struct {
	DisplayName string `json:"display_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	BannerURL   string `json:"banner_url,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
}

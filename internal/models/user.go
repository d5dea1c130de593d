// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user account in the Ripple application.
// Password is never serialized; username and email are stored lowercase.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	DisplayName string     `gorm:"not null" json:"display_name"`
	Username    string     `gorm:"uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	IsAdmin     bool       `gorm:"default:false" json:"is_admin"`
	IsModerator bool       `gorm:"default:false" json:"is_moderator"`
	IsVerified  bool       `gorm:"default:false" json:"is_verified"`
	IsPremium   bool       `gorm:"default:false" json:"is_premium"`
	IsBanned    bool       `gorm:"default:false" json:"is_banned"`
	BannedUntil *time.Time `json:"banned_until,omitempty"`
	AvatarURL   string     `json:"avatar_url"`
	BannerURL   string     `json:"banner_url"`
	Bio         string     `json:"bio"`
	Website     string     `json:"website"`
	Location    string     `json:"location"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// BanActive reports whether the user currently has an effective ban.
// A nil BannedUntil with IsBanned set means a permanent ban.
func (u *User) BanActive(now time.Time) bool {
	if !u.IsBanned {
		return false
	}
	if u.BannedUntil == nil {
		return true
	}
	return u.BannedUntil.After(now)
}

// PublicProfile is the subset of user columns exposed on profile reads.
type PublicProfile struct {
	ID          uint      `json:"id"`
	DisplayName string    `json:"display_name"`
	Username    string    `json:"username"`
	AvatarURL   string    `json:"avatar_url"`
	BannerURL   string    `json:"banner_url"`
	Bio         string    `json:"bio"`
	Website     string    `json:"website"`
	Location    string    `json:"location"`
	IsVerified  bool      `json:"is_verified"`
	IsPremium   bool      `json:"is_premium"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile returns the public view of the user.
func (u *User) Profile() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Username:    u.Username,
		AvatarURL:   u.AvatarURL,
		BannerURL:   u.BannerURL,
		Bio:         u.Bio,
		Website:     u.Website,
		Location:    u.Location,
		IsVerified:  u.IsVerified,
		IsPremium:   u.IsPremium,
		CreatedAt:   u.CreatedAt,
	}
}

// ProfileCounts holds the aggregate counts shown on a profile page.
type ProfileCounts struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

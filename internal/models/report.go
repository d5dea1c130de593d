package models

import "time"

// ReportStatus represents the lifecycle state of a moderation report.
type ReportStatus string

const (
	// ReportStatusPending indicates the report has not been handled yet.
	ReportStatusPending ReportStatus = "pending"
	// ReportStatusResolved indicates a moderator closed the report.
	ReportStatusResolved ReportStatus = "resolved"
)

// Resolution actions accepted by the report resolve endpoint.
const (
	ReportActionDismiss    = "dismiss"
	ReportActionDeletePost = "delete_post"
	ReportActionBanUser    = "ban_user"
)

// Report represents a user-submitted moderation report against a user or a post.
// Exactly one of ReportedUserID/ReportedPostID identifies the primary target;
// for post reports the post owner is recorded as well.
type Report struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	ReporterID       uint         `gorm:"not null;index" json:"reporter_id"`
	ReportedUserID   *uint        `gorm:"index" json:"reported_user_id,omitempty"`
	ReportedPostID   *uint        `gorm:"index" json:"reported_post_id,omitempty"`
	Reason           string       `gorm:"size:500;not null" json:"reason"`
	Details          string       `gorm:"size:2000" json:"details,omitempty"`
	Status           ReportStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ResolvedByID     *uint        `json:"resolved_by_id,omitempty"`
	ResolvedAt       *time.Time   `json:"resolved_at,omitempty"`
	ResolutionAction string       `gorm:"size:50" json:"resolution_action,omitempty"`
	ResolutionNotes  string       `gorm:"size:2000" json:"resolution_notes,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`

	Reporter     User  `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	ReportedUser *User `gorm:"foreignKey:ReportedUserID" json:"reported_user,omitempty"`
	ReportedPost *Post `gorm:"foreignKey:ReportedPostID" json:"reported_post,omitempty"`
}

package models

import "time"

// Audit action names written by the admin and moderation endpoints.
const (
	AuditActionBanUser       = "ban_user"
	AuditActionUnbanUser     = "unban_user"
	AuditActionDeletePost    = "delete_post"
	AuditActionResolveReport = "resolve_report"
)

// AdminAction is an append-only audit row recording a privileged admin
// operation on a user account. Rows are never updated or deleted.
type AdminAction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AdminID      uint      `gorm:"not null;index" json:"admin_id"`
	TargetUserID uint      `gorm:"not null;index" json:"target_user_id"`
	Action       string    `gorm:"size:50;not null" json:"action"`
	Reason       string    `gorm:"size:500" json:"reason"`
	CreatedAt    time.Time `json:"created_at"`

	Admin      User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	TargetUser User `gorm:"foreignKey:TargetUserID" json:"target_user,omitempty"`
}

// ModerationAction is an append-only audit row recording a moderation
// operation on content or a report.
type ModerationAction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ModeratorID  uint      `gorm:"not null;index" json:"moderator_id"`
	TargetUserID *uint     `gorm:"index" json:"target_user_id,omitempty"`
	TargetPostID *uint     `gorm:"index" json:"target_post_id,omitempty"`
	ReportID     *uint     `gorm:"index" json:"report_id,omitempty"`
	Action       string    `gorm:"size:50;not null" json:"action"`
	Reason       string    `gorm:"size:500" json:"reason"`
	CreatedAt    time.Time `json:"created_at"`

	Moderator User `gorm:"foreignKey:ModeratorID" json:"moderator,omitempty"`
}

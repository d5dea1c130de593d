package repository

import (
	"context"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// AuditRepository writes append-only audit rows for privileged operations.
// There is intentionally no update or delete.
type AuditRepository interface {
	CreateAdminAction(ctx context.Context, action *models.AdminAction) error
	CreateModerationAction(ctx context.Context, action *models.ModerationAction) error
	ListAdminActions(ctx context.Context, limit, offset int) ([]models.AdminAction, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository returns a new AuditRepository implementation.
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) CreateAdminAction(ctx context.Context, action *models.AdminAction) error {
	if err := r.db.WithContext(ctx).Create(action).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *auditRepository) CreateModerationAction(ctx context.Context, action *models.ModerationAction) error {
	if err := r.db.WithContext(ctx).Create(action).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *auditRepository) ListAdminActions(ctx context.Context, limit, offset int) ([]models.AdminAction, error) {
	var actions []models.AdminAction
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&actions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return actions, nil
}

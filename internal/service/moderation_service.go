package service

import (
	"context"
	"time"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"

	"gorm.io/gorm"
)

// ModerationService provides report intake and resolution logic.
type ModerationService struct {
	db         *gorm.DB
	reportRepo repository.ReportRepository
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	users      *UserService
}

// NewModerationService returns a new ModerationService. Resolution writes
// audit rows through transaction-bound repositories, not a shared one.
func NewModerationService(db *gorm.DB, reportRepo repository.ReportRepository, postRepo repository.PostRepository, userRepo repository.UserRepository, users *UserService) *ModerationService {
	return &ModerationService{
		db:         db,
		reportRepo: reportRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
		users:      users,
	}
}

// CreateReportInput carries a user-submitted report. Exactly one of
// ReportedUserID/ReportedPostID must be set.
type CreateReportInput struct {
	ReporterID     uint
	ReportedUserID *uint
	ReportedPostID *uint
	Reason         string
	Details        string
}

// CreateReport validates the target and stores a pending report.
func (s *ModerationService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if in.Reason == "" {
		return nil, models.NewValidationError("Report reason is required")
	}
	if (in.ReportedUserID == nil) == (in.ReportedPostID == nil) {
		return nil, models.NewValidationError("Report exactly one user or one post")
	}

	report := &models.Report{
		ReporterID: in.ReporterID,
		Reason:     in.Reason,
		Details:    in.Details,
		Status:     models.ReportStatusPending,
	}

	if in.ReportedPostID != nil {
		post, err := s.postRepo.GetByID(ctx, *in.ReportedPostID, 0)
		if err != nil {
			return nil, err
		}
		report.ReportedPostID = &post.ID
		// Record the post owner so user-level history queries see post reports.
		ownerID := post.UserID
		report.ReportedUserID = &ownerID
	} else {
		user, err := s.userRepo.GetByID(ctx, *in.ReportedUserID)
		if err != nil {
			return nil, err
		}
		if user.ID == in.ReporterID {
			return nil, models.NewValidationError("You cannot report yourself")
		}
		report.ReportedUserID = &user.ID
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports returns reports filtered by status. Empty status means all.
func (s *ModerationService) ListReports(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, error) {
	return s.reportRepo.ListByStatus(ctx, status, limit, offset)
}

// ResolveReportInput carries a moderator's resolution decision.
type ResolveReportInput struct {
	ReportID    uint
	ModeratorID uint
	Action      string
	Notes       string
	BanDuration *time.Duration
}

// ResolveReport applies the chosen action and closes the report. The
// pending to resolved transition is one way; resolving twice fails. The
// side effect, the status flip and the audit rows commit atomically.
func (s *ModerationService) ResolveReport(ctx context.Context, in ResolveReportInput) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, in.ReportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.ReportStatusPending {
		return nil, models.NewValidationError("Report is already resolved")
	}

	switch in.Action {
	case models.ReportActionDismiss:
	case models.ReportActionDeletePost:
		if report.ReportedPostID == nil {
			return nil, models.NewValidationError("Report has no post to delete")
		}
	case models.ReportActionBanUser:
		if report.ReportedUserID == nil {
			return nil, models.NewValidationError("Report has no user to ban")
		}
	default:
		return nil, models.NewValidationError("Unknown resolution action")
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Claim the report first: the conditional update makes the pending
		// check race-safe, so concurrent resolves cannot both act.
		claim := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", report.ID, models.ReportStatusPending).
			Updates(map[string]any{
				"status":            models.ReportStatusResolved,
				"resolved_by_id":    in.ModeratorID,
				"resolved_at":       now,
				"resolution_action": in.Action,
				"resolution_notes":  in.Notes,
			})
		if claim.Error != nil {
			return models.NewInternalError(claim.Error)
		}
		if claim.RowsAffected == 0 {
			return models.NewValidationError("Report is already resolved")
		}

		auditRepo := repository.NewAuditRepository(tx)

		switch in.Action {
		case models.ReportActionDeletePost:
			if err := repository.NewPostRepository(tx).Delete(ctx, *report.ReportedPostID); err != nil {
				return err
			}
			if err := auditRepo.CreateModerationAction(ctx, &models.ModerationAction{
				ModeratorID:  in.ModeratorID,
				TargetUserID: report.ReportedUserID,
				TargetPostID: report.ReportedPostID,
				ReportID:     &report.ID,
				Action:       models.AuditActionDeletePost,
				Reason:       in.Notes,
			}); err != nil {
				return err
			}
		case models.ReportActionBanUser:
			if _, err := s.users.banUserInTx(ctx, tx, in.ModeratorID, *report.ReportedUserID, in.BanDuration, in.Notes); err != nil {
				return err
			}
		}

		return auditRepo.CreateModerationAction(ctx, &models.ModerationAction{
			ModeratorID:  in.ModeratorID,
			TargetUserID: report.ReportedUserID,
			TargetPostID: report.ReportedPostID,
			ReportID:     &report.ID,
			Action:       models.AuditActionResolveReport,
			Reason:       in.Notes,
		})
	})
	if err != nil {
		return nil, err
	}

	report.Status = models.ReportStatusResolved
	report.ResolvedByID = &in.ModeratorID
	report.ResolvedAt = &now
	report.ResolutionAction = in.Action
	report.ResolutionNotes = in.Notes

	observability.ModerationActions.WithLabelValues(in.Action).Inc()
	return report, nil
}

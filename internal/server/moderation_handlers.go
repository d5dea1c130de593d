package server

import (
	"time"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReportPost handles POST /api/posts/:id/report
func (s *Server) ReportPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.createReport(c, nil, &postID)
}

// ReportUser handles POST /api/users/:id/report
func (s *Server) ReportUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	return s.createReport(c, &targetID, nil)
}

func (s *Server) createReport(c *fiber.Ctx, reportedUserID, reportedPostID *uint) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		Reason  string `json:"reason"`
		Details string `json:"details"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.moderation.CreateReport(ctx, service.CreateReportInput{
		ReporterID:     userID,
		ReportedUserID: reportedUserID,
		ReportedPostID: reportedPostID,
		Reason:         req.Reason,
		Details:        req.Details,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /api/moderation/reports?status=pending
func (s *Server) GetReports(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	status := models.ReportStatus(c.Query("status", string(models.ReportStatusPending)))
	if status != "" && status != models.ReportStatusPending && status != models.ReportStatusResolved {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid report status"))
	}

	reports, err := s.moderation.ListReports(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(reports)
}

// ResolveReport handles POST /api/moderation/reports/:id/resolve
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	ctx := c.Context()
	moderatorID := currentUserID(c)
	reportID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Action           string  `json:"action"`
		Notes            string  `json:"notes"`
		BanDurationHours float64 `json:"ban_duration_hours"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var banDuration *time.Duration
	if req.BanDurationHours != 0 {
		d := time.Duration(req.BanDurationHours * float64(time.Hour))
		banDuration = &d
	}

	report, resolveErr := s.moderation.ResolveReport(ctx, service.ResolveReportInput{
		ReportID:    reportID,
		ModeratorID: moderatorID,
		Action:      req.Action,
		Notes:       req.Notes,
		BanDuration: banDuration,
	})
	if resolveErr != nil {
		return respondError(c, resolveErr)
	}

	return c.JSON(report)
}

package server

import (
	"time"

	"ripple/internal/models"
	"ripple/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/admin/users with page/limit/search query params.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	ctx := c.Context()

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	search := c.Query("search")

	users, total, err := s.userService.ListUsers(ctx, page, limit, search)
	if err != nil {
		return respondError(c, err)
	}

	pages := int64(0)
	if total > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": pages,
	})
}

// BanUser handles POST /api/admin/users/:id/ban. A missing or zero
// duration_hours means a permanent ban.
func (s *Server) BanUser(c *fiber.Ctx) error {
	ctx := c.Context()
	adminID := currentUserID(c)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason        string  `json:"reason"`
		DurationHours float64 `json:"duration_hours"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var duration *time.Duration
	if req.DurationHours != 0 {
		d := time.Duration(req.DurationHours * float64(time.Hour))
		duration = &d
	}

	user, banErr := s.userService.BanUser(ctx, adminID, targetID, duration, req.Reason)
	if banErr != nil {
		return respondError(c, banErr)
	}

	observability.ModerationActions.WithLabelValues(models.AuditActionBanUser).Inc()
	return c.JSON(user)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	ctx := c.Context()
	adminID := currentUserID(c)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, unbanErr := s.userService.UnbanUser(ctx, adminID, targetID, req.Reason)
	if unbanErr != nil {
		return respondError(c, unbanErr)
	}

	observability.ModerationActions.WithLabelValues(models.AuditActionUnbanUser).Inc()
	return c.JSON(user)
}

// AdminDeletePost handles DELETE /api/admin/posts/:id. The body may carry a
// reason for the audit trail; a missing body falls back to a default.
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	adminID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// The body is optional on this route.
	_ = c.BodyParser(&req)
	if req.Reason == "" {
		req.Reason = "Removed by moderation"
	}

	post, getErr := s.postService.GetPost(ctx, postID, 0)
	if getErr != nil {
		return respondError(c, getErr)
	}

	if delErr := s.postService.DeletePost(ctx, postID, adminID, true); delErr != nil {
		return respondError(c, delErr)
	}

	if auditErr := s.auditRepo.CreateModerationAction(ctx, &models.ModerationAction{
		ModeratorID:  adminID,
		TargetUserID: &post.UserID,
		TargetPostID: &postID,
		Action:       models.AuditActionDeletePost,
		Reason:       req.Reason,
	}); auditErr != nil {
		return respondError(c, auditErr)
	}

	observability.ModerationActions.WithLabelValues(models.AuditActionDeletePost).Inc()
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// GetAnalytics handles GET /api/admin/analytics?days=7
func (s *Server) GetAnalytics(c *fiber.Ctx) error {
	overview, err := s.analytics.Overview(c.Context(), c.QueryInt("days", 7))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}

// GetAdminActions handles GET /api/admin/actions, newest first.
func (s *Server) GetAdminActions(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	actions, err := s.auditRepo.ListAdminActions(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(actions)
}

package server

import (
	"fmt"
	"net/http"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportLifecycleEndpoints(t *testing.T) {
	s, app := newTestServer(t)
	_, reporterToken := createUserWithToken(t, s, "reporter", nil)
	_, authorToken := createUserWithToken(t, s, "author", nil)
	_, modToken := createUserWithToken(t, s, "moderator", func(u *models.User) {
		u.IsModerator = true
	})

	resp := doJSON(t, app, http.MethodPost, "/api/posts", authorToken, map[string]string{
		"content": "offensive",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decodeBody(t, resp, &post)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/report", post.ID), reporterToken, map[string]any{
			"reason":  "abuse",
			"details": "this is not ok",
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var report models.Report
	decodeBody(t, resp, &report)
	assert.Equal(t, models.ReportStatusPending, report.Status)

	// Regular users cannot see the moderation queue.
	resp = doJSON(t, app, http.MethodGet, "/api/moderation/reports", reporterToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/moderation/reports", modToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending []models.Report
	decodeBody(t, resp, &pending)
	require.Len(t, pending, 1)

	resolvePath := fmt.Sprintf("/api/moderation/reports/%d/resolve", report.ID)
	resp = doJSON(t, app, http.MethodPost, resolvePath, modToken, map[string]any{
		"action": models.ReportActionDeletePost,
		"notes":  "removed the post",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var resolved models.Report
	decodeBody(t, resp, &resolved)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	assert.Equal(t, models.ReportActionDeletePost, resolved.ResolutionAction)

	// The reported post is gone.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// Resolution is one way.
	resp = doJSON(t, app, http.MethodPost, resolvePath, modToken, map[string]any{
		"action": models.ReportActionDismiss,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Queue is empty once resolved.
	resp = doJSON(t, app, http.MethodGet, "/api/moderation/reports?status=pending", modToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &pending)
	assert.Empty(t, pending)
}

func TestResolveReportBanAction(t *testing.T) {
	s, app := newTestServer(t)
	_, reporterToken := createUserWithToken(t, s, "reporter", nil)
	target, _ := createUserWithToken(t, s, "target", nil)
	_, modToken := createUserWithToken(t, s, "moderator", func(u *models.User) {
		u.IsModerator = true
	})

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/%d/report", target.ID), reporterToken, map[string]any{
			"reason": "harassment",
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var report models.Report
	decodeBody(t, resp, &report)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/moderation/reports/%d/resolve", report.ID), modToken, map[string]any{
			"action":             models.ReportActionBanUser,
			"notes":              "repeated harassment",
			"ban_duration_hours": 48,
		})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	banned, err := s.userRepo.GetByID(t.Context(), target.ID)
	require.NoError(t, err)
	assert.True(t, banned.IsBanned)
	require.NotNil(t, banned.BannedUntil)
}

func TestCreateReportValidationEndpoint(t *testing.T) {
	s, app := newTestServer(t)
	_, token := createUserWithToken(t, s, "reporter", nil)

	// Reports need a reason.
	resp := doJSON(t, app, http.MethodPost, "/api/users/1/report", token, map[string]any{
		"reason": "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Self-reports are rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/users/1/report", token, map[string]any{
		"reason": "me",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/users/999/report", token, map[string]any{
		"reason": "ghost",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

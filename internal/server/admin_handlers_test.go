package server

import (
	"net/http"
	"testing"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRequireAdminClaim(t *testing.T) {
	s, app := newTestServer(t)
	_, userToken := createUserWithToken(t, s, "regular", nil)

	for _, path := range []string{"/api/admin/users", "/api/admin/analytics", "/api/admin/actions"} {
		resp := doJSON(t, app, http.MethodGet, path, userToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}

func TestAdminListUsers(t *testing.T) {
	s, app := newTestServer(t)
	_, adminToken := createUserWithToken(t, s, "admin", func(u *models.User) {
		u.IsAdmin = true
	})
	createUserWithToken(t, s, "carol", nil)
	createUserWithToken(t, s, "carlos", nil)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/users?search=car&page=1&limit=10", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Users []models.User `json:"users"`
		Total int64         `json:"total"`
		Page  int           `json:"page"`
		Pages int64         `json:"pages"`
	}
	decodeBody(t, resp, &out)
	assert.Equal(t, int64(2), out.Total)
	assert.Len(t, out.Users, 2)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, int64(1), out.Pages)
}

func TestBanUnbanEndpoints(t *testing.T) {
	s, app := newTestServer(t)
	admin, adminToken := createUserWithToken(t, s, "admin", func(u *models.User) {
		u.IsAdmin = true
	})
	target, _ := createUserWithToken(t, s, "target", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/users/2/ban", adminToken, map[string]any{
		"reason":         "spam",
		"duration_hours": 24,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var banned models.User
	decodeBody(t, resp, &banned)
	assert.Equal(t, target.ID, banned.ID)
	assert.True(t, banned.IsBanned)
	assert.NotNil(t, banned.BannedUntil)

	// Negative durations are rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/users/2/ban", adminToken, map[string]any{
		"duration_hours": -1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/admin/users/2/unban", adminToken, map[string]any{
		"reason": "appeal",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var unbanned models.User
	decodeBody(t, resp, &unbanned)
	assert.False(t, unbanned.IsBanned)

	// Both operations left audit rows.
	resp = doJSON(t, app, http.MethodGet, "/api/admin/actions", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var actions []models.AdminAction
	decodeBody(t, resp, &actions)
	require.Len(t, actions, 2)
	for _, action := range actions {
		assert.Equal(t, admin.ID, action.AdminID)
		assert.Equal(t, target.ID, action.TargetUserID)
	}
}

func TestAdminDeletePostEndpoint(t *testing.T) {
	s, app := newTestServer(t)
	_, adminToken := createUserWithToken(t, s, "admin", func(u *models.User) {
		u.IsAdmin = true
	})
	_, authorToken := createUserWithToken(t, s, "author", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/posts", authorToken, map[string]string{
		"content": "to be removed",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/admin/posts/1", adminToken, map[string]string{
		"reason": "spam wave",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/posts/1", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// The audit row carries the caller-supplied reason.
	var actions []models.ModerationAction
	require.NoError(t, s.db.Find(&actions).Error)
	require.Len(t, actions, 1)
	assert.Equal(t, models.AuditActionDeletePost, actions[0].Action)
	assert.Equal(t, "spam wave", actions[0].Reason)

	resp = doJSON(t, app, http.MethodDelete, "/api/admin/posts/999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestModeratorCanDeletePost(t *testing.T) {
	s, app := newTestServer(t)
	_, modToken := createUserWithToken(t, s, "mod", func(u *models.User) {
		u.IsModerator = true
	})
	_, authorToken := createUserWithToken(t, s, "author", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/posts", authorToken, map[string]string{
		"content": "flagged",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/admin/posts/1", modToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// No body on the delete: the audit row gets the default reason.
	var actions []models.ModerationAction
	require.NoError(t, s.db.Find(&actions).Error)
	require.Len(t, actions, 1)
	assert.Equal(t, "Removed by moderation", actions[0].Reason)

	// Moderators still cannot reach admin-only routes.
	resp = doJSON(t, app, http.MethodGet, "/api/admin/users", modToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAnalyticsEndpoint(t *testing.T) {
	s, app := newTestServer(t)
	_, adminToken := createUserWithToken(t, s, "admin", func(u *models.User) {
		u.IsAdmin = true
	})
	_, authorToken := createUserWithToken(t, s, "author", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/posts", authorToken, map[string]string{
		"content": "counted",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/admin/analytics?days=30", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var overview service.AnalyticsOverview
	decodeBody(t, resp, &overview)
	assert.Equal(t, int64(2), overview.TotalUsers)
	assert.Equal(t, int64(1), overview.TotalPosts)
	assert.Equal(t, int64(1), overview.ActiveToday)
	assert.Equal(t, 30, overview.PeriodDays)
}

package server

import (
	"net/http"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostEndpoint(t *testing.T) {
	s, app := newTestServer(t)
	_, token := createUserWithToken(t, s, "author", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": "hello ripple",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	assert.Equal(t, "hello ripple", post.Content)
	assert.Equal(t, "author", post.User.Username)

	// Unauthenticated callers cannot post.
	resp = doJSON(t, app, http.MethodPost, "/api/posts", "", map[string]string{
		"content": "anonymous",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Over-length content is rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]string{
		"content": strings.Repeat("x", models.MaxPostContentLen+1),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestFeedAndLikes(t *testing.T) {
	s, app := newTestServer(t)
	_, authorToken := createUserWithToken(t, s, "author", nil)
	_, fanToken := createUserWithToken(t, s, "fan", nil)

	resp := doJSON(t, app, http.MethodPost, "/api/posts", authorToken, map[string]string{
		"content": "like me",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decodeBody(t, resp, &post)

	resp = doJSON(t, app, http.MethodPost, "/api/posts/1/like", fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var likeResp struct {
		LikesCount int64 `json:"likes_count"`
		Liked      bool  `json:"liked"`
	}
	decodeBody(t, resp, &likeResp)
	assert.Equal(t, int64(1), likeResp.LikesCount)
	assert.True(t, likeResp.Liked)

	// The feed is public and shows aggregates; the fan sees their liked flag.
	resp = doJSON(t, app, http.MethodGet, "/api/posts", fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []models.Post
	decodeBody(t, resp, &feed)
	require.Len(t, feed, 1)
	assert.Equal(t, 1, feed[0].LikesCount)
	assert.True(t, feed[0].Liked)

	resp = doJSON(t, app, http.MethodDelete, "/api/posts/1/like", fanToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &likeResp)
	assert.Equal(t, int64(0), likeResp.LikesCount)

	// Liking a missing post is a 404.
	resp = doJSON(t, app, http.MethodPost, "/api/posts/999/like", fanToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestDeletePostEndpoint(t *testing.T) {
	s, app := newTestServer(t)
	_, authorToken := createUserWithToken(t, s, "author", nil)
	_, otherToken := createUserWithToken(t, s, "other", nil)
	_, adminToken := createUserWithToken(t, s, "admin", func(u *models.User) {
		u.IsAdmin = true
	})

	for _, content := range []string{"first", "second"} {
		resp := doJSON(t, app, http.MethodPost, "/api/posts", authorToken, map[string]string{
			"content": content,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	// Another user cannot delete the author's post.
	resp := doJSON(t, app, http.MethodDelete, "/api/posts/1", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// The author can.
	resp = doJSON(t, app, http.MethodDelete, "/api/posts/1", authorToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// An admin can delete any post.
	resp = doJSON(t, app, http.MethodDelete, "/api/posts/2", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/posts/2", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

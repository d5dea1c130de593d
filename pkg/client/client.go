// Package client is a Go client for the Ripple HTTP API. It attaches the
// bearer token of the active session to requests and can persist that
// session to a local file between runs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a Ripple API server. It performs no retries; request
// cancellation is driven entirely by the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *SessionStore
	session    *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionStore enables session persistence. The store is read on
// construction and updated on login, register and logout.
func WithSessionStore(store *SessionStore) Option {
	return func(c *Client) { c.store = store }
}

// WithToken sets a bearer token directly, without a persisted session.
func WithToken(token string) Option {
	return func(c *Client) { c.session = &Session{Token: token} }
}

// New returns a client for the API at baseURL. If a session store is
// configured and holds a session, the client starts authenticated.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.store != nil && c.session == nil {
		session, err := c.store.Load()
		if err != nil {
			return nil, err
		}
		c.session = session
	}
	return c, nil
}

// Session returns the active session, or nil when unauthenticated.
func (c *Client) Session() *Session {
	return c.session
}

// Register creates an account and starts a session with its token.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	var out Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, c.setSession(&out)
}

// Login authenticates by username or email and starts a session.
func (c *Client) Login(ctx context.Context, identifier, password string) (*Session, error) {
	body := map[string]string{"identifier": identifier, "password": password}

	var out Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, c.setSession(&out)
}

// Logout revokes the current token server-side and drops the session.
// The local session is cleared even when revocation fails.
func (c *Client) Logout(ctx context.Context) error {
	revokeErr := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)

	c.session = nil
	if c.store != nil {
		if err := c.store.Clear(); err != nil {
			return err
		}
	}
	return revokeErr
}

// Me returns the authenticated user's own account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile changes the authenticated user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/api/users/me", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Feed returns the global feed, newest first.
func (c *Client) Feed(ctx context.Context, page, limit int) ([]Post, error) {
	var out []Post
	path := fmt.Sprintf("/api/posts?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPost returns a single post by ID.
func (c *Client) GetPost(ctx context.Context, id uint) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, content string) (*Post, error) {
	var out Post
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, "/api/posts", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost removes one of the authenticated user's posts.
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, nil)
}

// Like marks a post as liked and returns the updated like state.
func (c *Client) Like(ctx context.Context, postID uint) (*LikeResult, error) {
	var out LikeResult
	path := fmt.Sprintf("/api/posts/%d/like", postID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unlike removes a like and returns the updated like state.
func (c *Client) Unlike(ctx context.Context, postID uint) (*LikeResult, error) {
	var out LikeResult
	path := fmt.Sprintf("/api/posts/%d/like", postID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns a user's public profile with counts.
func (c *Client) Profile(ctx context.Context, username string) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/api/users/"+username, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserPosts returns a user's posts, newest first.
func (c *Client) UserPosts(ctx context.Context, username string, page, limit int) ([]Post, error) {
	var out []Post
	path := fmt.Sprintf("/api/users/%s/posts?page=%d&limit=%d", username, page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Follow subscribes the authenticated user to another user's posts.
func (c *Client) Follow(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodPost, "/api/users/"+username+"/follow", nil, nil)
}

// Unfollow removes a follow relationship.
func (c *Client) Unfollow(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+username+"/follow", nil, nil)
}

// ReportPost files a moderation report against a post.
func (c *Client) ReportPost(ctx context.Context, postID uint, reason, details string) error {
	body := map[string]string{"reason": reason, "details": details}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/report", postID), body, nil)
}

// ReportUser files a moderation report against a user.
func (c *Client) ReportUser(ctx context.Context, userID uint, reason, details string) error {
	body := map[string]string{"reason": reason, "details": details}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/report", userID), body, nil)
}

func (c *Client) setSession(session *Session) error {
	c.session = session
	if c.store != nil {
		return c.store.Save(session)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Error   string `json:"error"`
		Code    string `json:"code"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Error
		apiErr.Details = payload.Details
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

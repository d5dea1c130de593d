// Package feedview converts API responses into display-ready view models.
// All functions are pure: time-dependent output takes the reference time as
// a parameter, and nothing here touches the network or the terminal.
package feedview

import (
	"fmt"
	"time"

	"ripple/pkg/client"
)

// PostView is a single feed entry formatted for display.
type PostView struct {
	ID        uint
	Author    string
	Handle    string
	Content   string
	Timestamp string
	LikeLabel string
	Liked     bool
}

// ProfileSummary is a user profile formatted for display.
type ProfileSummary struct {
	Name        string
	Handle      string
	Bio         string
	Location    string
	Website     string
	Joined      string
	Counts      string
	IsFollowing bool
}

// NewPostView formats a post relative to now.
func NewPostView(post client.Post, now time.Time) PostView {
	author := post.User.DisplayName
	if author == "" {
		author = post.User.Username
	}
	return PostView{
		ID:        post.ID,
		Author:    author,
		Handle:    "@" + post.User.Username,
		Content:   post.Content,
		Timestamp: RelativeTime(post.CreatedAt, now),
		LikeLabel: LikeLabel(post.LikesCount, post.Liked),
		Liked:     post.Liked,
	}
}

// NewFeed formats a page of posts relative to now, preserving order.
func NewFeed(posts []client.Post, now time.Time) []PostView {
	views := make([]PostView, len(posts))
	for i, post := range posts {
		views[i] = NewPostView(post, now)
	}
	return views
}

// NewProfileSummary formats a profile view for display.
func NewProfileSummary(profile client.Profile) ProfileSummary {
	user := profile.User
	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	return ProfileSummary{
		Name:        name,
		Handle:      "@" + user.Username,
		Bio:         user.Bio,
		Location:    user.Location,
		Website:     user.Website,
		Joined:      "Joined " + user.CreatedAt.Format("January 2006"),
		Counts:      countsLine(profile.Counts),
		IsFollowing: profile.IsFollowing,
	}
}

// RelativeTime renders t relative to now. Future timestamps and anything
// under a minute read as "just now"; older than a week falls back to the
// absolute date.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// LikeLabel renders a like count with the viewer's own like marked.
func LikeLabel(count int, liked bool) string {
	var label string
	switch count {
	case 0:
		label = "no likes"
	case 1:
		label = "1 like"
	default:
		label = fmt.Sprintf("%d likes", count)
	}
	if liked {
		label += " (including you)"
	}
	return label
}

func countsLine(counts client.ProfileCounts) string {
	return fmt.Sprintf("%d posts · %d followers · %d following",
		counts.Posts, counts.Followers, counts.Following)
}

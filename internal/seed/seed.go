package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Run populates the database with a small social mesh: users, posts, likes,
// follows and a handful of pending reports. Idempotence is not a goal; run
// against an empty development database.
func Run(db *gorm.DB, opts Options) error {
	if opts.Users <= 0 {
		opts.Users = 20
	}
	if opts.PostsPerUser <= 0 {
		opts.PostsPerUser = 5
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.Users*opts.PostsPerUser)
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post for user %d: %w", user.ID, err)
			}
			posts = append(posts, post)
		}
	}

	// Every user likes a random third of the posts and follows a random
	// handful of other users.
	for _, user := range users {
		for _, post := range posts {
			if post.UserID == user.ID || f.rand.Intn(3) != 0 {
				continue
			}
			if err := f.CreateLike(user, post); err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
		}
		for i := 0; i < 4; i++ {
			other := users[f.rand.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}
			if err := f.CreateFollow(user, other); err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
	}

	reports := opts.Users / 5
	for i := 0; i < reports; i++ {
		reporter := users[f.rand.Intn(len(users))]
		post := posts[f.rand.Intn(len(posts))]
		if post.UserID == reporter.ID {
			continue
		}
		if _, err := f.CreateReport(reporter, post); err != nil {
			return fmt.Errorf("seed report: %w", err)
		}
	}

	log.Printf("Seeded %d users, %d posts", len(users), len(posts))
	return nil
}

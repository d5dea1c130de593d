// Command seed populates the development database with demo data.
package main

import (
	"flag"
	"log"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/models"
	"ripple/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	postsPerUser := flag.Int("posts-per-user", 5, "Number of posts per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Skip password hashing (seeded accounts cannot log in)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		for _, model := range []any{
			&models.ModerationAction{},
			&models.AdminAction{},
			&models.Report{},
			&models.Like{},
			&models.Follow{},
			&models.Post{},
			&models.User{},
		} {
			if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
				log.Fatalf("Cleanup failed: %v", err)
			}
		}
	}

	if err := seed.Run(db, seed.Options{
		Users:        *numUsers,
		PostsPerUser: *postsPerUser,
		SkipBcrypt:   *skipBcrypt,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

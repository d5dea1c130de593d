// Command admin manages privileged roles from the command line.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	users := service.NewUserService(db, userRepo,
		repository.NewPostRepository(db),
		repository.NewFollowRepository(db),
		repository.NewAuditRepository(db))

	ctx := context.Background()

	switch os.Args[1] {
	case "promote-admin":
		setRole(ctx, users, arg(2), "admin", true)
	case "demote-admin":
		setRole(ctx, users, arg(2), "admin", false)
	case "promote-moderator":
		setRole(ctx, users, arg(2), "moderator", true)
	case "demote-moderator":
		setRole(ctx, users, arg(2), "moderator", false)
	case "list-staff":
		listStaff(db)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  admin promote-admin <user_id>       - Grant the admin role")
	fmt.Println("  admin demote-admin <user_id>        - Revoke the admin role")
	fmt.Println("  admin promote-moderator <user_id>   - Grant the moderator role")
	fmt.Println("  admin demote-moderator <user_id>    - Revoke the moderator role")
	fmt.Println("  admin list-staff                    - List all admins and moderators")
}

func arg(i int) uint {
	if len(os.Args) <= i {
		usage()
		os.Exit(1)
	}
	id, err := strconv.ParseUint(os.Args[i], 10, 32)
	if err != nil || id == 0 {
		log.Fatalf("Invalid user ID: %s", os.Args[i])
	}
	return uint(id)
}

func setRole(ctx context.Context, users *service.UserService, userID uint, role string, grant bool) {
	var (
		user *models.User
		err  error
	)
	if role == "admin" {
		user, err = users.SetAdmin(ctx, userID, grant)
	} else {
		user, err = users.SetModerator(ctx, userID, grant)
	}
	if err != nil {
		log.Fatalf("Failed to update user %d: %v", userID, err)
	}

	verb := "granted to"
	if !grant {
		verb = "revoked from"
	}
	fmt.Printf("Role %s %s %s (ID: %d)\n", role, verb, user.Username, user.ID)
}

func listStaff(db *gorm.DB) {
	var staff []models.User
	if err := db.Where("is_admin = ? OR is_moderator = ?", true, true).
		Order("id").
		Find(&staff).Error; err != nil {
		log.Fatalf("Failed to list staff: %v", err)
	}

	if len(staff) == 0 {
		fmt.Println("No admins or moderators found")
		return
	}

	for _, user := range staff {
		roles := ""
		if user.IsAdmin {
			roles = "admin"
		}
		if user.IsModerator {
			if roles != "" {
				roles += ","
			}
			roles += "moderator"
		}
		fmt.Printf("%d\t%s\t%s\t%s\n", user.ID, user.Username, user.Email, roles)
	}
}

// Command social is a terminal client for the Ripple API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"ripple/pkg/client"
	"ripple/pkg/feedview"
)

func main() {
	server := flag.String("server", envOr("RIPPLE_SERVER", "http://localhost:8480"), "API server base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		log.Fatalf("Failed to resolve session path: %v", err)
	}

	api, err := client.New(*server, client.WithSessionStore(client.NewSessionStore(sessionPath)))
	if err != nil {
		log.Fatalf("Failed to initialize client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "register":
		runRegister(ctx, api, args[1:])
	case "login":
		runLogin(ctx, api, args[1:])
	case "logout":
		runLogout(ctx, api)
	case "whoami":
		runWhoami(api)
	case "feed":
		runFeed(ctx, api, args[1:])
	case "post":
		runPost(ctx, api, args[1:])
	case "like":
		runLike(ctx, api, args[1:], true)
	case "unlike":
		runLike(ctx, api, args[1:], false)
	case "profile":
		runProfile(ctx, api, args[1:])
	case "follow":
		runFollow(ctx, api, args[1:], true)
	case "unfollow":
		runFollow(ctx, api, args[1:], false)
	case "report":
		runReport(ctx, api, args[1:])
	default:
		fmt.Printf("Unknown command: %s\n", args[0])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: social [-server URL] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register <username> <email>      - Create an account (prompts for password)")
	fmt.Println("  login <username-or-email>        - Log in (prompts for password)")
	fmt.Println("  logout                           - Log out and clear the saved session")
	fmt.Println("  whoami                           - Show the active session")
	fmt.Println("  feed [page]                      - Show the global feed")
	fmt.Println("  post <content>                   - Publish a post")
	fmt.Println("  like <post-id>                   - Like a post")
	fmt.Println("  unlike <post-id>                 - Remove a like")
	fmt.Println("  profile <username>               - Show a profile and recent posts")
	fmt.Println("  follow <username>                - Follow a user")
	fmt.Println("  unfollow <username>              - Unfollow a user")
	fmt.Println("  report post|user <id> <reason>   - Report a post or user")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatalAPI(err error) {
	switch {
	case client.IsUnauthorized(err):
		log.Fatal("Not logged in, or the session has expired. Run `social login` first.")
	case client.IsRateLimited(err):
		log.Fatal("Rate limited. Wait a moment and try again.")
	default:
		log.Fatalf("Request failed: %v", err)
	}
}

func promptPassword() string {
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	return strings.TrimSpace(line)
}

func parseID(arg string) uint {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		log.Fatalf("Invalid ID: %s", arg)
	}
	return uint(id)
}

func runRegister(ctx context.Context, api *client.Client, args []string) {
	if len(args) < 2 {
		log.Fatal("Usage: social register <username> <email>")
	}

	session, err := api.Register(ctx, client.RegisterInput{
		Username: args[0],
		Email:    args[1],
		Password: promptPassword(),
	})
	if err != nil {
		fatalAPI(err)
	}
	fmt.Printf("Welcome, @%s!\n", session.User.Username)
}

func runLogin(ctx context.Context, api *client.Client, args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: social login <username-or-email>")
	}

	session, err := api.Login(ctx, args[0], promptPassword())
	if err != nil {
		fatalAPI(err)
	}
	fmt.Printf("Logged in as @%s\n", session.User.Username)
}

func runLogout(ctx context.Context, api *client.Client) {
	if err := api.Logout(ctx); err != nil {
		log.Printf("Warning: server-side logout failed: %v", err)
	}
	fmt.Println("Logged out")
}

func runWhoami(api *client.Client) {
	session := api.Session()
	if session == nil {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("@%s (%s)\n", session.User.Username, session.User.Email)
}

func runFeed(ctx context.Context, api *client.Client, args []string) {
	page := 1
	if len(args) > 0 {
		if p, err := strconv.Atoi(args[0]); err == nil && p > 0 {
			page = p
		}
	}

	posts, err := api.Feed(ctx, page, 20)
	if err != nil {
		fatalAPI(err)
	}
	if len(posts) == 0 {
		fmt.Println("The feed is empty.")
		return
	}

	for _, view := range feedview.NewFeed(posts, time.Now()) {
		printPost(view)
	}
}

func runPost(ctx context.Context, api *client.Client, args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: social post <content>")
	}

	post, err := api.CreatePost(ctx, strings.Join(args, " "))
	if err != nil {
		fatalAPI(err)
	}
	fmt.Printf("Posted #%d\n", post.ID)
}

func runLike(ctx context.Context, api *client.Client, args []string, like bool) {
	if len(args) < 1 {
		log.Fatal("Usage: social like|unlike <post-id>")
	}
	postID := parseID(args[0])

	var (
		result *client.LikeResult
		err    error
	)
	if like {
		result, err = api.Like(ctx, postID)
	} else {
		result, err = api.Unlike(ctx, postID)
	}
	if err != nil {
		fatalAPI(err)
	}
	fmt.Printf("Post #%d now has %s\n", postID,
		feedview.LikeLabel(int(result.LikesCount), result.Liked))
}

func runProfile(ctx context.Context, api *client.Client, args []string) {
	if len(args) < 1 {
		log.Fatal("Usage: social profile <username>")
	}
	username := args[0]

	profile, err := api.Profile(ctx, username)
	if err != nil {
		if client.IsNotFound(err) {
			log.Fatalf("No such user: %s", username)
		}
		fatalAPI(err)
	}

	summary := feedview.NewProfileSummary(*profile)
	fmt.Printf("%s %s\n", summary.Name, summary.Handle)
	if summary.Bio != "" {
		fmt.Println(summary.Bio)
	}
	if summary.Location != "" {
		fmt.Println(summary.Location)
	}
	fmt.Println(summary.Joined)
	fmt.Println(summary.Counts)
	if summary.IsFollowing {
		fmt.Println("You follow this user")
	}

	posts, err := api.UserPosts(ctx, username, 1, 5)
	if err != nil {
		fatalAPI(err)
	}
	if len(posts) > 0 {
		fmt.Println()
		for _, view := range feedview.NewFeed(posts, time.Now()) {
			printPost(view)
		}
	}
}

func runFollow(ctx context.Context, api *client.Client, args []string, follow bool) {
	if len(args) < 1 {
		log.Fatal("Usage: social follow|unfollow <username>")
	}

	var err error
	if follow {
		err = api.Follow(ctx, args[0])
	} else {
		err = api.Unfollow(ctx, args[0])
	}
	if err != nil {
		fatalAPI(err)
	}

	if follow {
		fmt.Printf("Now following @%s\n", args[0])
	} else {
		fmt.Printf("Unfollowed @%s\n", args[0])
	}
}

func runReport(ctx context.Context, api *client.Client, args []string) {
	if len(args) < 3 {
		log.Fatal("Usage: social report post|user <id> <reason> [details]")
	}
	id := parseID(args[1])
	reason := args[2]
	details := strings.Join(args[3:], " ")

	var err error
	switch args[0] {
	case "post":
		err = api.ReportPost(ctx, id, reason, details)
	case "user":
		err = api.ReportUser(ctx, id, reason, details)
	default:
		log.Fatalf("Unknown report target: %s", args[0])
	}
	if err != nil {
		fatalAPI(err)
	}
	fmt.Println("Report filed. A moderator will review it.")
}

func printPost(view feedview.PostView) {
	fmt.Printf("#%d %s %s %s\n", view.ID, view.Author, view.Handle, view.Timestamp)
	fmt.Printf("   %s\n", view.Content)
	fmt.Printf("   %s\n\n", view.LikeLabel)
}

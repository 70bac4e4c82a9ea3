// Command manage runs administrative tasks: migrations, fixture loading and
// admin user creation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/media-blog/api-go/config"
	"github.com/media-blog/api-go/controllers"
	"github.com/media-blog/api-go/fixtures"
	"github.com/media-blog/api-go/models"
	"github.com/media-blog/api-go/storage"
	"gorm.io/gorm"
)

const usage = `usage: manage <command> [flags]

commands:
  migrate                                   create or update tables
  loaddata <fixture.json>                   load a JSON fixture
  createsuperuser -username U -password P   create an admin user
`

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	settings := config.Load()
	db := config.InitDB(settings.Debug)
	ctx := context.Background()

	switch os.Args[1] {
	case "migrate":
		// InitDB already migrated
		log.Println("Migrations applied")
	case "loaddata":
		if len(os.Args) < 3 {
			log.Fatal("loaddata needs a fixture path")
		}
		summary, err := fixtures.LoadFile(ctx, db, storage.New(settings), os.Args[2])
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
		log.Printf("Loaded %d groups, %d categories, %d durations, %d links, %d posts (%d files uploaded, %d missing)",
			summary.Groups, summary.Categories, summary.Durations, summary.Links, summary.Posts, summary.Uploaded, summary.Missing)
	case "createsuperuser":
		if err := createSuperuser(db, os.Args[2:]); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func createSuperuser(db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ExitOnError)
	username := fs.String("username", "", "Username of the admin")
	password := fs.String("password", "", "Password of the admin")
	email := fs.String("email", "", "Email of the admin")
	fs.Parse(args)

	if *username == "" || *password == "" {
		return fmt.Errorf("-username and -password are required")
	}

	hashed, err := controllers.HashPassword(*password)
	if err != nil {
		return err
	}

	user := models.User{
		Username: *username,
		Email:    *email,
		Password: hashed,
		IsActive: true,
		IsStaff:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", *username, err)
	}

	log.Printf("Superuser %q created", user.Username)
	return nil
}

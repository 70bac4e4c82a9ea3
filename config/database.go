package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/media-blog/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table in migration order.
var Models = []interface{}{
	&models.User{},
	&models.RefreshToken{},
	&models.Group{},
	&models.Category{},
	&models.Duration{},
	&models.Link{},
	&models.Post{},
}

func dsn() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
}

// NewGormLogger logs slow queries and errors, and every query in debug mode.
func NewGormLogger(debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// ConnectDatabase opens the Postgres connection without migrating.
func ConnectDatabase(debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn()), &gorm.Config{
		Logger: NewGormLogger(debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func InitDB(debug bool) *gorm.DB {
	db, err := ConnectDatabase(debug)
	if err != nil {
		log.Fatal(err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal(err)
	}

	log.Println("Database connected and migrated successfully")
	return db
}

package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/config"
	"github.com/media-blog/api-go/middleware"
	"github.com/media-blog/api-go/routes"
	"github.com/media-blog/api-go/storage"
	"github.com/media-blog/api-go/utils"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	settings := config.Load()
	if settings.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if !settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db := config.InitDB(settings.Debug)

	media := storage.New(settings)
	log.Printf("Media storage: %T, served from %s", media, settings.MediaURL)

	// Create a new Gin router
	r := gin.New()
	r.Use(gin.LoggerWithWriter(os.Stdout), gin.Recovery(), middleware.Telemetry())

	opts := routes.Options{
		DB:       db,
		Media:    media,
		Tokens:   utils.NewTokenIssuer(settings.JWTSecret, settings.AccessTokenLifetime, settings.RefreshTokenLifetime),
		PageSize: settings.PageSize,
	}
	if !settings.StorageAWS && strings.HasPrefix(settings.MediaURL, "/") {
		opts.MediaRoot = settings.MediaRoot
		opts.MediaPath = settings.MediaURL
	}
	routes.SetupRoutes(r, opts)

	log.Printf("Starting server on port %s", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatal(err)
	}
}

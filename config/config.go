package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPageSize        = 10
	defaultAccessLifetime  = 15 * time.Minute
	defaultRefreshLifetime = 7 * 24 * time.Hour
)

// Settings holds everything read from the environment at startup.
type Settings struct {
	Port      string
	Debug     bool
	Host      string
	JWTSecret string
	PageSize  int

	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration

	StorageAWS bool
	MediaRoot  string
	MediaURL   string
	S3         *S3Config
}

// Load reads a .env file when one exists and builds Settings from the environment.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		// No .env in production, the environment is already set
		log.Printf("No .env file loaded: %v", err)
	}

	s := &Settings{
		Port:                 getEnv("PORT", "8080"),
		Debug:                getBool("DEBUG", false),
		Host:                 os.Getenv("HOST"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		PageSize:             getInt("PAGE_SIZE", defaultPageSize),
		AccessTokenLifetime:  getDuration("ACCESS_TOKEN_LIFETIME", defaultAccessLifetime),
		RefreshTokenLifetime: getDuration("REFRESH_TOKEN_LIFETIME", defaultRefreshLifetime),
		StorageAWS:           getBool("STORAGE_AWS", false),
		MediaRoot:            getEnv("MEDIA_ROOT", "media"),
		MediaURL:             getEnv("MEDIA_URL", "/media/"),
	}
	if s.StorageAWS {
		s.S3 = GetS3Config()
		if os.Getenv("MEDIA_URL") == "" {
			s.MediaURL = s.S3.PublicURL
		}
	}
	return s
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go duration strings such as "15m" or "168h".
func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

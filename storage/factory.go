package storage

import (
	"github.com/media-blog/api-go/config"
)

// New picks the S3 backend when STORAGE_AWS is set, local files otherwise.
func New(settings *config.Settings) MediaStorage {
	if settings.StorageAWS && settings.S3 != nil {
		cfg := *settings.S3
		cfg.PublicURL = settings.MediaURL
		return NewS3Storage(&cfg)
	}
	return NewLocalStorage(settings.MediaRoot, settings.MediaURL)
}

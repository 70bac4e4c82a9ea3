// Package storage resolves stored media keys to URLs and saves uploaded media
// files either to S3 or to the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/media-blog/api-go/models"
)

// Upload folders, one per media field kind.
const (
	FolderIcons  = "icons"
	FolderImages = "images"
	FolderAudios = "audios"
	FolderVideos = "videos"
)

var ErrUnknownFolder = errors.New("unknown media folder")

// MediaStorage stores media files under generated keys.
type MediaStorage interface {
	URL(key string) string
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ValidateUpload checks the file name against the rules of the target folder.
func ValidateUpload(folder, filename string) error {
	switch folder {
	case FolderAudios:
		return models.ValidateAudioExtension(filename)
	case FolderVideos:
		return models.ValidateVideoExtension(filename)
	case FolderIcons, FolderImages:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFolder, folder)
	}
}

// generateKey builds <folder>/<unix>_<uuid><ext>, keeping the original extension.
func generateKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%d_%s%s", folder, time.Now().Unix(), uuid.New().String(), ext)
}

// joinURL appends key to base with exactly one slash between them.
func joinURL(base, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(key, "/")
}

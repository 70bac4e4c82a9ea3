package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/media-blog/api-go/config"
	"github.com/media-blog/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "/media/")
	ctx := context.Background()

	key, err := s.Save(ctx, FolderAudios, "Episode.mp3", strings.NewReader("audio bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "audios/"))
	assert.True(t, strings.HasSuffix(key, ".mp3"))
	assert.Equal(t, "/media/"+key, s.URL(key))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "audio bytes", string(data))

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, key))
	ok, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting twice is not an error
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorageRejectsWrongExtension(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "/media/")

	_, err := s.Save(context.Background(), FolderVideos, "clip.mov", strings.NewReader("x"))
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "video", verr.Field)

	_, err = s.Save(context.Background(), "documents", "file.pdf", strings.NewReader("x"))
	assert.True(t, errors.Is(err, ErrUnknownFolder))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads must not touch the disk")
}

func TestLocalStorageKeysStayUnderRoot(t *testing.T) {
	s := NewLocalStorage("/srv/media", "/media/")
	assert.Equal(t, filepath.FromSlash("/srv/media/etc/passwd"), s.path("../../etc/passwd"))
}

func TestGenerateKey(t *testing.T) {
	a := generateKey(FolderImages, "cover.WEBP")
	b := generateKey(FolderImages, "cover.WEBP")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "images/"))
	assert.True(t, strings.HasSuffix(a, ".webp"))
}

func TestURLJoining(t *testing.T) {
	assert.Equal(t, "", joinURL("/media/", ""))
	assert.Equal(t, "/media/icons/a.png", joinURL("/media", "icons/a.png"))
	assert.Equal(t, "/media/icons/a.png", joinURL("/media/", "/icons/a.png"))

	s3 := NewS3Storage(&config.S3Config{
		BucketName: "blog",
		Region:     "us-east-1",
		PublicURL:  "https://blog.s3-accelerate.amazonaws.com/media/",
	})
	assert.Equal(t, "https://blog.s3-accelerate.amazonaws.com/media/videos/a.mp4", s3.URL("videos/a.mp4"))
}

func TestNewPicksBackend(t *testing.T) {
	local := New(&config.Settings{MediaRoot: "media", MediaURL: "/media/"})
	assert.IsType(t, &LocalStorage{}, local)

	remote := New(&config.Settings{
		StorageAWS: true,
		MediaURL:   "https://cdn.example.com/media/",
		S3:         &config.S3Config{BucketName: "blog", Region: "eu-west-1", PublicURL: "https://blog.s3-accelerate.amazonaws.com/media/"},
	})
	require.IsType(t, &S3Storage{}, remote)
	assert.Equal(t, "https://cdn.example.com/media/icons/a.png", remote.URL("icons/a.png"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalStorageFailedWriteLeavesNoFile(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "/media/")

	_, err := s.Save(context.Background(), FolderImages, "cover.png", failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	entries, err := os.ReadDir(filepath.Join(root, FolderImages))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileReportsCreateErrors(t *testing.T) {
	err := writeFile(filepath.Join(t.TempDir(), "missing", "file.png"), strings.NewReader("x"))
	assert.Error(t, err)
}

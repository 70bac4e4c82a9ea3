package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage keeps media under Root; files are served from BaseURL.
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{Root: root, BaseURL: baseURL}
}

func (s *LocalStorage) URL(key string) string {
	return joinURL(s.BaseURL, key)
}

func (s *LocalStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ValidateUpload(folder, filename); err != nil {
		return "", err
	}

	key := generateKey(folder, filename)
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	if err := writeFile(path, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return key, nil
}

// writeFile copies r into a new file at path. A failed close counts as a failed write.
func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close media file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.Root, filepath.FromSlash(filepath.Clean("/"+key)))
}

package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/media-blog/api-go/storage"
)

// MemoryMedia is an in-memory storage.MediaStorage.
type MemoryMedia struct {
	BaseURL string

	mu    sync.Mutex
	files map[string][]byte
	seq   int
}

var _ storage.MediaStorage = (*MemoryMedia)(nil)

func NewMemoryMedia(baseURL string) *MemoryMedia {
	return &MemoryMedia{BaseURL: baseURL, files: map[string][]byte{}}
}

func (m *MemoryMedia) URL(key string) string {
	return strings.TrimSuffix(m.BaseURL, "/") + "/" + key
}

func (m *MemoryMedia) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := storage.ValidateUpload(folder, filename); err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	key := fmt.Sprintf("%s/%d_%s", folder, m.seq, path.Base(filename))
	m.files[key] = bytes.Clone(data)
	return key, nil
}

func (m *MemoryMedia) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	return nil
}

func (m *MemoryMedia) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[key]
	return ok, nil
}

// Keys lists stored keys.
func (m *MemoryMedia) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.files))
	for k := range m.files {
		keys = append(keys, k)
	}
	return keys
}

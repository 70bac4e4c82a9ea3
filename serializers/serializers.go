// Package serializers maps stored records to their API representations.
package serializers

import (
	"strings"
)

// URLResolver turns a stored media key into a retrievable URL.
type URLResolver interface {
	URL(key string) string
}

// Serializer renders records. Relative media URLs are made absolute against
// BaseURL when it is set.
type Serializer struct {
	Media   URLResolver
	BaseURL string
}

func New(media URLResolver) *Serializer {
	return &Serializer{Media: media}
}

// WithBaseURL returns a copy resolving relative media URLs against base,
// usually the scheme and host of the current request.
func (s *Serializer) WithBaseURL(base string) *Serializer {
	c := *s
	c.BaseURL = strings.TrimSuffix(base, "/")
	return &c
}

// mediaURL is nil for unset media.
func (s *Serializer) mediaURL(key string) *string {
	if key == "" {
		return nil
	}
	u := s.Media.URL(key)
	if s.BaseURL != "" && strings.HasPrefix(u, "/") {
		u = s.BaseURL + u
	}
	return &u
}

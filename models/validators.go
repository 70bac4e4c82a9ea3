package models

import (
	"fmt"
	"path"
	"strings"
)

// ValidationError is returned when a record or an uploaded file fails a field check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	VideoExtension = ".mp4"
	AudioExtension = ".mp3"
)

// ValidateVideoExtension rejects video files that are not .mp4
func ValidateVideoExtension(name string) error {
	return validateExtension("video", name, VideoExtension, "the file is not a valid video")
}

// ValidateAudioExtension rejects audio files that are not .mp3
func ValidateAudioExtension(name string) error {
	return validateExtension("audio", name, AudioExtension, "the file is not a valid audio")
}

func validateExtension(field, name, ext, reason string) error {
	if strings.HasSuffix(path.Base(name), ext) {
		return nil
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s, please upload a %s file", reason, ext),
	}
}

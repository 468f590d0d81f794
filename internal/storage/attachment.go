package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrUnsupportedMediaType is returned for any part that is not a JPEG.
	ErrUnsupportedMediaType = errors.New("unsupported media type: only image/jpeg is accepted")

	// ErrPayloadTooLarge is returned for parts exceeding the configured maximum.
	ErrPayloadTooLarge = errors.New("image exceeds maximum allowed size")
)

// unsafeChars matches everything not allowed in a synthesized filename segment.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// AttachmentStore writes accepted image parts to a shared directory and hands
// back the stored filename for the event record to reference.
type AttachmentStore struct {
	dir     string
	maxSize int64
}

// NewAttachmentStore creates a store writing into dir. The directory itself is
// created lazily on first save.
func NewAttachmentStore(dir string, maxSize int64) *AttachmentStore {
	return &AttachmentStore{dir: dir, maxSize: maxSize}
}

// Save validates and persists one image part, returning the stored filename.
//
// The name is synthesized from the plate, the device timestamp and the part
// field so files are human-browsable and unique across concurrent uploads
// from different vehicles. Two submissions for the same plate within the
// same timestamp resolution overwrite each other; last writer wins.
func (s *AttachmentStore) Save(field, licensePlate, dateTime string, data []byte, contentType, hintName string) (string, error) {
	if !strings.EqualFold(contentType, "image/jpeg") {
		return "", ErrUnsupportedMediaType
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrPayloadTooLarge
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	ext := filepath.Ext(hintName)
	if ext == "" {
		ext = ".jpg"
	}

	filename := fmt.Sprintf("%s_%s_%s%s", sanitize(licensePlate), sanitize(dateTime), field, ext)
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image %s: %w", filename, err)
	}

	return filename, nil
}

// Dir returns the directory files are written to.
func (s *AttachmentStore) Dir() string {
	return s.dir
}

// sanitize replaces filesystem-unsafe characters so device-reported values
// (ISO timestamps with colons, plates with spaces) form valid filenames.
func sanitize(segment string) string {
	return unsafeChars.ReplaceAllString(segment, "-")
}

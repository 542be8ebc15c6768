// Package utils provides helpers for file names and unique IDs.
//
// Functions:
//   - SanitizeFilename: Returns a display-safe name for an uploaded file.
//   - AttachmentHeader: Returns a Content-Disposition value for a download.
//   - GenerateUUID: Returns a new UUID string.
package utils

import (
	"mime"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9 ._-]`)

func SanitizeFilename(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	if base == "." || base == "/" {
		return "image"
	}
	safe := unsafeChars.ReplaceAllString(base, "_")
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}

// AttachmentHeader falls back to an ASCII-only name when the mime package
// cannot encode filename.
func AttachmentHeader(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": SanitizeFilename(filename)})
}

func GenerateUUID() string {
	return uuid.New().String()
}

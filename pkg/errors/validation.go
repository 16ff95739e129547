package errors

import (
	"strings"
	"unicode"
)

// ValidateArchivePath checks a user-supplied archive path before it is opened.
//
// Validation rules:
//   - Path cannot be empty
//   - No control characters or null bytes
//
// The file name is not checked; whether the file is a zip archive is left
// to the reader.
func ValidateArchivePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "archive path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "archive path contains invalid control characters")
		}
	}
	return nil
}

// ValidateEntryID rejects identifiers that cannot address a catalog page.
func ValidateEntryID(kind string, id int) error {
	if id <= 0 {
		return New(ErrCodeInvalidManifest, "%s must be positive, got %d", kind, id)
	}
	return nil
}

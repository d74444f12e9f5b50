// ABOUTME: Validation of new document names
// ABOUTME: Enforces non-empty, flat names with an allowed extension

package documents

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
)

// Validation errors
var (
	ErrEmptyName    = errors.New("document name is required")
	ErrBadExtension = errors.New("document extension not allowed")
	ErrInvalidName  = errors.New("document name must not contain path separators")
)

// AllowedExtensions lists the extensions a new document may carry
var AllowedExtensions = []string{".txt", ".md", ".jpg", ".png"}

// ValidateNewFilename checks a proposed document name and returns it trimmed
// of surrounding whitespace. Names without an extension are accepted.
func ValidateNewFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}

	// "." and ".." have extension "." so flatness is checked first
	if !isFlatName(name) {
		return "", ErrInvalidName
	}

	ext := filepath.Ext(name)
	if ext != "" && !slices.Contains(AllowedExtensions, ext) {
		return "", ErrBadExtension
	}

	return name, nil
}

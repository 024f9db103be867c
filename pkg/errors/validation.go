package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// presetNameRegex matches catalog-style names: lowercase words joined by dashes.
var presetNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidatePresetName checks that name looks like a catalog preset name. It
// does not check that the preset exists.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "preset name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "preset name too long (max 64 characters)")
	}
	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid preset name: %q", name)
	}
	return nil
}

// ValidateOutputPath validates a file path an artifact will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

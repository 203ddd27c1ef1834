package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node identifiers accepted from untrusted input.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier coming from a graph file or API request.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeMalformedGraph, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeMalformedGraph, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedGraph, "node id %q contains invalid control characters", id)
		}
	}

	return nil
}

// ValidateGraphPath validates the path of a graph file given on the command line.
// Only JSON files are accepted, matching the loader's input format.
func ValidateGraphPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "graph path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "graph path contains invalid characters")
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return New(ErrCodeInvalidInput, "graph file must have a .json extension, got %q", filepath.Base(path))
	}

	return nil
}

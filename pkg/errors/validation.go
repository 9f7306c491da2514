package errors

import (
	"bytes"
	"strings"
	"unicode"
)

// MaxSourceSize bounds the DOT text accepted from untrusted callers (HTTP).
const MaxSourceSize = 1 << 20

// ValidateSource validates DOT source text before it reaches the layout
// engine. It rejects empty input, oversized input and null bytes; the DOT
// grammar itself is checked by Graphviz.
func ValidateSource(src []byte) error {
	if len(bytes.TrimSpace(src)) == 0 {
		return New(ErrCodeInvalidDOT, "graph source cannot be empty")
	}

	if len(src) > MaxSourceSize {
		return New(ErrCodeInvalidDOT, "graph source too large (max %d bytes)", MaxSourceSize)
	}

	if bytes.IndexByte(src, 0) >= 0 {
		return New(ErrCodeInvalidDOT, "graph source contains null bytes")
	}

	return nil
}

// ValidatePath validates an output path supplied on the command line or in a
// config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) when relative
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if !strings.HasPrefix(path, "/") {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
			}
		}
	}

	return nil
}

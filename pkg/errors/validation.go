package errors

import (
	"strings"
	"unicode"
)

// ValidateNodePath validates a dot-joined node path for lookups.
// It rejects paths that cannot possibly name a graph node.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - No empty segments (leading, trailing, or doubled dots)
//   - Maximum length of 500 characters
func ValidateNodePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "node path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "node path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "node path contains invalid characters")
		}
	}

	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return New(ErrCodeInvalidPath, "node path contains an empty segment: %q", path)
		}
	}

	return nil
}

// ValidateOutputFormat validates a render format name against the set of
// supported formats.
func ValidateOutputFormat(format string, supported []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "output format cannot be empty")
	}
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported output format %q (supported: %s)",
		format, strings.Join(supported, ", "))
}

// ValidateEngine validates a layout engine name.
func ValidateEngine(engine string, supported []string) error {
	if engine == "" {
		return New(ErrCodeInvalidEngine, "layout engine cannot be empty")
	}
	for _, s := range supported {
		if engine == s {
			return nil
		}
	}
	return New(ErrCodeInvalidEngine, "unknown layout engine %q (supported: %s)",
		engine, strings.Join(supported, ", "))
}

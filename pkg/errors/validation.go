package errors

import (
	"strings"
	"unicode"
)

// MaxIdentifierLength is the longest identifier the container can describe:
// the length prefix is a single byte.
const MaxIdentifierLength = 255

// ValidateIdentifier checks a design identifier (module, wire, cell or port
// name) before it reaches the encoder.
//
// The rules are deliberately loose; the cipher table decides which characters
// are encodable. This only rejects names no netlist tool would emit:
//   - No empty names
//   - No control characters or null bytes
//   - No whitespace
func ValidateIdentifier(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidDesign, "%s name cannot be empty", kind)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDesign, "%s name %q contains control characters", kind, name)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidDesign, "%s name %q contains whitespace", kind, name)
		}
	}
	return nil
}

// ValidateOutputPath validates the destination of an exported container.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	return nil
}

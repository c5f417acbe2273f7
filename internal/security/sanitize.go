package security

import (
	"fmt"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds pantry ids and basket names.
const maxIdentifierLength = 256

// ValidateIdentifier checks that value is safe to embed as a single URL path
// segment under the basket endpoint. kind names the identifier in errors.
// Rejects:
// - Empty values
// - "." and ".." (resolve to a different path)
// - Path separators ("/" and "\")
// - Null bytes and other control characters
// - Values longer than 256 bytes
func ValidateIdentifier(kind, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}

	if len(value) > maxIdentifierLength {
		return fmt.Errorf("%s exceeds maximum length of %d characters", kind, maxIdentifierLength)
	}

	if value == "." || value == ".." {
		return fmt.Errorf("%s cannot be a relative path component: %q", kind, value)
	}

	if strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("%s cannot contain path separators: %q", kind, value)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return fmt.Errorf("%s contains control character: %q", kind, value)
		}
	}

	return nil
}

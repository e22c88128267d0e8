package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// tagPrefixRegex matches tag prefixes: letters, optionally followed by
// letters, digits, '-' or '_' (e.g. "K", "TT-", "F_Q").
var tagPrefixRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_\-]*$`)

// ValidateTagPrefix validates a component tag prefix.
func ValidateTagPrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidTag, "tag prefix cannot be empty")
	}
	if !tagPrefixRegex.MatchString(prefix) {
		return New(ErrCodeInvalidTag, "invalid tag prefix: %q", prefix)
	}
	return nil
}

// ValidateTerminalID validates a terminal strip identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - Maximum length of 64 characters
//
// Reference terminals such as "PLC:DI" are valid ids.
func ValidateTerminalID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTerminal, "terminal id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidTerminal, "terminal id too long (max 64 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidTerminal, "terminal id %q contains whitespace or control characters", id)
		}
	}
	return nil
}

// ValidatePath validates an output file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}

// Package security validates the untrusted inputs the toolbox accepts:
// vault entry names and secret-file permissions.
package security

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"
)

var (
	ErrEmptyName    = errors.New("empty entry name not allowed")
	ErrNameTooLong  = errors.New("entry name too long")
	ErrInvalidName  = errors.New("invalid entry name")
	ErrInsecureMode = errors.New("insecure file permissions")
)

// MaxNameLength bounds vault entry names.
const MaxNameLength = 255

// ValidateEntryName validates a user-provided vault entry name and returns it
// trimmed. It rejects:
//   - Empty names
//   - Names longer than MaxNameLength bytes
//   - Names containing path separators or control characters
//   - Names starting with a dot (reserved for internal keys)
func ValidateEntryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrNameTooLong, len(name), MaxNameLength)
	}
	if strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %s (names starting with '.' are reserved)", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, "/\\") {
		return "", fmt.Errorf("%w: %s (path separators not allowed)", ErrInvalidName, name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %s (control characters not allowed)", ErrInvalidName, name)
		}
	}
	return name, nil
}

// CheckSecretFileMode verifies that path is a regular file readable only by
// its owner (mode 0600 or 0400).
func CheckSecretFileMode(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}

	mode := info.Mode().Perm()
	if mode != fs.FileMode(0600) && mode != fs.FileMode(0400) {
		return fmt.Errorf("%w: %s has mode %04o (must be 0600 or 0400)", ErrInsecureMode, path, mode)
	}
	return nil
}

package totp

import (
	"fmt"
	"os"
	"strings"

	"github.com/live-labs/cryptbox/internal/security"
)

// DefaultSeedFile is the seed file looked up when no path is given.
const DefaultSeedFile = "seed.txt"

// LoadSeed reads a base32 seed file and returns the decoded secret. The file
// must exist, be non-empty, and be readable only by its owner (mode 0600 or
// 0400); anything more permissive is rejected.
func LoadSeed(path string) ([]byte, error) {
	if err := security.CheckSecretFileMode(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	seed := strings.TrimSpace(string(raw))
	if seed == "" {
		return nil, fmt.Errorf("seed file %s is empty", path)
	}

	return DecodeSecret(seed)
}

package totp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, dir, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, "seed.txt")
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}
	// WriteFile perm is subject to umask; force the exact mode
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("Failed to chmod seed file: %v", err)
	}
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, t.TempDir(), "JBSWY3DPEHPK3PXP\n", 0600)

	secret, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}

	want := []byte{0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x21, 0xde, 0xad, 0xbe, 0xef}
	if !bytes.Equal(secret, want) {
		t.Errorf("Secret: got %x, want %x", secret, want)
	}
}

func TestLoadSeedReadOnly(t *testing.T) {
	path := writeSeed(t, t.TempDir(), "JBSWY3DPEHPK3PXP", 0400)

	if _, err := LoadSeed(path); err != nil {
		t.Fatalf("LoadSeed with 0400 should succeed: %v", err)
	}
}

func TestLoadSeedInsecurePermissions(t *testing.T) {
	path := writeSeed(t, t.TempDir(), "JBSWY3DPEHPK3PXP", 0644)

	if _, err := LoadSeed(path); err == nil {
		t.Error("Expected error for world-readable seed file")
	}
}

func TestLoadSeedEmpty(t *testing.T) {
	path := writeSeed(t, t.TempDir(), "  \n", 0600)

	if _, err := LoadSeed(path); err == nil {
		t.Error("Expected error for empty seed file")
	}
}

func TestLoadSeedMissing(t *testing.T) {
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Expected error for missing seed file")
	}
}

package vault

import (
	"strings"
	"testing"
)

func TestUnifiedDiffIdentical(t *testing.T) {
	data := []byte("line one\nline two\n")
	if diff := UnifiedDiff("entry", data, data); diff != "" {
		t.Errorf("Identical content should produce empty diff, got %q", diff)
	}
}

func TestUnifiedDiffChanged(t *testing.T) {
	stored := []byte("line one\nline two\nline three\n")
	local := []byte("line one\nline 2\nline three\n")

	diff := UnifiedDiff("entry", stored, local)
	if diff == "" {
		t.Fatal("Expected non-empty diff")
	}
	if !strings.Contains(diff, "--- vault/entry") || !strings.Contains(diff, "+++ local/entry") {
		t.Errorf("Diff missing headers:\n%s", diff)
	}
}

func TestUnifiedDiffBinary(t *testing.T) {
	stored := []byte("text content")
	local := []byte{0x00, 0x01, 0x02}

	diff := UnifiedDiff("entry", stored, local)
	if !strings.Contains(diff, "Binary entry") {
		t.Errorf("Expected binary notice, got %q", diff)
	}
}

func TestDiffEntry(t *testing.T) {
	vault := New(t.TempDir())
	password := []byte("test123")

	if err := vault.Init(password); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := vault.Put("config", []byte("key=old\n"), password); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	diff, err := vault.DiffEntry("config", []byte("key=new\n"), password)
	if err != nil {
		t.Fatalf("DiffEntry failed: %v", err)
	}
	if diff == "" {
		t.Error("Expected non-empty diff for changed content")
	}

	same, err := vault.DiffEntry("config", []byte("key=old\n"), password)
	if err != nil {
		t.Fatalf("DiffEntry failed: %v", err)
	}
	if same != "" {
		t.Errorf("Expected empty diff for identical content, got %q", same)
	}
}

package vault

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// isText reports whether data looks like text rather than binary content
func isText(data []byte) bool {
	return utf8.Valid(data) && !bytes.ContainsRune(data, 0)
}

// UnifiedDiff generates a unified diff between the stored and local versions
// of an entry. Returns an empty string if the two are identical.
func UnifiedDiff(name string, stored, local []byte) string {
	if bytes.Equal(stored, local) {
		return ""
	}

	if !isText(stored) || !isText(local) {
		return fmt.Sprintf("Binary entry %s has changed\n", name)
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	storedStr, localStr := string(stored), string(local)
	a, b, lineArray := dmp.DiffLinesToChars(storedStr, localStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(storedStr, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- vault/%s\n", name))
	result.WriteString(fmt.Sprintf("+++ local/%s\n", name))
	result.WriteString(dmp.PatchToText(patches))

	return result.String()
}

// DiffEntry decrypts the entry stored under name and diffs it against local
// data. Used by the diff command and the overwrite preview in put.
func (v *Vault) DiffEntry(name string, local []byte, password []byte) (string, error) {
	stored, err := v.Get(name, password)
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(stored)

	return UnifiedDiff(name, stored, local), nil
}

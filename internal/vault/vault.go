package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/security"
	"github.com/live-labs/cryptbox/internal/storage"
)

const (
	// VaultFile is the database file name, created in the working directory.
	VaultFile = ".cryptbox"

	passwordCheckString = "cryptbox-password-check"
)

var (
	ErrNotInitialized = errors.New("cryptbox not initialized")
	ErrAlreadyExists  = errors.New("cryptbox already exists")
	ErrWrongPassword  = errors.New("wrong password")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrNotText        = errors.New("secret is not valid UTF-8 text")
)

// Vault manages encrypted named secrets backed by a bbolt database. Every
// entry is a complete sealed envelope, so the vault itself holds no key
// material and each entry re-derives its key from the one vault password.
type Vault struct {
	path  string
	codec *crypto.Codec
}

// New creates a Vault instance rooted at dir
func New(dir string) *Vault {
	return &Vault{
		path:  filepath.Join(dir, VaultFile),
		codec: crypto.NewCodec(),
	}
}

// Path returns the vault database path
func (v *Vault) Path() string {
	return v.path
}

// Exists reports whether the vault database file exists
func (v *Vault) Exists() bool {
	_, err := os.Stat(v.path)
	return err == nil
}

// open opens the vault database, failing if it was never initialized
func (v *Vault) open() (*storage.Store, error) {
	if !v.Exists() {
		return nil, ErrNotInitialized
	}
	db, err := storage.Open(v.path)
	if err != nil {
		return nil, err
	}
	initialized, err := db.IsInitialized()
	if err != nil || !initialized {
		db.Close()
		if err != nil {
			return nil, err
		}
		return nil, ErrNotInitialized
	}
	return db, nil
}

// Init creates a new vault protected by password
func (v *Vault) Init(password []byte) error {
	if v.Exists() {
		return ErrAlreadyExists
	}
	if len(password) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	db, err := storage.Open(v.path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}

	// Seal a known value so later operations can verify the password
	// without decrypting any entry
	check, err := v.codec.Encrypt(passwordCheckString, string(password))
	if err != nil {
		return fmt.Errorf("failed to create password check: %w", err)
	}
	return db.SetCheck([]byte(check))
}

// VerifyPassword checks the password against the stored check envelope
func (v *Vault) VerifyPassword(password []byte) error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return verifyCheck(db, v.codec, password)
}

func verifyCheck(db *storage.Store, codec *crypto.Codec, password []byte) error {
	check, err := db.GetCheck()
	if err != nil {
		return fmt.Errorf("failed to read password check: %w", err)
	}

	plaintext, err := codec.Decrypt(string(check), string(password))
	if err != nil {
		if errors.Is(err, crypto.ErrAuthenticationFailed) {
			return ErrWrongPassword
		}
		return err
	}
	if plaintext != passwordCheckString {
		return ErrWrongPassword
	}
	return nil
}

// Put seals data under name. Returns true if an existing entry was replaced.
// Data must be UTF-8 text; the envelope format is string-oriented.
func (v *Vault) Put(name string, data []byte, password []byte) (bool, error) {
	name, err := security.ValidateEntryName(name)
	if err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, fmt.Errorf("secret cannot be empty")
	}
	if !utf8.Valid(data) {
		return false, ErrNotText
	}

	db, err := v.open()
	if err != nil {
		return false, err
	}
	defer db.Close()

	if err := verifyCheck(db, v.codec, password); err != nil {
		return false, err
	}

	replaced, err := db.HasSecret(name)
	if err != nil {
		return false, err
	}

	envelope, err := v.codec.Encrypt(string(data), string(password))
	if err != nil {
		return false, err
	}
	if err := db.PutSecret(name, []byte(envelope), int64(len(data))); err != nil {
		return false, fmt.Errorf("failed to store entry: %w", err)
	}
	if err := db.UpdateModified(); err != nil {
		return false, err
	}

	return replaced, nil
}

// Get opens the entry stored under name and returns its plaintext
func (v *Vault) Get(name string, password []byte) ([]byte, error) {
	name, err := security.ValidateEntryName(name)
	if err != nil {
		return nil, err
	}

	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return getEntry(db, v.codec, name, password)
}

func getEntry(db *storage.Store, codec *crypto.Codec, name string, password []byte) ([]byte, error) {
	envelope, err := db.GetSecret(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	plaintext, err := codec.Decrypt(string(envelope), string(password))
	if err != nil {
		if errors.Is(err, crypto.ErrAuthenticationFailed) {
			return nil, ErrWrongPassword
		}
		return nil, err
	}
	return []byte(plaintext), nil
}

// Remove deletes entries from the vault. The password is verified first so a
// typo cannot silently destroy data behind a stale keyring entry.
func (v *Vault) Remove(names []string, password []byte) error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := verifyCheck(db, v.codec, password); err != nil {
		return err
	}

	for _, name := range names {
		name, err := security.ValidateEntryName(name)
		if err != nil {
			return err
		}
		found, err := db.HasSecret(name)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrEntryNotFound, name)
		}
		if err := db.DeleteSecret(name); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}

	return db.UpdateModified()
}

// List returns the public index entries, sorted by name. No password needed.
func (v *Vault) List() ([]storage.IndexEntry, error) {
	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	entries, err := db.ListEntries()
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Status describes the vault without requiring a password
type Status struct {
	Entries      []storage.IndexEntry
	LastModified time.Time
}

// GetStatus returns the vault status. No password needed.
func (v *Vault) GetStatus() (*Status, error) {
	db, err := v.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	entries, err := db.ListEntries()
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	modified, err := db.GetModified()
	if err != nil {
		return nil, err
	}

	return &Status{Entries: entries, LastModified: modified}, nil
}

// ChangePassword re-encrypts every entry with a key derived from newPassword
func (v *Vault) ChangePassword(current, newPassword []byte) error {
	if len(newPassword) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := verifyCheck(db, v.codec, current); err != nil {
		return err
	}

	entries, err := db.ListEntries()
	if err != nil {
		return err
	}

	// Decrypt everything first; nothing is rewritten until all entries open
	plaintexts := make(map[string][]byte, len(entries))
	defer func() {
		for _, p := range plaintexts {
			crypto.ClearBytes(p)
		}
	}()
	for _, entry := range entries {
		plaintext, err := getEntry(db, v.codec, entry.Name, current)
		if err != nil {
			return fmt.Errorf("failed to decrypt %s: %w", entry.Name, err)
		}
		plaintexts[entry.Name] = plaintext
	}

	for name, plaintext := range plaintexts {
		envelope, err := v.codec.Encrypt(string(plaintext), string(newPassword))
		if err != nil {
			return fmt.Errorf("failed to re-encrypt %s: %w", name, err)
		}
		if err := db.PutSecret(name, []byte(envelope), int64(len(plaintext))); err != nil {
			return fmt.Errorf("failed to store %s: %w", name, err)
		}
	}

	check, err := v.codec.Encrypt(passwordCheckString, string(newPassword))
	if err != nil {
		return fmt.Errorf("failed to update password check: %w", err)
	}
	if err := db.SetCheck([]byte(check)); err != nil {
		return err
	}

	return db.UpdateModified()
}

// Compact reclaims unused space in the vault database
func (v *Vault) Compact() error {
	db, err := v.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Compact()
}

// GetVaultID returns the vault's stable identifier, if one exists
func (v *Vault) GetVaultID() (string, error) {
	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetVaultID()
}

// GetOrCreateVaultID returns the vault's stable identifier, creating it on
// first use. The ID keys OS keyring entries for this vault.
func (v *Vault) GetOrCreateVaultID() (string, error) {
	db, err := v.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetOrCreateVaultID()
}

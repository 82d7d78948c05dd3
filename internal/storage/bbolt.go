package storage

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket  = []byte("config")  // Format version, timestamps, vault ID, check envelope - unencrypted
	IndexBucket   = []byte("index")   // Public entry list for ls/status - unencrypted
	SecretsBucket = []byte("secrets") // Envelope text per entry
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigCheck    = []byte("check")
	ConfigVaultID  = []byte("vault_id")
)

// Store provides BBolt-based storage for the cryptbox vault
type Store struct {
	db *bolt.DB
}

// Open opens or creates a vault database
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the bucket structure for a new vault
func (s *Store) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, IndexBucket, SecretsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		now := time.Now()
		created, _ := now.MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Store) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// SetCheck stores the password-check envelope
func (s *Store) SetCheck(envelope []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		return config.Put(ConfigCheck, envelope)
	})
}

// GetCheck retrieves the password-check envelope
func (s *Store) GetCheck() ([]byte, error) {
	var check []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		check = config.Get(ConfigCheck)
		if check == nil {
			return fmt.Errorf("password check not found")
		}
		// Make a copy since the slice is only valid during the transaction
		check = append([]byte(nil), check...)
		return nil
	})
	return check, err
}

// UpdateModified updates the last modified timestamp
func (s *Store) UpdateModified() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		now := time.Now()
		modified, _ := now.MarshalBinary()
		return config.Put(ConfigModified, modified)
	})
}

// GetModified retrieves the last modified timestamp
func (s *Store) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// GetVaultID retrieves the vault ID from the config bucket
func (s *Store) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves the existing vault ID or generates a new one.
// The ID keys keyring entries, so it must be stable for the vault's lifetime.
func (s *Store) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate vault ID: %w", err)
	}
	vaultID = hex.EncodeToString(b)

	err = s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

// IndexEntry represents an entry in the public index
type IndexEntry struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"` // Plaintext size in bytes
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// PutSecret stores an envelope under name and updates the index entry
func (s *Store) PutSecret(name string, envelope []byte, plaintextSize int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		secrets := tx.Bucket(SecretsBucket)
		if err := secrets.Put([]byte(name), envelope); err != nil {
			return err
		}

		index := tx.Bucket(IndexBucket)
		now := time.Now()
		entry := IndexEntry{Name: name, Size: plaintextSize, Created: now, Modified: now}
		if data := index.Get([]byte(name)); data != nil {
			var existing IndexEntry
			if err := json.Unmarshal(data, &existing); err == nil {
				entry.Created = existing.Created
			}
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return index.Put([]byte(name), data)
	})
}

// GetSecret retrieves the envelope stored under name
func (s *Store) GetSecret(name string) ([]byte, error) {
	var envelope []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		secrets := tx.Bucket(SecretsBucket)
		if secrets == nil {
			return fmt.Errorf("secrets bucket not found")
		}
		envelope = secrets.Get([]byte(name))
		if envelope == nil {
			return fmt.Errorf("entry not found")
		}
		envelope = append([]byte(nil), envelope...)
		return nil
	})
	return envelope, err
}

// HasSecret reports whether an entry exists under name
func (s *Store) HasSecret(name string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		secrets := tx.Bucket(SecretsBucket)
		if secrets == nil {
			return nil
		}
		found = secrets.Get([]byte(name)) != nil
		return nil
	})
	return found, err
}

// DeleteSecret removes an entry and its index record
func (s *Store) DeleteSecret(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		secrets := tx.Bucket(SecretsBucket)
		if err := secrets.Delete([]byte(name)); err != nil {
			return err
		}
		index := tx.Bucket(IndexBucket)
		return index.Delete([]byte(name))
	})
}

// ListEntries returns all index entries
func (s *Store) ListEntries() ([]IndexEntry, error) {
	var entries []IndexEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		index := tx.Bucket(IndexBucket)
		if index == nil {
			return fmt.Errorf("index bucket not found")
		}
		return index.ForEach(func(k, v []byte) error {
			var entry IndexEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after deleting entries to reclaim disk space.
func (s *Store) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	// Copy all buckets
	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})
	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy database: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	// Swap in the compacted copy and reopen
	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close database: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		return fmt.Errorf("failed to replace database: %w", err)
	}

	db, err := bolt.Open(srcPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}
	s.db = db

	return nil
}

// Package storage provides BBolt-based persistence for the cryptbox vault.
//
// Bucket layout:
//   - config: format version, timestamps, vault ID, password-check envelope
//   - index: public entry names with sizes and timestamps (for ls/status
//     without a password)
//   - secrets: one sealed envelope per entry name
//
// Every value in the secrets bucket is a complete self-describing envelope,
// so the database stores no key material and no shared salt.
package storage

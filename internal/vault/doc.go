// Package vault provides the encrypted named-secret store.
//
// Core operations include:
//   - Init: Create a new vault protected by a password
//   - Put/Get/Remove: Seal, open, and delete named entries
//   - ChangePassword: Re-encrypt every entry under a new password
//   - DiffEntry: Unified diff between a stored entry and local data
//
// Each entry is sealed as an independent envelope with its own salt and
// nonce, so the vault database never stores anything password-derived. A
// check envelope in the config bucket lets operations verify the password
// before touching entries.
package vault

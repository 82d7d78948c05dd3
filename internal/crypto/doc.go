// Package crypto implements the cryptbox sealed-string format.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte key derived from password via PBKDF2
//   - 16-byte random salt per encryption operation
//   - 12-byte random nonce per encryption operation
//   - Authenticated encryption prevents tampering
//
// Key derivation uses PBKDF2-HMAC-SHA256 with 250,000 iterations. The salt
// is embedded in the envelope, so every envelope is self-describing: no
// state is shared between encryptions and no key material is ever stored.
//
// Envelope layout (base64-encoded for transport):
//
//	version (1 byte, 0x08) | salt (16) | nonce (12) | ciphertext+tag (>=17)
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
package crypto

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Version is the current envelope format version byte. Decoding rejects any
// other value outright; field layout is not guaranteed compatible across
// versions.
const Version = 0x08

// MinEnvelopeSize is the smallest valid decoded envelope:
// version + salt + nonce + tag + at least one ciphertext byte.
const MinEnvelopeSize = 1 + SaltSize + NonceSize + TagSize + 1

var (
	ErrInvalidInput       = errors.New("plaintext and password cannot be empty")
	ErrMalformedEnvelope  = errors.New("malformed envelope")
	ErrUnsupportedVersion = errors.New("unsupported envelope version")

	// ErrAuthenticationFailed covers both a wrong password and tampered or
	// corrupted data. The two causes are indistinguishable on purpose.
	ErrAuthenticationFailed = errors.New("authentication failed: wrong password or tampered data")
)

// Codec seals plaintext into password-protected envelopes and opens them.
// It keeps no state between calls; a single Codec is safe for concurrent use.
//
// Envelope layout (before base64):
//
//	version (1) | salt (16) | nonce (12) | ciphertext+tag (>=17)
type Codec struct {
	rand io.Reader
}

// NewCodec returns a Codec backed by the operating system CSPRNG.
func NewCodec() *Codec {
	return &Codec{rand: rand.Reader}
}

// NewCodecWithRand returns a Codec drawing salts and nonces from r. Intended
// for deterministic tests; production code must never substitute a
// non-cryptographic source.
func NewCodecWithRand(r io.Reader) *Codec {
	return &Codec{rand: r}
}

// Encrypt seals plaintext with a key derived from password and returns the
// base64-encoded envelope. A fresh salt and nonce are drawn on every call, so
// encrypting the same input twice yields different envelopes.
func (c *Codec) Encrypt(plaintext, password string) (string, error) {
	if plaintext == "" || password == "" {
		return "", ErrInvalidInput
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := DeriveKey([]byte(password), salt)
	defer ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	envelope := make([]byte, 0, 1+SaltSize+NonceSize+len(sealed))
	envelope = append(envelope, Version)
	envelope = append(envelope, salt...)
	envelope = append(envelope, nonce...)
	envelope = append(envelope, sealed...)

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// Decrypt opens a base64-encoded envelope with the given password and returns
// the recovered plaintext. Failures map to the package sentinel errors:
// ErrMalformedEnvelope for transport or length problems, ErrUnsupportedVersion
// for a version byte mismatch, ErrAuthenticationFailed for everything the
// cipher rejects.
func (c *Codec) Decrypt(envelopeText, password string) (string, error) {
	if password == "" {
		return "", ErrInvalidInput
	}

	data, err := decodeTransport(envelopeText)
	if err != nil {
		return "", err
	}

	if len(data) < MinEnvelopeSize {
		return "", fmt.Errorf("%w: data too short (%d bytes, need at least %d)",
			ErrMalformedEnvelope, len(data), MinEnvelopeSize)
	}
	if data[0] != Version {
		return "", fmt.Errorf("%w: %#02x", ErrUnsupportedVersion, data[0])
	}

	salt := data[1 : 1+SaltSize]
	nonce := data[1+SaltSize : 1+SaltSize+NonceSize]
	sealed := data[1+SaltSize+NonceSize:]

	key := DeriveKey([]byte(password), salt)
	defer ClearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrAuthenticationFailed
	}
	if !utf8.Valid(plaintext) {
		// Cannot happen for envelopes produced by Encrypt, but must not
		// crash or leak raw bytes to the caller.
		return "", fmt.Errorf("%w: recovered data is not valid UTF-8", ErrAuthenticationFailed)
	}

	return string(plaintext), nil
}

var defaultCodec = NewCodec()

// Encrypt seals plaintext using the default OS-backed Codec.
func Encrypt(plaintext, password string) (string, error) {
	return defaultCodec.Encrypt(plaintext, password)
}

// Decrypt opens an envelope using the default OS-backed Codec.
func Decrypt(envelopeText, password string) (string, error) {
	return defaultCodec.Decrypt(envelopeText, password)
}

// decodeTransport decodes base64 envelope text, restoring any padding that
// was stripped in transit (shells and copy/paste commonly drop trailing '=').
func decodeTransport(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrMalformedEnvelope, err)
	}
	return data, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintexts := []string{
		"hello world",
		"a",
		"multi\nline\ncontent",
		"unicode: жизнь 日本語 🔐",
	}

	for _, plaintext := range plaintexts {
		envelope, err := Encrypt(plaintext, "correct horse")
		if err != nil {
			t.Fatalf("Encrypt(%q) failed: %v", plaintext, err)
		}

		recovered, err := Decrypt(envelope, "correct horse")
		if err != nil {
			t.Fatalf("Decrypt failed for %q: %v", plaintext, err)
		}
		if recovered != plaintext {
			t.Errorf("Round trip mismatch: got %q, want %q", recovered, plaintext)
		}
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	envelope, err := Encrypt("hello world", "correct horse")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	_, err = Decrypt(envelope, "wrong horse")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("Expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestEncryptEmptyInputs(t *testing.T) {
	if _, err := Encrypt("", "password"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Empty plaintext: expected ErrInvalidInput, got %v", err)
	}
	if _, err := Encrypt("plaintext", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Empty password: expected ErrInvalidInput, got %v", err)
	}
	if _, err := Decrypt("whatever", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Empty password on decrypt: expected ErrInvalidInput, got %v", err)
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	envelope, err := Encrypt("hello world", "correct horse")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}

	// Flip each byte of the ciphertext+tag region in turn
	start := 1 + SaltSize + NonceSize
	for i := start; i < len(raw); i++ {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01

		_, err := Decrypt(base64.StdEncoding.EncodeToString(tampered), "correct horse")
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Errorf("Byte %d: expected ErrAuthenticationFailed, got %v", i, err)
		}
	}
}

func TestDecryptUnsupportedVersion(t *testing.T) {
	envelope, err := Encrypt("hello world", "correct horse")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}

	for _, version := range []byte{0x00, 0x07, 0x09, 0xff} {
		tampered := append([]byte(nil), raw...)
		tampered[0] = version

		_, err := Decrypt(base64.StdEncoding.EncodeToString(tampered), "correct horse")
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("Version %#02x: expected ErrUnsupportedVersion, got %v", version, err)
		}
	}
}

func TestDecryptTooShort(t *testing.T) {
	// One byte below the minimum envelope size
	short := make([]byte, MinEnvelopeSize-1)
	short[0] = Version

	_, err := Decrypt(base64.StdEncoding.EncodeToString(short), "password")
	if !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("Expected ErrMalformedEnvelope, got %v", err)
	}
	if !strings.Contains(err.Error(), "too short") {
		t.Errorf("Error should mention insufficient length, got %q", err.Error())
	}
}

func TestDecryptInvalidBase64(t *testing.T) {
	_, err := Decrypt("!!!not-base64!!!", "password")
	if !errors.Is(err, ErrMalformedEnvelope) {
		t.Errorf("Expected ErrMalformedEnvelope, got %v", err)
	}
}

func TestDecryptStrippedPadding(t *testing.T) {
	envelope, err := Encrypt("padding test value", "correct horse")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	stripped := strings.TrimRight(envelope, "=")
	if stripped == envelope {
		// Force a length that produces padding
		envelope, err = Encrypt("padding test value x", "correct horse")
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		stripped = strings.TrimRight(envelope, "=")
	}

	recovered, err := Decrypt(stripped, "correct horse")
	if err != nil {
		t.Fatalf("Decrypt of unpadded envelope failed: %v", err)
	}
	if recovered != "padding test value" && recovered != "padding test value x" {
		t.Errorf("Unexpected plaintext %q", recovered)
	}
}

func TestEncryptNonDeterministic(t *testing.T) {
	first, err := Encrypt("same input", "same password")
	if err != nil {
		t.Fatalf("First Encrypt failed: %v", err)
	}
	second, err := Encrypt("same input", "same password")
	if err != nil {
		t.Fatalf("Second Encrypt failed: %v", err)
	}

	if first == second {
		t.Error("Two encryptions of the same input produced identical envelopes")
	}

	// Both must still decrypt independently
	for _, envelope := range []string{first, second} {
		recovered, err := Decrypt(envelope, "same password")
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if recovered != "same input" {
			t.Errorf("Got %q, want %q", recovered, "same input")
		}
	}
}

func TestConcreteScenario(t *testing.T) {
	envelope, err := Encrypt("hello world", "correct horse")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	recovered, err := Decrypt(envelope, "correct horse")
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if recovered != "hello world" {
		t.Errorf("Got %q, want %q", recovered, "hello world")
	}

	if _, err := Decrypt(envelope, "wrong horse"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("Expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestCodecWithDeterministicRand(t *testing.T) {
	// Two codecs fed identical random streams must produce identical envelopes
	stream := bytes.Repeat([]byte{0x42}, SaltSize+NonceSize)

	first, err := NewCodecWithRand(bytes.NewReader(stream)).Encrypt("fixed", "password")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	second, err := NewCodecWithRand(bytes.NewReader(stream)).Encrypt("fixed", "password")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if first != second {
		t.Error("Identical random streams produced different envelopes")
	}

	// The injected salt and nonce must appear verbatim in the envelope
	raw, err := base64.StdEncoding.DecodeString(first)
	if err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if raw[0] != Version {
		t.Errorf("Version byte: got %#02x, want %#02x", raw[0], Version)
	}
	if !bytes.Equal(raw[1:1+SaltSize], stream[:SaltSize]) {
		t.Error("Salt does not match injected random stream")
	}
	if !bytes.Equal(raw[1+SaltSize:1+SaltSize+NonceSize], stream[SaltSize:]) {
		t.Error("Nonce does not match injected random stream")
	}

	// And a default codec must still open it
	recovered, err := Decrypt(first, "password")
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if recovered != "fixed" {
		t.Errorf("Got %q, want %q", recovered, "fixed")
	}
}

func TestEnvelopeLength(t *testing.T) {
	envelope, err := Encrypt("x", "password")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}

	// 1-byte plaintext produces exactly the minimum envelope size
	if len(raw) != MinEnvelopeSize {
		t.Errorf("Envelope size: got %d, want %d", len(raw), MinEnvelopeSize)
	}
}

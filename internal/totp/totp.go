package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

const (
	// Period is the RFC 6238 time step.
	Period = 30 * time.Second
	// Digits is the code length.
	Digits = 6
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// DecodeSecret decodes a base32 secret per RFC 4648. Input is
// case-insensitive and padding characters are optional.
func DecodeSecret(s string) ([]byte, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "=", "")

	secret, err := b32.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base32 secret: %w", err)
	}
	return secret, nil
}

// Code computes the RFC 6238 code for the given secret at time t, using
// HMAC-SHA1, a 30-second step and 6 digits.
func Code(secret []byte, t time.Time) string {
	counter := uint64(t.Unix()) / uint64(Period/time.Second)

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation per RFC 4226
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%0*d", Digits, code%1000000)
}

// Remaining returns the time left until the current period rolls over.
func Remaining(t time.Time) time.Duration {
	step := int64(Period / time.Second)
	return time.Duration(step-t.Unix()%step) * time.Second
}

package totp

import (
	"bytes"
	"testing"
	"time"
)

// RFC 6238 Appendix B test vectors (SHA-1 mode).
var rfcSecret = []byte("12345678901234567890")

func TestCodeRFCVectors(t *testing.T) {
	vectors := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
		{20000000000, "353130"},
	}

	// The RFC lists 8-digit codes; the 6-digit code is the low 6 digits.
	for _, v := range vectors {
		got := Code(rfcSecret, time.Unix(v.unix, 0))
		if got != v.want {
			t.Errorf("Code at t=%d: got %s, want %s", v.unix, got, v.want)
		}
	}
}

func TestCodeLength(t *testing.T) {
	code := Code(rfcSecret, time.Now())
	if len(code) != Digits {
		t.Errorf("Code length: got %d, want %d", len(code), Digits)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Errorf("Code contains non-digit %q", c)
		}
	}
}

func TestCodeStableWithinPeriod(t *testing.T) {
	base := time.Unix(1700000010, 0)
	if Code(rfcSecret, base) != Code(rfcSecret, base.Add(5*time.Second)) {
		t.Error("Code changed within a single period")
	}
	if Code(rfcSecret, base) == Code(rfcSecret, base.Add(Period)) {
		t.Error("Code did not change across a period boundary")
	}
}

func TestDecodeSecret(t *testing.T) {
	want := []byte{0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x21, 0xde, 0xad, 0xbe, 0xef}

	// Upper case, lower case, padded, surrounded by whitespace
	inputs := []string{
		"JBSWY3DPEHPK3PXP",
		"jbswy3dpehpk3pxp",
		"JBSWY3DPEHPK3PXP====",
		"  JBSWY3DPEHPK3PXP\n",
	}
	for _, in := range inputs {
		got, err := DecodeSecret(in)
		if err != nil {
			t.Fatalf("DecodeSecret(%q) failed: %v", in, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("DecodeSecret(%q): got %x, want %x", in, got, want)
		}
	}
}

func TestDecodeSecretInvalid(t *testing.T) {
	if _, err := DecodeSecret("not!base32@"); err == nil {
		t.Error("Expected error for invalid base32 input")
	}
}

func TestRemaining(t *testing.T) {
	if got := Remaining(time.Unix(1700000000, 0)); got != 10*time.Second {
		// 1700000000 % 30 == 20
		t.Errorf("Remaining: got %s, want 10s", got)
	}
	if got := Remaining(time.Unix(1700000010, 0)); got != 30*time.Second {
		t.Errorf("Remaining at boundary: got %s, want 30s", got)
	}
}

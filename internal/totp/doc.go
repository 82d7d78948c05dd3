// Package totp generates RFC 6238 time-based one-time codes.
//
// Codes are computed over HMAC-SHA1 with a 30-second step and 6 digits, the
// parameters every mainstream authenticator uses. Secrets are base32 per
// RFC 4648 and are typically loaded from a permission-checked seed file.
//
// The package is independent of the envelope codec; the two compose only at
// the CLI level (e.g. keeping a seed file encrypted in the vault).
package totp

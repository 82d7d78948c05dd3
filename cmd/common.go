package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/keyring"
	"github.com/live-labs/cryptbox/internal/vault"
	"golang.org/x/term"
)

// GetPassword retrieves the password from the environment or prompts the user.
// The caller is responsible for calling crypto.ClearBytes on the result.
func GetPassword(prompt string) ([]byte, error) {
	// Try environment variable first
	password := vault.GetPasswordFromEnv()
	if password != nil {
		return password, nil
	}

	password, err := vault.ReadPassword(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// GetPasswordOrExit is like GetPassword but exits on error
func GetPasswordOrExit(prompt string) []byte {
	password, err := GetPassword(prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return password
}

// GetPasswordConfirm retrieves the password from the environment, or prompts
// twice and verifies both entries match. Used where a typo would seal data
// behind an unknown password (encrypt, init).
func GetPasswordConfirm() ([]byte, error) {
	password := vault.GetPasswordFromEnv()
	if password != nil {
		return password, nil
	}
	return vault.ReadPasswordConfirm()
}

// GetVaultPassword retrieves the vault password, trying the environment, then
// the OS keyring, then an interactive prompt. A stale keyring entry falls
// through to the prompt instead of failing the command.
func GetVaultPassword(v *vault.Vault, prompt string) ([]byte, error) {
	if password := vault.GetPasswordFromEnv(); password != nil {
		return password, nil
	}

	if vaultID, err := v.GetVaultID(); err == nil {
		if stored, err := keyring.GetPassword(vaultID); err == nil {
			password := []byte(stored)
			if v.VerifyPassword(password) == nil {
				return password, nil
			}
			crypto.ClearBytes(password)
		}
	}

	return vault.ReadPassword(prompt)
}

// GetVaultPasswordOrExit is like GetVaultPassword but exits on error
func GetVaultPasswordOrExit(v *vault.Vault, prompt string) []byte {
	password, err := GetVaultPassword(v, prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return password
}

// ReadInput returns the first argument if present, otherwise reads piped
// stdin. Interactive stdin is rejected; secrets don't belong in shell echo.
func ReadInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no input provided (use an argument or pipe data to stdin)")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	input := strings.TrimSpace(string(data))
	if input == "" {
		return "", fmt.Errorf("no input provided (stdin was empty)")
	}
	return input, nil
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, vault.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: cryptbox not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'cryptbox init' first\n")
	case errors.Is(err, vault.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: .cryptbox already exists in this directory\n")
		fmt.Fprintf(os.Stderr, "Use 'cryptbox status' to see current state\n")
	case errors.Is(err, vault.ErrWrongPassword):
		fmt.Fprintf(os.Stderr, "Error: wrong password\n")
	case errors.Is(err, vault.ErrEntryNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'cryptbox ls' to see stored entries\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// formatSize renders a byte count in human-friendly units
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

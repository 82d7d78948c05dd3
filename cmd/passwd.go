package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/keyring"
	"github.com/live-labs/cryptbox/internal/vault"
)

// Passwd changes the vault password and re-encrypts every entry
func Passwd() {
	v := vault.New(".")

	// Get vault ID for keyring lookup
	vaultID, _ := v.GetVaultID()

	currentPassword := GetVaultPasswordOrExit(v, "Enter current password: ")
	defer crypto.ClearBytes(currentPassword)

	newPassword, err := vault.ReadPasswordConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(newPassword)

	if err := v.ChangePassword(currentPassword, newPassword); err != nil {
		HandleError(err)
	}

	// Always try to update the keyring if a vault ID exists; this covers both
	// an existing entry and cases where the keyring was unavailable before
	if vaultID != "" {
		if err := keyring.SavePassword(vaultID, string(newPassword)); err == nil {
			fmt.Println("Keyring updated with new password")
		}
	}

	// Compact database after rewriting all data
	if err := v.Compact(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: compaction failed: %s\n", err)
	}

	fmt.Println("password changed successfully")
}

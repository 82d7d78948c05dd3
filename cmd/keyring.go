package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/keyring"
	"github.com/live-labs/cryptbox/internal/vault"
)

// KeyringSave saves the vault password to the OS keyring
func KeyringSave() {
	v := vault.New(".")

	// Prompt for password
	password, err := vault.ReadPassword("Enter password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	// Verify password is correct
	if err := v.VerifyPassword(password); err != nil {
		HandleError(err)
	}

	// Get vault ID (create if not exists)
	vaultID, err := v.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.SavePassword(vaultID, string(password)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password saved to keyring")
}

// KeyringDelete removes the vault password from the OS keyring
func KeyringDelete() {
	v := vault.New(".")

	vaultID, err := v.GetVaultID()
	if err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	if err := keyring.DeletePassword(vaultID); err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	fmt.Println("Password removed from keyring")
}

// KeyringStatus checks if a password is stored in the keyring
func KeyringStatus() {
	v := vault.New(".")

	vaultID, err := v.GetVaultID()
	if err != nil {
		fmt.Println("Password: not stored")
		return
	}

	if keyring.HasPassword(vaultID) {
		fmt.Println("Password: stored in keyring")
	} else {
		fmt.Println("Password: not stored")
	}
}
